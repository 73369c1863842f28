package domain

import "github.com/smallbiznis/netlicensing/internal/entity"

const (
	PropVersion            = "version"
	PropDescription        = "description"
	PropLicensingInfo      = "licensingInfo"
	PropLicenseeAutoCreate = "licenseeAutoCreate"
)

// Fields lists the property names a Product carries as typed fields.
var Fields = entity.Fields(PropVersion, PropDescription, PropLicensingInfo, PropLicenseeAutoCreate)

// Product is the top of the entity hierarchy. Its number is read-only once
// the first licensee has been created for it.
type Product struct {
	entity.Base

	Name               string `json:"name,omitempty" validate:"required" label:"Product name"`
	Version            string `json:"version,omitempty" validate:"required" label:"Product version"`
	Description        string `json:"description,omitempty"`
	LicensingInfo      string `json:"licensingInfo,omitempty"`
	LicenseeAutoCreate *bool  `json:"licenseeAutoCreate,omitempty"`
	InUse              bool   `json:"inUse,omitempty"`
}

// AsProduct lets types embedding a Product dispatch as one.
func (p *Product) AsProduct() *Product { return p }
