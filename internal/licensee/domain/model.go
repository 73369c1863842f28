package domain

import "github.com/smallbiznis/netlicensing/internal/entity"

const (
	PropProductNumber     = "productNumber"
	PropMarkedForTransfer = "markedForTransfer"
	PropAliases           = "aliases"
)

var Fields = entity.Fields(PropProductNumber, PropMarkedForTransfer)

// Licensee is the customer side of a product: one record per end user,
// device or installation, referenced by ProductNumber.
type Licensee struct {
	entity.Base

	Name              string `json:"name,omitempty" validate:"max=255" label:"Licensee name"`
	ProductNumber     string `json:"productNumber,omitempty"`
	MarkedForTransfer *bool  `json:"markedForTransfer,omitempty"`
	InUse             bool   `json:"inUse,omitempty"`
}

// AsLicensee lets types embedding a Licensee dispatch as one.
func (l *Licensee) AsLicensee() *Licensee { return l }
