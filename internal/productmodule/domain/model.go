package domain

import "github.com/smallbiznis/netlicensing/internal/entity"

const (
	PropLicensingModel      = "licensingModel"
	PropProductNumber       = "productNumber"
	PropMaxCheckoutValidity = "maxCheckoutValidity"
	PropYellowThreshold     = "yellowThreshold"
	PropRedThreshold        = "redThreshold"
)

var Fields = entity.Fields(PropLicensingModel, PropProductNumber)

// ProductModule belongs to a product, referenced by ProductNumber. The
// licensing model decides which license templates the module accepts.
type ProductModule struct {
	entity.Base

	Name           string `json:"name,omitempty" validate:"required" label:"Product module name"`
	LicensingModel string `json:"licensingModel,omitempty" validate:"required,licensingmodel" label:"Licensing model"`
	ProductNumber  string `json:"productNumber,omitempty"`
	InUse          bool   `json:"inUse,omitempty"`
}

// AsProductModule lets types embedding a ProductModule dispatch as one.
func (m *ProductModule) AsProductModule() *ProductModule { return m }
