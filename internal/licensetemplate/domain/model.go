package domain

import (
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/netlicensing/internal/entity"
	"github.com/smallbiznis/netlicensing/internal/money"
)

const (
	PropLicenseType         = "licenseType"
	PropPrice               = "price"
	PropCurrency            = "currency"
	PropAutomatic           = "automatic"
	PropHidden              = "hidden"
	PropHideLicenses        = "hideLicenses"
	PropProductModuleNumber = "productModuleNumber"
	PropTimeVolume          = "timeVolume"
	PropTimeVolumePeriod    = "timeVolumePeriod"
	PropMaxSessions         = "maxSessions"
	PropQuantity            = "quantity"
)

// Fields lists the property names a LicenseTemplate carries as typed
// fields. Custom properties using them would bypass Normalize.
var Fields = entity.Fields(
	PropLicenseType,
	PropPrice,
	PropCurrency,
	PropAutomatic,
	PropHidden,
	PropHideLicenses,
	PropProductModuleNumber,
)

// LicenseTemplate describes a license that can be issued for a product
// module. Boolean flags left nil are "not supplied"; the service fills in
// defaults on create.
type LicenseTemplate struct {
	entity.Base

	Name                string           `json:"name,omitempty" validate:"required" label:"License template name"`
	LicenseType         string           `json:"licenseType,omitempty" validate:"required,licensetype" label:"License type"`
	Price               *decimal.Decimal `json:"price,omitempty"`
	Currency            string           `json:"currency,omitempty"`
	Automatic           *bool            `json:"automatic,omitempty"`
	Hidden              *bool            `json:"hidden,omitempty"`
	HideLicenses        *bool            `json:"hideLicenses,omitempty"`
	ProductModuleNumber string           `json:"productModuleNumber,omitempty"`
	InUse               bool             `json:"inUse,omitempty"`
}

// Money returns the validated price/currency pair.
func (t *LicenseTemplate) Money() (money.Money, error) {
	if t == nil {
		return money.Money{}, nil
	}
	return money.FromParts(t.Price, t.Currency)
}

func (t *LicenseTemplate) IsAutomatic() bool   { return t.Automatic != nil && *t.Automatic }
func (t *LicenseTemplate) IsHidden() bool      { return t.Hidden != nil && *t.Hidden }
func (t *LicenseTemplate) HidesLicenses() bool { return t.HideLicenses != nil && *t.HideLicenses }

// AsLicenseTemplate lets types embedding a LicenseTemplate dispatch as one.
func (t *LicenseTemplate) AsLicenseTemplate() *LicenseTemplate { return t }
