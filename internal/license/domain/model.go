package domain

import (
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/netlicensing/internal/entity"
	"github.com/smallbiznis/netlicensing/internal/money"
)

const (
	PropLicenseeNumber        = "licenseeNumber"
	PropLicenseTemplateNumber = "licenseTemplateNumber"
	PropPrice                 = "price"
	PropCurrency              = "currency"
	PropHidden                = "hidden"
	PropStartDate             = "startDate"
	PropTimeVolume            = "timeVolume"
	PropTimeVolumePeriod      = "timeVolumePeriod"
	PropParentFeature         = "parentfeature"
)

var Fields = entity.Fields(
	PropLicenseeNumber,
	PropLicenseTemplateNumber,
	PropPrice,
	PropCurrency,
	PropHidden,
)

// License is issued to a licensee from a license template. Price and
// currency override the template price when both are set.
type License struct {
	entity.Base

	Name                  string           `json:"name,omitempty" validate:"max=255" label:"License name"`
	LicenseeNumber        string           `json:"licenseeNumber,omitempty"`
	LicenseTemplateNumber string           `json:"licenseTemplateNumber,omitempty"`
	Price                 *decimal.Decimal `json:"price,omitempty"`
	Currency              string           `json:"currency,omitempty"`
	Hidden                *bool            `json:"hidden,omitempty"`
	InUse                 bool             `json:"inUse,omitempty"`
}

func (l *License) Money() (money.Money, error) {
	if l == nil {
		return money.Money{}, nil
	}
	return money.FromParts(l.Price, l.Currency)
}

// AsLicense lets types embedding a License dispatch as one.
func (l *License) AsLicense() *License { return l }
