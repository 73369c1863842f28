package domain

import (
	"fmt"
	"strings"

	"github.com/smallbiznis/netlicensing/internal/apierror"
	"github.com/smallbiznis/netlicensing/internal/entity"
	"github.com/smallbiznis/netlicensing/internal/money"
	refdomain "github.com/smallbiznis/netlicensing/internal/reference/domain"
	"github.com/smallbiznis/netlicensing/internal/validation"
)

type Operation int

const (
	OpCreate Operation = iota
	OpUpdate
)

func (o Operation) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// Normalize validates t for op and returns the canonical copy that is sent
// to the service. t itself is never modified.
//
// Custom properties named after a typed field are rejected on both
// operations. Create requires the product module number, a name and a license type,
// and fills unset flags with their defaults. Both operations enforce the
// price/currency pairing, round the price to two digits and require the
// companion properties of the license type.
func Normalize(op Operation, t LicenseTemplate) (LicenseTemplate, error) {
	out := t
	out.Properties = entity.CopyProperties(t.Properties)
	out.Name = strings.TrimSpace(t.Name)
	out.LicenseType = strings.ToUpper(strings.TrimSpace(t.LicenseType))
	out.Currency = strings.TrimSpace(t.Currency)
	out.ProductModuleNumber = strings.TrimSpace(t.ProductModuleNumber)

	if err := validation.NoReservedProperties(out.Properties, Fields); err != nil {
		return LicenseTemplate{}, err
	}

	if op == OpCreate {
		if err := validation.Required(PropProductModuleNumber, out.ProductModuleNumber, "Product module number is not provided"); err != nil {
			return LicenseTemplate{}, err
		}
		if err := validation.Struct(&out); err != nil {
			return LicenseTemplate{}, err
		}
	} else if out.LicenseType != "" {
		if _, err := refdomain.ParseLicenseType(out.LicenseType); err != nil {
			return LicenseTemplate{}, err
		}
	}

	price, currency, err := money.Normalize(out.Price, out.Currency)
	if err != nil {
		return LicenseTemplate{}, err
	}
	out.Price, out.Currency = price, currency

	if op == OpCreate {
		out.Active = entity.DefaultBool(t.Active, true)
		out.Automatic = entity.DefaultBool(t.Automatic, false)
		out.Hidden = entity.DefaultBool(t.Hidden, false)
		out.HideLicenses = entity.DefaultBool(t.HideLicenses, false)
	}

	if err := checkCompanionProperties(out); err != nil {
		return LicenseTemplate{}, err
	}
	return out, nil
}

func checkCompanionProperties(t LicenseTemplate) error {
	if t.LicenseType == "" {
		return nil
	}
	for _, name := range refdomain.RequiredProperties[refdomain.LicenseType(t.LicenseType)] {
		if value, ok := t.Property(name); ok && strings.TrimSpace(value) != "" {
			continue
		}
		return apierror.IllegalOperation(name, fmt.Sprintf(
			"License template of type '%s' must have property '%s' specified.", t.LicenseType, name))
	}
	return nil
}
