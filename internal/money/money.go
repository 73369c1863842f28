// Package money holds the price/currency value type and the pairing rules
// applied before a price reaches the service.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/netlicensing/internal/apierror"
	refdomain "github.com/smallbiznis/netlicensing/internal/reference/domain"
)

const (
	FieldPrice    = "price"
	FieldCurrency = "currency"

	// Scale is the number of fractional digits the service stores.
	Scale = 2
)

// Money is an amount paired with a currency code. The zero value is the
// absent price.
type Money struct {
	amount   decimal.Decimal
	currency refdomain.CurrencyCode
	present  bool
}

// New pairs an amount with a currency, rounding the amount to Scale digits.
func New(amount decimal.Decimal, currency refdomain.CurrencyCode) Money {
	return Money{amount: Round(amount), currency: currency, present: true}
}

func (m Money) IsZero() bool                     { return !m.present }
func (m Money) Amount() decimal.Decimal          { return m.amount }
func (m Money) Currency() refdomain.CurrencyCode { return m.currency }

// AmountString renders the amount with exactly Scale fractional digits, or
// "" for the absent price.
func (m Money) AmountString() string {
	if !m.present {
		return ""
	}
	return m.amount.StringFixed(Scale)
}

func (m Money) String() string {
	if !m.present {
		return ""
	}
	return m.AmountString() + " " + string(m.currency)
}

func (m Money) Equal(other Money) bool {
	if m.present != other.present {
		return false
	}
	if !m.present {
		return true
	}
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// Round rounds half away from zero to Scale digits, which matches
// half-up rounding for every non-negative price.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(Scale)
}

// ParseAmount parses a decimal string in the service format.
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, apierror.MalformedRequest(FieldPrice,
			fmt.Sprintf("'%s' format is not correct, expected '0.00' format", FieldPrice))
	}
	return amount, nil
}

// ConvertPrice validates a raw price/currency pair. Either both are present
// or neither is; the currency must belong to the supported set.
func ConvertPrice(rawPrice, rawCurrency string) (Money, error) {
	hasPrice := strings.TrimSpace(rawPrice) != ""
	hasCurrency := strings.TrimSpace(rawCurrency) != ""

	if !hasPrice {
		if hasCurrency {
			return Money{}, apierror.MalformedRequest(FieldCurrency,
				fmt.Sprintf("'%s' field can not be used without the '%s' field", FieldCurrency, FieldPrice))
		}
		return Money{}, nil
	}

	amount, err := ParseAmount(rawPrice)
	if err != nil {
		return Money{}, err
	}
	if !hasCurrency {
		return Money{}, apierror.MalformedRequest(FieldPrice,
			fmt.Sprintf("'%s' field must be accompanied with the '%s' field", FieldPrice, FieldCurrency))
	}

	currency, _, err := refdomain.ParseCurrency(rawCurrency)
	if err != nil {
		return Money{}, err
	}
	return New(amount, currency), nil
}

// FromParts is ConvertPrice for callers that already hold a typed amount.
func FromParts(amount *decimal.Decimal, currency string) (Money, error) {
	raw := ""
	if amount != nil {
		raw = amount.String()
	}
	return ConvertPrice(raw, currency)
}

// Normalize validates the pair like FromParts and returns it in canonical
// form: the rounded amount and currency code, or nil and "" when absent.
func Normalize(amount *decimal.Decimal, currency string) (*decimal.Decimal, string, error) {
	m, err := FromParts(amount, currency)
	if err != nil {
		return nil, "", err
	}
	if m.IsZero() {
		return nil, "", nil
	}
	rounded := m.Amount()
	return &rounded, string(m.Currency()), nil
}
