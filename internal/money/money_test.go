package money

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/netlicensing/internal/apierror"
	refdomain "github.com/smallbiznis/netlicensing/internal/reference/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertPriceNormalizes(t *testing.T) {
	cases := []struct {
		name     string
		price    string
		currency string
		want     string
	}{
		{name: "pads_to_two_digits", price: "10.5", currency: "EUR", want: "10.50"},
		{name: "integer", price: "15", currency: "EUR", want: "15.00"},
		{name: "half_up_carry", price: "5.999", currency: "USD", want: "6.00"},
		{name: "half_up_tie", price: "0.125", currency: "USD", want: "0.13"},
		{name: "rounds_down", price: "0.124", currency: "GBP", want: "0.12"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := ConvertPrice(tc.price, tc.currency)
			require.NoError(t, err)
			assert.False(t, m.IsZero())
			assert.Equal(t, tc.want, m.AmountString())
			assert.Equal(t, refdomain.CurrencyCode(tc.currency), m.Currency())
		})
	}
}

func TestConvertPricePairing(t *testing.T) {
	_, err := ConvertPrice("10", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierror.ErrMalformedRequest))
	assert.Equal(t, "MalformedRequestException: 'price' field must be accompanied with the 'currency' field", err.Error())

	_, err = ConvertPrice("", "EUR")
	require.Error(t, err)
	assert.Equal(t, "MalformedRequestException: 'currency' field can not be used without the 'price' field", err.Error())

	m, err := ConvertPrice("  ", "")
	require.NoError(t, err)
	assert.True(t, m.IsZero())
	assert.Equal(t, "", m.AmountString())
}

func TestConvertPriceRejectsBadInput(t *testing.T) {
	_, err := ConvertPrice("ten", "EUR")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected '0.00' format")

	_, err = ConvertPrice("10", "XYZ")
	require.Error(t, err)
	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "currency", apiErr.Field)
}

func TestFromParts(t *testing.T) {
	amount := decimal.RequireFromString("7.005")
	m, err := FromParts(&amount, "CHF")
	require.NoError(t, err)
	assert.Equal(t, "7.01", m.AmountString())
	assert.True(t, m.Equal(New(decimal.RequireFromString("7.01"), refdomain.CHF)))

	m, err = FromParts(nil, "")
	require.NoError(t, err)
	assert.True(t, m.Equal(Money{}))
}

func TestNormalize(t *testing.T) {
	amount := decimal.RequireFromString("7.005")
	price, currency, err := Normalize(&amount, " CHF ")
	require.NoError(t, err)
	require.NotNil(t, price)
	assert.Equal(t, "7.01", price.StringFixed(Scale))
	assert.Equal(t, "CHF", currency)
	assert.Equal(t, "7.005", amount.String())

	price, currency, err = Normalize(nil, "")
	require.NoError(t, err)
	assert.Nil(t, price)
	assert.Empty(t, currency)

	_, _, err = Normalize(&amount, "")
	assert.ErrorIs(t, err, apierror.ErrMalformedRequest)
}
