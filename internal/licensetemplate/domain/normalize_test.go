package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/netlicensing/internal/apierror"
	"github.com/smallbiznis/netlicensing/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(raw string) *decimal.Decimal {
	d := decimal.RequireFromString(raw)
	return &d
}

func requireAPIError(t *testing.T, err error, kind apierror.Kind, message string) {
	t.Helper()
	require.Error(t, err)
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, kind, apiErr.Kind)
	assert.Equal(t, message, apiErr.Message)
	assert.Equal(t, string(kind)+": "+message, err.Error())
}

func TestNormalizeCreateFull(t *testing.T) {
	in := LicenseTemplate{
		Base: entity.Base{
			Number:     "LT001-TEST",
			Active:     entity.BoolPtr(false),
			Properties: map[string]string{PropTimeVolume: "30"},
		},
		Name:                "Test License Template",
		LicenseType:         "TIMEVOLUME",
		Price:               price("10.5"),
		Currency:            "EUR",
		Automatic:           entity.BoolPtr(true),
		Hidden:              entity.BoolPtr(true),
		HideLicenses:        entity.BoolPtr(true),
		ProductModuleNumber: "PM001-TEST",
	}

	out, err := Normalize(OpCreate, in)
	require.NoError(t, err)

	assert.Equal(t, "LT001-TEST", out.Number)
	assert.False(t, out.IsActive())
	assert.Equal(t, "10.50", out.Price.StringFixed(2))
	assert.Equal(t, "EUR", out.Currency)
	assert.True(t, out.IsAutomatic())
	assert.True(t, out.IsHidden())
	assert.True(t, out.HidesLicenses())
	assert.Equal(t, "30", out.Properties[PropTimeVolume])

	assert.Equal(t, "10.5", in.Price.String())
	out.Properties["extra"] = "x"
	assert.NotContains(t, in.Properties, "extra")
}

func TestNormalizeCreateDefaults(t *testing.T) {
	out, err := Normalize(OpCreate, LicenseTemplate{
		Name:                "Test License Template",
		LicenseType:         "FEATURE",
		ProductModuleNumber: "PM001-TEST",
	})
	require.NoError(t, err)

	require.NotNil(t, out.Active)
	require.NotNil(t, out.Automatic)
	require.NotNil(t, out.Hidden)
	require.NotNil(t, out.HideLicenses)
	assert.True(t, *out.Active)
	assert.False(t, *out.Automatic)
	assert.False(t, *out.Hidden)
	assert.False(t, *out.HideLicenses)
	assert.Nil(t, out.Price)
	assert.Empty(t, out.Currency)
}

func TestNormalizeCreateRejections(t *testing.T) {
	named := func(mut func(*LicenseTemplate)) LicenseTemplate {
		tmpl := LicenseTemplate{Name: "Test License Template", LicenseType: "FEATURE", ProductModuleNumber: "PM001-TEST"}
		mut(&tmpl)
		return tmpl
	}

	cases := []struct {
		name    string
		in      LicenseTemplate
		kind    apierror.Kind
		message string
	}{
		{
			name:    "no_product_module",
			in:      LicenseTemplate{},
			kind:    apierror.KindMalformedRequest,
			message: "Product module number is not provided",
		},
		{
			name:    "empty",
			in:      LicenseTemplate{ProductModuleNumber: "PM001-TEST"},
			kind:    apierror.KindMalformedRequest,
			message: "License template name is required",
		},
		{
			name:    "blank_name",
			in:      named(func(t *LicenseTemplate) { t.Name = "   " }),
			kind:    apierror.KindMalformedRequest,
			message: "License template name is required",
		},
		{
			name:    "no_license_type",
			in:      named(func(t *LicenseTemplate) { t.LicenseType = "" }),
			kind:    apierror.KindMalformedRequest,
			message: "License type is required",
		},
		{
			name:    "unknown_license_type",
			in:      named(func(t *LicenseTemplate) { t.LicenseType = "LIFETIME" }),
			kind:    apierror.KindMalformedRequest,
			message: "License type is not supported",
		},
		{
			name:    "price_without_currency",
			in:      named(func(t *LicenseTemplate) { t.Price = price("10") }),
			kind:    apierror.KindMalformedRequest,
			message: "'price' field must be accompanied with the 'currency' field",
		},
		{
			name:    "currency_without_price",
			in:      named(func(t *LicenseTemplate) { t.Currency = "EUR" }),
			kind:    apierror.KindMalformedRequest,
			message: "'currency' field can not be used without the 'price' field",
		},
		{
			name: "unsupported_currency",
			in: named(func(t *LicenseTemplate) {
				t.Price = price("10")
				t.Currency = "XYZ"
			}),
			kind:    apierror.KindMalformedRequest,
			message: "Unsupported currency!",
		},
		{
			name:    "time_volume_without_property",
			in:      named(func(t *LicenseTemplate) { t.LicenseType = "TIMEVOLUME" }),
			kind:    apierror.KindIllegalOperation,
			message: "License template of type 'TIMEVOLUME' must have property 'timeVolume' specified.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Normalize(OpCreate, tc.in)
			requireAPIError(t, err, tc.kind, tc.message)
		})
	}
}

func TestNormalizeUpdate(t *testing.T) {
	out, err := Normalize(OpUpdate, LicenseTemplate{
		Base:     entity.Base{Number: "LT002-TEST"},
		Price:    price("15"),
		Currency: "EUR",
	})
	require.NoError(t, err)
	assert.Equal(t, "15.00", out.Price.StringFixed(2))
	assert.Nil(t, out.Active)
	assert.Nil(t, out.Automatic)
	assert.Empty(t, out.Name)

	_, err = Normalize(OpUpdate, LicenseTemplate{LicenseType: "TIMEVOLUME"})
	requireAPIError(t, err, apierror.KindIllegalOperation,
		"License template of type 'TIMEVOLUME' must have property 'timeVolume' specified.")

	_, err = Normalize(OpUpdate, LicenseTemplate{
		Base:        entity.Base{Properties: map[string]string{PropTimeVolume: "30"}},
		LicenseType: "timevolume",
	})
	require.NoError(t, err)

	_, err = Normalize(OpUpdate, LicenseTemplate{Currency: "EUR"})
	requireAPIError(t, err, apierror.KindMalformedRequest,
		"'currency' field can not be used without the 'price' field")
}

func TestNormalizeRoundsHalfUp(t *testing.T) {
	cases := map[string]string{
		"10.5":  "10.50",
		"5.999": "6.00",
		"0.125": "0.13",
		"2.004": "2.00",
		"7":     "7.00",
	}
	for raw, want := range cases {
		out, err := Normalize(OpUpdate, LicenseTemplate{Price: price(raw), Currency: "USD"})
		require.NoError(t, err, raw)
		assert.Equal(t, want, out.Price.StringFixed(2), raw)
	}
}

func TestOperationString(t *testing.T) {
	assert.Equal(t, "create", OpCreate.String())
	assert.Equal(t, "update", OpUpdate.String())
	assert.Equal(t, "unknown", Operation(9).String())
}

func TestNormalizeRejectsFieldNamesAsCustomProperties(t *testing.T) {
	cases := []struct {
		name    string
		op      Operation
		in      LicenseTemplate
		field   string
		message string
	}{
		{
			name: "currency_without_price_on_create",
			op:   OpCreate,
			in: LicenseTemplate{
				Base:                entity.Base{Properties: map[string]string{PropCurrency: "EUR"}},
				Name:                "Test License Template",
				LicenseType:         "FEATURE",
				ProductModuleNumber: "PM001-TEST",
			},
			field:   PropCurrency,
			message: "'currency' is an entity field and can not be set as a custom property",
		},
		{
			name: "license_type_on_update",
			op:   OpUpdate,
			in: LicenseTemplate{
				Base: entity.Base{Properties: map[string]string{PropLicenseType: "TIMEVOLUME"}},
			},
			field:   PropLicenseType,
			message: "'licenseType' is an entity field and can not be set as a custom property",
		},
		{
			name: "active_on_update",
			op:   OpUpdate,
			in: LicenseTemplate{
				Base: entity.Base{Properties: map[string]string{entity.PropActive: "maybe"}},
			},
			field:   entity.PropActive,
			message: "'active' is an entity field and can not be set as a custom property",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Normalize(tc.op, tc.in)
			requireAPIError(t, err, apierror.KindMalformedRequest, tc.message)
			assert.ErrorIs(t, err, apierror.ErrMalformedRequest)

			var apiErr *apierror.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.field, apiErr.Field)
		})
	}
}
