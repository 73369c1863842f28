package validation

import (
	"errors"
	"testing"

	"github.com/smallbiznis/netlicensing/internal/apierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name        string `json:"name" validate:"required" label:"Sample name"`
	LicenseType string `json:"licenseType" validate:"licensetype" label:"License type"`
	Model       string `json:"licensingModel,omitempty" validate:"licensingmodel"`
}

func TestStructRequired(t *testing.T) {
	err := Struct(&sample{})
	require.Error(t, err)

	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.KindMalformedRequest, apiErr.Kind)
	assert.Equal(t, "name", apiErr.Field)
	assert.Equal(t, "Sample name is required", apiErr.Message)
}

func TestStructCustomRules(t *testing.T) {
	err := Struct(sample{Name: "x", LicenseType: "LIFETIME"})
	require.Error(t, err)
	assert.Equal(t, "MalformedRequestException: License type is not supported", err.Error())

	err = Struct(sample{Name: "x", Model: "Perpetual"})
	require.Error(t, err)
	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "licensingModel", apiErr.Field)
	assert.Equal(t, "licensingModel is not supported", apiErr.Message)

	assert.NoError(t, Struct(sample{Name: "x", LicenseType: "FEATURE", Model: "Rental"}))
}

func TestRequired(t *testing.T) {
	err := Required("productModuleNumber", " ", "Product module number is not provided")
	assert.True(t, errors.Is(err, apierror.ErrMalformedRequest))
	assert.NoError(t, Required("productModuleNumber", "PM001", "unused"))
}
