package domain

import (
	"fmt"
	"strings"

	"github.com/smallbiznis/netlicensing/internal/apierror"
)

type Currency struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Symbol    *string `json:"symbol,omitempty"`
	MinorUnit int16   `json:"minor_unit"`
}

type CurrencyCode string

const (
	EUR CurrencyCode = "EUR"
	USD CurrencyCode = "USD"
	GBP CurrencyCode = "GBP"
	CHF CurrencyCode = "CHF"
)

func strPtr(v string) *string { return &v }

// Currencies is the closed set of currencies the service accepts.
var Currencies = []Currency{
	{Code: string(EUR), Name: "Euro", Symbol: strPtr("€"), MinorUnit: 2},
	{Code: string(USD), Name: "US Dollar", Symbol: strPtr("$"), MinorUnit: 2},
	{Code: string(GBP), Name: "Pound Sterling", Symbol: strPtr("£"), MinorUnit: 2},
	{Code: string(CHF), Name: "Swiss Franc", Symbol: strPtr("CHF"), MinorUnit: 2},
}

// ParseCurrency returns the canonical code for raw. Blank input is reported
// as ok=false with no error so callers can treat it as absent.
func ParseCurrency(raw string) (CurrencyCode, bool, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", false, nil
	}
	for _, c := range Currencies {
		if c.Code == value {
			return CurrencyCode(c.Code), true, nil
		}
	}
	return "", false, apierror.MalformedRequest("currency", "Unsupported currency!")
}

type LicenseType string

const (
	LicenseTypeFeature    LicenseType = "FEATURE"
	LicenseTypeTimeVolume LicenseType = "TIMEVOLUME"
	LicenseTypeFloating   LicenseType = "FLOATING"
	LicenseTypeQuantity   LicenseType = "QUANTITY"
)

var LicenseTypes = []LicenseType{
	LicenseTypeFeature,
	LicenseTypeTimeVolume,
	LicenseTypeFloating,
	LicenseTypeQuantity,
}

func ParseLicenseType(raw string) (LicenseType, error) {
	value := strings.ToUpper(strings.TrimSpace(raw))
	for _, t := range LicenseTypes {
		if string(t) == value {
			return t, nil
		}
	}
	return "", apierror.MalformedRequest("licenseType", fmt.Sprintf("Unsupported license type '%s'", strings.TrimSpace(raw)))
}

// Companion properties a license type cannot be stored without.
var RequiredProperties = map[LicenseType][]string{
	LicenseTypeTimeVolume: {"timeVolume"},
}

type LicensingModel string

const (
	LicensingModelTryAndBuy    LicensingModel = "TryAndBuy"
	LicensingModelRental       LicensingModel = "Rental"
	LicensingModelSubscription LicensingModel = "Subscription"
	LicensingModelFloating     LicensingModel = "Floating"
	LicensingModelMultiFeature LicensingModel = "MultiFeature"
	LicensingModelPayPerUse    LicensingModel = "PayPerUse"
	LicensingModelPricingTable LicensingModel = "PricingTable"
	LicensingModelQuota        LicensingModel = "Quota"
	LicensingModelNodeLocked   LicensingModel = "NodeLocked"
)

var LicensingModels = []LicensingModel{
	LicensingModelTryAndBuy,
	LicensingModelRental,
	LicensingModelSubscription,
	LicensingModelFloating,
	LicensingModelMultiFeature,
	LicensingModelPayPerUse,
	LicensingModelPricingTable,
	LicensingModelQuota,
	LicensingModelNodeLocked,
}

func ParseLicensingModel(raw string) (LicensingModel, error) {
	value := strings.TrimSpace(raw)
	for _, m := range LicensingModels {
		if strings.EqualFold(string(m), value) {
			return m, nil
		}
	}
	return "", apierror.MalformedRequest("licensingModel", fmt.Sprintf("Unsupported licensing model '%s'", value))
}

type PaymentMethod string

const (
	PaymentMethodPayPal        PaymentMethod = "PAYPAL"
	PaymentMethodPayPalSandbox PaymentMethod = "PAYPAL_SANDBOX"
	PaymentMethodStripe        PaymentMethod = "STRIPE"
	PaymentMethodStripeTesting PaymentMethod = "STRIPE_TESTING"
)

var PaymentMethods = []PaymentMethod{
	PaymentMethodPayPal,
	PaymentMethodPayPalSandbox,
	PaymentMethodStripe,
	PaymentMethodStripeTesting,
}

// ParsePaymentMethod follows the same policy as ParseCurrency: blank is
// absent, anything unknown is rejected.
func ParsePaymentMethod(raw string) (PaymentMethod, bool, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", false, nil
	}
	for _, m := range PaymentMethods {
		if string(m) == value {
			return m, true, nil
		}
	}
	return "", false, apierror.MalformedRequest("paymentMethod", fmt.Sprintf("Unsupported payment method '%s'", value))
}
