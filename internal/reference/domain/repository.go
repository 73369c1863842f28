package domain

import "context"

type Repository interface {
	ListCurrencies(ctx context.Context) ([]Currency, error)
	ListLicenseTypes(ctx context.Context) ([]LicenseType, error)
	ListLicensingModels(ctx context.Context) ([]LicensingModel, error)
	ListPaymentMethods(ctx context.Context) ([]PaymentMethod, error)
}
