package reference

import (
	"context"

	"github.com/smallbiznis/netlicensing/internal/reference/domain"
)

// repository serves the reference catalog compiled into the module. The
// mock service publishes the same lists under /utility.
type repository struct{}

func NewRepository() domain.Repository {
	return &repository{}
}

func (r *repository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	out := make([]domain.Currency, len(domain.Currencies))
	copy(out, domain.Currencies)
	return out, nil
}

func (r *repository) ListLicenseTypes(ctx context.Context) ([]domain.LicenseType, error) {
	return append([]domain.LicenseType(nil), domain.LicenseTypes...), nil
}

func (r *repository) ListLicensingModels(ctx context.Context) ([]domain.LicensingModel, error) {
	return append([]domain.LicensingModel(nil), domain.LicensingModels...), nil
}

func (r *repository) ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	return append([]domain.PaymentMethod(nil), domain.PaymentMethods...), nil
}
