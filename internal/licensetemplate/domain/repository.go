package domain

import (
	"context"

	"github.com/smallbiznis/netlicensing/internal/entity"
)

type Repository interface {
	Create(ctx context.Context, template *LicenseTemplate) (*LicenseTemplate, error)
	Get(ctx context.Context, number string) (*LicenseTemplate, error)
	List(ctx context.Context, filter string) (*entity.Page[LicenseTemplate], error)
	Update(ctx context.Context, number string, template *LicenseTemplate) (*LicenseTemplate, error)
	Delete(ctx context.Context, number string, forceCascade bool) error
}
