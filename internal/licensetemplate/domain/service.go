package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/netlicensing/internal/entity"
)

type Service interface {
	Create(ctx context.Context, productModuleNumber string, template *LicenseTemplate) (*LicenseTemplate, error)
	Get(ctx context.Context, number string) (*LicenseTemplate, error)
	List(ctx context.Context, req ListRequest) (*entity.Page[LicenseTemplate], error)
	Update(ctx context.Context, number string, template *LicenseTemplate) (*LicenseTemplate, error)
	Delete(ctx context.Context, number string, forceCascade bool) error
}

type ListRequest struct {
	Filter string
}

var (
	ErrInvalidNumber = errors.New("invalid_number")
	ErrNilTemplate   = errors.New("nil_license_template")
)
