package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/netlicensing/internal/entity"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*License, error)
	Get(ctx context.Context, number string) (*License, error)
	List(ctx context.Context, req ListRequest) (*entity.Page[License], error)
	Update(ctx context.Context, number string, license *License) (*License, error)
	Delete(ctx context.Context, number string, forceCascade bool) error
}

// CreateRequest names both parents of the new license.
type CreateRequest struct {
	LicenseeNumber        string
	LicenseTemplateNumber string
	License               *License
}

type ListRequest struct {
	Filter string
}

var (
	ErrInvalidNumber = errors.New("invalid_number")
	ErrNilLicense    = errors.New("nil_license")
)
