package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/netlicensing/internal/entity"
)

type Service interface {
	Create(ctx context.Context, productNumber string, licensee *Licensee) (*Licensee, error)
	Get(ctx context.Context, number string) (*Licensee, error)
	List(ctx context.Context, req ListRequest) (*entity.Page[Licensee], error)
	Update(ctx context.Context, number string, licensee *Licensee) (*Licensee, error)
	Delete(ctx context.Context, number string, forceCascade bool) error
}

type ListRequest struct {
	Filter string
}

var (
	ErrInvalidNumber = errors.New("invalid_number")
	ErrNilLicensee   = errors.New("nil_licensee")
)
