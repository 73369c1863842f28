package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/netlicensing/internal/entity"
)

type Service interface {
	Create(ctx context.Context, product *Product) (*Product, error)
	Get(ctx context.Context, number string) (*Product, error)
	List(ctx context.Context, req ListRequest) (*entity.Page[Product], error)
	Update(ctx context.Context, number string, product *Product) (*Product, error)
	Delete(ctx context.Context, number string, forceCascade bool) error
}

type ListRequest struct {
	Filter string
}

var (
	ErrInvalidNumber = errors.New("invalid_number")
	ErrNilProduct    = errors.New("nil_product")
)
