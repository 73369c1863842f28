package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/netlicensing/internal/entity"
)

type Service interface {
	Create(ctx context.Context, productNumber string, module *ProductModule) (*ProductModule, error)
	Get(ctx context.Context, number string) (*ProductModule, error)
	List(ctx context.Context, req ListRequest) (*entity.Page[ProductModule], error)
	Update(ctx context.Context, number string, module *ProductModule) (*ProductModule, error)
	Delete(ctx context.Context, number string, forceCascade bool) error
}

type ListRequest struct {
	Filter string
}

var (
	ErrInvalidNumber = errors.New("invalid_number")
	ErrNilModule     = errors.New("nil_product_module")
)
