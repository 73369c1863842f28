package domain

import (
	"context"

	"github.com/smallbiznis/netlicensing/internal/entity"
)

type Repository interface {
	Create(ctx context.Context, product *Product) (*Product, error)
	Get(ctx context.Context, number string) (*Product, error)
	List(ctx context.Context, filter string) (*entity.Page[Product], error)
	Update(ctx context.Context, number string, product *Product) (*Product, error)
	Delete(ctx context.Context, number string, forceCascade bool) error
}
