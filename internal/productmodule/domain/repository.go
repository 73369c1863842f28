package domain

import (
	"context"

	"github.com/smallbiznis/netlicensing/internal/entity"
)

type Repository interface {
	Create(ctx context.Context, module *ProductModule) (*ProductModule, error)
	Get(ctx context.Context, number string) (*ProductModule, error)
	List(ctx context.Context, filter string) (*entity.Page[ProductModule], error)
	Update(ctx context.Context, number string, module *ProductModule) (*ProductModule, error)
	Delete(ctx context.Context, number string, forceCascade bool) error
}
