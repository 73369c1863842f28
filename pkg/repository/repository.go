package repository

import (
	"context"

	"github.com/smallbiznis/netlicensing/internal/entity"
)

// Repository is the REST-backed store of one entity type.
type Repository[T any] interface {
	Create(ctx context.Context, resource *T) (*T, error)
	Get(ctx context.Context, number string) (*T, error)
	List(ctx context.Context, filter string) (*entity.Page[T], error)
	Update(ctx context.Context, number string, resource *T) (*T, error)
	Delete(ctx context.Context, number string, forceCascade bool) error
}
