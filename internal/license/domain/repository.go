package domain

import (
	"context"

	"github.com/smallbiznis/netlicensing/internal/entity"
)

type Repository interface {
	Create(ctx context.Context, license *License) (*License, error)
	Get(ctx context.Context, number string) (*License, error)
	List(ctx context.Context, filter string) (*entity.Page[License], error)
	Update(ctx context.Context, number string, license *License) (*License, error)
	Delete(ctx context.Context, number string, forceCascade bool) error
}
