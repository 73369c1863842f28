package domain

import (
	"context"

	"github.com/smallbiznis/netlicensing/internal/entity"
)

type Repository interface {
	Create(ctx context.Context, licensee *Licensee) (*Licensee, error)
	Get(ctx context.Context, number string) (*Licensee, error)
	List(ctx context.Context, filter string) (*entity.Page[Licensee], error)
	Update(ctx context.Context, number string, licensee *Licensee) (*Licensee, error)
	Delete(ctx context.Context, number string, forceCascade bool) error
}
