package repository

import (
	"context"

	"github.com/smallbiznis/netlicensing/internal/entity"
	"github.com/smallbiznis/netlicensing/internal/form"
	"github.com/smallbiznis/netlicensing/pkg/rest"
)

type store[T any] struct {
	transport rest.Transport
	resource  string
	itemType  string
}

// ProvideStore returns a Repository for the entity T served under resource,
// whose response items carry itemType.
func ProvideStore[T any](transport rest.Transport, resource, itemType string) Repository[T] {
	return &store[T]{transport: transport, resource: resource, itemType: itemType}
}

func (r *store[T]) Create(ctx context.Context, resource *T) (*T, error) {
	values, err := form.Encode(resource)
	if err != nil {
		return nil, err
	}
	env, err := r.transport.Do(ctx, rest.Create(r.resource, values))
	if err != nil {
		return nil, err
	}
	return form.DecodeFirst[T](env, r.itemType)
}

func (r *store[T]) Get(ctx context.Context, number string) (*T, error) {
	env, err := r.transport.Do(ctx, rest.Get(r.resource, number))
	if err != nil {
		return nil, err
	}
	return form.DecodeFirst[T](env, r.itemType)
}

func (r *store[T]) List(ctx context.Context, filter string) (*entity.Page[T], error) {
	env, err := r.transport.Do(ctx, rest.List(r.resource, filter))
	if err != nil {
		return nil, err
	}
	return form.DecodePage[T](env, r.itemType)
}

func (r *store[T]) Update(ctx context.Context, number string, resource *T) (*T, error) {
	values, err := form.Encode(resource)
	if err != nil {
		return nil, err
	}
	env, err := r.transport.Do(ctx, rest.Update(r.resource, number, values))
	if err != nil {
		return nil, err
	}
	return form.DecodeFirst[T](env, r.itemType)
}

func (r *store[T]) Delete(ctx context.Context, number string, forceCascade bool) error {
	_, err := r.transport.Do(ctx, rest.Delete(r.resource, number, forceCascade))
	return err
}
