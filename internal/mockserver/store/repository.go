package store

import (
	"context"
	"net/url"
	"strconv"

	"github.com/smallbiznis/netlicensing/internal/entity"
	"github.com/smallbiznis/netlicensing/internal/form"
	"github.com/smallbiznis/netlicensing/pkg/repository"
	"github.com/smallbiznis/netlicensing/pkg/rest"
)

type entityRepository[T any] struct {
	store    *Store
	resource string
}

// Provide returns a repository.Repository backed by the store, so the
// domain services run unchanged on top of the embedded database.
func Provide[T any](s *Store, resource string) repository.Repository[T] {
	return &entityRepository[T]{store: s, resource: resource}
}

func (r *entityRepository[T]) Create(ctx context.Context, resource *T) (*T, error) {
	props, err := encode(resource)
	if err != nil {
		return nil, err
	}
	e, err := r.store.Create(ctx, r.resource, props)
	if err != nil {
		return nil, err
	}
	return r.decode(e)
}

func (r *entityRepository[T]) Get(ctx context.Context, number string) (*T, error) {
	e, err := r.store.Get(ctx, r.resource, number)
	if err != nil {
		return nil, err
	}
	return r.decode(e)
}

func (r *entityRepository[T]) List(ctx context.Context, filter string) (*entity.Page[T], error) {
	entries, err := r.store.List(ctx, r.resource, filter)
	if err != nil {
		return nil, err
	}
	page := &entity.Page[T]{
		Content:     make([]T, 0, len(entries)),
		ItemsNumber: len(entries),
		TotalItems:  len(entries),
	}
	if len(entries) > 0 {
		page.TotalPages = 1
	}
	for _, e := range entries {
		v, err := r.decode(e)
		if err != nil {
			return nil, err
		}
		page.Content = append(page.Content, *v)
	}
	return page, nil
}

func (r *entityRepository[T]) Update(ctx context.Context, number string, resource *T) (*T, error) {
	props, err := encode(resource)
	if err != nil {
		return nil, err
	}
	e, err := r.store.Update(ctx, r.resource, number, props)
	if err != nil {
		return nil, err
	}
	return r.decode(e)
}

func (r *entityRepository[T]) Delete(ctx context.Context, number string, forceCascade bool) error {
	return r.store.Delete(ctx, r.resource, number, forceCascade)
}

func (r *entityRepository[T]) decode(e Entry) (*T, error) {
	schema, err := r.store.Schema(r.resource)
	if err != nil {
		return nil, err
	}
	var out T
	if err := form.Decode(e.Item(schema.ItemType), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Item renders the entry as a response item.
func (e Entry) Item(itemType string) rest.Item {
	item := rest.Item{Type: itemType}
	item.Add(entity.PropNumber, e.Number)
	for name, value := range e.Properties {
		item.Add(name, value)
	}
	item.Add(entity.PropInUse, strconv.FormatBool(e.InUse))
	return item
}

func encode(v any) (map[string]string, error) {
	values, err := form.Encode(v)
	if err != nil {
		return nil, err
	}
	return flatten(values), nil
}

func flatten(values url.Values) map[string]string {
	out := make(map[string]string, len(values))
	for name := range values {
		out[name] = values.Get(name)
	}
	return out
}
