// Package repositorytest provides a testify mock of repository.Repository.
package repositorytest

import (
	"context"

	"github.com/smallbiznis/netlicensing/internal/entity"
	"github.com/stretchr/testify/mock"
)

type Repository[T any] struct {
	mock.Mock
}

func (m *Repository[T]) Create(ctx context.Context, resource *T) (*T, error) {
	args := m.Called(ctx, resource)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *Repository[T]) Get(ctx context.Context, number string) (*T, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *Repository[T]) List(ctx context.Context, filter string) (*entity.Page[T], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Page[T]), args.Error(1)
}

func (m *Repository[T]) Update(ctx context.Context, number string, resource *T) (*T, error) {
	args := m.Called(ctx, number, resource)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *Repository[T]) Delete(ctx context.Context, number string, forceCascade bool) error {
	return m.Called(ctx, number, forceCascade).Error(0)
}
