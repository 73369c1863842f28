package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/smallbiznis/netlicensing/internal/entity"
	"github.com/smallbiznis/netlicensing/internal/product/domain"
	"github.com/smallbiznis/netlicensing/internal/validation"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		log:  p.Log.Named("product.service"),
		repo: p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, domain.ErrNilProduct
	}

	req := trimmed(*product)
	if err := validation.NoReservedProperties(req.Properties, domain.Fields); err != nil {
		return nil, err
	}
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	req.Active = entity.DefaultBool(product.Active, true)
	req.LicenseeAutoCreate = entity.DefaultBool(product.LicenseeAutoCreate, false)

	created, err := s.repo.Create(ctx, &req)
	if err != nil {
		return nil, err
	}
	s.log.Debug("product created", zap.String("number", created.Number))
	return created, nil
}

func (s *Service) Get(ctx context.Context, number string) (*domain.Product, error) {
	number, err := requireNumber(number)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, number)
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*entity.Page[domain.Product], error) {
	return s.repo.List(ctx, strings.TrimSpace(req.Filter))
}

func (s *Service) Update(ctx context.Context, number string, product *domain.Product) (*domain.Product, error) {
	number, err := requireNumber(number)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNilProduct
	}

	req := trimmed(*product)
	if err := validation.NoReservedProperties(req.Properties, domain.Fields); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, number, &req)
}

func (s *Service) Delete(ctx context.Context, number string, forceCascade bool) error {
	number, err := requireNumber(number)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, number, forceCascade)
}

func trimmed(p domain.Product) domain.Product {
	p.Number = strings.TrimSpace(p.Number)
	p.Name = strings.TrimSpace(p.Name)
	p.Version = strings.TrimSpace(p.Version)
	p.Description = strings.TrimSpace(p.Description)
	p.Properties = entity.CopyProperties(p.Properties)
	return p
}

func requireNumber(number string) (string, error) {
	number = strings.TrimSpace(number)
	if err := validation.Required(entity.PropNumber, number, "Product number is not provided"); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidNumber, err)
	}
	return number, nil
}
