package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/smallbiznis/netlicensing/internal/entity"
	"github.com/smallbiznis/netlicensing/internal/productmodule/domain"
	refdomain "github.com/smallbiznis/netlicensing/internal/reference/domain"
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
		log:  p.Log.Named("productmodule.service"),
		repo: p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, productNumber string, module *domain.ProductModule) (*domain.ProductModule, error) {
	if module == nil {
		return nil, domain.ErrNilModule
	}

	req := trimmed(*module)
	if err := validation.NoReservedProperties(req.Properties, domain.Fields); err != nil {
		return nil, err
	}
	req.ProductNumber = strings.TrimSpace(productNumber)
	if err := validation.Required(domain.PropProductNumber, req.ProductNumber, "Product number is not provided"); err != nil {
		return nil, err
	}
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	if err := canonicalModel(&req); err != nil {
		return nil, err
	}
	req.Active = entity.DefaultBool(module.Active, true)

	created, err := s.repo.Create(ctx, &req)
	if err != nil {
		return nil, err
	}
	s.log.Debug("product module created",
		zap.String("number", created.Number),
		zap.String("product_number", req.ProductNumber),
	)
	return created, nil
}

func (s *Service) Get(ctx context.Context, number string) (*domain.ProductModule, error) {
	number, err := requireNumber(number)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, number)
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*entity.Page[domain.ProductModule], error) {
	return s.repo.List(ctx, strings.TrimSpace(req.Filter))
}

func (s *Service) Update(ctx context.Context, number string, module *domain.ProductModule) (*domain.ProductModule, error) {
	number, err := requireNumber(number)
	if err != nil {
		return nil, err
	}
	if module == nil {
		return nil, domain.ErrNilModule
	}

	req := trimmed(*module)
	if err := validation.NoReservedProperties(req.Properties, domain.Fields); err != nil {
		return nil, err
	}
	if err := canonicalModel(&req); err != nil {
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

// canonicalModel rewrites the licensing model to its canonical spelling.
func canonicalModel(m *domain.ProductModule) error {
	if m.LicensingModel == "" {
		return nil
	}
	model, err := refdomain.ParseLicensingModel(m.LicensingModel)
	if err != nil {
		return err
	}
	m.LicensingModel = string(model)
	return nil
}

func trimmed(m domain.ProductModule) domain.ProductModule {
	m.Number = strings.TrimSpace(m.Number)
	m.Name = strings.TrimSpace(m.Name)
	m.LicensingModel = strings.TrimSpace(m.LicensingModel)
	m.ProductNumber = strings.TrimSpace(m.ProductNumber)
	m.Properties = entity.CopyProperties(m.Properties)
	return m
}

func requireNumber(number string) (string, error) {
	number = strings.TrimSpace(number)
	if err := validation.Required(entity.PropNumber, number, "Product module number is not provided"); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidNumber, err)
	}
	return number, nil
}
