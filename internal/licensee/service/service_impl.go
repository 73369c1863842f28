package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/smallbiznis/netlicensing/internal/entity"
	"github.com/smallbiznis/netlicensing/internal/licensee/domain"
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
		log:  p.Log.Named("licensee.service"),
		repo: p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, productNumber string, licensee *domain.Licensee) (*domain.Licensee, error) {
	if licensee == nil {
		return nil, domain.ErrNilLicensee
	}

	req := trimmed(*licensee)
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
	req.Active = entity.DefaultBool(licensee.Active, true)

	created, err := s.repo.Create(ctx, &req)
	if err != nil {
		return nil, err
	}
	s.log.Debug("licensee created", zap.String("number", created.Number))
	return created, nil
}

func (s *Service) Get(ctx context.Context, number string) (*domain.Licensee, error) {
	number, err := requireNumber(number)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, number)
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*entity.Page[domain.Licensee], error) {
	return s.repo.List(ctx, strings.TrimSpace(req.Filter))
}

func (s *Service) Update(ctx context.Context, number string, licensee *domain.Licensee) (*domain.Licensee, error) {
	number, err := requireNumber(number)
	if err != nil {
		return nil, err
	}
	if licensee == nil {
		return nil, domain.ErrNilLicensee
	}

	req := trimmed(*licensee)
	if err := validation.NoReservedProperties(req.Properties, domain.Fields); err != nil {
		return nil, err
	}
	if err := validation.Struct(&req); err != nil {
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

func trimmed(l domain.Licensee) domain.Licensee {
	l.Number = strings.TrimSpace(l.Number)
	l.Name = strings.TrimSpace(l.Name)
	l.ProductNumber = strings.TrimSpace(l.ProductNumber)
	l.Properties = entity.CopyProperties(l.Properties)
	return l
}

func requireNumber(number string) (string, error) {
	number = strings.TrimSpace(number)
	if err := validation.Required(entity.PropNumber, number, "Licensee number is not provided"); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidNumber, err)
	}
	return number, nil
}
