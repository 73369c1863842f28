package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/smallbiznis/netlicensing/internal/apierror"
	"github.com/smallbiznis/netlicensing/internal/entity"
	"github.com/smallbiznis/netlicensing/internal/licensetemplate/domain"
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
		log:  p.Log.Named("licensetemplate.service"),
		repo: p.Repo,
	}
}

// Create validates and normalizes template before sending it. Nothing is
// sent when validation fails.
func (s *Service) Create(ctx context.Context, productModuleNumber string, template *domain.LicenseTemplate) (*domain.LicenseTemplate, error) {
	if template == nil {
		return nil, domain.ErrNilTemplate
	}

	in := *template
	in.ProductModuleNumber = productModuleNumber
	req, err := domain.Normalize(domain.OpCreate, in)
	if err != nil {
		s.log.Debug("license template rejected",
			zap.String("kind", string(apierror.KindOf(err))),
			zap.Error(err),
		)
		return nil, err
	}

	created, err := s.repo.Create(ctx, &req)
	if err != nil {
		return nil, err
	}
	s.log.Debug("license template created",
		zap.String("number", created.Number),
		zap.String("product_module_number", req.ProductModuleNumber),
	)
	return created, nil
}

func (s *Service) Get(ctx context.Context, number string) (*domain.LicenseTemplate, error) {
	number, err := requireNumber(number)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, number)
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*entity.Page[domain.LicenseTemplate], error) {
	return s.repo.List(ctx, strings.TrimSpace(req.Filter))
}

func (s *Service) Update(ctx context.Context, number string, template *domain.LicenseTemplate) (*domain.LicenseTemplate, error) {
	number, err := requireNumber(number)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, domain.ErrNilTemplate
	}

	req, err := domain.Normalize(domain.OpUpdate, *template)
	if err != nil {
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

func requireNumber(number string) (string, error) {
	number = strings.TrimSpace(number)
	if err := validation.Required(entity.PropNumber, number, "License template number is not provided"); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidNumber, err)
	}
	return number, nil
}
