package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/smallbiznis/netlicensing/internal/entity"
	"github.com/smallbiznis/netlicensing/internal/license/domain"
	"github.com/smallbiznis/netlicensing/internal/money"
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
		log:  p.Log.Named("license.service"),
		repo: p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.License, error) {
	if req.License == nil {
		return nil, domain.ErrNilLicense
	}

	lic := trimmed(*req.License)
	lic.LicenseeNumber = strings.TrimSpace(req.LicenseeNumber)
	lic.LicenseTemplateNumber = strings.TrimSpace(req.LicenseTemplateNumber)
	if err := validation.Required(domain.PropLicenseeNumber, lic.LicenseeNumber, "Licensee number is not provided"); err != nil {
		return nil, err
	}
	if err := validation.Required(domain.PropLicenseTemplateNumber, lic.LicenseTemplateNumber, "License template number is not provided"); err != nil {
		return nil, err
	}
	if err := normalize(&lic); err != nil {
		return nil, err
	}
	lic.Active = entity.DefaultBool(req.License.Active, true)
	lic.Hidden = entity.DefaultBool(req.License.Hidden, false)

	created, err := s.repo.Create(ctx, &lic)
	if err != nil {
		return nil, err
	}
	s.log.Debug("license created",
		zap.String("number", created.Number),
		zap.String("licensee_number", lic.LicenseeNumber),
		zap.String("license_template_number", lic.LicenseTemplateNumber),
	)
	return created, nil
}

func (s *Service) Get(ctx context.Context, number string) (*domain.License, error) {
	number, err := requireNumber(number)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, number)
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*entity.Page[domain.License], error) {
	return s.repo.List(ctx, strings.TrimSpace(req.Filter))
}

func (s *Service) Update(ctx context.Context, number string, license *domain.License) (*domain.License, error) {
	number, err := requireNumber(number)
	if err != nil {
		return nil, err
	}
	if license == nil {
		return nil, domain.ErrNilLicense
	}

	lic := trimmed(*license)
	if err := normalize(&lic); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, number, &lic)
}

func (s *Service) Delete(ctx context.Context, number string, forceCascade bool) error {
	number, err := requireNumber(number)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, number, forceCascade)
}

func normalize(l *domain.License) error {
	if err := validation.NoReservedProperties(l.Properties, domain.Fields); err != nil {
		return err
	}
	if err := validation.Struct(l); err != nil {
		return err
	}
	price, currency, err := money.Normalize(l.Price, l.Currency)
	if err != nil {
		return err
	}
	l.Price, l.Currency = price, currency
	return nil
}

func trimmed(l domain.License) domain.License {
	l.Number = strings.TrimSpace(l.Number)
	l.Name = strings.TrimSpace(l.Name)
	l.Currency = strings.TrimSpace(l.Currency)
	l.LicenseeNumber = strings.TrimSpace(l.LicenseeNumber)
	l.LicenseTemplateNumber = strings.TrimSpace(l.LicenseTemplateNumber)
	l.Properties = entity.CopyProperties(l.Properties)
	return l
}

func requireNumber(number string) (string, error) {
	number = strings.TrimSpace(number)
	if err := validation.Required(entity.PropNumber, number, "License number is not provided"); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidNumber, err)
	}
	return number, nil
}
