package service

import (
	"context"
	"testing"

	"github.com/smallbiznis/netlicensing/internal/apierror"
	"github.com/smallbiznis/netlicensing/internal/entity"
	"github.com/smallbiznis/netlicensing/internal/productmodule/domain"
	"github.com/smallbiznis/netlicensing/pkg/repository/repositorytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRepository = repositorytest.Repository[domain.ProductModule]

func newService(repo domain.Repository) domain.Service {
	return New(Params{Log: zap.NewNop(), Repo: repo})
}

func TestCreateCanonicalizesLicensingModel(t *testing.T) {
	repo := &mockRepository{}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(m *domain.ProductModule) bool {
		return m.ProductNumber == "P001" && m.LicensingModel == "TryAndBuy" && m.IsActive()
	})).Return(&domain.ProductModule{Base: entity.Base{Number: "M001"}}, nil).Once()

	created, err := newService(repo).Create(context.Background(), "P001", &domain.ProductModule{
		Name:           "Module",
		LicensingModel: "tryandbuy",
	})
	require.NoError(t, err)
	assert.Equal(t, "M001", created.Number)
	repo.AssertExpectations(t)
}

func TestCreateRejectsWithoutCallingRepository(t *testing.T) {
	cases := []struct {
		name    string
		product string
		module  *domain.ProductModule
		message string
	}{
		{name: "missing_product", module: &domain.ProductModule{Name: "M", LicensingModel: "Rental"}, message: "Product number is not provided"},
		{name: "missing_name", product: "P001", module: &domain.ProductModule{LicensingModel: "Rental"}, message: "Product module name is required"},
		{name: "unknown_model", product: "P001", module: &domain.ProductModule{Name: "M", LicensingModel: "Lottery"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockRepository{}
			_, err := newService(repo).Create(context.Background(), tc.product, tc.module)
			require.Error(t, err)
			assert.ErrorIs(t, err, apierror.ErrMalformedRequest)
			if tc.message != "" {
				var apiErr *apierror.Error
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tc.message, apiErr.Message)
			}
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateLeavesUnsetFields(t *testing.T) {
	repo := &mockRepository{}
	repo.On("Update", mock.Anything, "M001", mock.MatchedBy(func(m *domain.ProductModule) bool {
		return m.Name == "Renamed" && m.LicensingModel == "" && m.Active == nil
	})).Return(&domain.ProductModule{Base: entity.Base{Number: "M001"}, Name: "Renamed"}, nil).Once()

	updated, err := newService(repo).Update(context.Background(), "M001", &domain.ProductModule{Name: " Renamed "})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	_, err = newService(repo).Update(context.Background(), "M001", nil)
	assert.ErrorIs(t, err, domain.ErrNilModule)
	repo.AssertExpectations(t)
}
