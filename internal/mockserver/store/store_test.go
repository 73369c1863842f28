package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/netlicensing/internal/apierror"
	"github.com/smallbiznis/netlicensing/internal/entity"
	templatedomain "github.com/smallbiznis/netlicensing/internal/licensetemplate/domain"
	"github.com/smallbiznis/netlicensing/pkg/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Open(DBConfig{}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return New(db, node)
}

// seed creates product P1, module M1 and template E1.
func seed(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	_, err := s.Create(ctx, rest.ResourceProduct, map[string]string{"number": "P1", "name": "Demo", "version": "1.0"})
	require.NoError(t, err)
	_, err = s.Create(ctx, rest.ResourceProductModule, map[string]string{"number": "M1", "name": "Module", "productNumber": "P1"})
	require.NoError(t, err)
	_, err = s.Create(ctx, rest.ResourceLicenseTemplate, map[string]string{"number": "E1", "name": "Template", "productModuleNumber": "M1", "licenseType": "FEATURE"})
	require.NoError(t, err)
}

func TestCreateGeneratesNumber(t *testing.T) {
	s := newTestStore(t)

	e, err := s.Create(context.Background(), rest.ResourceProduct, map[string]string{"name": "Demo", "inUse": "true", "description": ""})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(e.Number, "P"))
	assert.Equal(t, map[string]string{"name": "Demo"}, e.Properties)
	assert.False(t, e.InUse)
}

func TestCreateRejectsDuplicateNumber(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	_, err := s.Create(context.Background(), rest.ResourceProduct, map[string]string{"number": "P1", "name": "Again"})
	assert.ErrorIs(t, err, apierror.ErrMalformedRequest)
}

func TestCreateRequiresExistingParent(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Create(context.Background(), rest.ResourceLicenseTemplate, map[string]string{"name": "T", "productModuleNumber": "M404"})
	require.ErrorIs(t, err, apierror.ErrNotFound)
	assert.Contains(t, err.Error(), "Requested product module does not exist.")
}

func TestGetReportsInUse(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)
	ctx := context.Background()

	module, err := s.Get(ctx, rest.ResourceProductModule, "M1")
	require.NoError(t, err)
	assert.True(t, module.InUse)

	template, err := s.Get(ctx, rest.ResourceLicenseTemplate, "E1")
	require.NoError(t, err)
	assert.False(t, template.InUse)

	_, err = s.Get(ctx, rest.ResourceLicense, "L404")
	assert.ErrorIs(t, err, apierror.ErrNotFound)

	_, err = s.Get(ctx, "voucher", "V1")
	assert.ErrorIs(t, err, ErrUnknownResource)
}

func TestListFilters(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)
	ctx := context.Background()
	_, err := s.Create(ctx, rest.ResourceLicenseTemplate, map[string]string{"number": "E2", "name": "Other", "productModuleNumber": "M1", "licenseType": "TIMEVOLUME", "timeVolume": "30"})
	require.NoError(t, err)

	all, err := s.List(ctx, rest.ResourceLicenseTemplate, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "E1", all[0].Number)

	timed, err := s.List(ctx, rest.ResourceLicenseTemplate, "licenseType=TIMEVOLUME; productModuleNumber=M1")
	require.NoError(t, err)
	require.Len(t, timed, 1)
	assert.Equal(t, "E2", timed[0].Number)

	byNumber, err := s.List(ctx, rest.ResourceLicenseTemplate, "number=E1")
	require.NoError(t, err)
	require.Len(t, byNumber, 1)

	_, err = s.List(ctx, rest.ResourceLicenseTemplate, "licenseType")
	assert.ErrorIs(t, err, apierror.ErrMalformedRequest)
}

func TestUpdateMergesPatch(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	e, err := s.Update(context.Background(), rest.ResourceLicenseTemplate, "E1", map[string]string{"name": "Renamed", "licenseType": "", "number": "E9"})
	require.NoError(t, err)

	assert.Equal(t, "E9", e.Number)
	assert.Equal(t, "Renamed", e.Properties["name"])
	assert.Equal(t, "FEATURE", e.Properties["licenseType"])
}

func TestUpdateKeepsNumberOfEntityInUse(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	_, err := s.Update(context.Background(), rest.ResourceProductModule, "M1", map[string]string{"number": "M2"})
	assert.ErrorIs(t, err, apierror.ErrIllegalOperation)

	_, err = s.Update(context.Background(), rest.ResourceProductModule, "M1", map[string]string{"productNumber": "P404"})
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestDeleteCascade(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)
	ctx := context.Background()

	err := s.Delete(ctx, rest.ResourceProduct, "P1", false)
	require.ErrorIs(t, err, apierror.ErrIllegalOperation)

	require.NoError(t, s.Delete(ctx, rest.ResourceProduct, "P1", true))

	for resource, number := range map[string]string{
		rest.ResourceProduct:         "P1",
		rest.ResourceProductModule:   "M1",
		rest.ResourceLicenseTemplate: "E1",
	} {
		_, err := s.Get(ctx, resource, number)
		assert.True(t, errors.Is(err, apierror.ErrNotFound), resource)
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)
	repo := Provide[templatedomain.LicenseTemplate](s, rest.ResourceLicenseTemplate)
	ctx := context.Background()

	price := decimal.RequireFromString("5.999")
	created, err := repo.Create(ctx, &templatedomain.LicenseTemplate{
		Base:                entity.Base{Active: entity.BoolPtr(true), Properties: map[string]string{"timeVolume": "30"}},
		Name:                "Yearly",
		LicenseType:         "TIMEVOLUME",
		Price:               &price,
		Currency:            "EUR",
		ProductModuleNumber: "M1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.Number)
	assert.Equal(t, "6.00", created.Price.StringFixed(2))
	assert.Equal(t, "30", created.Properties["timeVolume"])
	assert.False(t, created.InUse)

	page, err := repo.List(ctx, "licenseType=TIMEVOLUME")
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, "Yearly", page.Content[0].Name)

	require.NoError(t, repo.Delete(ctx, created.Number, false))
	_, err = repo.Get(ctx, created.Number)
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}
