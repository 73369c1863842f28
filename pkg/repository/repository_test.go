package repository

import (
	"context"
	"net/http"
	"testing"

	"github.com/smallbiznis/netlicensing/internal/apierror"
	"github.com/smallbiznis/netlicensing/internal/entity"
	licenseedomain "github.com/smallbiznis/netlicensing/internal/licensee/domain"
	"github.com/smallbiznis/netlicensing/pkg/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func licenseeItem(number, name string) rest.Item {
	return rest.Item{Type: rest.TypeLicensee, Properties: []rest.Property{
		{Name: "number", Value: number},
		{Name: "name", Value: name},
		{Name: "productNumber", Value: "P1"},
		{Name: "active", Value: "true"},
	}}
}

func TestStoreCreateEncodesAndDecodes(t *testing.T) {
	var got rest.Request
	transport := rest.TransportFunc(func(_ context.Context, req rest.Request) (*rest.Envelope, error) {
		got = req
		return &rest.Envelope{Items: rest.Items{Item: []rest.Item{licenseeItem("C1", "Customer")}}}, nil
	})

	repo := ProvideStore[licenseedomain.Licensee](transport, rest.ResourceLicensee, rest.TypeLicensee)
	created, err := repo.Create(context.Background(), &licenseedomain.Licensee{Name: "Customer", ProductNumber: "P1"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "licensee", got.Path())
	assert.Equal(t, "Customer", got.Params.Get("name"))
	assert.Equal(t, "P1", got.Params.Get("productNumber"))

	assert.Equal(t, "C1", created.Number)
	assert.True(t, created.IsActive())
}

func TestStoreListAndDelete(t *testing.T) {
	var paths []string
	transport := rest.TransportFunc(func(_ context.Context, req rest.Request) (*rest.Envelope, error) {
		paths = append(paths, req.Method+" "+req.Path()+" "+req.Params.Encode())
		if req.Method == http.MethodDelete {
			return &rest.Envelope{}, nil
		}
		return &rest.Envelope{Items: rest.Items{Item: []rest.Item{
			licenseeItem("C1", "One"),
			licenseeItem("C2", "Two"),
		}}}, nil
	})

	repo := ProvideStore[licenseedomain.Licensee](transport, rest.ResourceLicensee, rest.TypeLicensee)
	page, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, &entity.Page[licenseedomain.Licensee]{
		Content: []licenseedomain.Licensee{
			{Base: entity.Base{Number: "C1", Active: entity.BoolPtr(true)}, Name: "One", ProductNumber: "P1"},
			{Base: entity.Base{Number: "C2", Active: entity.BoolPtr(true)}, Name: "Two", ProductNumber: "P1"},
		},
		ItemsNumber: 2,
		TotalPages:  1,
		TotalItems:  2,
	}, page)

	require.NoError(t, repo.Delete(context.Background(), "C1", false))
	assert.Equal(t, []string{"GET licensee ", "DELETE licensee/C1 "}, paths)
}

func TestStorePropagatesTransportError(t *testing.T) {
	transport := rest.TransportFunc(func(context.Context, rest.Request) (*rest.Envelope, error) {
		return nil, apierror.NotFound("Requested licensee does not exist")
	})

	repo := ProvideStore[licenseedomain.Licensee](transport, rest.ResourceLicensee, rest.TypeLicensee)
	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}
