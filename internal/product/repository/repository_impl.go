package repository

import (
	"github.com/smallbiznis/netlicensing/internal/product/domain"
	"github.com/smallbiznis/netlicensing/pkg/repository"
	"github.com/smallbiznis/netlicensing/pkg/rest"
)

func Provide(transport rest.Transport) domain.Repository {
	return repository.ProvideStore[domain.Product](transport, rest.ResourceProduct, rest.TypeProduct)
}
