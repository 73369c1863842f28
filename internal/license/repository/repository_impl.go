package repository

import (
	"github.com/smallbiznis/netlicensing/internal/license/domain"
	"github.com/smallbiznis/netlicensing/pkg/repository"
	"github.com/smallbiznis/netlicensing/pkg/rest"
)

func Provide(transport rest.Transport) domain.Repository {
	return repository.ProvideStore[domain.License](transport, rest.ResourceLicense, rest.TypeLicense)
}
