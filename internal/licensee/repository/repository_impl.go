package repository

import (
	"github.com/smallbiznis/netlicensing/internal/licensee/domain"
	"github.com/smallbiznis/netlicensing/pkg/repository"
	"github.com/smallbiznis/netlicensing/pkg/rest"
)

func Provide(transport rest.Transport) domain.Repository {
	return repository.ProvideStore[domain.Licensee](transport, rest.ResourceLicensee, rest.TypeLicensee)
}
