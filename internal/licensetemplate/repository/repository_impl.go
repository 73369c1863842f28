package repository

import (
	"github.com/smallbiznis/netlicensing/internal/licensetemplate/domain"
	"github.com/smallbiznis/netlicensing/pkg/repository"
	"github.com/smallbiznis/netlicensing/pkg/rest"
)

func Provide(transport rest.Transport) domain.Repository {
	return repository.ProvideStore[domain.LicenseTemplate](transport, rest.ResourceLicenseTemplate, rest.TypeLicenseTemplate)
}
