package store

import (
	"github.com/smallbiznis/netlicensing/pkg/rest"
)

// Relation ties a property holding a parent number to the parent resource.
type Relation struct {
	Field    string
	Resource string
}

// Schema describes how one resource is stored.
type Schema struct {
	Resource string
	ItemType string
	// Label names the resource in messages ("license template").
	Label string
	// Prefix starts every generated number.
	Prefix  string
	Parents []Relation
}

// DefaultSchemas returns the licensing entity hierarchy: modules and
// licensees belong to a product, templates to a module, licenses to a
// licensee and a template.
func DefaultSchemas() []Schema {
	return []Schema{
		{
			Resource: rest.ResourceProduct,
			ItemType: rest.TypeProduct,
			Label:    "product",
			Prefix:   "P",
		},
		{
			Resource: rest.ResourceProductModule,
			ItemType: rest.TypeProductModule,
			Label:    "product module",
			Prefix:   "M",
			Parents:  []Relation{{Field: "productNumber", Resource: rest.ResourceProduct}},
		},
		{
			Resource: rest.ResourceLicenseTemplate,
			ItemType: rest.TypeLicenseTemplate,
			Label:    "license template",
			Prefix:   "E",
			Parents:  []Relation{{Field: "productModuleNumber", Resource: rest.ResourceProductModule}},
		},
		{
			Resource: rest.ResourceLicensee,
			ItemType: rest.TypeLicensee,
			Label:    "licensee",
			Prefix:   "I",
			Parents:  []Relation{{Field: "productNumber", Resource: rest.ResourceProduct}},
		},
		{
			Resource: rest.ResourceLicense,
			ItemType: rest.TypeLicense,
			Label:    "license",
			Prefix:   "L",
			Parents: []Relation{
				{Field: "licenseeNumber", Resource: rest.ResourceLicensee},
				{Field: "licenseTemplateNumber", Resource: rest.ResourceLicenseTemplate},
			},
		},
	}
}
