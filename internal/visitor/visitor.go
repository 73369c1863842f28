// Package visitor routes an entity value to exactly one handler, chosen by
// the value's type.
//
// Resolution order:
//
//  1. the concrete entity type (Product, ProductModule, ...), value or pointer
//  2. a struct embedding one of those entities, handled as that entity
//  3. anything embedding entity.Base, handled by VisitBase
//  4. anything exposing custom properties, handled by VisitProperties
//  5. VisitDefault
//
// The set of entity types is closed, so dispatch is a type switch and can
// never find a missing variant at runtime.
package visitor

import (
	"github.com/smallbiznis/netlicensing/internal/apierror"
	"github.com/smallbiznis/netlicensing/internal/entity"
	licensedomain "github.com/smallbiznis/netlicensing/internal/license/domain"
	licenseedomain "github.com/smallbiznis/netlicensing/internal/licensee/domain"
	templatedomain "github.com/smallbiznis/netlicensing/internal/licensetemplate/domain"
	productdomain "github.com/smallbiznis/netlicensing/internal/product/domain"
	moduledomain "github.com/smallbiznis/netlicensing/internal/productmodule/domain"
)

// ErrNoHandler is returned when there is nothing to dispatch to.
var ErrNoHandler = apierror.ErrNoHandler

// Accessors promoted from an embedded entity.
type (
	productEmbedder         interface{ AsProduct() *productdomain.Product }
	productModuleEmbedder   interface{ AsProductModule() *moduledomain.ProductModule }
	licenseTemplateEmbedder interface{ AsLicenseTemplate() *templatedomain.LicenseTemplate }
	licenseeEmbedder        interface{ AsLicensee() *licenseedomain.Licensee }
	licenseEmbedder         interface{ AsLicense() *licensedomain.License }
)

type Visitor interface {
	VisitProduct(*productdomain.Product) error
	VisitProductModule(*moduledomain.ProductModule) error
	VisitLicenseTemplate(*templatedomain.LicenseTemplate) error
	VisitLicensee(*licenseedomain.Licensee) error
	VisitLicense(*licensedomain.License) error

	// VisitBase receives values that are not one of the entities above but
	// embed entity.Base.
	VisitBase(entity.Based) error
	// VisitProperties receives values that only expose custom properties.
	VisitProperties(entity.PropertyHolder) error
	VisitDefault(any) error
}

// Dispatch invokes the one handler of v that matches value.
func Dispatch(v Visitor, value any) error {
	if v == nil {
		return apierror.NoHandler(value)
	}

	switch x := value.(type) {
	case *productdomain.Product:
		return v.VisitProduct(x)
	case productdomain.Product:
		return v.VisitProduct(&x)
	case *moduledomain.ProductModule:
		return v.VisitProductModule(x)
	case moduledomain.ProductModule:
		return v.VisitProductModule(&x)
	case *templatedomain.LicenseTemplate:
		return v.VisitLicenseTemplate(x)
	case templatedomain.LicenseTemplate:
		return v.VisitLicenseTemplate(&x)
	case *licenseedomain.Licensee:
		return v.VisitLicensee(x)
	case licenseedomain.Licensee:
		return v.VisitLicensee(&x)
	case *licensedomain.License:
		return v.VisitLicense(x)
	case licensedomain.License:
		return v.VisitLicense(&x)
	case productEmbedder:
		return v.VisitProduct(x.AsProduct())
	case productModuleEmbedder:
		return v.VisitProductModule(x.AsProductModule())
	case licenseTemplateEmbedder:
		return v.VisitLicenseTemplate(x.AsLicenseTemplate())
	case licenseeEmbedder:
		return v.VisitLicensee(x.AsLicensee())
	case licenseEmbedder:
		return v.VisitLicense(x.AsLicense())
	case entity.Based:
		return v.VisitBase(x)
	case entity.PropertyHolder:
		return v.VisitProperties(x)
	default:
		return v.VisitDefault(value)
	}
}

// BaseVisitor implements every method by falling through to Default. Embed
// it and override only the variants of interest. With Default unset the
// fall-through reports ErrNoHandler.
type BaseVisitor struct {
	Default func(value any) error
}

func (b BaseVisitor) fallback(value any) error {
	if b.Default == nil {
		return apierror.NoHandler(value)
	}
	return b.Default(value)
}

func (b BaseVisitor) VisitProduct(p *productdomain.Product) error { return b.fallback(p) }

func (b BaseVisitor) VisitProductModule(m *moduledomain.ProductModule) error {
	return b.fallback(m)
}

func (b BaseVisitor) VisitLicenseTemplate(t *templatedomain.LicenseTemplate) error {
	return b.fallback(t)
}

func (b BaseVisitor) VisitLicensee(l *licenseedomain.Licensee) error { return b.fallback(l) }

func (b BaseVisitor) VisitLicense(l *licensedomain.License) error { return b.fallback(l) }

func (b BaseVisitor) VisitBase(e entity.Based) error { return b.fallback(e) }

func (b BaseVisitor) VisitProperties(p entity.PropertyHolder) error { return b.fallback(p) }

func (b BaseVisitor) VisitDefault(value any) error { return b.fallback(value) }

// Funcs adapts plain functions to a Visitor. Nil entries fall through to
// Default.
type Funcs struct {
	BaseVisitor

	Product         func(*productdomain.Product) error
	ProductModule   func(*moduledomain.ProductModule) error
	LicenseTemplate func(*templatedomain.LicenseTemplate) error
	Licensee        func(*licenseedomain.Licensee) error
	License         func(*licensedomain.License) error
	Base            func(entity.Based) error
	Properties      func(entity.PropertyHolder) error
}

func (f Funcs) VisitProduct(p *productdomain.Product) error {
	if f.Product == nil {
		return f.BaseVisitor.VisitProduct(p)
	}
	return f.Product(p)
}

func (f Funcs) VisitProductModule(m *moduledomain.ProductModule) error {
	if f.ProductModule == nil {
		return f.BaseVisitor.VisitProductModule(m)
	}
	return f.ProductModule(m)
}

func (f Funcs) VisitLicenseTemplate(t *templatedomain.LicenseTemplate) error {
	if f.LicenseTemplate == nil {
		return f.BaseVisitor.VisitLicenseTemplate(t)
	}
	return f.LicenseTemplate(t)
}

func (f Funcs) VisitLicensee(l *licenseedomain.Licensee) error {
	if f.Licensee == nil {
		return f.BaseVisitor.VisitLicensee(l)
	}
	return f.Licensee(l)
}

func (f Funcs) VisitLicense(l *licensedomain.License) error {
	if f.License == nil {
		return f.BaseVisitor.VisitLicense(l)
	}
	return f.License(l)
}

func (f Funcs) VisitBase(e entity.Based) error {
	if f.Base == nil {
		return f.BaseVisitor.VisitBase(e)
	}
	return f.Base(e)
}

func (f Funcs) VisitProperties(p entity.PropertyHolder) error {
	if f.Properties == nil {
		return f.BaseVisitor.VisitProperties(p)
	}
	return f.Properties(p)
}
