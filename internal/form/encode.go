// Package form converts entities to the form parameters the service
// accepts and decodes response items back into entities.
package form

import (
	"net/url"
	"slices"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/netlicensing/internal/apierror"
	"github.com/smallbiznis/netlicensing/internal/entity"
	licensedomain "github.com/smallbiznis/netlicensing/internal/license/domain"
	licenseedomain "github.com/smallbiznis/netlicensing/internal/licensee/domain"
	templatedomain "github.com/smallbiznis/netlicensing/internal/licensetemplate/domain"
	"github.com/smallbiznis/netlicensing/internal/money"
	productdomain "github.com/smallbiznis/netlicensing/internal/product/domain"
	moduledomain "github.com/smallbiznis/netlicensing/internal/productmodule/domain"
	"github.com/smallbiznis/netlicensing/internal/visitor"
	"github.com/smallbiznis/netlicensing/pkg/rest"
)

// Encode returns the form parameters for value. Unset fields are omitted so
// the same encoding serves create and partial update.
func Encode(value any) (url.Values, error) {
	enc := &encoder{values: url.Values{}}
	if err := visitor.Dispatch(enc, value); err != nil {
		return nil, err
	}
	return enc.values, nil
}

// ToItem renders value as a response item of itemType, including the
// read-only state the service reports (inUse).
func ToItem(itemType string, value any) (rest.Item, error) {
	enc := &encoder{values: url.Values{}, withState: true}
	if err := visitor.Dispatch(enc, value); err != nil {
		return rest.Item{}, err
	}
	item := rest.Item{Type: itemType}
	names := make([]string, 0, len(enc.values))
	for name := range enc.values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		item.Add(name, enc.values.Get(name))
	}
	return item, nil
}

type encoder struct {
	values    url.Values
	withState bool
}

func (e *encoder) state(inUse bool) {
	if e.withState {
		e.values.Set(entity.PropInUse, strconv.FormatBool(inUse))
	}
}

func (e *encoder) set(name, value string) {
	if value != "" {
		e.values.Set(name, value)
	}
}

func (e *encoder) setBool(name string, value *bool) {
	if value != nil {
		e.values.Set(name, strconv.FormatBool(*value))
	}
}

func (e *encoder) setPrice(name string, value *decimal.Decimal) {
	if value != nil {
		e.values.Set(name, money.Round(*value).StringFixed(money.Scale))
	}
}

func (e *encoder) base(b *entity.Base) {
	e.set(entity.PropNumber, b.Number)
	e.setBool(entity.PropActive, b.Active)
}

// properties writes custom properties last. Names in fields belong to typed
// fields of the entity and are never sent from the custom map, whether or
// not the typed field is set.
func (e *encoder) properties(h entity.PropertyHolder, fields []string) {
	for name, value := range h.CustomProperties() {
		if name == "" || slices.Contains(fields, name) {
			continue
		}
		if _, set := e.values[name]; set {
			continue
		}
		e.values.Set(name, value)
	}
}

func (e *encoder) VisitProduct(p *productdomain.Product) error {
	e.base(&p.Base)
	e.set(entity.PropName, p.Name)
	e.set(productdomain.PropVersion, p.Version)
	e.set(productdomain.PropDescription, p.Description)
	e.set(productdomain.PropLicensingInfo, p.LicensingInfo)
	e.setBool(productdomain.PropLicenseeAutoCreate, p.LicenseeAutoCreate)
	e.state(p.InUse)
	e.properties(&p.Base, productdomain.Fields)
	return nil
}

func (e *encoder) VisitProductModule(m *moduledomain.ProductModule) error {
	e.base(&m.Base)
	e.set(entity.PropName, m.Name)
	e.set(moduledomain.PropLicensingModel, m.LicensingModel)
	e.set(moduledomain.PropProductNumber, m.ProductNumber)
	e.state(m.InUse)
	e.properties(&m.Base, moduledomain.Fields)
	return nil
}

func (e *encoder) VisitLicenseTemplate(t *templatedomain.LicenseTemplate) error {
	e.base(&t.Base)
	e.set(entity.PropName, t.Name)
	e.set(templatedomain.PropLicenseType, t.LicenseType)
	e.setPrice(templatedomain.PropPrice, t.Price)
	e.set(templatedomain.PropCurrency, t.Currency)
	e.setBool(templatedomain.PropAutomatic, t.Automatic)
	e.setBool(templatedomain.PropHidden, t.Hidden)
	e.setBool(templatedomain.PropHideLicenses, t.HideLicenses)
	e.set(templatedomain.PropProductModuleNumber, t.ProductModuleNumber)
	e.state(t.InUse)
	e.properties(&t.Base, templatedomain.Fields)
	return nil
}

func (e *encoder) VisitLicensee(l *licenseedomain.Licensee) error {
	e.base(&l.Base)
	e.set(entity.PropName, l.Name)
	e.set(licenseedomain.PropProductNumber, l.ProductNumber)
	e.setBool(licenseedomain.PropMarkedForTransfer, l.MarkedForTransfer)
	e.state(l.InUse)
	e.properties(&l.Base, licenseedomain.Fields)
	return nil
}

func (e *encoder) VisitLicense(l *licensedomain.License) error {
	e.base(&l.Base)
	e.set(entity.PropName, l.Name)
	e.set(licensedomain.PropLicenseeNumber, l.LicenseeNumber)
	e.set(licensedomain.PropLicenseTemplateNumber, l.LicenseTemplateNumber)
	e.setPrice(licensedomain.PropPrice, l.Price)
	e.set(licensedomain.PropCurrency, l.Currency)
	e.setBool(licensedomain.PropHidden, l.Hidden)
	e.state(l.InUse)
	e.properties(&l.Base, licensedomain.Fields)
	return nil
}

func (e *encoder) VisitBase(b entity.Based) error {
	base := b.EntityBase()
	if base == nil {
		return nil
	}
	e.base(base)
	e.properties(base, entity.Fields())
	return nil
}

func (e *encoder) VisitProperties(h entity.PropertyHolder) error {
	e.properties(h, entity.Fields())
	return nil
}

func (e *encoder) VisitDefault(value any) error {
	return apierror.NoHandler(value)
}
