package form

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/netlicensing/internal/apierror"
	"github.com/smallbiznis/netlicensing/internal/entity"
	licensedomain "github.com/smallbiznis/netlicensing/internal/license/domain"
	licenseedomain "github.com/smallbiznis/netlicensing/internal/licensee/domain"
	templatedomain "github.com/smallbiznis/netlicensing/internal/licensetemplate/domain"
	productdomain "github.com/smallbiznis/netlicensing/internal/product/domain"
	moduledomain "github.com/smallbiznis/netlicensing/internal/productmodule/domain"
	"github.com/smallbiznis/netlicensing/internal/visitor"
	"github.com/smallbiznis/netlicensing/pkg/rest"
)

var (
	ErrDecode       = errors.New("invalid_response_item")
	ErrItemNotFound = errors.New("response_item_missing")
	ErrNotAPointer  = errors.New("decode_target_not_pointer")
)

// Decode fills target, a pointer to an entity, from item. Properties the
// entity has no field for are kept as custom properties.
func Decode(item rest.Item, target any) error {
	switch target.(type) {
	case productdomain.Product, moduledomain.ProductModule, templatedomain.LicenseTemplate,
		licenseedomain.Licensee, licensedomain.License:
		return fmt.Errorf("%w: %T", ErrNotAPointer, target)
	}
	dec := &decoder{props: item.PropertyMap()}
	if err := visitor.Dispatch(dec, target); err != nil {
		return err
	}
	return dec.err
}

// DecodeFirst decodes the first item of itemType in env.
func DecodeFirst[T any](env *rest.Envelope, itemType string) (*T, error) {
	item, ok := env.FirstItem(itemType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, itemType)
	}
	var out T
	if err := Decode(item, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DecodePage decodes every item of itemType in env together with the
// paging attributes.
func DecodePage[T any](env *rest.Envelope, itemType string) (*entity.Page[T], error) {
	items := env.ItemsOf(itemType)
	info := env.Page()
	page := &entity.Page[T]{
		Content:     make([]T, 0, len(items)),
		PageNumber:  info.PageNumber,
		ItemsNumber: info.ItemsNumber,
		TotalPages:  info.TotalPages,
		TotalItems:  info.TotalItems,
		HasNext:     info.HasNext,
	}
	for _, item := range items {
		var v T
		if err := Decode(item, &v); err != nil {
			return nil, err
		}
		page.Content = append(page.Content, v)
	}
	return page, nil
}

type decoder struct {
	props map[string]string
	err   error
}

// take removes and returns a named property.
func (d *decoder) take(name string) string {
	v := d.props[name]
	delete(d.props, name)
	return v
}

func (d *decoder) takeBool(name string) *bool {
	raw, ok := d.props[name]
	delete(d.props, name)
	if !ok || raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		d.fail(name, raw)
		return nil
	}
	return &v
}

func (d *decoder) takeFlag(name string) bool {
	v := d.takeBool(name)
	return v != nil && *v
}

func (d *decoder) takePrice(name string) *decimal.Decimal {
	raw := d.take(name)
	if raw == "" {
		return nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		d.fail(name, raw)
		return nil
	}
	return &v
}

func (d *decoder) fail(name, raw string) {
	if d.err == nil {
		d.err = fmt.Errorf("%w: property %q has value %q", ErrDecode, name, raw)
	}
}

func (d *decoder) base(b *entity.Base) {
	b.Number = d.take(entity.PropNumber)
	b.Active = d.takeBool(entity.PropActive)
}

// leftovers moves the remaining properties into the custom property map.
func (d *decoder) leftovers(b *entity.Base) {
	if len(d.props) == 0 {
		return
	}
	b.Properties = make(map[string]string, len(d.props))
	for k, v := range d.props {
		b.Properties[k] = v
	}
}

func (d *decoder) VisitProduct(p *productdomain.Product) error {
	d.base(&p.Base)
	p.Name = d.take(entity.PropName)
	p.Version = d.take(productdomain.PropVersion)
	p.Description = d.take(productdomain.PropDescription)
	p.LicensingInfo = d.take(productdomain.PropLicensingInfo)
	p.LicenseeAutoCreate = d.takeBool(productdomain.PropLicenseeAutoCreate)
	p.InUse = d.takeFlag(entity.PropInUse)
	d.leftovers(&p.Base)
	return nil
}

func (d *decoder) VisitProductModule(m *moduledomain.ProductModule) error {
	d.base(&m.Base)
	m.Name = d.take(entity.PropName)
	m.LicensingModel = d.take(moduledomain.PropLicensingModel)
	m.ProductNumber = d.take(moduledomain.PropProductNumber)
	m.InUse = d.takeFlag(entity.PropInUse)
	d.leftovers(&m.Base)
	return nil
}

func (d *decoder) VisitLicenseTemplate(t *templatedomain.LicenseTemplate) error {
	d.base(&t.Base)
	t.Name = d.take(entity.PropName)
	t.LicenseType = d.take(templatedomain.PropLicenseType)
	t.Price = d.takePrice(templatedomain.PropPrice)
	t.Currency = d.take(templatedomain.PropCurrency)
	t.Automatic = d.takeBool(templatedomain.PropAutomatic)
	t.Hidden = d.takeBool(templatedomain.PropHidden)
	t.HideLicenses = d.takeBool(templatedomain.PropHideLicenses)
	t.ProductModuleNumber = d.take(templatedomain.PropProductModuleNumber)
	t.InUse = d.takeFlag(entity.PropInUse)
	d.leftovers(&t.Base)
	return nil
}

func (d *decoder) VisitLicensee(l *licenseedomain.Licensee) error {
	d.base(&l.Base)
	l.Name = d.take(entity.PropName)
	l.ProductNumber = d.take(licenseedomain.PropProductNumber)
	l.MarkedForTransfer = d.takeBool(licenseedomain.PropMarkedForTransfer)
	l.InUse = d.takeFlag(entity.PropInUse)
	d.leftovers(&l.Base)
	return nil
}

func (d *decoder) VisitLicense(l *licensedomain.License) error {
	d.base(&l.Base)
	l.Name = d.take(entity.PropName)
	l.LicenseeNumber = d.take(licensedomain.PropLicenseeNumber)
	l.LicenseTemplateNumber = d.take(licensedomain.PropLicenseTemplateNumber)
	l.Price = d.takePrice(licensedomain.PropPrice)
	l.Currency = d.take(licensedomain.PropCurrency)
	l.Hidden = d.takeBool(licensedomain.PropHidden)
	l.InUse = d.takeFlag(entity.PropInUse)
	d.leftovers(&l.Base)
	return nil
}

func (d *decoder) VisitBase(b entity.Based) error {
	base := b.EntityBase()
	if base == nil {
		return nil
	}
	d.base(base)
	d.leftovers(base)
	return nil
}

func (d *decoder) VisitProperties(h entity.PropertyHolder) error {
	return apierror.NoHandler(h)
}

func (d *decoder) VisitDefault(value any) error {
	return apierror.NoHandler(value)
}
