package visitor

import (
	"errors"
	"testing"

	"github.com/smallbiznis/netlicensing/internal/entity"
	licensedomain "github.com/smallbiznis/netlicensing/internal/license/domain"
	licenseedomain "github.com/smallbiznis/netlicensing/internal/licensee/domain"
	templatedomain "github.com/smallbiznis/netlicensing/internal/licensetemplate/domain"
	productdomain "github.com/smallbiznis/netlicensing/internal/product/domain"
	moduledomain "github.com/smallbiznis/netlicensing/internal/productmodule/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder counts which handler ran.
type recorder struct {
	calls []string
}

func (r *recorder) visitor() Funcs {
	return Funcs{
		BaseVisitor: BaseVisitor{Default: func(any) error {
			r.calls = append(r.calls, "default")
			return nil
		}},
		Product: func(*productdomain.Product) error {
			r.calls = append(r.calls, "product")
			return nil
		},
		ProductModule: func(*moduledomain.ProductModule) error {
			r.calls = append(r.calls, "productmodule")
			return nil
		},
		LicenseTemplate: func(*templatedomain.LicenseTemplate) error {
			r.calls = append(r.calls, "licensetemplate")
			return nil
		},
		Licensee: func(*licenseedomain.Licensee) error {
			r.calls = append(r.calls, "licensee")
			return nil
		},
		License: func(*licensedomain.License) error {
			r.calls = append(r.calls, "license")
			return nil
		},
		Base: func(entity.Based) error {
			r.calls = append(r.calls, "base")
			return nil
		},
		Properties: func(entity.PropertyHolder) error {
			r.calls = append(r.calls, "properties")
			return nil
		},
	}
}

// customEntity embeds Base but is not one of the known entity types.
type customEntity struct {
	entity.Base
}

// bundleProduct extends Product with fields of its own.
type bundleProduct struct {
	productdomain.Product
	Bundle string
}

type trialTemplate struct {
	templatedomain.LicenseTemplate
}

// propsOnly exposes custom properties without embedding Base.
type propsOnly struct{}

func (propsOnly) CustomProperties() map[string]string { return map[string]string{"a": "b"} }

func TestDispatchResolution(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  string
	}{
		{name: "product_pointer", value: &productdomain.Product{}, want: "product"},
		{name: "product_value", value: productdomain.Product{}, want: "product"},
		{name: "product_module", value: &moduledomain.ProductModule{}, want: "productmodule"},
		{name: "license_template", value: &templatedomain.LicenseTemplate{}, want: "licensetemplate"},
		{name: "license_template_value", value: templatedomain.LicenseTemplate{}, want: "licensetemplate"},
		{name: "licensee", value: &licenseedomain.Licensee{}, want: "licensee"},
		{name: "license", value: &licensedomain.License{}, want: "license"},
		{name: "embedded_product", value: &bundleProduct{}, want: "product"},
		{name: "embedded_license_template", value: &trialTemplate{}, want: "licensetemplate"},
		{name: "embedded_base", value: &customEntity{}, want: "base"},
		{name: "bare_base", value: &entity.Base{}, want: "base"},
		{name: "capability_only", value: propsOnly{}, want: "properties"},
		{name: "unrelated", value: 42, want: "default"},
		{name: "nil_value", value: nil, want: "default"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &recorder{}
			require.NoError(t, Dispatch(rec.visitor(), tc.value))
			assert.Equal(t, []string{tc.want}, rec.calls)
		})
	}
}

func TestDispatchEmbeddedEntityReceivesInnerValue(t *testing.T) {
	var got *productdomain.Product
	v := Funcs{
		Product: func(p *productdomain.Product) error {
			got = p
			return nil
		},
		Base: func(entity.Based) error {
			t.Fatal("embedded product dispatched to base handler")
			return nil
		},
	}

	bundle := &bundleProduct{Product: productdomain.Product{Name: "Suite"}, Bundle: "all"}
	require.NoError(t, Dispatch(v, bundle))
	assert.Same(t, &bundle.Product, got)
}

func TestDispatchUnoverriddenVariantFallsBackToDefault(t *testing.T) {
	var got any
	v := Funcs{BaseVisitor: BaseVisitor{Default: func(value any) error {
		got = value
		return nil
	}}}

	tmpl := &templatedomain.LicenseTemplate{Name: "tmpl"}
	require.NoError(t, Dispatch(v, tmpl))
	assert.Same(t, tmpl, got)
}

func TestDispatchPropagatesHandlerError(t *testing.T) {
	boom := errors.New("boom")
	v := Funcs{Licensee: func(*licenseedomain.Licensee) error { return boom }}

	err := Dispatch(v, &licenseedomain.Licensee{})
	assert.ErrorIs(t, err, boom)
}

func TestDispatchNilVisitor(t *testing.T) {
	err := Dispatch(nil, &productdomain.Product{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoHandler)
}

func TestBaseVisitorWithoutDefault(t *testing.T) {
	err := Dispatch(BaseVisitor{}, "plain string")
	assert.ErrorIs(t, err, ErrNoHandler)
	assert.Contains(t, err.Error(), "string")
}
