package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/smallbiznis/netlicensing/internal/apierror"
	refdomain "github.com/smallbiznis/netlicensing/internal/reference/domain"
)

// ErrValidatorInit is returned when custom rule registration fails.
var ErrValidatorInit = errors.New("validator initialization failed")

var (
	validate     *validator.Validate
	validateOnce sync.Once
	errValidate  error
)

func initValidator() (*validator.Validate, error) {
	vld := validator.New()

	// Report fields by their wire name rather than the Go field name.
	vld.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := vld.RegisterValidation("licensetype", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		_, err := refdomain.ParseLicenseType(value)
		return err == nil
	}); err != nil {
		return nil, fmt.Errorf("%w: failed to register 'licensetype': %w", ErrValidatorInit, err)
	}

	if err := vld.RegisterValidation("licensingmodel", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		_, err := refdomain.ParseLicensingModel(value)
		return err == nil
	}); err != nil {
		return nil, fmt.Errorf("%w: failed to register 'licensingmodel': %w", ErrValidatorInit, err)
	}

	return vld, nil
}

func getValidator() (*validator.Validate, error) {
	validateOnce.Do(func() {
		validate, errValidate = initValidator()
	})
	return validate, errValidate
}

// Struct checks the `validate` tags of payload and reports the first
// failure as a malformed request. The `label` tag names the field in the
// message ("License template name is required").
func Struct(payload any) error {
	vld, err := getValidator()
	if err != nil {
		return err
	}

	if err := vld.Struct(payload); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			return formatFieldError(payload, fieldErrors[0])
		}
		return apierror.MalformedRequest("", err.Error())
	}
	return nil
}

var messageFormatters = map[string]func(label, param string) string{
	"required": func(label, _ string) string {
		return label + " is required"
	},
	"licensetype": func(label, _ string) string {
		return label + " is not supported"
	},
	"licensingmodel": func(label, _ string) string {
		return label + " is not supported"
	},
	"oneof": func(label, param string) string {
		return fmt.Sprintf("%s must be one of [%s]", label, param)
	},
	"max": func(label, param string) string {
		return fmt.Sprintf("%s must be at most %s characters", label, param)
	},
}

func formatFieldError(payload any, fe validator.FieldError) error {
	label := fieldLabel(payload, fe.StructField())
	if label == "" {
		label = fe.Field()
	}

	message := fmt.Sprintf("%s failed on '%s'", label, fe.Tag())
	if formatter, ok := messageFormatters[fe.Tag()]; ok {
		message = formatter(label, fe.Param())
	}
	return apierror.MalformedRequest(fe.Field(), message)
}

func fieldLabel(payload any, structField string) string {
	t := reflect.TypeOf(payload)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return ""
	}
	field, ok := t.FieldByName(structField)
	if !ok {
		return ""
	}
	return field.Tag.Get("label")
}

// Required reports a missing identifier that is passed alongside the
// entity rather than inside it.
func Required(field, value, message string) error {
	if strings.TrimSpace(value) == "" {
		return apierror.MalformedRequest(field, message)
	}
	return nil
}

// NoReservedProperties rejects custom properties named after a typed field
// of the entity. reserved is checked in order, so the first clash is
// reported.
func NoReservedProperties(props map[string]string, reserved []string) error {
	for _, name := range reserved {
		if _, ok := props[name]; ok {
			return apierror.MalformedRequest(name,
				fmt.Sprintf("'%s' is an entity field and can not be set as a custom property", name))
		}
	}
	return nil
}
