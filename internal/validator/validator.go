package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate    *validator.Validate
	once        sync.Once
	errValidate error
)

// Failure is the first rule a value broke.
type Failure struct {
	// Field is the JSON path of the field, e.g. "operation.amount".
	Field string
	// Rule is the validation tag that failed, e.g. "required".
	Rule string
}

// Get returns the shared validator, building it on first use.
func Get() (*validator.Validate, error) {
	once.Do(func() {
		validate, errValidate = build()
	})
	return validate, errValidate
}

func build() (*validator.Validate, error) {
	vld := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so errors match the input documents.
	vld.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := vld.RegisterValidation("nonnegative_decimal", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		return !value.IsNegative()
	}); err != nil {
		return nil, fmt.Errorf("register nonnegative_decimal: %w", err)
	}

	return vld, nil
}

// Struct validates s and returns the first failure, or nil when s is valid.
// The returned error is only non-nil when validation itself could not run.
func Struct(s interface{}) (*Failure, error) {
	vld, err := Get()
	if err != nil {
		return nil, err
	}

	err = vld.Struct(s)
	if err == nil {
		return nil, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return nil, err
	}

	first := fieldErrs[0]
	return &Failure{
		Field: fieldPath(first.Namespace()),
		Rule:  first.Tag(),
	}, nil
}

// fieldPath drops the root struct name from a validator namespace:
// "record.operation.amount" → "operation.amount".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
