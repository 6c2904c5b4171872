package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance that reports fields by their JSON name
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	// Money and bathroom counts are decimals; compare them as numbers
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	return &Validator{validate: v}
}

// ValidateStruct validates a struct using struct tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// ValidatePartial validates only the pointer fields of s that are set.
// Absent fields of a partial update are neither required nor checked.
func (v *Validator) ValidatePartial(s interface{}) error {
	fields := suppliedFields(s)
	if len(fields) == 0 {
		return nil
	}
	return v.validate.StructPartial(s, fields...)
}

func suppliedFields(s interface{}) []string {
	val := reflect.Indirect(reflect.ValueOf(s))
	if val.Kind() != reflect.Struct {
		return nil
	}
	typ := val.Type()

	var fields []string
	for i := 0; i < val.NumField(); i++ {
		f := val.Field(i)
		if !typ.Field(i).IsExported() {
			continue
		}
		switch f.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
			if f.IsNil() {
				continue
			}
		}
		fields = append(fields, typ.Field(i).Name)
	}
	return fields
}

// FormatValidationErrors converts validation errors to field -> messages
func FormatValidationErrors(err error) map[string][]string {
	fields := make(map[string][]string)

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fields
	}

	for _, e := range validationErrs {
		field := e.Field()
		fields[field] = append(fields[field], message(e))
	}
	return fields
}

func message(e validator.FieldError) string {
	// "url|eq=" style alternatives are reported under their first tag
	tag, _, _ := strings.Cut(e.Tag(), "|")
	tag, _, _ = strings.Cut(tag, "=")
	switch tag {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	case "datetime":
		return fmt.Sprintf("Date has wrong format. Use this format instead: %s.", "YYYY-MM-DD")
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", strings.ReplaceAll(e.Param(), " ", ", "))
	case "len":
		return fmt.Sprintf("Ensure this field has exactly %s characters.", e.Param())
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", e.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", e.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", e.Param())
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", e.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", e.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", e.Param())
	case "numeric":
		return "A valid number is required."
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}

// SanitizeString strips NUL bytes and surrounding whitespace
func SanitizeString(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\x00", ""))
}

// SanitizeStrings points every set *string field of the struct behind s at a
// sanitized copy. The caller's strings are never modified in place.
func SanitizeStrings(s interface{}) {
	val := reflect.ValueOf(s)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return
	}
	val = val.Elem()
	for i := 0; i < val.NumField(); i++ {
		f := val.Field(i)
		if !f.CanSet() || f.Kind() != reflect.Ptr || f.IsNil() || f.Elem().Kind() != reflect.String {
			continue
		}
		clean := reflect.New(f.Type().Elem())
		clean.Elem().SetString(SanitizeString(f.Elem().String()))
		f.Set(clean)
	}
}
