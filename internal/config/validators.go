package config

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/gogen/pkg/validator"
	"github.com/idelchi/gosplit/internal/archive"
)

// newValidator returns a validator that knows the bytesize and notbelow tags and
// reports fields by their flag label.
func newValidator() (*validator.Validator, error) {
	validator := validator.NewValidator()

	if err := registerByteSize(validator); err != nil {
		return nil, err
	}

	if err := registerNotBelow(validator); err != nil {
		return nil, err
	}

	validator.Validator().RegisterTagNameFunc(func(fld reflect.StructField) string {
		const splitSize = 2

		name := strings.SplitN(fld.Tag.Get("label"), ",", splitSize)[0]
		if name == "-" || name == "" {
			return fld.Name
		}

		return name
	})

	return validator, nil
}

// registerByteSize adds a validator for human-readable byte sizes such as "24MiB".
func registerByteSize(validator *validator.Validator) error {
	if err := validator.RegisterValidationAndTranslation(
		"bytesize",
		validateByteSize,
		"{0} must be a positive byte size such as 24MiB or 1048576",
	); err != nil {
		return fmt.Errorf("registering bytesize validation: %w", err)
	}

	return nil
}

// registerNotBelow adds a validator comparing two byte-size fields.
func registerNotBelow(validator *validator.Validator) error {
	if err := validator.RegisterValidationAndTranslation(
		"notbelow",
		validateNotBelow,
		"{0} must not be smaller than {1}",
	); err != nil {
		return fmt.Errorf("registering notbelow validation: %w", err)
	}

	return nil
}

// validateByteSize accepts strings humanize can parse into a positive size.
func validateByteSize(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}

	_, err := parseSize(fl.FieldName(), fl.Field().String())

	return err == nil
}

// validateNotBelow checks that the field's size is at least the size in the field
// named by the tag parameter. Unparsable sizes pass here and fail bytesize instead.
func validateNotBelow(fl validator.FieldLevel) bool {
	other := fl.Parent().FieldByName(fl.Param())
	if !other.IsValid() || other.Kind() != reflect.String || fl.Field().Kind() != reflect.String {
		return false
	}

	size, err := parseSize(fl.FieldName(), fl.Field().String())
	if err != nil {
		return true
	}

	floor, err := parseSize(fl.Param(), other.String())
	if err != nil {
		return true
	}

	return size >= floor
}

// parseSize parses a human-readable byte size such as "24MiB" or "1048576".
func parseSize(what, value string) (int64, error) {
	size, err := humanize.ParseBytes(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q: %w", archive.ErrConfig, what, value, err)
	}

	if size == 0 || size > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %s %q is out of range", archive.ErrConfig, what, value)
	}

	return int64(size), nil
}
