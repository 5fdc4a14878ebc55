// Package validation wraps go-playground/validator and strict JSON decoding
// for request bodies and seed files.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with struct-level rules enabled.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator. It is safe for concurrent use.
func New() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Struct validates s using its `validate` tags.
func (v *Validator) Struct(s any) error {
	if err := v.v.Struct(s); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// DecodeJSON decodes a single JSON value from r into dst, rejecting unknown
// fields and trailing data, then validates dst.
func (v *Validator) DecodeJSON(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("json decode: %w", err)
	}
	if dec.More() {
		return errors.New("unexpected extra JSON input")
	}
	return v.Struct(dst)
}

// FieldErrors returns the names of the fields that failed validation in err,
// or nil when err did not come from the validator.
func FieldErrors(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]string, len(verrs))
	for i, fe := range verrs {
		fields[i] = fe.Field()
	}
	return fields
}
