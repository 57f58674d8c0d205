package http

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"tdr-registry/internal/domain/drc"
	"tdr-registry/internal/domain/ident"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Kind    string       `json:"kind,omitempty"`
	Details []FieldError `json:"details,omitempty"`
}

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// report json names, not Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	// 0x + 64 hex, or a business key of at most 32 bytes
	_ = v.RegisterValidation("bytes32key", func(fl validator.FieldLevel) bool {
		_, err := ident.Parse(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("far_unit", func(fl validator.FieldLevel) bool {
		return fl.Field().Uint()%drc.FarUnit == 0
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "bytes32key":
			out = append(out, FieldError{Field: field, Message: "must be 0x-prefixed 32-byte hex or a key of at most 32 bytes"})
		case "eth_addr":
			out = append(out, FieldError{Field: field, Message: "must be a 0x-prefixed 20-byte hex address"})
		case "far_unit":
			out = append(out, FieldError{Field: field, Message: "must be a multiple of 50"})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "lte":
			out = append(out, FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		case "min":
			out = append(out, FieldError{Field: field, Message: "must have at least " + e.Param() + " item(s)"})
		case "unique":
			out = append(out, FieldError{Field: field, Message: "must not contain duplicates"})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
