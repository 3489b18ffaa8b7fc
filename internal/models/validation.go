package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidBody is returned when the request body is not a JSON envelope
	ErrInvalidBody = errors.New("invalid request body")

	// ErrInvalidPayload is returned when an operation payload fails to decode or validate
	ErrInvalidPayload = errors.New("invalid request payload")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON field names instead of Go field names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationError represents a validation error with field-specific details
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Error implements the error interface
func (ve *ValidationError) Error() string {
	return ve.Message
}

// PayloadError describes why an operation payload was rejected
type PayloadError struct {
	Operation OperationType
	Fields    []ValidationError
	Err       error
}

func (e *PayloadError) Error() string {
	if len(e.Fields) > 0 {
		msgs := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			msgs = append(msgs, f.Message)
		}
		return fmt.Sprintf("%s payload: %s", e.Operation, strings.Join(msgs, "; "))
	}
	return fmt.Sprintf("%s payload: %v", e.Operation, e.Err)
}

// Unwrap exposes both ErrInvalidPayload and the underlying decode error
func (e *PayloadError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidPayload}
	}
	return []error{ErrInvalidPayload, e.Err}
}

// DecodePayload decodes a raw operation payload into dst and validates it.
// A missing or null payload decodes as an empty object so that required
// fields are reported individually.
func DecodePayload(op OperationType, raw json.RawMessage, dst any) error {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		data = []byte("{}")
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return &PayloadError{Operation: op, Err: err}
	}

	if err := validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return &PayloadError{Operation: op, Fields: formatValidationErrors(validationErrors)}
		}
		return &PayloadError{Operation: op, Err: err}
	}

	return nil
}

func formatValidationErrors(validationErrors validator.ValidationErrors) []ValidationError {
	errs := make([]ValidationError, 0, len(validationErrors))

	for _, err := range validationErrors {
		// Namespace is "<Struct>.<json path>"; drop the struct name
		field := err.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}

		var message string
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		errs = append(errs, ValidationError{
			Field:   field,
			Tag:     err.Tag(),
			Message: message,
		})
	}

	return errs
}
