package mutation

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/five82/postdeck/internal/placeholder"
)

// FieldError describes one rejected field.
type FieldError struct {
	Field   string // json name, e.g. "title"
	Rule    string // failed rule: required, min, max or range
	Param   string
	Message string
}

// ValidationError is returned before any network call when a draft is
// rejected. Fields is keyed by json field name.
type ValidationError struct {
	Fields map[string]FieldError
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	msgs := make([]string, len(keys))
	for i, k := range keys {
		msgs[i] = e.Fields[k].Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Has reports whether field was rejected.
func (e *ValidationError) Has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

// Message returns the message for field, or "".
func (e *ValidationError) Message(field string) string {
	return e.Fields[field].Message
}

// AsValidation extracts a *ValidationError from err.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

var fieldLabels = map[string]string{
	"title":  "Title",
	"body":   "Body",
	"userId": "Author",
}

// ValidatePost checks a post draft. Title and body are trimmed and measured
// in runes.
func ValidatePost(p placeholder.Post) error {
	p.Title = strings.TrimSpace(p.Title)
	p.Body = strings.TrimSpace(p.Body)

	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate post: %w", err)
	}

	out := &ValidationError{Fields: make(map[string]FieldError, len(verrs))}
	for _, fe := range verrs {
		field := fe.Field()
		out.Fields[field] = fieldError(field, fe.Tag(), fe.Param())
	}
	return out
}

func fieldError(field, tag, param string) FieldError {
	label := fieldLabels[field]
	if label == "" {
		label = field
	}

	if field == "userId" {
		return FieldError{Field: field, Rule: "range", Param: "1-10", Message: label + " must be between 1 and 10"}
	}

	fe := FieldError{Field: field, Rule: tag, Param: param}
	switch tag {
	case "required":
		fe.Message = label + " is required"
	case "min":
		fe.Message = fmt.Sprintf("%s must be at least %s characters", label, param)
	case "max":
		fe.Message = fmt.Sprintf("%s must be at most %s characters", label, param)
	default:
		fe.Message = label + " is invalid"
	}
	return fe
}
