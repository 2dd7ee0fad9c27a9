package validation

import (
	"fmt"
	"strings"
)

// Error codes carried by FieldError. The API layer maps these onto
// client-visible responses; this package only classifies.
const (
	CodeRequired          = "required"
	CodeTooLong           = "too_long"
	CodeInvalidValue      = "invalid_value"
	CodeInvalidIdentifier = "invalid_identifier"
	CodeOutOfRange        = "out_of_range"
	CodeImmutable         = "immutable"
)

// FieldError is a single field-level validation failure. Value carries the
// rejected input for client display (set for identifier failures).
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ErrorSet accumulates every violated field in one pass so a client can fix
// all issues at once. A nil or empty set means the candidate is valid.
type ErrorSet []FieldError

// Add appends a failure to the set.
func (s *ErrorSet) Add(field, code, message string) {
	*s = append(*s, FieldError{Field: field, Code: code, Message: message})
}

// AddValue appends a failure carrying the rejected value.
func (s *ErrorSet) AddValue(field, code, message, value string) {
	*s = append(*s, FieldError{Field: field, Code: code, Message: message, Value: value})
}

func (s ErrorSet) Error() string {
	msgs := make([]string, len(s))
	for i, e := range s {
		msgs[i] = e.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Err returns the set as an error, or nil when the set is empty. Callers
// must use this instead of returning the set directly: a typed nil slice in
// an error interface is non-nil.
func (s ErrorSet) Err() error {
	if len(s) == 0 {
		return nil
	}
	return s
}

// Has reports whether the set contains a failure for the given field.
func (s ErrorSet) Has(field string) bool {
	for _, e := range s {
		if e.Field == field {
			return true
		}
	}
	return false
}
