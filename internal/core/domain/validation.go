package domain

import (
	"fmt"
	"strings"
)

// Field identifies a user attribute a violation is attached to.
type Field string

const (
	FieldName                 Field = "name"
	FieldEmail                Field = "email"
	FieldPassword             Field = "password"
	FieldPasswordConfirmation Field = "password_confirmation"
)

// Code is the machine-readable kind of a validation failure.
type Code string

const (
	CodeRequired         Code = "required"
	CodeTooLong          Code = "too_long"
	CodeTooShort         Code = "too_short"
	CodeInvalidFormat    Code = "invalid_format"
	CodeNotUnique        Code = "not_unique"
	CodeInsecurePassword Code = "insecure_password"
	CodeMismatch         Code = "mismatch"
)

// Violation is one failed rule on one field.
type Violation struct {
	Field   Field  `json:"field"`
	Code    Code   `json:"code"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// Violations is the full result of validating a candidate record.
// A record is valid iff the set is empty.
type Violations []Violation

// Has reports whether a violation with the given field and code is present.
func (vs Violations) Has(field Field, code Code) bool {
	for _, v := range vs {
		if v.Field == field && v.Code == code {
			return true
		}
	}
	return false
}

// For returns the violations attached to field, in rule order.
func (vs Violations) For(field Field) Violations {
	var out Violations
	for _, v := range vs {
		if v.Field == field {
			out = append(out, v)
		}
	}
	return out
}

// ByField groups messages per field for rendering.
func (vs Violations) ByField() map[Field][]string {
	out := make(map[Field][]string, len(vs))
	for _, v := range vs {
		out[v.Field] = append(out[v.Field], v.Message)
	}
	return out
}

// ValidationError carries a non-empty set of violations back to the caller.
type ValidationError struct {
	Violations Violations
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, fmt.Sprintf("%s %s", v.Field, v.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
