// Package validation checks candidate user records before they are saved.
//
// Rules are held in an explicit ordered table. Every rule runs on every call
// and all violations are returned together, so a form can render every error
// at once.
package validation

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/wishlistapp/accounts/internal/core/domain"
)

// Field limits.
const (
	MaxNameLength     = 40
	MaxEmailLength    = 255
	MinPasswordLength = 6
	// MaxPasswordBytes is the longest input bcrypt accepts.
	MaxPasswordBytes = 72
)

// Engine evaluates the user rule table.
type Engine struct {
	rules []Rule
}

// NewEngine builds the user rule table. lookup serves the email uniqueness rule.
func NewEngine(lookup EmailLookup) *Engine {
	rules := NewBuilder(newValidator()).
		Field(domain.FieldName, nameOf).
		Required().
		MaxLength(MaxNameLength).
		Field(domain.FieldEmail, emailOf).
		Required().
		MaxLength(MaxEmailLength).
		EmailShape().
		Unique(lookup).
		Field(domain.FieldPassword, passwordOf).
		Required().
		MinLength(MinPasswordLength).
		MaxBytes(MaxPasswordBytes).
		SecurePassword().
		Field(domain.FieldPasswordConfirmation, confirmationOf).
		Matches(passwordOf, "Password").
		Rules()

	return &Engine{rules: rules}
}

// Rules returns the engine's rule table in evaluation order.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Validate runs every rule against c. The returned error is only set when a
// rule could not be evaluated (for example the uniqueness read failed); it is
// passed through unchanged apart from the rule prefix.
func (e *Engine) Validate(ctx context.Context, c Candidate) (domain.Violations, error) {
	var out domain.Violations
	for _, r := range e.rules {
		v, err := r.Apply(ctx, &c)
		if err != nil {
			return nil, err
		}
		if v != nil {
			out = append(out, *v)
		}
	}
	return out, nil
}

// newValidator returns a validator instance owned by one engine, with the
// account-specific tags registered on it.
func newValidator() *validator.Validate {
	v := validator.New()
	mustRegister(v, tagEmailShape, func(fl validator.FieldLevel) bool {
		return IsEmailShaped(fl.Field().String())
	})
	mustRegister(v, tagSecurePassword, func(fl validator.FieldLevel) bool {
		return IsSecurePassword(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validation: register " + tag + ": " + err.Error())
	}
}
