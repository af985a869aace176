package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wishlistapp/accounts/internal/core/domain"
)

// Tags registered on the engine's own validator instance.
const (
	tagEmailShape     = "email_shape"
	tagSecurePassword = "secure_password"
)

// EmailLookup is the read the uniqueness rule performs against the store.
// Implementations return domain.ErrUserNotFound when no user matches.
type EmailLookup interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Candidate holds the raw field values of a record about to be saved.
// Password is nil when no password is being set; password rules are then skipped.
type Candidate struct {
	ID                   string
	Name                 string
	Email                string
	Password             *string
	PasswordConfirmation *string
}

// ValueFunc extracts a field from the candidate. The boolean is false when the
// field does not take part in this validation run.
type ValueFunc func(c *Candidate) (string, bool)

// Check is a single predicate over a field value. It returns false when the
// rule is violated and an error only when the check itself could not run.
type Check func(ctx context.Context, value string, c *Candidate) (bool, error)

// Rule is one row of the rule table.
type Rule struct {
	Field   domain.Field
	Name    string
	Code    domain.Code
	Param   string
	Message string

	value ValueFunc
	check Check
}

// Apply evaluates the rule and returns at most one violation.
func (r Rule) Apply(ctx context.Context, c *Candidate) (*domain.Violation, error) {
	value, active := r.value(c)
	if !active {
		return nil, nil
	}
	ok, err := r.check(ctx, value, c)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", r.Field, r.Name, err)
	}
	if ok {
		return nil, nil
	}
	return &domain.Violation{Field: r.Field, Code: r.Code, Param: r.Param, Message: r.Message}, nil
}

// Builder assembles an ordered rule table field by field.
type Builder struct {
	v     *validator.Validate
	rules []Rule
	field domain.Field
	value ValueFunc
}

// NewBuilder returns a builder whose tag-based checks run on v.
func NewBuilder(v *validator.Validate) *Builder {
	return &Builder{v: v}
}

// Field starts the rules for a new field.
func (b *Builder) Field(f domain.Field, value ValueFunc) *Builder {
	b.field = f
	b.value = value
	return b
}

func (b *Builder) add(name string, code domain.Code, param, msg string, check Check) *Builder {
	b.rules = append(b.rules, Rule{
		Field:   b.field,
		Name:    name,
		Code:    code,
		Param:   param,
		Message: msg,
		value:   b.value,
		check:   check,
	})
	return b
}

// Required fails on blank or whitespace-only values.
func (b *Builder) Required() *Builder {
	tagged := b.tag("required")
	return b.add("presence", domain.CodeRequired, "", "can't be blank",
		func(ctx context.Context, value string, c *Candidate) (bool, error) {
			return tagged(ctx, strings.TrimSpace(value), c)
		})
}

// MaxLength fails when the value has more than n characters.
func (b *Builder) MaxLength(n int) *Builder {
	return b.add("length", domain.CodeTooLong, fmt.Sprint(n),
		fmt.Sprintf("is too long (maximum is %d characters)", n),
		b.tag(fmt.Sprintf("max=%d", n)))
}

// MinLength fails when the value has fewer than n characters.
func (b *Builder) MinLength(n int) *Builder {
	return b.add("length", domain.CodeTooShort, fmt.Sprint(n),
		fmt.Sprintf("is too short (minimum is %d characters)", n),
		b.tag(fmt.Sprintf("min=%d", n)))
}

// MaxBytes fails when the encoded value is longer than n bytes.
func (b *Builder) MaxBytes(n int) *Builder {
	return b.add("bytesize", domain.CodeTooLong, fmt.Sprint(n),
		fmt.Sprintf("is too long (maximum is %d bytes)", n),
		func(_ context.Context, value string, _ *Candidate) (bool, error) {
			return len(value) <= n, nil
		})
}

// EmailShape fails unless the value matches the accepted address shape.
func (b *Builder) EmailShape() *Builder {
	return b.add("format", domain.CodeInvalidFormat, "", "is invalid", b.tag(tagEmailShape))
}

// SecurePassword fails unless the value mixes enough character classes.
func (b *Builder) SecurePassword() *Builder {
	return b.add("password", domain.CodeInsecurePassword, fmt.Sprint(MinPasswordClasses),
		"is not secure enough, must have at least 3 of the following: lowercase letter, uppercase letter, number, or symbol",
		b.tag(tagSecurePassword))
}

// Unique fails when another stored user owns the normalized value.
func (b *Builder) Unique(lookup EmailLookup) *Builder {
	return b.add("uniqueness", domain.CodeNotUnique, "case_insensitive", "has already been taken",
		func(ctx context.Context, value string, c *Candidate) (bool, error) {
			if strings.TrimSpace(value) == "" {
				return true, nil
			}
			existing, err := lookup.FindByEmail(ctx, domain.NormalizeEmail(value))
			if errors.Is(err, domain.ErrUserNotFound) {
				return true, nil
			}
			if err != nil {
				return false, err
			}
			return c.ID != "" && existing.ID == c.ID, nil
		})
}

// Matches fails when the value differs from the one other extracts.
func (b *Builder) Matches(other ValueFunc, label string) *Builder {
	return b.add("confirmation", domain.CodeMismatch, label, "doesn't match "+label,
		func(_ context.Context, value string, c *Candidate) (bool, error) {
			want, _ := other(c)
			return value == want, nil
		})
}

// Rules returns the table built so far.
func (b *Builder) Rules() []Rule {
	out := make([]Rule, len(b.rules))
	copy(out, b.rules)
	return out
}

func (b *Builder) tag(tag string) Check {
	return func(_ context.Context, value string, _ *Candidate) (bool, error) {
		err := b.v.Var(value, tag)
		if err == nil {
			return true, nil
		}
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return false, nil
		}
		return false, err
	}
}

func nameOf(c *Candidate) (string, bool)  { return c.Name, true }
func emailOf(c *Candidate) (string, bool) { return c.Email, true }

func passwordOf(c *Candidate) (string, bool) {
	if c.Password == nil {
		return "", false
	}
	return *c.Password, true
}

func confirmationOf(c *Candidate) (string, bool) {
	if c.Password == nil || c.PasswordConfirmation == nil {
		return "", false
	}
	return *c.PasswordConfirmation, true
}
