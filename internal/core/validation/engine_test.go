package validation_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wishlistapp/accounts/internal/core/domain"
	"github.com/wishlistapp/accounts/internal/core/validation"
)

type stubLookup struct {
	byEmail map[string]*domain.User
	err     error
	calls   int
}

func (s *stubLookup) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func strPtr(s string) *string { return &s }

func validCandidate() validation.Candidate {
	return validation.Candidate{
		Name:                 "Example User",
		Email:                "user@example.com",
		Password:             strPtr("fooBar123"),
		PasswordConfirmation: strPtr("fooBar123"),
	}
}

func validate(t *testing.T, engine *validation.Engine, c validation.Candidate) domain.Violations {
	t.Helper()
	vs, err := engine.Validate(context.Background(), c)
	require.NoError(t, err)
	return vs
}

func TestEngine_ValidCandidate(t *testing.T) {
	engine := validation.NewEngine(&stubLookup{})
	assert.Empty(t, validate(t, engine, validCandidate()))
}

func TestEngine_Name(t *testing.T) {
	engine := validation.NewEngine(&stubLookup{})

	t.Run("blank", func(t *testing.T) {
		c := validCandidate()
		c.Name = "     "
		assert.True(t, validate(t, engine, c).Has(domain.FieldName, domain.CodeRequired))
	})

	t.Run("41 characters is too long", func(t *testing.T) {
		c := validCandidate()
		c.Name = strings.Repeat("a", 41)
		assert.True(t, validate(t, engine, c).Has(domain.FieldName, domain.CodeTooLong))
	})

	t.Run("40 characters is fine", func(t *testing.T) {
		c := validCandidate()
		c.Name = strings.Repeat("a", 40)
		assert.Empty(t, validate(t, engine, c))
	})

	t.Run("length counts characters not bytes", func(t *testing.T) {
		c := validCandidate()
		c.Name = strings.Repeat("é", 40)
		assert.Empty(t, validate(t, engine, c))
	})
}

func TestEngine_Email(t *testing.T) {
	engine := validation.NewEngine(&stubLookup{})

	t.Run("blank", func(t *testing.T) {
		c := validCandidate()
		c.Email = "    "
		assert.True(t, validate(t, engine, c).Has(domain.FieldEmail, domain.CodeRequired))
	})

	t.Run("too long", func(t *testing.T) {
		c := validCandidate()
		c.Email = strings.Repeat("a", 244) + "@example.com"
		assert.True(t, validate(t, engine, c).Has(domain.FieldEmail, domain.CodeTooLong))
	})

	t.Run("accepts valid addresses", func(t *testing.T) {
		for _, addr := range []string{"user@example.com", "USER@foo.COM", "A_US-ER@foo.bar.org", "first.last@foo.jp", "alice+bob@baz.cn"} {
			c := validCandidate()
			c.Email = addr
			assert.Empty(t, validate(t, engine, c), "%q should be valid", addr)
		}
	})

	t.Run("rejects invalid addresses", func(t *testing.T) {
		for _, addr := range []string{"user@example,com", "user_at_foo.org", "user.name@example.", "foo@bar_baz.com", "foo@bar+baz.com", "foo@bar..com"} {
			c := validCandidate()
			c.Email = addr
			assert.True(t, validate(t, engine, c).Has(domain.FieldEmail, domain.CodeInvalidFormat), "%q should be invalid", addr)
		}
	})
}

func TestEngine_EmailUniqueness(t *testing.T) {
	lookup := &stubLookup{byEmail: map[string]*domain.User{
		"user@example.com": {ID: "u1", Email: "user@example.com"},
	}}
	engine := validation.NewEngine(lookup)

	t.Run("differs only by case", func(t *testing.T) {
		c := validCandidate()
		c.Email = "USER@EXAMPLE.COM"
		assert.True(t, validate(t, engine, c).Has(domain.FieldEmail, domain.CodeNotUnique))
	})

	t.Run("own record is not a duplicate", func(t *testing.T) {
		c := validCandidate()
		c.ID = "u1"
		assert.Empty(t, validate(t, engine, c))
	})

	t.Run("blank email skips the store", func(t *testing.T) {
		lookup.calls = 0
		c := validCandidate()
		c.Email = ""
		vs := validate(t, engine, c)
		assert.False(t, vs.Has(domain.FieldEmail, domain.CodeNotUnique))
		assert.Zero(t, lookup.calls)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		boom := errors.New("mongo unavailable")
		failing := validation.NewEngine(&stubLookup{err: boom})
		_, err := failing.Validate(context.Background(), validCandidate())
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
	})
}

func TestEngine_Password(t *testing.T) {
	engine := validation.NewEngine(&stubLookup{})

	t.Run("minimum length", func(t *testing.T) {
		c := validCandidate()
		c.Password, c.PasswordConfirmation = strPtr("abA12"), strPtr("abA12")
		assert.True(t, validate(t, engine, c).Has(domain.FieldPassword, domain.CodeTooShort))
	})

	t.Run("accepts secure passwords", func(t *testing.T) {
		for _, p := range []string{"abcABC123", "ABC!@#123", "a1b2c3!@#", "ABCabc!@#", "abcABC123!@#"} {
			c := validCandidate()
			c.Password, c.PasswordConfirmation = strPtr(p), strPtr(p)
			assert.Empty(t, validate(t, engine, c), "%q should be secure", p)
		}
	})

	t.Run("rejects insecure passwords", func(t *testing.T) {
		insecure := []string{"sadklsfjla", "AKLFJKLJSDLK", "12399040931", "#*($@#(*&$@(",
			"sdlkfSDJFKLS", "adsfas343029", "DLKF1904", "#()@$JFSDLJ", "29304)#($*)(", "asdjflk#*$#)"}
		for _, p := range insecure {
			c := validCandidate()
			c.Password, c.PasswordConfirmation = strPtr(p), strPtr(p)
			assert.True(t, validate(t, engine, c).Has(domain.FieldPassword, domain.CodeInsecurePassword), "%q should be insecure", p)
		}
	})

	t.Run("blank collects every failure", func(t *testing.T) {
		c := validCandidate()
		c.Password, c.PasswordConfirmation = strPtr(""), nil
		vs := validate(t, engine, c).For(domain.FieldPassword)
		assert.True(t, vs.Has(domain.FieldPassword, domain.CodeRequired))
		assert.True(t, vs.Has(domain.FieldPassword, domain.CodeTooShort))
		assert.True(t, vs.Has(domain.FieldPassword, domain.CodeInsecurePassword))
	})

	t.Run("longer than bcrypt accepts", func(t *testing.T) {
		p := "aA1" + strings.Repeat("x", 70)
		c := validCandidate()
		c.Password, c.PasswordConfirmation = strPtr(p), strPtr(p)
		assert.True(t, validate(t, engine, c).Has(domain.FieldPassword, domain.CodeTooLong))
	})

	t.Run("confirmation mismatch", func(t *testing.T) {
		c := validCandidate()
		c.PasswordConfirmation = strPtr("fooBar124")
		assert.True(t, validate(t, engine, c).Has(domain.FieldPasswordConfirmation, domain.CodeMismatch))
	})

	t.Run("skipped when no password is being set", func(t *testing.T) {
		c := validCandidate()
		c.Password, c.PasswordConfirmation = nil, nil
		assert.Empty(t, validate(t, engine, c))
	})
}

func TestEngine_CollectsAcrossFields(t *testing.T) {
	engine := validation.NewEngine(&stubLookup{})
	vs := validate(t, engine, validation.Candidate{Name: "", Email: "nope", Password: strPtr("short")})

	assert.True(t, vs.Has(domain.FieldName, domain.CodeRequired))
	assert.True(t, vs.Has(domain.FieldEmail, domain.CodeInvalidFormat))
	assert.True(t, vs.Has(domain.FieldPassword, domain.CodeTooShort))
	assert.True(t, vs.Has(domain.FieldPassword, domain.CodeInsecurePassword))
}

func TestEngine_RuleTableOrder(t *testing.T) {
	rules := validation.NewEngine(&stubLookup{}).Rules()
	require.NotEmpty(t, rules)

	var fields []domain.Field
	for _, r := range rules {
		if len(fields) == 0 || fields[len(fields)-1] != r.Field {
			fields = append(fields, r.Field)
		}
	}
	assert.Equal(t, []domain.Field{domain.FieldName, domain.FieldEmail, domain.FieldPassword, domain.FieldPasswordConfirmation}, fields)
}
