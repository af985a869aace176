package domain

import (
	"strings"
	"testing"
)

func TestNormalizeEmail_Idempotent(t *testing.T) {
	for _, email := range []string{"Foo@ExAMPle.CoM", "user@example.com", "USER@FOO.COM", ""} {
		once := NormalizeEmail(email)
		if twice := NormalizeEmail(once); twice != once {
			t.Fatalf("normalize not idempotent for %q: %q then %q", email, once, twice)
		}
		if once != strings.ToLower(email) {
			t.Fatalf("expected lowercase, got %q", once)
		}
	}
}

func TestViolations_Lookup(t *testing.T) {
	vs := Violations{
		{Field: FieldName, Code: CodeRequired, Message: "can't be blank"},
		{Field: FieldEmail, Code: CodeInvalidFormat, Message: "is invalid"},
		{Field: FieldName, Code: CodeTooLong, Param: "40", Message: "is too long (maximum is 40 characters)"},
	}

	if !vs.Has(FieldName, CodeTooLong) {
		t.Fatalf("expected name too_long")
	}
	if vs.Has(FieldEmail, CodeNotUnique) {
		t.Fatalf("unexpected email not_unique")
	}
	if got := len(vs.For(FieldName)); got != 2 {
		t.Fatalf("expected 2 name violations, got %d", got)
	}

	grouped := vs.ByField()
	if len(grouped[FieldName]) != 2 || grouped[FieldEmail][0] != "is invalid" {
		t.Fatalf("unexpected grouping: %+v", grouped)
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Violations: Violations{{Field: FieldEmail, Code: CodeNotUnique, Message: "has already been taken"}}}
	if err.Error() != "validation failed: email has already been taken" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}
