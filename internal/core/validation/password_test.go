package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordClasses(t *testing.T) {
	cases := map[string]int{
		"":             0,
		"alllowercase": 1,
		"ALLUPPER":     1,
		"12345678":     1,
		"!@#$%^":       1,
		"abcABC":       2,
		"abc123!!":     3,
		"abcABC123!@#": 4,
		"ß∂ƒ":          1, // non-ASCII letters count as symbols
	}
	for p, want := range cases {
		assert.Equal(t, want, PasswordClasses(p), "classes of %q", p)
	}
}

func TestIsSecurePassword_OrderIndependent(t *testing.T) {
	for _, p := range []string{"1aA", "Aa1", "a1A", "!a1", "1!A"} {
		assert.True(t, IsSecurePassword(p), "%q should be secure", p)
	}
	assert.False(t, IsSecurePassword("aaaaAAAA"))
}

func TestIsEmailShaped(t *testing.T) {
	assert.True(t, IsEmailShaped("alice+bob@baz.cn"))
	assert.True(t, IsEmailShaped("Foo@ExAMPle.CoM"))
	assert.False(t, IsEmailShaped("foo@bar..com"))
	assert.False(t, IsEmailShaped("user@example.com\n"))
}
