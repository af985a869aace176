package validation

// MinPasswordClasses is how many character classes a secure password needs.
const MinPasswordClasses = 3

// PasswordClasses counts which of the four classes (uppercase, lowercase,
// digit, symbol) occur anywhere in p. Each class counts once no matter how
// many characters fall into it. Only ASCII letters and digits are classed as
// such; every other rune is a symbol.
func PasswordClasses(p string) int {
	var upper, lower, digit, symbol bool
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}

	n := 0
	for _, present := range []bool{upper, lower, digit, symbol} {
		if present {
			n++
		}
	}
	return n
}

// IsSecurePassword reports whether p mixes at least MinPasswordClasses classes.
func IsSecurePassword(p string) bool {
	return PasswordClasses(p) >= MinPasswordClasses
}
