package validation

import "regexp"

// emailPattern accepts local@label(.label)*.tld with word, plus, hyphen and
// dot characters in the local part, and alphanumeric/hyphen labels.
var emailPattern = regexp.MustCompile(`(?i)^[\w+\-.]+@[a-z\d\-]+(\.[a-z\d\-]+)*\.[a-z]+$`)

// IsEmailShaped reports whether email has the accepted address shape.
func IsEmailShaped(email string) bool {
	return emailPattern.MatchString(email)
}
