package validate

import "regexp"

// Basic local@domain.tld shape. Deliverability is not checked.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}
