// Package stringutil holds small string checks used by project validation.
package stringutil

import "regexp"

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// IsValidEmail reports whether s looks like an address usable as a package
// author email.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}
