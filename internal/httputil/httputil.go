// Package httputil provides the HTTP method and status code rules shared by
// the parser and the emitters.
package httputil

import (
	"strconv"
	"strings"
)

// HTTP Status Code Constants
const (
	StatusCodeLength = 3   // Standard length of HTTP status codes (e.g., "200", "404")
	MinStatusCode    = 100 // Minimum valid HTTP status code
	MaxStatusCode    = 599 // Maximum valid HTTP status code
	WildcardChar     = 'X' // Wildcard character used in status code patterns (e.g., "2XX")
)

// HTTP Method Constants
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodPatch   = "patch"
	MethodHead    = "head"
	MethodOptions = "options"
	MethodTrace   = "trace"
)

// Methods lists the path item keys that describe operations, in the order
// emitters declare them.
var Methods = []string{
	MethodGet, MethodPut, MethodPost, MethodDelete,
	MethodPatch, MethodHead, MethodOptions, MethodTrace,
}

// IsMethod reports whether key is a lower-case operation key of a path item.
func IsMethod(key string) bool {
	for _, m := range Methods {
		if m == key {
			return true
		}
	}
	return false
}

// ValidateStatusCode checks if a response key is valid in a responses object.
// Valid values are:
//   - "default" for default response
//   - Extension fields starting with "x-"
//   - Wildcard patterns: 1XX, 2XX, 3XX, 4XX, 5XX
//   - Numeric codes: 100-599
func ValidateStatusCode(code string) bool {
	if code == "default" || strings.HasPrefix(code, "x-") {
		return true
	}
	if len(code) != StatusCodeLength {
		return false
	}
	if code[1] == WildcardChar && code[2] == WildcardChar {
		return code[0] >= '1' && code[0] <= '5'
	}
	n, err := strconv.Atoi(code)
	return err == nil && n >= MinStatusCode && n <= MaxStatusCode
}

// IsSuccessStatusCode reports whether code is a 2xx code or the 2XX wildcard.
func IsSuccessStatusCode(code string) bool {
	return ValidateStatusCode(code) && code[0] == '2'
}
