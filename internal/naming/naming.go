package naming

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lower = cases.Lower(language.Und)

// ToCamelCase lowers the first rune and removes spaces from the rest.
// Example: "Retrieve Invoice" -> "retrieveInvoice"
// Example: "InvoiceId" -> "invoiceId"
func ToCamelCase(s string) string {
	return mapFirst(s, unicode.ToLower)
}

// ToProperCase uppercases the first rune and removes spaces from the rest.
// Example: "retrieve invoice" -> "RetrieveInvoice"
// Example: "get" -> "Get"
func ToProperCase(s string) string {
	return mapFirst(s, unicode.ToUpper)
}

func mapFirst(s string, fn func(rune) rune) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(fn(r)) + strings.ReplaceAll(s[size:], " ", "")
}

// ToSnakeCase lowers the whole string and turns spaces into underscores.
// Existing capitalization is not treated as a word boundary.
// Example: "Retrieve Invoice" -> "retrieve_invoice"
// Example: "InvoiceLine" -> "invoiceline"
func ToSnakeCase(s string) string {
	return strings.ReplaceAll(lower.String(s), " ", "_")
}

// ProperCaseToSnakeCase inserts an underscore before every upper-case rune
// that follows a non-upper-case rune, then lowers everything. Runs of capitals
// stay together.
// Example: "InvoiceLine" -> "invoice_line"
// Example: "ApiURLs" -> "api_urls"
func ProperCaseToSnakeCase(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(s) + 4)
	withinSegment := true
	for _, r := range s {
		if unicode.IsUpper(r) {
			if !withinSegment {
				result.WriteByte('_')
			}
			withinSegment = true
		} else {
			withinSegment = false
		}
		result.WriteRune(unicode.ToLower(r))
	}
	return result.String()
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ToSingleLine collapses every run of whitespace, newlines included, into a
// single space.
func ToSingleLine(s string) string {
	return whitespaceRun.ReplaceAllString(s, " ")
}
