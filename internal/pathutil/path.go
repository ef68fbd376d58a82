// Package pathutil holds URL template and output path helpers.
package pathutil

import "regexp"

// PathParamRegex matches path template parameters like {invoiceId}.
// It captures the parameter name inside the braces.
var PathParamRegex = regexp.MustCompile(`\{([^}]+)\}`)
