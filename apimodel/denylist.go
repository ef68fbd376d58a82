package apimodel

import "strings"

const (
	fetchResultSuffix        = "FetchResult"
	summaryFetchResultSuffix = "SummaryFetchResult"
)

var excludedSuffixes = []string{
	"Argument",
	"Attribute",
	"Base",
	"Exception",
	fetchResultSuffix,
	"Handle",
}

var excludedNames = map[string]bool{
	"Assembly":            true,
	"CustomAttributeData": true,
	"Module":              true,
	"MemberBase":          true,
	"MethodBase":          true,
	"ProblemDetails":      true,
	"Type":                true,
}

// IsValidModel reports whether a schema name should become a model.
// Framework leftovers and generic fetch-result wrappers are excluded, except
// for summary fetch results which are real models.
func IsValidModel(name string) bool {
	if strings.HasSuffix(name, summaryFetchResultSuffix) {
		return true
	}
	for _, suffix := range excludedSuffixes {
		if strings.HasSuffix(name, suffix) {
			return false
		}
	}
	return !excludedNames[name]
}

// IsFetchResult reports whether name is a paged fetch-result wrapper.
func IsFetchResult(name string) bool {
	return len(name) > len(fetchResultSuffix) && strings.HasSuffix(name, fetchResultSuffix)
}

// UnwrapFetchResult returns the wrapped model name of a fetch-result wrapper
// and true, or name unchanged and false.
func UnwrapFetchResult(name string) (string, bool) {
	if !IsFetchResult(name) {
		return name, false
	}
	return strings.TrimSuffix(name, fetchResultSuffix), true
}
