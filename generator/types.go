package generator

import (
	"strings"

	"github.com/erraggy/sdkgen/apimodel"
	"github.com/erraggy/sdkgen/internal/maputil"
)

// fetchResultSuffix marks a paged list wrapper, e.g. "InvoiceFetchResult".
const fetchResultSuffix = "FetchResult"

// timeoutAlias is a server type that every language maps to ErrorResult.
const timeoutAlias = "TestTimeoutException"

// primitiveTokens are the type tokens that never name a model.
var primitiveTokens = map[string]bool{
	"string":    true,
	"uuid":      true,
	"date":      true,
	"date-time": true,
	"uri":       true,
	"Uri":       true,
	"email":     true,
	"tel":       true,
	"int32":     true,
	"integer":   true,
	"int64":     true,
	"double":    true,
	"float":     true,
	"boolean":   true,
	"binary":    true,
	"File":      true,
	"byte[]":    true,
	"object":    true,
	"array":     true,
}

// isPrimitive reports whether token is a built-in type token.
func isPrimitive(token string) bool {
	return primitiveTokens[token]
}

// isFileToken reports whether token describes raw file content.
func isFileToken(token string) bool {
	return token == "binary" || token == "File" || token == "byte[]"
}

// TypeTable maps IR type tokens to a language's native type names.
type TypeTable struct {
	// Primitives maps a token to its native name. Tokens not listed pass
	// through Unknown, or unchanged when Unknown is nil.
	Primitives map[string]string
	// Unknown rewrites tokens that are not in Primitives (model names).
	Unknown func(token string) string
	// Array decorates an element type.
	Array func(elem string) string
	// Generic wraps the item type of a FetchResult.
	Generic func(item string) string
	// Nullable applies the language's nullability decision. Nil means the
	// language has no nullable syntax.
	Nullable func(native string, nullable bool) string
}

// Map resolves a type token to a native type name. Enum names resolve to
// their value type first; array decoration happens before the FetchResult
// rewrite.
func (t TypeTable) Map(api *apimodel.APISchema, token string, isArray bool) string {
	s := token
	if item, ok := api.FindSchema(token); ok && item.IsEnum() && item.EnumType != "" {
		s = item.EnumType
	}

	if native, ok := t.Primitives[s]; ok {
		s = native
	} else if t.Unknown != nil {
		s = t.Unknown(s)
	}

	if isArray && t.Array != nil {
		s = t.Array(s)
	}
	if item, ok := strings.CutSuffix(s, fetchResultSuffix); ok && item != "" && t.Generic != nil {
		s = t.Generic(item)
	}
	return s
}

// MapNullable is Map followed by the nullability decision.
func (t TypeTable) MapNullable(api *apimodel.APISchema, token string, isArray, nullable bool) string {
	s := t.Map(api, token, isArray)
	if t.Nullable == nil {
		return s
	}
	return t.Nullable(s, nullable)
}

// importTokens returns the sorted, distinct tokens that the given data
// types need imported. Enums are dropped, the timeout alias becomes
// ErrorResult and "XFetchResult" contributes both "FetchResult" and "X".
// self is excluded. Primitive tokens are kept; each language decides
// whether they need an import.
func importTokens(api *apimodel.APISchema, self string, dataTypes ...string) []string {
	set := make(map[string]bool)
	var add func(token string)
	add = func(token string) {
		switch {
		case token == "":
			return
		case token == timeoutAlias:
			token = apimodel.ErrorResultName
		case len(token) > len(fetchResultSuffix) && strings.HasSuffix(token, fetchResultSuffix):
			set[fetchResultSuffix] = true
			add(strings.TrimSuffix(token, fetchResultSuffix))
			return
		}
		if token == self || api.IsEnum(token) {
			return
		}
		set[token] = true
	}
	for _, dt := range dataTypes {
		add(dt)
	}
	return maputil.SortedKeys(set)
}
