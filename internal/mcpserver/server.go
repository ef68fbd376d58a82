// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes sdkgen capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/sdkgen"
)

const serverInstructions = `sdkgen MCP server: inspects OpenAPI descriptions and generates TypeScript, C#, Java, Python and Ruby SDKs from a project file.

Configuration: All defaults are configurable via SDKGEN_* environment variables set in your MCP client config.

Key settings:
- SDKGEN_CACHE_FILE_TTL (default: 15m): cache TTL for local file specs
- SDKGEN_CACHE_URL_TTL (default: 5m): cache TTL for URL-fetched specs
- SDKGEN_CACHE_ENABLED (default: true): disable spec caching entirely
- SDKGEN_ISSUE_LIMIT (default: 100): default page size for issue lists
- SDKGEN_FILE_LIMIT (default: 200): default page size for generated file lists
- SDKGEN_ALLOW_PRIVATE_IPS (default: false): allow URL inputs on private networks

Caching: Parsed specs are cached per session. File entries use path+mtime as key (auto-invalidated on change). URL entries are cached with a shorter TTL. A background sweeper removes expired entries every 60s.

Generation: the generate tool previews by default. Use mode=write to write the SDK folders named in the project file, or mode=check to report drift without writing.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "sdkgen", Version: sdkgen.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "inspect",
		Description: "Parse an OpenAPI description into the SDK model and summarize it: version triplet, model, enum and endpoint counts, endpoints per category, and the parse issues (skipped operations, unresolved references, defaults applied). Use schema to list model names matching a glob. Use offset/limit to page through issues.",
	}, handleInspect)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate SDK sources for the languages configured in a project file. Without spec, the description is fetched from the project's swaggerUrl and the version discovered from versionNumberUrl. mode=preview (default) returns the file manifest, mode=write writes and patches manifests, mode=check reports changed, missing and stale files without writing.",
	}, handleGenerate)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to fallback.
func paginate[T any](items []T, offset, limit, fallback int) []T {
	if limit <= 0 {
		limit = fallback
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount represents a single group in grouped results.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort groups items by key, sorts by count descending (ties
// broken alphabetically by key), and returns the sorted groups.
func groupAndSort[T any](items []T, keyFn func(T) []string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		for _, key := range keyFn(item) {
			counts[key]++
		}
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// validateGlobPattern checks whether a glob pattern is syntactically valid.
// Call this once before a filter loop so matchGlobName never encounters an
// invalid pattern at match time.
func validateGlobPattern(pattern string) error {
	if pattern == "" || !strings.ContainsAny(pattern, "*?[") {
		return nil
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return nil
}

// matchGlobName reports whether name matches pattern case-insensitively.
// A pattern without glob characters must match exactly.
func matchGlobName(name, pattern string) bool {
	if pattern == "" {
		return true
	}
	if !strings.ContainsAny(pattern, "*?[") {
		return strings.EqualFold(name, pattern)
	}
	ok, _ := filepath.Match(strings.ToLower(pattern), strings.ToLower(name))
	return ok
}
