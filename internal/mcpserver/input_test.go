package mcpserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/sdkgen/apimodel"
	"github.com/erraggy/sdkgen/parser"
)

func writeSpec(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "swagger.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSpecInput_ResolveFile(t *testing.T) {
	specCache.reset()
	input := specInput{File: writeSpec(t, billingSpec)}
	result, err := input.resolve(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result.API)
	assert.Equal(t, "2024.3.8471", result.API.Semver3)
}

func TestSpecInput_ResolveContent(t *testing.T) {
	specCache.reset()
	input := specInput{Content: billingSpec}
	result, err := input.resolve(context.Background())
	require.NoError(t, err)
	_, ok := result.API.FindSchema("Invoice")
	assert.True(t, ok)
}

func TestSpecInput_ResolveURL(t *testing.T) {
	specCache.reset()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, billingSpec)
	}))
	defer srv.Close()

	t.Run("loopback is blocked", func(t *testing.T) {
		_, err := specInput{URL: srv.URL + "/blocked.json"}.resolve(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "private/loopback")
	})

	t.Run("allowed when configured", func(t *testing.T) {
		saved := cfg.AllowPrivateIPs
		cfg.AllowPrivateIPs = true
		defer func() { cfg.AllowPrivateIPs = saved }()

		result, err := specInput{URL: srv.URL + "/swagger.json"}.resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, srv.URL+"/swagger.json", result.SourcePath)
		assert.Equal(t, 1, specCache.size())
	})
}

func TestSpecInput_ResolveNoneProvided(t *testing.T) {
	_, err := specInput{}.resolve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of file, url, or content must be provided")
}

func TestSpecInput_ResolveMultipleProvided(t *testing.T) {
	_, err := specInput{File: "foo.json", Content: "bar"}.resolve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of file, url, or content must be provided")
}

func TestSpecInput_ResolveFileNotFound(t *testing.T) {
	specCache.reset()
	_, err := specInput{File: "/nonexistent/swagger.json"}.resolve(context.Background())
	assert.Error(t, err)
}

func TestSpecInput_ContentTooLarge(t *testing.T) {
	saved := cfg.MaxInlineSize
	cfg.MaxInlineSize = 16
	defer func() { cfg.MaxInlineSize = saved }()

	_, err := specInput{Content: billingSpec}.resolve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SDKGEN_MAX_INLINE_SIZE")
}

func TestSpecCache_HitOnSameFile(t *testing.T) {
	specCache.reset()
	input := specInput{File: writeSpec(t, billingSpec)}

	result1, err := input.resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, specCache.size())

	result2, err := input.resolve(context.Background())
	require.NoError(t, err)
	assert.Same(t, result1, result2, "expected same pointer from cache hit")
}

func TestSpecCache_MissOnModifiedFile(t *testing.T) {
	specCache.reset()
	path := writeSpec(t, `{"openapi": "3.0.1", "info": {"title": "V1", "version": "2024.1.1.0"}, "paths": {}}`)

	input := specInput{File: path}
	result1, err := input.resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024.1.1", result1.API.Semver3)

	require.NoError(t, os.WriteFile(path, []byte(`{"openapi": "3.0.1", "info": {"title": "V2", "version": "2024.2.2.0"}, "paths": {}}`), 0o644))
	// Ensure mtime differs from the first write on coarse-grained filesystems.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	result2, err := input.resolve(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, result1, result2)
	assert.Equal(t, "2024.2.2", result2.API.Semver3)
}

func TestSpecCache_ExtraOptionsBypassCache(t *testing.T) {
	specCache.reset()
	input := specInput{Content: billingSpec}

	result, err := input.resolve(context.Background(), parser.WithVersion(apimodel.MustParseVersion("2025.1.9.0")))
	require.NoError(t, err)
	assert.Equal(t, "2025.1.9", result.API.Semver3)
	assert.Equal(t, 0, specCache.size())
}

func TestSpecCache_LRUEviction(t *testing.T) {
	specCache.reset()

	// Insert 11 descriptions into a cache of size 10.
	var firstKey string
	for i := range 11 {
		content := fmt.Sprintf(`{"openapi": "3.0.1", "info": {"title": "Spec %d", "version": "2024.1.%d.0"}, "paths": {}}`, i, i)
		if i == 0 {
			firstKey = makeCacheKey(specInput{Content: content}, nil)
		}
		_, err := specInput{Content: content}.resolve(context.Background())
		require.NoError(t, err)
	}

	assert.Equal(t, 10, specCache.size())
	assert.Nil(t, specCache.get(firstKey), "expected oldest entry to be evicted")
}
