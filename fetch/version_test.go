package fetch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/sdkgen/apimodel"
	"github.com/erraggy/sdkgen/sdkerrors"
)

// staticFetcher returns a fixed body or error.
type staticFetcher struct {
	body string
	err  error
}

func (s staticFetcher) Fetch(context.Context, string) (string, error) {
	return s.body, s.err
}

const statusRegex = `"version":\s*"([\d.]+)"`

func TestFindVersion(t *testing.T) {
	tests := []struct {
		name    string
		fetcher Fetcher
		url     string
		pattern string
		want    string
		wantErr bool
	}{
		{name: "match", fetcher: staticFetcher{body: `{"status":"ok","version": "2024.3.8471.0"}`}, url: "https://x/status", pattern: statusRegex, want: "2024.3.8471.0"},
		{name: "no url", fetcher: staticFetcher{}, pattern: statusRegex, wantErr: true},
		{name: "no pattern", fetcher: staticFetcher{}, url: "https://x/status", wantErr: true},
		{name: "bad pattern", fetcher: staticFetcher{}, url: "https://x/status", pattern: `(`, wantErr: true},
		{name: "no capture group", fetcher: staticFetcher{}, url: "https://x/status", pattern: `version`, wantErr: true},
		{name: "fetch failure", fetcher: staticFetcher{err: errors.New("offline")}, url: "https://x/status", pattern: statusRegex, wantErr: true},
		{name: "no match", fetcher: staticFetcher{body: "maintenance"}, url: "https://x/status", pattern: statusRegex, wantErr: true},
		{name: "sentinel", fetcher: staticFetcher{body: `"version": "1.0.0.0"`}, url: "https://x/status", pattern: statusRegex, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindVersion(context.Background(), tt.fetcher, tt.url, tt.pattern)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, sdkerrors.ErrVersion))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscoverVersion(t *testing.T) {
	f := staticFetcher{body: `"version": "2024.3.8471.0"`}
	v, err := DiscoverVersion(context.Background(), f, "https://x/status", statusRegex)
	require.NoError(t, err)
	assert.Equal(t, apimodel.Version{Short: "2024.3", Semver: "2024.3.8471", Full: "2024.3.8471.0"}, v)

	_, err = DiscoverVersion(context.Background(), staticFetcher{body: `"version": "2024.3"`}, "https://x/status", statusRegex)
	assert.True(t, errors.Is(err, sdkerrors.ErrVersion))
}
