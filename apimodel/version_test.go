package apimodel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/sdkgen/sdkerrors"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    Version
		wantErr bool
	}{
		{name: "four segments", token: "2024.3.8471.0", want: Version{Short: "2024.3", Semver: "2024.3.8471", Full: "2024.3.8471.0"}},
		{name: "three segments", token: "24.1.5", want: Version{Short: "24.1", Semver: "24.1.5", Full: "24.1.5"}},
		{name: "surrounding space", token: " 24.1.5\n", want: Version{Short: "24.1", Semver: "24.1.5", Full: "24.1.5"}},
		{name: "zero-padded month", token: "2024.03.8471.0", want: Version{Short: "2024.03", Semver: "2024.03.8471", Full: "2024.03.8471.0"}},
		{name: "zero segment", token: "2024.0.00.1", want: Version{Short: "2024.0", Semver: "2024.0.00", Full: "2024.0.00.1"}},
		{name: "empty segment", token: "2024..8471", wantErr: true},
		{name: "signed segment", token: "2024.-3.8471", wantErr: true},
		{name: "sentinel", token: "1.0.0.0", wantErr: true},
		{name: "empty", token: "", wantErr: true},
		{name: "two segments", token: "2024.3", wantErr: true},
		{name: "not numeric", token: "2024.x.1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVersion(tt.token)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, sdkerrors.ErrVersion))
				var verr *sdkerrors.VersionError
				assert.True(t, errors.As(err, &verr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMustParseVersionPanics(t *testing.T) {
	assert.Panics(t, func() { MustParseVersion("1.0.0.0") })
	assert.NotPanics(t, func() { MustParseVersion("1.2.3") })
}

func TestAPIVersion(t *testing.T) {
	v := MustParseVersion("2024.3.8471.0")
	api := New(v, nil, nil)
	assert.Equal(t, v, api.Version())
}
