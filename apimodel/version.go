package apimodel

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/erraggy/sdkgen/sdkerrors"
)

// NoVersion is the token reported when no version could be discovered.
const NoVersion = "1.0.0.0"

// Version is the triplet propagated into package manifests.
type Version struct {
	// Short is "YEAR.MONTH".
	Short string `json:"short" yaml:"short"`
	// Semver is "YEAR.MONTH.BUILD".
	Semver string `json:"semver" yaml:"semver"`
	// Full is the discovered token, e.g. "2024.3.8471.0".
	Full string `json:"full" yaml:"full"`
}

// ParseVersion splits a discovered version token into its triplet. The token
// must have at least three dot-separated non-negative integer segments.
func ParseVersion(token string) (Version, error) {
	token = strings.TrimSpace(token)
	if token == "" || token == NoVersion {
		return Version{}, &sdkerrors.VersionError{Token: token, Message: "no version discovered"}
	}

	segments := strings.Split(token, ".")
	if len(segments) < 3 {
		return Version{}, &sdkerrors.VersionError{
			Token:   token,
			Message: fmt.Sprintf("expected at least 3 segments, got %d", len(segments)),
		}
	}

	// Zero-padded segments such as "2024.03" are kept verbatim; only the
	// check runs on the unpadded form.
	unpadded := make([]string, 3)
	for i, seg := range segments[:3] {
		unpadded[i] = strings.TrimLeft(seg, "0")
		if unpadded[i] == "" && seg != "" {
			unpadded[i] = "0"
		}
	}
	semver3 := strings.Join(segments[:3], ".")
	if _, err := semver.StrictNewVersion(strings.Join(unpadded, ".")); err != nil {
		return Version{}, &sdkerrors.VersionError{Token: token, Message: "invalid version", Cause: err}
	}

	return Version{
		Short:  strings.Join(segments[:2], "."),
		Semver: semver3,
		Full:   token,
	}, nil
}

// MustParseVersion is like ParseVersion but panics on error. It is intended
// for tests and fixed literals.
func MustParseVersion(token string) Version {
	v, err := ParseVersion(token)
	if err != nil {
		panic(err)
	}
	return v
}
