package fetch

import (
	"context"
	"regexp"
	"strings"

	"github.com/erraggy/sdkgen/apimodel"
	"github.com/erraggy/sdkgen/sdkerrors"
)

// FindVersion fetches url and returns the first capture group of pattern.
// A missing URL or pattern, a failed fetch, no match, or the "1.0.0.0"
// sentinel all yield a *sdkerrors.VersionError.
func FindVersion(ctx context.Context, f Fetcher, url, pattern string) (string, error) {
	if strings.TrimSpace(url) == "" || strings.TrimSpace(pattern) == "" {
		return "", &sdkerrors.VersionError{Source: url, Message: "version URL and regex are required"}
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", &sdkerrors.VersionError{Source: url, Message: "invalid version regex", Cause: err}
	}
	if re.NumSubexp() < 1 {
		return "", &sdkerrors.VersionError{Source: url, Message: "version regex needs a capture group"}
	}

	body, err := f.Fetch(ctx, url)
	if err != nil {
		return "", &sdkerrors.VersionError{Source: url, Message: "failed to load version page", Cause: err}
	}

	match := re.FindStringSubmatch(body)
	if match == nil {
		return "", &sdkerrors.VersionError{Source: url, Message: "version regex did not match"}
	}
	token := strings.TrimSpace(match[1])
	if token == "" || token == apimodel.NoVersion {
		return "", &sdkerrors.VersionError{Token: token, Source: url, Message: "no version discovered"}
	}
	return token, nil
}

// DiscoverVersion is FindVersion followed by apimodel.ParseVersion.
func DiscoverVersion(ctx context.Context, f Fetcher, url, pattern string) (apimodel.Version, error) {
	token, err := FindVersion(ctx, f, url, pattern)
	if err != nil {
		return apimodel.Version{}, err
	}
	v, err := apimodel.ParseVersion(token)
	if err != nil {
		return apimodel.Version{}, err
	}
	return v, nil
}
