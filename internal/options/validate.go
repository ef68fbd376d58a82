// Package options provides shared utilities for option validation across packages.
package options

import "github.com/erraggy/sdkgen/sdkerrors"

// ValidateSingleInputSource ensures exactly one input source is specified.
// sources is a variadic list of booleans indicating whether each source is set.
// noSourceMsg is the message when no source is specified and multiSourceMsg
// the message when several are. The returned error is a *sdkerrors.ConfigError.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	sourceCount := 0
	for _, hasSource := range sources {
		if hasSource {
			sourceCount++
		}
	}

	if sourceCount == 0 {
		return &sdkerrors.ConfigError{Option: "input", Message: noSourceMsg}
	}
	if sourceCount > 1 {
		return &sdkerrors.ConfigError{Option: "input", Message: multiSourceMsg}
	}

	return nil
}
