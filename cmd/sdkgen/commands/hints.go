package commands

import (
	"github.com/cockroachdb/errors"

	"github.com/erraggy/sdkgen/sdkerrors"
)

// hintsByKind pairs each sdkerrors sentinel with the operator advice
// printed under the error.
var hintsByKind = []struct {
	kind error
	hint string
}{
	{sdkerrors.ErrConfig, "check the project file; any key can be overridden with an SDKGEN_ environment variable"},
	{sdkerrors.ErrVersion, "pass --version to skip discovery, or fix versionNumberUrl and versionNumberRegex"},
	{sdkerrors.ErrFetch, "pass --source to read a local copy of the description"},
	{sdkerrors.ErrParse, "the source must be an OpenAPI 3 document in JSON or YAML"},
	{sdkerrors.ErrPatch, "the manifest no longer contains the version line; update it by hand once"},
	{errDrift, "run sdkgen generate to bring the SDK folders up to date"},
}

// withHints attaches the hint for the first matching error kind.
func withHints(err error) error {
	for _, h := range hintsByKind {
		if errors.Is(err, h.kind) {
			return errors.WithHint(err, h.hint)
		}
	}
	return err
}
