// Package patcher rewrites version strings inside package manifests that the
// generator does not own, such as package.json or a gemspec.
//
// A patch is a narrow text transform: the first match of Pattern in the file
// is replaced by Replacement taken literally. A file without a match is an
// error, since a silently unpatched manifest would publish the wrong version.
package patcher

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"github.com/erraggy/sdkgen/sdkerrors"
)

// ErrFileNotFound is wrapped by Patch when the target file does not exist.
var ErrFileNotFound = errors.New("patch target not found")

// Patch describes one replacement.
type Patch struct {
	// Path is the file to patch.
	Path string `json:"path"`
	// Pattern is a regular expression in RE2 syntax.
	Pattern string `json:"pattern"`
	// Replacement is inserted verbatim; "$" has no special meaning.
	Replacement string `json:"replacement"`
}

// Patcher applies patches.
type Patcher interface {
	Patch(p Patch) error
}

// FilePatcher applies patches to files on disk.
type FilePatcher struct{}

// NewFilePatcher returns a Patcher that edits files in place.
func NewFilePatcher() *FilePatcher {
	return &FilePatcher{}
}

var _ Patcher = (*FilePatcher)(nil)

// Patch applies p. A missing file yields an error wrapping ErrFileNotFound;
// a file without a match yields a *sdkerrors.PatchError.
func (f *FilePatcher) Patch(p Patch) error {
	re, err := regexp.Compile(p.Pattern)
	if err != nil {
		return &sdkerrors.PatchError{Path: p.Path, Pattern: p.Pattern, Message: "invalid pattern", Cause: err}
	}

	info, err := os.Stat(p.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("patcher: %s: %w", p.Path, ErrFileNotFound)
		}
		return &sdkerrors.PatchError{Path: p.Path, Pattern: p.Pattern, Message: "cannot stat file", Cause: err}
	}
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return &sdkerrors.PatchError{Path: p.Path, Pattern: p.Pattern, Message: "cannot read file", Cause: err}
	}

	out, ok := Apply(data, re, p.Replacement)
	if !ok {
		return &sdkerrors.PatchError{Path: p.Path, Pattern: p.Pattern, Message: "no match found"}
	}
	if err := os.WriteFile(p.Path, out, info.Mode().Perm()); err != nil {
		return &sdkerrors.PatchError{Path: p.Path, Pattern: p.Pattern, Message: "cannot write file", Cause: err}
	}
	return nil
}

// Apply replaces the first match of re in data with the literal replacement.
// ok is false when there is no match.
func Apply(data []byte, re *regexp.Regexp, replacement string) (out []byte, ok bool) {
	loc := re.FindIndex(data)
	if loc == nil {
		return data, false
	}
	out = make([]byte, 0, len(data)-(loc[1]-loc[0])+len(replacement))
	out = append(out, data[:loc[0]]...)
	out = append(out, replacement...)
	out = append(out, data[loc[1]:]...)
	return out, true
}
