// Package sdkerrors provides structured error types for sdkgen.
//
// The types support errors.Is and errors.As so callers can tell a bad source
// document from an unsupported construct in one target language, or from a
// missing version number, and react accordingly.
//
// # Error Categories
//
//   - ParseError: the source description cannot be read as a document
//   - UnsupportedError: a construct a target language cannot express
//   - VersionError: no usable version token could be discovered
//   - ConfigError: invalid project file or options
//   - PatchError: a manifest patch found no match
//   - FetchError: a remote resource could not be retrieved
//
// # Usage with errors.As
//
//	result, err := generator.GenerateWithOptions(opts...)
//	for _, out := range result.Outputs {
//	    var unsupported *sdkerrors.UnsupportedError
//	    if errors.As(out.Err, &unsupported) {
//	        fmt.Println(unsupported.Language, unsupported.Kind, unsupported.Value)
//	    }
//	}
package sdkerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates the source description could not be parsed.
	ErrParse = errors.New("parse error")

	// ErrUnsupported indicates input a target language has no mapping for.
	ErrUnsupported = errors.New("unsupported input")

	// ErrVersion indicates no version token was discovered.
	ErrVersion = errors.New("version error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")

	// ErrPatch indicates a manifest patch could not be applied.
	ErrPatch = errors.New("patch error")

	// ErrFetch indicates a remote resource could not be retrieved.
	ErrFetch = errors.New("fetch error")
)

// ParseError represents a failure to read the source description.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// UnsupportedError reports a construct that a language emitter cannot
// translate faithfully, such as an unknown HTTP method or parameter location.
type UnsupportedError struct {
	// Language is the target language name
	Language string
	// Kind names what was unsupported, e.g. "http method" or "parameter location"
	Kind string
	// Value is the offending token
	Value string
	// Endpoint identifies the operation, e.g. "GET /invoices/{id}"
	Endpoint string
}

// Error returns a human-readable error message.
func (e *UnsupportedError) Error() string {
	msg := "unsupported"
	if e.Kind != "" {
		msg += " " + e.Kind
	}
	msg += fmt.Sprintf(" %q", e.Value)
	if e.Language != "" {
		msg += " for " + e.Language
	}
	if e.Endpoint != "" {
		msg += " in " + e.Endpoint
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// VersionError represents a failure to discover or interpret the version token.
type VersionError struct {
	// Token is the raw version string, if one was found
	Token string
	// Source is where the token was looked for (URL or flag)
	Source string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *VersionError) Error() string {
	msg := "version error"
	if e.Token != "" {
		msg += fmt.Sprintf(" (token: %q)", e.Token)
	}
	if e.Source != "" {
		msg += " from " + e.Source
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *VersionError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *VersionError) Is(target error) bool {
	return target == ErrVersion
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// PatchError reports a regex patch that could not be applied to a file.
type PatchError struct {
	// Path is the file being patched
	Path string
	// Pattern is the regular expression that was searched for
	Pattern string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *PatchError) Error() string {
	msg := "patch error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Pattern != "" {
		msg += fmt.Sprintf(" (pattern: %s)", e.Pattern)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *PatchError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *PatchError) Is(target error) bool {
	return target == ErrPatch
}

// FetchError reports a remote retrieval that failed after all retries.
type FetchError struct {
	// URL is the resource that was requested
	URL string
	// Attempts is how many requests were made
	Attempts int
	// StatusCode is the last HTTP status seen (0 if none)
	StatusCode int
	// Cause is the last underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *FetchError) Error() string {
	msg := "fetch error"
	if e.URL != "" {
		msg += " for " + e.URL
	}
	if e.Attempts > 0 {
		msg += fmt.Sprintf(" after %d attempt(s)", e.Attempts)
	}
	if e.StatusCode > 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}
