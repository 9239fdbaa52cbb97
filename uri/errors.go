/*
Copyright 2026 Kestrel Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package uri

import (
	"errors"
	"fmt"
)

var (
	// errNulByte is returned when the input contains a NUL byte, which is
	// rejected everywhere, in every component.
	errNulByte = &kindError{message: "NUL byte in URI"}
	// errNoScheme is returned when the input does not begin with a scheme.
	errNoScheme = &kindError{message: "URI must begin with a scheme"}
	// errMissingAuthority is returned when the scheme is not immediately
	// followed by "://". Scheme-relative and opaque forms are not absolute
	// URIs and are rejected.
	errMissingAuthority = &kindError{message: "scheme must be followed by '://'"}
	// errEmptyHost is returned for an empty host component. A host is
	// mandatory in an absolute URI.
	errEmptyHost = &kindError{message: "empty host"}
	// errEncodedHost is returned when a percent-encoded byte appears inside
	// the host. Hosts carry no encoding; the decoded form is illegal.
	errEncodedHost = &kindError{message: "percent-encoded byte in host"}
	// errPortRange is returned for a port outside [0, 65535].
	errPortRange = &kindError{message: "port out of range"}
	// errBadPort is returned for a port token that is empty or not decimal.
	errBadPort = &kindError{message: "invalid port"}
	// errBadIPv6 is returned for an unterminated or malformed bracketed
	// IPv6 literal.
	errBadIPv6 = &kindError{message: "invalid IPv6 literal"}
)

// ParseError is returned by Parse and ParseNormalized for syntactically
// invalid input. It carries the offending input and wraps the specific cause.
type ParseError struct {
	Input string
	Err   error
}

// Error returns the string representation of the parse error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("uri: cannot parse %q: %s", e.Input, e.Err)
}

// Unwrap provides compatibility with Go's standard errors package.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError is returned by New and by the fluent With and At methods
// when a supplied part is malformed. Part names the component ("scheme",
// "host", "segment", ...) and Value is the rejected input.
type ValidationError struct {
	Part  string
	Value string
	Err   error
}

// Error returns the string representation of the validation error.
func (e *ValidationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("uri: invalid %s %q", e.Part, e.Value)
	}
	return fmt.Sprintf("uri: invalid %s %q: %s", e.Part, e.Value, e.Err)
}

// Unwrap provides compatibility with Go's standard errors package.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// RelationError is returned by the structural relation operations
// (GetRelativePathTo, ChangePrefix) when the two URIs do not share a scheme,
// host, and port under the chosen strictness.
type RelationError struct {
	Base  string
	Other string
}

// Error returns the string representation of the relation error.
func (e *RelationError) Error() string {
	return fmt.Sprintf("uri: %q and %q differ in scheme, host, or port", e.Base, e.Other)
}

// newParseError wraps a parser failure with the input it rejected.
// It returns nil if the input error is nil.
func newParseError(input string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Input: input, Err: err}
}

// newValidationError tags a rejected part with its component name.
func newValidationError(part, value string, cause error) error {
	return &ValidationError{Part: part, Value: value, Err: cause}
}

// kindError is a specialized error type used by the parser to provide
// context about a parsing failure.
type kindError struct {
	message string
	char    byte
	details string
}

// Error formats the error message with any available character or details.
func (e *kindError) Error() string {
	msg := e.message
	if e.char != 0 {
		msg = fmt.Sprintf("%s '%c'", msg, e.char)
	} else if e.details != "" {
		msg = fmt.Sprintf("%s '%s'", msg, e.details)
	}
	return msg
}

// isKind reports whether err is, or wraps, the given sentinel kindError.
func isKind(err error, sentinel *kindError) bool {
	var ke *kindError
	if !errors.As(err, &ke) {
		return false
	}
	return ke == sentinel || ke.message == sentinel.message
}
