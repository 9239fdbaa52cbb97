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
	"strconv"
	"strings"
)

// New creates a minimal URI from a scheme and a host, with the scheme's
// default port, no credentials, and an empty path. Use the fluent methods to
// assemble the rest. Unicode host names are folded to their ASCII (punycode)
// form before validation.
func New(scheme, host string) (*URI, error) {
	if err := validateScheme(scheme); err != nil {
		return nil, err
	}
	h, err := normalizeHost(host)
	if err != nil {
		return nil, err
	}
	s := strings.ToLower(scheme)
	return &URI{scheme: s, host: h, port: DefaultPort(s)}, nil
}

// validateScheme checks the scheme shape: a letter followed by letters,
// digits, '+', '-', or '.'.
func validateScheme(scheme string) error {
	if scheme == "" || !isASCIILetter(scheme[0]) {
		return newValidationError("scheme", scheme, nil)
	}
	for i := 1; i < len(scheme); i++ {
		if !isSchemeByte(scheme[i]) {
			return newValidationError("scheme", scheme, &kindError{message: "invalid scheme character", char: scheme[i]})
		}
	}
	return nil
}

// normalizeHost validates a host and returns its lower-cased form. Bracketed
// IPv6 literals keep their brackets; non-ASCII registered names are folded
// to punycode first.
func normalizeHost(host string) (string, error) {
	if host == "" {
		return "", newValidationError("host", host, errEmptyHost)
	}
	if host[0] == '[' {
		if len(host) <= 2 || host[len(host)-1] != ']' {
			return "", newValidationError("host", host, errBadIPv6)
		}
		for i := 1; i < len(host)-1; i++ {
			if !isIPv6Byte(host[i]) {
				return "", newValidationError("host", host, errBadIPv6)
			}
		}
		return strings.ToLower(host), nil
	}
	// Case-fold before the IDNA pass: punycode is case-sensitive.
	h := strings.ToLower(host)
	if !isASCIIString(h) {
		folded, err := asciiHost(h)
		if err != nil {
			return "", newValidationError("host", host, err)
		}
		h = folded
	}
	for i := 0; i < len(h); i++ {
		if !isHostByte(h[i]) {
			return "", newValidationError("host", host, &kindError{message: "invalid character in host", char: h[i]})
		}
	}
	return h, nil
}

// validateSegment checks a programmatic path segment: non-empty, no
// backslash, an optional leading slash run (the multi-slash form), and
// segment-class bytes after it.
func validateSegment(seg string) error {
	if seg == "" {
		return newValidationError("segment", seg, &kindError{message: "empty segment"})
	}
	i := 0
	for i < len(seg) && seg[i] == '/' {
		i++
	}
	if i == len(seg) {
		return newValidationError("segment", seg, &kindError{message: "segment without content"})
	}
	for ; i < len(seg); i++ {
		b := seg[i]
		if b == '/' || b == '\\' || !isSegmentByte(b) {
			return newValidationError("segment", seg, &kindError{message: "invalid character in segment", char: b})
		}
	}
	return nil
}

// isASCIIString checks if every byte of s is ASCII.
func isASCIIString(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// WithScheme returns a copy with the given scheme. A port that was the old
// scheme's default follows the new scheme's default.
func (u *URI) WithScheme(scheme string) (*URI, error) {
	if err := validateScheme(scheme); err != nil {
		return nil, err
	}
	c := u.clone()
	wasDefault := u.UsesDefaultPort()
	c.scheme = strings.ToLower(scheme)
	if wasDefault {
		c.port = DefaultPort(c.scheme)
	}
	return c, nil
}

// WithHost returns a copy with the given host. Unicode host names are folded
// to punycode.
func (u *URI) WithHost(host string) (*URI, error) {
	h, err := normalizeHost(host)
	if err != nil {
		return nil, err
	}
	c := u.clone()
	c.host = h
	return c, nil
}

// WithPort returns a copy with the given port. NoPort selects the scheme's
// default.
func (u *URI) WithPort(port int) (*URI, error) {
	if port < NoPort || port > 65535 {
		return nil, newValidationError("port", strconv.Itoa(port), errPortRange)
	}
	c := u.clone()
	if port == NoPort {
		c.port = DefaultPort(c.scheme)
	} else {
		c.port = port
	}
	return c, nil
}

// WithCredentials returns a copy with the given decoded user and password.
// The user must be non-empty; the password may be empty.
func (u *URI) WithCredentials(user, password string) (*URI, error) {
	if user == "" {
		return nil, newValidationError("user", user, &kindError{message: "empty user info"})
	}
	c := u.clone()
	c.user, c.hasUser = user, true
	c.password, c.hasPassword = password, true
	return c, nil
}

// WithCredentialsFrom returns a copy carrying other's credentials, including
// their absence.
func (u *URI) WithCredentialsFrom(other *URI) *URI {
	c := u.clone()
	c.user, c.hasUser = other.user, other.hasUser
	c.password, c.hasPassword = other.password, other.hasPassword
	return c
}

// WithoutCredentials returns a copy with no user and no password.
func (u *URI) WithoutCredentials() *URI {
	c := u.clone()
	c.user, c.hasUser = "", false
	c.password, c.hasPassword = "", false
	return c
}

// WithFragment returns a copy with the given decoded fragment. An empty
// string is a present-but-empty fragment ("...#").
func (u *URI) WithFragment(fragment string) *URI {
	c := u.clone()
	c.fragment, c.hasFragment = fragment, true
	return c
}

// WithoutFragment returns a copy with no fragment.
func (u *URI) WithoutFragment() *URI {
	c := u.clone()
	c.fragment, c.hasFragment = "", false
	return c
}

// WithTrailingSlash returns a copy whose path ends with a slash.
func (u *URI) WithTrailingSlash() *URI {
	c := u.clone()
	c.trailingSlash = true
	return c
}

// WithoutTrailingSlash returns a copy whose path does not end with a slash.
func (u *URI) WithoutTrailingSlash() *URI {
	c := u.clone()
	c.trailingSlash = false
	return c
}

// WithSegmentDoubleEncoding returns a copy that double-encodes segments when
// rendered for native consumers.
func (u *URI) WithSegmentDoubleEncoding() *URI {
	c := u.clone()
	c.doubleEncode = true
	return c
}

// WithoutSegmentDoubleEncoding returns a copy that renders segments verbatim
// for native consumers.
func (u *URI) WithoutSegmentDoubleEncoding() *URI {
	c := u.clone()
	c.doubleEncode = false
	return c
}

// WithQuery returns a copy whose query is the parsed form of the given
// query string. A leading '?' is tolerated; an empty string yields the bare
// '?' (present, no pairs).
func (u *URI) WithQuery(query string) (*URI, error) {
	q := strings.TrimPrefix(query, "?")
	p := &parser{in: newScanner(q)}
	pt := &parts{}
	if err := p.parseQuery(pt); err != nil {
		return nil, newValidationError("query", query, err)
	}
	if !p.in.eof() {
		return nil, newValidationError("query", query, &kindError{message: "invalid character in query", char: '#'})
	}
	c := u.clone()
	c.params = pt.params
	return c, nil
}

// WithParams returns a copy with the given pairs appended to the query, in
// order. The query becomes present if it was not.
func (u *URI) WithParams(params []Param) *URI {
	c := u.clone()
	if c.params == nil {
		c.params = []Param{}
	}
	c.params = append(c.params, params...)
	return c
}

// WithParam returns a copy with one key=value pair appended to the query.
func (u *URI) WithParam(key, value string) *URI {
	return u.WithParams([]Param{{Key: key, Value: value, HasValue: true}})
}

// WithParamsFrom returns a copy with other's query pairs appended. A URI
// without a query contributes nothing.
func (u *URI) WithParamsFrom(other *URI) *URI {
	if other.params == nil {
		return u.clone()
	}
	return u.WithParams(other.params)
}

// WithoutQuery returns a copy with no query at all (no '?').
func (u *URI) WithoutQuery() *URI {
	c := u.clone()
	c.params = nil
	return c
}

// WithoutParams returns a copy with every pair whose key matches
// (case-insensitively) removed. The '?' stays present.
func (u *URI) WithoutParams(key string) *URI {
	c := u.clone()
	if c.params == nil {
		return c
	}
	kept := c.params[:0]
	for _, p := range c.params {
		if !strings.EqualFold(p.Key, key) {
			kept = append(kept, p)
		}
	}
	c.params = kept
	return c
}

// WithFirstSegments returns a copy keeping only the first n path segments.
// The trailing slash survives only when the whole path survives.
func (u *URI) WithFirstSegments(n int) (*URI, error) {
	if n < 0 || n > len(u.segments) {
		return nil, newValidationError("segment count", strconv.Itoa(n), nil)
	}
	c := u.clone()
	c.segments = c.segments[:n]
	if n < len(u.segments) {
		c.trailingSlash = false
	}
	return c, nil
}

// WithoutFirstSegments returns a copy with the first n path segments
// removed.
func (u *URI) WithoutFirstSegments(n int) (*URI, error) {
	if n < 0 || n > len(u.segments) {
		return nil, newValidationError("segment count", strconv.Itoa(n), nil)
	}
	c := u.clone()
	c.segments = c.segments[n:]
	return c, nil
}

// WithoutLastSegment returns a copy with the final path segment removed.
func (u *URI) WithoutLastSegment() (*URI, error) {
	return u.WithoutLastSegments(1)
}

// WithoutLastSegments returns a copy with the final n path segments removed.
func (u *URI) WithoutLastSegments(n int) (*URI, error) {
	if n < 0 || n > len(u.segments) {
		return nil, newValidationError("segment count", strconv.Itoa(n), nil)
	}
	c := u.clone()
	c.segments = c.segments[:len(c.segments)-n]
	return c, nil
}

// WithoutPathQueryFragment returns a copy reduced to scheme, credentials,
// host, and port.
func (u *URI) WithoutPathQueryFragment() *URI {
	c := u.clone()
	c.segments = nil
	c.trailingSlash = false
	c.params = nil
	c.fragment, c.hasFragment = "", false
	return c
}

// WithoutCredentialsPathQueryFragment returns a copy reduced to scheme,
// host, and port.
func (u *URI) WithoutCredentialsPathQueryFragment() *URI {
	c := u.WithoutPathQueryFragment()
	c.user, c.hasUser = "", false
	c.password, c.hasPassword = "", false
	return c
}

// At returns a copy with the given pre-encoded segments appended. An empty
// final argument sets the trailing slash instead of adding a segment; any
// other empty argument is rejected.
func (u *URI) At(segments ...string) (*URI, error) {
	if len(segments) == 0 {
		return u.clone(), nil
	}
	c := u.clone()
	c.trailingSlash = false
	for i, seg := range segments {
		if seg == "" {
			if i != len(segments)-1 {
				return nil, newValidationError("segment", seg, &kindError{message: "empty segment"})
			}
			c.trailingSlash = true
			break
		}
		if err := validateSegment(seg); err != nil {
			return nil, err
		}
		c.segments = append(c.segments, seg)
	}
	return c, nil
}

// AtPath parses a relative "path[?query][#fragment]" remainder and composes
// it atop the URI: segments append, query pairs append, and a fragment
// replaces the current one.
func (u *URI) AtPath(pathQueryFragment string) (*URI, error) {
	pt, err := parseRelative(pathQueryFragment)
	if err != nil {
		return nil, newValidationError("path", pathQueryFragment, err)
	}
	c := u.clone()
	if len(pt.segments) > 0 || pt.trailingSlash {
		c.segments = append(c.segments, pt.segments...)
		c.trailingSlash = pt.trailingSlash
	}
	if pt.hasParams {
		if c.params == nil {
			c.params = []Param{}
		}
		c.params = append(c.params, pt.params...)
	}
	if pt.hasFragment {
		c.fragment, c.hasFragment = pt.fragment, true
	}
	return c, nil
}

// AtAbsolutePath parses a "path[?query][#fragment]" remainder and replaces
// the URI's path, query, and fragment with it.
func (u *URI) AtAbsolutePath(pathQueryFragment string) (*URI, error) {
	pt, err := parseRelative(pathQueryFragment)
	if err != nil {
		return nil, newValidationError("path", pathQueryFragment, err)
	}
	c := u.clone()
	c.segments = pt.segments
	c.trailingSlash = pt.trailingSlash
	c.params = pt.params
	if !pt.hasParams {
		c.params = nil
	}
	c.fragment, c.hasFragment = pt.fragment, pt.hasFragment
	return c, nil
}
