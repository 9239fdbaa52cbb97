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
	"encoding/json"
	"hash/fnv"
	"strconv"
	"strings"
)

// Param is one query parameter. Order is preserved and duplicate keys are
// allowed. A key without '=' has HasValue false, which is distinct from an
// empty value ("k" versus "k=").
type Param struct {
	Key      string
	Value    string
	HasValue bool
}

// URI is an immutable absolute URI. The zero value is not a valid URI;
// values are produced by Parse, New, or the fluent With, Without, and At
// methods, each of which returns a fresh value. A *URI is safe to share
// between goroutines.
//
// Scheme and host are stored case-folded to lower case. User, password,
// query keys and values, and the fragment are stored decoded; path segments
// are stored raw, exactly as parsed, so already-encoded data survives
// re-rendering byte for byte.
type URI struct {
	scheme        string
	user          string
	password      string
	hasUser       bool
	hasPassword   bool
	host          string
	port          int
	segments      []string
	trailingSlash bool
	params        []Param
	fragment      string
	hasFragment   bool
	doubleEncode  bool
}

// Scheme returns the lower-cased scheme.
func (u *URI) Scheme() string { return u.scheme }

// User returns the decoded user name and whether credentials are present.
func (u *URI) User() (string, bool) { return u.user, u.hasUser }

// Password returns the decoded password and whether one is present.
func (u *URI) Password() (string, bool) { return u.password, u.hasPassword }

// Host returns the lower-cased host. IPv6 literals keep their brackets.
func (u *URI) Host() string { return u.host }

// Port returns the effective port: the one from the input, or the scheme's
// default when the input carried none, or NoPort.
func (u *URI) Port() int { return u.port }

// UsesDefaultPort reports whether the effective port equals the scheme's
// default. It is metadata: two URIs differing only in this flag are equal.
func (u *URI) UsesDefaultPort() bool { return u.port == DefaultPort(u.scheme) }

// Segments returns a copy of the path segments. Segments are never empty;
// one may begin with '/' when it originated from a multi-slash run.
func (u *URI) Segments() []string {
	return append([]string(nil), u.segments...)
}

// TrailingSlash reports whether the path ends with a slash.
func (u *URI) TrailingSlash() bool { return u.trailingSlash }

// Params returns a copy of the query parameters and whether a query is
// present at all. A URI without '?' returns (nil, false); a bare '?' returns
// an empty, non-nil slice and true.
func (u *URI) Params() ([]Param, bool) {
	if u.params == nil {
		return nil, false
	}
	return append([]Param{}, u.params...), true
}

// Fragment returns the decoded fragment and whether one is present.
func (u *URI) Fragment() (string, bool) { return u.fragment, u.hasFragment }

// SegmentDoubleEncoding reports whether native re-rendering double-encodes
// segment characters that finicky native URI libraries reject.
func (u *URI) SegmentDoubleEncoding() bool { return u.doubleEncode }

// UserInfo renders the encoded "user[:password]" part, or "" when the URI
// carries no credentials.
func (u *URI) UserInfo() string {
	if !u.hasUser {
		return ""
	}
	var b strings.Builder
	b.WriteString(EncodeUserInfo(u.user))
	if u.hasPassword {
		b.WriteByte(':')
		b.WriteString(EncodeUserInfo(u.password))
	}
	return b.String()
}

// HostPort renders "host[:port]". The port is omitted when it is the
// scheme's default.
func (u *URI) HostPort() string {
	if u.UsesDefaultPort() || u.port == NoPort {
		return u.host
	}
	return u.host + ":" + strconv.Itoa(u.port)
}

// SchemeHostPort renders "scheme://host[:port]".
func (u *URI) SchemeHostPort() string {
	return u.scheme + "://" + u.HostPort()
}

// Authority renders "[userinfo@]host[:port]".
func (u *URI) Authority() string {
	if !u.hasUser {
		return u.HostPort()
	}
	return u.UserInfo() + "@" + u.HostPort()
}

// Path renders the path: segments joined by '/', with a leading '/' and a
// trailing '/' iff the flag is set. A URI with no segments and no trailing
// slash has an empty path.
func (u *URI) Path() string {
	if len(u.segments) == 0 && !u.trailingSlash {
		return ""
	}
	var b strings.Builder
	u.renderPath(&b, false)
	return b.String()
}

// Query renders the encoded "k=v&..." form of the parameters, or "" when
// there is no query.
func (u *URI) Query() string {
	if len(u.params) == 0 {
		return ""
	}
	var b strings.Builder
	renderParams(&b, u.params)
	return b.String()
}

// QueryFragment renders "[?query][#fragment]".
func (u *URI) QueryFragment() string {
	var b strings.Builder
	u.renderQueryFragment(&b)
	return b.String()
}

// PathQueryFragment renders "path[?query][#fragment]".
func (u *URI) PathQueryFragment() string {
	var b strings.Builder
	u.renderPath(&b, false)
	u.renderQueryFragment(&b)
	return b.String()
}

// LastSegment returns the final path segment, if any.
func (u *URI) LastSegment() (string, bool) {
	if len(u.segments) == 0 {
		return "", false
	}
	return u.segments[len(u.segments)-1], true
}

// MaxSimilarity returns the similarity of the URI with itself: one token for
// the scheme, one for the host, one per segment.
func (u *URI) MaxSimilarity() int {
	return 2 + len(u.segments)
}

// GetParam returns the first value for key, comparing keys
// case-insensitively, or def when the key is absent. A key-only parameter
// yields "".
func (u *URI) GetParam(key, def string) string {
	return u.GetParamAt(key, 0, def)
}

// GetParamAt returns the nth value for key (zero-based, in query order), or
// def when there are fewer occurrences.
func (u *URI) GetParamAt(key string, index int, def string) string {
	if index < 0 {
		return def
	}
	n := 0
	for _, p := range u.params {
		if !strings.EqualFold(p.Key, key) {
			continue
		}
		if n == index {
			return p.Value
		}
		n++
	}
	return def
}

// GetParams returns all values for key, in query order. Key-only parameters
// contribute "".
func (u *URI) GetParams(key string) []string {
	var values []string
	for _, p := range u.params {
		if strings.EqualFold(p.Key, key) {
			values = append(values, p.Value)
		}
	}
	return values
}

// Equals reports deep equality: schemes, hosts, users, segment lists, and
// fragments compare case-insensitively; passwords and parameter values
// compare exactly; ports compare numerically. A URI without '?' is not equal
// to one with a bare '?'. The trailing slash and the default-port flag are
// metadata and do not participate.
func (u *URI) Equals(o *URI) bool {
	if u == nil || o == nil {
		return u == o
	}
	if !strings.EqualFold(u.scheme, o.scheme) ||
		!strings.EqualFold(u.host, o.host) ||
		u.port != o.port {
		return false
	}
	if u.hasUser != o.hasUser || (u.hasUser && !strings.EqualFold(u.user, o.user)) {
		return false
	}
	if u.hasPassword != o.hasPassword || (u.hasPassword && u.password != o.password) {
		return false
	}
	if len(u.segments) != len(o.segments) {
		return false
	}
	for i := range u.segments {
		if !strings.EqualFold(u.segments[i], o.segments[i]) {
			return false
		}
	}
	if u.hasFragment != o.hasFragment || (u.hasFragment && !strings.EqualFold(u.fragment, o.fragment)) {
		return false
	}
	if (u.params == nil) != (o.params == nil) || len(u.params) != len(o.params) {
		return false
	}
	for i := range u.params {
		a, b := u.params[i], o.params[i]
		if !strings.EqualFold(a.Key, b.Key) || a.HasValue != b.HasValue || a.Value != b.Value {
			return false
		}
	}
	return true
}

// Hash returns a hash consistent with Equals: equal URIs hash equal. It
// covers the scheme, host, port, and segment identity classes.
func (u *URI) Hash() uint32 {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(u.scheme)))
	h.Write([]byte{0})
	h.Write([]byte(strings.ToLower(u.host)))
	h.Write([]byte{0, byte(u.port >> 8), byte(u.port)})
	for _, seg := range u.segments {
		h.Write([]byte(strings.ToLower(seg)))
		h.Write([]byte{0})
	}
	return h.Sum32()
}

// String renders the canonical form, password included.
func (u *URI) String() string {
	var b strings.Builder
	u.render(&b, true, false)
	return b.String()
}

// Redacted renders the canonical form with the password replaced by "xxx",
// for logs and error messages.
func (u *URI) Redacted() string {
	var b strings.Builder
	u.render(&b, false, false)
	return b.String()
}

// render writes the URI. includePassword suppresses the password when false;
// native applies the per-segment double-encoding rules.
func (u *URI) render(b *strings.Builder, includePassword, native bool) {
	b.WriteString(u.scheme)
	b.WriteString("://")
	if u.hasUser {
		b.WriteString(EncodeUserInfo(u.user))
		if u.hasPassword {
			b.WriteByte(':')
			if includePassword {
				b.WriteString(EncodeUserInfo(u.password))
			} else {
				b.WriteString("xxx")
			}
		}
		b.WriteByte('@')
	}
	b.WriteString(u.host)
	if !u.UsesDefaultPort() && u.port != NoPort {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(u.port))
	}
	u.renderPath(b, native)
	u.renderQueryFragment(b)
}

// renderPath writes the path segments verbatim; they are stored in their
// encoded form.
func (u *URI) renderPath(b *strings.Builder, native bool) {
	for _, seg := range u.segments {
		b.WriteByte('/')
		if native && u.doubleEncode {
			b.WriteString(nativeSegment(seg))
		} else {
			b.WriteString(seg)
		}
	}
	if u.trailingSlash {
		b.WriteByte('/')
	}
}

// renderQueryFragment writes "[?query][#fragment]".
func (u *URI) renderQueryFragment(b *strings.Builder) {
	if u.params != nil {
		b.WriteByte('?')
		renderParams(b, u.params)
	}
	if u.hasFragment {
		b.WriteByte('#')
		b.WriteString(EncodeFragment(u.fragment))
	}
}

// renderParams writes the encoded key=value pairs in order.
func renderParams(b *strings.Builder, params []Param) {
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(EncodeQuery(p.Key))
		if p.HasValue {
			b.WriteByte('=')
			b.WriteString(EncodeQuery(p.Value))
		}
	}
}

// clone returns a deep copy sharing nothing mutable with the receiver.
func (u *URI) clone() *URI {
	c := *u
	c.segments = append([]string(nil), u.segments...)
	if u.params != nil {
		c.params = append([]Param{}, u.params...)
	}
	return &c
}

// MarshalJSON implements json.Marshaler, encoding the URI as its canonical
// string.
func (u *URI) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// UnmarshalJSON implements json.Unmarshaler, parsing and validating the
// string form.
func (u *URI) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*u = *parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (u *URI) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *URI) UnmarshalText(data []byte) error {
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*u = *parsed
	return nil
}
