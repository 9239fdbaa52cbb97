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

import "strings"

// sameOrigin checks if two URIs agree on scheme, host, and port under the
// chosen strictness. When strict is false, "http" and "https" are
// interchangeable and two default ports compare equal; when true, scheme and
// port must match exactly.
func (u *URI) sameOrigin(other *URI, strict bool) bool {
	if !strings.EqualFold(u.host, other.host) {
		return false
	}
	if strict {
		return strings.EqualFold(u.scheme, other.scheme) && u.port == other.port
	}
	sameScheme := strings.EqualFold(u.scheme, other.scheme) ||
		(isWebScheme(u.scheme) && isWebScheme(other.scheme))
	if !sameScheme {
		return false
	}
	return u.port == other.port || (u.UsesDefaultPort() && other.UsesDefaultPort())
}

// isWebScheme checks for the two schemes treated as interchangeable under
// non-strict comparison.
func isWebScheme(scheme string) bool {
	return strings.EqualFold(scheme, "http") || strings.EqualFold(scheme, "https")
}

// commonSegments returns the length of the longest common case-insensitive
// segment prefix.
func commonSegments(a, b []string) int {
	n := 0
	for n < len(a) && n < len(b) && strings.EqualFold(a[n], b[n]) {
		n++
	}
	return n
}

// Similarity returns the number of matching prefix tokens in the sequence
// scheme, host, segments[0], segments[1], ... or 0 when scheme, host, or
// port disagree under the chosen strictness. A URI's similarity with itself
// is its MaxSimilarity.
func (u *URI) Similarity(other *URI, strict bool) int {
	if !u.sameOrigin(other, strict) {
		return 0
	}
	return 2 + commonSegments(u.segments, other.segments)
}

// HasPrefix reports whether prefix's segments are a leading subsequence of
// the receiver's, with scheme, host, and port agreeing under the chosen
// strictness. The prefix's trailing slash, query, and fragment are ignored.
func (u *URI) HasPrefix(prefix *URI, strict bool) bool {
	if !u.sameOrigin(prefix, strict) {
		return false
	}
	if len(prefix.segments) > len(u.segments) {
		return false
	}
	return commonSegments(u.segments, prefix.segments) == len(prefix.segments)
}

// GetRelativePathTo renders the path that leads from other to the receiver:
// one ".." per segment on other's side past the common prefix, then the
// receiver's remaining segments. The two URIs must agree on scheme, host,
// and port under the chosen strictness, else a *RelationError is returned.
// Equal paths yield "".
func (u *URI) GetRelativePathTo(other *URI, strict bool) (string, error) {
	if !u.sameOrigin(other, strict) {
		return "", &RelationError{Base: u.String(), Other: other.String()}
	}
	common := commonSegments(u.segments, other.segments)
	var b strings.Builder
	for i := common; i < len(other.segments); i++ {
		if b.Len() > 0 {
			b.WriteByte('/')
		}
		b.WriteString("..")
	}
	for _, seg := range u.segments[common:] {
		if b.Len() > 0 {
			b.WriteByte('/')
		}
		b.WriteString(seg)
	}
	if b.Len() > 0 && u.trailingSlash && len(u.segments) > common {
		b.WriteByte('/')
	}
	return b.String(), nil
}

// ChangePrefix re-roots the receiver from one prefix onto another: the
// result is to, extended by the receiver's segments past from (with ".."
// steps when from is not an ancestor), carrying the receiver's trailing
// slash, query, and fragment. The receiver and from must agree on scheme,
// host, and port under the chosen strictness, else a *RelationError is
// returned.
func (u *URI) ChangePrefix(from, to *URI, strict bool) (*URI, error) {
	if !u.sameOrigin(from, strict) {
		return nil, &RelationError{Base: u.String(), Other: from.String()}
	}
	common := commonSegments(u.segments, from.segments)
	c := to.clone()
	for i := common; i < len(from.segments); i++ {
		c.segments = append(c.segments, "..")
	}
	c.segments = append(c.segments, u.segments[common:]...)
	c.trailingSlash = u.trailingSlash
	c.params = nil
	if u.params != nil {
		c.params = append([]Param{}, u.params...)
	}
	c.fragment, c.hasFragment = u.fragment, u.hasFragment
	c.doubleEncode = u.doubleEncode
	return c, nil
}
