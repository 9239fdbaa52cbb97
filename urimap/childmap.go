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

// Package urimap provides the hierarchical child-URI trie used by the
// router and the event fan-out layer to find registrants whose URIs are
// structural prefixes of a query URI.
//
// A ChildMap is keyed by scheme, then host and port, then one key per path
// segment, all case-insensitively. Each node carries an exact bucket and a
// wildcard bucket: a registration whose final segment is "*" lands in the
// wildcard bucket of the node for the preceding prefix and matches every
// strict descendant of that prefix, while an exact registration matches its
// own path and every descendant. Matching returns wildcards before exacts at
// each depth, in descent order; the router relies on that order.
//
// A ChildMap is not internally synchronized. It is built for a read-mostly
// workload: populate it during a single-writer registration phase, then read
// from any number of goroutines. Concurrent mutation with reads is undefined
// unless callers guard the map with a reader-writer lock or swap a rebuilt
// map atomically (copy-on-write).
package urimap

import (
	"strconv"
	"strings"

	"github.com/kestrelweb/kestrel/uri"
)

// anyScheme is the key used in place of the scheme when the map ignores
// schemes.
const anyScheme = "any"

// wildcardKey marks a wildcard registration segment and a wildcard host.
const wildcardKey = "*"

// node is one trie level with its registrant buckets.
type node[T comparable] struct {
	children map[string]*node[T]
	exact    []T
	wildcard []T
}

// child returns the named child node, creating it when asked to.
func (n *node[T]) child(key string, create bool) *node[T] {
	if c, ok := n.children[key]; ok {
		return c
	}
	if !create {
		return nil
	}
	if n.children == nil {
		n.children = make(map[string]*node[T])
	}
	c := &node[T]{}
	n.children[key] = c
	return c
}

// ChildMap is a trie from URIs to registrants of type T, matching by
// structural prefix. The zero value is an empty map that distinguishes
// schemes, the same as New returns; NewIgnoringScheme creates one that
// ignores them.
type ChildMap[T comparable] struct {
	root         node[T]
	ignoreScheme bool
	size         int
}

// New creates an empty map that distinguishes schemes.
func New[T comparable]() *ChildMap[T] {
	return &ChildMap[T]{}
}

// NewIgnoringScheme creates an empty map that matches URIs regardless of
// scheme: every insert and lookup uses the literal key "any" in its place.
func NewIgnoringScheme[T comparable]() *ChildMap[T] {
	return &ChildMap[T]{ignoreScheme: true}
}

// Len returns the number of registrations currently held.
func (m *ChildMap[T]) Len() int { return m.size }

// schemeKey folds a scheme to its trie key.
func (m *ChildMap[T]) schemeKey(u *uri.URI) string {
	if m.ignoreScheme {
		return anyScheme
	}
	return strings.ToLower(u.Scheme())
}

// hostPortKey folds the host and port to one trie key. A port that is the
// scheme's default is left out, as in URI.HostPort, so default ports of
// different schemes key alike. A literal "*" host keys as "*" alone, so it
// matches any authority.
func hostPortKey(u *uri.URI) string {
	host := strings.ToLower(u.Host())
	if host == wildcardKey {
		return wildcardKey
	}
	if u.Port() == uri.NoPort || u.UsesDefaultPort() {
		return host
	}
	return host + ":" + strconv.Itoa(u.Port())
}

// Add registers registrant under u. A final "*" segment is stripped and the
// registrant lands in the wildcard bucket of the preceding prefix.
func (m *ChildMap[T]) Add(u *uri.URI, registrant T) {
	segments := u.Segments()
	wildcard := false
	if n := len(segments); n > 0 && segments[n-1] == wildcardKey {
		segments = segments[:n-1]
		wildcard = true
	}
	n := m.root.child(m.schemeKey(u), true)
	n = n.child(hostPortKey(u), true)
	for _, seg := range segments {
		n = n.child(strings.ToLower(seg), true)
	}
	if wildcard {
		n.wildcard = append(n.wildcard, registrant)
	} else {
		n.exact = append(n.exact, registrant)
	}
	m.size++
}

// AddAll registers the same registrant under every given URI.
func (m *ChildMap[T]) AddAll(uris []*uri.URI, registrant T) {
	for _, u := range uris {
		m.Add(u, registrant)
	}
}

// Remove unregisters one occurrence of registrant at exactly u. It reports
// whether a registration was found and removed.
func (m *ChildMap[T]) Remove(u *uri.URI, registrant T) bool {
	segments := u.Segments()
	wildcard := false
	if n := len(segments); n > 0 && segments[n-1] == wildcardKey {
		segments = segments[:n-1]
		wildcard = true
	}
	n := m.root.child(m.schemeKey(u), false)
	if n == nil {
		return false
	}
	if n = n.child(hostPortKey(u), false); n == nil {
		return false
	}
	for _, seg := range segments {
		if n = n.child(strings.ToLower(seg), false); n == nil {
			return false
		}
	}
	bucket := &n.exact
	if wildcard {
		bucket = &n.wildcard
	}
	for i, r := range *bucket {
		if r == registrant {
			*bucket = append((*bucket)[:i], (*bucket)[i+1:]...)
			m.size--
			return true
		}
	}
	return false
}

// RemoveAll unregisters every occurrence of registrant, wherever it was
// added. It returns the number of registrations removed.
func (m *ChildMap[T]) RemoveAll(registrant T) int {
	removed := removeEverywhere(&m.root, registrant)
	m.size -= removed
	return removed
}

// removeEverywhere strips registrant from both buckets of the subtree.
func removeEverywhere[T comparable](n *node[T], registrant T) int {
	removed := 0
	n.exact, removed = filterOut(n.exact, registrant, removed)
	n.wildcard, removed = filterOut(n.wildcard, registrant, removed)
	for _, c := range n.children {
		removed += removeEverywhere(c, registrant)
	}
	return removed
}

// filterOut drops every occurrence of registrant from the bucket in place.
func filterOut[T comparable](bucket []T, registrant T, removed int) ([]T, int) {
	kept := bucket[:0]
	for _, r := range bucket {
		if r == registrant {
			removed++
		} else {
			kept = append(kept, r)
		}
	}
	return kept, removed
}

// Matches returns every registrant whose registered URI is a structural
// prefix of u: wildcard registrants for strict ancestors of u's path, exact
// registrants for ancestors and for u's path itself. Results come wildcards
// before exacts at each depth, in descent order, the exact host:port subtree
// before the "*" host subtree.
func (m *ChildMap[T]) Matches(u *uri.URI) []T {
	return m.MatchesFiltered(u, nil)
}

// MatchesFiltered is Matches restricted to registrants present in filter.
// A nil filter admits everything.
func (m *ChildMap[T]) MatchesFiltered(u *uri.URI, filter map[T]struct{}) []T {
	scheme := m.root.child(m.schemeKey(u), false)
	if scheme == nil {
		return nil
	}
	segments := u.Segments()
	var out []T
	if host := scheme.child(hostPortKey(u), false); host != nil {
		walkMatches(host, segments, &out)
	}
	if star := scheme.child(wildcardKey, false); star != nil {
		walkMatches(star, segments, &out)
	}
	if filter == nil {
		return out
	}
	kept := out[:0]
	for _, r := range out {
		if _, ok := filter[r]; ok {
			kept = append(kept, r)
		}
	}
	return kept
}

// walkMatches descends the segment trie. Interior nodes contribute their
// wildcard bucket (the query path continues below them) and their exact
// bucket (ancestors match descendants); the terminal node contributes its
// exact bucket only, since a wildcard never matches its own prefix. The
// descent stops at the first missing child.
func walkMatches[T comparable](n *node[T], segments []string, out *[]T) {
	for _, seg := range segments {
		*out = append(*out, n.wildcard...)
		*out = append(*out, n.exact...)
		if n = n.child(strings.ToLower(seg), false); n == nil {
			return
		}
	}
	*out = append(*out, n.exact...)
}
