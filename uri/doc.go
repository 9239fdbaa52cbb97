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

// Package uri implements the URI core of the Kestrel framework: a single-pass
// parser for absolute URIs that accepts a superset of RFC 3986, an immutable
// URI value type with a fluent modification API, and a context-sensitive
// percent codec tuned for interop with finicky web servers.
//
// The grammar accepted by Parse is deliberately wider than RFC 3986: path
// segments, query tokens, and fragments additionally accept '^', '|', '[',
// ']', '{', and '}'; backslashes inside the path are canonicalized to '/';
// runs of consecutive slashes fold into segments whose first character is
// '/'. Only absolute URIs are parsed - there is no relative-reference entry
// point, and hosts are ASCII (IPv6 literals in brackets included).
//
// URI values are deeply immutable: every With, Without, and At method returns
// a fresh value, so a *URI may be shared between goroutines without locking.
// Parse, the codec functions, and all projections are pure.
//
// The companion package urimap builds a hierarchical child-URI trie on top of
// this type for prefix matching in the router and event fan-out layers.
package uri
