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

//nolint:testpackage // Shares fixtures with the white-box parser tests.
package uri

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarity(t *testing.T) {
	testCases := []struct {
		name      string
		a, b      string
		strict    bool
		want      int
	}{
		{name: "identical", a: "http://h/a/b", b: "http://h/a/b", want: 4},
		{name: "common prefix", a: "http://h/a/b/c", b: "http://h/a/x/y", want: 3},
		{name: "no common segments", a: "http://h/a", b: "http://h/b", want: 2},
		{name: "different host", a: "http://h1/a", b: "http://h2/a", want: 0},
		{name: "http and https interchange when lax", a: "http://h/a", b: "https://h/a", want: 3},
		{name: "http and https differ when strict", a: "http://h/a", b: "https://h/a", strict: true, want: 0},
		{name: "default ports equal when lax", a: "http://h:80/a", b: "https://h:443/a", want: 3},
		{name: "explicit ports differ when lax", a: "http://h:8080/a", b: "http://h/a", want: 0},
		{name: "equal explicit ports", a: "http://h:8080/a", b: "http://h:8080/a", strict: true, want: 3},
		{name: "segment case folds", a: "http://h/A/b", b: "http://h/a/B", want: 4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, b := MustParse(tc.a), MustParse(tc.b)
			assert.Equal(t, tc.want, a.Similarity(b, tc.strict))
			assert.Equal(t, tc.want, b.Similarity(a, tc.strict), "similarity must be symmetric")
		})
	}

	u := MustParse("http://h/a/b/c")
	assert.Equal(t, u.MaxSimilarity(), u.Similarity(u, true))
}

func TestHasPrefix(t *testing.T) {
	u := MustParse("http://h/a/b/c")

	assert.True(t, u.HasPrefix(MustParse("http://h/a"), true))
	assert.True(t, u.HasPrefix(MustParse("http://h/a/b/c"), true))
	assert.True(t, u.HasPrefix(MustParse("http://h"), true))
	assert.True(t, u.HasPrefix(MustParse("http://h/A/B"), true), "prefix folds case")
	assert.False(t, u.HasPrefix(MustParse("http://h/a/x"), true))
	assert.False(t, u.HasPrefix(MustParse("http://h/a/b/c/d"), true))
	assert.False(t, u.HasPrefix(MustParse("http://other/a"), true))

	assert.True(t, u.HasPrefix(MustParse("https://h/a"), false))
	assert.False(t, u.HasPrefix(MustParse("https://h/a"), true))

	withSlash := MustParse("http://h/a/")
	assert.True(t, u.HasPrefix(withSlash, true), "the prefix's trailing slash is ignored")
}

func TestGetRelativePathTo(t *testing.T) {
	testCases := []struct {
		name  string
		base  string
		other string
		want  string
	}{
		{name: "diverging paths", base: "http://h/a/b/c", other: "http://h/a/x/y", want: "../../b/c"},
		{name: "other is ancestor", base: "http://h/a/b/c", other: "http://h/a", want: "b/c"},
		{name: "base is ancestor", base: "http://h/a", other: "http://h/a/b/c", want: "../.."},
		{name: "equal paths", base: "http://h/a/b", other: "http://h/a/b", want: ""},
		{name: "trailing slash carries over", base: "http://h/a/b/", other: "http://h/a", want: "b/"},
		{name: "both empty paths", base: "http://h", other: "http://h", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rel, err := MustParse(tc.base).GetRelativePathTo(MustParse(tc.other), true)
			require.NoError(t, err)
			assert.Equal(t, tc.want, rel)
		})
	}

	_, err := MustParse("http://h/a").GetRelativePathTo(MustParse("http://other/a"), true)
	var re *RelationError
	require.ErrorAs(t, err, &re)

	_, err = MustParse("http://h/a").GetRelativePathTo(MustParse("https://h/a"), true)
	assert.Error(t, err, "strict comparison rejects the sibling web scheme")
	_, err = MustParse("http://h/a").GetRelativePathTo(MustParse("https://h/a"), false)
	assert.NoError(t, err)
}

func TestChangePrefix(t *testing.T) {
	u := MustParse("http://public.example/api/v1/users/42?page=1#top")
	from := MustParse("http://public.example/api/v1")
	to := MustParse("http://localhost:9090/internal")

	moved, err := u.ChangePrefix(from, to, true)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9090/internal/users/42?page=1#top", moved.String())

	// Re-rooting between diverged paths walks up with "..".
	diverged, err := MustParse("http://h/a/b").ChangePrefix(MustParse("http://h/a/x"), to, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"internal", "..", "b"}, diverged.Segments())

	_, err = u.ChangePrefix(MustParse("http://elsewhere/api"), to, true)
	var re *RelationError
	require.ErrorAs(t, err, &re)
}

// TestChangePrefixIdentity checks that re-rooting a URI onto its own prefix
// reproduces the URI.
func TestChangePrefixIdentity(t *testing.T) {
	for _, raw := range []string{
		"http://h/a/b/c",
		"http://h/a/b/",
		"http://h/a?x=1#f",
		"http://h/a",
	} {
		u := MustParse(raw)
		for _, prefixRaw := range []string{"http://h", "http://h/a"} {
			prefix := MustParse(prefixRaw)
			if !u.HasPrefix(prefix, true) {
				continue
			}
			back, err := u.ChangePrefix(prefix, prefix, true)
			require.NoError(t, err)
			assert.True(t, u.Equals(back), "%s onto %s gave %s", raw, prefixRaw, back)
		}
	}
}
