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

func TestNew(t *testing.T) {
	u, err := New("http", "Example.COM")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com", u.String())
	assert.Equal(t, 80, u.Port())
	assert.True(t, u.UsesDefaultPort())

	u, err = New("local", "device")
	require.NoError(t, err)
	assert.Equal(t, NoPort, u.Port())

	u, err = New("https", "[2001:DB8::1]")
	require.NoError(t, err)
	assert.Equal(t, "[2001:db8::1]", u.Host())

	for _, tc := range []struct{ scheme, host string }{
		{"", "h"},
		{"9http", "h"},
		{"ht tp", "h"},
		{"http", ""},
		{"http", "h%41"},
		{"http", "[::1"},
		{"http", "ho st"},
	} {
		_, err := New(tc.scheme, tc.host)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve, "New(%q, %q)", tc.scheme, tc.host)
	}
}

func TestNewFoldsUnicodeHost(t *testing.T) {
	u, err := New("http", "bücher.example")
	require.NoError(t, err)
	assert.Equal(t, "xn--bcher-kva.example", u.Host())
}

func TestWithSchemeTracksDefaultPort(t *testing.T) {
	u := MustParse("http://h/a")

	https, err := u.WithScheme("HTTPS")
	require.NoError(t, err)
	assert.Equal(t, "https", https.Scheme())
	assert.Equal(t, 443, https.Port(), "a default port follows the new scheme")
	assert.True(t, https.UsesDefaultPort())

	pinned := MustParse("http://h:8080/a")
	moved, err := pinned.WithScheme("https")
	require.NoError(t, err)
	assert.Equal(t, 8080, moved.Port(), "an explicit port stays put")

	_, err = u.WithScheme("no scheme")
	assert.Error(t, err)
}

func TestWithHostAndPort(t *testing.T) {
	u := MustParse("http://h/a")

	moved, err := u.WithHost("Other.Example")
	require.NoError(t, err)
	assert.Equal(t, "other.example", moved.Host())

	withPort, err := u.WithPort(8080)
	require.NoError(t, err)
	assert.Equal(t, "http://h:8080/a", withPort.String())

	backToDefault, err := withPort.WithPort(NoPort)
	require.NoError(t, err)
	assert.Equal(t, 80, backToDefault.Port())
	assert.True(t, backToDefault.UsesDefaultPort())

	_, err = u.WithPort(65536)
	assert.Error(t, err)
	_, err = u.WithPort(-2)
	assert.Error(t, err)
	_, err = u.WithHost("")
	assert.Error(t, err)
}

func TestCredentials(t *testing.T) {
	u := MustParse("http://h/a")

	withCreds, err := u.WithCredentials("bob", "pw")
	require.NoError(t, err)
	assert.Equal(t, "http://bob:pw@h/a", withCreds.String())

	copied := u.WithCredentialsFrom(withCreds)
	assert.True(t, withCreds.Equals(copied))

	cleared := withCreds.WithoutCredentials()
	assert.True(t, u.Equals(cleared))
	assert.True(t, u.Equals(u.WithCredentialsFrom(cleared)))

	_, err = u.WithCredentials("", "pw")
	assert.Error(t, err)
}

func TestFragmentAndTrailingSlash(t *testing.T) {
	u := MustParse("http://h/a")

	assert.Equal(t, "http://h/a#f", u.WithFragment("f").String())
	assert.Equal(t, "http://h/a#", u.WithFragment("").String())
	assert.True(t, u.Equals(u.WithFragment("f").WithoutFragment()))

	assert.Equal(t, "http://h/a/", u.WithTrailingSlash().String())
	assert.Equal(t, "http://h/a", u.WithTrailingSlash().WithoutTrailingSlash().String())
}

func TestQueryBuilders(t *testing.T) {
	u := MustParse("http://h/a")

	q, err := u.WithQuery("x=1&y")
	require.NoError(t, err)
	assert.Equal(t, "http://h/a?x=1&y", q.String())

	q, err = u.WithQuery("?x=1")
	require.NoError(t, err)
	assert.Equal(t, "http://h/a?x=1", q.String(), "leading question mark is tolerated")

	q, err = u.WithQuery("")
	require.NoError(t, err)
	assert.Equal(t, "http://h/a?", q.String())

	_, err = u.WithQuery("a=<b>")
	assert.Error(t, err)

	withParams := u.WithParams([]Param{
		{Key: "x", Value: "1", HasValue: true},
		{Key: "flag"},
	})
	assert.Equal(t, "http://h/a?x=1&flag", withParams.String())

	appended := withParams.WithParam("x", "2")
	assert.Equal(t, []string{"1", "2"}, appended.GetParams("x"))

	merged := u.WithParamsFrom(withParams)
	assert.Equal(t, "http://h/a?x=1&flag", merged.String())
	assert.True(t, u.Equals(u.WithParamsFrom(u)), "no query contributes nothing")

	assert.Equal(t, "http://h/a", withParams.WithoutQuery().String())
	assert.Equal(t, "http://h/a?flag", withParams.WithoutParams("X").String())
	assert.True(t, u.Equals(u.WithoutParams("x")))
}

func TestSegmentSlicing(t *testing.T) {
	u := MustParse("http://h/a/b/c/")

	first, err := u.WithFirstSegments(2)
	require.NoError(t, err)
	assert.Equal(t, "http://h/a/b", first.String(), "truncating drops the trailing slash")

	all, err := u.WithFirstSegments(3)
	require.NoError(t, err)
	assert.Equal(t, "http://h/a/b/c/", all.String())

	rest, err := u.WithoutFirstSegments(1)
	require.NoError(t, err)
	assert.Equal(t, "http://h/b/c/", rest.String())

	parent, err := u.WithoutLastSegment()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, parent.Segments())

	none, err := u.WithoutLastSegments(3)
	require.NoError(t, err)
	assert.Empty(t, none.Segments())

	for _, n := range []int{-1, 4} {
		_, err = u.WithFirstSegments(n)
		assert.Error(t, err)
		_, err = u.WithoutFirstSegments(n)
		assert.Error(t, err)
		_, err = u.WithoutLastSegments(n)
		assert.Error(t, err)
	}
}

func TestWithoutPathQueryFragment(t *testing.T) {
	u := MustParse("http://bob:pw@h:8080/a/b?x=1#f")

	stripped := u.WithoutPathQueryFragment()
	assert.Equal(t, "http://bob:pw@h:8080", stripped.String())

	bare := u.WithoutCredentialsPathQueryFragment()
	assert.Equal(t, "http://h:8080", bare.String())
}

func TestAt(t *testing.T) {
	u := MustParse("http://h/a/b")

	extended, err := u.At("c", "")
	require.NoError(t, err)
	assert.Equal(t, "http://h/a/b/c/", extended.String(),
		"an empty final argument turns into the trailing slash")

	plain, err := u.At("c")
	require.NoError(t, err)
	assert.Equal(t, "http://h/a/b/c", plain.String())

	multi, err := MustParse("http://h/a/").At("x", "y")
	require.NoError(t, err)
	assert.Equal(t, "http://h/a/x/y", multi.String(), "appending clears the trailing slash")

	encoded, err := u.At(EncodeSegment("hello world"))
	require.NoError(t, err)
	assert.Equal(t, "http://h/a/b/hello+world", encoded.String())

	same, err := u.At()
	require.NoError(t, err)
	assert.True(t, u.Equals(same))

	_, err = u.At("", "c")
	assert.Error(t, err, "only the final argument may be empty")
	_, err = u.At("sp ace")
	assert.Error(t, err)
	_, err = u.At("back\\slash")
	assert.Error(t, err)
	_, err = u.At("a/b")
	assert.Error(t, err, "interior slash would change the segment count on re-parse")

	slashy, err := u.At("/run")
	require.NoError(t, err, "a leading slash run is the multi-slash segment form")
	assert.Equal(t, "http://h/a/b//run", slashy.String())
}

func TestAtPath(t *testing.T) {
	u := MustParse("http://h/base?q=0")

	composed, err := u.AtPath("x/y?a=1#f")
	require.NoError(t, err)
	assert.Equal(t, "http://h/base/x/y?q=0&a=1#f", composed.String())

	trailing, err := u.AtPath("x/")
	require.NoError(t, err)
	assert.Equal(t, "http://h/base/x/?q=0", trailing.String())

	queryOnly, err := MustParse("http://h/base").AtPath("?a=1")
	require.NoError(t, err)
	assert.Equal(t, "http://h/base?a=1", queryOnly.String())

	unchangedPath, err := u.AtPath("#f2")
	require.NoError(t, err)
	assert.Equal(t, "http://h/base?q=0#f2", unchangedPath.String())

	_, err = u.AtPath("bad segment")
	assert.Error(t, err)
}

func TestAtAbsolutePath(t *testing.T) {
	u := MustParse("http://h/base/x?q=0#f")

	replaced, err := u.AtAbsolutePath("/p/q?z=9")
	require.NoError(t, err)
	assert.Equal(t, "http://h/p/q?z=9", replaced.String())

	cleared, err := u.AtAbsolutePath("")
	require.NoError(t, err)
	assert.Equal(t, "http://h", cleared.String())

	relativeForm, err := u.AtAbsolutePath("p")
	require.NoError(t, err)
	assert.Equal(t, "http://h/p", relativeForm.String())
}

// TestImmutability drives a chain of every mutator and checks the receiver
// never changes.
func TestImmutability(t *testing.T) {
	const original = "http://bob:pw@h:8080/a/b?x=1#f"
	u := MustParse(original)

	_, _ = u.WithScheme("https")
	_, _ = u.WithHost("other")
	_, _ = u.WithPort(9090)
	_, _ = u.WithCredentials("carol", "s")
	_ = u.WithoutCredentials()
	_ = u.WithFragment("g")
	_ = u.WithoutFragment()
	_ = u.WithTrailingSlash()
	_ = u.WithoutTrailingSlash()
	_, _ = u.WithQuery("k=v")
	_ = u.WithParams([]Param{{Key: "k", Value: "v", HasValue: true}})
	_ = u.WithoutQuery()
	_ = u.WithoutParams("x")
	_, _ = u.WithFirstSegments(1)
	_, _ = u.WithoutFirstSegments(1)
	_, _ = u.WithoutLastSegment()
	_ = u.WithoutPathQueryFragment()
	_ = u.WithSegmentDoubleEncoding()
	_, _ = u.At("c", "")
	_, _ = u.AtPath("x?y=1#z")
	_, _ = u.AtAbsolutePath("/p")

	assert.Equal(t, original, u.String())
}

// TestFluentInverses spot-checks the inverse pairs on canonical input.
func TestFluentInverses(t *testing.T) {
	u := MustParse("http://h/a/b?x=1")

	viaFragment := u.WithFragment("f").WithoutFragment()
	assert.True(t, u.Equals(viaFragment))

	withSeg, err := u.At("c")
	require.NoError(t, err)
	viaSegment, err := withSeg.WithoutLastSegment()
	require.NoError(t, err)
	assert.True(t, u.Equals(viaSegment))

	creds, err := u.WithCredentials("bob", "pw")
	require.NoError(t, err)
	assert.True(t, u.Equals(creds.WithoutCredentials()))

	assert.True(t, u.WithTrailingSlash().WithoutTrailingSlash().Equals(u))
}
