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
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// NativeString renders the URI for native URL libraries. When segment
// double-encoding is enabled, each segment has its trailing '.' run replaced
// by "%252E" repeated, every ':' by "%253A", and every '|' by "%257C". Some
// native URI implementations reject ':' or trailing dots in segments;
// double-encoding survives the single decode pass they apply.
func (u *URI) NativeString() string {
	var b strings.Builder
	u.render(&b, true, true)
	return b.String()
}

// ToURL hands the URI to Go's native URL type, rendering through
// NativeString first.
func (u *URI) ToURL() (*url.URL, error) {
	return url.Parse(u.NativeString())
}

// nativeSegment applies the per-segment double-encoding rules.
func nativeSegment(seg string) string {
	end := len(seg)
	for end > 0 && seg[end-1] == '.' {
		end--
	}
	var b strings.Builder
	b.Grow(len(seg))
	for i := 0; i < end; i++ {
		switch seg[i] {
		case ':':
			b.WriteString("%253A")
		case '|':
			b.WriteString("%257C")
		default:
			b.WriteByte(seg[i])
		}
	}
	for i := end; i < len(seg); i++ {
		b.WriteString("%252E")
	}
	return b.String()
}

// asciiHost folds a Unicode host name to its ASCII (punycode) form.
func asciiHost(host string) (string, error) {
	folded, err := idna.ToASCII(host)
	if err != nil {
		return "", &kindError{message: "host is not IDNA-mappable", details: host}
	}
	return folded, nil
}
