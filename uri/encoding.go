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
	"strings"
	"unicode/utf16"
)

// encodeClass selects the character class of the component being encoded.
// Each class widens the always-safe set with the characters that are
// harmless in that position.
type encodeClass int

const (
	classDefault encodeClass = iota
	classUserInfo
	classSegment
	classQuery
	classFragment
)

const upperhex = "0123456789ABCDEF"

// isAlwaysSafe checks if a byte survives encoding in every component:
// ASCII letters, digits, and ' ( ) * - . _ !.
func isAlwaysSafe(b byte) bool {
	if isASCIILetter(b) || isASCIIDigit(b) {
		return true
	}
	switch b {
	case '\'', '(', ')', '*', '-', '.', '_', '!':
		return true
	}
	return false
}

// isSafeIn checks if a byte is additionally safe in the given class.
func isSafeIn(b byte, class encodeClass) bool {
	switch class {
	case classUserInfo:
		return b == '&' || b == '='
	case classSegment:
		return b == '@' || b == '^'
	case classQuery, classFragment:
		switch b {
		case '@', '^', '/', ':', '~', '$', ',', ';', '|':
			return true
		}
		return class == classFragment && b == '#'
	}
	return false
}

// encode percent-encodes text for the given component class. The space
// becomes '+', safe bytes pass through, and every other byte becomes %HH
// with uppercase hex. In double mode the two bytes that carry encoding
// meaning are themselves encoded - '%' as "%25" and '+' as "%2b" - so that a
// downstream single decode yields the originally encoded form.
func encode(text string, class encodeClass, double bool) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == ' ':
			b.WriteByte('+')
		case double && c == '%':
			b.WriteString("%25")
		case double && c == '+':
			b.WriteString("%2b")
		case isAlwaysSafe(c) || isSafeIn(c, class):
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0xF])
		}
	}
	return b.String()
}

// Encode percent-encodes text with the default character class: only the
// always-safe set survives. It never fails.
func Encode(text string) string { return encode(text, classDefault, false) }

// EncodeUserInfo percent-encodes text for the user-info position.
func EncodeUserInfo(text string) string { return encode(text, classUserInfo, false) }

// EncodeSegment percent-encodes text for use as a single path segment.
// Use it to pre-encode arguments for At.
func EncodeSegment(text string) string { return encode(text, classSegment, false) }

// EncodeQuery percent-encodes text for the query position.
func EncodeQuery(text string) string { return encode(text, classQuery, false) }

// EncodeFragment percent-encodes text for the fragment position.
func EncodeFragment(text string) string { return encode(text, classFragment, false) }

// DoubleEncodeSegment percent-encodes an already-encoded segment so that it
// survives a single decode pass: '%' becomes "%25", '+' becomes "%2b", and
// bytes outside the segment class are encoded as usual.
func DoubleEncodeSegment(text string) string { return encode(text, classSegment, true) }

// Decode reverses percent-encoding. '+' becomes a space, %HH yields one raw
// byte, and %uHHHH yields one UTF-16 code unit (runs of %uHHHH are combined
// so surrogate pairs decode to one code point). Raw bytes are batched and
// flushed as a UTF-8 run, so multi-byte sequences decode to one code point.
// Invalid sequences leave the '%' in place. Decode never fails.
func Decode(text string) string {
	if !strings.ContainsAny(text, "%+") {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == '+':
			b.WriteByte(' ')
			i++
		case c == '%' && hasUnitAt(text, i):
			// Collect the whole run of %uHHHH units before converting, so
			// surrogate pairs come out as a single code point.
			var units []uint16
			for hasUnitAt(text, i) {
				v := hexValue(text[i+2])<<12 | hexValue(text[i+3])<<8 |
					hexValue(text[i+4])<<4 | hexValue(text[i+5])
				units = append(units, uint16(v))
				i += 6
			}
			for _, r := range utf16.Decode(units) {
				b.WriteRune(r)
			}
		case c == '%' && i+2 < len(text) && isHexDigit(text[i+1]) && isHexDigit(text[i+2]):
			b.WriteByte(byte(hexValue(text[i+1])<<4 | hexValue(text[i+2])))
			i += 3
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// hasUnitAt checks if text[i:] starts with a %uHHHH escape.
func hasUnitAt(text string, i int) bool {
	if i+5 >= len(text) || text[i] != '%' || text[i+1] != 'u' {
		return false
	}
	return isHexDigit(text[i+2]) && isHexDigit(text[i+3]) &&
		isHexDigit(text[i+4]) && isHexDigit(text[i+5])
}

// decodedOrRaw decodes text only when the parser flagged it as carrying
// encoded bytes, sparing the scan for the common plain token.
func decodedOrRaw(text string, needsDecode bool) string {
	if !needsDecode {
		return text
	}
	return Decode(text)
}
