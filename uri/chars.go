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

// isASCIILetter checks if a byte is an ASCII letter.
func isASCIILetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// isASCIIDigit checks if a byte is an ASCII digit.
func isASCIIDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

// isHexDigit checks if a byte is an ASCII hexadecimal digit.
func isHexDigit(b byte) bool {
	return isASCIIDigit(b) || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}

// hexValue returns the numeric value of a hexadecimal digit.
// The byte must satisfy isHexDigit.
func hexValue(b byte) int {
	switch {
	case isASCIIDigit(b):
		return int(b - '0')
	case 'a' <= b && b <= 'f':
		return int(b-'a') + 10
	default:
		return int(b-'A') + 10
	}
}

// isSchemeByte checks if a byte may appear in a scheme after the first
// character. The first character must be a letter.
func isSchemeByte(b byte) bool {
	return isASCIILetter(b) || isASCIIDigit(b) || b == '+' || b == '-' || b == '.'
}

// isHostByte checks if a byte may appear in a registered host name.
// Percent signs are excluded: encoding is illegal inside the host and is
// rejected by the parser before this predicate is consulted.
func isHostByte(b byte) bool {
	if isASCIILetter(b) || isASCIIDigit(b) {
		return true
	}
	switch b {
	case '$', '&', '\'', '(', ')', '*', '+', ',', '-', '.', '!', ';', '=', '_', '~':
		return true
	}
	return false
}

// isUserTokenByte checks if a byte may appear in the still-ambiguous first
// authority token, which resolves to either a user name or a host once its
// terminator is seen. The set is the host set plus '%' (user info may carry
// encoded bytes; a host that ends up containing one is rejected later).
func isUserTokenByte(b byte) bool {
	return isHostByte(b) || b == '%'
}

// isIPv6Byte checks if a byte may appear between the brackets of an IPv6
// literal: hex digits, colons, and dots (for the embedded-IPv4 form).
func isIPv6Byte(b byte) bool {
	return isHexDigit(b) || b == ':' || b == '.'
}

// isSegmentByte checks if a byte may appear raw inside a path segment.
// The set is the RFC 3986 pchar class widened by '^', '|', '[', ']', '{',
// and '}', plus raw '%' (already-encoded data is carried verbatim) and any
// non-ASCII byte. '/' and '\' are structural and handled by the parser.
func isSegmentByte(b byte) bool {
	if b >= 0x80 {
		return true
	}
	if isASCIILetter(b) || isASCIIDigit(b) {
		return true
	}
	switch b {
	case '-', '.', '_', '~',
		'!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=',
		':', '@',
		'^', '|', '[', ']', '{', '}',
		'%':
		return true
	}
	return false
}

// isQueryByte checks if a byte may appear raw inside a query key or value.
// '&' always ends a token and '=' ends a key; the parser handles both before
// consulting this predicate, and '=' inside a value is data.
func isQueryByte(b byte) bool {
	return isSegmentByte(b) || b == '/' || b == '?'
}
