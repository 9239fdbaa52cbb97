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

import "golang.org/x/text/unicode/norm"

// ParseNormalized applies Unicode Normalization Form C to the input before
// parsing it. Use it when the URI text comes from a source that is not
// guaranteed to be NFC (legacy encodings, user input); canonically
// equivalent spellings of non-ASCII segment data then parse to equal URIs.
func ParseNormalized(s string) (*URI, error) {
	return Parse(norm.NFC.String(s))
}
