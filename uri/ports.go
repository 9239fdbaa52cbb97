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

// NoPort is the sentinel port value meaning "no port": the URI carries none
// and its scheme defines no default.
const NoPort = -1

// DefaultPort returns the default port for a known scheme, or NoPort when the
// scheme defines none. Known schemes are http (80), https (443), ftp (21),
// and local (none); comparison is case-insensitive.
func DefaultPort(scheme string) int {
	switch strings.ToLower(scheme) {
	case "http":
		return 80
	case "https":
		return 443
	case "ftp":
		return 21
	default:
		// "local" and every unregistered scheme carry no default.
		return NoPort
	}
}
