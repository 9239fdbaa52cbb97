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

// parts collects the raw components produced by one parser run before they
// are assembled into a URI value.
type parts struct {
	scheme        string
	user          string
	password      string
	hasUser       bool
	hasPassword   bool
	host          string
	port          int
	hasPort       bool
	segments      []string
	trailingSlash bool
	params        []Param
	hasParams     bool
	fragment      string
	hasFragment   bool
}

// parser holds the state of a single parsing operation. Each state of the
// machine is a method; transitions are method calls driven by the byte under
// the cursor, with the end of input acting as a synthetic terminator.
type parser struct {
	in *scanner
}

// Parse parses an absolute URI. The accepted grammar is a superset of
// RFC 3986 (see the package documentation); the scheme must be followed by
// "://". On any syntactic error Parse returns a nil URI and a *ParseError;
// it never panics.
func Parse(s string) (*URI, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, newParseError(s, errNulByte)
	}
	p := &parser{in: newScanner(s)}
	pt := &parts{port: NoPort}
	if err := p.parseScheme(pt); err != nil {
		return nil, newParseError(s, err)
	}
	if err := p.parseAuthFirst(pt); err != nil {
		return nil, newParseError(s, err)
	}
	if err := p.parseTail(pt); err != nil {
		return nil, newParseError(s, err)
	}
	return fromParts(pt), nil
}

// MustParse is like Parse but panics on error. It simplifies variable
// initialization from literals known to be valid.
func MustParse(s string) *URI {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

// parseScheme consumes the scheme and the "://" that must follow it.
func (p *parser) parseScheme(pt *parts) error {
	b, ok := p.in.peek()
	if !ok || !isASCIILetter(b) {
		return errNoScheme
	}
	start := p.in.pos()
	p.in.next()
	for {
		b, ok = p.in.peek()
		if !ok {
			return errMissingAuthority
		}
		if b == ':' {
			break
		}
		if !isSchemeByte(b) {
			return &kindError{message: "invalid scheme character", char: b}
		}
		p.in.next()
	}
	pt.scheme = strings.ToLower(p.in.slice(start, p.in.pos()))
	if !p.in.hasPrefix("://") {
		return errMissingAuthority
	}
	p.in.skip(3)
	return nil
}

// parseAuthFirst scans the first authority token. The token is ambiguous
// until its terminator is seen: an '@' resolves it to a user, a ':' defers
// the decision to parseAuthAfterColon, and a path/query/fragment/end
// terminator resolves it to the host.
func (p *parser) parseAuthFirst(pt *parts) error {
	b, ok := p.in.peek()
	if !ok {
		return errEmptyHost
	}
	if b == '[' {
		if err := p.parseIPv6(pt); err != nil {
			return err
		}
		return p.parseAfterHost(pt)
	}
	start := p.in.pos()
	sawPercent, sawPlus := false, false
	for {
		b, ok = p.in.peek()
		if !ok || b == '/' || b == '?' || b == '#' {
			return p.finishHost(pt, p.in.slice(start, p.in.pos()), sawPercent)
		}
		switch {
		case b == ':':
			token := p.in.slice(start, p.in.pos())
			p.in.next()
			return p.parseAuthAfterColon(pt, token, sawPercent, sawPlus)
		case b == '@':
			if err := setUser(pt, p.in.slice(start, p.in.pos()), sawPercent || sawPlus); err != nil {
				return err
			}
			p.in.next()
			return p.parseHostname(pt)
		case b == '%':
			sawPercent = true
			p.in.next()
		case b == '+':
			sawPlus = true
			p.in.next()
		case isUserTokenByte(b):
			p.in.next()
		default:
			return &kindError{message: "invalid character in authority", char: b}
		}
	}
}

// parseAuthAfterColon scans the token following the first ':' in the
// authority. An '@' resolves the pair to user and password; a terminator
// resolves it to host and port. A second ':' is illegal (raw IPv6 addresses
// must be bracketed).
func (p *parser) parseAuthAfterColon(pt *parts, first string, firstPercent, firstPlus bool) error {
	start := p.in.pos()
	sawPercent, sawPlus := false, false
	for {
		b, ok := p.in.peek()
		if !ok || b == '/' || b == '?' || b == '#' {
			if err := p.finishHost(pt, first, firstPercent); err != nil {
				return err
			}
			return setPort(pt, p.in.slice(start, p.in.pos()))
		}
		switch {
		case b == '@':
			if err := setUser(pt, first, firstPercent || firstPlus); err != nil {
				return err
			}
			setPassword(pt, p.in.slice(start, p.in.pos()), sawPercent || sawPlus)
			p.in.next()
			return p.parseHostname(pt)
		case b == ':':
			return &kindError{message: "invalid character in authority", char: b}
		case b == '%':
			sawPercent = true
			p.in.next()
		case b == '+':
			sawPlus = true
			p.in.next()
		case isUserTokenByte(b):
			p.in.next()
		default:
			return &kindError{message: "invalid character in authority", char: b}
		}
	}
}

// parseHostname scans the host once the credentials are resolved, so the
// only ambiguity left is the optional port.
func (p *parser) parseHostname(pt *parts) error {
	b, ok := p.in.peek()
	if !ok {
		return errEmptyHost
	}
	if b == '[' {
		if err := p.parseIPv6(pt); err != nil {
			return err
		}
		return p.parseAfterHost(pt)
	}
	start := p.in.pos()
	for {
		b, ok = p.in.peek()
		if !ok || b == '/' || b == '?' || b == '#' {
			return p.finishHost(pt, p.in.slice(start, p.in.pos()), false)
		}
		switch {
		case b == ':':
			if err := p.finishHost(pt, p.in.slice(start, p.in.pos()), false); err != nil {
				return err
			}
			p.in.next()
			return p.parsePort(pt)
		case b == '%':
			return errEncodedHost
		case isHostByte(b):
			p.in.next()
		default:
			return &kindError{message: "invalid character in host", char: b}
		}
	}
}

// parseIPv6 consumes a bracketed IPv6 literal. The brackets are kept as part
// of the stored host value.
func (p *parser) parseIPv6(pt *parts) error {
	start := p.in.pos()
	p.in.next() // consume '['
	for {
		b, ok := p.in.next()
		if !ok {
			return errBadIPv6
		}
		if b == ']' {
			break
		}
		if !isIPv6Byte(b) {
			return &kindError{message: "invalid IPv6 literal character", char: b}
		}
	}
	literal := p.in.slice(start, p.in.pos())
	if len(literal) <= 2 {
		return errBadIPv6
	}
	pt.host = strings.ToLower(literal)
	return nil
}

// parseAfterHost dispatches on the byte following a bracketed host.
func (p *parser) parseAfterHost(pt *parts) error {
	b, ok := p.in.peek()
	if !ok || b == '/' || b == '?' || b == '#' {
		return nil
	}
	if b == ':' {
		p.in.next()
		return p.parsePort(pt)
	}
	return &kindError{message: "invalid character after host", char: b}
}

// parsePort consumes the decimal port after an unambiguous host.
func (p *parser) parsePort(pt *parts) error {
	start := p.in.pos()
	for {
		b, ok := p.in.peek()
		if !ok || b == '/' || b == '?' || b == '#' {
			return setPort(pt, p.in.slice(start, p.in.pos()))
		}
		if !isASCIIDigit(b) {
			return errBadPort
		}
		p.in.next()
	}
}

// parseTail consumes the path, query, and fragment, in order, whichever of
// them are present.
func (p *parser) parseTail(pt *parts) error {
	b, ok := p.in.peek()
	if !ok {
		return nil
	}
	if b == '/' {
		p.in.next()
		if err := p.parsePath(pt); err != nil {
			return err
		}
	}
	if b, ok = p.in.peek(); ok && b == '?' {
		p.in.next()
		if err := p.parseQuery(pt); err != nil {
			return err
		}
	}
	if b, ok = p.in.peek(); ok && b == '#' {
		p.in.next()
		p.parseFragment(pt)
	}
	return nil
}

// parsePath consumes path segments. A '/' with an empty current segment
// prefixes the next segment with '/' (so "a//b" yields "a" and "/b");
// backslashes are canonicalized to '/' and kept inside the current segment;
// the trailing slash run collapses into the trailing-slash flag.
func (p *parser) parsePath(pt *parts) error {
	var cur []byte
	for {
		b, ok := p.in.peek()
		if !ok || b == '?' || b == '#' {
			break
		}
		p.in.next()
		switch {
		case b == '/':
			if len(cur) > 0 {
				pt.segments = append(pt.segments, string(cur))
				cur = cur[:0]
			} else {
				cur = append(cur, '/')
			}
		case b == '\\':
			cur = append(cur, '/')
		case isSegmentByte(b):
			cur = append(cur, b)
		default:
			return &kindError{message: "invalid character in path segment", char: b}
		}
	}
	for len(cur) > 0 && cur[len(cur)-1] == '/' {
		cur = cur[:len(cur)-1]
		pt.trailingSlash = true
	}
	if len(cur) > 0 {
		pt.segments = append(pt.segments, string(cur))
	} else {
		pt.trailingSlash = true
	}
	return nil
}

// parseQuery consumes the query as a sequence of key or key=value entries
// separated by '&'. A bare '?' yields an empty, non-nil parameter list;
// "&&" yields empty-key entries. Keys and values are decoded when they carry
// '%' or '+'.
func (p *parser) parseQuery(pt *parts) error {
	pt.hasParams = true
	pt.params = []Param{}
	if b, ok := p.in.peek(); !ok || b == '#' {
		return nil
	}
	for {
		param, err := p.parseQueryEntry()
		if err != nil {
			return err
		}
		pt.params = append(pt.params, param)
		b, ok := p.in.peek()
		if !ok || b == '#' {
			return nil
		}
		// b is '&': consume it; a terminator right after it still counts as
		// one more (empty) entry.
		p.in.next()
		if b, ok = p.in.peek(); !ok || b == '#' {
			pt.params = append(pt.params, Param{})
			return nil
		}
	}
}

// parseQueryEntry consumes a single key or key=value token pair.
func (p *parser) parseQueryEntry() (Param, error) {
	key, err := p.parseQueryToken(true)
	if err != nil {
		return Param{}, err
	}
	b, ok := p.in.peek()
	if !ok || b != '=' {
		return Param{Key: key}, nil
	}
	p.in.next()
	value, err := p.parseQueryToken(false)
	if err != nil {
		return Param{}, err
	}
	return Param{Key: key, Value: value, HasValue: true}, nil
}

// parseQueryToken scans one query token. Keys stop at '='; values treat '='
// as data.
func (p *parser) parseQueryToken(isKey bool) (string, error) {
	start := p.in.pos()
	needsDecode := false
	for {
		b, ok := p.in.peek()
		if !ok || b == '&' || b == '#' || (isKey && b == '=') {
			return decodedOrRaw(p.in.slice(start, p.in.pos()), needsDecode), nil
		}
		switch {
		case b == '%' || b == '+':
			needsDecode = true
			p.in.next()
		case b == '=' || isQueryByte(b):
			p.in.next()
		default:
			return "", &kindError{message: "invalid character in query", char: b}
		}
	}
}

// parseFragment consumes the remainder of the input as the fragment and
// decodes it. The fragment is an opaque decoded tail; no byte is rejected
// here (NUL was rejected up front).
func (p *parser) parseFragment(pt *parts) {
	pt.hasFragment = true
	pt.fragment = Decode(p.in.rest())
	p.in.skip(len(p.in.rest()))
}

// finishHost records a completed registered-name host token.
func (p *parser) finishHost(pt *parts, token string, sawPercent bool) error {
	if token == "" {
		return errEmptyHost
	}
	if sawPercent {
		return errEncodedHost
	}
	pt.host = strings.ToLower(token)
	return nil
}

// setUser records a completed user token, decoding it when it carried '%' or
// '+'.
func setUser(pt *parts, token string, needsDecode bool) error {
	if token == "" {
		return &kindError{message: "empty user info"}
	}
	pt.user = decodedOrRaw(token, needsDecode)
	pt.hasUser = true
	return nil
}

// setPassword records a completed password token. An empty password is
// legal ("user:@host").
func setPassword(pt *parts, token string, needsDecode bool) {
	pt.password = decodedOrRaw(token, needsDecode)
	pt.hasPassword = true
}

// setPort parses and range-checks a completed port token.
func setPort(pt *parts, token string) error {
	if token == "" {
		return errBadPort
	}
	port := 0
	for i := 0; i < len(token); i++ {
		if !isASCIIDigit(token[i]) {
			return errBadPort
		}
		port = port*10 + int(token[i]-'0')
		if port > 65535 {
			return errPortRange
		}
	}
	pt.port = port
	pt.hasPort = true
	return nil
}

// fromParts assembles the immutable URI value, resolving an absent port to
// the scheme's default.
func fromParts(pt *parts) *URI {
	u := &URI{
		scheme:        pt.scheme,
		user:          pt.user,
		password:      pt.password,
		hasUser:       pt.hasUser,
		hasPassword:   pt.hasPassword,
		host:          pt.host,
		port:          pt.port,
		segments:      pt.segments,
		trailingSlash: pt.trailingSlash,
		params:        pt.params,
		fragment:      pt.fragment,
		hasFragment:   pt.hasFragment,
	}
	if !pt.hasPort {
		u.port = DefaultPort(pt.scheme)
	}
	if !pt.hasParams {
		u.params = nil
	}
	return u
}

// parseRelative parses a path[?query][#fragment] remainder, as consumed by
// AtPath and AtAbsolutePath. The leading '/' is optional.
func parseRelative(s string) (*parts, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, newParseError(s, errNulByte)
	}
	p := &parser{in: newScanner(s)}
	pt := &parts{port: NoPort}
	b, ok := p.in.peek()
	if ok && b != '?' && b != '#' {
		if b == '/' {
			p.in.next()
		}
		if err := p.parsePath(pt); err != nil {
			return nil, newParseError(s, err)
		}
	}
	if b, ok = p.in.peek(); ok && b == '?' {
		p.in.next()
		if err := p.parseQuery(pt); err != nil {
			return nil, newParseError(s, err)
		}
	}
	if b, ok = p.in.peek(); ok && b == '#' {
		p.in.next()
		p.parseFragment(pt)
	}
	return pt, nil
}
