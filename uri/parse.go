package uri

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"braces.dev/errtrace"

	"github.com/ghettovoice/urlparser/internal/constraints"
	"github.com/ghettovoice/urlparser/internal/grammar"
	"github.com/ghettovoice/urlparser/internal/util"
)

// Parser parses URL references.
// A Parser is safe for concurrent use, the zero value parses inputs of any length.
type Parser struct {
	// MaxLength limits the input length in bytes.
	// Longer inputs fail with [ErrTooLong]. Zero means no limit.
	MaxLength int
}

// DefaultParser is used by [Parse].
var DefaultParser = &Parser{}

// Parse parses the URL reference src.
func (p *Parser) Parse(src []byte) (*URL, error) {
	return errtrace.Wrap2(parse(src, p.maxLength()))
}

func (p *Parser) maxLength() int {
	if p == nil {
		return 0
	}
	return p.MaxLength
}

// Parse parses the URL reference from the given input src (string or []byte) with [DefaultParser].
// A nil DefaultParser behaves as the zero [Parser].
//
// The input is validated as UTF-8 first. An input starting with a scheme token followed by ":"
// is parsed as an absolute URL, anything else as a relative reference. The empty input
// is a valid relative reference with an empty path.
func Parse[T constraints.Byteseq](src T) (*URL, error) {
	return errtrace.Wrap2(parse(src, DefaultParser.maxLength()))
}

func parse[T constraints.Byteseq](src T, maxLen int) (*URL, error) {
	if maxLen > 0 && len(src) > maxLen {
		return nil, errtrace.Wrap(newParseErr(string(src), maxLen, ErrTooLong,
			"length %d exceeds limit %d", len(src), maxLen))
	}

	s := string(src)
	if off, ok := validUTF8(s); !ok {
		return nil, errtrace.Wrap(newParseErr(s, off, ErrInvalidEncoding,
			"invalid UTF-8 byte %#02x at offset %d", s[off], off))
	}

	u := new(URL)
	var pos int
	switch i := strings.IndexByte(s, ':'); {
	case i == 0:
		return nil, errtrace.Wrap(newParseErr(s, 0, ErrEmptyScheme, "input starts with %q", ":"))
	case i > 0 && grammar.SchemeLen([]byte(s[:i])) == i:
		u.scheme, u.hasScheme = util.LCase(s[:i]), true
		pos = i + 1
		if strings.HasPrefix(s[pos:], "//") {
			pos += 2
			end := len(s)
			if j := strings.IndexAny(s[pos:], "/?#"); j >= 0 {
				end = pos + j
			}
			if err := u.parseAuthority(s, pos, end); err != nil {
				return nil, errtrace.Wrap(err)
			}
			pos = end
		}
	}

	rest := s[pos:]
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		u.fragment, u.hasFragment = rest[i+1:], true
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		u.query, u.hasQuery = rest[i+1:], true
		rest = rest[:i]
	}
	u.path = rest

	// pos is the offset of the path, the query and the fragment follow it with one delimiter each.
	if err := checkChars(s, pos, u.path, "path"); err != nil {
		return nil, errtrace.Wrap(err)
	}
	off := pos + len(u.path) + 1
	if u.hasQuery {
		if err := checkChars(s, off, u.query, "query"); err != nil {
			return nil, errtrace.Wrap(err)
		}
		off += len(u.query) + 1
	}
	if u.hasFragment {
		if err := checkChars(s, off, u.fragment, "fragment"); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}
	return u, nil
}

// parseAuthority splits s[start:end] into userinfo, host and port.
func (u *URL) parseAuthority(s string, start, end int) error {
	auth := s[start:end]
	u.authority, u.hasAuthority = auth, true

	hostStart := start
	if i := strings.LastIndexByte(auth, '@'); i >= 0 {
		u.userinfo, u.hasUserinfo = auth[:i], true
		if err := checkChars(s, start, u.userinfo, "userinfo"); err != nil {
			return errtrace.Wrap(err)
		}
		hostStart = start + i + 1
	}

	hp := s[hostStart:end]
	if err := checkChars(s, hostStart, hp, "host"); err != nil {
		return errtrace.Wrap(err)
	}

	if strings.HasPrefix(hp, "[") {
		return errtrace.Wrap(u.parseIPLiteralHost(s, hostStart, hp))
	}

	host := hp
	if i := strings.LastIndexByte(hp, ':'); i >= 0 {
		host = hp[:i]
		if err := u.parsePort(s, hostStart+i+1, hp[i+1:]); err != nil {
			return errtrace.Wrap(err)
		}
	}
	if i := strings.IndexAny(host, ":[]"); i >= 0 {
		return errtrace.Wrap(newParseErr(s, hostStart+i, ErrInvalidHost,
			"unexpected %q in host %q", host[i], host))
	}
	u.host = host
	u.hostKind = classifyRegName(host)
	return nil
}

// parseIPLiteralHost handles a host-and-port that starts with "[", hp starts at s[off].
func (u *URL) parseIPLiteralHost(s string, off int, hp string) error {
	end := strings.IndexByte(hp, ']')
	if end < 0 {
		return errtrace.Wrap(newParseErr(s, off, ErrInvalidHost, "missing %q in IP literal", "]"))
	}

	lit := hp[1:end]
	if lit == "" {
		return errtrace.Wrap(newParseErr(s, off, ErrInvalidHost, "empty IP literal"))
	}
	kind, zone, err := parseIPLiteral(lit)
	if err != nil {
		return errtrace.Wrap(newParseErr(s, off+1, ErrInvalidHost, err))
	}

	switch rest := hp[end+1:]; {
	case rest == "":
	case rest[0] == ':':
		if err := u.parsePort(s, off+end+2, rest[1:]); err != nil {
			return errtrace.Wrap(err)
		}
	default:
		return errtrace.Wrap(newParseErr(s, off+end+1, ErrInvalidHost,
			"unexpected %q after IP literal", rest))
	}

	u.host, u.zone, u.hostKind = lit, zone, kind
	return nil
}

// parsePort parses the text after the port delimiter, port starts at s[off].
// An empty port leaves the port absent.
func (u *URL) parsePort(s string, off int, port string) error {
	if port == "" {
		return nil
	}
	if !grammar.IsDigits(port) {
		return errtrace.Wrap(newParseErr(s, off, ErrInvalidPort, "port %q is not a number", port))
	}
	n, err := strconv.ParseUint(port, 10, 16)
	if err != nil {
		return errtrace.Wrap(newParseErr(s, off, ErrInvalidPort, "port %s is out of range [0, 65535]", port))
	}
	u.port, u.hasPort = uint16(n), true
	return nil
}

// checkChars reports the first forbidden byte of the component comp, which starts at s[off].
func checkChars(s string, off int, comp, name string) error {
	if i := grammar.IndexForbidden(comp); i >= 0 {
		return newParseErr(s, off+i, ErrInvalidCharacter, "forbidden byte %#02x in %s", comp[i], name) //errtrace:skip
	}
	return nil
}

// validUTF8 returns the offset of the first invalid UTF-8 sequence in s.
func validUTF8(s string) (int, bool) {
	for i := 0; i < len(s); {
		if s[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, n := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && n == 1 {
			return i, false
		}
		i += n
	}
	return 0, true
}
