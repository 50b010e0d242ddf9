package uri

//go:generate go tool errtrace -w .

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/ghettovoice/urlparser/internal/grammar"
	"github.com/ghettovoice/urlparser/internal/util"
)

// URL is a parsed URL reference.
// The zero value is an empty relative reference.
type URL struct {
	scheme    string
	authority string
	userinfo  string
	host      string
	path      string
	query     string
	fragment  string
	zone      string
	port      uint16
	hostKind  HostKind

	hasScheme    bool
	hasAuthority bool
	hasUserinfo  bool
	hasPort      bool
	hasQuery     bool
	hasFragment  bool
}

// Scheme returns the lower-cased scheme, in case it is present, and a bool flag
// indicating whether it is present. Only absolute URLs have a scheme.
func (u *URL) Scheme() (string, bool) {
	if u == nil {
		return "", false
	}
	return u.scheme, u.hasScheme
}

// Userinfo returns the raw text preceding the last "@" of the authority,
// in case it is present, and a bool flag indicating whether it is present.
func (u *URL) Userinfo() (string, bool) {
	if u == nil {
		return "", false
	}
	return u.userinfo, u.hasUserinfo
}

// Host returns the host, in case the URL has an authority, and a bool flag indicating
// whether it is present. Brackets of IP literals are stripped.
// The host of "file:///etc/hosts" is present and empty.
func (u *URL) Host() (string, bool) {
	if u == nil {
		return "", false
	}
	return u.host, u.hasAuthority
}

// Port returns the port, in case it is set, and a bool flag indicating whether it is set.
// Default ports of schemes are never inferred.
func (u *URL) Port() (uint16, bool) {
	if u == nil {
		return 0, false
	}
	return u.port, u.hasPort
}

// Path returns the raw path. It is empty when the input has no path.
func (u *URL) Path() string {
	if u == nil {
		return ""
	}
	return u.path
}

// Query returns the raw text after the first "?" and before the first "#",
// in case it is present, and a bool flag indicating whether it is present.
func (u *URL) Query() (string, bool) {
	if u == nil {
		return "", false
	}
	return u.query, u.hasQuery
}

// Fragment returns the raw text after the first "#", in case it is present,
// and a bool flag indicating whether it is present.
func (u *URL) Fragment() (string, bool) {
	if u == nil {
		return "", false
	}
	return u.fragment, u.hasFragment
}

// Authority returns the raw authority text between "//" and the path,
// in case it is present, and a bool flag indicating whether it is present.
func (u *URL) Authority() (string, bool) {
	if u == nil {
		return "", false
	}
	return u.authority, u.hasAuthority
}

// PathAndQuery returns the path followed by "?" and the query when the query is present.
func (u *URL) PathAndQuery() string {
	if u == nil {
		return ""
	}
	if !u.hasQuery {
		return u.path
	}
	return u.path + "?" + u.query
}

// IsAbsolute reports whether the URL has a scheme.
func (u *URL) IsAbsolute() bool { return u != nil && u.hasScheme }

// HasAuthority reports whether the URL has an authority component.
func (u *URL) HasAuthority() bool { return u != nil && u.hasAuthority }

// HostKind returns the kind of the host.
func (u *URL) HostKind() HostKind {
	if u == nil || !u.hasAuthority {
		return HostNone
	}
	return u.hostKind
}

// Zone returns the percent-decoded zone identifier of an IPv6 host ("fe80::1%25eth0"),
// in case it is present, and a bool flag indicating whether it is present.
func (u *URL) Zone() (string, bool) {
	if u == nil || u.zone == "" {
		return "", false
	}
	return grammar.Unescape(u.zone), true
}

// Equal compares this URL with another for equality.
// Components are compared byte-exact, presence flags included.
func (u *URL) Equal(val any) bool {
	var other *URL
	switch v := val.(type) {
	case URL:
		other = &v
	case *URL:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}
	return *u == *other
}

// LogValue implements [slog.LogValuer].
// Absent components are omitted, userinfo is redacted.
func (u *URL) LogValue() slog.Value {
	if u == nil {
		return slog.StringValue("<nil>")
	}

	attrs := make([]slog.Attr, 0, 8)
	if u.hasScheme {
		attrs = append(attrs, slog.String("scheme", u.scheme))
	}
	if u.hasUserinfo {
		attrs = append(attrs, slog.String("userinfo", "REDACTED"))
	}
	if u.hasAuthority {
		attrs = append(attrs, slog.String("host", u.host))
	}
	if u.hasPort {
		attrs = append(attrs, slog.Int("port", int(u.port)))
	}
	attrs = append(attrs, slog.String("path", u.path))
	if u.hasQuery {
		attrs = append(attrs, slog.String("query", u.query))
	}
	if u.hasFragment {
		attrs = append(attrs, slog.String("fragment", u.fragment))
	}
	return slog.GroupValue(attrs...)
}

// Format implements [fmt.Formatter].
// It prints the components of the URL; absent ones are printed as <nil>.
// With the '+' flag the host kind is printed as well.
func (u *URL) Format(f fmt.State, verb rune) {
	switch verb {
	case 's', 'v':
		fmt.Fprint(f, u.dump(f.Flag('+')))
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.dump(f.Flag('+'))))
	default:
		fmt.Fprintf(f, "%%!%c(*uri.URL=%s)", verb, u.dump(false))
	}
}

func (u *URL) dump(verbose bool) string {
	if u == nil {
		return "<nil>"
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	field := func(name, val string, ok bool) {
		if sb.Len() > 1 {
			sb.WriteByte(' ')
		}
		sb.WriteString(name)
		sb.WriteByte('=')
		if ok {
			sb.WriteString(strconv.Quote(val))
		} else {
			sb.WriteString("<nil>")
		}
	}

	sb.WriteByte('{')
	field("scheme", u.scheme, u.hasScheme)
	field("userinfo", u.userinfo, u.hasUserinfo)
	field("host", u.host, u.hasAuthority)
	field("port", strconv.Itoa(int(u.port)), u.hasPort)
	field("path", u.path, true)
	field("query", u.query, u.hasQuery)
	field("fragment", u.fragment, u.hasFragment)
	if verbose {
		field("kind", u.HostKind().String(), true)
	}
	sb.WriteByte('}')
	return sb.String()
}
