package uri

import (
	"net/netip"
	"strings"

	"github.com/miekg/dns"

	"github.com/ghettovoice/urlparser/internal/errorutil"
	"github.com/ghettovoice/urlparser/internal/grammar"
)

// HostKind classifies the host component of a [URL].
type HostKind uint8

const (
	// HostNone means the URL has no authority.
	HostNone HostKind = iota
	// HostEmpty is an empty host, as in "file:///etc/hosts".
	HostEmpty
	// HostIPv4 is a dotted-decimal IPv4 address.
	HostIPv4
	// HostIPv6 is a bracketed IPv6 address, optionally with a zone.
	HostIPv6
	// HostIPvFuture is a bracketed "v" HEXDIG "." literal.
	HostIPvFuture
	// HostDomain is a registered name that is a valid DNS domain name.
	HostDomain
	// HostRegName is any other registered name, e.g. with percent-encoded octets.
	HostRegName
)

func (k HostKind) String() string {
	switch k {
	case HostNone:
		return "none"
	case HostEmpty:
		return "empty"
	case HostIPv4:
		return "ipv4"
	case HostIPv6:
		return "ipv6"
	case HostIPvFuture:
		return "ipvfuture"
	case HostDomain:
		return "domain"
	case HostRegName:
		return "reg-name"
	default:
		return "unknown"
	}
}

// IsIP reports whether k is an IP address kind.
func (k HostKind) IsIP() bool { return k == HostIPv4 || k == HostIPv6 }

const zonePrefix = "%25"

// parseIPLiteral validates the text between "[" and "]" and
// returns its kind and the raw zone identifier, if any.
func parseIPLiteral(lit string) (HostKind, string, error) {
	if lit[0] == 'v' || lit[0] == 'V' {
		if !grammar.IsIPvFuture(lit) {
			return 0, "", errorutil.Errorf("malformed IPvFuture literal %q", lit)
		}
		return HostIPvFuture, "", nil
	}

	addr, zone := lit, ""
	if i := strings.Index(lit, zonePrefix); i >= 0 {
		addr, zone = lit[:i], lit[i+len(zonePrefix):]
		if !isZoneID(zone) {
			return 0, "", errorutil.Errorf("malformed zone identifier %q", zone)
		}
	}
	if strings.IndexByte(addr, '%') >= 0 {
		return 0, "", errorutil.Errorf("zone identifier in %q must be introduced by %q", lit, zonePrefix)
	}

	ip, err := netip.ParseAddr(addr)
	if err != nil {
		return 0, "", errorutil.Errorf("malformed IPv6 address %q", addr)
	}
	if !ip.Is6() {
		return 0, "", errorutil.Errorf("%q is not an IPv6 address", addr)
	}
	return HostIPv6, zone, nil
}

// isZoneID reports whether s matches
//
//	ZoneID = 1*( unreserved / pct-encoded )
func isZoneID(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case grammar.IsUnreserved(c):
		case c == '%' && i+2 < len(s) && grammar.IsHexDigit(s[i+1]) && grammar.IsHexDigit(s[i+2]):
			i += 2
		default:
			return false
		}
	}
	return true
}

// classifyRegName returns the kind of a non-bracketed host.
func classifyRegName(host string) HostKind {
	if host == "" {
		return HostEmpty
	}
	if ip, err := netip.ParseAddr(host); err == nil && ip.Is4() {
		return HostIPv4
	}
	if isLDH(host) {
		if _, ok := dns.IsDomainName(host); ok {
			return HostDomain
		}
	}
	return HostRegName
}

// isLDH reports whether s consists of letters, digits, hyphens, underscores and dots only.
func isLDH(s string) bool {
	for i := 0; i < len(s); i++ {
		if c := s[i]; !grammar.IsAlpha(c) && !grammar.IsDigit(c) && c != '-' && c != '_' && c != '.' {
			return false
		}
	}
	return true
}
