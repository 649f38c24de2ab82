package weburl

import (
	"log/slog"
	"net/netip"
	"strconv"
	"strings"
	"unicode/utf8"

	"braces.dev/errtrace"
	"github.com/miekg/dns"

	"github.com/ghettovoice/weburl/internal/errorutil"
	"github.com/ghettovoice/weburl/internal/grammar"
	"github.com/ghettovoice/weburl/internal/util"
	"github.com/ghettovoice/weburl/ipaddr"
	"github.com/ghettovoice/weburl/percent"
)

// HostKind tells which variant a [Host] holds.
type HostKind uint8

const (
	// HostNone means the URL has no authority at all.
	HostNone HostKind = iota
	// HostEmpty is a zero-length host, as in "file:///etc".
	HostEmpty
	// HostDomain is a lower-cased domain name of a special URL, non-ASCII bytes percent-encoded.
	HostDomain
	// HostIPv4 is an IPv4 address.
	HostIPv4
	// HostIPv6 is an IPv6 address.
	HostIPv6
	// HostOpaque is a percent-encoded host of a non-special URL.
	HostOpaque
)

func (k HostKind) String() string {
	switch k {
	case HostNone:
		return "none"
	case HostEmpty:
		return "empty"
	case HostDomain:
		return "domain"
	case HostIPv4:
		return "ipv4"
	case HostIPv6:
		return "ipv6"
	case HostOpaque:
		return "opaque"
	default:
		return "HostKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Host is a closed tagged union of the URL host variants. The zero value is [HostNone].
type Host struct {
	kind HostKind
	name string
	v4   ipaddr.IPv4
	v6   ipaddr.IPv6
}

// EmptyHost returns the empty host.
func EmptyHost() Host { return Host{kind: HostEmpty} }

// DomainHost returns a domain host. The name is stored as is.
func DomainHost(name string) Host { return Host{kind: HostDomain, name: name} }

// IPv4Host returns an IPv4 host.
func IPv4Host(ip ipaddr.IPv4) Host { return Host{kind: HostIPv4, v4: ip} }

// IPv6Host returns an IPv6 host.
func IPv6Host(ip ipaddr.IPv6) Host { return Host{kind: HostIPv6, v6: ip} }

// OpaqueHost returns an opaque host. The value is stored as is.
func OpaqueHost(s string) Host { return Host{kind: HostOpaque, name: s} }

// Kind returns the host variant.
func (h Host) Kind() HostKind { return h.kind }

// IsZero reports whether there is no host.
func (h Host) IsZero() bool { return h.kind == HostNone }

// Domain returns the domain name of a [HostDomain] host.
func (h Host) Domain() (string, bool) { return h.name, h.kind == HostDomain }

// Opaque returns the value of a [HostOpaque] host.
func (h Host) Opaque() (string, bool) { return h.name, h.kind == HostOpaque }

// IPv4 returns the address of a [HostIPv4] host.
func (h Host) IPv4() (ipaddr.IPv4, bool) { return h.v4, h.kind == HostIPv4 }

// IPv6 returns the address of a [HostIPv6] host.
func (h Host) IPv6() (ipaddr.IPv6, bool) { return h.v6, h.kind == HostIPv6 }

// Addr returns the IP address of an IPv4 or IPv6 host.
func (h Host) Addr() (netip.Addr, bool) {
	switch h.kind {
	case HostIPv4:
		return h.v4.Addr(), true
	case HostIPv6:
		return h.v6.Addr(), true
	default:
		return netip.Addr{}, false
	}
}

// Labels splits a domain host into its DNS labels. Other hosts have no labels.
func (h Host) Labels() []string {
	if h.kind != HostDomain {
		return nil
	}
	return dns.SplitDomainName(h.name)
}

// String returns the serialized host, IPv6 addresses in brackets.
func (h Host) String() string {
	switch h.kind {
	case HostDomain, HostOpaque:
		return h.name
	case HostIPv4:
		return h.v4.String()
	case HostIPv6:
		return "[" + h.v6.String() + "]"
	default:
		return ""
	}
}

// Equal reports whether both hosts are the same variant holding the same value.
func (h Host) Equal(other Host) bool {
	if h.kind != other.kind {
		return false
	}
	switch h.kind {
	case HostDomain, HostOpaque:
		return h.name == other.name
	case HostIPv4:
		return h.v4 == other.v4
	case HostIPv6:
		return h.v6 == other.v6
	default:
		return true
	}
}

// LogValue implements [slog.LogValuer].
func (h Host) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", h.kind.String()),
		slog.String("value", h.String()),
	)
}

// ParseHost classifies and parses raw, the host part of an authority, for a special or non-special scheme.
//
// Bracketed input is an IPv6 address. Hosts of non-special schemes are opaque and only
// re-encoded. Hosts of special schemes are percent-decoded, ASCII lower-cased, checked for
// forbidden code points and parsed as IPv4 when they end in a number, otherwise they are domains.
// Percent-decoded bytes must form valid UTF-8. Non-ASCII domains are not IDNA-normalized
// and are stored percent-encoded.
func ParseHost(raw string, special bool) (Host, error) {
	h, err := parseHost(raw, special, false)
	if err != nil {
		return Host{}, errtrace.Wrap(newHostError(err))
	}
	return h, nil
}

func newHostError(err error) error {
	return errorutil.NewWrapperError(ErrInvalidHost, err) //errtrace:skip
}

func parseHost(raw string, special, checkDNS bool) (Host, error) {
	if raw == "" {
		return EmptyHost(), nil
	}

	if raw[0] == '[' {
		if len(raw) < 2 || raw[len(raw)-1] != ']' {
			return Host{}, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidIPv6, "IPv6-unclosed %q", raw))
		}
		ip, err := ipaddr.ParseIPv6(raw[1 : len(raw)-1])
		if err != nil {
			return Host{}, errtrace.Wrap(err)
		}
		return IPv6Host(ip), nil
	}

	if !special {
		return errtrace.Wrap2(parseOpaqueHost(raw))
	}

	domain := util.LCase(percent.DecodeString(raw))
	if !utf8.ValidString(domain) {
		return Host{}, errtrace.Wrap(errorutil.NewWrapperError(
			ErrInvalidHost,
			"domain-invalid-UTF-8 in %q",
			raw,
		))
	}
	if i := grammar.IndexForbiddenDomain(domain); i >= 0 {
		return Host{}, errtrace.Wrap(errorutil.NewWrapperError(
			ErrInvalidHost,
			"domain-invalid-code-point %q in %q",
			domain[i], raw,
		))
	}

	if ipaddr.EndsInNumber(domain) {
		ip, err := ipaddr.ParseIPv4(domain)
		if err != nil {
			return Host{}, errtrace.Wrap(err)
		}
		return IPv4Host(ip), nil
	}

	domain = percent.Encode(domain, percent.C0ControlSet.Contains)
	if checkDNS {
		if err := verifyDNSLength(domain); err != nil {
			return Host{}, errtrace.Wrap(err)
		}
	}
	return DomainHost(domain), nil
}

func parseOpaqueHost(raw string) (Host, error) {
	if i := grammar.IndexForbiddenHost(raw); i >= 0 {
		return Host{}, errtrace.Wrap(errorutil.NewWrapperError(
			ErrInvalidHost,
			"host-invalid-code-point %q in %q",
			raw[i], raw,
		))
	}
	return OpaqueHost(percent.Encode(raw, percent.C0ControlSet.Contains)), nil
}

const maxDNSNameLen = 253

// verifyDNSLength applies the length limits of DNS names to an ASCII domain.
func verifyDNSLength(domain string) error {
	name := strings.TrimSuffix(domain, ".")
	if name == "" || len(name) > maxDNSNameLen {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHost, "domain-to-ASCII length %d of %q", len(name), domain))
	}
	if _, ok := dns.IsDomainName(name); !ok || strings.Contains(name, "..") {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHost, "domain-to-ASCII labels of %q", domain))
	}
	return nil
}
