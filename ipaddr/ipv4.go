// Package ipaddr parses and serializes the IPv4 and IPv6 host literals of the WHATWG URL standard.
//
// IPv4 parsing accepts the legacy shorthand forms: one to four dot-separated parts, each decimal,
// octal (leading "0") or hexadecimal (leading "0x"), where the last part fills the remaining bytes,
// so "0x7f.1" is 127.0.0.1. Values that do not fit are rejected, never clamped.
package ipaddr

//go:generate go tool errtrace -w .

import (
	"net/netip"
	"strconv"
	"strings"

	"braces.dev/errtrace"
)

// IPv4 is an IPv4 address stored as a big-endian 32-bit number.
type IPv4 uint32

// IPv4From4 builds an address from its four bytes.
func IPv4From4(a, b, c, d byte) IPv4 {
	return IPv4(uint32(a)<<24 | uint32(b)<<16 | uint32(c)<<8 | uint32(d))
}

// As4 returns the address bytes in network order.
func (ip IPv4) As4() [4]byte {
	return [4]byte{byte(ip >> 24), byte(ip >> 16), byte(ip >> 8), byte(ip)}
}

// Addr converts the address to [netip.Addr].
func (ip IPv4) Addr() netip.Addr { return netip.AddrFrom4(ip.As4()) }

// IPv4FromAddr converts a [netip.Addr] to IPv4.
// It reports false for IPv6 addresses other than IPv4-mapped ones.
func IPv4FromAddr(a netip.Addr) (IPv4, bool) {
	a = a.Unmap()
	if !a.Is4() {
		return 0, false
	}
	b := a.As4()
	return IPv4From4(b[0], b[1], b[2], b[3]), true
}

// String returns the dotted decimal form.
func (ip IPv4) String() string {
	b := ip.As4()
	buf := make([]byte, 0, 15)
	for i, v := range b {
		if i > 0 {
			buf = append(buf, '.')
		}
		buf = strconv.AppendUint(buf, uint64(v), 10)
	}
	return string(buf)
}

// tooBig is larger than any value a part may hold; parsing saturates there.
const tooBig = 1 << 32

// ParseIPv4 parses s as an IPv4 host.
// Callers are expected to check [EndsInNumber] first, as the URL host parser does.
func ParseIPv4(s string) (IPv4, error) {
	parts := strings.Split(s, ".")
	if parts[len(parts)-1] == "" && len(parts) > 1 {
		parts = parts[:len(parts)-1]
	}
	if len(parts) > 4 {
		return 0, errtrace.Wrap(newError(ErrIPv4TooManyParts, s))
	}

	var nums [4]uint64
	for i, p := range parts {
		if p == "" {
			return 0, errtrace.Wrap(newError(ErrIPv4EmptyPart, s))
		}
		n, ok := parseIPv4Number(p)
		if !ok {
			return 0, errtrace.Wrap(newError(ErrIPv4NonNumericPart, s))
		}
		nums[i] = n
	}

	last := len(parts) - 1
	for i := range last {
		if nums[i] > 255 {
			return 0, errtrace.Wrap(newError(ErrIPv4OutOfRange, s))
		}
	}
	// the last part absorbs the bytes the other parts do not fill
	if nums[last] >= 1<<(8*(4-last)) {
		return 0, errtrace.Wrap(newError(ErrIPv4OutOfRange, s))
	}

	ip := nums[last]
	for i := range last {
		ip += nums[i] << (8 * (3 - i))
	}
	return IPv4(ip), nil
}

// EndsInNumber reports whether the last dot-separated label of s is numeric,
// in which case a URL host must be parsed as IPv4 and never as a domain.
func EndsInNumber(s string) bool {
	parts := strings.Split(s, ".")
	if parts[len(parts)-1] == "" {
		if len(parts) == 1 {
			return false
		}
		parts = parts[:len(parts)-1]
	}

	last := parts[len(parts)-1]
	if last != "" && isDecimal(last) {
		return true
	}
	_, ok := parseIPv4Number(last)
	return ok
}

func isDecimal(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// parseIPv4Number parses a single part, sniffing the radix from its prefix.
// Values above 2^32 saturate to tooBig.
func parseIPv4Number(s string) (uint64, bool) {
	if s == "" {
		return 0, false
	}

	radix := uint64(10)
	switch {
	case len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X"):
		radix, s = 16, s[2:]
	case len(s) >= 2 && s[0] == '0':
		radix, s = 8, s[1:]
	}
	if s == "" {
		return 0, true
	}

	var n uint64
	for i := 0; i < len(s); i++ {
		d, ok := digitVal(s[i], radix)
		if !ok {
			return 0, false
		}
		if n < tooBig {
			n = n*radix + d
		}
	}
	return min(n, tooBig), true
}

func digitVal(c byte, radix uint64) (uint64, bool) {
	var d uint64
	switch {
	case '0' <= c && c <= '9':
		d = uint64(c - '0')
	case 'a' <= c && c <= 'f':
		d = uint64(c-'a') + 10
	case 'A' <= c && c <= 'F':
		d = uint64(c-'A') + 10
	default:
		return 0, false
	}
	return d, d < radix
}
