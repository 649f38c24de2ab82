package ipaddr

import (
	"net/netip"
	"strconv"

	"braces.dev/errtrace"
)

// IPv6 is an IPv6 address as eight 16-bit pieces.
type IPv6 [8]uint16

// As16 returns the address bytes in network order.
func (ip IPv6) As16() [16]byte {
	var b [16]byte
	for i, p := range ip {
		b[2*i], b[2*i+1] = byte(p>>8), byte(p)
	}
	return b
}

// Addr converts the address to [netip.Addr].
func (ip IPv6) Addr() netip.Addr { return netip.AddrFrom16(ip.As16()) }

// IPv6FromAddr converts a [netip.Addr] to IPv6, mapping IPv4 addresses into ::ffff:0:0/96.
func IPv6FromAddr(a netip.Addr) IPv6 {
	b := a.As16()
	var ip IPv6
	for i := range ip {
		ip[i] = uint16(b[2*i])<<8 | uint16(b[2*i+1])
	}
	return ip
}

// String returns the shortest form without brackets: lower-case hex pieces
// with the first longest run of two or more zero pieces replaced by "::".
func (ip IPv6) String() string {
	start, length := -1, 0
	for i := 0; i < 8; {
		if ip[i] != 0 {
			i++
			continue
		}
		j := i
		for j < 8 && ip[j] == 0 {
			j++
		}
		if j-i > length && j-i > 1 {
			start, length = i, j-i
		}
		i = j
	}

	buf := make([]byte, 0, 39)
	for i := 0; i < 8; i++ {
		if i == start {
			if i == 0 {
				buf = append(buf, ':')
			}
			buf = append(buf, ':')
			i += length - 1
			continue
		}
		buf = strconv.AppendUint(buf, uint64(ip[i]), 16)
		if i != 7 {
			buf = append(buf, ':')
		}
	}
	return string(buf)
}

// ParseIPv6 parses s, the content between the brackets of an IPv6 host.
func ParseIPv6(s string) (IPv6, error) {
	var (
		addr     IPv6
		piece    int
		compress = -1
		i        int
	)
	at := func(i int) int {
		if i < len(s) {
			return int(s[i])
		}
		return -1
	}

	if at(0) == ':' {
		if at(1) != ':' {
			return addr, errtrace.Wrap(newError(ErrIPv6InvalidCompression, s))
		}
		i += 2
		piece++
		compress = piece
	}

	for at(i) != -1 {
		if piece == 8 {
			return addr, errtrace.Wrap(newError(ErrIPv6TooManyPieces, s))
		}
		if at(i) == ':' {
			if compress != -1 {
				return addr, errtrace.Wrap(newError(ErrIPv6MultipleCompression, s))
			}
			i++
			piece++
			compress = piece
			continue
		}

		var value, length int
		for length < 4 && isHex(at(i)) {
			value = value*16 + hexVal(at(i))
			i++
			length++
		}

		switch at(i) {
		case '.':
			if length == 0 {
				return addr, errtrace.Wrap(newError(ErrIPv4InIPv6InvalidCodePoint, s))
			}
			i -= length
			if piece > 6 {
				return addr, errtrace.Wrap(newError(ErrIPv4InIPv6TooManyPieces, s))
			}
			var err error
			if piece, err = parseEmbeddedIPv4(s, i, &addr, piece); err != nil {
				return addr, errtrace.Wrap(err)
			}
			// the dotted quad always ends the input
			return finishIPv6(s, addr, piece, compress)
		case ':':
			i++
			if at(i) == -1 {
				return addr, errtrace.Wrap(newError(ErrIPv6InvalidCodePoint, s))
			}
		case -1:
		default:
			return addr, errtrace.Wrap(newError(ErrIPv6InvalidCodePoint, s))
		}

		addr[piece] = uint16(value)
		piece++
	}
	return finishIPv6(s, addr, piece, compress)
}

func finishIPv6(s string, addr IPv6, piece, compress int) (IPv6, error) {
	if compress == -1 {
		if piece != 8 {
			return addr, errtrace.Wrap(newError(ErrIPv6TooFewPieces, s))
		}
		return addr, nil
	}

	swaps := piece - compress
	for piece = 7; piece != 0 && swaps > 0; piece, swaps = piece-1, swaps-1 {
		addr[piece], addr[compress+swaps-1] = addr[compress+swaps-1], addr[piece]
	}
	return addr, nil
}

// parseEmbeddedIPv4 parses the trailing dotted quad of s starting at i into two pieces of addr.
// It returns the next piece index.
func parseEmbeddedIPv4(s string, i int, addr *IPv6, piece int) (int, error) {
	numbersSeen := 0
	for i < len(s) {
		if numbersSeen > 0 {
			if s[i] != '.' || numbersSeen >= 4 {
				return piece, errtrace.Wrap(newError(ErrIPv4InIPv6InvalidCodePoint, s))
			}
			i++
		}
		if i >= len(s) || !isDigit(s[i]) {
			return piece, errtrace.Wrap(newError(ErrIPv4InIPv6InvalidCodePoint, s))
		}

		v := -1
		for i < len(s) && isDigit(s[i]) {
			n := int(s[i] - '0')
			switch v {
			case -1:
				v = n
			case 0:
				return piece, errtrace.Wrap(newError(ErrIPv4InIPv6InvalidCodePoint, s))
			default:
				v = v*10 + n
			}
			if v > 255 {
				return piece, errtrace.Wrap(newError(ErrIPv4InIPv6OutOfRange, s))
			}
			i++
		}

		addr[piece] = addr[piece]<<8 | uint16(v)
		numbersSeen++
		if numbersSeen == 2 || numbersSeen == 4 {
			piece++
		}
	}
	if numbersSeen != 4 {
		return piece, errtrace.Wrap(newError(ErrIPv4InIPv6TooFewParts, s))
	}
	return piece, nil
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isHex(c int) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func hexVal(c int) int {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
