package ipaddr_test

import (
	"errors"
	"net/netip"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/weburl/ipaddr"
)

func TestParseIPv6(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    ipaddr.IPv6
		wantErr error
	}{
		{"::", ipaddr.IPv6{}, nil},
		{"::1", ipaddr.IPv6{7: 1}, nil},
		{"1::", ipaddr.IPv6{0: 1}, nil},
		{"1:2:3:4:5:6:7:8", ipaddr.IPv6{1, 2, 3, 4, 5, 6, 7, 8}, nil},
		{"1:2::7:8", ipaddr.IPv6{1, 2, 0, 0, 0, 0, 7, 8}, nil},
		{"FFFF::aBcD", ipaddr.IPv6{0: 0xffff, 7: 0xabcd}, nil},
		{"::ffff:192.168.0.1", ipaddr.IPv6{5: 0xffff, 6: 0xc0a8, 7: 0x1}, nil},
		{"::ffff:c0a8:1", ipaddr.IPv6{5: 0xffff, 6: 0xc0a8, 7: 0x1}, nil},
		{"1:2:3:4:5:6:1.2.3.4", ipaddr.IPv6{1, 2, 3, 4, 5, 6, 0x0102, 0x0304}, nil},
		{":1", ipaddr.IPv6{}, ipaddr.ErrIPv6InvalidCompression},
		{"1:2:3:4:5:6:7:8:9", ipaddr.IPv6{}, ipaddr.ErrIPv6TooManyPieces},
		{"1::2::3", ipaddr.IPv6{}, ipaddr.ErrIPv6MultipleCompression},
		{"1:2:3", ipaddr.IPv6{}, ipaddr.ErrIPv6TooFewPieces},
		{"1:", ipaddr.IPv6{}, ipaddr.ErrIPv6InvalidCodePoint},
		{"12345::", ipaddr.IPv6{}, ipaddr.ErrIPv6InvalidCodePoint},
		{"g::", ipaddr.IPv6{}, ipaddr.ErrIPv6InvalidCodePoint},
		{"::.1.2.3", ipaddr.IPv6{}, ipaddr.ErrIPv4InIPv6InvalidCodePoint},
		{"1:2:3:4:5:6:7:1.2.3.4", ipaddr.IPv6{}, ipaddr.ErrIPv4InIPv6TooManyPieces},
		{"::1.2.3", ipaddr.IPv6{}, ipaddr.ErrIPv4InIPv6TooFewParts},
		{"::1.2.3.4.5", ipaddr.IPv6{}, ipaddr.ErrIPv4InIPv6InvalidCodePoint},
		{"::1.2.3.256", ipaddr.IPv6{}, ipaddr.ErrIPv4InIPv6OutOfRange},
		{"::1.2.3.04", ipaddr.IPv6{}, ipaddr.ErrIPv4InIPv6InvalidCodePoint},
		{"::1.2..4", ipaddr.IPv6{}, ipaddr.ErrIPv4InIPv6InvalidCodePoint},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			got, err := ipaddr.ParseIPv6(c.in)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("ipaddr.ParseIPv6(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.in, err, c.wantErr, diff)
			}
			if err != nil {
				if !errors.Is(err, ipaddr.ErrInvalidIPv6) || errors.Is(err, ipaddr.ErrInvalidIPv4) {
					t.Errorf("error %v must match ipaddr.ErrInvalidIPv6 only", err)
				}
				return
			}
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("ipaddr.ParseIPv6(%q) = %v, want %v\ndiff (-got +want):\n%v", c.in, got, c.want, diff)
			}
		})
	}
}

func TestIPv6_String(t *testing.T) {
	t.Parallel()

	cases := []struct {
		ip   ipaddr.IPv6
		want string
	}{
		{ipaddr.IPv6{}, "::"},
		{ipaddr.IPv6{7: 1}, "::1"},
		{ipaddr.IPv6{0: 1}, "1::"},
		{ipaddr.IPv6{5: 0xffff, 6: 0xc0a8, 7: 1}, "::ffff:c0a8:1"},
		{ipaddr.IPv6{1, 0, 2, 3, 4, 5, 6, 7}, "1:0:2:3:4:5:6:7"},
		{ipaddr.IPv6{1, 0, 0, 2, 0, 0, 0, 3}, "1:0:0:2::3"},
		{ipaddr.IPv6{1, 0, 0, 2, 0, 0, 3, 4}, "1::2:0:0:3:4"},
		{ipaddr.IPv6{0x2001, 0xdb8, 0, 0, 0, 0, 0, 0xABCD}, "2001:db8::abcd"},
	}

	for _, c := range cases {
		t.Run(c.want, func(t *testing.T) {
			t.Parallel()

			if got := c.ip.String(); got != c.want {
				t.Errorf("ip.String() = %q, want %q", got, c.want)
			}
			if got, want := c.ip.Addr(), netip.MustParseAddr(c.want); got != want {
				t.Errorf("ip.Addr() = %v, want %v", got, want)
			}
			if got := ipaddr.IPv6FromAddr(c.ip.Addr()); got != c.ip {
				t.Errorf("ipaddr.IPv6FromAddr(%v) = %v, want %v", c.ip.Addr(), got, c.ip)
			}
		})
	}
}
