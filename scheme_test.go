package weburl_test

import (
	"errors"
	"testing"

	"github.com/ghettovoice/weburl"
)

func TestParseScheme(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		want    weburl.Scheme
		wantErr error
	}{
		{"http", "http", weburl.SchemeHTTP, nil},
		{"upper case", "HTTPS", weburl.SchemeHTTPS, nil},
		{"other", "git+ssh", "git+ssh", nil},
		{"dots and dashes", "a.b-c", "a.b-c", nil},
		{"empty", "", "", weburl.ErrInvalidScheme},
		{"leading digit", "1http", "", weburl.ErrInvalidScheme},
		{"invalid char", "ht_tp", "", weburl.ErrInvalidScheme},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := weburl.ParseScheme(c.in)
			if !errors.Is(err, c.wantErr) {
				t.Fatalf("weburl.ParseScheme(%q) error = %v, want %v", c.in, err, c.wantErr)
			}
			if got != c.want {
				t.Errorf("weburl.ParseScheme(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestScheme_DefaultPort(t *testing.T) {
	t.Parallel()

	cases := []struct {
		scheme      weburl.Scheme
		wantSpecial bool
		wantPort    uint16
		wantOK      bool
	}{
		{weburl.SchemeHTTP, true, 80, true},
		{weburl.SchemeHTTPS, true, 443, true},
		{weburl.SchemeWS, true, 80, true},
		{weburl.SchemeWSS, true, 443, true},
		{weburl.SchemeFTP, true, 21, true},
		{weburl.SchemeFile, true, 0, false},
		{"gopher", false, 0, false},
	}

	for _, c := range cases {
		t.Run(c.scheme.String(), func(t *testing.T) {
			t.Parallel()

			if got := c.scheme.IsSpecial(); got != c.wantSpecial {
				t.Errorf("scheme.IsSpecial() = %v, want %v", got, c.wantSpecial)
			}
			port, ok := c.scheme.DefaultPort()
			if port != c.wantPort || ok != c.wantOK {
				t.Errorf("scheme.DefaultPort() = %d, %v, want %d, %v", port, ok, c.wantPort, c.wantOK)
			}
		})
	}
}
