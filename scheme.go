package weburl

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/weburl/internal/errorutil"
	"github.com/ghettovoice/weburl/internal/grammar"
	"github.com/ghettovoice/weburl/internal/util"
)

// Scheme is a lower-cased URL scheme name.
// The special schemes have their own constants, any other name is a non-special scheme.
type Scheme string

const (
	SchemeHTTP  Scheme = "http"
	SchemeHTTPS Scheme = "https"
	SchemeWS    Scheme = "ws"
	SchemeWSS   Scheme = "wss"
	SchemeFTP   Scheme = "ftp"
	SchemeFile  Scheme = "file"
)

// ParseScheme validates name and returns it lower-cased.
func ParseScheme(name string) (Scheme, error) {
	if !grammar.IsScheme(name) {
		return "", errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidScheme, "%q", name))
	}
	return Scheme(util.LCase(name)), nil
}

// IsSpecial reports whether s is one of http, https, ws, wss, ftp or file.
func (s Scheme) IsSpecial() bool {
	switch s {
	case SchemeHTTP, SchemeHTTPS, SchemeWS, SchemeWSS, SchemeFTP, SchemeFile:
		return true
	}
	return false
}

// DefaultPort returns the port implied by the scheme.
// The file scheme and non-special schemes have none.
func (s Scheme) DefaultPort() (uint16, bool) {
	switch s {
	case SchemeHTTP, SchemeWS:
		return 80, true
	case SchemeHTTPS, SchemeWSS:
		return 443, true
	case SchemeFTP:
		return 21, true
	}
	return 0, false
}

func (s Scheme) String() string { return string(s) }
