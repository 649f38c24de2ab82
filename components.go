package weburl

import (
	"log/slog"

	"braces.dev/errtrace"
)

// Components is the result of parsing a URL: its normalized, percent-encoded parts.
//
// A Components value is built once by the parser and never changes afterwards;
// a different URL is obtained by parsing again. The zero value is not a valid URL.
type Components struct {
	scheme   Scheme
	username string
	password string
	host     Host
	port     uint16
	hasPort  bool
	path     Path
	query    string
	hasQuery bool
	fragment string
	hasFrag  bool
}

// Scheme returns the lower-cased scheme.
func (c Components) Scheme() Scheme { return c.scheme }

// Username returns the percent-encoded username, empty when absent.
func (c Components) Username() string { return c.username }

// Password returns the percent-encoded password, empty when absent.
func (c Components) Password() string { return c.password }

// Host returns the host. It is [HostNone] when the URL has no authority.
func (c Components) Host() Host { return c.host }

// Port returns the port and whether it is present.
// A port equal to the scheme default is never present.
func (c Components) Port() (uint16, bool) { return c.port, c.hasPort }

// Path returns the path.
func (c Components) Path() Path { return c.path }

// Query returns the percent-encoded query without the leading '?' and whether it is present.
func (c Components) Query() (string, bool) { return c.query, c.hasQuery }

// Fragment returns the percent-encoded fragment without the leading '#' and whether it is present.
func (c Components) Fragment() (string, bool) { return c.fragment, c.hasFrag }

// CannotBeABaseURL reports whether the URL has an opaque path, like "mailto:user@example.com".
// Such URLs have no host and relative references cannot be resolved against them,
// except for fragment-only references.
func (c Components) CannotBeABaseURL() bool { return c.path.IsOpaque() }

// IsZero reports whether c is the zero value.
func (c Components) IsZero() bool { return c.scheme == "" }

// Equal reports whether c and other are structurally equal.
func (c Components) Equal(other Components) bool {
	return c.scheme == other.scheme &&
		c.username == other.username &&
		c.password == other.password &&
		c.host.Equal(other.host) &&
		c.port == other.port && c.hasPort == other.hasPort &&
		c.path.Equal(other.path) &&
		c.query == other.query && c.hasQuery == other.hasQuery &&
		c.fragment == other.fragment && c.hasFrag == other.hasFrag
}

// Resolve parses ref against c as the base URL.
func (c Components) Resolve(ref string, opts ...ParseOption) (Components, error) {
	return errtrace.Wrap2(ParseWithBase(ref, c, opts...))
}

// LogValue implements [slog.LogValuer].
func (c Components) LogValue() slog.Value {
	if c.IsZero() {
		return slog.StringValue("")
	}
	return slog.GroupValue(
		slog.String("href", c.String()),
		slog.String("scheme", string(c.scheme)),
		slog.Any("host", c.host),
		slog.Bool("cannot_be_a_base", c.CannotBeABaseURL()),
	)
}
