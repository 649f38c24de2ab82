package weburl

import (
	"github.com/ghettovoice/weburl/internal/errorutil"
	"github.com/ghettovoice/weburl/ipaddr"
)

// Error is a fatal URL parsing error. Parsing stops at the first one and returns no components.
type Error = errorutil.Error

const (
	// ErrMissingScheme is returned for input without a scheme and without a usable base URL.
	ErrMissingScheme Error = "missing scheme"
	// ErrInvalidScheme is returned when the input looks like "scheme:..." but the scheme is malformed
	// and there is no usable base URL.
	ErrInvalidScheme Error = "invalid scheme"
	// ErrHostMissing is returned when a special URL or credentials require a host that is empty.
	ErrHostMissing Error = "host missing"
	// ErrInvalidHost is returned for hosts with forbidden code points or malformed IP literals.
	ErrInvalidHost Error = "invalid host"
	// ErrInvalidPort is returned for non-numeric ports and ports above 65535.
	ErrInvalidPort Error = "invalid port"
	// ErrUnexpectedTransition is returned in state trace mode when the parser takes
	// a transition missing from [StateGraph].
	ErrUnexpectedTransition Error = "unexpected parser state transition"
)

// IPv4 and IPv6 literal errors; every host error also matches [ErrInvalidHost].
const (
	ErrInvalidIPv4 = ipaddr.ErrInvalidIPv4
	ErrInvalidIPv6 = ipaddr.ErrInvalidIPv6
)

// ValidationError is a non-fatal deviation from the URL syntax. The parser recovers from it
// and reports it to the configured [Reporter].
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

const (
	LeadingOrTrailingSpace            ValidationError = "leading-or-trailing-C0-control-or-space"
	TabOrNewline                      ValidationError = "invalid-URL-unit-tab-or-newline"
	InvalidPercentEncoding            ValidationError = "invalid-URL-unit-percent-encoding"
	SpecialSchemeMissingSolidus       ValidationError = "special-scheme-missing-following-solidus"
	InvalidReverseSolidus             ValidationError = "invalid-reverse-solidus"
	InvalidCredentials                ValidationError = "invalid-credentials"
	FileInvalidWindowsDriveLetter     ValidationError = "file-invalid-Windows-drive-letter"
	FileInvalidWindowsDriveLetterHost ValidationError = "file-invalid-Windows-drive-letter-host"
)

// Reporter receives the validation errors found while parsing together with the
// code point offset in the input where they were detected.
type Reporter interface {
	Report(err ValidationError, offset int)
}

//go:generate go tool mockgen -source=errors.go -destination=internal/testutil/weburlmock/reporter.go -package=weburlmock
