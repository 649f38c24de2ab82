package ipaddr

import "github.com/ghettovoice/weburl/internal/errorutil"

// Error is an IP address literal parsing error.
type Error string

func (e Error) Error() string { return string(e) }

// Is lets every IPv4 error match [ErrInvalidIPv4] and every IPv6 error match [ErrInvalidIPv6].
func (e Error) Is(target error) bool {
	t, ok := target.(Error) //nolint:errorlint
	if !ok {
		return false
	}
	if t == e {
		return true
	}
	switch t {
	case ErrInvalidIPv4:
		return e.kind() == 4
	case ErrInvalidIPv6:
		return e.kind() == 6
	}
	return false
}

func (e Error) kind() int {
	switch e {
	case ErrIPv4EmptyPart, ErrIPv4TooManyParts, ErrIPv4NonNumericPart, ErrIPv4OutOfRange:
		return 4
	case ErrIPv6InvalidCompression, ErrIPv6TooManyPieces, ErrIPv6MultipleCompression, ErrIPv6InvalidCodePoint,
		ErrIPv6TooFewPieces, ErrIPv4InIPv6TooManyPieces, ErrIPv4InIPv6InvalidCodePoint, ErrIPv4InIPv6OutOfRange,
		ErrIPv4InIPv6TooFewParts:
		return 6
	}
	return 0
}

const (
	ErrInvalidIPv4 Error = "invalid IPv4 address"
	ErrInvalidIPv6 Error = "invalid IPv6 address"

	ErrIPv4EmptyPart      Error = "IPv4-empty-part"
	ErrIPv4TooManyParts   Error = "IPv4-too-many-parts"
	ErrIPv4NonNumericPart Error = "IPv4-non-numeric-part"
	ErrIPv4OutOfRange     Error = "IPv4-out-of-range-part"

	ErrIPv6InvalidCompression     Error = "IPv6-invalid-compression"
	ErrIPv6TooManyPieces          Error = "IPv6-too-many-pieces"
	ErrIPv6MultipleCompression    Error = "IPv6-multiple-compression"
	ErrIPv6InvalidCodePoint       Error = "IPv6-invalid-code-point"
	ErrIPv6TooFewPieces           Error = "IPv6-too-few-pieces"
	ErrIPv4InIPv6TooManyPieces    Error = "IPv4-in-IPv6-too-many-pieces"
	ErrIPv4InIPv6InvalidCodePoint Error = "IPv4-in-IPv6-invalid-code-point"
	ErrIPv4InIPv6OutOfRange       Error = "IPv4-in-IPv6-out-of-range-part"
	ErrIPv4InIPv6TooFewParts      Error = "IPv4-in-IPv6-too-few-parts"
)

func newError(sentinel Error, input string) error {
	return errorutil.NewWrapperError(sentinel, "%q", input) //errtrace:skip
}
