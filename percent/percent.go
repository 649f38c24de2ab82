// Package percent implements percent-encoding and percent-decoding of URL components
// as defined by the WHATWG URL standard.
//
// Encoding is driven by a caller-supplied predicate that reports whether a byte must be escaped,
// usually the Contains method of one of the predefined sets ([C0ControlSet], [PathSet], [QuerySet], ...).
// Decoding never fails: a '%' that does not start a "%XX" triplet is copied as is.
package percent

import (
	"iter"

	"github.com/ghettovoice/weburl/internal/constraints"
	"github.com/ghettovoice/weburl/internal/util"
)

const upperhex = "0123456789ABCDEF"

// Encode escapes every byte of s for which shouldEscape returns true to the form "%XX".
func Encode[T constraints.Byteseq](s T, shouldEscape func(c byte) bool) string {
	if len(s) == 0 {
		return ""
	}

	b := util.GetBytesBuffer()
	defer util.FreeBytesBuffer(b)

	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if shouldEscape(s[i]) {
			b.WriteByte('%')
			b.WriteByte(upperhex[s[i]>>4])
			b.WriteByte(upperhex[s[i]&15])
		} else {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// EncodeSeq is a lazy form of [Encode], yielding the encoded output byte by byte.
func EncodeSeq[T constraints.Byteseq](s T, shouldEscape func(c byte) bool) iter.Seq[byte] {
	return func(yield func(byte) bool) {
		for i := 0; i < len(s); i++ {
			if !shouldEscape(s[i]) {
				if !yield(s[i]) {
					return
				}
				continue
			}
			if !yield('%') || !yield(upperhex[s[i]>>4]) || !yield(upperhex[s[i]&15]) {
				return
			}
		}
	}
}

// AppendEncode appends the encoded form of s to dst and returns the extended slice.
func AppendEncode[T constraints.Byteseq](dst []byte, s T, shouldEscape func(c byte) bool) []byte {
	for i := 0; i < len(s); i++ {
		if shouldEscape(s[i]) {
			dst = append(dst, '%', upperhex[s[i]>>4], upperhex[s[i]&15])
		} else {
			dst = append(dst, s[i])
		}
	}
	return dst
}

// Decode converts each "%XX" triplet with two hex digits into the byte it encodes.
// Malformed escapes pass through unchanged.
func Decode[T constraints.Byteseq](s T) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if IsValidEscape(s, i) {
			out = append(out, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
			continue
		}
		out = append(out, s[i])
	}
	return out
}

// DecodeString is [Decode] for strings.
func DecodeString(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '%' {
			return string(Decode(s))
		}
	}
	return s
}

// IsValidEscape reports whether s[i:] starts with a well-formed "%XX" triplet.
func IsValidEscape[T constraints.Byteseq](s T, i int) bool {
	return i+2 < len(s) && s[i] == '%' && ishex(s[i+1]) && ishex(s[i+2])
}

func ishex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
