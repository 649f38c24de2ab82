package grammar

import "strings"

func IsASCIIAlpha[T rune | byte](c T) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }

func IsASCIIDigit[T rune | byte](c T) bool { return '0' <= c && c <= '9' }

func IsASCIIAlphanum[T rune | byte](c T) bool { return IsASCIIAlpha(c) || IsASCIIDigit(c) }

// IsSchemeChar reports whether c may follow the first letter of a scheme.
func IsSchemeChar(c rune) bool {
	return IsASCIIAlphanum(c) || c == '+' || c == '-' || c == '.'
}

// IsC0ControlOrSpace reports whether c is stripped from both ends of the parser input.
func IsC0ControlOrSpace(c rune) bool { return 0 <= c && c <= 0x20 }

// IsTabOrNewline reports whether c is removed from anywhere in the parser input.
func IsTabOrNewline(c rune) bool { return c == '\t' || c == '\n' || c == '\r' }

// ToLowerASCII lower-cases an ASCII letter.
func ToLowerASCII(c rune) rune {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

var (
	forbiddenHost   [128]bool
	forbiddenDomain [128]bool
)

func init() {
	for _, c := range "\x00\t\n\r #/:<>?@[\\]^|" {
		forbiddenHost[c] = true
		forbiddenDomain[c] = true
	}
	for c := 0; c <= 0x1F; c++ {
		forbiddenDomain[c] = true
	}
	forbiddenDomain['%'] = true
	forbiddenDomain[0x7F] = true
}

// IsForbiddenHostCodePoint reports whether c may not appear in an opaque host.
func IsForbiddenHostCodePoint(c byte) bool { return c < 0x80 && forbiddenHost[c] }

// IsForbiddenDomainCodePoint reports whether c may not appear in a domain.
func IsForbiddenDomainCodePoint(c byte) bool { return c < 0x80 && forbiddenDomain[c] }

// IndexForbiddenHost returns the index of the first forbidden host code point in s or -1.
func IndexForbiddenHost(s string) int {
	for i := 0; i < len(s); i++ {
		if IsForbiddenHostCodePoint(s[i]) {
			return i
		}
	}
	return -1
}

// IndexForbiddenDomain returns the index of the first forbidden domain code point in s or -1.
func IndexForbiddenDomain(s string) int {
	for i := 0; i < len(s); i++ {
		if IsForbiddenDomainCodePoint(s[i]) {
			return i
		}
	}
	return -1
}

// IsWindowsDriveLetter reports whether s is an ASCII letter followed by ':' or '|'.
func IsWindowsDriveLetter(s string) bool {
	return len(s) == 2 && IsASCIIAlpha(s[0]) && (s[1] == ':' || s[1] == '|')
}

// IsNormalizedWindowsDriveLetter reports whether s is an ASCII letter followed by ':'.
func IsNormalizedWindowsDriveLetter(s string) bool {
	return IsWindowsDriveLetter(s) && s[1] == ':'
}

// StartsWithWindowsDriveLetter reports whether cps begins with a Windows drive letter
// that is the whole input or is followed by '/', '\', '?' or '#'.
func StartsWithWindowsDriveLetter(cps []rune) bool {
	if len(cps) < 2 || !IsASCIIAlpha(cps[0]) || (cps[1] != ':' && cps[1] != '|') {
		return false
	}
	if len(cps) == 2 {
		return true
	}
	switch cps[2] {
	case '/', '\\', '?', '#':
		return true
	}
	return false
}

// IsSingleDotSegment reports whether s is "." or its percent-encoded form.
func IsSingleDotSegment(s string) bool {
	return s == "." || strings.EqualFold(s, "%2e")
}

// IsDoubleDotSegment reports whether s is ".." or one of its percent-encoded forms.
func IsDoubleDotSegment(s string) bool {
	switch len(s) {
	case 2:
		return s == ".."
	case 4:
		return strings.EqualFold(s, ".%2e") || strings.EqualFold(s, "%2e.")
	case 6:
		return strings.EqualFold(s, "%2e%2e")
	}
	return false
}
