package percent

// Set is a read-only set of bytes that must be percent-encoded in some URL component.
type Set struct {
	bits [4]uint64
}

// Contains reports whether c belongs to the set.
func (s Set) Contains(c byte) bool { return s.bits[c>>6]&(1<<(c&63)) != 0 }

// With returns a copy of the set extended by every byte of chars.
func (s Set) With(chars string) Set {
	for i := 0; i < len(chars); i++ {
		c := chars[i]
		s.bits[c>>6] |= 1 << (c & 63)
	}
	return s
}

func c0ControlSet() Set {
	var s Set
	for c := 0; c <= 0x1F; c++ {
		s = s.With(string(rune(c)))
	}
	s = s.With("\x7f")
	s.bits[2], s.bits[3] = ^uint64(0), ^uint64(0)
	return s
}

var (
	// C0ControlSet holds C0 controls, U+007F and every non-ASCII byte.
	// It escapes opaque hosts and opaque paths.
	C0ControlSet = c0ControlSet()
	// FragmentSet escapes fragments.
	FragmentSet = C0ControlSet.With(" \"<>`")
	// QuerySet escapes queries of non-special URLs.
	QuerySet = C0ControlSet.With(" \"#<>")
	// SpecialQuerySet escapes queries of special URLs.
	SpecialQuerySet = QuerySet.With("'")
	// PathSet escapes path segments of non-special URLs.
	PathSet = QuerySet.With("?`{}")
	// SpecialPathSet escapes path segments of special URLs.
	SpecialPathSet = PathSet.With("\\")
	// UserinfoSet escapes usernames and passwords.
	UserinfoSet = PathSet.With("/:;=@[\\]^|")
)
