package weburl

import (
	"slices"
	"strings"
)

// Path is either a list of percent-encoded segments or, for URLs that cannot be a base,
// a single opaque percent-encoded string.
type Path struct {
	segments []string
	opaque   string
	isOpaque bool
}

// SegmentsPath returns a segmented path. No segments means the empty path.
func SegmentsPath(segments ...string) Path {
	return Path{segments: slices.Clone(segments)}
}

// OpaquePath returns an opaque path.
func OpaquePath(s string) Path {
	return Path{opaque: s, isOpaque: true}
}

// IsOpaque reports whether the path is opaque.
func (p Path) IsOpaque() bool { return p.isOpaque }

// Segments returns a copy of the path segments, nil for an opaque path.
func (p Path) Segments() []string { return slices.Clone(p.segments) }

// Len returns the number of segments.
func (p Path) Len() int { return len(p.segments) }

// Opaque returns the opaque path string.
func (p Path) Opaque() string { return p.opaque }

// String returns the serialized path.
func (p Path) String() string {
	if p.isOpaque {
		return p.opaque
	}
	if len(p.segments) == 0 {
		return ""
	}
	return "/" + strings.Join(p.segments, "/")
}

// Equal reports whether both paths have the same shape and content.
func (p Path) Equal(other Path) bool {
	if p.isOpaque != other.isOpaque {
		return false
	}
	if p.isOpaque {
		return p.opaque == other.opaque
	}
	return slices.Equal(p.segments, other.segments)
}
