package grammar_test

import (
	"testing"

	"github.com/ghettovoice/weburl/internal/grammar"
)

func TestIsScheme(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"http", true},
		{"HTTP", true},
		{"svn+ssh", true},
		{"view-source", true},
		{"a.b-c+d1", true},
		{"1http", false},
		{"+http", false},
		{"ht tp", false},
		{"http:", false},
		{"bücher", false},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			if got := grammar.IsScheme(c.in); got != c.want {
				t.Errorf("grammar.IsScheme(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestIndexForbidden(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		in         string
		wantHost   int
		wantDomain int
	}{
		{"clean", "example.com", -1, -1},
		{"percent", "a%b", -1, 1},
		{"control", "a\x01b", -1, 1},
		{"delete", "ab\x7f", -1, 2},
		{"space", "a b", 1, 1},
		{"caret", "a^b", 1, 1},
		{"non-ascii", "b\xc3\xbccher", -1, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := grammar.IndexForbiddenHost(c.in); got != c.wantHost {
				t.Errorf("grammar.IndexForbiddenHost(%q) = %d, want %d", c.in, got, c.wantHost)
			}
			if got := grammar.IndexForbiddenDomain(c.in); got != c.wantDomain {
				t.Errorf("grammar.IndexForbiddenDomain(%q) = %d, want %d", c.in, got, c.wantDomain)
			}
		})
	}
}

func TestWindowsDriveLetters(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in             string
		wantDrive      bool
		wantNormalized bool
		wantStarts     bool
	}{
		{"C:", true, true, true},
		{"c|", true, false, true},
		{"C|/demo", false, false, true},
		{"C:?q", false, false, true},
		{"C:x", false, false, false},
		{"1:", false, false, false},
		{"C", false, false, false},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			if got := grammar.IsWindowsDriveLetter(c.in); got != c.wantDrive {
				t.Errorf("grammar.IsWindowsDriveLetter(%q) = %v, want %v", c.in, got, c.wantDrive)
			}
			if got := grammar.IsNormalizedWindowsDriveLetter(c.in); got != c.wantNormalized {
				t.Errorf("grammar.IsNormalizedWindowsDriveLetter(%q) = %v, want %v", c.in, got, c.wantNormalized)
			}
			if got := grammar.StartsWithWindowsDriveLetter([]rune(c.in)); got != c.wantStarts {
				t.Errorf("grammar.StartsWithWindowsDriveLetter(%q) = %v, want %v", c.in, got, c.wantStarts)
			}
		})
	}
}

func TestDotSegments(t *testing.T) {
	t.Parallel()

	single := []string{".", "%2e", "%2E"}
	double := []string{"..", ".%2e", "%2E.", "%2e%2E"}
	neither := []string{"", "...", "%2e%2e%2e", "a", ".a"}

	for _, s := range single {
		if !grammar.IsSingleDotSegment(s) || grammar.IsDoubleDotSegment(s) {
			t.Errorf("segment %q: want single dot segment only", s)
		}
	}
	for _, s := range double {
		if !grammar.IsDoubleDotSegment(s) || grammar.IsSingleDotSegment(s) {
			t.Errorf("segment %q: want double dot segment only", s)
		}
	}
	for _, s := range neither {
		if grammar.IsSingleDotSegment(s) || grammar.IsDoubleDotSegment(s) {
			t.Errorf("segment %q: want no dot segment", s)
		}
	}
}
