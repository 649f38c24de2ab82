package weburl_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/weburl"
)

func TestPath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		path       weburl.Path
		wantOpaque bool
		wantSegs   []string
		wantStr    string
	}{
		{"empty", weburl.SegmentsPath(), false, nil, ""},
		{"root", weburl.SegmentsPath(""), false, []string{""}, "/"},
		{"segments", weburl.SegmentsPath("a", "b", ""), false, []string{"a", "b", ""}, "/a/b/"},
		{"opaque", weburl.OpaquePath("user@example.com"), true, nil, "user@example.com"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.path.IsOpaque(); got != c.wantOpaque {
				t.Errorf("path.IsOpaque() = %v, want %v", got, c.wantOpaque)
			}
			if diff := cmp.Diff(c.path.Segments(), c.wantSegs); diff != "" {
				t.Errorf("path.Segments() mismatch\ndiff (-got +want):\n%v", diff)
			}
			if got := c.path.String(); got != c.wantStr {
				t.Errorf("path.String() = %q, want %q", got, c.wantStr)
			}
		})
	}
}

func TestPath_Immutable(t *testing.T) {
	t.Parallel()

	segs := []string{"a", "b"}
	p := weburl.SegmentsPath(segs...)
	segs[0] = "x"
	got := p.Segments()
	got[1] = "y"

	if diff := cmp.Diff(p.Segments(), []string{"a", "b"}); diff != "" {
		t.Errorf("path.Segments() mismatch\ndiff (-got +want):\n%v", diff)
	}
}

func TestPath_Equal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		a, b weburl.Path
		want bool
	}{
		{"empty", weburl.SegmentsPath(), weburl.Path{}, true},
		{"same segments", weburl.SegmentsPath("a"), weburl.SegmentsPath("a"), true},
		{"different segments", weburl.SegmentsPath("a"), weburl.SegmentsPath("b"), false},
		{"opaque and segments", weburl.OpaquePath(""), weburl.SegmentsPath(), false},
		{"same opaque", weburl.OpaquePath("x"), weburl.OpaquePath("x"), true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.a.Equal(c.b); got != c.want {
				t.Errorf("a.Equal(b) = %v, want %v", got, c.want)
			}
		})
	}
}
