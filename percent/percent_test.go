package percent_test

import (
	"bytes"
	"slices"
	"testing"
	"testing/quick"

	"github.com/ghettovoice/weburl/percent"
)

var sets = []struct {
	name string
	set  percent.Set
}{
	{"c0 control", percent.C0ControlSet},
	{"fragment", percent.FragmentSet},
	{"query", percent.QuerySet},
	{"special query", percent.SpecialQuerySet},
	{"path", percent.PathSet},
	{"special path", percent.SpecialPathSet},
	{"userinfo", percent.UserinfoSet},
}

func TestEncode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		set  percent.Set
		want string
	}{
		{"empty", "", percent.PathSet, ""},
		{"no escape", "abc-%2Bqwe!", percent.PathSet, "abc-%2Bqwe!"},
		{"non-ascii", "€uronews", percent.PathSet, "%E2%82%ACuronews"},
		{"userinfo space", "sec ret ))", percent.UserinfoSet, "sec%20ret%20))"},
		{"userinfo delimiters", "a:b@c/d", percent.UserinfoSet, "a%3Ab%40c%2Fd"},
		{"query quote", "a'b", percent.QuerySet, "a'b"},
		{"special query quote", "a'b", percent.SpecialQuerySet, "a%27b"},
		{"fragment backtick", "a`b c", percent.FragmentSet, "a%60b%20c"},
		{"opaque host", "www.bücher.de", percent.C0ControlSet, "www.b%C3%BCcher.de"},
		{"path braces", "{x}?", percent.PathSet, "%7Bx%7D%3F"},
		{"special path backslash", `a\b`, percent.SpecialPathSet, "a%5Cb"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := percent.Encode(c.in, c.set.Contains); got != c.want {
				t.Errorf("percent.Encode(%q) = %q, want %q", c.in, got, c.want)
			}
			if got := string(percent.AppendEncode([]byte("x"), c.in, c.set.Contains)); got != "x"+c.want {
				t.Errorf("percent.AppendEncode(\"x\", %q) = %q, want %q", c.in, got, "x"+c.want)
			}
			if got := string(slices.Collect(percent.EncodeSeq(c.in, c.set.Contains))); got != c.want {
				t.Errorf("percent.EncodeSeq(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestEncodeSeq_Break(t *testing.T) {
	t.Parallel()

	var got []byte
	for c := range percent.EncodeSeq("ü", percent.C0ControlSet.Contains) {
		got = append(got, c)
		if len(got) == 2 {
			break
		}
	}
	if want := "%C"; string(got) != want {
		t.Errorf("first two bytes = %q, want %q", got, want)
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"no unescape", "abc%ax%", "abc%ax%"},
		{"unescape all", "abc%E4%b8%96", "abc世"},
		{"leading percent", "%🐶️", "%🐶️"},
		{"one hex", "%3🐶️", "%3🐶️"},
		{"hex and non-hex", "%3z", "%3z"},
		{"trailing percent hex", "🐶️%3", "🐶️%3"},
		{"valid then text", "%100", "\x100"},
		{"double encoded", "%2541", "%41"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := string(percent.Decode(c.in)); got != c.want {
				t.Errorf("percent.Decode(%q) = %q, want %q", c.in, got, c.want)
			}
			if got := percent.DecodeString(c.in); got != c.want {
				t.Errorf("percent.DecodeString(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestIsValidEscape(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		i    int
		want bool
	}{
		{"%41", 0, true},
		{"a%4f", 1, true},
		{"%4", 0, false},
		{"%4z", 0, false},
		{"%", 0, false},
		{"a%41", 0, false},
		{"%%41", 0, false},
		{"%%41", 1, true},
		{"%\u00e4", 0, false},
	}

	for _, c := range cases {
		if got := percent.IsValidEscape(c.in, c.i); got != c.want {
			t.Errorf("percent.IsValidEscape(%q, %d) = %v, want %v", c.in, c.i, got, c.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"hello, world",
		"👩‍👩‍👦‍👦️",
		"%🐶️",
		"%z🐶️",
		"%3🐶️",
		"%3z🐶️",
		"🐶️%",
		"🐶️%z",
		"🐶️%3",
		"🐶️%3z",
	}

	for _, s := range sets {
		t.Run(s.name, func(t *testing.T) {
			t.Parallel()

			for _, in := range inputs {
				if got := string(percent.Decode(percent.Encode(in, s.set.Contains))); got != in {
					t.Errorf("percent.Decode(percent.Encode(%q)) = %q, want %q", in, got, in)
				}
			}
		})
	}
}

func TestRoundTrip_Quick(t *testing.T) {
	t.Parallel()

	withPercent := percent.PathSet.With("%")
	f := func(b []byte) bool {
		return bytes.Equal(percent.Decode(percent.Encode(b, withPercent.Contains)), b)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestSets(t *testing.T) {
	t.Parallel()

	for _, s := range sets {
		for c := 0x80; c <= 0xFF; c++ {
			if !s.set.Contains(byte(c)) {
				t.Errorf("%s set: Contains(0x%02X) = false, want true", s.name, c)
			}
		}
		for c := 0; c < 0x20; c++ {
			if !s.set.Contains(byte(c)) {
				t.Errorf("%s set: Contains(0x%02X) = false, want true", s.name, c)
			}
		}
		for _, c := range []byte("azAZ09-._~%") {
			if s.set.Contains(c) {
				t.Errorf("%s set: Contains(%q) = true, want false", s.name, c)
			}
		}
	}
}
