package ioutil_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/weburl/internal/ioutil"
)

var errWrite = errors.New("write failed")

type limitWriter struct {
	sb    strings.Builder
	limit int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	if w.sb.Len()+len(p) > w.limit {
		n := w.limit - w.sb.Len()
		w.sb.Write(p[:n])
		return n, errWrite
	}
	return w.sb.Write(p)
}

func TestCountingWriter(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		limit   int
		wantNum int
		wantStr string
		wantErr error
	}{
		{"all written", 100, 19, "https://example.com", nil},
		{"short write", 10, 10, "https://ex", errWrite},
		{"first write fails", 0, 0, "", errWrite},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			w := &limitWriter{limit: c.limit}
			cw := ioutil.GetCountingWriter(w)
			defer ioutil.FreeCountingWriter(cw)

			cw.WriteString("https", ":", "//")
			cw.Call(func(w io.Writer) (int, error) { return io.WriteString(w, "example.com") })
			cw.WriteString("")

			num, err := cw.Result()
			if num != c.wantNum {
				t.Errorf("cw.Result() num = %d, want %d", num, c.wantNum)
			}
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("cw.Result() error = %v, want %v\ndiff (-got +want):\n%v", err, c.wantErr, diff)
			}
			if got := w.sb.String(); got != c.wantStr {
				t.Errorf("written = %q, want %q", got, c.wantStr)
			}
		})
	}
}

func TestCountingWriter_Write(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	cw := ioutil.NewCountingWriter(&sb)
	if _, err := cw.Write([]byte("abc")); err != nil {
		t.Fatalf("cw.Write() error = %v, want nil", err)
	}
	if _, err := cw.Write([]byte("de")); err != nil {
		t.Fatalf("cw.Write() error = %v, want nil", err)
	}
	if got, want := cw.Count(), 5; got != want {
		t.Errorf("cw.Count() = %d, want %d", got, want)
	}
}
