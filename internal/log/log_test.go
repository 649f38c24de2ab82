package log_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	slogformatter "github.com/samber/slog-formatter"

	"github.com/ghettovoice/weburl/internal/log"
	"github.com/ghettovoice/weburl/ipaddr"
)

func TestFromEnv(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value string
		want  *slog.Logger
	}{
		{"", log.Noop},
		{"off", log.Noop},
		{"console", log.Def},
		{" DEF ", log.Def},
		{"dev", log.Dev},
	}

	for _, c := range cases {
		t.Run(c.value, func(t *testing.T) {
			t.Parallel()

			if got := log.FromEnv(c.value); got != c.want {
				t.Errorf("log.FromEnv(%q) = %p, want %p", c.value, got, c.want)
			}
		})
	}
}

func TestNoop(t *testing.T) {
	t.Parallel()

	if log.Noop.Enabled(context.Background(), slog.LevelError) {
		t.Error("log.Noop.Enabled(ctx, LevelError) = true, want false")
	}
}

func TestValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slogformatter.NewFormatterHandler(
		slogformatter.ErrorFormatter("error"),
	)(slog.NewTextHandler(&buf, nil)))

	logger.Info("test",
		slog.Any("input", log.StringValue([]byte("http://h"))),
		slog.Any("ip", log.FmtValue(ipaddr.IPv4From4(1, 2, 3, 4), false)),
		slog.Any("error", errors.New("boom")),
	)

	out := buf.String()
	for _, want := range []string{"input=http://h", "ip=1.2.3.4", "error.message=boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q does not contain %q", out, want)
		}
	}
}
