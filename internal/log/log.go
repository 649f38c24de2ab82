// Package log provides logging utilities.
package log

import (
	"context"
	"fmt"
	"log/slog"
	"net/netip"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/ghettovoice/weburl/internal/constraints"
	"github.com/ghettovoice/weburl/ipaddr"
)

// EnvVar selects the package default logger, see [Default].
const EnvVar = "WEBURL_LOG"

var newHandler = slogformatter.NewFormatterHandler(
	slogformatter.ErrorFormatter("error"),
	slogformatter.FormatByType(func(ip ipaddr.IPv4) slog.Value {
		return slog.StringValue(ip.String())
	}),
	slogformatter.FormatByType(func(ip ipaddr.IPv6) slog.Value {
		return slog.StringValue("[" + ip.String() + "]")
	}),
	slogformatter.FormatByType(func(a netip.Addr) slog.Value {
		return slog.GroupValue(
			slog.String("addr", a.String()),
			slog.Bool("is_4in6", a.Is4In6()),
		)
	}),
)

// Def is a default logger.
var Def = slog.New(newHandler(
	console.NewHandler(os.Stdout, &console.HandlerOptions{
		AddSource:  true,
		Level:      slog.LevelDebug,
		TimeFormat: time.RFC3339Nano,
	}),
))

// Dev is a developer logger.
var Dev = slog.New(newHandler(
	devslog.NewHandler(os.Stdout, &devslog.Options{
		HandlerOptions: &slog.HandlerOptions{
			AddSource: true,
			Level:     slog.LevelDebug,
		},
		SortKeys:   true,
		TimeFormat: time.RFC3339Nano,
	}),
))

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})

// FromEnv maps a logger name to one of the package loggers:
// "console" or "def" selects [Def], "dev" selects [Dev], anything else [Noop].
func FromEnv(value string) *slog.Logger {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "console", "def":
		return Def
	case "dev":
		return Dev
	default:
		return Noop
	}
}

var defLogger = sync.OnceValue(func() *slog.Logger {
	return FromEnv(os.Getenv(EnvVar))
})

// Default returns the logger selected by the WEBURL_LOG environment variable.
// The variable is read once.
func Default() *slog.Logger { return defLogger() }

type fmtValue struct {
	v        any
	goSyntax bool
}

func (v fmtValue) LogValue() slog.Value {
	if v.goSyntax {
		return slog.StringValue(fmt.Sprintf("%#v", v.v))
	}
	return slog.StringValue(fmt.Sprintf("%+v", v.v))
}

// FmtValue returns a value logger that formats values using '%+v' or '%#v' syntax.
func FmtValue(v any, goSyntax bool) slog.LogValuer { return fmtValue{v, goSyntax} }

type stringValue[T constraints.Byteseq] struct {
	v T
}

func (v stringValue[T]) LogValue() slog.Value {
	return slog.StringValue(string(v.v))
}

// StringValue returns a value logger that formats v as string.
func StringValue[T constraints.Byteseq](v T) slog.LogValuer { return stringValue[T]{v} }
