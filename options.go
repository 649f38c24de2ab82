package weburl

import (
	"log/slog"

	"github.com/ghettovoice/weburl/internal/log"
)

// ParseOption configures a [Parser].
type ParseOption interface {
	ApplyParse(options *ParseOptions)
}

// ParseOptions holds the [Parser] settings.
type ParseOptions struct {
	// Logger receives debug records about failures and validation errors.
	// Defaults to the logger selected by the WEBURL_LOG environment variable.
	Logger *slog.Logger
	// Reporter receives validation errors. Optional.
	Reporter Reporter
	// CheckDNSLength rejects domains that do not fit the DNS length limits.
	CheckDNSLength bool
	// TraceStates checks every state transition against [StateGraph] and logs it.
	TraceStates bool
}

type withLogger struct {
	logger *slog.Logger
}

func (o withLogger) ApplyParse(options *ParseOptions) {
	options.Logger = o.logger
}

// WithLogger sets the parser logger.
func WithLogger(logger *slog.Logger) ParseOption {
	return withLogger{logger}
}

type withReporter struct {
	reporter Reporter
}

func (o withReporter) ApplyParse(options *ParseOptions) {
	options.Reporter = o.reporter
}

// WithReporter sets the receiver of validation errors.
func WithReporter(reporter Reporter) ParseOption {
	return withReporter{reporter}
}

type withDNSLengthCheck bool

func (o withDNSLengthCheck) ApplyParse(options *ParseOptions) {
	options.CheckDNSLength = bool(o)
}

// WithDNSLengthCheck enables or disables the DNS length verification of domains.
func WithDNSLengthCheck(enabled bool) ParseOption {
	return withDNSLengthCheck(enabled)
}

type withStateTrace bool

func (o withStateTrace) ApplyParse(options *ParseOptions) {
	options.TraceStates = bool(o)
}

// WithStateTrace enables or disables state transition tracing.
func WithStateTrace(enabled bool) ParseOption {
	return withStateTrace(enabled)
}

// ApplyParse makes a ParseOptions value usable as an option itself, replacing all settings.
func (o ParseOptions) ApplyParse(options *ParseOptions) {
	*options = o
}

func buildParseOptions(opts []ParseOption) ParseOptions {
	var options ParseOptions
	for _, o := range opts {
		if o != nil {
			o.ApplyParse(&options)
		}
	}
	if options.Logger == nil {
		options.Logger = log.Default()
	}
	return options
}
