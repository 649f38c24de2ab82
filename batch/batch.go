// Package batch parses many URLs concurrently with a bounded worker pool.
package batch

//go:generate go tool errtrace -w .

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"braces.dev/errtrace"
	"golang.org/x/sync/errgroup"

	"github.com/ghettovoice/weburl"
	"github.com/ghettovoice/weburl/internal/log"
)

// Result is the outcome of parsing a single input.
type Result struct {
	// Index is the position of the input in the batch.
	Index int
	Input string
	URL   weburl.Components
	// Err is the parse error, or the context error when the input was never parsed.
	Err error
}

// Options holds the [Parser] settings.
type Options struct {
	// Workers limits the number of concurrent parses. Defaults to GOMAXPROCS.
	Workers int
	// Metrics is optional.
	Metrics *Metrics
	Logger  *slog.Logger
	// ParseOptions configure every parse of the batch.
	ParseOptions []weburl.ParseOption
}

// Option configures a batch [Parser].
type Option interface {
	ApplyBatch(options *Options)
}

type withWorkers int

func (o withWorkers) ApplyBatch(options *Options) { options.Workers = int(o) }

// WithWorkers sets the worker pool size.
func WithWorkers(n int) Option { return withWorkers(n) }

type withMetrics struct{ m *Metrics }

func (o withMetrics) ApplyBatch(options *Options) { options.Metrics = o.m }

// WithMetrics enables metrics collection.
func WithMetrics(m *Metrics) Option { return withMetrics{m} }

type withBatchLogger struct{ logger *slog.Logger }

func (o withBatchLogger) ApplyBatch(options *Options) { options.Logger = o.logger }

// WithBatchLogger sets the batch logger.
func WithBatchLogger(logger *slog.Logger) Option { return withBatchLogger{logger} }

type withParseOptions []weburl.ParseOption

func (o withParseOptions) ApplyBatch(options *Options) {
	options.ParseOptions = append(options.ParseOptions, o...)
}

// WithParseOptions adds URL parser options.
func WithParseOptions(opts ...weburl.ParseOption) Option { return withParseOptions(opts) }

// Parser parses batches of URLs. It is safe for concurrent use.
type Parser struct {
	workers int
	metrics *Metrics
	logger  *slog.Logger
	parser  *weburl.Parser
}

// New creates a batch parser.
func New(opts ...Option) *Parser {
	var options Options
	for _, o := range opts {
		if o != nil {
			o.ApplyBatch(&options)
		}
	}
	if options.Workers <= 0 {
		options.Workers = runtime.GOMAXPROCS(0)
	}
	if options.Logger == nil {
		options.Logger = log.Default()
	}

	var parseOpts weburl.ParseOptions
	for _, o := range options.ParseOptions {
		if o != nil {
			o.ApplyParse(&parseOpts)
		}
	}
	parseOpts.Reporter = &countingReporter{
		next:    parseOpts.Reporter,
		metrics: options.Metrics,
	}

	return &Parser{
		workers: options.Workers,
		metrics: options.Metrics,
		logger:  options.Logger,
		parser:  weburl.NewParser(parseOpts),
	}
}

// ParseAll parses inputs against an optional base URL and returns one result per input
// in input order.
//
// When ctx is done no more inputs are started; the results of the skipped inputs carry
// the context error, which is also returned. Parse failures are reported per result only.
func (p *Parser) ParseAll(ctx context.Context, inputs []string, base *weburl.Components) ([]Result, error) {
	start := time.Now()
	results := make([]Result, len(inputs))
	for i, in := range inputs {
		results[i] = Result{Index: i, Input: in}
	}

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i := range results {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			p.parseOne(&results[i], base)
			return nil
		})
	}
	g.Wait() //nolint:errcheck

	var failed int
	ctxErr := ctx.Err()
	for i := range results {
		r := &results[i]
		if r.Err == nil && r.URL.IsZero() && ctxErr != nil {
			r.Err = context.Cause(ctx)
		}
		if r.Err != nil {
			failed++
		}
	}

	p.logger.Debug("URL batch parsed",
		slog.Int("total", len(inputs)),
		slog.Int("failed", failed),
		slog.Duration("elapsed", time.Since(start)),
		slog.Any("error", ctxErr),
	)
	if ctxErr != nil {
		return results, errtrace.Wrap(ctxErr)
	}
	return results, nil
}

func (p *Parser) parseOne(r *Result, base *weburl.Components) {
	start := time.Now()
	r.URL, r.Err = p.parser.Parse(r.Input, base)
	p.metrics.recordParse(r.URL, r.Err, time.Since(start))
}

// countingReporter counts validation errors and forwards them.
type countingReporter struct {
	next    weburl.Reporter
	metrics *Metrics
}

func (r *countingReporter) Report(err weburl.ValidationError, offset int) {
	r.metrics.recordValidation(err)
	if r.next != nil {
		r.next.Report(err, offset)
	}
}
