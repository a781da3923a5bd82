package analysis

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/spacesedan/stockpulse/internal/models"
	"github.com/spacesedan/stockpulse/internal/news"
	"github.com/spacesedan/stockpulse/internal/sentiment"
	"github.com/spacesedan/stockpulse/internal/tracing"
)

// ErrorPolicy decides what a failing symbol does to the rest of a request.
type ErrorPolicy int

const (
	// AbortOnError fails the whole request on the first error and returns
	// no partial mapping.
	AbortOnError ErrorPolicy = iota
	// SkipOnError logs the failure and moves on to the next symbol.
	SkipOnError
)

func (p ErrorPolicy) String() string {
	if p == SkipOnError {
		return "skip"
	}
	return "abort"
}

// ParsePolicy maps "skip" to SkipOnError and everything else to AbortOnError.
func ParsePolicy(raw string) ErrorPolicy {
	if raw == "skip" {
		return SkipOnError
	}
	return AbortOnError
}

type HeadlineFetcher interface {
	Headlines(ctx context.Context, symbol string, window news.Window) ([]string, error)
}

type HeadlineScorer interface {
	Score(ctx context.Context, headlines []string) ([]models.SentimentResult, error)
}

type Analyzer struct {
	fetcher    HeadlineFetcher
	scorer     HeadlineScorer
	aggregator sentiment.Aggregator
	reporter   *Reporter
	policy     ErrorPolicy
	now        func() time.Time
}

type Option func(*Analyzer)

func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

func WithPolicy(p ErrorPolicy) Option {
	return func(a *Analyzer) { a.policy = p }
}

func WithReportWriter(w io.Writer) Option {
	return func(a *Analyzer) { a.reporter = NewReporter(w) }
}

func NewAnalyzer(fetcher HeadlineFetcher, scorer HeadlineScorer, aggregator sentiment.Aggregator, opts ...Option) *Analyzer {
	a := &Analyzer{
		fetcher:    fetcher,
		scorer:     scorer,
		aggregator: aggregator,
		reporter:   NewReporter(io.Discard),
		policy:     AbortOnError,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs every symbol through fetch, score and aggregate in order and
// returns the symbols whose positive sentiment cleared the threshold. The
// date window is fixed once for the whole request.
func (a *Analyzer) Analyze(ctx context.Context, symbols []string) (*models.ResultMapping, error) {
	ctx, span := tracing.StartSpan(ctx, "analysis.Analyze", attribute.Int("symbols", len(symbols)))
	defer span.End()

	window := news.WindowFor(a.now())
	result := models.NewResultMapping()

	slog.Info("[Analyzer] Starting analysis",
		slog.Int("symbols", len(symbols)),
		slog.String("start", window.StartDate()),
		slog.String("end", window.EndDate()),
		slog.String("policy", a.policy.String()))

	for _, symbol := range symbols {
		decision, ok, err := a.analyzeSymbol(ctx, symbol, window)
		if err != nil {
			if a.policy == SkipOnError {
				slog.Warn("[Analyzer] Skipping symbol after error",
					slog.String("symbol", symbol),
					slog.String("error", err.Error()))
				continue
			}
			tracing.RecordError(span, err)
			return nil, fmt.Errorf("analyze %q: %w", symbol, err)
		}
		if !ok {
			continue
		}
		result.Set(symbol, decision)
		a.reporter.Report(symbol, decision)
	}

	slog.Info("[Analyzer] Analysis complete", slog.Int("reported", result.Len()))
	return result, nil
}

func (a *Analyzer) analyzeSymbol(ctx context.Context, symbol string, window news.Window) (models.StockDecision, bool, error) {
	ctx, span := tracing.StartSpan(ctx, "analysis.Symbol", attribute.String("symbol", symbol))
	defer span.End()

	headlines, err := a.fetcher.Headlines(ctx, symbol, window)
	if err != nil {
		return models.StockDecision{}, false, err
	}

	results, err := a.scorer.Score(ctx, headlines)
	if err != nil {
		return models.StockDecision{}, false, err
	}

	decision, ok := a.aggregator.Aggregate(results)
	slog.Debug("[Analyzer] Symbol scored",
		slog.String("symbol", symbol),
		slog.Int("headlines", len(headlines)),
		slog.Int("confident", len(results)),
		slog.Bool("reported", ok))
	return decision, ok, nil
}
