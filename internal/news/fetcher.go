package news

import (
	"context"
	"log/slog"
	"time"

	"github.com/spacesedan/stockpulse/internal/tracing"
)

const DefaultLimit = 50

type Fetcher struct {
	provider NewsProvider
	limit    int
}

func NewFetcher(provider NewsProvider, limit int) *Fetcher {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Fetcher{provider: provider, limit: limit}
}

// Headlines returns the headline of every item the provider returns for
// symbol, preserving provider order.
func (f *Fetcher) Headlines(ctx context.Context, symbol string, window Window) ([]string, error) {
	ctx, span := tracing.StartSpan(ctx, "news.Headlines")
	defer span.End()

	start := time.Now()
	items, err := f.provider.FetchNews(ctx, symbol, window, f.limit)
	if err != nil {
		slog.Error("[NewsFetcher] An error occurred while extracting news",
			slog.String("provider", f.provider.Name()),
			slog.String("symbol", symbol),
			slog.String("error", err.Error()))
		perr := &ProviderError{Provider: f.provider.Name(), Symbol: symbol, Err: err}
		tracing.RecordError(span, perr)
		return nil, perr
	}

	headlines := make([]string, 0, len(items))
	for _, item := range items {
		headlines = append(headlines, item.Headline)
	}

	slog.Debug("[NewsFetcher] Fetched headlines",
		slog.String("provider", f.provider.Name()),
		slog.String("symbol", symbol),
		slog.String("start", window.StartDate()),
		slog.String("end", window.EndDate()),
		slog.Int("count", len(headlines)),
		slog.Duration("elapsed", time.Since(start)))

	return headlines, nil
}
