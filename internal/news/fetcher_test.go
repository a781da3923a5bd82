package news

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/spacesedan/stockpulse/internal/models"
)

type fakeProvider struct {
	items     []models.NewsItem
	err       error
	gotSymbol string
	gotWindow Window
	gotLimit  int
}

func (f *fakeProvider) FetchNews(ctx context.Context, symbol string, window Window, limit int) ([]models.NewsItem, error) {
	f.gotSymbol = symbol
	f.gotWindow = window
	f.gotLimit = limit
	return f.items, f.err
}

func (f *fakeProvider) Name() string { return "fake" }

func TestHeadlinesPreservesProviderOrder(t *testing.T) {
	provider := &fakeProvider{items: []models.NewsItem{
		{ID: "2", Headline: "Second"},
		{ID: "1", Headline: "First"},
		{ID: "3", Headline: ""},
	}}
	window := WindowFor(time.Date(2026, 10, 21, 13, 0, 0, 0, time.UTC))

	headlines, err := NewFetcher(provider, 0).Headlines(context.Background(), "AAPL", window)

	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"Second", "First", ""}, headlines)
	assert.Equal(t, "AAPL", provider.gotSymbol)
	assert.Equal(t, DefaultLimit, provider.gotLimit)
	assert.Equal(t, window, provider.gotWindow)
}

func TestHeadlinesEmpty(t *testing.T) {
	headlines, err := NewFetcher(&fakeProvider{}, 10).Headlines(context.Background(), "", Window{})

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(headlines))
}

func TestHeadlinesWrapsProviderError(t *testing.T) {
	cause := errors.New("401 unauthorized")
	provider := &fakeProvider{err: cause}

	_, err := NewFetcher(provider, 10).Headlines(context.Background(), "BAD", Window{})

	var perr *ProviderError
	assert.Equal(t, true, errors.As(err, &perr))
	assert.Equal(t, "BAD", perr.Symbol)
	assert.Equal(t, "fake", perr.Provider)
	assert.Equal(t, true, errors.Is(err, cause))
	assert.Equal(t, 10, provider.gotLimit)
}
