package clients

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"github.com/spacesedan/stockpulse/internal/models"
	"github.com/spacesedan/stockpulse/internal/news"
)

const ALPACA_DEFAULT_BASE_URL = "https://data.alpaca.markets"

// AlpacaNewsClient reads the Alpaca market data news feed.
type AlpacaNewsClient struct {
	client *marketdata.Client
}

func NewAlpacaNewsClient(apiKey, apiSecret, baseURL string, timeout time.Duration) *AlpacaNewsClient {
	if baseURL == "" {
		baseURL = ALPACA_DEFAULT_BASE_URL
	}
	slog.Info("[AlpacaNewsClient] Initializing Client",
		slog.String("base_url", baseURL),
		slog.Duration("timeout", timeout))

	return &AlpacaNewsClient{
		client: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:     apiKey,
			APISecret:  apiSecret,
			BaseURL:    baseURL,
			HTTPClient: &http.Client{Timeout: timeout},
		}),
	}
}

func (a *AlpacaNewsClient) Name() string { return "alpaca" }

// FetchNews asks for at most limit items tagged with symbol, covering the
// whole of the window's last day. The SDK takes no context, so ctx does not
// cancel the call.
func (a *AlpacaNewsClient) FetchNews(_ context.Context, symbol string, window news.Window, limit int) ([]models.NewsItem, error) {
	res, err := a.client.GetNews(marketdata.GetNewsRequest{
		Symbols:    []string{symbol},
		Start:      window.Start,
		End:        window.Through(),
		TotalLimit: limit,
	})
	if err != nil {
		return nil, err
	}

	items := make([]models.NewsItem, 0, len(res))
	for _, n := range res {
		items = append(items, models.NewsItem{
			ID:          strconv.Itoa(n.ID),
			Headline:    n.Headline,
			Summary:     n.Summary,
			Source:      n.Author,
			URL:         n.URL,
			Symbols:     n.Symbols,
			PublishedAt: n.CreatedAt,
		})
	}
	return items, nil
}
