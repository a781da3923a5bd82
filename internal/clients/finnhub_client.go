package clients

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"

	"github.com/spacesedan/stockpulse/internal/models"
	"github.com/spacesedan/stockpulse/internal/news"
)

type FinnhubNewsClient struct {
	client *finnhub.DefaultApiService
}

// NewFinnhubNewsClient authenticates with the X-Finnhub-Token header. An
// empty serverURL keeps the library default.
func NewFinnhubNewsClient(apiKey, serverURL string, timeout time.Duration) *FinnhubNewsClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	cfg.UserAgent = USER_AGENT
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	if serverURL != "" {
		cfg.Servers = finnhub.ServerConfigurations{{URL: serverURL}}
	}
	return &FinnhubNewsClient{client: finnhub.NewAPIClient(cfg).DefaultApi}
}

func (c *FinnhubNewsClient) Name() string { return "finnhub" }

// FetchNews uses the company news endpoint, which filters by date only and
// has no page size, so the result is cut to limit here.
func (c *FinnhubNewsClient) FetchNews(ctx context.Context, symbol string, window news.Window, limit int) ([]models.NewsItem, error) {
	res, httpRes, err := c.client.CompanyNews(ctx).
		Symbol(symbol).
		From(window.StartDate()).
		To(window.EndDate()).
		Execute()
	if err != nil {
		if httpRes != nil {
			return nil, fmt.Errorf("company news returned status %d: %w", httpRes.StatusCode, err)
		}
		return nil, err
	}

	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}

	items := make([]models.NewsItem, 0, len(res))
	for _, n := range res {
		item := models.NewsItem{Symbols: []string{}}
		if n.Id != nil {
			item.ID = strconv.FormatInt(*n.Id, 10)
		}
		if n.Headline != nil {
			item.Headline = *n.Headline
		}
		if n.Summary != nil {
			item.Summary = *n.Summary
		}
		if n.Source != nil {
			item.Source = *n.Source
		}
		if n.Url != nil {
			item.URL = *n.Url
		}
		if n.Datetime != nil {
			item.PublishedAt = time.Unix(*n.Datetime, 0).UTC()
		}
		if n.Related != nil && *n.Related != "" {
			item.Symbols = strings.Split(*n.Related, ",")
		}
		items = append(items, item)
	}
	return items, nil
}
