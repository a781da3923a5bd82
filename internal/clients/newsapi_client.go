package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spacesedan/stockpulse/internal/models"
	"github.com/spacesedan/stockpulse/internal/news"
)

const (
	NEWS_API_DEFAULT_BASE_URL = "https://newsapi.org"
	NEWS_API_EVERYTHING_PATH  = "/v2/everything"
	NEWS_API_MAX_PAGE_SIZE    = 100
)

type NewsAPIClient struct {
	Client  *http.Client
	APIKey  string
	BaseURL string
}

func NewNewsAPIClient(apiKey, baseURL string, timeout time.Duration) *NewsAPIClient {
	if baseURL == "" {
		baseURL = NEWS_API_DEFAULT_BASE_URL
	}
	return &NewsAPIClient{
		Client:  &http.Client{Timeout: timeout},
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (n *NewsAPIClient) Name() string { return "newsapi" }

// FetchNews searches every indexed article mentioning symbol. The article
// title is used as the headline.
func (n *NewsAPIClient) FetchNews(ctx context.Context, symbol string, window news.Window, limit int) ([]models.NewsItem, error) {
	if n.APIKey == "" {
		slog.Error("[NewsAPIClient] API key is missing")
		return nil, errors.New("[NewsAPIClient] API key is missing")
	}

	if limit <= 0 || limit > NEWS_API_MAX_PAGE_SIZE {
		limit = NEWS_API_MAX_PAGE_SIZE
	}
	query := url.Values{}
	query.Set("q", symbol)
	query.Set("from", window.StartDate())
	query.Set("to", window.EndDate())
	query.Set("language", "en")
	query.Set("sortBy", "publishedAt")
	query.Set("pageSize", strconv.Itoa(limit))
	query.Set("apiKey", n.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.BaseURL+NEWS_API_EVERYTHING_PATH+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", USER_AGENT)

	slog.Debug("[NewsAPIClient] Fetching articles", slog.String("symbol", symbol))
	res, err := n.Client.Do(req)
	if err != nil {
		slog.Error("[NewsAPIClient] Request failed", slog.String("error", err.Error()))
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		slog.Error("[NewsAPIClient] Failed to read response body", slog.String("error", err.Error()))
		return nil, err
	}

	var response models.NewsAPIEverythingResponse
	switch res.StatusCode {
	case http.StatusOK:
		if err := json.Unmarshal(body, &response); err != nil {
			slog.Error("[NewsAPIClient] Failed to parse JSON response", slog.String("error", err.Error()))
			return nil, err
		}
	case http.StatusBadRequest:
		slog.Warn("[NewsAPIClient] Bad request: check query parameters")
		return nil, fmt.Errorf("[NewsAPIClient] Bad request: %s", apiMessage(body))
	case http.StatusUnauthorized:
		slog.Error("[NewsAPIClient] Invalid API Key, check credentials")
		return nil, errors.New("[NewsAPIClient] Invalid API Key, check credentials")
	case http.StatusForbidden:
		slog.Error("[NewsAPIClient] Access forbidden, check API key permissions")
		return nil, errors.New("[NewsAPIClient] API key lacks required permissions")
	case http.StatusTooManyRequests:
		slog.Warn("[NewsAPIClient] Rate limit exceeded")
		return nil, errors.New("[NewsAPIClient] Rate limit exceeded")
	default:
		slog.Warn("[NewsAPIClient] Unexpected Response", slog.Int("statusCode", res.StatusCode))
		return nil, fmt.Errorf("[NewsAPIClient] Unexpected status code %d", res.StatusCode)
	}

	if response.Status != "ok" {
		return nil, fmt.Errorf("[NewsAPIClient] %s: %s", response.Code, response.Message)
	}

	items := make([]models.NewsItem, 0, len(response.Articles))
	for _, a := range response.Articles {
		if len(items) == limit {
			break
		}
		published, _ := time.Parse(time.RFC3339, a.PublishedAt)
		items = append(items, models.NewsItem{
			ID:          a.URL,
			Headline:    a.Title,
			Summary:     a.Description,
			Source:      a.Source.Name,
			URL:         a.URL,
			Symbols:     []string{symbol},
			PublishedAt: published,
		})
	}
	return items, nil
}

func apiMessage(body []byte) string {
	var e models.NewsAPIEverythingResponse
	if err := json.Unmarshal(body, &e); err != nil || e.Message == "" {
		return "check query parameters"
	}
	return e.Message
}
