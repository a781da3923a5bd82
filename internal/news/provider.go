package news

import (
	"context"

	"github.com/spacesedan/stockpulse/internal/models"
)

// NewsProvider fetches up to limit news items about symbol published within
// window, in the provider's own order.
type NewsProvider interface {
	FetchNews(ctx context.Context, symbol string, window Window, limit int) ([]models.NewsItem, error)
	Name() string
}
