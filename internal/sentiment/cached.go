package sentiment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spacesedan/stockpulse/internal/models"
)

// Cache is the key/value store behind CachedClassifier.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// CachedClassifier remembers classifications per model revision and
// headline. Cache failures are logged and fall through to the wrapped
// classifier.
type CachedClassifier struct {
	next   SentimentClassifier
	cache  Cache
	ttl    time.Duration
	prefix string
}

func NewCachedClassifier(next SentimentClassifier, cache Cache, model, revision string, ttl time.Duration) *CachedClassifier {
	return &CachedClassifier{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		prefix: fmt.Sprintf("stockpulse:sentiment:%s:%s@%s:", next.Name(), model, revision),
	}
}

func (c *CachedClassifier) Name() string { return c.next.Name() }

func (c *CachedClassifier) Classify(ctx context.Context, text string) (models.SentimentResult, error) {
	key := c.key(text)

	raw, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("[CachedClassifier] Cache read failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
	} else if ok {
		if result, err := decodeResult(raw); err == nil {
			return result, nil
		}
		slog.Warn("[CachedClassifier] Discarding malformed cache entry", slog.String("key", key))
	}

	result, err := c.next.Classify(ctx, text)
	if err != nil {
		return result, err
	}

	if err := c.cache.Set(ctx, key, encodeResult(result), c.ttl); err != nil {
		slog.Warn("[CachedClassifier] Cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
	return result, nil
}

// Ping forwards to the wrapped classifier when it supports health checks.
func (c *CachedClassifier) Ping(ctx context.Context) error {
	if p, ok := c.next.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (c *CachedClassifier) key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return c.prefix + hex.EncodeToString(sum[:])
}

func encodeResult(r models.SentimentResult) string {
	return string(r.Label) + "|" + strconv.FormatFloat(r.Score, 'g', -1, 64)
}

func decodeResult(raw string) (models.SentimentResult, error) {
	label, score, ok := strings.Cut(raw, "|")
	if !ok {
		return models.SentimentResult{}, fmt.Errorf("malformed cache entry %q", raw)
	}
	l, err := models.ParseLabel(label)
	if err != nil {
		return models.SentimentResult{}, err
	}
	s, err := strconv.ParseFloat(score, 64)
	if err != nil {
		return models.SentimentResult{}, err
	}
	return models.SentimentResult{Label: l, Score: s}, nil
}
