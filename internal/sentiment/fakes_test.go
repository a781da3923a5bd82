package sentiment

import (
	"context"
	"errors"
	"time"

	"github.com/spacesedan/stockpulse/internal/models"
)

// scriptedClassifier answers from a map keyed by text and counts calls.
type scriptedClassifier struct {
	results map[string]models.SentimentResult
	errs    map[string]error
	calls   int
}

func (s *scriptedClassifier) Name() string { return "scripted" }

func (s *scriptedClassifier) Classify(_ context.Context, text string) (models.SentimentResult, error) {
	s.calls++
	if err, ok := s.errs[text]; ok {
		return models.SentimentResult{}, err
	}
	r, ok := s.results[text]
	if !ok {
		return models.SentimentResult{}, errors.New("no scripted result for " + text)
	}
	return r, nil
}

type memoryCache struct {
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) Get(_ context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func positive(score float64) models.SentimentResult {
	return models.SentimentResult{Label: models.LabelPositive, Score: score}
}

func negative(score float64) models.SentimentResult {
	return models.SentimentResult{Label: models.LabelNegative, Score: score}
}
