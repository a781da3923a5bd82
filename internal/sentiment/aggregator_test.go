package sentiment

import (
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/spacesedan/stockpulse/internal/models"
)

func TestAggregateReportsMeanAboveThreshold(t *testing.T) {
	decision, ok := NewAggregator(DefaultThreshold).Aggregate([]models.SentimentResult{
		positive(0.995),
		positive(0.999),
	})

	assert.Equal(t, true, ok)
	assert.Equal(t, models.LabelPositive, decision.Label)
	assert.Equal(t, (0.995+0.999)/2, decision.Score)
}

func TestAggregateIgnoresNegative(t *testing.T) {
	decision, ok := NewAggregator(DefaultThreshold).Aggregate([]models.SentimentResult{
		negative(0.95),
		positive(0.999),
		negative(0.999),
	})

	assert.Equal(t, true, ok)
	assert.Equal(t, 0.999, decision.Score)
}

func TestAggregateThresholdIsStrict(t *testing.T) {
	_, ok := NewAggregator(0.99).Aggregate([]models.SentimentResult{positive(0.99)})
	assert.Equal(t, false, ok)

	_, ok = NewAggregator(0.99).Aggregate([]models.SentimentResult{positive(0.91), positive(0.92)})
	assert.Equal(t, false, ok)
}

func TestAggregateNoPositive(t *testing.T) {
	_, ok := NewAggregator(DefaultThreshold).Aggregate(nil)
	assert.Equal(t, false, ok)

	_, ok = NewAggregator(0).Aggregate([]models.SentimentResult{negative(0.95), negative(0.99)})
	assert.Equal(t, false, ok)
}

func TestAggregateCustomThreshold(t *testing.T) {
	decision, ok := NewAggregator(0.9).Aggregate([]models.SentimentResult{positive(0.91), positive(0.92)})

	assert.Equal(t, true, ok)
	assert.Equal(t, (0.91+0.92)/2, decision.Score)
}
