package sentiment

import "github.com/spacesedan/stockpulse/internal/models"

const DefaultThreshold = 0.99

// Aggregator averages the POSITIVE scores of one symbol and reports a
// decision only when the average is strictly above Threshold. NEGATIVE
// results never contribute.
type Aggregator struct {
	Threshold float64
}

func NewAggregator(threshold float64) Aggregator {
	return Aggregator{Threshold: threshold}
}

func (a Aggregator) Aggregate(results []models.SentimentResult) (models.StockDecision, bool) {
	var sum float64
	var count int
	for _, r := range results {
		if r.Label != models.LabelPositive {
			continue
		}
		sum += r.Score
		count++
	}
	if count == 0 {
		return models.StockDecision{}, false
	}

	average := sum / float64(count)
	if average <= a.Threshold {
		return models.StockDecision{}, false
	}
	return models.StockDecision{Label: models.LabelPositive, Score: average}, true
}
