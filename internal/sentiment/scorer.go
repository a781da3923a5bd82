package sentiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spacesedan/stockpulse/internal/models"
	"github.com/spacesedan/stockpulse/internal/tracing"
)

// ConfidenceFilter is the minimum confidence a classification needs to
// reach the aggregator.
const ConfidenceFilter = 0.9

type Scorer struct {
	classifier    SentimentClassifier
	minConfidence float64
}

func NewScorer(classifier SentimentClassifier) *Scorer {
	return &Scorer{classifier: classifier, minConfidence: ConfidenceFilter}
}

// Score classifies each headline once and keeps the results whose
// confidence is at least ConfidenceFilter. The first classifier failure
// stops scoring.
func (s *Scorer) Score(ctx context.Context, headlines []string) ([]models.SentimentResult, error) {
	ctx, span := tracing.StartSpan(ctx, "sentiment.Score")
	defer span.End()

	kept := make([]models.SentimentResult, 0, len(headlines))
	for _, headline := range headlines {
		result, err := s.classifier.Classify(ctx, headline)
		if err == nil {
			result, err = normalize(result)
		}
		if err != nil {
			var cerr *ClassifierError
			if !errors.As(err, &cerr) {
				cerr = &ClassifierError{Classifier: s.classifier.Name(), Err: err}
			}
			slog.Error("[SentimentScorer] Classification failed",
				slog.String("classifier", s.classifier.Name()),
				slog.String("error", err.Error()))
			tracing.RecordError(span, cerr)
			return nil, cerr
		}

		if result.Score < s.minConfidence {
			continue
		}
		kept = append(kept, result)
	}

	slog.Debug("[SentimentScorer] Scored headlines",
		slog.Int("headlines", len(headlines)),
		slog.Int("kept", len(kept)))
	return kept, nil
}

// normalize upper-cases the label and rejects confidences outside [0,1],
// NaN included.
func normalize(r models.SentimentResult) (models.SentimentResult, error) {
	label, err := models.ParseLabel(string(r.Label))
	if err != nil {
		return r, err
	}
	if !(r.Score >= 0 && r.Score <= 1) {
		return r, fmt.Errorf("confidence %v outside [0,1]", r.Score)
	}
	r.Label = label
	return r, nil
}
