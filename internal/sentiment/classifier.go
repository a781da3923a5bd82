package sentiment

import (
	"context"
	"fmt"

	"github.com/spacesedan/stockpulse/internal/models"
)

// SentimentClassifier labels one piece of text as POSITIVE or NEGATIVE with
// a confidence in [0,1].
type SentimentClassifier interface {
	Classify(ctx context.Context, text string) (models.SentimentResult, error)
	Name() string
}

// Pinger is implemented by classifiers that can report their own health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type ClassifierError struct {
	Classifier string
	Err        error
}

func (e *ClassifierError) Error() string {
	return fmt.Sprintf("sentiment classifier %s failed: %v", e.Classifier, e.Err)
}

func (e *ClassifierError) Unwrap() error {
	return e.Err
}
