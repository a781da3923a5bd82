package models

import (
	"fmt"
	"strings"
)

type Label string

const (
	LabelPositive Label = "POSITIVE"
	LabelNegative Label = "NEGATIVE"
)

// ParseLabel upper-cases raw and accepts only POSITIVE or NEGATIVE.
func ParseLabel(raw string) (Label, error) {
	switch l := Label(strings.ToUpper(strings.TrimSpace(raw))); l {
	case LabelPositive, LabelNegative:
		return l, nil
	default:
		return "", fmt.Errorf("unknown sentiment label %q", raw)
	}
}

// SentimentResult is the classifier output for one headline.
type SentimentResult struct {
	Label Label   `json:"label"`
	Score float64 `json:"score"`
}

// StockDecision is reported for a symbol whose average positive score
// cleared the reporting threshold.
type StockDecision struct {
	Label Label   `json:"label"`
	Score float64 `json:"score"`
}
