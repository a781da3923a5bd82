package models

type ClassificationRequest struct {
	Inputs  string                `json:"inputs"`
	Options ClassificationOptions `json:"options"`
}

type ClassificationOptions struct {
	WaitForModel bool `json:"wait_for_model"`
	UseCache     bool `json:"use_cache"`
}

// The inference API answers a single input with either a flat list of
// label scores or a list holding one such list.
type (
	ClassificationResponse []ClassificationScore
	ClassificationScore    struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
)

type InferenceError struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time,omitempty"`
}
