package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/spacesedan/stockpulse/internal/models"
	"github.com/spacesedan/stockpulse/internal/sentiment"
)

const HF_INFERENCE_DEFAULT_URL = "https://api-inference.huggingface.co/models"

// HuggingFaceClient classifies text with the hosted inference API.
type HuggingFaceClient struct {
	Client   *http.Client
	Endpoint string
	Token    string
	Model    string
}

func NewHuggingFaceClient(baseURL, model, token string, timeout time.Duration) *HuggingFaceClient {
	if baseURL == "" {
		baseURL = HF_INFERENCE_DEFAULT_URL
	}
	slog.Info("[HuggingFaceClient] Initializing Client",
		slog.String("model", model),
		slog.Duration("timeout", timeout))

	return &HuggingFaceClient{
		Client:   &http.Client{Timeout: timeout},
		Endpoint: strings.TrimRight(baseURL, "/") + "/" + model,
		Token:    token,
		Model:    model,
	}
}

func (h *HuggingFaceClient) Name() string { return "huggingface" }

// Classify returns the highest scoring label the model assigns to text.
func (h *HuggingFaceClient) Classify(ctx context.Context, text string) (models.SentimentResult, error) {
	start := time.Now()
	scores, err := h.postJSON(ctx, models.ClassificationRequest{Inputs: text})
	if err != nil {
		slog.Error("[HuggingFaceClient] Sentiment Analysis request failed",
			slog.Duration("elapsed", time.Since(start)))
		return models.SentimentResult{}, &sentiment.ClassifierError{Classifier: h.Name(), Err: err}
	}
	if len(scores) == 0 {
		return models.SentimentResult{}, &sentiment.ClassifierError{Classifier: h.Name(), Err: errors.New("empty classification response")}
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	label, err := models.ParseLabel(best.Label)
	if err != nil {
		return models.SentimentResult{}, &sentiment.ClassifierError{Classifier: h.Name(), Err: err}
	}
	return models.SentimentResult{Label: label, Score: best.Score}, nil
}

func (h *HuggingFaceClient) Ping(ctx context.Context) error {
	_, err := h.Classify(ctx, "ok")
	return err
}

func (h *HuggingFaceClient) postJSON(ctx context.Context, input models.ClassificationRequest) (models.ClassificationResponse, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.Endpoint, bytes.NewReader(body))
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed to build request",
			slog.String("endpoint", h.Endpoint),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", USER_AGENT)
	if h.Token != "" {
		req.Header.Set("Authorization", "Bearer "+h.Token)
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		slog.Error("[HuggingFaceClient] Request failed",
			slog.String("endpoint", h.Endpoint),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr models.InferenceError
		_ = json.Unmarshal(respBody, &apiErr)
		if resp.StatusCode == http.StatusServiceUnavailable && apiErr.EstimatedTime > 0 {
			return nil, fmt.Errorf("model %s is loading, estimated %.0fs", h.Model, apiErr.EstimatedTime)
		}
		if apiErr.Error != "" {
			return nil, fmt.Errorf("status code %d: %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("status code %d", resp.StatusCode)
	}

	var nested []models.ClassificationResponse
	if err := json.Unmarshal(respBody, &nested); err == nil {
		if len(nested) == 0 {
			return nil, nil
		}
		return nested[0], nil
	}

	var flat models.ClassificationResponse
	if err := json.Unmarshal(respBody, &flat); err != nil {
		slog.Error("[HuggingFaceClient] Failed to unmarshal response",
			slog.String("endpoint", h.Endpoint),
			slog.String("error", err.Error()),
			getPreview(respBody),
			slog.Int("raw_response_length", len(respBody)))
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return flat, nil
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}
