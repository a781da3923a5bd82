package transformers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/spacesedan/stockpulse/internal/models"
	"github.com/spacesedan/stockpulse/internal/sentiment"
)

const hugotPipelineName = "stockpulse-sentiment"

// HugotClassifier runs a local ONNX text-classification model through
// onnxruntime. The session is created once and shared by all requests.
type HugotClassifier struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
	model    string
	mu       sync.Mutex
}

// NewHugotClassifier loads modelName from modelDir, downloading the pinned
// revision first when the directory is missing.
func NewHugotClassifier(modelName, revision, modelDir string) (*HugotClassifier, error) {
	modelPath, err := ensureModel(modelName, revision, modelDir)
	if err != nil {
		return nil, err
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	start := time.Now()
	pipeline, err := hugot.NewPipeline(session, hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      hugotPipelineName,
	})
	if err != nil {
		_ = session.Destroy()
		return nil, fmt.Errorf("failed to load text classification pipeline: %w", err)
	}

	slog.Info("[HugotClassifier] Pipeline loaded",
		slog.String("model", modelName),
		slog.String("revision", revision),
		slog.String("path", modelPath),
		slog.Duration("elapsed", time.Since(start)))

	return &HugotClassifier{session: session, pipeline: pipeline, model: modelName}, nil
}

func (h *HugotClassifier) Name() string { return "hugot" }

// Classify returns the highest scoring label for text.
func (h *HugotClassifier) Classify(_ context.Context, text string) (models.SentimentResult, error) {
	h.mu.Lock()
	out, err := h.pipeline.RunPipeline([]string{text})
	h.mu.Unlock()
	if err != nil {
		return models.SentimentResult{}, &sentiment.ClassifierError{Classifier: h.Name(), Err: err}
	}
	if len(out.ClassificationOutputs) == 0 || len(out.ClassificationOutputs[0]) == 0 {
		return models.SentimentResult{}, &sentiment.ClassifierError{Classifier: h.Name(), Err: errors.New("empty pipeline output")}
	}

	best := out.ClassificationOutputs[0][0]
	for _, c := range out.ClassificationOutputs[0][1:] {
		if c.Score > best.Score {
			best = c
		}
	}

	label, err := models.ParseLabel(best.Label)
	if err != nil {
		return models.SentimentResult{}, &sentiment.ClassifierError{Classifier: h.Name(), Err: err}
	}
	return models.SentimentResult{Label: label, Score: float64(best.Score)}, nil
}

func (h *HugotClassifier) Ping(ctx context.Context) error {
	_, err := h.Classify(ctx, "ok")
	return err
}

func (h *HugotClassifier) Close() error {
	return h.session.Destroy()
}

func ensureModel(modelName, revision, modelDir string) (string, error) {
	modelPath := filepath.Join(modelDir, strings.ReplaceAll(modelName, "/", "_"))
	if _, err := os.Stat(modelPath); err == nil {
		return modelPath, nil
	}

	slog.Info("[HugotClassifier] Downloading model",
		slog.String("model", modelName),
		slog.String("revision", revision),
		slog.String("dir", modelDir))

	opts := hugot.NewDownloadOptions()
	if revision != "" {
		opts.Branch = revision
	}
	path, err := hugot.DownloadModel(modelName, modelDir, opts)
	if err != nil {
		return "", fmt.Errorf("failed to download model %s@%s: %w", modelName, revision, err)
	}
	return path, nil
}
