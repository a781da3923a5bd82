package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"github.com/spacesedan/stockpulse/internal/analysis"
	"github.com/spacesedan/stockpulse/internal/models"
)

type StockAnalyzer interface {
	Analyze(ctx context.Context, symbols []string) (*models.ResultMapping, error)
}

type Handler struct {
	analyzer   StockAnalyzer
	classifier string
	healthy    *atomic.Bool
}

// NewHandler wires the HTTP surface to analyzer. healthy is written by the
// classifier health monitor; nil means always healthy.
func NewHandler(analyzer StockAnalyzer, classifier string, healthy *atomic.Bool) *Handler {
	if healthy == nil {
		healthy = &atomic.Bool{}
		healthy.Store(true)
	}
	return &Handler{analyzer: analyzer, classifier: classifier, healthy: healthy}
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Sentiment Analysis Service : Online"})
}

// StockList analyzes the comma separated symbols in list_stock and answers
// with the symbols that cleared the threshold.
func (h *Handler) StockList(c *gin.Context) {
	raw, ok := c.GetQuery("list_stock")
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "query parameter 'list_stock' is required"})
		return
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), analysis.ParseSymbols(raw))
	if err != nil {
		slog.Error("[Handler] Stock list analysis failed",
			slog.String("request_id", c.GetString(requestIDKey)),
			slog.String("error", err.Error()))
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) SentimentGraph(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"detail": "sentiment graph is not yet available"})
}

func (h *Handler) Health(c *gin.Context) {
	if !h.healthy.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "classifier": h.classifier})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "classifier": h.classifier})
}
