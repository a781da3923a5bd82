package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spacesedan/stockpulse/config"
	"github.com/spacesedan/stockpulse/internal/analysis"
	"github.com/spacesedan/stockpulse/internal/clients"
	"github.com/spacesedan/stockpulse/internal/logging"
	"github.com/spacesedan/stockpulse/internal/monitoring"
	"github.com/spacesedan/stockpulse/internal/news"
	"github.com/spacesedan/stockpulse/internal/sentiment"
	"github.com/spacesedan/stockpulse/internal/server"
	"github.com/spacesedan/stockpulse/internal/tracing"
	"github.com/spacesedan/stockpulse/internal/transformers"
)

func main() {
	config.LoadEnv(config.AppEnv())

	cfg, err := config.Load()
	if err != nil {
		logging.InitLogger("INFO")
		slog.Error("[Main] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel)

	if err := tracing.Init(cfg.TracingEnabled); err != nil {
		slog.Warn("[Main] Tracing disabled", slog.String("error", err.Error()))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	classifier, closeClassifier, err := newClassifier(ctx, cfg)
	if err != nil {
		slog.Error("[Main] Failed to load classifier", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeClassifier()

	analyzer := analysis.NewAnalyzer(
		news.NewFetcher(newProvider(cfg), cfg.News.Limit),
		sentiment.NewScorer(classifier),
		sentiment.NewAggregator(cfg.ScoreThreshold),
		analysis.WithPolicy(analysis.ParsePolicy(cfg.SymbolErrorPolicy)),
		analysis.WithReportWriter(os.Stdout),
	)

	healthy := &atomic.Bool{}
	healthy.Store(true)
	if pinger, ok := classifier.(sentiment.Pinger); ok {
		go monitoring.MonitorClassifierHealth(ctx, pinger, healthy, cfg.Classifier.HealthCheckInterval)
	}

	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.NewRouter(server.NewHandler(analyzer, classifier.Name(), healthy), cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("[Main] Listening",
			slog.String("addr", srv.Addr),
			slog.String("env", cfg.Env),
			slog.String("provider", cfg.News.Provider),
			slog.String("classifier", classifier.Name()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] Server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("[Main] Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Main] Graceful shutdown failed", slog.String("error", err.Error()))
	}
	if err := tracing.Shutdown(shutdownCtx); err != nil {
		slog.Warn("[Main] Tracer shutdown failed", slog.String("error", err.Error()))
	}
}

func newProvider(cfg *config.Config) news.NewsProvider {
	switch cfg.News.Provider {
	case config.ProviderFinnhub:
		return clients.NewFinnhubNewsClient(cfg.News.FinnhubKey, "", cfg.News.OutboundTimeout)
	case config.ProviderNewsAPI:
		return clients.NewNewsAPIClient(cfg.News.NewsAPIKey, cfg.News.NewsAPIBaseURL, cfg.News.OutboundTimeout)
	default:
		return clients.NewAlpacaNewsClient(cfg.News.AlpacaKey, cfg.News.AlpacaSecret, cfg.News.AlpacaBaseURL, cfg.News.OutboundTimeout)
	}
}

// newClassifier builds the configured backend, wrapped in the Valkey cache
// when an address is set. The returned func releases what was opened.
func newClassifier(ctx context.Context, cfg *config.Config) (sentiment.SentimentClassifier, func(), error) {
	var classifier sentiment.SentimentClassifier
	closers := []func(){}

	switch cfg.Classifier.Backend {
	case config.ClassifierHuggingFace:
		classifier = clients.NewHuggingFaceClient(cfg.Classifier.HFInferenceURL, cfg.Classifier.ModelName, cfg.Classifier.HFToken, cfg.News.OutboundTimeout)
	case config.ClassifierVader:
		classifier = sentiment.NewVaderClassifier()
	default:
		h, err := transformers.NewHugotClassifier(cfg.Classifier.ModelName, cfg.Classifier.ModelRevision, cfg.Classifier.ModelDir)
		if err != nil {
			return nil, nil, err
		}
		classifier = h
		closers = append(closers, func() {
			if err := h.Close(); err != nil {
				slog.Warn("[Main] Failed to close hugot session", slog.String("error", err.Error()))
			}
		})
	}

	if cfg.Cache.Address != "" {
		vc, err := clients.NewValkeyClient(ctx, cfg.Cache.Address, cfg.Cache.Password, cfg.Cache.TLS)
		if err != nil {
			slog.Warn("[Main] Classification cache disabled", slog.String("error", err.Error()))
		} else {
			classifier = sentiment.NewCachedClassifier(classifier, vc, cfg.Classifier.ModelName, cfg.Classifier.ModelRevision, cfg.Cache.TTL)
			closers = append(closers, vc.Close)
		}
	}

	return classifier, func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}, nil
}
