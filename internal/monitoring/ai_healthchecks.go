package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/spacesedan/stockpulse/internal/sentiment"
)

const DEFAULT_HEALTHCHECK_INTERVAL = 15 * time.Second

// MonitorClassifierHealth pings the classifier once immediately and then on
// every tick, storing the outcome in healthy until ctx is done.
func MonitorClassifierHealth(ctx context.Context, pinger sentiment.Pinger, healthy *atomic.Bool, interval time.Duration) {
	if interval <= 0 {
		interval = DEFAULT_HEALTHCHECK_INTERVAL
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	check(ctx, pinger, healthy, interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check(ctx, pinger, healthy, interval)
		}
	}
}

func check(ctx context.Context, pinger sentiment.Pinger, healthy *atomic.Bool, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := pinger.Ping(ctx)
	wasHealthy := healthy.Swap(err == nil)
	if err != nil {
		slog.Warn("[HealthCheck] Classifier is unhealthy", slog.String("error", err.Error()))
		return
	}
	if !wasHealthy {
		slog.Info("[HealthCheck] Classifier is healthy")
	}
}
