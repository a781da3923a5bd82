package monitoring

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

type flakyPinger struct {
	failing atomic.Bool
	pings   atomic.Int32
}

func (f *flakyPinger) Ping(context.Context) error {
	f.pings.Add(1)
	if f.failing.Load() {
		return errors.New("model unavailable")
	}
	return nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestMonitorClassifierHealthTracksPings(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pinger := &flakyPinger{}
	pinger.failing.Store(true)
	var healthy atomic.Bool
	healthy.Store(true)

	done := make(chan struct{})
	go func() {
		MonitorClassifierHealth(ctx, pinger, &healthy, 10*time.Millisecond)
		close(done)
	}()

	waitFor(t, func() bool { return !healthy.Load() })

	pinger.failing.Store(false)
	waitFor(t, func() bool { return healthy.Load() })

	cancel()
	<-done
	assert.Equal(t, true, pinger.pings.Load() >= 2)
}
