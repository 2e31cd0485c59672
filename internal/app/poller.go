package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/five82/postdeck/internal/state"
)

const (
	defaultProbeInterval = 15 * time.Second
	maxBackoff           = 30 * time.Second
)

// Prober checks API reachability.
type Prober interface {
	Ping(ctx context.Context) error
	BreakerState() string
}

// StartHealthProbe launches a background goroutine that probes the API and
// records each outcome in health. Consecutive failures back off
// exponentially up to maxBackoff. It returns immediately.
func StartHealthProbe(ctx context.Context, health *state.Health, prober Prober, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = defaultProbeInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	go func() {
		failures := 0
		for {
			if err := probe(ctx, health, prober, logger); err != nil {
				failures++
			} else {
				failures = 0
			}

			timer := time.NewTimer(calculateBackoff(failures, interval))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

func probe(ctx context.Context, health *state.Health, prober Prober, logger *slog.Logger) error {
	err := prober.Ping(ctx)
	if ctx.Err() != nil {
		return nil
	}
	health.Record(err, prober.BreakerState())
	if err != nil {
		logger.Warn("health probe failed",
			slog.Any("error", err),
			slog.String("breaker", prober.BreakerState()))
	}
	return err
}

// calculateBackoff doubles base once per consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for range failures {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
