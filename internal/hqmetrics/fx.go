package hqmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/smallbiznis/pos/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Registry holds the branch sales series pushed to head office.
type Registry struct {
	*prometheus.Registry
}

var Module = fx.Module("hq.metrics",
	fx.Provide(func() *Registry {
		return &Registry{Registry: prometheus.NewRegistry()}
	}),
	fx.Provide(NewPusher),
	fx.Provide(NewRecorder),
	fx.Invoke(registerWorker),
)

// NewRecorder returns a live recorder only when HQ reporting is enabled.
func NewRecorder(cfg config.Config, registry *Registry) Recorder {
	if !cfg.HQMetrics.Enabled {
		return NoopRecorder()
	}
	return newRecorder(registry.Registry)
}

func registerWorker(lc fx.Lifecycle, cfg config.Config, registry *Registry, pusher Pusher, logger *zap.Logger) {
	if pusher == nil {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("hqmetrics")

	interval := cfg.HQMetrics.PushInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			logger.Info("starting hq metrics worker", zap.Duration("interval", interval))
			go func() {
				defer close(done)
				ticker := time.NewTicker(interval)
				defer ticker.Stop()

				for {
					select {
					case <-ticker.C:
						pushOnce(ctx, pusher, registry.Registry, logger)
					case <-ctx.Done():
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
			// Flush what was sold since the last tick.
			pushOnce(stopCtx, pusher, registry.Registry, logger)
			logger.Info("stopped hq metrics worker")
			return nil
		},
	})
}

func pushOnce(ctx context.Context, pusher Pusher, registry *prometheus.Registry, logger *zap.Logger) {
	pushCtx, cancel := context.WithTimeout(ctx, defaultPushTimeout)
	defer cancel()
	if err := pusher.Push(pushCtx, registry); err != nil {
		logger.Warn("hq metrics push failed", zap.Error(err))
	}
}
