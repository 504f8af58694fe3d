package bootstrap

import (
	"context"
	"log/slog"

	"slot-swapper/internal/pkg/config"
	"slot-swapper/internal/usecase/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Invoke(StartReaper),
)

// StartReaper schedules expiry of stale PENDING swap requests. It is a no-op
// when SWAP_PENDING_TTL is zero.
func StartReaper(lc fx.Lifecycle, cfg config.Config, swaps commands.SwapCommands, logger *slog.Logger) error {
	if cfg.Swap.PendingTTL <= 0 {
		logger.Info("swap reaper disabled")
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(cfg.Swap.ReaperSchedule, func() {
		n, err := swaps.ExpireStale(ctx, cfg.Swap.PendingTTL)
		if err != nil {
			logger.Error("swap reaper run failed", "error", err.Error())
			return
		}
		if n > 0 {
			logger.Info("expired stale swap requests", "count", n)
		}
	})
	if err != nil {
		cancel()
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			c.Start()
			logger.Info("swap reaper started", "schedule", cfg.Swap.ReaperSchedule, "ttl", cfg.Swap.PendingTTL.String())
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-c.Stop().Done():
			case <-stopCtx.Done():
			}
			return nil
		},
	})
	return nil
}
