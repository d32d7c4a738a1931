package notification

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/smallbiznis/dentalpay/internal/config"
	salarydomain "github.com/smallbiznis/dentalpay/internal/salary/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("notification",
	fx.Provide(NewConfig),
	fx.Provide(NewQueue),
	fx.Provide(NewWorker),
	fx.Provide(NewSweeper),
	fx.Provide(
		fx.Annotate(NewDispatcher, fx.As(new(salarydomain.Notifier))),
	),
	fx.Invoke(registerLifecycle),
)

// NewQueue selects the queue backend from NOTIFY_QUEUE.
func NewQueue(lc fx.Lifecycle, cfg Config, appCfg config.Config, log *zap.Logger) (Queue, error) {
	if cfg.Queue != config.QueueRedis {
		return NewMemoryQueue(cfg.QueueSize), nil
	}
	if appCfg.Redis.Addr == "" {
		return nil, fmt.Errorf("notification queue %q requires REDIS_ADDR", cfg.Queue)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     appCfg.Redis.Addr,
		Password: appCfg.Redis.Password,
		DB:       appCfg.Redis.DB,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis ping failed: %w", err)
			}
			log.Info("notification queue connected", zap.String("addr", appCfg.Redis.Addr))
			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return NewRedisQueue(client), nil
}

func registerLifecycle(lc fx.Lifecycle, worker *Worker, sweeper *Sweeper) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			worker.Start(ctx)
			return sweeper.Start()
		},
		OnStop: func(ctx context.Context) error {
			sweepErr := sweeper.Stop(ctx)
			if err := worker.Stop(ctx); err != nil {
				return err
			}
			return sweepErr
		},
	})
}
