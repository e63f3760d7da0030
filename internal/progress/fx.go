package progress

import (
	reconciledomain "github.com/campuslabs/feeflow/internal/reconcile/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("progress",
	fx.Provide(func(client *redis.Client, log *zap.Logger) reconciledomain.ProgressSink {
		return NewRedisSink(client, log)
	}),
)
