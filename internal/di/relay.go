package di

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/politreg/deputy-portal/internal/config"
	"github.com/politreg/deputy-portal/internal/relay"
	"github.com/politreg/deputy-portal/internal/relay/queue"
)

// RelayModule provides the calling side of the notification relay. The
// worker process owns the consuming side.
var RelayModule = fx.Module("relay",
	fx.Provide(
		provideRelayQueue,
		provideRelayClient,
	),
)

func provideRelayQueue(client *redis.Client) relay.Queue {
	return queue.NewRedisQueue(client)
}

func provideRelayClient(q relay.Queue, cfg *config.RelayConfig) relay.Client {
	return relay.NewClient(q, cfg.ResultWait, cfg.TaskTimeout)
}
