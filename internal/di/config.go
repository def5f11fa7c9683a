package di

import (
	"go.uber.org/fx"

	"github.com/politreg/deputy-portal/internal/config"
)

// ConfigModule provides configuration dependencies
var ConfigModule = fx.Module("config",
	fx.Provide(
		config.Load,
		provideAppConfig,
		provideServerConfig,
		provideDatabaseConfig,
		provideRedisConfig,
		provideJWTConfig,
		provideTelegramConfig,
		provideRelayConfig,
		provideReportsConfig,
	),
)

func provideAppConfig(cfg *config.Config) *config.AppConfig {
	return &cfg.App
}

func provideServerConfig(cfg *config.Config) *config.ServerConfig {
	return &cfg.Server
}

func provideDatabaseConfig(cfg *config.Config) *config.DatabaseConfig {
	return &cfg.Database
}

func provideRedisConfig(cfg *config.Config) *config.RedisConfig {
	return &cfg.Redis
}

func provideJWTConfig(cfg *config.Config) *config.JWTConfig {
	return &cfg.JWT
}

func provideTelegramConfig(cfg *config.Config) *config.TelegramConfig {
	return &cfg.Telegram
}

func provideRelayConfig(cfg *config.Config) *config.RelayConfig {
	return &cfg.Relay
}

func provideReportsConfig(cfg *config.Config) *config.ReportsConfig {
	return &cfg.Reports
}
