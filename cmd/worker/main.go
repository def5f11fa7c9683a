package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/politreg/deputy-portal/internal/bot"
	"github.com/politreg/deputy-portal/internal/config"
	gormrepo "github.com/politreg/deputy-portal/internal/domain/repository/gorm"
	"github.com/politreg/deputy-portal/internal/domain/service"
	serviceimpl "github.com/politreg/deputy-portal/internal/domain/service/impl"
	"github.com/politreg/deputy-portal/internal/relay/handler"
	"github.com/politreg/deputy-portal/internal/relay/queue"
	"github.com/politreg/deputy-portal/internal/relay/worker"
	"github.com/politreg/deputy-portal/pkg/logger"
)

// The worker owns the only bot session. It drains the relay queue,
// answers /start and join requests, and keeps the current reporting
// period open.
func main() {
	cfg, log := mustLoadConfig()
	defer log.Sync()

	log.Info("Starting Deputy Portal Worker",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient := mustConnectRedis(ctx, cfg, log)
	defer redisClient.Close()

	db := mustConnectDB(cfg, log)
	users := gormrepo.NewUserRepository(db)
	reportService := serviceimpl.NewReportService(
		gormrepo.NewTxManager(db),
		gormrepo.NewReportRepository(db),
		users,
		log,
	)

	api := mustConnectBot(cfg, log)

	pool := setupRelayPool(redisClient, cfg, log)
	registry := handler.NewRegistry(pool, log)
	handler.NewTelegramHandlers(api, cfg.Telegram.ChannelID, log).RegisterAll(registry)

	if err := pool.Start(ctx); err != nil {
		log.Fatal("Failed to start relay worker pool", zap.Error(err))
	}

	portalBot := bot.New(api, users, bot.Config{
		FormBaseURL:   cfg.Telegram.FormBaseURL,
		ChannelID:     cfg.Telegram.ChannelID,
		UpdateTimeout: cfg.Telegram.UpdateTimeout,
	}, log)
	go func() {
		if err := portalBot.Run(ctx); err != nil && err != context.Canceled {
			log.Error("Bot polling stopped with error", zap.Error(err))
		}
	}()

	periodCron := startPeriodCron(ctx, reportService, log)
	defer periodCron.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutdown signal received, stopping worker...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := pool.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping relay worker pool", zap.Error(err))
	}
	log.Info("Worker shutdown complete")
}

func mustLoadConfig() (*config.Config, *zap.Logger) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: cfg.App.Debug,
		Encoding:    "json",
	})
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	return cfg, log
}

func mustConnectRedis(ctx context.Context, cfg *config.Config, log *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	log.Info("Connected to Redis", zap.String("addr", cfg.Redis.RedisAddr()))
	return client
}

func mustConnectDB(cfg *config.Config, log *zap.Logger) *gorm.DB {
	var dialector gorm.Dialector
	switch {
	case cfg.Database.IsMySQL():
		dialector = mysql.Open(cfg.Database.DSN())
	case cfg.Database.IsPostgres():
		dialector = postgres.Open(cfg.Database.DSN())
	default:
		log.Fatal("Unsupported database driver", zap.String("driver", cfg.Database.Driver))
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
	return db
}

func mustConnectBot(cfg *config.Config, log *zap.Logger) *tgbotapi.BotAPI {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Fatal("Failed to authorize bot", zap.Error(err))
	}
	log.Info("Bot authorized", zap.String("username", api.Self.UserName))
	return api
}

func setupRelayPool(redisClient *redis.Client, cfg *config.Config, log *zap.Logger) *worker.Pool {
	poolConfig := worker.DefaultPoolConfig()
	if cfg.Relay.Concurrency > 0 {
		poolConfig.Concurrency = cfg.Relay.Concurrency
	}
	if cfg.Relay.PollInterval > 0 {
		poolConfig.PollInterval = cfg.Relay.PollInterval
	}
	return worker.NewPool(queue.NewRedisQueue(redisClient), log, poolConfig)
}

// startPeriodCron makes sure a reporting period covering the current
// month exists, re-checking daily so the window rolls over on the 1st.
func startPeriodCron(ctx context.Context, reportService service.ReportService, log *zap.Logger) *cron.Cron {
	ensure := func() {
		period, err := reportService.EnsurePeriodFor(ctx, time.Now())
		if err != nil {
			log.Error("Failed to ensure reporting period", zap.Error(err))
			return
		}
		log.Info("Reporting period in place", zap.Uint("period_id", period.ID))
	}

	ensure()
	c := cron.New()
	if _, err := c.AddFunc("@daily", ensure); err != nil {
		log.Fatal("Failed to schedule period rollover", zap.Error(err))
	}
	c.Start()
	return c
}
