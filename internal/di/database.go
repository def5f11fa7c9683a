package di

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/politreg/deputy-portal/internal/config"
	"github.com/politreg/deputy-portal/internal/domain/entity"
)

// ReportStore wraps the Mongo database holding the PDF render log.
type ReportStore struct {
	DB     *mongo.Database
	Client *mongo.Client
}

// DatabaseModule provides database dependencies based on config
var DatabaseModule = fx.Module("database",
	fx.Provide(
		provideGormDB,
		provideRedisClient,
		provideReportStore,
	),
	fx.Invoke(runMigrations),
)

// provideGormDB creates the GORM connection for the relational store.
func provideGormDB(lc fx.Lifecycle, cfg *config.DatabaseConfig, logger *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case string(config.DriverMySQL):
		dialector = mysql.Open(cfg.DSN())
	case string(config.DriverPostgres):
		dialector = postgres.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported SQL driver: %s", cfg.Driver)
	}

	logger.Info("Connecting to SQL database",
		zap.String("driver", cfg.Driver),
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
	)

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing SQL database connection")
			return sqlDB.Close()
		},
	})

	return db, nil
}

// provideRedisClient creates the Redis connection carrying the relay queue.
func provideRedisClient(lc fx.Lifecycle, cfg *config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("failed to connect to Redis: %w", err)
			}
			logger.Info("Connected to Redis", zap.String("addr", cfg.RedisAddr()))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing Redis connection")
			return client.Close()
		},
	})

	return client, nil
}

// provideReportStore creates the MongoDB connection for the render log.
func provideReportStore(lc fx.Lifecycle, cfg *config.ReportsConfig, logger *zap.Logger) (*ReportStore, error) {
	logger.Info("Connecting to MongoDB",
		zap.String("uri", cfg.MongoURI),
		zap.String("database", cfg.MongoDB),
	)

	clientOpts := options.Client().ApplyURI(cfg.MongoURI)
	client, err := mongo.Connect(context.Background(), clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing MongoDB connection")
			return client.Disconnect(ctx)
		},
	})

	return &ReportStore{DB: client.Database(cfg.MongoDB), Client: client}, nil
}

// runMigrations brings the relational schema up to date.
func runMigrations(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running SQL database migrations")
	return db.AutoMigrate(
		&entity.User{},
		&entity.RefreshToken{},
		&entity.RegistrationForm{},
		&entity.OtherLink{},
		&entity.Education{},
		&entity.WorkExperience{},
		&entity.ForeignLanguage{},
		&entity.NativeLanguage{},
		&entity.SocialOrganization{},
		&entity.ReportPeriod{},
		&entity.ReportTemplate{},
		&entity.RegionReport{},
		&entity.DeputyRecord{},
		&entity.ReportRecord{},
	)
}
