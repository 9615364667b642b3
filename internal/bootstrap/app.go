package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"feedback-hub/internal/config"
	"feedback-hub/internal/model"
	mysqlClient "feedback-hub/internal/platform/mysql"
	rabbitmqClient "feedback-hub/internal/platform/rabbitmq"
	redisClient "feedback-hub/internal/platform/redis"
	sqliteClient "feedback-hub/internal/platform/sqlite"
	"feedback-hub/internal/repository"
	"feedback-hub/internal/worker"
)

// App holds the process-wide resources. Redis and MQConn are nil when
// disabled in config.
type App struct {
	Config      *config.Config
	Logger      *slog.Logger
	DB          *gorm.DB
	Redis       *redis.Client
	MQConn      *amqp.Connection
	EventWorker *worker.EventAuditWorker

	StartedAt time.Time
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	app := &App{
		Config:    cfg,
		Logger:    logger,
		StartedAt: time.Now(),
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.DB = db
	if err := Migrate(db); err != nil {
		_ = app.Close()
		return nil, err
	}

	if cfg.Redis.Enabled {
		redisCli, err := redisClient.New(ctx, cfg.Redis)
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		app.Redis = redisCli
	}

	if cfg.RabbitMQ.Enabled {
		mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		app.MQConn = mqConn

		eventRepo := repository.NewEventRepository(db)
		eventWorker := worker.NewEventAuditWorker(mqConn, eventRepo, cfg.RabbitMQ.EventQueue, logger)
		if err := eventWorker.Start(ctx); err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("start event worker failed: %w", err)
		}
		app.EventWorker = eventWorker
	}

	logger.Info("resources ready",
		"db_driver", cfg.Database.Driver,
		"redis", cfg.Redis.Enabled,
		"rabbitmq", cfg.RabbitMQ.Enabled,
	)
	return app, nil
}

func openDatabase(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		return sqliteClient.New(ctx, cfg.SQLite.Path)
	case config.DriverMySQL:
		return mysqlClient.New(ctx, cfg.MySQLDSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.FeedbackSource{},
		&model.FeedbackEntry{},
		&model.FeedbackTag{},
		&model.FeedbackEvent{},
	); err != nil {
		return fmt.Errorf("auto migrate tables failed: %w", err)
	}
	return nil
}

func (a *App) Close() error {
	var closeErr error
	if a.EventWorker != nil {
		a.EventWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
