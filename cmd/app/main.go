package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"settlement/cmd"
	settlementhttp "settlement/internal/adapters/in/http"
	"settlement/internal/adapters/out/kafka"
	"settlement/internal/adapters/out/postgres/migrations"
	"settlement/internal/adapters/out/redis"
	"settlement/internal/core/ports"
	"settlement/internal/jobs"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("settlement service stopped", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		return err
	}

	if configs.DBMigrate {
		if err = migrations.Up(configs.PostgresURL()); err != nil {
			return err
		}
		logger.InfoContext(ctx, "database schema is up to date")
	}

	gormDB, err := gorm.Open(postgres.Open(configs.PostgresDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	publisher, closePublisher, err := newPublisher(configs, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	redisClient, err := redis.NewClient(ctx, configs.RedisOptions())
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	app, err := cmd.NewCompositionRoot(configs, gormDB, publisher, redis.NewDriverSuspensions(redisClient), logger)
	if err != nil {
		return err
	}

	jobManager := jobs.NewJobManager(app.CreateGetWithdrawalStatsQueryHandler(), configs.StatsJobSchedule, logger)
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return startWebServer(ctx, app, configs, logger)
}

func newPublisher(configs cmd.Config, logger *slog.Logger) (ports.EventPublisher, func(), error) {
	if !configs.KafkaEnabled {
		return kafka.NewLoggingPublisher(logger.With("component", "event_log")), func() {}, nil
	}

	producer, err := kafka.NewSyncProducer(configs.KafkaBrokers)
	if err != nil {
		return nil, nil, err
	}
	publisher := kafka.NewPublisher(producer, configs.KafkaTopic)
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Error("failed to close kafka producer", "error", err)
		}
	}, nil
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) error {
	document, err := settlementhttp.LoadDocument(ctx)
	if err != nil {
		return err
	}
	if err = settlementhttp.RegisterSwagger(document); err != nil {
		return err
	}

	server := settlementhttp.NewServer(app.Handlers(), app.Calculator())
	e := settlementhttp.NewEcho(server, settlementhttp.Options{
		JWTSecret: []byte(configs.JWTSecret),
		Document:  document,
		Logger:    logger.With("component", "http"),
	})

	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "http server started", "port", configs.HTTPPort)
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.InfoContext(shutdownCtx, "shutting down http server")
	return e.Shutdown(shutdownCtx)
}
