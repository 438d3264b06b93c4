package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"cko-gateway/internal/bank"
	"cko-gateway/internal/config"
	"cko-gateway/internal/idgen"
	"cko-gateway/internal/kafka"
	"cko-gateway/internal/ports"
	"cko-gateway/internal/ports/rest"
	"cko-gateway/internal/service"
	"cko-gateway/internal/storage/memory"
	"cko-gateway/internal/storage/pg"
	redisstore "cko-gateway/internal/storage/redis"
	"cko-gateway/pkg/logger"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

type Components struct {
	HttpServer *ports.Server
	// Postgres, Redis and KafkaProducer are nil when the corresponding
	// backend is not configured; the in-memory stores carry those roles.
	Postgres      *pg.Postgres
	Redis         *redisstore.KeyStore
	KafkaProducer *kafka.Producer
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	var store service.PaymentStore
	var postgres *pg.Postgres
	if cfg.Postgres.PostgresURL != "" {
		var err error
		postgres, err = pg.NewPostgres(ctx, logger, cfg.Postgres.PostgresURL)
		if err != nil {
			logger.Error("postgres error", "error", err.Error())
			return nil, fmt.Errorf("components.init.InitComponents.postgres failed: %w", err)
		}
		store = postgres
	} else {
		store = memory.NewStore()
	}

	var keys service.KeyStore
	var redisKeys *redisstore.KeyStore
	if len(cfg.Redis.Addrs) > 0 {
		var err error
		redisKeys, err = redisstore.NewKeyStore(&cfg.Redis, logger)
		if err != nil {
			logger.Error("redis error", "error", err.Error())
			return nil, fmt.Errorf("components.init.InitComponents.redis failed: %w", err)
		}
		keys = redisKeys
	} else {
		keys = memory.NewKeyStore()
	}

	var producer *kafka.Producer
	var events service.Publisher
	if len(cfg.Kafka.BrokerList) > 0 {
		var err error
		producer, err = kafka.NewProducer(cfg.Kafka, logger)
		if err != nil {
			logger.Error("kafka producer error", "error", err.Error())
			return nil, fmt.Errorf("components.init.InitComponents.kafkaProducer failed: %w", err)
		}
		events = producer
	}

	bankClient := bank.NewHTTPClient(cfg.Bank.BaseURL, cfg.Bank.ConnectTimeout, logger)

	paymentService := service.NewService(logger, store, service.NewGuard(keys), bankClient, idgen.New(), events)

	handler := rest.NewHandler(logger, paymentService)
	httpServer := ports.NewServer(ctx, cfg, logger, handler)

	return &Components{
		HttpServer:    httpServer,
		Postgres:      postgres,
		Redis:         redisKeys,
		KafkaProducer: producer,
	}, nil
}

func (c *Components) Shutdown() error {
	var errs []error

	if c.Postgres != nil {
		c.Postgres.CloseConnection()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis client: %w", err))
		}
	}
	if c.KafkaProducer != nil {
		if err := c.KafkaProducer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close kafka producer: %w", err))
		}
	}
	if err := c.HttpServer.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close Http Server: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}

	return nil
}

func SetupLogger(cfg config.Config) *slog.Logger {
	log := &slog.Logger{}

	switch cfg.Env {
	case envLocal:
		log = logger.SetupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
