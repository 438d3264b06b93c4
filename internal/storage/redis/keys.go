package redis

import (
	"context"
	"log/slog"
	"time"

	"cko-gateway/internal/config"
	"cko-gateway/pkg/e"

	"github.com/redis/go-redis/v9"
)

const keySetName = "cko:idempotency-keys"

// KeyStore keeps the committed-idempotency-key set in redis, so keys
// survive a restart of the gateway process.
type KeyStore struct {
	client *redis.Client
	logger *slog.Logger
}

func NewKeyStore(cfg *config.RedisConfig, logger *slog.Logger) (*KeyStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addrs[0],
		Password: cfg.Password,
		DB:       cfg.DBRedis,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, e.Wrap("redis.NewKeyStore", err)
	}

	logger.Info("connected to redis", slog.String("addr", cfg.Addrs[0]))

	return &KeyStore{client: client, logger: logger}, nil
}

func (s *KeyStore) Contains(ctx context.Context, key string) (bool, error) {
	used, err := s.client.SIsMember(ctx, keySetName, key).Result()
	if err != nil {
		return false, e.Wrap("redis.Contains", err)
	}
	return used, nil
}

func (s *KeyStore) Add(ctx context.Context, key string) error {
	if err := s.client.SAdd(ctx, keySetName, key).Err(); err != nil {
		return e.Wrap("redis.Add", err)
	}
	return nil
}

func (s *KeyStore) Close() error {
	return s.client.Close()
}
