package app

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/extlink/internal/config"
	"github.com/MrSnakeDoc/extlink/internal/kv"
	"github.com/MrSnakeDoc/extlink/internal/kv/file"
	kvredis "github.com/MrSnakeDoc/extlink/internal/kv/redis"
	"github.com/MrSnakeDoc/extlink/internal/kv/sqlite"
	"github.com/MrSnakeDoc/extlink/internal/logger"
	"github.com/MrSnakeDoc/extlink/internal/redis"
	"github.com/MrSnakeDoc/extlink/internal/utils"
)

// Backend is an opened kv store plus its lifecycle hooks.
type Backend struct {
	KV   kv.Store
	Kind string
	// Ping is nil for backends with nothing to check.
	Ping func(ctx context.Context) error

	closer interface{ Close() error }
	log    logger.Logger
}

// Close releases the backend's connections or handles.
func (b *Backend) Close() {
	utils.CloseLogged(b.closer, b.Kind+" store", b.log)
}

// OpenBackend opens the kv store selected by cfg.Store.
func OpenBackend(cfg *config.Config, log logger.Logger) (*Backend, error) {
	b := &Backend{Kind: cfg.Store, log: log}

	switch cfg.Store {
	case config.StoreMemory:
		log.Warn("using in-memory store, state is lost on exit")
		b.KV = kv.NewMemory()

	case config.StoreFile:
		s, err := file.New(cfg.StorePath, file.WithLogger(log))
		if err != nil {
			return nil, err
		}
		log.Info("using file store", logger.String("path", s.Path()))
		b.KV = s

	case config.StoreSQLite:
		s, err := sqlite.New(cfg.StorePath)
		if err != nil {
			return nil, err
		}
		log.Info("using sqlite store", logger.String("path", cfg.StorePath))
		b.KV, b.Ping, b.closer = s, s.Ping, s

	case config.StoreRedis:
		log.Info("connecting to redis", logger.String("addr", cfg.RedisAddr))
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		s := kvredis.NewStore(client, cfg.RedisPrefix)
		b.KV, b.Ping, b.closer = s, s.Ping, client

	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
	return b, nil
}
