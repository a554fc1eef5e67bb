package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/homestead/backend/internal/config"
	"github.com/homestead/backend/internal/repository"
	"github.com/homestead/backend/internal/repository/memstore"
	"github.com/homestead/backend/internal/repository/mongostore"
	"github.com/homestead/backend/pkg/auth"
	"github.com/redis/go-redis/v9"
)

// stores は STORE_DRIVER に応じて組み立てたリポジトリ群
type stores struct {
	db        repository.DB
	listings  repository.ListingRepository
	agents    repository.AgentRepository
	leads     repository.LeadRepository
	users     repository.UserRepository
	saved     repository.SavedRepository
	amenities repository.AmenityRepository
	close     func()
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return &stores{
			db:        pool,
			listings:  repository.NewPgListingRepository(pool),
			agents:    repository.NewPgAgentRepository(pool),
			leads:     repository.NewPgLeadRepository(pool),
			users:     repository.NewPgUserRepository(pool),
			saved:     repository.NewPgSavedRepository(pool),
			amenities: repository.NewPgAmenityRepository(pool),
			close:     pool.Close,
		}, nil

	case config.DriverMongo:
		client, err := mongostore.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		ms := mongostore.New(client.Database(cfg.MongoDatabase))
		if err := ms.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("ensure indexes: %w", err)
		}
		return &stores{
			db:        ms,
			listings:  ms.Listings(),
			agents:    ms.Agents(),
			leads:     ms.Leads(),
			users:     ms.Users(),
			saved:     ms.Saved(),
			amenities: ms.Amenities(),
			close: func() {
				if err := client.Disconnect(context.Background()); err != nil {
					slog.Warn("mongo disconnect failed", "error", err)
				}
			},
		}, nil

	case config.DriverMemory:
		slog.Warn("using in-memory store; data is lost on restart")
		mem := memstore.New()
		return &stores{
			db:        mem,
			listings:  mem.Listings(),
			agents:    mem.Agents(),
			leads:     mem.Leads(),
			users:     mem.Users(),
			saved:     mem.Saved(),
			amenities: mem.Amenities(),
			close:     func() {},
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// openMetadataStore は REDIS_ADDR があれば Redis、なければメモリの MetadataStore を返す
func openMetadataStore(ctx context.Context, cfg *config.Config) (auth.MetadataStore, func(), error) {
	if cfg.RedisAddr == "" {
		slog.Warn("REDIS_ADDR not set; identity metadata is kept in memory")
		return auth.NewMemoryMetadataStore(), func() {}, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	return auth.NewRedisMetadataStore(client), func() { _ = client.Close() }, nil
}
