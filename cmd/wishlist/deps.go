package main

import (
	"context"
	"database/sql"

	goredis "github.com/redis/go-redis/v9"
	"github.com/samber/oops"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/wishlistapp/accounts/internal/api/handler"
	"github.com/wishlistapp/accounts/internal/core/ports"
	"github.com/wishlistapp/accounts/internal/infrastructure/config"
	"github.com/wishlistapp/accounts/internal/infrastructure/db/memory"
	"github.com/wishlistapp/accounts/internal/infrastructure/db/mongo"
	"github.com/wishlistapp/accounts/internal/infrastructure/db/postgres"
	"github.com/wishlistapp/accounts/internal/infrastructure/db/redis"
)

// stores holds the persistence adapters chosen by STORE_DRIVER plus the
// optional login throttle.
type stores struct {
	users    ports.UserRepository
	audit    ports.AuditRepository
	throttle ports.LoginThrottle
	checks   map[string]handler.Checker
	closers  []func(context.Context) error
}

func (s *stores) Close(ctx context.Context) {
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i](ctx)
	}
}

// openStores connects the configured account store and, when REDIS_ADDR is
// set, the login throttle.
func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	s := &stores{checks: make(map[string]handler.Checker)}

	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, oops.Code("DB_CONNECT_FAILED").With("driver", cfg.StoreDriver).Wrap(err)
		}
		s.closers = append(s.closers, client.Disconnect)
		if err := ensureMongoIndexes(ctx, db); err != nil {
			s.Close(ctx)
			return nil, err
		}
		s.users = mongo.NewUserRepository(db)
		s.audit = mongo.NewAuditRepository(db)
		s.checks["mongodb"] = mongo.NewPinger(db).Ping

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, oops.Code("DB_CONNECT_FAILED").With("driver", cfg.StoreDriver).Wrap(err)
		}
		s.closers = append(s.closers, closeSQL(db))
		s.users = postgres.NewUserRepository(db)
		s.audit = postgres.NewAuditRepository(db)
		s.checks["postgres"] = db.PingContext

	case config.DriverMemory:
		users := memory.NewUserRepository()
		s.users = users
		s.audit = memory.NewAuditRepository()
		s.checks["memory"] = users.Ping

	default:
		return nil, oops.Code("CONFIG_INVALID").Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			s.Close(ctx)
			return nil, oops.Code("REDIS_CONNECT_FAILED").With("addr", cfg.Redis.Addr).Wrap(err)
		}
		s.closers = append(s.closers, closeRedis(client))
		throttle := redis.NewLoginThrottle(client, cfg.Login.Lockout)
		s.throttle = throttle
		s.checks["redis"] = throttle.Ping
	}

	return s, nil
}

func ensureMongoIndexes(ctx context.Context, db *mongodriver.Database) error {
	if err := mongo.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return oops.Code("MIGRATION_FAILED").With("operation", "ensure mongo indexes").Wrap(err)
	}
	return nil
}

func closeSQL(db *sql.DB) func(context.Context) error {
	return func(context.Context) error { return db.Close() }
}

func closeRedis(client *goredis.Client) func(context.Context) error {
	return func(context.Context) error { return client.Close() }
}
