package container

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/users-api/config"
	"github.com/oksasatya/users-api/internal/application"
	"github.com/oksasatya/users-api/internal/domain/repository"
	esinfra "github.com/oksasatya/users-api/internal/infrastructure/elasticsearch"
	"github.com/oksasatya/users-api/internal/infrastructure/gormstore"
	pginfra "github.com/oksasatya/users-api/internal/infrastructure/postgres"
	"github.com/oksasatya/users-api/internal/infrastructure/rabbitmq"
	"github.com/oksasatya/users-api/pkg/helpers"
)

// Container holds the components shared by the router and the commands.
// Redis is nil when rate limiting is off.
type Container struct {
	Config  *config.Config
	Logger  *logrus.Logger
	Repo    repository.UserRepository
	Service *application.Service
	Redis   *redis.Client

	closers []func()
}

// New builds the users gateway selected by DB_DRIVER and the optional integrations.
// Search, events and rate limiting degrade to disabled when their backend is unavailable.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Container{Config: cfg, Logger: logger}

	repo, err := c.openRepository(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Repo = repo

	hasher, err := helpers.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		c.Close()
		return nil, err
	}

	c.Service = application.NewService(repo, hasher, c.searchIndex(), c.eventPublisher(), logger)
	c.Redis = c.rateLimitRedis(ctx)
	return c, nil
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

func (c *Container) onClose(fn func()) {
	c.closers = append(c.closers, fn)
}

func (c *Container) openRepository(ctx context.Context) (repository.UserRepository, error) {
	cfg := c.Config
	switch cfg.DBDriver {
	case config.DriverPostgres:
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		c.onClose(pool.Close)
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, c.Logger); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		return pginfra.NewUserRepository(pool), nil
	case config.DriverGormPostgres, config.DriverSQLite:
		db, err := gormstore.Open(cfg.DBDriver, cfg.GormDSN())
		if err != nil {
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			c.onClose(func() { _ = sqlDB.Close() })
		}
		return gormstore.NewUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// searchIndex returns nil, not a typed nil, when Elasticsearch is not configured.
func (c *Container) searchIndex() application.SearchIndex {
	addrs := c.Config.ESAddrs()
	if len(addrs) == 0 {
		return nil
	}
	client, err := helpers.NewESClient(addrs, c.Config.ElasticsearchUser, c.Config.ElasticsearchPass)
	if err != nil {
		helpers.LogWarn(c.Logger, "elasticsearch disabled", err, nil)
		return nil
	}
	return esinfra.NewUserIndex(client, c.Config.ESUsersIndex)
}

func (c *Container) eventPublisher() application.EventPublisher {
	if c.Config.RabbitMQURL == "" {
		return nil
	}
	pub, err := rabbitmq.NewPublisher(c.Config.RabbitMQURL, c.Config.RabbitMQUserEventsQueue)
	if err != nil {
		helpers.LogWarn(c.Logger, "rabbitmq disabled", err, nil)
		return nil
	}
	c.onClose(pub.Close)
	return pub
}

func (c *Container) rateLimitRedis(ctx context.Context) *redis.Client {
	if !c.Config.RateLimitActive() {
		return nil
	}
	rdb := helpers.NewRedisClient(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	if err := helpers.PingRedis(ctx, rdb); err != nil {
		// the limiter fails open, so keep the client and let it recover
		helpers.LogWarn(c.Logger, "redis unreachable, rate limiter will fail open", err, logrus.Fields{"addr": c.Config.RedisAddr})
	}
	c.onClose(func() { _ = rdb.Close() })
	return rdb
}
