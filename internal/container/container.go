package container

import (
	"context"
	"fmt"

	"stylesphere/storefront/internal/client"
	"stylesphere/storefront/internal/config"
	"stylesphere/storefront/internal/service"
	"stylesphere/storefront/internal/session"
	"stylesphere/storefront/internal/state"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config  *config.Config
	Client  *client.Client
	Store   state.Store
	Guard   *session.Guard
	Service *service.Service

	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	apiClient := client.New(cfg.API)
	container.Client = apiClient

	store, err := container.newStore(cfg)
	if err != nil {
		return nil, err
	}
	container.Store = store

	guard := session.NewGuard(store, apiClient, apiClient)
	container.Guard = guard

	// A 401 from any endpoint invalidates the session
	apiClient.OnUnauthorized(func() {
		guard.Invalidate(context.Background())
	})

	container.Service = service.New(apiClient, guard, store, cfg.Listing, cfg.UI.Theme)

	return container, nil
}

func (c *Container) newStore(cfg *config.Config) (state.Store, error) {
	switch cfg.State.Backend {
	case "", "file":
		return state.NewFileStore(cfg.State.Path), nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})

		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("Connected to Redis successfully")

		c.redis = rdb
		return state.NewRedisStore(rdb), nil
	default:
		return nil, fmt.Errorf("unknown state backend %q", cfg.State.Backend)
	}
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}
