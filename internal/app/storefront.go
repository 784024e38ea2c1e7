// internal/app/storefront.go
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	redisadapter "github.com/mahabubulhasibshawon/glamour-storefront/internal/adapters/redis"
	"github.com/mahabubulhasibshawon/glamour-storefront/internal/adapters/repository"
	"github.com/mahabubulhasibshawon/glamour-storefront/internal/adapters/rest"
	"github.com/mahabubulhasibshawon/glamour-storefront/internal/application"
	"github.com/mahabubulhasibshawon/glamour-storefront/internal/config"
	"github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"
	"github.com/mahabubulhasibshawon/glamour-storefront/internal/metrics"
	"github.com/mahabubulhasibshawon/glamour-storefront/internal/ports"
)

// Storefront is the wired client: durable storage, the backend client and
// the application services on top of them.
type Storefront struct {
	Cart            *application.CartStore
	Session         *application.AuthSession
	Catalog         *application.CatalogService
	Account         *application.AccountService
	CartPricing     application.Pricing
	CheckoutPricing application.Pricing

	orders  ports.OrderPort
	logger  *slog.Logger
	closers []func() error
}

// OpenStorefront connects storage and the optional catalog cache, then
// restores the stored cart and session.
func OpenStorefront(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Storefront, error) {
	sf := &Storefront{logger: logger}

	storage, err := sf.openStorage(ctx, cfg)
	if err != nil {
		sf.Close()
		return nil, err
	}
	cache := sf.openCache(ctx, cfg)

	client := rest.NewClient(rest.Config{
		APIBase:         cfg.APIBase,
		AuthBase:        cfg.AuthBase,
		Timeout:         cfg.HTTPTimeout,
		RateLimit:       cfg.RateLimit,
		RateBurst:       cfg.RateBurst,
		BreakerFailures: cfg.BreakerFailures,
		BreakerTimeout:  cfg.BreakerTimeout,
	}, nil, metrics.NewCollector(prometheus.NewRegistry()), logger)

	sf.orders = client
	sf.Cart = application.NewCartStore(ctx, storage, logger)
	sf.Session = application.NewAuthSession(ctx, client, storage, logger)
	sf.Catalog = application.NewCatalogService(client, cache, logger)
	sf.Account = application.NewAccountService(client, sf.Session, storage, logger)
	sf.CartPricing = application.NewPricing(cfg.CartShippingFee, cfg.CartTaxRate)
	sf.CheckoutPricing = application.NewPricing(cfg.CheckoutHomeFee, cfg.CheckoutTaxRate)

	sf.Session.Subscribe(func(user *domain.UserProfile) {
		owner := ""
		if user != nil {
			owner = user.ID
		}
		sf.Cart.SetOwner(ctx, owner)
	})
	return sf, nil
}

// NewCheckout starts a fresh checkout over the current cart and session.
func (sf *Storefront) NewCheckout() *application.Checkout {
	return application.NewCheckout(sf.Cart, sf.Session, sf.orders, application.RandomOrderIDs{}, sf.CheckoutPricing, sf.logger)
}

func (sf *Storefront) Close() error {
	var errs []error
	for i := len(sf.closers) - 1; i >= 0; i-- {
		if err := sf.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	sf.closers = nil
	return errors.Join(errs...)
}

func (sf *Storefront) openStorage(ctx context.Context, cfg *config.Config) (ports.StoragePort, error) {
	switch cfg.Storage {
	case config.StorageRedis:
		client := redisadapter.NewClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB)
		sf.closers = append(sf.closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		sf.logger.Debug("storage ready", slog.String("driver", cfg.Storage), slog.String("profile", cfg.Profile))
		return redisadapter.NewStore(client, cfg.Profile), nil
	case config.StoragePostgres:
		return sf.openSQL(ctx, repository.DriverPostgres, cfg.DatabaseURL, cfg.Profile)
	default:
		return sf.openSQL(ctx, repository.DriverSQLite, cfg.SQLitePath, cfg.Profile)
	}
}

func (sf *Storefront) openSQL(ctx context.Context, driver, dsn, profile string) (ports.StoragePort, error) {
	if err := repository.RunMigrations(driver, dsn); err != nil {
		return nil, err
	}
	db, err := repository.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	sf.closers = append(sf.closers, db.Close)
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sf.logger.Debug("storage ready", slog.String("driver", driver), slog.String("profile", profile))
	return repository.NewStore(db, profile), nil
}

// openCache returns nil when no Redis is configured or it is unreachable.
// Catalog reads then go straight to the backend.
func (sf *Storefront) openCache(ctx context.Context, cfg *config.Config) ports.CachePort {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := redisadapter.NewClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB)
	cache := redisadapter.NewCache(client, cfg.CatalogTTL)
	if err := cache.Ping(ctx); err != nil {
		sf.logger.Warn("catalog cache unavailable", slog.String("error", err.Error()))
		client.Close()
		return nil
	}
	sf.closers = append(sf.closers, client.Close)
	return cache
}
