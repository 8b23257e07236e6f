package cmd

import (
	"context"
	"fmt"
	nethttp "net/http"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mercata-dev/storefront/internal/cartstore"
	"github.com/mercata-dev/storefront/internal/cartview"
	"github.com/mercata-dev/storefront/internal/catalog"
	"github.com/mercata-dev/storefront/internal/checkout"
	"github.com/mercata-dev/storefront/internal/config"
	"github.com/mercata-dev/storefront/internal/events"
	"github.com/mercata-dev/storefront/internal/http"
	"github.com/mercata-dev/storefront/internal/http/handlers"
	rl "github.com/mercata-dev/storefront/internal/http/rate_limiter"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the storefront HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cat, err := buildCatalog(ctx, cfg, log)
	if err != nil {
		return err
	}

	store, bus, err := buildCartStore(ctx, cfg, log)
	if err != nil {
		return err
	}

	vm := cartview.New(store, cat, log)
	go vm.Watch(ctx, bus)
	vm.Current(ctx) // prime the cached badge

	loader := buildGatewayLoader(cfg, log)
	coordinator := checkout.NewCoordinator(loader, store, vm, cat, cfg.Payment.Currency, log)

	handlers.SetCartStore(store)
	handlers.SetCatalog(cat)
	handlers.SetViewModel(vm)
	handlers.SetCheckout(coordinator)
	handlers.SetLogger(log)
	http.SetLogger(log)

	go rl.StartVisitorCleanupLoop()

	router := http.NewRouter()
	log.Info("server running", zap.String("addr", cfg.Server.Addr))
	if err := nethttp.ListenAndServe(cfg.Server.Addr, router); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

// buildCatalog returns the remote catalog when an endpoint is
// configured, otherwise an empty in-memory one. A failed fetch is
// logged and the catalog serves empty; pages degrade, the server still
// comes up.
func buildCatalog(ctx context.Context, cfg *config.Config, log *zap.Logger) (catalog.Catalog, error) {
	if cfg.Catalog.URL == "" {
		log.Warn("no catalog endpoint configured, serving empty catalog")
		return catalog.NewMemoryCatalog(nil), nil
	}
	remote := catalog.NewRemoteCatalog(cfg.Catalog.URL, cfg.Catalog.FetchTimeout, log)
	_ = remote.Refresh(ctx)
	return remote, nil
}

func buildCartStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (cartstore.Store, events.Bus, error) {
	local := events.NewMemoryBus()

	switch cfg.Cart.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Cart.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis: %w", err)
		}
		bridge := events.NewRedisBridge(local, rdb, cfg.Cart.RedisChannel, log)
		go bridge.Run(ctx)
		store := cartstore.NewRedisStore(rdb, cfg.Cart.RedisKey, log)
		return cartstore.WithNotifications(store, bridge), bridge, nil
	case "memory":
		return cartstore.WithNotifications(cartstore.NewMemoryStore(), local), local, nil
	default:
		store := cartstore.NewFileStore(cfg.Cart.FilePath, log)
		return cartstore.WithNotifications(store, local), local, nil
	}
}

// buildGatewayLoader wires the payment provider. Without a base URL the
// sandbox gateway approves everything, which keeps local runs usable.
func buildGatewayLoader(cfg *config.Config, log *zap.Logger) checkout.Loader {
	if cfg.Payment.BaseURL == "" {
		log.Warn("no payment provider configured, using sandbox gateway")
		return checkout.StaticLoader{Gateway: checkout.NewFakeGateway()}
	}
	return checkout.NewLazyLoader(func(context.Context) (checkout.Gateway, error) {
		return checkout.NewHTTPGateway(cfg.Payment.BaseURL, cfg.Payment.ClientID, cfg.Payment.Secret, log), nil
	})
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}
