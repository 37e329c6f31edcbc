package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/arrendo/arrendo-ui/config"
	"github.com/arrendo/arrendo-ui/internal/adapters/challenge"
	"github.com/arrendo/arrendo-ui/internal/adapters/restapi"
	"github.com/arrendo/arrendo-ui/internal/adapters/tokenstore"
	"github.com/arrendo/arrendo-ui/internal/oauth"
	"github.com/arrendo/arrendo-ui/internal/ports"
	"github.com/arrendo/arrendo-ui/internal/session"
	"github.com/arrendo/arrendo-ui/internal/web"
)

// App wires the application together: token store, backend client, session
// manager, OAuth flow, and the HTTP surface.
type App struct {
	Config       config.AppConfig
	Logger       *slog.Logger
	Sessions     *session.Manager
	Gateway      *restapi.Client
	Bootstrapper *session.Bootstrapper
	Refresher    *session.Refresher
	Handler      http.Handler

	redisClient redis.UniversalClient
}

// NewApp builds the application from configuration. The context bounds
// one-time startup work (OIDC discovery, Redis ping).
func NewApp(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	tokens := tokenstore.New()

	api, err := restapi.New(restapi.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Tokens:  tokens,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create backend client: %w", err)
	}

	sessions := session.NewManager(tokens, logger)

	challenges, redisClient, err := newChallengeStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	registry, err := oauth.NewRegistry(ctx, oauth.RegistryConfig{
		Auth:        cfg.Auth,
		CallbackURL: cfg.HTTP.CallbackURL(),
	})
	if err != nil {
		return nil, fmt.Errorf("create oauth registry: %w", err)
	}

	initiator := oauth.NewInitiator(registry, challenges, logger)
	callback := oauth.NewCallback(api, challenges, sessions, logger)

	handler := web.NewRouter(web.RouterServices{
		Sessions: sessions,
		Auth: &web.AuthHandlers{
			Sessions:  sessions,
			Gateway:   api,
			Initiator: initiator,
			Callback:  callback,
			Providers: registry.Providers(),
			Logger:    logger,
		},
		Resources:      &web.ResourceHandlers{API: api, Logger: logger},
		MetricsEnabled: cfg.Observability.MetricsEnabled,
		Logger:         logger,
	})

	return &App{
		Config:       cfg,
		Logger:       logger,
		Sessions:     sessions,
		Gateway:      api,
		Bootstrapper: session.NewBootstrapper(api, sessions, logger),
		Refresher:    session.NewRefresher(api, sessions, cfg.Auth.RefreshLead, logger),
		Handler:      handler,
		redisClient:  redisClient,
	}, nil
}

// Close releases infrastructure owned by the App.
func (a *App) Close() error {
	if a.redisClient != nil {
		return a.redisClient.Close()
	}
	return nil
}

// newChallengeStore builds the configured challenge store backend.
//
//nolint:ireturn // returning the port keeps the store backends interchangeable.
func newChallengeStore(
	ctx context.Context,
	cfg config.AppConfig,
	logger *slog.Logger,
) (ports.ChallengeStore, redis.UniversalClient, error) {
	switch cfg.Auth.ChallengeStore {
	case config.ChallengeStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			if cerr := client.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis after ping failure", "error", cerr)
			}
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		logger.InfoContext(ctx, "oauth challenge store using redis", "addr", cfg.Redis.Addr)
		return challenge.NewRedisStore(client, cfg.Auth.ChallengeTTL), client, nil
	default:
		return challenge.NewMemoryStore(cfg.Auth.ChallengeTTL), nil, nil
	}
}
