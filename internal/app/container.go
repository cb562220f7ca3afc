package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/schnose/schnose-bot-go/internal/adapter"
	"github.com/schnose/schnose-bot-go/internal/command"
	"github.com/schnose/schnose-bot-go/internal/config"
	"github.com/schnose/schnose-bot-go/internal/discord"
	"github.com/schnose/schnose-bot-go/internal/service"
	"github.com/schnose/schnose-bot-go/internal/service/cache"
	"github.com/schnose/schnose-bot-go/internal/service/database"
	"github.com/schnose/schnose-bot-go/pkg/metrics"
)

// Container bundles assembled services for constructing runtime components.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	botDeps *discord.Dependencies
	closers []func()
}

// NewBot instantiates a bot using the pre-built dependency graph.
func (c *Container) NewBot() (*discord.Bot, error) {
	if c == nil || c.botDeps == nil {
		return nil, fmt.Errorf("bot dependencies not initialized")
	}
	return discord.NewBot(c.botDeps)
}

// Close tears down the container's services in reverse construction order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// Build assembles all infrastructure services and returns a container capable
// of creating fully-wired bots. All heavy-weight initialization (DB, cache,
// map catalog warm-up) is performed here so that discord.NewBot stays focused
// on gateway orchestration.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	// Cache and database
	cacheSvc, err := cache.NewCacheService(cache.CacheConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache service: %w", err)
	}
	closers = append(closers, func() {
		_ = cacheSvc.Close()
	})

	postgresSvc, err := database.NewPostgresService(database.PostgresConfig{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		Database:        cfg.Postgres.Database,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres service: %w", err)
	}
	closers = append(closers, func() {
		_ = postgresSvc.Close()
	})

	users := service.NewUserRepository(postgresSvc, logger)
	if err := users.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure users schema: %w", err)
	}

	// Metrics, optionally exposed over HTTP
	metricsMgr := metrics.NewManager()
	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metricsMgr.Handler())
		metricsSrv := &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if serveErr := metricsSrv.ListenAndServe(); serveErr != nil && serveErr != http.ErrServerClosed {
				logger.Warn("Metrics listener stopped", zap.Error(serveErr))
			}
		}()
		closers = append(closers, func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsSrv.Shutdown(shutdownCtx)
		})
		logger.Info("Metrics listener started", zap.String("addr", cfg.Metrics.Addr))
	}

	// Upstream API clients
	globalAPI := service.NewGlobalAPIService(cfg.GlobalAPI.BaseURL, cfg.GlobalAPI.HealthURL, cacheSvc, metricsMgr, logger)
	kzgo := service.NewKZGOService(cfg.KZGO.BaseURL, cacheSvc, metricsMgr, logger)

	// The map catalog is built once at startup and stays immutable.
	maps, err := service.BuildMapCatalog(ctx, globalAPI, kzgo, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build map catalog: %w", err)
	}
	logger.Info("Map catalog loaded", zap.Int("maps", maps.Len()))

	// Gateway session
	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway session: %w", err)
	}

	resolver := service.NewResolver(users, discord.NewGuildMemberLookup(session), logger)

	var places service.PlaceFetcher
	if cfg.Bot.FetchPlacements {
		places = globalAPI
	}
	records := service.NewRecordFormatter(places, logger)

	formatter := adapter.NewEmbedFormatter()
	paginator := adapter.NewPaginator(logger)

	cmdDeps := &command.Dependencies{
		Config:       cfg,
		Users:        users,
		GlobalAPI:    globalAPI,
		Maps:         maps,
		Resolver:     resolver,
		Records:      records,
		Formatter:    formatter,
		Respond:      discord.Responder(),
		RespondError: discord.ErrorResponder(formatter),
		Paginate:     discord.PaginateResponder(paginator),
		Logger:       logger,
	}
	registry := command.RegisterAll(cmdDeps)

	botDeps := &discord.Dependencies{
		Config:    cfg,
		Session:   session,
		Registry:  registry,
		Paginator: paginator,
		Maps:      maps,
		Formatter: formatter,
		Metrics:   metricsMgr,
		Logger:    logger,
	}

	return &Container{
		Config:  cfg,
		Logger:  logger,
		botDeps: botDeps,
		closers: closers,
	}, nil
}
