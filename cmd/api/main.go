// Package main is the entrypoint for the Bloglist API server.
package main

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/bloglist/bloglist/internal/analytics"
	"github.com/bloglist/bloglist/internal/auth"
	"github.com/bloglist/bloglist/internal/cache"
	"github.com/bloglist/bloglist/internal/config"
	"github.com/bloglist/bloglist/internal/handler"
	"github.com/bloglist/bloglist/internal/metrics"
	"github.com/bloglist/bloglist/internal/middleware"
	"github.com/bloglist/bloglist/internal/repository"
	"github.com/bloglist/bloglist/internal/server"
	"github.com/bloglist/bloglist/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	registry := prometheus.NewRegistry()
	metricsRecorder := metrics.NewPrometheus(registry)
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	userService := service.NewUserService(repo, cacheClient, issuer, metricsRecorder)
	blogService := service.NewBlogService(repo, cacheClient, metricsRecorder, logger)

	// Like-event pipeline: publisher feeds the Redis stream, worker drains
	// it into Postgres for per-blog stats.
	likeEventRepo := repository.NewLikeEventRepository(repo)
	publisher := analytics.NewPublisher(cacheClient.Client(), logger, metricsRecorder)
	blogService.SetLikeEventPublisher(publisher)

	worker := analytics.NewWorker(cacheClient.Client(), likeEventRepo, logger, analytics.NewConsumerID(), metricsRecorder)
	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()
	go func() {
		if err := worker.Run(workerCtx); err != nil {
			logger.Error("like event worker stopped", "error", err)
		}
	}()

	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	userHandler := handler.NewUserHandler(userService, logger)
	blogHandler := handler.NewBlogHandler(blogService, logger)
	statsHandler := handler.NewStatsHandler(likeEventRepo, blogService, logger)
	testingHandler := handler.NewTestingHandler(repo, cacheClient, logger)

	r := setupRouter(routerDeps{
		base:     h,
		health:   healthHandler,
		users:    userHandler,
		blogs:    blogHandler,
		stats:    statsHandler,
		testing:  testingHandler,
		issuer:   issuer,
		cache:    cacheClient,
		registry: registry,
		cfg:      cfg,
		logger:   logger,
	})

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)
	srv.OnShutdown("like event worker", worker.Shutdown)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"testing_endpoints", cfg.TestingEnabled(),
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
// When LOG_FILE is set, output goes through a size-rotated file.
func initLogger(cfg *config.Config) *slog.Logger {
	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    100, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
	}

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(out, opts)
	} else {
		h = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type routerDeps struct {
	base     *handler.Handler
	health   *handler.HealthHandler
	users    *handler.UserHandler
	blogs    *handler.BlogHandler
	stats    *handler.StatsHandler
	testing  *handler.TestingHandler
	issuer   *auth.TokenIssuer
	cache    *cache.Cache
	registry *prometheus.Registry
	cfg      *config.Config
	logger   *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))
	r.Use(middleware.Security(middleware.DefaultSecurityConfig()))
	r.Use(middleware.MaxBodySize(deps.cfg.MaxRequestBodySize))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = deps.cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))

	// Operational endpoints, no auth
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)
	r.Method("GET", "/metrics", promhttp.HandlerFor(deps.registry, promhttp.HandlerOpts{}))

	r.Get("/", deps.base.Hello)

	authMiddleware := middleware.Auth(middleware.AuthConfig{
		Logger:      deps.logger,
		Parser:      deps.issuer,
		Revocations: deps.cache,
	})

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:       deps.logger,
		Cache:        deps.cache,
		APIEnabled:   deps.cfg.RateLimitAPIEnabled,
		APIRPM:       deps.cfg.RateLimitAPIRPM,
		APIBurst:     deps.cfg.RateLimitAPIBurst,
		LoginEnabled: deps.cfg.RateLimitLoginEnabled,
		LoginRPS:     deps.cfg.RateLimitLoginRPS,
		LoginBurst:   deps.cfg.RateLimitLoginBurst,
	}

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/users", deps.users.Create)
		r.With(middleware.RateLimitLogin(rateLimitCfg)).Post("/login", deps.users.Login)
		r.Get("/blogs", deps.blogs.List)
		r.Get("/blogs/{id}", deps.blogs.Get)
		r.Get("/blogs/{id}/stats", deps.stats.GetBlogStats)

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RateLimitAPI(rateLimitCfg))

			r.Post("/logout", deps.users.Logout)
			r.Post("/blogs", deps.blogs.Create)
			r.Post("/blogs/{id}/like", deps.blogs.Like)
			r.Delete("/blogs/{id}", deps.blogs.Delete)
		})

		// State reset for end-to-end test runs, never mounted in production
		if deps.cfg.TestingEnabled() {
			r.Post("/testing/reset", deps.testing.Reset)
		}
	})

	r.NotFound(deps.base.NotFound)
	r.MethodNotAllowed(deps.base.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
