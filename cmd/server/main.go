package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"parley.chat/api-server/common/id"
	"parley.chat/api-server/common/logger"
	"parley.chat/api-server/common/otel"
	"parley.chat/api-server/core/config"
	"parley.chat/api-server/core/db"
	"parley.chat/api-server/internal/http/middleware"
	httprouter "parley.chat/api-server/internal/http/router"
	"parley.chat/api-server/internal/identity"
	"parley.chat/api-server/internal/mail"
	"parley.chat/api-server/internal/service"
	"parley.chat/api-server/internal/store"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "api-server starting", "env", cfg.Env)

	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	mailer := setupMailer(ctx, cfg)
	defer mailer.Close()

	var provider identity.Provider
	if cfg.WorkOS.Enabled() {
		provider = identity.NewWorkOSProvider(
			cfg.WorkOS.APIKey,
			cfg.WorkOS.ClientID,
			cfg.ServerOrigin+"/api/v1/organizations/sso/callback",
		)
		slog.InfoContext(ctx, "sso provider configured")
	} else {
		slog.InfoContext(ctx, "sso provider disabled (no workos credentials)")
	}

	stores := store.NewStores(database.Queries())
	services := service.NewServices(
		stores,
		service.NewTxRunner(database),
		provider,
		mailer,
		cfg.ClientOrigin,
		cfg.AppName,
	)

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go runJanitor(janitorCtx, services)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")
	stopJanitor()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

const janitorInterval = time.Hour

// runJanitor periodically removes expired invites and sessions.
func runJanitor(ctx context.Context, services *service.Services) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "parley.server.janitor"})

	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := services.Invites().PurgeExpired(ctx); err != nil {
				slog.ErrorContext(ctx, "failed to purge expired invites", "error", err)
			} else if n > 0 {
				slog.InfoContext(ctx, "purged expired invites", "count", n)
			}
			if n, err := services.Sessions().PurgeExpired(ctx); err != nil {
				slog.ErrorContext(ctx, "failed to purge expired sessions", "error", err)
			} else if n > 0 {
				slog.InfoContext(ctx, "purged expired sessions", "count", n)
			}
		}
	}
}

func setupMailer(ctx context.Context, cfg config.Config) mail.Mailer {
	if !cfg.Mail.Enabled() {
		slog.InfoContext(ctx, "mail disabled (no redis url configured)")
		return mail.NewNoopMailer()
	}

	redisOpts, err := redis.ParseURL(cfg.Mail.RedisURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse mail redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to mail redis", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "mail queue connected", "stream", cfg.Mail.Stream)

	return mail.NewRedisMailer(redisClient, cfg.Mail.Stream, slog.Default())
}

func setupRouter(cfg config.Config, services *service.Services) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		ClientOrigin: cfg.ClientOrigin,
		IsProduction: cfg.IsProduction(),
	})

	return router
}
