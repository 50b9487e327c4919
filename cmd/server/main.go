package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mkondo/giveaway/internal/entities"
	"github.com/mkondo/giveaway/internal/handlers"
	"github.com/mkondo/giveaway/internal/infrastructure/config"
	"github.com/mkondo/giveaway/internal/infrastructure/database"
	"github.com/mkondo/giveaway/internal/infrastructure/metrics"
	"github.com/mkondo/giveaway/internal/repositories"
	"github.com/mkondo/giveaway/internal/repositories/postgres"
	"github.com/mkondo/giveaway/pkg/cache/memorycache"
)

const defaultEnv = "dev"

func main() {
	env := os.Getenv("ENV")
	if env == "" {
		env = defaultEnv
	}

	logger, err := newLogger(env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := config.InitConfig(env); err != nil {
		logger.Fatal("failed to initialize config", zap.Error(err))
	}
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	pg, err := database.NewPostgres(&cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pg.Close()

	logger.Info("connected to database",
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("database", cfg.Database.Database))

	userRepo := postgres.NewPostgresUserRepository(pg.DB)
	typeRepo := postgres.NewPostgresItemTypeRepository(pg.DB)
	itemRepo := postgres.NewPostgresItemRepository(pg.DB)

	sessionCache, err := memorycache.New(&memorycache.Config{
		MaxSizeBytes:  cfg.Session.MaxMemoryBytes,
		DefaultTTL:    time.Duration(cfg.Session.TTLMinutes) * time.Minute,
		EnableMetrics: true,
	})
	if err != nil {
		logger.Fatal("failed to create session cache", zap.Error(err))
	}
	defer sessionCache.Close()

	sessions := handlers.NewSessionStore(sessionCache, time.Duration(cfg.Session.TTLMinutes)*time.Minute)

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := seed(seedCtx, userRepo, typeRepo, cfg, logger); err != nil {
		seedCancel()
		logger.Fatal("failed to seed initial data", zap.Error(err))
	}
	seedCancel()

	collector := metrics.NewCollector()
	collector.SetSessionCache(sessionCache)
	exporter := metrics.NewPrometheusExporter(collector)

	router := handlers.NewRouter(userRepo, typeRepo, itemRepo, sessions, logger)
	apiHandler := metrics.Middleware(collector, exporter, router.Handler())

	apiServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      apiHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.MetricsPort),
		Handler: metricsMux,
	}

	serverErrors := make(chan error, 2)
	go func() {
		logger.Info("API server listening", zap.String("addr", apiServer.Addr))
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("API server error: %w", err)
		}
	}()
	go func() {
		logger.Info("metrics server listening", zap.String("addr", metricsServer.Addr))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("metrics server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	select {
	case err := <-serverErrors:
		logger.Fatal("server error", zap.Error(err))
	case sig := <-sigChan:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("API server shutdown error", zap.Error(err))
		}
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown error", zap.Error(err))
		}
		if err := pg.Close(); err != nil {
			logger.Warn("error closing database connection", zap.Error(err))
		}

		logger.Info("shutdown complete")
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// seed creates the built-in admin account and a pair of starter item
// types on first run. Existing rows are left alone, so this is safe on
// every boot.
func seed(ctx context.Context, users repositories.UserRepository, types repositories.ItemTypeRepository, cfg *config.Config, logger *zap.Logger) error {
	_, err := users.GetByLogin(ctx, entities.AdminUsername)
	if errors.Is(err, entities.ErrNotFound) {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		if _, err := users.Create(ctx, &entities.User{
			Username:     entities.AdminUsername,
			PasswordHash: string(hash),
			Email:        cfg.Admin.Email,
			Role:         entities.RoleAdmin,
			Status:       entities.UserStatusApproved,
		}); err != nil {
			return fmt.Errorf("failed to create admin account: %w", err)
		}
		logger.Info("created built-in admin account")
	} else if err != nil {
		return fmt.Errorf("failed to look up admin account: %w", err)
	}

	starters := []*entities.ItemType{
		{
			Name: "Food",
			Attributes: []*entities.AttributeDefinition{
				{Key: "expiry_date", Label: "Expiry Date", Kind: entities.KindDate, Required: true},
				{Key: "quantity", Label: "Quantity", Kind: entities.KindNumber},
			},
		},
		{
			Name: "Books",
			Attributes: []*entities.AttributeDefinition{
				{Key: "author", Label: "Author", Kind: entities.KindText},
				{Key: "isbn", Label: "ISBN", Kind: entities.KindText},
			},
		},
	}
	for _, t := range starters {
		if _, err := types.GetByName(ctx, t.Name); err == nil {
			continue
		} else if !errors.Is(err, entities.ErrNotFound) {
			return fmt.Errorf("failed to look up item type %s: %w", t.Name, err)
		}
		if _, err := types.Create(ctx, t); err != nil {
			return fmt.Errorf("failed to create item type %s: %w", t.Name, err)
		}
		logger.Info("created starter item type", zap.String("name", t.Name))
	}
	return nil
}
