package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipecost/internal/api"
	"recipecost/internal/catalog"
	"recipecost/internal/config"
	"recipecost/internal/database"
	"recipecost/internal/events"
	"recipecost/internal/logging"
	"recipecost/internal/monitoring"
	"recipecost/internal/seed"
	"recipecost/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort != 0 {
		cfg.Metrics.Port = *metricsPort
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	err = run(cfg, logger)
	if err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gin.SetMode(gin.ReleaseMode)

	st, err := initializeStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	monitor := monitoring.NewMonitor()
	hub := events.NewHub(logger)
	go hub.Run(ctx)

	svc := catalog.NewService(st, logger,
		catalog.WithMetrics(monitor),
		catalog.WithPublisher(hub),
	)

	if cfg.SeedFile != "" {
		if err := seedCatalog(ctx, svc, cfg.SeedFile, logger); err != nil {
			return err
		}
	}
	svc.RefreshCounts(ctx)

	recipeAPI := api.NewRecipeAPI(svc, logger, api.Options{
		JWTSecret:               cfg.Auth.JWTSecret,
		AllowedOrigins:          cfg.Server.AllowedOrigins,
		DefaultProfitPercentage: cfg.Pricing.DefaultProfitPercentage,
		Events:                  hub.ServeWS,
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: recipeAPI.Router,
	}

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = newMetricsServer(cfg, monitor)
		go func() {
			logger.Info("Starting metrics server", zap.Int("port", cfg.Metrics.Port))
			if err := metricsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server error", zap.Error(err))
			}
		}()
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("API server shutdown error", zap.Error(err))
		}
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("Metrics server shutdown error", zap.Error(err))
			}
		}

		cancel()
	}()

	logger.Info("Starting API server",
		zap.Int("port", cfg.Server.Port),
		zap.String("driver", cfg.Database.Driver),
	)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("API server error: %w", err)
	}
	return nil
}

func initializeStore(cfg *config.Config) (store.Store, error) {
	if cfg.Database.Driver == config.DriverMemory {
		return store.NewMemory(), nil
	}

	db, err := database.Open(cfg.Database.Driver, cfg.Database.URL, cfg.Database.LogSQL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return store.NewSQL(db), nil
}

// seedCatalog loads the seed file into an empty catalog
func seedCatalog(ctx context.Context, svc *catalog.Service, path string, logger *zap.Logger) error {
	existing, err := svc.ListIngredients(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info("Catalog already populated, skipping seed", zap.Int("ingredients", len(existing)))
		return nil
	}

	data, err := seed.Load(path)
	if err != nil {
		return err
	}
	if err := seed.Apply(ctx, svc, data); err != nil {
		return err
	}

	logger.Info("Seeded catalog",
		zap.String("file", path),
		zap.Int("ingredients", len(data.Ingredients)),
		zap.Int("recipes", len(data.Recipes)),
	)
	return nil
}

func newMetricsServer(cfg *config.Config, monitor *monitoring.Monitor) *http.Server {
	metricsRouter := gin.New()
	metricsRouter.Use(gin.Recovery())
	metricsRouter.GET(cfg.Metrics.Path, gin.WrapH(monitor.Handler()))

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler: metricsRouter,
	}
}
