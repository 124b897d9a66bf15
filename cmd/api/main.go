package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ayoussef/atlas/app"
	"github.com/ayoussef/atlas/app/api"
	"github.com/ayoussef/atlas/app/countries"
	"github.com/ayoussef/atlas/app/database"
	"github.com/ayoussef/atlas/internal/cache"
	"github.com/ayoussef/atlas/internal/deps"
	"github.com/ayoussef/atlas/internal/logger"
	"github.com/ayoussef/atlas/internal/sanitizer"
	"github.com/ayoussef/atlas/models"
)

const refreshCheckInterval = 10 * time.Minute

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.New(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to open local store:", err)
	}

	appLogger := logger.NewZeroLogger(os.Stdout, logger.LevelInfo, logger.Fields{
		"service": "atlas",
		"env":     cfg.Env,
	})

	var countryCache cache.Cache[[]models.Country]
	if cfg.CacheBackend == cache.RedisBackend {
		countryCache = cache.New[[]models.Country](cache.RedisBackend, &cache.RedisOptions{
			Addr:      cfg.RedisAddr,
			OpTimeout: time.Second,
		})
	} else {
		countryCache = cache.New[[]models.Country](cache.MemoryBackend, nil)
	}

	container := deps.NewContainer(db, sanitizer.NewHTMLStripper(), appLogger, countryCache)
	countries.InitRepositories(container, &cfg.Countries)

	repo := container.GetRepository(countries.CountryRepoKey).(countries.Repository)
	store := countries.NewStore(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bootstrapper := countries.NewBootstrapper(
		repo,
		store,
		&countries.StaticLocationProvider{Code: cfg.Countries.DefaultCountryCode},
		cfg.Countries.DefaultCountryCode,
		appLogger,
	)
	go bootstrapper.Run(ctx)

	go runRefresher(ctx, repo, appLogger)

	r := gin.Default()
	r.Use(api.RequestIDMiddleware())

	apiV1 := r.Group("/api/v1")
	apiV1.GET("/healthz", api.HealthCheck)
	countries.Mount(apiV1, container)

	addr := fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort)
	appLogger.Info("starting atlas API server", logger.Fields{"addr": addr})
	if err := r.Run(addr); err != nil {
		appLogger.Fatal(err, nil)
	}
}

// runRefresher re-fetches the catalogue whenever the freshness policy
// reports the local snapshot is due.
func runRefresher(ctx context.Context, repo countries.Repository, log logger.Logger) {
	ticker := time.NewTicker(refreshCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refreshed, err := repo.RefreshIfStale(ctx)
			if err != nil {
				log.Error(err, logger.Fields{"op": "background_refresh"})
				continue
			}
			if refreshed {
				log.Info("catalogue refreshed", nil)
			}
		}
	}
}
