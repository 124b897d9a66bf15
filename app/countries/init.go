package countries

import (
	"github.com/gin-gonic/gin"

	"github.com/ayoussef/atlas/internal/deps"
	"github.com/ayoussef/atlas/internal/freshness"
)

const (
	CountryRepoKey    = "country_repository"
	CountryServiceKey = "country_service"
)

// InitRepositories wires the reconciliation stack into the container.
func InitRepositories(container *deps.Container, cfg *Config) {
	policy := freshness.NewPolicy(cfg.CacheValidity, cfg.RefreshThreshold)
	fetcher := NewCatalogueFetcher(cfg, container.Cache)
	store := NewStore(container.DB)
	repo := NewRepository(fetcher, store, NewSearchService(), policy, container.Logger, cfg.MaxSelected)

	selector := NewSelector(repo, cfg.MaxSelected)
	svc := NewService(repo, selector, policy, container.Sanitizer)

	container.RegisterRepository(CountryRepoKey, repo)
	container.RegisterService(CountryServiceKey, svc)
}

// Mount mounts country routes
func Mount(r *gin.RouterGroup, container *deps.Container) {
	svc := container.GetService(CountryServiceKey).(Service)
	handler := NewHandler(svc)

	countriesGroup := r.Group("/countries")
	countriesGroup.GET("", handler.GetAllCountries)
	countriesGroup.GET("/search", handler.SearchCountries)
	countriesGroup.GET("/code/:code", handler.GetCountryByCode)
	countriesGroup.GET("/cache", handler.GetCacheStatus)

	selectedGroup := countriesGroup.Group("/selected")
	selectedGroup.GET("", handler.GetSelectedCountries)
	selectedGroup.POST("", handler.AddSelectedCountry)
	selectedGroup.DELETE("/:code", handler.RemoveSelectedCountry)
}
