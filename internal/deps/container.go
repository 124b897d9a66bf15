package deps

import (
	"github.com/ayoussef/atlas/internal/cache"
	"github.com/ayoussef/atlas/internal/logger"
	"github.com/ayoussef/atlas/internal/sanitizer"
	"github.com/ayoussef/atlas/models"
	"gorm.io/gorm"
)

// Container holds all shared dependencies
type Container struct {
	DB        *gorm.DB
	Sanitizer sanitizer.HTMLStripperer
	Logger    logger.Logger
	Cache     cache.Cache[[]models.Country]

	repositories map[string]interface{}
	services     map[string]interface{}
}

func NewContainer(db *gorm.DB, strip sanitizer.HTMLStripperer, log logger.Logger, countryCache cache.Cache[[]models.Country]) *Container {
	return &Container{
		DB:           db,
		Sanitizer:    strip,
		Logger:       log,
		Cache:        countryCache,
		repositories: make(map[string]interface{}),
		services:     make(map[string]interface{}),
	}
}

// RegisterRepository stores a repository with a key
func (c *Container) RegisterRepository(key string, repo interface{}) {
	c.repositories[key] = repo
}

// GetRepository retrieves a repository by key
func (c *Container) GetRepository(key string) interface{} {
	return c.repositories[key]
}

// RegisterService stores a service with a key
func (c *Container) RegisterService(key string, service interface{}) {
	c.services[key] = service
}

// GetService retrieves a service by key
func (c *Container) GetService(key string) interface{} {
	return c.services[key]
}
