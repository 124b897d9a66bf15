package countries

import (
	"time"

	"github.com/ayoussef/atlas/models"
)

// Config represents the configuration for the countries module
type Config struct {
	CatalogueBaseURL string        `env:"CATALOGUE_BASE_URL" yaml:"catalogue_base_url" env-default:"https://restcountries.com"`
	RequestTimeout   time.Duration `env:"CATALOGUE_TIMEOUT" yaml:"request_timeout" env-default:"15s"`
	MaxRetries       int           `env:"CATALOGUE_MAX_RETRIES" yaml:"max_retries" env-default:"3"`
	RetryBaseDelay   time.Duration `env:"CATALOGUE_RETRY_BASE_DELAY" yaml:"retry_base_delay" env-default:"500ms"`

	CacheValidity    time.Duration `env:"CACHE_VALIDITY" yaml:"cache_validity" env-default:"24h"`
	RefreshThreshold time.Duration `env:"CACHE_REFRESH_THRESHOLD" yaml:"refresh_threshold" env-default:"1h"`

	MaxSelected    int           `env:"MAX_SELECTED_COUNTRIES" yaml:"max_selected" env-default:"5"`
	SearchDebounce time.Duration `env:"SEARCH_DEBOUNCE" yaml:"search_debounce" env-default:"400ms"`

	DefaultCountryCode string `env:"DEFAULT_COUNTRY_CODE" yaml:"default_country_code" env-default:"EG"`
}

// Validate validates the countries module configuration
func (c *Config) Validate() error {
	if c.CatalogueBaseURL == "" {
		return models.ErrInvalidBaseURL
	}
	if c.RequestTimeout <= 0 {
		return models.ErrInvalidRequestTimeout
	}
	if c.CacheValidity <= 0 {
		return models.ErrInvalidCacheValidity
	}
	if c.RefreshThreshold <= 0 || c.RefreshThreshold >= c.CacheValidity {
		return models.ErrInvalidRefreshThreshold
	}
	if c.MaxSelected <= 0 {
		return models.ErrInvalidMaxSelected
	}
	if c.SearchDebounce < 0 {
		return models.ErrInvalidDebounceInterval
	}
	return nil
}

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		CatalogueBaseURL:   "https://restcountries.com",
		RequestTimeout:     15 * time.Second,
		MaxRetries:         3,
		RetryBaseDelay:     500 * time.Millisecond,
		CacheValidity:      24 * time.Hour,
		RefreshThreshold:   time.Hour,
		MaxSelected:        5,
		SearchDebounce:     400 * time.Millisecond,
		DefaultCountryCode: "EG",
	}
}
