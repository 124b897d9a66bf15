package app

import (
	"github.com/ayoussef/atlas/app/countries"
	"github.com/ayoussef/atlas/app/database"
	"github.com/ayoussef/atlas/internal/nexus"
)

type Config struct {
	DB        database.Config  `yaml:"db"`
	Countries countries.Config `yaml:"countries"`

	AppHost string `env:"APP_HOST" yaml:"app_host" env-default:"localhost"`
	AppPort string `env:"APP_PORT" yaml:"app_port" env-default:"8080"`
	Env     string `env:"APP_ENV" yaml:"env" env-default:"development"`

	CacheBackend string `env:"CACHE_BACKEND" yaml:"cache_backend" env-default:"memory"`
	RedisAddr    string `env:"REDIS_ADDR" yaml:"redis_addr"`
}

// LoadConfig loads the application configuration from environment
// variables or a config file.
func LoadConfig() (*Config, error) {
	c := &Config{}
	if err := nexus.NewLoader().Load(c); err != nil {
		return nil, err
	}
	if err := c.Countries.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
