package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App       App
	Log       Log
	HTTP      HTTP
	Store     Store
	Redis     Redis
	Dashboard Dashboard
}

type App struct {
	Name    string `env:"APP_NAME" envDefault:"deal-dashboard"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
	// DumpBodies enables request and response body logging.
	DumpBodies bool `env:"LOG_DUMP_BODIES" envDefault:"false"`
	// MaskSensitive hides client names and contacts in logged bodies.
	MaskSensitive bool `env:"LOG_MASK_SENSITIVE" envDefault:"true"`
	// MaxBodyLen truncates logged bodies; 0 disables truncation.
	MaxBodyLen int `env:"LOG_MAX_BODY_LEN" envDefault:"2048"`
}

// Load reads the environment, after loading .env when one is present.
func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
