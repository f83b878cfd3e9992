package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all server settings in correct types. Values come from an
// optional YAML file (CONFIG_FILE) with environment variables taking over.
type Config struct {
	Host           string   `yaml:"host" env:"HOST" env-default:"0.0.0.0"`
	Port           string   `yaml:"port" env:"PORT" env-default:"8080"`
	StaticDir      string   `yaml:"static_dir" env:"STATIC_DIR" env-default:"static"`
	TempDir        string   `yaml:"temp_dir" env:"TEMP_DIR" env-default:"temp"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000,http://localhost:5173"`

	RateLimit RateLimit `yaml:"rate_limit"`
	Extractor Extractor `yaml:"extractor"`
	Janitor   Janitor   `yaml:"janitor"`
}

// RateLimit configures the per-client sliding window limiter.
type RateLimit struct {
	Requests int           `yaml:"requests" env:"RATE_LIMIT_REQUESTS" env-default:"100"`
	Window   time.Duration `yaml:"window" env:"RATE_LIMIT_WINDOW" env-default:"15m"`
}

// Extractor configures the external extraction binary.
type Extractor struct {
	BinPath         string        `yaml:"bin" env:"YTDLP_PATH" env-default:"yt-dlp"`
	CookiesPath     string        `yaml:"cookies" env:"COOKIES_PATH"`
	MetadataTimeout time.Duration `yaml:"metadata_timeout" env:"EXTRACTOR_METADATA_TIMEOUT" env-default:"30s"`
	TitleTimeout    time.Duration `yaml:"title_timeout" env:"EXTRACTOR_TITLE_TIMEOUT" env-default:"10s"`
}

// Janitor configures the scratch directory sweep.
type Janitor struct {
	Interval  time.Duration `yaml:"interval" env:"JANITOR_INTERVAL" env-default:"1h"`
	Retention time.Duration `yaml:"retention" env:"JANITOR_RETENTION" env-default:"1h"`
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// Load reads configuration from CONFIG_FILE when set, falling back to the
// environment alone. Post-load validation clamps values the server cannot
// run with.
func Load() (*Config, error) {
	cfg := &Config{}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	validate(cfg)

	return cfg, nil
}

// validate ensures the server won't crash due to misconfiguration.
func validate(cfg *Config) {
	if cfg.RateLimit.Requests < 1 {
		cfg.RateLimit.Requests = 100
	}
	if cfg.RateLimit.Window <= 0 {
		cfg.RateLimit.Window = 15 * time.Minute
	}
	if cfg.Extractor.MetadataTimeout <= 0 {
		cfg.Extractor.MetadataTimeout = 30 * time.Second
	}
	if cfg.Extractor.TitleTimeout <= 0 {
		cfg.Extractor.TitleTimeout = 10 * time.Second
	}
	if cfg.Janitor.Interval <= 0 {
		cfg.Janitor.Interval = time.Hour
	}
	if cfg.Janitor.Retention <= 0 {
		cfg.Janitor.Retention = time.Hour
	}
}
