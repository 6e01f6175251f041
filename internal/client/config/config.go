package config

import "time"

// Config holds runtime settings for the BreedBook CLI.
//
// Units: RequestTimeout, CacheTTL and SearchDebounce are time.Durations.
// DatabaseDSN is an sqlite DSN; the default keeps the session database next
// to the binary.
type Config struct {
	BaseURL        string        `env:"BREEDBOOK_BASE_URL"`
	APIKey         string        `env:"BREEDBOOK_API_KEY"`
	RequestTimeout time.Duration `env:"BREEDBOOK_REQUEST_TIMEOUT"`
	CacheTTL       time.Duration `env:"BREEDBOOK_CACHE_TTL"`
	SearchDebounce time.Duration `env:"BREEDBOOK_SEARCH_DEBOUNCE"`
	DatabaseDSN    string        `env:"BREEDBOOK_DATABASE_DSN"`
	LogLevel       string        `env:"BREEDBOOK_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://api.thecatapi.com/v1"
	c.RequestTimeout = 10 * time.Second
	c.CacheTTL = 30 * time.Minute
	c.SearchDebounce = 400 * time.Millisecond
	c.DatabaseDSN = "file:breedbook.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (optionally seeded by a .env file) and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	return cfg, nil
}
