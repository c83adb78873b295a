// forum/config.go
package forum

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds server settings. A missing file means defaults; the
// DATABASE_URL and SAFEHARBOR_ADDR environment variables override the file
// when set.
type Config struct {
	ListenAddr  string `yaml:"listen_addr"`
	DatabaseURL string `yaml:"database_url"`
	Storage     string `yaml:"storage"` // "postgres" or "in-memory"
	PageSize    int    `yaml:"page_size"`
	Throttle    int    `yaml:"throttle_limit"`
	// SessionLifetime is a Go duration string, e.g. "12h". The session
	// cookie itself is non-persistent either way; this bounds server-side
	// session data.
	SessionLifetime string   `yaml:"session_lifetime"`
	FilterPatterns  []string `yaml:"filter_patterns"`
}

func DefaultConfig() Config {
	return Config{
		ListenAddr:      ":8080",
		Storage:         "in-memory",
		PageSize:        DefaultPageSize,
		Throttle:        100,
		SessionLifetime: "12h",
	}
}

// LoadConfig reads the YAML file at path, falling back to defaults when
// the file does not exist, then applies environment overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("SAFEHARBOR_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	return cfg, nil
}
