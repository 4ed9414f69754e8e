package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/compras/internal/common"
	"github.com/spf13/viper"
)

// Config is the resolved application configuration.
type Config struct {
	API     APIConfig
	Logging LoggingConfig
	TUI     TUIConfig
	Media   MediaConfig
	Server  ServerConfig
	Import  ImportConfig
}

// APIConfig points at the remote catalog.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// LoggingConfig controls slog output.
type LoggingConfig struct {
	Level  string
	Format string
	// File receives logs while the full-screen interface is running.
	File string
}

// TUIConfig controls the interactive list.
type TUIConfig struct {
	Theme string
}

// MediaConfig controls photo capture.
type MediaConfig struct {
	// CameraCommand writes one JPEG or PNG frame to stdout.
	CameraCommand string
}

// ServerConfig controls the dev catalog server.
type ServerConfig struct {
	Addr     string
	Database string
}

// ImportConfig controls retries during bulk import.
type ImportConfig struct {
	Retries    int
	RetryDelay time.Duration
	// MaxDelay caps the backoff and is the wait after a rate limit.
	MaxDelay time.Duration
}

// Default values.
const (
	DefaultBaseURL = "https://new-shopping-api-gwg4h7ehgwe5esby.canadacentral-01.azurewebsites.net/api"
	DefaultTimeout = 30 * time.Second
	DefaultAddr    = ":8080"
)

// EnvKeyReplacer maps nested keys to environment names, so api.base_url
// is read from COMPRAS_API_BASE_URL.
func EnvKeyReplacer() *strings.Replacer {
	return strings.NewReplacer(".", "_")
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", DefaultTimeout)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", filepath.Join(StateDir(), "compras.log"))
	v.SetDefault("tui.theme", "default")
	v.SetDefault("media.camera_command", "")
	v.SetDefault("server.addr", DefaultAddr)
	v.SetDefault("server.database", filepath.Join(DataDir(), "catalog.db"))
	v.SetDefault("import.retries", 3)
	v.SetDefault("import.retry_delay", 500*time.Millisecond)
	v.SetDefault("import.max_delay", 5*time.Second)
}

// Load reads the typed configuration from v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		API: APIConfig{
			BaseURL: strings.TrimSpace(v.GetString("api.base_url")),
			Timeout: v.GetDuration("api.timeout"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
			File:   ExpandPath(v.GetString("logging.file")),
		},
		TUI: TUIConfig{
			Theme: v.GetString("tui.theme"),
		},
		Media: MediaConfig{
			CameraCommand: v.GetString("media.camera_command"),
		},
		Server: ServerConfig{
			Addr:     v.GetString("server.addr"),
			Database: ExpandPath(v.GetString("server.database")),
		},
		Import: ImportConfig{
			Retries:    v.GetInt("import.retries"),
			RetryDelay: v.GetDuration("import.retry_delay"),
			MaxDelay:   v.GetDuration("import.max_delay"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values no component can use.
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url", common.ErrMissingConfig)
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: api.base_url %q is not an http(s) URL", common.ErrInvalidConfig, c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("%w: api.timeout cannot be negative", common.ErrInvalidConfig)
	}
	if c.Import.Retries < 0 {
		return fmt.Errorf("%w: import.retries cannot be negative", common.ErrInvalidConfig)
	}
	if c.Import.RetryDelay < 0 || c.Import.MaxDelay < 0 {
		return fmt.Errorf("%w: import delays cannot be negative", common.ErrInvalidConfig)
	}
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: invalid log format: %s", common.ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}
