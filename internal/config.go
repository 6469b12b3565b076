package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/kbase/internal/library"
	"github.com/starford/kbase/internal/storage"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig    `yaml:"app"`
	Content ContentConfig        `yaml:"content"`
	SQLite  SQLiteConfig         `yaml:"sqlite"`
	Auth    AuthConfig           `yaml:"auth"`
	Quality QualityConfig        `yaml:"quality"`
	Paths   []library.PathConfig `yaml:"paths"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Content.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Quality.Validate(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(c.Paths))
	for i, p := range c.Paths {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("paths[%d]: %w", i, err)
		}
		if seen[p.ID] {
			return fmt.Errorf("paths[%d]: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// LibraryOptions derives the reader options from the config.
func (c *Config) LibraryOptions() library.Options {
	return library.Options{IncludeDrafts: c.Content.IncludeDrafts, Paths: c.Paths}
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel    slog.Level `yaml:"log_level"`
	Environment string     `yaml:"environment"`
	HTTP        HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	if c.Environment == "" {
		c.Environment = EnvDevelopment
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Environment, validation.In(EnvDevelopment, EnvProduction)),
	); err != nil {
		return err
	}
	return c.HTTP.Validate()
}

// Production reports whether the app runs in production. Quality
// endpoints are hidden there.
func (c *ApplicationConfig) Production() bool {
	return c.Environment == EnvProduction
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// ContentConfig locates the Markdown entries.
type ContentConfig struct {
	Path          string `yaml:"path"`
	Pattern       string `yaml:"pattern"`
	IncludeDrafts bool   `yaml:"include_drafts"`
}

// Validate validates the content configuration.
func (c *ContentConfig) Validate() error {
	if c.Pattern == "" {
		c.Pattern = storage.DefaultPattern
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// QualityConfig tunes batch evaluation.
type QualityConfig struct {
	// Workers bounds concurrent evaluations; 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`
}

// Validate validates the quality configuration.
func (c *QualityConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Workers, validation.Min(0)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel:    slog.LevelInfo,
			Environment: EnvDevelopment,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Content: ContentConfig{
			Path:    "./content",
			Pattern: storage.DefaultPattern,
		},
		SQLite: SQLiteConfig{
			Path: "./kbase.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
