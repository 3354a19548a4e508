// Package config loads the configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabasePath     string   // Path of the sqlite database file
	Port             int      // Port the HTTP server listens on
	APIURL           *url.URL // External URL of the API, used for links in responses
	LogFormat        string   // "human" or "json". Empty selects by gin mode.
	GinMode          string
	CORSAllowOrigins []string // Glob patterns of allowed origins. Empty disables CORS.
	EnablePprof      bool
	QueueSize        int // Number of commands that can be queued
}

// Load reads the configuration from environment variables and a .env file
// in the working directory if present. Environment variables take precedence.
func Load() (*Config, error) {
	// A missing .env file is fine
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("DATABASE_PATH", "data/ledger.db")
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_URL", "http://localhost:8080")
	v.SetDefault("LOG_FORMAT", "")
	v.SetDefault("GIN_MODE", gin.ReleaseMode)
	v.SetDefault("CORS_ALLOW_ORIGINS", "")
	v.SetDefault("ENABLE_PPROF", false)
	v.SetDefault("COMMAND_QUEUE_SIZE", 64)
	v.AutomaticEnv()

	apiURL, err := url.Parse(strings.TrimSuffix(v.GetString("API_URL"), "/"))
	if err != nil {
		return nil, fmt.Errorf("API_URL is not a valid URL: %w", err)
	}

	cfg := &Config{
		DatabasePath:     v.GetString("DATABASE_PATH"),
		Port:             v.GetInt("PORT"),
		APIURL:           apiURL,
		LogFormat:        v.GetString("LOG_FORMAT"),
		GinMode:          v.GetString("GIN_MODE"),
		CORSAllowOrigins: strings.Fields(v.GetString("CORS_ALLOW_ORIGINS")),
		EnablePprof:      v.GetBool("ENABLE_PPROF"),
		QueueSize:        v.GetInt("COMMAND_QUEUE_SIZE"),
	}

	return cfg, cfg.Validate()
}

// Validate returns an error listing all invalid values.
func (c *Config) Validate() error {
	var errs []error

	if c.DatabasePath == "" {
		errs = append(errs, errors.New("DATABASE_PATH must not be empty"))
	}

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid PORT %d: must be between 1 and 65535", c.Port))
	}

	if c.APIURL == nil || c.APIURL.Scheme == "" || c.APIURL.Host == "" {
		errs = append(errs, errors.New("API_URL must be an absolute URL"))
	}

	switch c.LogFormat {
	case "", "human", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid LOG_FORMAT %q: must be human or json", c.LogFormat))
	}

	switch c.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		errs = append(errs, fmt.Errorf("invalid GIN_MODE %q", c.GinMode))
	}

	if c.QueueSize < 1 {
		errs = append(errs, fmt.Errorf("invalid COMMAND_QUEUE_SIZE %d: must be positive", c.QueueSize))
	}

	return errors.Join(errs...)
}
