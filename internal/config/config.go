// Package config loads the configuration from flags, environment variables and configuration files.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultServeDatabase is the run log database used by the API when no database is configured.
const DefaultServeDatabase = "data/gorm.db"

var (
	ErrInvalidTimezone = errors.New("invalid time zone")
	ErrInvalidURL      = errors.New("api_url must be an absolute URL")
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Config is the complete configuration.
type Config struct {
	Output           string `mapstructure:"output"`             // Where statements are written to
	Database         string `mapstructure:"database"`           // Path of the run log database, empty to disable it
	Timezone         string `mapstructure:"timezone"`           // IANA time zone dates are written in
	LogFormat        string `mapstructure:"log_format"`         // "human" for console output, JSON otherwise
	LogLevel         string `mapstructure:"log_level"`          // zerolog level
	Listen           string `mapstructure:"listen"`             // Address the API listens on
	APIURL           string `mapstructure:"api_url"`            // Public URL of the API
	CORSAllowOrigins string `mapstructure:"cors_allow_origins"` // Space separated list of allowed origins
	EnablePprof      bool   `mapstructure:"enable_pprof"`       // Serve pprof profiles at /debug/pprof
}

var defaults = map[string]any{
	"output":             "bluecoins.sql",
	"database":           "",
	"timezone":           "Local",
	"log_format":         "",
	"log_level":          "info",
	"listen":             ":8080",
	"api_url":            "http://localhost:8080",
	"cors_allow_origins": "",
	"enable_pprof":       false,
}

// Flags returns the flag set for a command.
func Flags(command string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(command, pflag.ContinueOnError)

	flags.String("config", "", "configuration file (TOML, YAML or JSON)")
	flags.String("database", "", "SQLite database to record migrations in")
	flags.String("timezone", "Local", "time zone dates are written in")
	flags.String("log-format", "", `log format, "human" for console output`)
	flags.String("log-level", "info", "log level")

	switch command {
	case "migrate":
		flags.StringP("output", "o", "bluecoins.sql", `file the statements are written to, "-" for stdout or gs://bucket/object`)
	case "serve":
		flags.String("listen", ":8080", "address to listen on")
		flags.String("api-url", "http://localhost:8080", "public URL of the API")
		flags.String("cors-allow-origins", "", "space separated list of origins allowed for CORS")
		flags.Bool("enable-pprof", false, "serve pprof profiles")
	}

	return flags
}

// Load reads the configuration.
//
// Flags take precedence over environment variables, which take precedence
// over the configuration file. Environment variables are the upper case keys,
// e.g. LOG_LEVEL.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if flags != nil {
		// Flags use dashes, keys use underscores
		var err error
		flags.VisitAll(func(f *pflag.Flag) {
			if f.Name == "config" || err != nil {
				return
			}
			err = v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
		})
		if err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}

		if path, _ := flags.GetString("config"); path != "" {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	return c, nil
}

// Location returns the configured time zone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidTimezone, c.Timezone, err)
	}
	return loc, nil
}

// URL returns the public URL of the API.
func (c Config) URL() (*url.URL, error) {
	u, err := url.Parse(c.APIURL)
	if err != nil || !u.IsAbs() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, c.APIURL)
	}
	return u, nil
}

// Level returns the configured log level.
func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return level, nil
}

// AllowOrigins returns the origins allowed for CORS requests.
func (c Config) AllowOrigins() []string {
	return strings.Fields(c.CORSAllowOrigins)
}
