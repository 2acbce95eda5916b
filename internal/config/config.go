// Package config loads the cleandate command configuration from a TOML file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/muhlemmer/cleanutils/internal/locale"
	"github.com/muhlemmer/cleanutils/pkg/date"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

// Environment overrides
const (
	PatternEnvKey  = "CLEANDATE_PATTERN"
	LocaleEnvKey   = "CLEANDATE_LOCALE"
	TimezoneEnvKey = "CLEANDATE_TZ"
	LogLevelEnvKey = "CLEANDATE_LOG_LEVEL"
)

// Defaults
const (
	DefaultPattern  = date.ISOPattern
	DefaultLocale   = "en"
	DefaultTimezone = "Local"
	DefaultLogLevel = "info"
)

var (
	ErrFileNotFound  = errors.New("config: file not found")
	ErrInvalidFormat = errors.New("config: invalid file format")
	ErrInvalid       = errors.New("config: invalid value")
)

type Config struct {
	Date struct {
		// Pattern used for reading and writing dates.
		Pattern string `toml:"pattern"`
		// Locale used for month and weekday names.
		Locale string `toml:"locale"`
		// Timezone in which "today" is determined.
		Timezone string `toml:"timezone"`
	} `toml:"date"`

	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := new(Config)
	c.Date.Pattern = DefaultPattern
	c.Date.Locale = DefaultLocale
	c.Date.Timezone = DefaultTimezone
	c.Log.Level = DefaultLogLevel
	return c
}

// Load reads the TOML file at path. Values missing from the file
// keep their defaults. Environment overrides are applied last.
// An empty path skips reading a file.
func Load(path string) (*Config, error) {
	c := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}

		// decoding into the defaults only overwrites keys present in the file.
		if err = toml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, path, err)
		}
	}

	c.ApplyEnvironmentOverrides()
	return c, nil
}

// ApplyEnvironmentOverrides sets values from non-empty environment variables.
func (c *Config) ApplyEnvironmentOverrides() {
	for key, dst := range map[string]*string{
		PatternEnvKey:  &c.Date.Pattern,
		LocaleEnvKey:   &c.Date.Locale,
		TimezoneEnvKey: &c.Date.Timezone,
		LogLevelEnvKey: &c.Log.Level,
	} {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
}

// Validate checks all values, reporting every invalid one.
func (c *Config) Validate() error {
	var errs []string

	if err := date.ValidatePattern(c.Date.Pattern); err != nil {
		errs = append(errs, fmt.Sprintf("date.pattern: %v", err))
	}
	if _, err := c.Tag(); err != nil {
		errs = append(errs, fmt.Sprintf("date.locale: %v", err))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Sprintf("date.timezone: %v", err))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, fmt.Sprintf("log.level: %v", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(errs, "; "))
	}
	return nil
}

// Tag parses the locale and checks calendar names are available for it.
func (c *Config) Tag() (language.Tag, error) {
	tag, err := language.Parse(c.Date.Locale)
	if err != nil {
		return language.Und, err
	}
	if _, err = locale.Lookup(tag); err != nil {
		return language.Und, err
	}
	return tag, nil
}

// Location loads the time zone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Date.Timezone)
}

// LogLevel parses the log level.
func (c *Config) LogLevel() (zerolog.Level, error) {
	return zerolog.ParseLevel(c.Log.Level)
}
