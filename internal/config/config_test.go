package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

func writeFile(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cleandate.toml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		env     map[string]string
		want    *Config
		wantErr error
	}{
		{
			name: "full",
			data: `
[date]
pattern = "dd/MM/yyyy"
locale = "es"
timezone = "Europe/Madrid"

[log]
level = "debug"
`,
			want: func() *Config {
				c := Default()
				c.Date.Pattern = "dd/MM/yyyy"
				c.Date.Locale = "es"
				c.Date.Timezone = "Europe/Madrid"
				c.Log.Level = "debug"
				return c
			}(),
		},
		{
			name: "partial",
			data: `
[date]
locale = "fr"
`,
			want: func() *Config {
				c := Default()
				c.Date.Locale = "fr"
				return c
			}(),
		},
		{
			name: "environment",
			data: `
[date]
locale = "fr"
`,
			env: map[string]string{
				LocaleEnvKey:   "de",
				PatternEnvKey:  "d. MMMM yyyy",
				TimezoneEnvKey: "UTC",
				LogLevelEnvKey: "warn",
			},
			want: func() *Config {
				c := Default()
				c.Date.Locale = "de"
				c.Date.Pattern = "d. MMMM yyyy"
				c.Date.Timezone = "UTC"
				c.Log.Level = "warn"
				return c
			}(),
		},
		{
			name:    "invalid toml",
			data:    "[date\npattern = ",
			wantErr: ErrInvalidFormat,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := Load(writeFile(t, tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Load() err = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if *got != *tt.want {
				t.Errorf("Load() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoad_noFile(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if *got != *Default() {
		t.Errorf("Load() = %+v, want defaults", got)
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Load() err = %v, want %v", err, ErrFileNotFound)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{
			name:   "defaults",
			modify: func(c *Config) {},
		},
		{
			name:    "pattern",
			modify:  func(c *Config) { c.Date.Pattern = "yyyy-MM-dd HH:mm" },
			wantErr: true,
		},
		{
			name:    "locale syntax",
			modify:  func(c *Config) { c.Date.Locale = "not a locale" },
			wantErr: true,
		},
		{
			name:    "locale without names",
			modify:  func(c *Config) { c.Date.Locale = "ja" },
			wantErr: true,
		},
		{
			name:    "timezone",
			modify:  func(c *Config) { c.Date.Timezone = "Nowhere/Special" },
			wantErr: true,
		},
		{
			name:    "log level",
			modify:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() err = %v, want %v", err, ErrInvalid)
			}
		})
	}
}

func TestConfig_accessors(t *testing.T) {
	c := Default()
	c.Date.Locale = "es-MX"
	c.Date.Timezone = "UTC"
	c.Log.Level = "debug"

	tag, err := c.Tag()
	if err != nil {
		t.Fatal(err)
	}
	if tag != language.MustParse("es-MX") {
		t.Errorf("Tag() = %s, want es-MX", tag)
	}

	loc, err := c.Location()
	if err != nil {
		t.Fatal(err)
	}
	if loc != time.UTC {
		t.Errorf("Location() = %s, want UTC", loc)
	}

	lvl, err := c.LogLevel()
	if err != nil {
		t.Fatal(err)
	}
	if lvl != zerolog.DebugLevel {
		t.Errorf("LogLevel() = %s, want debug", lvl)
	}
}
