package config

import (
	"fmt"
	"os"
	"strings"

	"discsift/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDetection()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDetection() {
	c.Detection.PreferredLanguage = strings.TrimSpace(c.Detection.PreferredLanguage)
	if c.Detection.PreferredLanguage == "" {
		if value, ok := os.LookupEnv(LanguageEnvVar); ok {
			c.Detection.PreferredLanguage = strings.TrimSpace(value)
		}
	}
	// Unrecognised codes are left untouched so Validate can report them.
	if code := language.ToISO3(c.Detection.PreferredLanguage); code != language.Undetermined {
		c.Detection.PreferredLanguage = code
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
