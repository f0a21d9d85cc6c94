package config

import (
	"errors"
	"fmt"
	"strings"

	"discsift/internal/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateDetection(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateDetection() error {
	if lang := c.Detection.PreferredLanguage; lang != "" && language.ToISO3(lang) == language.Undetermined {
		return fmt.Errorf("detection.preferred_language: unrecognised language code %q", lang)
	}
	if ratio := c.Detection.FeatureLengthRatio; ratio <= 0 || ratio > 1 {
		return fmt.Errorf("detection.feature_length_ratio must be in (0, 1], got %v", ratio)
	}
	if c.Detection.MinFeatureLengthSeconds <= 0 {
		return errors.New("detection.min_feature_length_seconds must be positive")
	}
	if c.Detection.MinMainFeatureChapters < 1 {
		return errors.New("detection.min_main_feature_chapters must be at least 1")
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.MaxEntries < 0 {
		return errors.New("history.max_entries must be zero or positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
