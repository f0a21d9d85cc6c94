package autodetect

import (
	"time"

	"discsift/internal/config"
	"discsift/internal/disc"
)

// Options holds the detection thresholds.
type Options struct {
	// FeatureLengthRatio is the fraction of the baseline length a playlist
	// must reach to count as feature length.
	FeatureLengthRatio float64
	// MinFeatureLength is the length a main or special feature must exceed.
	MinFeatureLength time.Duration
	// MinMainFeatureChapters is the chapter count of a plausible main feature.
	MinMainFeatureChapters int
	// PreferredLanguage overrides the inferred disc primary language.
	PreferredLanguage string
}

// DefaultOptions returns the stock thresholds.
func DefaultOptions() Options {
	return Options{
		FeatureLengthRatio:     0.85,
		MinFeatureLength:       120 * time.Second,
		MinMainFeatureChapters: disc.DefaultMainFeatureChapters,
	}
}

// OptionsFromConfig maps the [detection] config section onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return DefaultOptions()
	}
	return Options{
		FeatureLengthRatio:     cfg.Detection.FeatureLengthRatio,
		MinFeatureLength:       cfg.Detection.MinFeatureLength(),
		MinMainFeatureChapters: cfg.Detection.MinMainFeatureChapters,
		PreferredLanguage:      cfg.Detection.PreferredLanguage,
	}.withDefaults()
}

func (o Options) withDefaults() Options {
	defaults := DefaultOptions()
	if o.FeatureLengthRatio <= 0 || o.FeatureLengthRatio > 1 {
		o.FeatureLengthRatio = defaults.FeatureLengthRatio
	}
	if o.MinFeatureLength <= 0 {
		o.MinFeatureLength = defaults.MinFeatureLength
	}
	if o.MinMainFeatureChapters < 1 {
		o.MinMainFeatureChapters = defaults.MinMainFeatureChapters
	}
	return o
}
