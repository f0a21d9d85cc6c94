package config

import "time"

const (
	defaultConfigPath              = "~/.config/discsift/config.toml"
	projectConfigName              = "discsift.toml"
	defaultDataDir                 = "~/.local/share/discsift"
	defaultLogDir                  = "~/.local/share/discsift/logs"
	defaultLogRetentionDays        = 30
	defaultLogFormat               = "console"
	defaultLogLevel                = "info"
	defaultFeatureLengthRatio      = 0.85
	defaultMinFeatureLengthSeconds = 120
	defaultMinMainFeatureChapters  = 2
	defaultHistoryMaxEntries       = 200

	// HistoryFileName is the SQLite database created inside the data directory.
	HistoryFileName = "history.db"
	// LanguageEnvVar supplies detection.preferred_language when the file leaves it empty.
	LanguageEnvVar = "DISCSIFT_LANGUAGE"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Detection: Detection{
			FeatureLengthRatio:      defaultFeatureLengthRatio,
			MinFeatureLengthSeconds: defaultMinFeatureLengthSeconds,
			MinMainFeatureChapters:  defaultMinMainFeatureChapters,
		},
		History: History{
			Enabled:    true,
			MaxEntries: defaultHistoryMaxEntries,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}

// MinFeatureLength returns detection.min_feature_length_seconds as a duration.
func (d Detection) MinFeatureLength() time.Duration {
	return time.Duration(d.MinFeatureLengthSeconds) * time.Second
}
