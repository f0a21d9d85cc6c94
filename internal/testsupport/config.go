package testsupport

import (
	"path/filepath"
	"testing"

	"discsift/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithPreferredLanguage sets detection.preferred_language.
func WithPreferredLanguage(code string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Detection.PreferredLanguage = code
	}
}

// WithHistory toggles history recording and caps its size.
func WithHistory(enabled bool, maxEntries int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = enabled
		b.cfg.History.MaxEntries = maxEntries
	}
}

// WithLogFormat sets logging.format.
func WithLogFormat(format string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Logging.Format = format
	}
}
