package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"zimage/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t   testing.TB
	cfg *config.Config
}

// NewConfig produces a default config whose source directory lives in a
// per-test temp directory. Options are applied in order.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Build.SourceDir = filepath.Join(base, "src")

	builder := &configBuilder{
		t:   t,
		cfg: &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithColor sets the workflow-check color mode.
func WithColor(mode string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.WorkflowCheck.Color = mode
	}
}

// WithExtraChecks enables the view checks by default.
func WithExtraChecks() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.WorkflowCheck.ExtraChecks = true
	}
}

// WithSourceDir overrides the build source directory.
func WithSourceDir(dir string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Build.SourceDir = dir
	}
}

// WriteConfig encodes cfg as TOML at path and returns the path.
func WriteConfig(t testing.TB, path string, cfg *config.Config) string {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	return WriteFile(t, path, data)
}
