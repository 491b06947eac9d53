package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Color modes accepted by workflow_check.color.
const (
	ColorNever  = "never"
	ColorAuto   = "auto"
	ColorAlways = "always"
)

// WorkflowCheck contains defaults for the workflow-check command.
type WorkflowCheck struct {
	ExtraChecks bool   `toml:"extra_checks"`
	Color       string `toml:"color"`
	Verbose     bool   `toml:"verbose"`
	Jobs        int    `toml:"jobs"`
}

// Build contains configuration for the build report.
type Build struct {
	SourceDir         string   `toml:"source_dir"`
	GlobalConfigFiles []string `toml:"global_config_files"`
	ConfigMarker      string   `toml:"config_marker"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for zimage.
//
// Configuration sections by subsystem:
//   - WorkflowCheck: lint options and output coloring for workflow files
//   - Build: source directory layout scanned by the build report
//   - Logging: diagnostic log format and level
type Config struct {
	WorkflowCheck WorkflowCheck `toml:"workflow_check"`
	Build         Build         `toml:"build"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the user configuration file location:
// $XDG_CONFIG_HOME/zimage/config.toml, or ~/.config/zimage/config.toml.
func DefaultConfigPath() (string, error) {
	if base := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); base != "" {
		return expandPath(filepath.Join(base, userConfigRelPath))
	}
	return expandPath(filepath.Join("~", ".config", userConfigRelPath))
}

// Load locates, parses, and validates a configuration file. An explicit path
// is used as given; otherwise the user config and then ./zimage.toml are
// tried. A missing file yields defaults. The second and third return values
// report the resolved path and whether a file existed there.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}
	if exists {
		if err := decodeFile(resolvedPath, &cfg); err != nil {
			return nil, "", false, err
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

// decodeFile overlays the TOML file at path onto cfg. Unknown keys are
// rejected so typos in section or key names surface immediately.
func decodeFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		exists, err := isFile(expanded)
		if err != nil {
			return "", false, err
		}
		return expanded, exists, nil
	}

	userPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := expandPath(projectConfigName)
	if err != nil {
		return "", false, err
	}
	for _, candidate := range []string{userPath, projectPath} {
		exists, err := isFile(candidate)
		if err != nil {
			return "", false, err
		}
		if exists {
			return candidate, true, nil
		}
	}
	return userPath, false, nil
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("stat config: %w", err)
	case info.IsDir():
		return false, fmt.Errorf("config path %s is a directory", path)
	default:
		return true, nil
	}
}

// expandPath resolves a leading ~ to the home directory and makes the
// result absolute against the working directory.
func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if pathValue == "~" || strings.HasPrefix(pathValue, "~/") || strings.HasPrefix(pathValue, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		pathValue = filepath.Join(home, strings.TrimLeft(pathValue[1:], `/\`))
	}
	absolute, err := filepath.Abs(pathValue)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
