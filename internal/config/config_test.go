package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"zimage/internal/config"
)

func TestLoadDefaultsWhenNoFileExists(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	wantPath := filepath.Join(tempHome, ".config", "zimage", "config.toml")
	if resolved != wantPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, wantPath)
	}
	if cfg.WorkflowCheck.Color != config.ColorNever {
		t.Fatalf("expected color never by default, got %q", cfg.WorkflowCheck.Color)
	}
	if cfg.WorkflowCheck.ExtraChecks {
		t.Fatal("expected extra checks disabled by default")
	}
	if cfg.WorkflowCheck.Jobs != 1 {
		t.Fatalf("expected one job by default, got %d", cfg.WorkflowCheck.Jobs)
	}
	if cfg.Build.SourceDir != "src" {
		t.Fatalf("unexpected source dir: %q", cfg.Build.SourceDir)
	}
	if strings.Join(cfg.Build.GlobalConfigFiles, ",") != "global.txt,globals.txt" {
		t.Fatalf("unexpected global config files: %v", cfg.Build.GlobalConfigFiles)
	}
	if cfg.Build.ConfigMarker != "#!ZCONFIG" {
		t.Fatalf("unexpected config marker: %q", cfg.Build.ConfigMarker)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "zimage.toml")

	type payload struct {
		WorkflowCheck struct {
			ExtraChecks bool   `toml:"extra_checks"`
			Color       string `toml:"color"`
			Jobs        int    `toml:"jobs"`
		} `toml:"workflow_check"`
		Build struct {
			SourceDir         string   `toml:"source_dir"`
			GlobalConfigFiles []string `toml:"global_config_files"`
		} `toml:"build"`
	}
	custom := payload{}
	custom.WorkflowCheck.ExtraChecks = true
	custom.WorkflowCheck.Color = " Always "
	custom.WorkflowCheck.Jobs = 4
	custom.Build.SourceDir = "templates"
	custom.Build.GlobalConfigFiles = []string{"shared.txt", "  "}

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected custom path to be used, got %q exists=%v", resolved, exists)
	}
	if !cfg.WorkflowCheck.ExtraChecks {
		t.Fatal("expected extra checks enabled")
	}
	if cfg.WorkflowCheck.Color != config.ColorAlways {
		t.Fatalf("expected normalized color mode, got %q", cfg.WorkflowCheck.Color)
	}
	if cfg.WorkflowCheck.Jobs != 4 {
		t.Fatalf("expected 4 jobs, got %d", cfg.WorkflowCheck.Jobs)
	}
	if cfg.Build.SourceDir != "templates" {
		t.Fatalf("unexpected source dir: %q", cfg.Build.SourceDir)
	}
	if len(cfg.Build.GlobalConfigFiles) != 1 || cfg.Build.GlobalConfigFiles[0] != "shared.txt" {
		t.Fatalf("expected blank global config names dropped, got %v", cfg.Build.GlobalConfigFiles)
	}
	if cfg.Build.ConfigMarker != "#!ZCONFIG" {
		t.Fatalf("expected default marker to survive partial file, got %q", cfg.Build.ConfigMarker)
	}
}

func TestLoadProjectConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")
	project := t.TempDir()
	t.Chdir(project)
	if err := os.WriteFile(filepath.Join(project, "zimage.toml"), []byte("[logging]\nlevel = \"debug\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || filepath.Base(resolved) != "zimage.toml" {
		t.Fatalf("expected project config, got %q exists=%v", resolved, exists)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected debug level, got %q", cfg.Logging.Level)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Chdir(t.TempDir())
	t.Setenv("ZIMAGE_LOG_LEVEL", "WARN")
	t.Setenv("ZIMAGE_SOURCE_DIR", "workflows/src")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected env log level, got %q", cfg.Logging.Level)
	}
	if cfg.Build.SourceDir != "workflows/src" {
		t.Fatalf("expected env source dir, got %q", cfg.Build.SourceDir)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"color", "[workflow_check]\ncolor = \"rainbow\"\n", "workflow_check.color"},
		{"jobs", "[workflow_check]\njobs = -2\n", "workflow_check.jobs"},
		{"format", "[logging]\nformat = \"xml\"\n", "logging.format"},
		{"level", "[logging]\nlevel = \"loud\"\n", "logging.level"},
		{"unknown key", "[build]\nsource = \"src\"\n", "parse config"},
		{"syntax", "[build\n", "parse config"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	want := config.Default()
	if cfg.WorkflowCheck != want.WorkflowCheck || cfg.Logging != want.Logging {
		t.Fatalf("sample config differs from defaults: %+v", cfg)
	}
}

func TestExpandPathHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := config.ExpandPath("~/workflows")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if got != filepath.Join(home, "workflows") {
		t.Fatalf("got %q want %q", got, filepath.Join(home, "workflows"))
	}
}

func TestDefaultConfigPathHonoursXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	got, err := config.DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath returned error: %v", err)
	}
	want := filepath.Join(xdg, "zimage", "config.toml")
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	if err := config.CreateSample(want); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	t.Chdir(t.TempDir())
	_, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != want {
		t.Fatalf("expected XDG config, got %q exists=%v", resolved, exists)
	}
}

func TestLoadRejectsDirectory(t *testing.T) {
	if _, _, _, err := config.Load(t.TempDir()); err == nil {
		t.Fatal("expected error when the config path is a directory")
	}
}
