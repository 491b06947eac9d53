package config

import (
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeWorkflowCheck()
	c.normalizeBuild()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeWorkflowCheck() {
	c.WorkflowCheck.Color = strings.ToLower(strings.TrimSpace(c.WorkflowCheck.Color))
	if c.WorkflowCheck.Color == "" {
		c.WorkflowCheck.Color = defaultColorMode
	}
	if c.WorkflowCheck.Jobs == 0 {
		c.WorkflowCheck.Jobs = defaultJobs
	}
}

// normalizeBuild keeps source_dir relative so it resolves against the
// directory the build report runs from.
func (c *Config) normalizeBuild() {
	if value, ok := os.LookupEnv(envSourceDir); ok && strings.TrimSpace(value) != "" {
		c.Build.SourceDir = value
	}
	c.Build.SourceDir = strings.TrimSpace(c.Build.SourceDir)
	if c.Build.SourceDir == "" {
		c.Build.SourceDir = defaultSourceDir
	}
	names := make([]string, 0, len(c.Build.GlobalConfigFiles))
	for _, name := range c.Build.GlobalConfigFiles {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	c.Build.GlobalConfigFiles = names
	if strings.TrimSpace(c.Build.ConfigMarker) == "" {
		c.Build.ConfigMarker = defaultConfigMarker
	}
}

func (c *Config) normalizeLogging() {
	if value, ok := os.LookupEnv(envLogLevel); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}
