package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateWorkflowCheck(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateWorkflowCheck() error {
	switch c.WorkflowCheck.Color {
	case ColorNever, ColorAuto, ColorAlways:
	default:
		return fmt.Errorf("workflow_check.color: unsupported value %q (use never, auto, or always)", c.WorkflowCheck.Color)
	}
	if c.WorkflowCheck.Jobs < 1 {
		return errors.New("workflow_check.jobs must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
