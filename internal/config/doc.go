// Package config loads, normalizes, and validates zimage configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// ZIMAGE_LOG_LEVEL. The Config type centralizes the knobs the workflow
// checker, the build report, and logging need so commands resolve settings
// in one pass before applying their own flags on top.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical color modes, and clear validation errors.
package config
