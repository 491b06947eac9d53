// Package main hosts the zimage CLI entrypoint and command graph.
//
// The Cobra command tree exposes the workflow linter (workflow-check), the
// build inventory report (make) and configuration scaffolding. It centralizes
// configuration resolution, color decisions and structured logging setup so
// subcommands stay thin wrappers around the internal packages.
package main
