// Package workflow parses node-graph workflow documents and lints them for
// layout issues.
//
// A document is decoded once into a typed representation (Document, Node,
// ViewState) so the checks never poke at the raw JSON tree. The checks cover
// three concerns:
//   - unpinned nodes, reported with their resolved name and coordinates
//   - malformed `pos`/`size` attributes that are not two-element array-likes
//   - editor view drift (pan offset away from the origin, zoom away from 1.0)
//
// Analyze folds these into a per-file Result whose Findings drive the
// presentation layer in internal/report. Nothing here performs I/O; loading
// from disk lives in internal/loader.
package workflow
