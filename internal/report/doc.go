// Package report renders lint results and user-facing messages for the
// terminal.
//
// All color decisions live in a Palette value handed to the Reporter when it
// is constructed; a plain palette produces byte-for-byte uncolored text. The
// Reporter is a pure presentation layer over workflow.Result: it never
// inspects documents itself, it only walks each result's Findings.
package report
