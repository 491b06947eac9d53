package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"

	"zimage/internal/workflow"
)

// Options configures a Reporter.
type Options struct {
	Color   bool
	Verbose bool
}

// Reporter writes one text block per workflow.Result.
type Reporter struct {
	out     io.Writer
	palette Palette
	verbose bool
}

// New returns a Reporter writing to out.
func New(out io.Writer, opts Options) *Reporter {
	return &Reporter{
		out:     out,
		palette: NewPalette(opts.Color),
		verbose: opts.Verbose,
	}
}

// Palette exposes the colors the reporter was built with so callers can
// print warnings in the same style.
func (r *Reporter) Palette() Palette {
	return r.palette
}

// WriteResults writes every block in order and a trailing blank line.
func (r *Reporter) WriteResults(results []workflow.Result) error {
	for _, result := range results {
		if err := r.WriteResult(result); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(r.out)
	return err
}

// WriteResult writes the block for a single file: a blank separator, the file
// name, then either a summary line or one line per finding.
func (r *Reporter) WriteResult(result workflow.Result) error {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(paint(r.palette.Emphasis, result.File))
	b.WriteString("\n")

	if result.Clean() {
		r.line(&b, r.palette.OK, fmt.Sprintf("The %d nodes are pinned and no errors found.", result.NodeCount))
	}

	findings := result.Findings()
	unpinnedHeader := false
	for _, finding := range findings {
		switch finding.Kind {
		case workflow.FindingUnreadable:
			r.line(&b, r.palette.Warn, "Unable to read the workflow from the file.")
		case workflow.FindingMalformedPosition:
			r.line(&b, r.palette.Fail, fmt.Sprintf("Potential issues with 'pos' attribute : %d", finding.Count))
		case workflow.FindingMalformedSize:
			r.line(&b, r.palette.Fail, fmt.Sprintf("Potential issues with 'size' attribute: %d", finding.Count))
		case workflow.FindingViewDisplaced:
			r.line(&b, r.palette.Fail, "The view is not at the origin.")
		case workflow.FindingViewNotAtUnitScale:
			r.line(&b, r.palette.Fail, "The view is not at 100% scale.")
		case workflow.FindingUnpinnedNode:
			if !unpinnedHeader {
				r.line(&b, r.palette.Fail, fmt.Sprintf("Found %d unpinned nodes:", len(result.Unpinned)))
				unpinnedHeader = true
			}
			b.WriteString(r.nodeLine(*finding.Node))
			b.WriteString("\n")
		}
	}
	if r.verbose && !result.Readable && result.Reason != "" {
		b.WriteString("       ")
		b.WriteString(paint(r.palette.Muted, result.Reason))
		b.WriteString("\n")
	}

	_, err := io.WriteString(r.out, b.String())
	return err
}

func (r *Reporter) line(b *strings.Builder, colors text.Colors, message string) {
	b.WriteString(paint(colors, "  - "+message))
	b.WriteString("\n")
}

func (r *Reporter) nodeLine(node workflow.Node) string {
	line := fmt.Sprintf("       (%4s,%4s) %s", formatCoord(node.Position.X), formatCoord(node.Position.Y), node.Name)
	if !r.verbose {
		return line
	}
	var details []string
	if node.ID != "" {
		details = append(details, "id="+node.ID)
	}
	if node.Type != "" && node.Type != node.Name {
		details = append(details, "type="+node.Type)
	}
	if node.SizeShape != workflow.ShapeAbsent {
		details = append(details, "size="+formatCoord(node.Size.X)+"x"+formatCoord(node.Size.Y))
	}
	if len(details) == 0 {
		return line
	}
	return line + " " + paint(r.palette.Muted, "["+strings.Join(details, " ")+"]")
}

func formatCoord(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
