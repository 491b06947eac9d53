package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
)

// Palette maps message roles to terminal colors. The zero value is plain.
type Palette struct {
	Fail     text.Colors
	FailDim  text.Colors
	Warn     text.Colors
	WarnDim  text.Colors
	OK       text.Colors
	Note     text.Colors
	Muted    text.Colors
	Emphasis text.Colors
}

// ColorPalette returns the ANSI palette used when color output is enabled.
func ColorPalette() Palette {
	return Palette{
		Fail:     text.Colors{text.FgHiRed},
		FailDim:  text.Colors{text.FgRed},
		Warn:     text.Colors{text.FgHiYellow},
		WarnDim:  text.Colors{text.FgYellow},
		OK:       text.Colors{text.FgHiGreen},
		Note:     text.Colors{text.FgHiCyan},
		Muted:    text.Colors{text.FgHiBlack},
		Emphasis: text.Colors{text.Bold},
	}
}

// PlainPalette returns a palette that emits no escape sequences.
func PlainPalette() Palette {
	return Palette{}
}

// NewPalette picks the color or plain palette.
func NewPalette(color bool) Palette {
	if color {
		return ColorPalette()
	}
	return PlainPalette()
}

func paint(colors text.Colors, s string) string {
	if len(colors) == 0 || s == "" {
		return s
	}
	return text.Escape(s, colors.EscapeSeq())
}

// Info writes an informational line prefixed with the ⓘ marker.
func (p Palette) Info(w io.Writer, message string) {
	fmt.Fprintln(w, paint(p.Note, "ⓘ "+message))
}

// Warning writes a "[WARNING] message" line followed by optional info lines.
func (p Palette) Warning(w io.Writer, message string, info ...string) {
	tag := paint(p.Note, "[") + paint(p.Warn, "WARNING") + paint(p.Note, "]")
	fmt.Fprintln(w, tag+" "+paint(p.WarnDim, message))
	for _, line := range info {
		p.Info(w, line)
	}
}

// Error writes an "[ERROR!] message" line followed by optional info lines.
func (p Palette) Error(w io.Writer, message string, info ...string) {
	tag := paint(p.FailDim, "[") + paint(p.Fail, "ERROR!") + paint(p.FailDim, "]")
	fmt.Fprintln(w, tag+" "+paint(p.WarnDim, strings.TrimSpace(message)))
	for _, line := range info {
		p.Info(w, line)
	}
}
