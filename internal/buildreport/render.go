package buildreport

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Render writes the inventory as the plain-text report shown before a build.
func Render(w io.Writer, inv Inventory) error {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(" Configuration Files:\n")
	if inv.GlobalConfig != "" {
		fmt.Fprintf(&b, "    - %s\n", filepath.Base(inv.GlobalConfig))
	}
	for _, path := range inv.Configs {
		fmt.Fprintf(&b, "    - %s\n", filepath.Base(path))
	}
	b.WriteString(" Template Files:\n")
	for _, path := range inv.Templates {
		fmt.Fprintf(&b, "    - %s\n", filepath.Base(path))
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}
