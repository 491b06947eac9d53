package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"zimage/internal/config"
)

// colorEnabled applies a color mode to the destination writer. Auto only
// colors real terminals.
func colorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorAuto:
		return shouldColorize(writer)
	default:
		return false
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
