package main

import (
	"path/filepath"
	"testing"

	"zimage/internal/testsupport"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	return testsupport.WriteText(t, path, content)
}

func writeWorkflow(t *testing.T, dir, name, content string) string {
	t.Helper()
	return testsupport.WriteText(t, filepath.Join(dir, name), content)
}
