package buildreport

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	// ErrNoTemplates is returned when the directory has no JSON templates.
	ErrNoTemplates = errors.New("no JSON template files found in the source directory")
	// ErrNoConfigs is returned when no non-global configuration file carries the marker.
	ErrNoConfigs = errors.New("no valid text configuration files found in the source directory")
)

const (
	templateExt  = ".json"
	backupSuffix = "~.json"
	configExt    = ".txt"
)

// Options controls how files are classified.
type Options struct {
	// GlobalConfigFiles are marker file names treated as the global configuration.
	GlobalConfigFiles []string
	// ConfigMarker must appear somewhere in a text file for it to count.
	ConfigMarker string
}

// Inventory is the classified content of a source directory. All paths are
// absolute and lists are in natural name order.
type Inventory struct {
	SourceDir    string   `json:"source_dir"`
	GlobalConfig string   `json:"global_config,omitempty"`
	Configs      []string `json:"configs"`
	Templates    []string `json:"templates"`
}

// Scan classifies the regular files directly inside dir. Templates are
// checked before configuration files, so an empty directory reports
// ErrNoTemplates. The partial inventory is returned alongside either error.
func Scan(dir string, opts Options) (Inventory, error) {
	inv := Inventory{SourceDir: dir}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return inv, fmt.Errorf("read source directory: %w", err)
	}

	marker := []byte(opts.ConfigMarker)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		path := filepath.Join(dir, name)
		switch {
		case strings.HasSuffix(name, templateExt) && !strings.HasSuffix(name, backupSuffix):
			inv.Templates = append(inv.Templates, path)
		case strings.HasSuffix(name, configExt):
			ok, err := hasMarker(path, marker)
			if err != nil {
				return inv, err
			}
			if !ok {
				continue
			}
			if slices.Contains(opts.GlobalConfigFiles, name) {
				inv.GlobalConfig = path
			} else {
				inv.Configs = append(inv.Configs, path)
			}
		}
	}

	sortNatural(inv.Templates)
	sortNatural(inv.Configs)

	if len(inv.Templates) == 0 {
		return inv, ErrNoTemplates
	}
	if len(inv.Configs) == 0 {
		return inv, ErrNoConfigs
	}
	return inv, nil
}

func hasMarker(path string, marker []byte) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read config candidate: %w", err)
	}
	return bytes.Contains(data, marker), nil
}

// sortNatural orders paths by base name so "style2" sorts before "style10".
func sortNatural(paths []string) {
	c := collate.New(language.Und, collate.Numeric, collate.IgnoreCase)
	slices.SortStableFunc(paths, func(a, b string) int {
		return c.CompareString(filepath.Base(a), filepath.Base(b))
	})
}
