// Package loader reads workflow documents from disk.
//
// Two containers are understood: plain `.json` workflow files and `.png`
// images carrying the workflow in their text metadata next to a `prompt`
// entry. Every failure wraps ErrNoWorkflow so callers can treat "could not
// read" uniformly while still logging the specific reason.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"zimage/internal/workflow"
)

var (
	// ErrNoWorkflow is wrapped by every error Load returns.
	ErrNoWorkflow = errors.New("no workflow data")
	// ErrUnsupportedFormat marks file extensions other than .json and .png.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrNoEmbeddedWorkflow marks images without both prompt and workflow metadata.
	ErrNoEmbeddedWorkflow = errors.New("image carries no embedded workflow")
	// ErrImageSupportUnavailable marks images when the binary was built without PNG support.
	ErrImageSupportUnavailable = errors.New("image metadata support is not available")
)

// Metadata keys written by the image generator.
const (
	PromptKey   = "prompt"
	WorkflowKey = "workflow"
)

// MetadataReader returns the text metadata of an image file.
type MetadataReader func(path string) (map[string]string, error)

// Loader resolves a path into a workflow document.
type Loader struct {
	images MetadataReader
}

// New returns a Loader using the built-in image metadata reader, if any.
func New() *Loader {
	return &Loader{images: defaultImageReader}
}

// NewWithImageReader returns a Loader using reader for image files. A nil
// reader disables image support.
func NewWithImageReader(reader MetadataReader) *Loader {
	return &Loader{images: reader}
}

// ImageSupport reports whether this binary can read workflows embedded in images.
func ImageSupport() bool {
	return defaultImageReader != nil
}

// ImageSupport reports whether l can read image containers.
func (l *Loader) ImageSupport() bool {
	return l != nil && l.images != nil
}

// Load picks a decoder from the file extension (case-insensitive).
func (l *Loader) Load(path string) (*workflow.Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return l.loadJSON(path)
	case ".png":
		return l.loadImage(path)
	default:
		return nil, noWorkflow(fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path)))
	}
}

// Load reads path with a default Loader.
func Load(path string) (*workflow.Document, error) {
	return New().Load(path)
}

func (l *Loader) loadJSON(path string) (*workflow.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, noWorkflow(err)
	}
	doc, err := workflow.Parse(data)
	if err != nil {
		return nil, noWorkflow(err)
	}
	return doc, nil
}

func (l *Loader) loadImage(path string) (*workflow.Document, error) {
	if !l.ImageSupport() {
		return nil, noWorkflow(ErrImageSupportUnavailable)
	}
	text, err := l.images(path)
	if err != nil {
		return nil, noWorkflow(fmt.Errorf("read image metadata: %w", err))
	}
	_, hasPrompt := text[PromptKey]
	raw, hasWorkflow := text[WorkflowKey]
	if !hasPrompt || !hasWorkflow {
		return nil, noWorkflow(ErrNoEmbeddedWorkflow)
	}
	doc, err := workflow.Parse([]byte(raw))
	if err != nil {
		return nil, noWorkflow(err)
	}
	return doc, nil
}

func noWorkflow(err error) error {
	return fmt.Errorf("%w: %w", ErrNoWorkflow, err)
}
