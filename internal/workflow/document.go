package workflow

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	// ErrNotObject is returned when the decoded document root is not a JSON object.
	ErrNotObject = errors.New("workflow root is not an object")
	// ErrEmptyDocument is returned for an empty JSON object.
	ErrEmptyDocument = errors.New("workflow document is empty")
)

// Document is the normalized form of a workflow file.
type Document struct {
	// Nodes holds one entry per object in the node list, in document order.
	Nodes []Node
	// HasNodeList reports whether the document carries a non-empty node list.
	HasNodeList bool
	// View is the persisted editor camera.
	View ViewState

	entries int
}

// Parse decodes raw workflow JSON into a Document.
func Parse(data []byte) (*Document, error) {
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decode workflow: %w", err)
	}
	root, ok := tree.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	if len(root) == 0 {
		return nil, ErrEmptyDocument
	}
	return FromTree(root), nil
}

// FromTree normalizes an already decoded JSON object. Missing or oddly typed
// fields fall back to their defaults instead of failing.
func FromTree(root map[string]any) *Document {
	doc := &Document{View: viewFromTree(root)}

	entries, ok := root["nodes"].([]any)
	if !ok || len(entries) == 0 {
		return doc
	}
	doc.HasNodeList = true
	doc.entries = len(entries)
	doc.Nodes = make([]Node, 0, len(entries))
	for _, entry := range entries {
		raw, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		doc.Nodes = append(doc.Nodes, nodeFromTree(raw))
	}
	return doc
}

// NodeCount returns the number of entries in the node list, pinned or not.
func (d *Document) NodeCount() int {
	if d == nil {
		return 0
	}
	return d.entries
}

// UnpinnedNodes returns the nodes whose pinned flag is not set, in document order.
func (d *Document) UnpinnedNodes() []Node {
	if d == nil {
		return nil
	}
	var out []Node
	for _, node := range d.Nodes {
		if !node.Pinned {
			out = append(out, node)
		}
	}
	return out
}

// DimensionReport counts nodes whose pos or size attribute is malformed.
type DimensionReport struct {
	InvalidPos  int `json:"invalid_pos"`
	InvalidSize int `json:"invalid_size"`
}

// CheckDimensions classifies every present pos and size attribute. The
// boolean is false when the document has no node list, meaning the check
// could not run at all.
func (d *Document) CheckDimensions() (DimensionReport, bool) {
	var report DimensionReport
	if d == nil || !d.HasNodeList {
		return report, false
	}
	for _, node := range d.Nodes {
		if node.PosShape == ShapeMalformed {
			report.InvalidPos++
		}
		if node.SizeShape == ShapeMalformed {
			report.InvalidSize++
		}
	}
	return report, true
}

// truthy mirrors how loosely-typed workflow fields are tested for presence:
// null, false, zero, and empty containers all count as absent.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func floatOr(value any, fallback float64) float64 {
	if f, ok := toFloat(value); ok {
		return f
	}
	return fallback
}

func stringValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

var notANumber = math.NaN()
