package workflow

// Point is a two-dimensional coordinate or extent.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Shape classifies a pos/size attribute against the two-element array-like rule.
type Shape int

const (
	// ShapeAbsent means the attribute is missing or empty.
	ShapeAbsent Shape = iota
	// ShapeValid means the attribute is a two-element array-like.
	ShapeValid
	// ShapeMalformed means the attribute is present but has the wrong shape.
	ShapeMalformed
)

func (s Shape) String() string {
	switch s {
	case ShapeValid:
		return "valid"
	case ShapeMalformed:
		return "malformed"
	default:
		return "absent"
	}
}

// MarshalText renders the shape name in JSON output.
func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Node is one graph element reduced to the attributes the linter inspects.
type Node struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Type      string `json:"type,omitempty"`
	Pinned    bool   `json:"pinned"`
	Position  Point  `json:"position"`
	Size      Point  `json:"size"`
	PosShape  Shape  `json:"pos_shape"`
	SizeShape Shape  `json:"size_shape"`
}

// IsTwoElementArrayLike reports whether value is a sequence of exactly two
// elements, or a mapping whose only keys are "0" and "1". Element types are
// not inspected.
func IsTwoElementArrayLike(value any) bool {
	switch v := value.(type) {
	case []any:
		return len(v) == 2
	case map[string]any:
		if len(v) != 2 {
			return false
		}
		_, has0 := v["0"]
		_, has1 := v["1"]
		return has0 && has1
	default:
		return false
	}
}

func nodeFromTree(raw map[string]any) Node {
	node := Node{
		Name:      nodeName(raw),
		Pinned:    nodePinned(raw),
		Position:  pointFromValue(raw["pos"]),
		Size:      pointFromValue(raw["size"]),
		PosShape:  classify(raw["pos"]),
		SizeShape: classify(raw["size"]),
	}
	if id, ok := stringValue(raw["id"]); ok {
		node.ID = id
	}
	if typ, ok := raw["type"].(string); ok {
		node.Type = typ
	}
	return node
}

// nodeName prefers the title, rendering numeric or boolean titles as text.
// A null title falls through to the type.
func nodeName(raw map[string]any) string {
	if title, ok := stringValue(raw["title"]); ok {
		return title
	}
	if typ, ok := raw["type"].(string); ok {
		return typ
	}
	return "?"
}

func nodePinned(raw map[string]any) bool {
	flags, ok := raw["flags"].(map[string]any)
	if !ok {
		return false
	}
	return truthy(flags["pinned"])
}

// pointFromValue resolves a coordinate pair: sequences use elements 0 and 1,
// mappings use the string keys "0" and "1", anything else is the origin.
func pointFromValue(value any) Point {
	var p Point
	switch v := value.(type) {
	case []any:
		if len(v) > 0 {
			p.X = floatOr(v[0], 0)
		}
		if len(v) > 1 {
			p.Y = floatOr(v[1], 0)
		}
	case map[string]any:
		p.X = floatOr(v["0"], 0)
		p.Y = floatOr(v["1"], 0)
	}
	return p
}

func classify(value any) Shape {
	if !truthy(value) {
		return ShapeAbsent
	}
	if IsTwoElementArrayLike(value) {
		return ShapeValid
	}
	return ShapeMalformed
}
