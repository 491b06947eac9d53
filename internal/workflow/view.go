package workflow

// ViewState is the graph editor camera persisted under extra.ds.
type ViewState struct {
	Offset Point
	Scale  float64
}

// DefaultView is the camera at the origin with 100% zoom.
var DefaultView = ViewState{Scale: 1}

// Displaced reports whether the pan offset is off the origin on either axis.
func (v ViewState) Displaced() bool {
	return v.Offset.X != 0 || v.Offset.Y != 0
}

// Unscaled reports whether the zoom is anything other than exactly 1.0.
// The comparison is strict: a scale that drifted to 1.0000001 through a
// save/load round trip is still reported.
func (v ViewState) Unscaled() bool {
	return v.Scale != 1
}

// viewFromTree reads extra.ds.offset and extra.ds.scale. An offset is only
// honoured when it is a sequence of at least two elements. Booleans count as
// 1 and 0; other non-numeric values become NaN so they never compare equal
// to the defaults.
func viewFromTree(root map[string]any) ViewState {
	view := DefaultView
	extra, ok := root["extra"].(map[string]any)
	if !ok {
		return view
	}
	ds, ok := extra["ds"].(map[string]any)
	if !ok {
		return view
	}
	if offset, ok := ds["offset"].([]any); ok && len(offset) >= 2 {
		view.Offset = Point{
			X: viewNumber(offset[0]),
			Y: viewNumber(offset[1]),
		}
	}
	if scale, ok := ds["scale"]; ok {
		view.Scale = viewNumber(scale)
	}
	return view
}

func viewNumber(value any) float64 {
	if b, ok := value.(bool); ok {
		if b {
			return 1
		}
		return 0
	}
	return floatOr(value, notANumber)
}
