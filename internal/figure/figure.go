// Package figure manipulates chart figure documents.
//
// A figure is the JSON document a chart frontend renders: traces under "data"
// and styling under "layout", including the ordered "layout.shapes" overlay
// list. Figures cross the wire as plain JSON, so they are modeled as nested
// maps rather than structs; the handful of operations the dashboard needs
// (cloning, shape access, highlight-range rewriting) live here.
package figure

// Figure is a chart document with "data" and "layout" keys
type Figure map[string]any

// Clone returns a deep copy of the figure. Mutating the clone never affects
// the original.
func (f Figure) Clone() Figure {
	if f == nil {
		return nil
	}
	return Figure(deepCopyMap(f))
}

// Shapes returns the layout.shapes overlay list, or nil when absent
func (f Figure) Shapes() []any {
	layout, ok := f["layout"].(map[string]any)
	if !ok {
		return nil
	}
	shapes, ok := layout["shapes"].([]any)
	if !ok {
		return nil
	}
	return shapes
}

func deepCopyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return deepCopyMap(v)
	case Figure:
		return deepCopyMap(v)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = deepCopyValue(e)
		}
		return out
	default:
		return v
	}
}
