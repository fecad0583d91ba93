package figure

import "strings"

// Relayout is the payload a chart emits after a pan, zoom, or axis reset.
// Key shapes vary: explicit bound pairs ("xaxis.range[0]"/"xaxis.range[1]"),
// a single two-element array ("xaxis.range"), or an autorange flag on a
// double-click reset. Shared-subplot charts emit the same keys under
// "xaxis2".
type Relayout map[string]any

// xAxes lists the axis prefixes a shared-subplot chart may report under
var xAxes = []string{"xaxis", "xaxis2"}

// XRange is the horizontal extent extracted from a relayout payload
type XRange struct {
	Lo, Hi    float64
	Autorange bool
}

// ExtractXRange pulls the target x-range out of a relayout payload, checking
// the three possible key shapes in priority order: paired explicit bounds,
// a single two-element bound array, then an autorange-reset flag. Explicit
// bounds beat an autorange flag when a payload carries both; chart frontends
// commonly emit a stale autorange:true alongside the new bounds, and the
// bounds are the user's intent. It returns ok=false when no usable range is
// present; malformed values are skipped, never an error.
func ExtractXRange(payload Relayout) (XRange, bool) {
	if len(payload) == 0 {
		return XRange{}, false
	}

	for _, ax := range xAxes {
		lo, okLo := toFloat(payload[ax+".range[0]"])
		hi, okHi := toFloat(payload[ax+".range[1]"])
		if okLo && okHi {
			return XRange{Lo: lo, Hi: hi}, true
		}
	}

	for _, ax := range xAxes {
		if rng, ok := payload[ax+".range"].([]any); ok && len(rng) == 2 {
			lo, okLo := toFloat(rng[0])
			hi, okHi := toFloat(rng[1])
			if okLo && okHi {
				return XRange{Lo: lo, Hi: hi}, true
			}
		}
	}

	// Reset/double-click reports autorange on some x-axis key
	for key, val := range payload {
		if strings.Contains(key, "xaxis") && strings.Contains(key, "autorange") {
			if flag, ok := val.(bool); ok && flag {
				return XRange{Autorange: true}, true
			}
		}
	}

	return XRange{}, false
}

// Clamp restricts the range to the valid week domain, swapping inverted
// bounds first
func (r XRange) Clamp(lo, hi float64) XRange {
	if r.Lo > r.Hi {
		r.Lo, r.Hi = r.Hi, r.Lo
	}
	if r.Lo < lo {
		r.Lo = lo
	}
	if r.Hi > hi {
		r.Hi = hi
	}
	return r
}

func toFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
