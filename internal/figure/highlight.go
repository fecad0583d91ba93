package figure

// Valid horizontal domain for the week sparkline: half a cell of padding on
// either side of weeks 1..52.
const (
	WeekDomainLo = 0.5
	WeekDomainHi = 52.5
)

// SyncHighlight keeps the highlight rectangle on the week sparkline in step
// with pan/zoom on the companion chart. It extracts the target x-range from
// the relayout payload, clamps it to the week domain, and rewrites the first
// overlay shape's horizontal extent on a clone of fig; everything else in the
// figure is preserved as-is. An autorange reset falls back to the supplied
// default range.
//
// The second return is false when nothing usable is in the payload or the
// figure carries no overlay shape; in that case the first return is nil and
// the caller's figure is left untouched — there is never a partial update.
func SyncHighlight(payload Relayout, fig Figure, fallback [2]float64) (Figure, bool) {
	xr, ok := ExtractXRange(payload)
	if !ok {
		return nil, false
	}

	if xr.Autorange {
		xr = XRange{Lo: fallback[0], Hi: fallback[1]}
	} else {
		xr = xr.Clamp(WeekDomainLo, WeekDomainHi)
	}

	if len(fig.Shapes()) == 0 {
		return nil, false
	}

	updated := fig.Clone()
	shape, ok := updated.Shapes()[0].(map[string]any)
	if !ok {
		return nil, false
	}
	shape["x0"] = xr.Lo
	shape["x1"] = xr.Hi
	return updated, true
}
