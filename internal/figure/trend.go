package figure

import (
	"github.com/TNKompanska19/Visualization-Group-25/internal/domain"
)

// Department color palette, consistent across all views
var deptColors = map[string]string{
	"emergency":        "#e74c3c",
	"surgery":          "#3498db",
	"general_medicine": "#27ae60",
	"ICU":              "#9b59b6",
}

// DeptColor returns the palette color for a department, grey for unknown ones
func DeptColor(service string) string {
	if c, ok := deptColors[service]; ok {
		return c
	}
	return "#95a5a6"
}

// NewTrendFigure builds the overview trend figure: one satisfaction line per
// department across weeks, calendar event markers as vertical lines, and the
// highlight rectangle as the first overlay shape so SyncHighlight can find
// it.
func NewTrendFigure(rows []domain.ServiceWeek, highlight [2]float64, markers []domain.EventMarker) Figure {
	byService := make(map[string][]domain.ServiceWeek)
	var order []string
	for _, row := range rows {
		if _, ok := byService[row.Service]; !ok {
			order = append(order, row.Service)
		}
		byService[row.Service] = append(byService[row.Service], row)
	}

	data := make([]any, 0, len(order))
	for _, service := range order {
		weeks := make([]any, 0, len(byService[service]))
		values := make([]any, 0, len(byService[service]))
		for _, row := range byService[service] {
			weeks = append(weeks, row.Week)
			values = append(values, row.PatientSatisfaction)
		}
		data = append(data, map[string]any{
			"type": "scatter",
			"mode": "lines",
			"name": service,
			"x":    weeks,
			"y":    values,
			"line": map[string]any{"color": DeptColor(service), "width": 2},
		})
	}

	shapes := []any{
		// shapes[0] is the week highlight rectangle; keep it first
		map[string]any{
			"type":      "rect",
			"xref":      "x",
			"yref":      "paper",
			"x0":        highlight[0],
			"x1":        highlight[1],
			"y0":        0,
			"y1":        1,
			"fillcolor": "rgba(52, 152, 219, 0.15)",
			"line":      map[string]any{"width": 0},
		},
	}
	for _, m := range markers {
		shapes = append(shapes, map[string]any{
			"type": "line",
			"xref": "x",
			"yref": "paper",
			"x0":   m.Week,
			"x1":   m.Week,
			"y0":   0,
			"y1":   1,
			"line": map[string]any{"color": m.Color, "width": 1, "dash": "dot"},
		})
	}

	return Figure{
		"data": data,
		"layout": map[string]any{
			"template":      "plotly_white",
			"showlegend":    true,
			"plot_bgcolor":  "white",
			"paper_bgcolor": "rgba(0,0,0,0)",
			"margin":        map[string]any{"l": 40, "r": 10, "t": 30, "b": 30},
			"xaxis":         map[string]any{"title": "Week", "range": []any{WeekDomainLo, WeekDomainHi}},
			"yaxis":         map[string]any{"title": "Patient satisfaction"},
			"shapes":        shapes,
		},
	}
}
