package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/TNKompanska19/Visualization-Group-25/internal/domain"
)

// MarkersFile is the optional annotations file inside the data directory
const MarkersFile = "annotations.yaml"

// markerColors maps event kinds to their chart colors
var markerColors = map[domain.EventKind]string{
	domain.EventFlu:      "#c0392b",
	domain.EventStrike:   "#f39c12",
	domain.EventDonation: "#16a085",
}

type markersDoc struct {
	Events []domain.EventMarker `yaml:"events"`
}

// LoadMarkers reads the calendar event annotations from a YAML file.
// Markers without an explicit color inherit the default for their kind.
func LoadMarkers(path string) ([]domain.EventMarker, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc markersDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for i := range doc.Events {
		m := &doc.Events[i]
		if m.Week < 1 || m.Week > 52 {
			return nil, fmt.Errorf("marker %q: week %d out of range", m.Label, m.Week)
		}
		if m.Color == "" {
			m.Color = markerColors[m.Kind]
		}
	}
	return doc.Events, nil
}

// DefaultMarkers returns the built-in event calendar used when no
// annotations file is present.
func DefaultMarkers() []domain.EventMarker {
	return []domain.EventMarker{
		{Week: 8, Kind: domain.EventFlu, Label: "Flu outbreak", Color: markerColors[domain.EventFlu]},
		{Week: 23, Kind: domain.EventStrike, Label: "Nursing strike", Color: markerColors[domain.EventStrike]},
		{Week: 41, Kind: domain.EventDonation, Label: "Equipment donation", Color: markerColors[domain.EventDonation]},
	}
}
