package domain

// EventKind identifies a notable hospital calendar event
type EventKind string

const (
	EventFlu      EventKind = "flu"
	EventStrike   EventKind = "strike"
	EventDonation EventKind = "donation"
)

// EventMarker tags a week with a calendar event shown on the overview chart
type EventMarker struct {
	Week  int       `json:"week" yaml:"week"`
	Kind  EventKind `json:"kind" yaml:"kind"`
	Label string    `json:"label" yaml:"label"`
	Color string    `json:"color" yaml:"color"`
}

// AnomalyWeeks lists the weeks whose source records are corrupted.
// Every third week of the year, per the data provider's errata.
var AnomalyWeeks = []int{3, 6, 9, 12, 15, 18, 21, 24, 27, 30, 33, 36, 39, 42, 45, 48, 51}

// IsAnomalyWeek reports whether the given week is in the corrupted set
func IsAnomalyWeek(week int) bool {
	return week >= 3 && week <= 51 && week%3 == 0
}

// NearestValidWeek returns the closest week outside the corrupted set.
// Ties snap downward (week 3 → 2, not 4).
func NearestValidWeek(week int) int {
	if !IsAnomalyWeek(week) {
		return week
	}
	for d := 1; d <= 52; d++ {
		if w := week - d; w >= 1 && !IsAnomalyWeek(w) {
			return w
		}
		if w := week + d; w <= 52 && !IsAnomalyWeek(w) {
			return w
		}
	}
	return week
}
