// Package service holds the dashboard business logic: metric filtering,
// department aggregation, staff-network construction, and the event bus
// that fans state changes out to connected clients.
package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/TNKompanska19/Visualization-Group-25/internal/data"
	"github.com/TNKompanska19/Visualization-Group-25/internal/domain"
	"github.com/TNKompanska19/Visualization-Group-25/internal/scene"
)

// Filter narrows the dataset for the overview charts
type Filter struct {
	Departments   []string `json:"departments,omitempty"`
	WeekFrom      int      `json:"week_from,omitempty"`
	WeekTo        int      `json:"week_to,omitempty"`
	HideAnomalies bool     `json:"hide_anomalies,omitempty"`
}

func (f Filter) matches(sw domain.ServiceWeek) bool {
	return f.matchesWeek(sw.Week) && f.inDepartments(sw.Service)
}

// matchesPatient filters admissions by their arrival week
func (f Filter) matchesPatient(p domain.Patient) bool {
	return f.matchesWeek(p.ArrivalWeek) && f.inDepartments(p.Service)
}

func (f Filter) matchesWeek(week int) bool {
	if f.HideAnomalies && domain.IsAnomalyWeek(week) {
		return false
	}
	if f.WeekFrom > 0 && week < f.WeekFrom {
		return false
	}
	if f.WeekTo > 0 && week > f.WeekTo {
		return false
	}
	return true
}

func (f Filter) inDepartments(service string) bool {
	if len(f.Departments) == 0 {
		return true
	}
	for _, d := range f.Departments {
		if d == service {
			return true
		}
	}
	return false
}

// DeptSummary aggregates a department's metrics over the filtered weeks
type DeptSummary struct {
	Service            string  `json:"service"`
	Weeks              int     `json:"weeks"`
	AvgRefusalRate     float64 `json:"avg_refusal_rate"`
	AvgUtilizationRate float64 `json:"avg_utilization_rate"`
	AvgPressureIndex   float64 `json:"avg_pressure_index"`
	AvgSatisfaction    float64 `json:"avg_satisfaction"`
	AvgMorale          float64 `json:"avg_morale"`
}

// DashboardService answers the dashboard's data questions
type DashboardService struct {
	store *data.Store
	bus   *EventBus
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(store *data.Store, bus *EventBus) *DashboardService {
	return &DashboardService{store: store, bus: bus}
}

// Services returns the weekly metrics matching the filter, ordered by
// service then week.
func (s *DashboardService) Services(f Filter) []domain.ServiceWeek {
	var out []domain.ServiceWeek
	for _, sw := range s.store.Services() {
		if f.matches(sw) {
			out = append(out, sw)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Service != out[j].Service {
			return out[i].Service < out[j].Service
		}
		return out[i].Week < out[j].Week
	})
	return out
}

// Summaries aggregates the filtered weeks per department
func (s *DashboardService) Summaries(f Filter) []DeptSummary {
	byDept := make(map[string]*DeptSummary)
	var order []string
	for _, sw := range s.Services(f) {
		sum, ok := byDept[sw.Service]
		if !ok {
			sum = &DeptSummary{Service: sw.Service}
			byDept[sw.Service] = sum
			order = append(order, sw.Service)
		}
		sum.Weeks++
		sum.AvgRefusalRate += sw.RefusalRate
		sum.AvgUtilizationRate += sw.UtilizationRate
		sum.AvgPressureIndex += sw.PressureIndex
		sum.AvgSatisfaction += sw.PatientSatisfaction
		sum.AvgMorale += sw.StaffMorale
	}

	out := make([]DeptSummary, 0, len(order))
	for _, svc := range order {
		sum := byDept[svc]
		n := float64(sum.Weeks)
		sum.AvgRefusalRate /= n
		sum.AvgUtilizationRate /= n
		sum.AvgPressureIndex /= n
		sum.AvgSatisfaction /= n
		sum.AvgMorale /= n
		out = append(out, *sum)
	}
	return out
}

// StaySummary aggregates a department's admissions over the filtered weeks
type StaySummary struct {
	Service        string  `json:"service"`
	Admissions     int     `json:"admissions"`
	AvgStayDays    float64 `json:"avg_stay_days"`
	MedianStayDays float64 `json:"median_stay_days"`
	MaxStayDays    int     `json:"max_stay_days"`
	AvgAge         float64 `json:"avg_age"`
}

// Patients returns the admissions matching the filter, ordered by service
// then arrival week.
func (s *DashboardService) Patients(f Filter) []domain.Patient {
	var out []domain.Patient
	for _, p := range s.store.Patients() {
		if f.matchesPatient(p) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Service != out[j].Service {
			return out[i].Service < out[j].Service
		}
		return out[i].ArrivalWeek < out[j].ArrivalWeek
	})
	return out
}

// StaySummaries aggregates length of stay per department over the filtered
// admissions.
func (s *DashboardService) StaySummaries(f Filter) []StaySummary {
	byDept := make(map[string][]domain.Patient)
	var order []string
	for _, p := range s.Patients(f) {
		if _, ok := byDept[p.Service]; !ok {
			order = append(order, p.Service)
		}
		byDept[p.Service] = append(byDept[p.Service], p)
	}

	out := make([]StaySummary, 0, len(order))
	for _, svc := range order {
		patients := byDept[svc]
		sum := StaySummary{Service: svc, Admissions: len(patients)}
		stays := make([]int, 0, len(patients))
		for _, p := range patients {
			sum.AvgStayDays += float64(p.LengthOfStay)
			sum.AvgAge += float64(p.Age)
			if p.LengthOfStay > sum.MaxStayDays {
				sum.MaxStayDays = p.LengthOfStay
			}
			stays = append(stays, p.LengthOfStay)
		}
		n := float64(len(patients))
		sum.AvgStayDays /= n
		sum.AvgAge /= n
		sum.MedianStayDays = median(stays)
		out = append(out, sum)
	}
	return out
}

// median of a non-empty int slice; the mean of the middle pair for even
// lengths
func median(values []int) float64 {
	sort.Ints(values)
	mid := len(values) / 2
	if len(values)%2 == 1 {
		return float64(values[mid])
	}
	return float64(values[mid-1]+values[mid]) / 2
}

// Markers returns the calendar event markers
func (s *DashboardService) Markers() []domain.EventMarker {
	return s.store.Markers()
}

// PublishFilters broadcasts a filter change to connected clients
func (s *DashboardService) PublishFilters(f Filter) {
	s.bus.Publish(Event{Type: EventFiltersChanged, Payload: f})
}

// Network layout radii, in scene units
const (
	roleRingRadius  = 120.0
	staffRingRadius = 260.0
)

// BuildNetwork populates g with the staff network of one department for a
// given week: the department at the center, its roles on an inner ring, and
// the staff working that week on an outer ring around their role.
func (s *DashboardService) BuildNetwork(g *scene.Graph, dept string, week int) error {
	shifts := s.shiftsFor(dept, week)
	if len(shifts) == 0 {
		return fmt.Errorf("no schedule for %s week %d", dept, week)
	}

	byRole := make(map[domain.RoleName][]domain.StaffShift)
	var roles []domain.RoleName
	for _, sh := range shifts {
		if _, ok := byRole[sh.Role]; !ok {
			roles = append(roles, sh.Role)
		}
		byRole[sh.Role] = append(byRole[sh.Role], sh)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })

	g.Clear()

	deptNode := domain.NewNode(dept, domain.NodeTypeDepartment, dept)
	deptNode.SetProperty("week", week)
	g.AddNode(deptNode, domain.Position{X: 0, Y: 0})

	for ri, role := range roles {
		angle := 2 * math.Pi * float64(ri) / float64(len(roles))
		roleID := fmt.Sprintf("%s_%s", dept, role)
		roleNode := domain.NewNode(roleID, domain.NodeTypeRole, string(role))
		roleNode.SetProperty("role", string(role))
		rolePos := domain.Position{
			X: roleRingRadius * math.Cos(angle),
			Y: roleRingRadius * math.Sin(angle),
		}
		g.AddNode(roleNode, rolePos)
		g.AddEdge(domain.NewEdge(dept, roleID, domain.EdgeTypeStaffing))

		members := byRole[role]
		// Staff fan out within their role's slice of the outer ring
		span := 2 * math.Pi / float64(len(roles))
		for si, sh := range members {
			frac := (float64(si) + 0.5) / float64(len(members))
			a := angle - span/2 + span*frac
			staffNode := domain.NewNode(sh.StaffID, domain.NodeTypeStaff, sh.Name)
			staffNode.SetProperty("role", string(sh.Role))
			g.AddNode(staffNode, domain.Position{
				X: staffRingRadius * math.Cos(a),
				Y: staffRingRadius * math.Sin(a),
			})
			g.AddEdge(domain.NewEdge(roleID, sh.StaffID, domain.EdgeTypeAssignment))
		}
	}

	return nil
}

// shiftsFor returns the working shifts of one department-week
func (s *DashboardService) shiftsFor(dept string, week int) []domain.StaffShift {
	var out []domain.StaffShift
	for _, sh := range s.store.Schedule() {
		if sh.Service == dept && sh.Week == week && sh.Working {
			out = append(out, sh)
		}
	}
	return out
}

// Departments returns the distinct department names in the dataset
func (s *DashboardService) Departments() []string {
	seen := make(map[string]bool)
	var out []string
	for _, sw := range s.store.Services() {
		if !seen[sw.Service] {
			seen[sw.Service] = true
			out = append(out, sw.Service)
		}
	}
	sort.Strings(out)
	return out
}
