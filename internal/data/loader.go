// Package data loads the hospital operations dataset and keeps it fresh.
//
// The dataset is a directory of CSV files (weekly service metrics, patient
// admissions, staff schedules) plus an optional YAML annotations file with
// calendar event markers. When no directory is configured, a deterministic
// synthetic dataset is generated so the dashboard works out of the box.
package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/TNKompanska19/Visualization-Group-25/internal/domain"
)

// Dataset file names inside the data directory
const (
	ServicesFile = "services_weekly.csv"
	PatientsFile = "patients.csv"
	ScheduleFile = "staff_schedule.csv"
)

// Store holds the loaded dataset. Reload swaps the contents atomically, so
// readers always see a consistent snapshot.
type Store struct {
	mu       sync.RWMutex
	dir      string
	services []domain.ServiceWeek
	patients []domain.Patient
	schedule []domain.StaffShift
	markers  []domain.EventMarker
}

// Load reads the dataset from dir. An empty dir yields the synthetic
// dataset.
func Load(dir string) (*Store, error) {
	s := &Store{dir: dir}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the dataset from disk. On any error the previous contents
// stay in place.
func (s *Store) Reload() error {
	if s.dir == "" {
		services, patients, schedule := Synthesize(defaultSynthSeed)
		s.swap(services, patients, schedule, DefaultMarkers())
		return nil
	}

	services, err := loadServices(filepath.Join(s.dir, ServicesFile))
	if err != nil {
		return fmt.Errorf("load services: %w", err)
	}
	patients, err := loadPatients(filepath.Join(s.dir, PatientsFile))
	if err != nil {
		return fmt.Errorf("load patients: %w", err)
	}
	schedule, err := loadSchedule(filepath.Join(s.dir, ScheduleFile))
	if err != nil {
		return fmt.Errorf("load schedule: %w", err)
	}

	markers, err := LoadMarkers(filepath.Join(s.dir, MarkersFile))
	if err != nil {
		// Annotations are optional; fall back to the built-in calendar
		log.Warnf("load markers: %v, using defaults", err)
		markers = DefaultMarkers()
	}

	s.swap(services, patients, schedule, markers)
	log.Infof("dataset loaded: %d service-weeks, %d patients, %d shifts",
		len(services), len(patients), len(schedule))
	return nil
}

func (s *Store) swap(services []domain.ServiceWeek, patients []domain.Patient, schedule []domain.StaffShift, markers []domain.EventMarker) {
	s.mu.Lock()
	s.services = services
	s.patients = patients
	s.schedule = schedule
	s.markers = markers
	s.mu.Unlock()
}

// Services returns all weekly service records
func (s *Store) Services() []domain.ServiceWeek {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.services
}

// Patients returns all admission records
func (s *Store) Patients() []domain.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.patients
}

// Schedule returns all staff shift records
func (s *Store) Schedule() []domain.StaffShift {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schedule
}

// Markers returns the calendar event markers
func (s *Store) Markers() []domain.EventMarker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.markers
}

func loadServices(path string) ([]domain.ServiceWeek, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ServiceWeek, 0, len(rows))
	for _, row := range rows {
		sw := domain.ServiceWeek{
			Service:             row.str("service"),
			Week:                row.num("week"),
			AvailableBeds:       row.num("available_beds"),
			PatientsRequest:     row.num("patients_request"),
			PatientsAdmitted:    row.num("patients_admitted"),
			PatientsRefused:     row.num("patients_refused"),
			PatientSatisfaction: row.float("patient_satisfaction"),
			AcceptanceRate:      row.float("acceptance_rate"),
			StaffMorale:         row.float("staff_morale"),
		}
		sw.Derive()
		out = append(out, sw)
	}
	return out, nil
}

func loadPatients(path string) ([]domain.Patient, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Patient, 0, len(rows))
	for _, row := range rows {
		p := domain.Patient{
			ID:            row.str("id"),
			Service:       row.str("service"),
			Age:           row.num("age"),
			ArrivalDate:   row.date("arrival_date"),
			DepartureDate: row.date("departure_date"),
		}
		p.Derive()
		out = append(out, p)
	}
	return out, nil
}

func loadSchedule(path string) ([]domain.StaffShift, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	out := make([]domain.StaffShift, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.StaffShift{
			StaffID: row.str("staff_id"),
			Name:    row.str("name"),
			Service: row.str("service"),
			Role:    domain.RoleName(row.str("role")),
			Week:    row.num("week"),
			Working: row.str("working") == "1" || row.str("working") == "true",
		})
	}
	return out, nil
}

// record is one CSV row with header-based field access
type record struct {
	header map[string]int
	fields []string
}

func (r record) str(col string) string {
	i, ok := r.header[col]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return r.fields[i]
}

func (r record) num(col string) int {
	n, _ := strconv.Atoi(r.str(col))
	return n
}

func (r record) float(col string) float64 {
	f, _ := strconv.ParseFloat(r.str(col), 64)
	return f
}

func (r record) date(col string) time.Time {
	t, _ := time.Parse("2006-01-02", r.str(col))
	return t
}

func readCSV(path string) ([]record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	headerRow, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header := make(map[string]int, len(headerRow))
	for i, name := range headerRow {
		header[name] = i
	}

	var rows []record
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		rows = append(rows, record{header: header, fields: fields})
	}
	return rows, nil
}
