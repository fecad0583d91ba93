package domain

import "time"

// ServiceWeek holds one department-week of operational metrics
type ServiceWeek struct {
	Service             string  `json:"service"`
	Week                int     `json:"week"`
	AvailableBeds       int     `json:"available_beds"`
	PatientsRequest     int     `json:"patients_request"`
	PatientsAdmitted    int     `json:"patients_admitted"`
	PatientsRefused     int     `json:"patients_refused"`
	PatientSatisfaction float64 `json:"patient_satisfaction"`
	AcceptanceRate      float64 `json:"acceptance_rate"`
	StaffMorale         float64 `json:"staff_morale"`

	// Derived rates, populated by Derive
	RefusalRate     float64 `json:"refusal_rate"`
	UtilizationRate float64 `json:"utilization_rate"`
	PressureIndex   float64 `json:"pressure_index"`
}

// Derive fills in the rates computed from the raw counters.
// Zero denominators are treated as one so a week with no capacity or no
// demand yields a rate of zero instead of a division error.
func (s *ServiceWeek) Derive() {
	requests := s.PatientsRequest
	if requests == 0 {
		requests = 1
	}
	beds := s.AvailableBeds
	if beds == 0 {
		beds = 1
	}
	s.RefusalRate = round1(float64(s.PatientsRefused) / float64(requests) * 100)
	s.UtilizationRate = round1(float64(s.PatientsAdmitted) / float64(beds) * 100)
	s.PressureIndex = round2(float64(s.PatientsRequest) / float64(beds))
}

// Patient holds a single admission record
type Patient struct {
	ID            string    `json:"id"`
	Service       string    `json:"service"`
	Age           int       `json:"age"`
	ArrivalDate   time.Time `json:"arrival_date"`
	DepartureDate time.Time `json:"departure_date"`

	// Derived fields, populated by Derive
	LengthOfStay int `json:"length_of_stay"`
	ArrivalWeek  int `json:"arrival_week"`
}

// Derive fills in length of stay and ISO arrival week
func (p *Patient) Derive() {
	p.LengthOfStay = int(p.DepartureDate.Sub(p.ArrivalDate).Hours() / 24)
	_, p.ArrivalWeek = p.ArrivalDate.ISOWeek()
}

// StaffShift holds one staff member's assignment for a given week
type StaffShift struct {
	StaffID string   `json:"staff_id"`
	Name    string   `json:"name"`
	Service string   `json:"service"`
	Role    RoleName `json:"role"`
	Week    int      `json:"week"`
	Working bool     `json:"working"`
}

func round1(v float64) float64 {
	if v < 0 {
		return float64(int(v*10-0.5)) / 10
	}
	return float64(int(v*10+0.5)) / 10
}

func round2(v float64) float64 {
	if v < 0 {
		return float64(int(v*100-0.5)) / 100
	}
	return float64(int(v*100+0.5)) / 100
}
