package data

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/TNKompanska19/Visualization-Group-25/internal/domain"
)

const defaultSynthSeed = 25

// synthServices lists the hospital departments in the synthetic dataset
var synthServices = []string{"emergency", "surgery", "general_medicine", "ICU"}

// staffing counts per department: doctors, nurses, nursing assistants
var synthStaffing = map[domain.RoleName]int{
	domain.RoleDoctor:           2,
	domain.RoleNurse:            3,
	domain.RoleNursingAssistant: 2,
}

// Synthesize builds a deterministic year of hospital data. The same seed
// always yields the same dataset, which keeps the dev dashboard and the
// tests stable.
func Synthesize(seed int64) ([]domain.ServiceWeek, []domain.Patient, []domain.StaffShift) {
	rng := rand.New(rand.NewSource(seed))

	var services []domain.ServiceWeek
	for _, svc := range synthServices {
		beds := 20 + rng.Intn(30)
		for week := 1; week <= 52; week++ {
			requests := beds/2 + rng.Intn(beds)
			admitted := requests
			if admitted > beds {
				admitted = beds
			}
			refused := requests - admitted
			sw := domain.ServiceWeek{
				Service:             svc,
				Week:                week,
				AvailableBeds:       beds,
				PatientsRequest:     requests,
				PatientsAdmitted:    admitted,
				PatientsRefused:     refused,
				PatientSatisfaction: 5.5 + rng.Float64()*4,
				AcceptanceRate:      float64(admitted) / float64(max(requests, 1)),
				StaffMorale:         4 + rng.Float64()*5,
			}
			if domain.IsAnomalyWeek(week) {
				// Corrupted source weeks: counters spike far beyond capacity
				sw.PatientsRequest = requests * 10
				sw.PatientsRefused = sw.PatientsRequest - admitted
				sw.PatientSatisfaction = 0
				sw.StaffMorale = 0
			}
			sw.Derive()
			services = append(services, sw)
		}
	}

	year := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var patients []domain.Patient
	id := 0
	for _, svc := range synthServices {
		n := 80 + rng.Intn(40)
		for i := 0; i < n; i++ {
			id++
			arrival := year.AddDate(0, 0, rng.Intn(358))
			stay := 1 + rng.Intn(14)
			p := domain.Patient{
				ID:            fmt.Sprintf("P%04d", id),
				Service:       svc,
				Age:           1 + rng.Intn(94),
				ArrivalDate:   arrival,
				DepartureDate: arrival.AddDate(0, 0, stay),
			}
			p.Derive()
			patients = append(patients, p)
		}
	}

	var schedule []domain.StaffShift
	for _, svc := range synthServices {
		for _, role := range []domain.RoleName{domain.RoleDoctor, domain.RoleNurse, domain.RoleNursingAssistant} {
			for i := 0; i < synthStaffing[role]; i++ {
				staffID := fmt.Sprintf("%s_%s_%d", svc, role, i+1)
				name := fmt.Sprintf("%s %d (%s)", roleTitle(role), i+1, svc)
				for week := 1; week <= 52; week++ {
					schedule = append(schedule, domain.StaffShift{
						StaffID: staffID,
						Name:    name,
						Service: svc,
						Role:    role,
						Week:    week,
						Working: rng.Float64() < 0.85,
					})
				}
			}
		}
	}

	return services, patients, schedule
}

func roleTitle(role domain.RoleName) string {
	switch role {
	case domain.RoleDoctor:
		return "Dr."
	case domain.RoleNurse:
		return "Nurse"
	case domain.RoleNursingAssistant:
		return "Assistant"
	default:
		return string(role)
	}
}
