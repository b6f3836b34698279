// Package seed loads a synthetic demo dataset into a clinic registry.
// Suitable for developer on-boarding and for exercising observers without
// the interactive front end.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/clinicdesk/clinicdesk/internal/domain/appointment"
	"github.com/clinicdesk/clinicdesk/internal/domain/doctor"
	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/internal/pricing"
	"github.com/clinicdesk/clinicdesk/internal/registry"
)

// Config controls the volume and shape of generated demo data.
type Config struct {
	PatientCount       int
	DoctorCount        int
	AppointmentsPerDay int
	Days               int
	SpecialistShare    float64
	Seed               int64
	SpecialistStrategy pricing.Strategy
}

// DefaultConfig returns a small, reproducible demo dataset.
func DefaultConfig() Config {
	return Config{
		PatientCount:       8,
		DoctorCount:        3,
		AppointmentsPerDay: 4,
		Days:               2,
		SpecialistShare:    0.5,
		Seed:               1,
	}
}

var (
	patientNames = []string{"Ana Gómez", "Luis Pérez", "Marta Ruiz", "Carlos Díaz", "Lucía Torres", "Jorge Ramos", "Elena Castro", "Pablo Vargas"}
	doctorNames  = []string{"Dr. Sofía Herrera", "Dr. Andrés Molina", "Dr. Carmen Ortiz", "Dr. Felipe Rojas"}
	specialties  = []string{"Cardiology", "Dermatology", "Pediatrics", doctor.DefaultSpecialty}
)

// Load populates the registry with synthetic patients, doctors and
// appointments. Record ids are generated; appointment ids come from the
// registry sequence as usual.
func Load(clinic *registry.Clinic, cfg Config) error {
	rng := rand.New(rand.NewSource(cfg.Seed))

	specialist := cfg.SpecialistStrategy
	if specialist == nil {
		specialist = pricing.Specialist()
	}

	patients := make([]*patient.Patient, 0, cfg.PatientCount)
	for i := 0; i < cfg.PatientCount; i++ {
		p := patient.New(
			uuid.NewString(),
			patientNames[i%len(patientNames)],
			fmt.Sprintf("555-%04d", rng.Intn(10000)),
			fmt.Sprintf("H-%03d", i+1),
			patient.Options{Address: fmt.Sprintf("Calle %d #%d-%d", rng.Intn(80)+1, rng.Intn(20)+1, rng.Intn(90)+1)},
		)
		if err := clinic.AddPatient(p); err != nil {
			return fmt.Errorf("seeding patient %d: %w", i+1, err)
		}
		patients = append(patients, p)
	}

	doctors := make([]*doctor.Doctor, 0, cfg.DoctorCount)
	for i := 0; i < cfg.DoctorCount; i++ {
		d := doctor.New(
			uuid.NewString(),
			doctorNames[i%len(doctorNames)],
			fmt.Sprintf("555-%04d", rng.Intn(10000)),
			doctor.Options{
				Specialty:     specialties[i%len(specialties)],
				LicenseNumber: fmt.Sprintf("LIC-%05d", rng.Intn(100000)),
			},
		)
		if err := clinic.AddDoctor(d); err != nil {
			return fmt.Errorf("seeding doctor %d: %w", i+1, err)
		}
		doctors = append(doctors, d)
	}

	if len(patients) == 0 || len(doctors) == 0 {
		return nil
	}

	day := time.Now().Truncate(24 * time.Hour).Add(9 * time.Hour)
	for d := 0; d < cfg.Days; d++ {
		for slot := 0; slot < cfg.AppointmentsPerDay; slot++ {
			strategy := pricing.Standard()
			if rng.Float64() < cfg.SpecialistShare {
				strategy = specialist
			}

			base := decimal.NewFromInt(int64(40 + rng.Intn(9)*10))
			appt, err := appointment.New(
				patients[rng.Intn(len(patients))],
				doctors[rng.Intn(len(doctors))],
				day.AddDate(0, 0, d).Add(time.Duration(slot)*30*time.Minute),
				base,
				strategy,
			)
			if err != nil {
				return fmt.Errorf("seeding appointment: %w", err)
			}
			clinic.AddAppointment(appt)
		}
	}

	return nil
}
