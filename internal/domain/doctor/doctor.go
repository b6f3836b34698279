package doctor

import (
	"fmt"
	"strings"

	"github.com/clinicdesk/clinicdesk/internal/domain/person"
)

const (
	// DefaultSpecialty is assigned when no specialty is supplied.
	DefaultSpecialty = "General"
	// DefaultLicenseNumber is the sentinel for an unknown license.
	DefaultLicenseNumber = "N/A"
)

// Doctor is a practitioner who attends appointments at the clinic.
type Doctor struct {
	person.Record

	Specialty     string
	LicenseNumber string
}

// Options carries the optional doctor fields with their documented defaults.
type Options struct {
	// Specialty defaults to DefaultSpecialty when blank.
	Specialty string
	// LicenseNumber defaults to DefaultLicenseNumber when blank.
	LicenseNumber string
}

// New builds a doctor from its required fields plus options. The zero
// Options value yields the documented defaults.
func New(id, name, phone string, opts Options) *Doctor {
	specialty := strings.TrimSpace(opts.Specialty)
	if specialty == "" {
		specialty = DefaultSpecialty
	}
	license := strings.TrimSpace(opts.LicenseNumber)
	if license == "" {
		license = DefaultLicenseNumber
	}

	return &Doctor{
		Record: person.Record{
			ID:    strings.TrimSpace(id),
			Name:  strings.TrimSpace(name),
			Phone: strings.TrimSpace(phone),
		},
		Specialty:     specialty,
		LicenseNumber: license,
	}
}

func (d *Doctor) Details() string {
	return fmt.Sprintf("Doctor: %s, Specialty: %s", d.Name, d.Specialty)
}
