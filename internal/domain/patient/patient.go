package patient

import (
	"fmt"
	"strings"

	"github.com/clinicdesk/clinicdesk/internal/domain/person"
)

// DefaultAddress is the sentinel stored when no address is supplied.
const DefaultAddress = "N/A"

// Patient is a person registered for care at the clinic. ID, Name, Phone
// and HistoryNumber are required at creation; Address is optional.
type Patient struct {
	person.Record

	HistoryNumber string
	Address       string
}

// Options carries the optional patient fields with their documented defaults.
type Options struct {
	// Address of the patient. Defaults to DefaultAddress when blank.
	Address string
}

// New builds a patient from its required fields plus options. The zero
// Options value yields the documented defaults.
func New(id, name, phone, historyNumber string, opts Options) *Patient {
	address := strings.TrimSpace(opts.Address)
	if address == "" {
		address = DefaultAddress
	}

	return &Patient{
		Record: person.Record{
			ID:    strings.TrimSpace(id),
			Name:  strings.TrimSpace(name),
			Phone: strings.TrimSpace(phone),
		},
		HistoryNumber: strings.TrimSpace(historyNumber),
		Address:       address,
	}
}

func (p *Patient) Details() string {
	return fmt.Sprintf("Patient: %s, History: %s", p.Name, p.HistoryNumber)
}
