package doctor

import "github.com/clinicdesk/clinicdesk/internal/domain/person"

// Factory builds doctors from positional field input. The additional list
// is interpreted as: [0] specialty, [1] license number.
type Factory struct{}

var _ person.Factory = Factory{}

func (Factory) CreatePerson(id, name, phone string, additional ...string) (person.Person, error) {
	if err := person.ValidateRequired(id, name, phone); err != nil {
		return nil, err
	}

	specialty := person.Additional(additional, 0, DefaultSpecialty)
	license := person.Additional(additional, 1, DefaultLicenseNumber)

	return New(id, name, phone, Options{Specialty: specialty, LicenseNumber: license}), nil
}
