package patient

import "github.com/clinicdesk/clinicdesk/internal/domain/person"

// Factory builds patients from positional field input. The additional list
// is interpreted as: [0] history number, [1] address. Both default when
// absent; history number falls back to "N/A" like the other optionals.
type Factory struct{}

var _ person.Factory = Factory{}

func (Factory) CreatePerson(id, name, phone string, additional ...string) (person.Person, error) {
	if err := person.ValidateRequired(id, name, phone); err != nil {
		return nil, err
	}

	historyNumber := person.Additional(additional, 0, "N/A")
	address := person.Additional(additional, 1, DefaultAddress)

	return New(id, name, phone, historyNumber, Options{Address: address}), nil
}
