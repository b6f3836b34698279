package person

import "fmt"

// Record holds the fields every person-like entity in the clinic shares.
// It is embedded by the concrete variants (patient, doctor); ID identifies
// the record within its own collection and never changes after creation.
type Record struct {
	ID    string
	Name  string
	Phone string
}

func (r Record) Identity() Record {
	return r
}

func (r Record) String() string {
	return fmt.Sprintf("%s (ID: %s)", r.Name, r.ID)
}

// Person is the closed capability shared by patients and doctors.
type Person interface {
	Identity() Record
	Details() string
}
