package person

import "strings"

// Factory constructs a person-like record from primitive field input.
// The variable-length additional list is positional and interpreted per
// variant; missing entries fall back to the variant's documented defaults,
// so a factory never fails on absent optional data.
type Factory interface {
	CreatePerson(id, name, phone string, additional ...string) (Person, error)
}

// Additional returns additional[i], or fallback when the entry is missing
// or blank. Shared by the factory variants.
func Additional(additional []string, i int, fallback string) string {
	if i >= len(additional) {
		return fallback
	}
	if v := strings.TrimSpace(additional[i]); v != "" {
		return v
	}
	return fallback
}

// ValidateRequired checks the fields every variant requires. Returns a
// *ValidationError listing everything that is missing.
func ValidateRequired(id, name, phone string) error {
	var fields []string

	if strings.TrimSpace(id) == "" {
		fields = append(fields, "id is required")
	}
	if strings.TrimSpace(name) == "" {
		fields = append(fields, "name is required")
	}
	if strings.TrimSpace(phone) == "" {
		fields = append(fields, "phone is required")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
