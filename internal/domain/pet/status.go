package pet

import "fmt"

// Status represents where a listing is in the adoption lifecycle.
type Status string

const (
	StatusAvailable Status = "Disponible"
	StatusInProcess Status = "En proceso"
	// StatusAdopted exists in the data model but no operation reaches it yet.
	StatusAdopted Status = "Adoptado"
)

// validTransitions defines the state machine for listing status transitions.
var validTransitions = map[Status][]Status{
	StatusAvailable: {StatusInProcess},
	StatusInProcess: {StatusAvailable},
	StatusAdopted:   {},
}

// IsValid returns true if the status is a recognized listing status.
func (s Status) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid pet status: %s", s)
	}
	return status, nil
}
