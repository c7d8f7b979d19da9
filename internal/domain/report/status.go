package report

import "fmt"

// Type classifies what is being reported.
type Type string

const (
	TypePhysicalAbuse Type = "Maltrato Físico"
	TypeAbandonment   Type = "Abandono"
	TypeNeglect       Type = "Negligencia"
	TypeCruelty       Type = "Crueldad"
	TypeOther         Type = "Otro"
)

// IsValid returns true if the report type is recognized.
func (t Type) IsValid() bool {
	switch t {
	case TypePhysicalAbuse, TypeAbandonment, TypeNeglect, TypeCruelty, TypeOther:
		return true
	}
	return false
}

// Status tracks how far a report has been handled.
type Status string

const (
	StatusPending   Status = "Pendiente"
	StatusReviewing Status = "En Revisión"
	StatusProcessed Status = "Procesada"
	StatusClosed    Status = "Cerrada"
)

// IsValid returns true if the status is recognized.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusReviewing, StatusProcessed, StatusClosed:
		return true
	}
	return false
}

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid report status: %s", s)
	}
	return status, nil
}
