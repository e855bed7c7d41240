package employee

import (
	"time"
)

// Scheme is the pay scheme an employee is calculated under.
type Scheme string

const (
	// SchemeDaily - fixed daily wage workers.
	SchemeDaily Scheme = "harian"
	// SchemePieceRate - borongan, output-based pay.
	SchemePieceRate Scheme = "borongan"
	// SchemeAdmin - monthly-salaried admin staff.
	SchemeAdmin Scheme = "admin"
)

func (s Scheme) IsValid() bool {
	switch s {
	case SchemeDaily, SchemePieceRate, SchemeAdmin:
		return true
	}
	return false
}

type Employee struct {
	ID       string
	Code     string
	Name     string
	NIK      *string
	Grade    string
	Scheme   Scheme
	Section  *string
	JoinDate *time.Time
	Active   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
