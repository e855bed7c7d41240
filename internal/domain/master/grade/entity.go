package grade

import "time"

// Grade is an employee pay-tier classification used to key salary master
// rate rows.
type Grade struct {
	ID          string
	Name        string
	Description *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
