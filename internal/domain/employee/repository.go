package employee

import "context"

// EmployeeRepository defines data access methods for the employee master.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByCode(ctx context.Context, code string) (Employee, error)
	GetByCodes(ctx context.Context, codes []string) ([]Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) error
	Delete(ctx context.Context, id string) error
	DeleteByIDs(ctx context.Context, ids []string) error

	// Upsert inserts or updates rows keyed by employee code. Used by the
	// spreadsheet import path.
	Upsert(ctx context.Context, rows []Employee) error
}
