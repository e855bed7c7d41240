package production

import (
	"context"
	"time"
)

// OutputRepository defines data access methods for production output rows.
type OutputRepository interface {
	Create(ctx context.Context, out Output) (Output, error)
	GetByID(ctx context.Context, id string) (Output, error)
	List(ctx context.Context, filter OutputFilter) ([]Output, int64, error)
	Update(ctx context.Context, req UpdateOutputRequest) error
	Delete(ctx context.Context, id string) error
	DeleteByIDs(ctx context.Context, ids []string) error

	// Upsert inserts or updates rows keyed by (employee_code, date, item).
	Upsert(ctx context.Context, rows []Output) error

	// ListMonth returns every output row in the month, used by the
	// client-side payroll sync fallback to derive piece-rate base pay.
	ListMonth(ctx context.Context, month time.Time) ([]Output, error)
}
