package production

import (
	"context"

	"github.com/kurniatex/payroll-backend-go/internal/pkg/excel"
)

// OutputService defines business logic for the production output screens.
type OutputService interface {
	Create(ctx context.Context, req CreateOutputRequest) (OutputResponse, error)
	Get(ctx context.Context, id string) (OutputResponse, error)
	List(ctx context.Context, filter OutputFilter) (ListOutputResponse, error)
	Update(ctx context.Context, req UpdateOutputRequest) (OutputResponse, error)
	Delete(ctx context.Context, id string) error

	ImportXLSX(ctx context.Context, data []byte) (excel.ImportSummary, error)
	ExportXLSX(ctx context.Context, filter OutputFilter) ([]byte, error)
}
