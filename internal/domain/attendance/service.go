package attendance

import (
	"context"

	"github.com/kurniatex/payroll-backend-go/internal/pkg/excel"
)

// AttendanceService defines business logic for the attendance screens.
type AttendanceService interface {
	Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)
	Get(ctx context.Context, id string) (AttendanceResponse, error)
	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	Update(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, req BulkDeleteRequest) BulkDeleteResponse

	ImportXLSX(ctx context.Context, data []byte) (excel.ImportSummary, error)
	ExportXLSX(ctx context.Context, filter AttendanceFilter) ([]byte, error)
}
