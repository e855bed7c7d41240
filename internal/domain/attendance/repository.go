package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, att Attendance) (Attendance, error)
	GetByID(ctx context.Context, id string) (Attendance, error)
	GetByEmployeeAndDate(ctx context.Context, employeeCode string, date time.Time) (*Attendance, error)
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
	Update(ctx context.Context, req UpdateAttendanceRequest) error
	Delete(ctx context.Context, id string) error
	DeleteByIDs(ctx context.Context, ids []string) error

	// Upsert inserts or updates rows keyed by (employee_code, date). Used by
	// the spreadsheet import path.
	Upsert(ctx context.Context, rows []Attendance) error

	// CountExceptions aggregates one employee's exception codes for the
	// month containing the given date.
	CountExceptions(ctx context.Context, employeeCode string, month time.Time) (ExceptionCounts, error)

	// ListMonth returns every attendance row in the month, used by the
	// client-side payroll sync fallback.
	ListMonth(ctx context.Context, month time.Time) ([]Attendance, error)
}
