package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurniatex/payroll-backend-go/internal/config"
	"github.com/kurniatex/payroll-backend-go/internal/domain/attendance"
	"github.com/kurniatex/payroll-backend-go/internal/domain/employee"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/excel"
)

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository

	deleted  []string
	upserted []attendance.Attendance
	// onWrite runs after every successful repo write; tests use it to cut
	// the context mid-run.
	onWrite func()
}

func (f *fakeAttendanceRepo) DeleteByIDs(ctx context.Context, ids []string) error {
	f.deleted = append(f.deleted, ids...)
	if f.onWrite != nil {
		f.onWrite()
	}
	return nil
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, rows []attendance.Attendance) error {
	f.upserted = append(f.upserted, rows...)
	if f.onWrite != nil {
		f.onWrite()
	}
	return nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByCodes(ctx context.Context, codes []string) ([]employee.Employee, error) {
	return f.employees, nil
}

func TestBulkDelete_AbortReportsOnlyDeletedRows(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	repo := &fakeAttendanceRepo{onWrite: cancel}
	svc := NewAttendanceService(nil, repo, &fakeEmployeeRepo{}, config.BatchConfig{
		DeleteInitialSize: 2,
		DeleteMaxSize:     10,
	})

	ids := make([]string, 10)
	for i := range ids {
		ids[i] = fmt.Sprintf("id-%d", i)
	}

	resp := svc.BulkDelete(ctx, attendance.BulkDeleteRequest{IDs: ids})

	// Only the first chunk landed before the caller went away; the rest of
	// the IDs were never attempted and must not be counted as deleted.
	assert.Equal(t, len(repo.deleted), resp.Deleted)
	assert.Equal(t, 2, resp.Deleted)
	assert.Equal(t, 8, resp.Failed)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0], "aborted")
}

func TestImportXLSX_AbortAccounting(t *testing.T) {
	data, err := excel.BuildWorkbook("Absensi", []string{"Kode", "Tanggal", "Status"}, [][]interface{}{
		{"KT-001", "2025-10-01", "H"},
		{"KT-001", "2025-10-02", "S"},
		{"KT-001", "2025-10-03", "H"},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	repo := &fakeAttendanceRepo{onWrite: cancel}
	svc := NewAttendanceService(nil, repo, &fakeEmployeeRepo{
		employees: []employee.Employee{{Code: "KT-001"}},
	}, config.BatchConfig{
		ImportInitialSize: 1,
		ImportMaxSize:     10,
	})

	summary, err := svc.ImportXLSX(ctx, data)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Processed)
	assert.Equal(t, len(repo.upserted), summary.Imported)
	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 2, summary.Failed)
	require.Len(t, summary.Errors, 1)
	assert.Zero(t, summary.Errors[0].Row, "an aborted run is not a row failure")
	assert.Contains(t, summary.Errors[0].Reason, "aborted")
}

func TestParseAttendanceRow(t *testing.T) {
	att, err := parseAttendanceRow([]string{"kt-001", "02/10/2025", "h", "2.5", "ya", "lembur malam"})
	require.NoError(t, err)

	assert.Equal(t, "KT-001", att.EmployeeCode)
	assert.Equal(t, time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC), att.Date)
	assert.Equal(t, attendance.CodePresent, att.Code)
	assert.Equal(t, 2.5, att.OvertimeHours)
	assert.True(t, att.CompanyTransfer)
	require.NotNil(t, att.Note)
	assert.Equal(t, "lembur malam", *att.Note)
}

func TestParseAttendanceRow_Minimal(t *testing.T) {
	att, err := parseAttendanceRow([]string{"KT-002", "2025-10-03", "S"})
	require.NoError(t, err)

	assert.Equal(t, attendance.CodeSick, att.Code)
	assert.Zero(t, att.OvertimeHours)
	assert.False(t, att.CompanyTransfer)
	assert.Nil(t, att.Note)
}

func TestParseAttendanceRow_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		cells []string
	}{
		{"too few columns", []string{"KT-001", "2025-10-02"}},
		{"missing code", []string{"", "2025-10-02", "H"}},
		{"bad date", []string{"KT-001", "besok", "H"}},
		{"unknown attendance code", []string{"KT-001", "2025-10-02", "X"}},
		{"overtime above 24", []string{"KT-001", "2025-10-02", "H", "25"}},
		{"overtime not a number", []string{"KT-001", "2025-10-02", "H", "dua"}},
		{"bad transfer flag", []string{"KT-001", "2025-10-02", "H", "1", "mungkin"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseAttendanceRow(tc.cells)
			assert.Error(t, err)
		})
	}
}
