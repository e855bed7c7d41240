package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kurniatex/payroll-backend-go/internal/domain/attendance"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `a.id, a.employee_code, a.date, a.code, a.overtime_hours, a.company_transfer, a.note, a.created_at, a.updated_at, e.name`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID,
		&a.EmployeeCode,
		&a.Date,
		&a.Code,
		&a.OvertimeHours,
		&a.CompanyTransfer,
		&a.Note,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.EmployeeName,
	)
	return a, err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance (id, employee_code, date, code, overtime_hours, company_transfer, note)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	result := att
	err := q.QueryRow(ctx, query,
		att.EmployeeCode, att.Date, att.Code, att.OvertimeHours, att.CompanyTransfer, att.Note,
	).Scan(&result.ID, &result.CreatedAt, &result.UpdatedAt)
	if err != nil {
		switch database.Classify(err) {
		case database.KindUniqueViolation:
			return attendance.Attendance{}, attendance.ErrDuplicateDay
		case database.KindConstraintViolation:
			return attendance.Attendance{}, attendance.ErrEmployeeUnknown
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return result, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance a
		LEFT JOIN employees e ON e.code = a.employee_code
		WHERE a.id = $1
	`, attendanceColumns)

	result, err := scanAttendance(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return result, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeCode string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance a
		LEFT JOIN employees e ON e.code = a.employee_code
		WHERE a.employee_code = $1 AND a.date = $2
	`, attendanceColumns)

	result, err := scanAttendance(q.QueryRow(ctx, query, employeeCode, date))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &result, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argPos := 1

	if filter.Month != nil {
		conditions = append(conditions, fmt.Sprintf("to_char(a.date, 'YYYY-MM') = $%d", argPos))
		args = append(args, *filter.Month)
		argPos++
	}
	if filter.Date != nil {
		conditions = append(conditions, fmt.Sprintf("a.date = $%d::date", argPos))
		args = append(args, *filter.Date)
		argPos++
	}
	if filter.EmployeeCode != nil {
		conditions = append(conditions, fmt.Sprintf("a.employee_code = $%d", argPos))
		args = append(args, *filter.EmployeeCode)
		argPos++
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(a.employee_code ILIKE $%d OR e.name ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+*filter.Search+"%")
		argPos++
	}
	if filter.Code != nil {
		conditions = append(conditions, fmt.Sprintf("a.code = $%d", argPos))
		args = append(args, *filter.Code)
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var totalCount int64
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM attendance a
		LEFT JOIN employees e ON e.code = a.employee_code
		%s
	`, whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance a
		LEFT JOIN employees e ON e.code = a.employee_code
		%s
		ORDER BY a.date DESC, a.employee_code ASC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, whereClause, argPos, argPos+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, totalCount, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, req attendance.UpdateAttendanceRequest) error {
	q := GetQuerier(ctx, r.db)

	var sets []string
	var args []interface{}
	argPos := 1

	if req.Code != nil {
		sets = append(sets, fmt.Sprintf("code = $%d", argPos))
		args = append(args, *req.Code)
		argPos++
	}
	if req.OvertimeHours != nil {
		sets = append(sets, fmt.Sprintf("overtime_hours = $%d", argPos))
		args = append(args, *req.OvertimeHours)
		argPos++
	}
	if req.CompanyTransfer != nil {
		sets = append(sets, fmt.Sprintf("company_transfer = $%d", argPos))
		args = append(args, *req.CompanyTransfer)
		argPos++
	}
	if req.Note != nil {
		sets = append(sets, fmt.Sprintf("note = $%d", argPos))
		args = append(args, *req.Note)
		argPos++
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = NOW()")
	query := fmt.Sprintf(`UPDATE attendance SET %s WHERE id = $%d`, strings.Join(sets, ", "), argPos)
	args = append(args, req.ID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// DeleteByIDs implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) DeleteByIDs(ctx context.Context, ids []string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM attendance WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("failed to delete attendance rows: %w", err)
	}

	return nil
}

// Upsert implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, rows []attendance.Attendance) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO attendance (id, employee_code, date, code, overtime_hours, company_transfer, note)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_code, date) DO UPDATE SET
			code = EXCLUDED.code,
			overtime_hours = EXCLUDED.overtime_hours,
			company_transfer = EXCLUDED.company_transfer,
			note = EXCLUDED.note,
			updated_at = NOW()
	`
	for _, a := range rows {
		batch.Queue(query, a.EmployeeCode, a.Date, a.Code, a.OvertimeHours, a.CompanyTransfer, a.Note)
	}

	results := r.db.Pool.SendBatch(ctx, batch)
	defer results.Close()

	for range rows {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to upsert attendance: %w", err)
		}
	}

	return nil
}

// CountExceptions implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CountExceptions(ctx context.Context, employeeCode string, month time.Time) (attendance.ExceptionCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE code = 'S'),
			COUNT(*) FILTER (WHERE code = 'I'),
			COUNT(*) FILTER (WHERE code = 'A'),
			COUNT(*) FILTER (WHERE code = 'LP'),
			COUNT(*) FILTER (WHERE code = 'LS'),
			COUNT(*) FILTER (WHERE company_transfer)
		FROM attendance
		WHERE employee_code = $1
		  AND date >= date_trunc('month', $2::date)
		  AND date < date_trunc('month', $2::date) + interval '1 month'
	`

	var counts attendance.ExceptionCounts
	err := q.QueryRow(ctx, query, employeeCode, month).Scan(
		&counts.Sick,
		&counts.Permission,
		&counts.Unexcused,
		&counts.CompanyHoliday,
		&counts.PersonalHoliday,
		&counts.TransferDays,
	)
	if err != nil {
		return attendance.ExceptionCounts{}, fmt.Errorf("failed to count attendance exceptions: %w", err)
	}

	return counts, nil
}

// ListMonth implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListMonth(ctx context.Context, month time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance a
		LEFT JOIN employees e ON e.code = a.employee_code
		WHERE a.date >= date_trunc('month', $1::date)
		  AND a.date < date_trunc('month', $1::date) + interval '1 month'
		ORDER BY a.employee_code ASC, a.date ASC
	`, attendanceColumns)

	rows, err := q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list month attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}
