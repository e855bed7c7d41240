package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kurniatex/payroll-backend-go/internal/domain/payroll"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/database"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

const masterRateColumns = `id, grade, month, base_pay, meal_allowance, attendance_allowance, bonus, overtime_rate, created_at, updated_at`

func scanMasterRate(row pgx.Row) (payroll.MasterRate, error) {
	var m payroll.MasterRate
	err := row.Scan(
		&m.ID,
		&m.Grade,
		&m.Month,
		&m.BasePay,
		&m.MealAllowance,
		&m.AttendanceAllowance,
		&m.Bonus,
		&m.OvertimeRate,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// UpsertMasterRate implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) UpsertMasterRate(ctx context.Context, rate payroll.MasterRate) (payroll.MasterRate, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO salary_master_rates (id, grade, month, base_pay, meal_allowance, attendance_allowance, bonus, overtime_rate)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (grade, month) DO UPDATE SET
			base_pay = EXCLUDED.base_pay,
			meal_allowance = EXCLUDED.meal_allowance,
			attendance_allowance = EXCLUDED.attendance_allowance,
			bonus = EXCLUDED.bonus,
			overtime_rate = EXCLUDED.overtime_rate,
			updated_at = NOW()
		RETURNING %s
	`, masterRateColumns)

	result, err := scanMasterRate(q.QueryRow(ctx, query,
		rate.Grade, rate.Month, rate.BasePay, rate.MealAllowance, rate.AttendanceAllowance, rate.Bonus, rate.OvertimeRate,
	))
	if err != nil {
		return payroll.MasterRate{}, fmt.Errorf("failed to upsert master rate: %w", err)
	}

	return result, nil
}

// GetMasterRate implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetMasterRate(ctx context.Context, grade, month string) (payroll.MasterRate, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM salary_master_rates
		WHERE grade = $1 AND month = $2
	`, masterRateColumns)

	result, err := scanMasterRate(q.QueryRow(ctx, query, grade, month))
	if errors.Is(err, pgx.ErrNoRows) {
		return payroll.MasterRate{}, payroll.ErrMasterRateNotFound
	}
	if err != nil {
		return payroll.MasterRate{}, fmt.Errorf("failed to get master rate: %w", err)
	}

	return result, nil
}

// ListMasterRates implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListMasterRates(ctx context.Context, filter payroll.MasterRateFilter) ([]payroll.MasterRate, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argPos := 1

	if filter.Month != nil {
		conditions = append(conditions, fmt.Sprintf("month = $%d", argPos))
		args = append(args, *filter.Month)
		argPos++
	}
	if filter.Grade != nil {
		conditions = append(conditions, fmt.Sprintf("grade = $%d", argPos))
		args = append(args, *filter.Grade)
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var totalCount int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM salary_master_rates %s`, whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count master rates: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s
		FROM salary_master_rates
		%s
		ORDER BY month DESC, grade ASC
		LIMIT $%d OFFSET $%d
	`, masterRateColumns, whereClause, argPos, argPos+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list master rates: %w", err)
	}
	defer rows.Close()

	var rates []payroll.MasterRate
	for rows.Next() {
		m, err := scanMasterRate(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan master rate: %w", err)
		}
		rates = append(rates, m)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return rates, totalCount, nil
}

// DeleteMasterRate implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) DeleteMasterRate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM salary_master_rates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete master rate: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return payroll.ErrMasterRateNotFound
	}

	return nil
}

// UpsertMasterRates implements payroll.PayrollRepository. Used by the
// spreadsheet import path.
func (r *payrollRepositoryImpl) UpsertMasterRates(ctx context.Context, rates []payroll.MasterRate) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO salary_master_rates (id, grade, month, base_pay, meal_allowance, attendance_allowance, bonus, overtime_rate)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (grade, month) DO UPDATE SET
			base_pay = EXCLUDED.base_pay,
			meal_allowance = EXCLUDED.meal_allowance,
			attendance_allowance = EXCLUDED.attendance_allowance,
			bonus = EXCLUDED.bonus,
			overtime_rate = EXCLUDED.overtime_rate,
			updated_at = NOW()
	`
	for _, m := range rates {
		batch.Queue(query, m.Grade, m.Month, m.BasePay, m.MealAllowance, m.AttendanceAllowance, m.Bonus, m.OvertimeRate)
	}

	results := r.db.Pool.SendBatch(ctx, batch)
	defer results.Close()

	for range rates {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to upsert master rate: %w", err)
		}
	}

	return nil
}

// UpsertMonthDivisor implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) UpsertMonthDivisor(ctx context.Context, div payroll.MonthDivisor) (payroll.MonthDivisor, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO month_divisors (id, month, divisor)
		VALUES (gen_random_uuid(), $1, $2)
		ON CONFLICT (month) DO UPDATE SET
			divisor = EXCLUDED.divisor,
			updated_at = NOW()
		RETURNING id, month, divisor, created_at, updated_at
	`

	var result payroll.MonthDivisor
	err := q.QueryRow(ctx, query, div.Month, div.Divisor).Scan(
		&result.ID, &result.Month, &result.Divisor, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return payroll.MonthDivisor{}, fmt.Errorf("failed to upsert month divisor: %w", err)
	}

	return result, nil
}

// GetMonthDivisor implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetMonthDivisor(ctx context.Context, month string) (payroll.MonthDivisor, error) {
	q := GetQuerier(ctx, r.db)

	var result payroll.MonthDivisor
	err := q.QueryRow(ctx,
		`SELECT id, month, divisor, created_at, updated_at FROM month_divisors WHERE month = $1`,
		month,
	).Scan(&result.ID, &result.Month, &result.Divisor, &result.CreatedAt, &result.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return payroll.MonthDivisor{}, payroll.ErrDivisorNotFound
	}
	if err != nil {
		return payroll.MonthDivisor{}, fmt.Errorf("failed to get month divisor: %w", err)
	}

	return result, nil
}

// ListMonthDivisors implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListMonthDivisors(ctx context.Context) ([]payroll.MonthDivisor, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT id, month, divisor, created_at, updated_at FROM month_divisors ORDER BY month DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list month divisors: %w", err)
	}
	defer rows.Close()

	var divisors []payroll.MonthDivisor
	for rows.Next() {
		var d payroll.MonthDivisor
		if err := rows.Scan(&d.ID, &d.Month, &d.Divisor, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan month divisor: %w", err)
		}
		divisors = append(divisors, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return divisors, nil
}

// DeleteMonthDivisor implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) DeleteMonthDivisor(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM month_divisors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete month divisor: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return payroll.ErrDivisorNotFound
	}

	return nil
}

const salaryRecordColumns = `s.id, s.employee_code, s.date, s.scheme, s.base_pay, s.overtime_pay, s.meal_daily, s.attendance_daily, s.bonus_daily, s.total, s.created_at, s.updated_at, e.name, e.grade`

func scanSalaryRecord(row pgx.Row) (payroll.SalaryRecord, error) {
	var s payroll.SalaryRecord
	err := row.Scan(
		&s.ID,
		&s.EmployeeCode,
		&s.Date,
		&s.Scheme,
		&s.BasePay,
		&s.OvertimePay,
		&s.MealDaily,
		&s.AttendanceDaily,
		&s.BonusDaily,
		&s.Total,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.EmployeeName,
		&s.Grade,
	)
	return s, err
}

// GetSalaryRecordByID implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetSalaryRecordByID(ctx context.Context, id string) (payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM salary_records s
		LEFT JOIN employees e ON e.code = s.employee_code
		WHERE s.id = $1
	`, salaryRecordColumns)

	result, err := scanSalaryRecord(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return payroll.SalaryRecord{}, payroll.ErrSalaryRecordNotFound
	}
	if err != nil {
		return payroll.SalaryRecord{}, fmt.Errorf("failed to get salary record: %w", err)
	}

	return result, nil
}

// ListSalaryRecords implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListSalaryRecords(ctx context.Context, filter payroll.SalaryRecordFilter) ([]payroll.SalaryRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argPos := 1

	if filter.Month != nil {
		conditions = append(conditions, fmt.Sprintf("to_char(s.date, 'YYYY-MM') = $%d", argPos))
		args = append(args, *filter.Month)
		argPos++
	}
	if filter.EmployeeCode != nil {
		conditions = append(conditions, fmt.Sprintf("s.employee_code = $%d", argPos))
		args = append(args, *filter.EmployeeCode)
		argPos++
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(s.employee_code ILIKE $%d OR e.name ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+*filter.Search+"%")
		argPos++
	}
	if filter.Scheme != nil {
		conditions = append(conditions, fmt.Sprintf("s.scheme = $%d", argPos))
		args = append(args, *filter.Scheme)
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var totalCount int64
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM salary_records s
		LEFT JOIN employees e ON e.code = s.employee_code
		%s
	`, whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count salary records: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s
		FROM salary_records s
		LEFT JOIN employees e ON e.code = s.employee_code
		%s
		ORDER BY s.date DESC, s.employee_code ASC
		LIMIT $%d OFFSET $%d
	`, salaryRecordColumns, whereClause, argPos, argPos+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	var records []payroll.SalaryRecord
	for rows.Next() {
		s, err := scanSalaryRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan salary record: %w", err)
		}
		records = append(records, s)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, totalCount, nil
}

// UpsertSalaryRecords implements payroll.PayrollRepository. Used by the
// client-side sync fallback; rows are keyed by (employee_code, date).
func (r *payrollRepositoryImpl) UpsertSalaryRecords(ctx context.Context, records []payroll.SalaryRecord) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO salary_records (id, employee_code, date, scheme, base_pay, overtime_pay, meal_daily, attendance_daily, bonus_daily, total)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (employee_code, date) DO UPDATE SET
			scheme = EXCLUDED.scheme,
			base_pay = EXCLUDED.base_pay,
			overtime_pay = EXCLUDED.overtime_pay,
			meal_daily = EXCLUDED.meal_daily,
			attendance_daily = EXCLUDED.attendance_daily,
			bonus_daily = EXCLUDED.bonus_daily,
			total = EXCLUDED.total,
			updated_at = NOW()
	`
	for _, s := range records {
		batch.Queue(query,
			s.EmployeeCode, s.Date, s.Scheme,
			s.BasePay, s.OvertimePay, s.MealDaily, s.AttendanceDaily, s.BonusDaily, s.Total,
		)
	}

	results := r.db.Pool.SendBatch(ctx, batch)
	defer results.Close()

	for range records {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to upsert salary record: %w", err)
		}
	}

	return nil
}

// DeleteSalaryRecordsByIDs implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) DeleteSalaryRecordsByIDs(ctx context.Context, ids []string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM salary_records WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("failed to delete salary records: %w", err)
	}

	return nil
}

// CallMonthlySync implements payroll.PayrollRepository. The error is
// returned unwrapped so callers can classify it; an undefined function
// means the procedure is not installed and the client fallback applies.
func (r *payrollRepositoryImpl) CallMonthlySync(ctx context.Context, procedure string, month time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	// The procedure name comes from config, not request input.
	query := fmt.Sprintf(`SELECT %s($1::date)`, procedure)

	var processed int
	if err := q.QueryRow(ctx, query, month).Scan(&processed); err != nil {
		return 0, err
	}

	return processed, nil
}
