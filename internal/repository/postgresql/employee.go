package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/kurniatex/payroll-backend-go/internal/domain/employee"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, code, name, nik, grade, scheme, section, join_date, active, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.Code,
		&e.Name,
		&e.NIK,
		&e.Grade,
		&e.Scheme,
		&e.Section,
		&e.JoinDate,
		&e.Active,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO employees (id, code, name, nik, grade, scheme, section, join_date, active)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s
	`, employeeColumns)

	result, err := scanEmployee(q.QueryRow(ctx, query,
		emp.Code, emp.Name, emp.NIK, emp.Grade, emp.Scheme, emp.Section, emp.JoinDate, emp.Active))
	if err != nil {
		if database.Classify(err) == database.KindUniqueViolation {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return result, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM employees WHERE id = $1`, employeeColumns)

	result, err := scanEmployee(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return result, nil
}

// GetByCode implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM employees WHERE code = $1`, employeeColumns)

	result, err := scanEmployee(q.QueryRow(ctx, query, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	return result, nil
}

// GetByCodes implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByCodes(ctx context.Context, codes []string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM employees WHERE code = ANY($1)`, employeeColumns)

	rows, err := q.Query(ctx, query, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees by codes: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return employees, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argPos := 1

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(code ILIKE $%d OR name ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+*filter.Search+"%")
		argPos++
	}
	if filter.Grade != nil {
		conditions = append(conditions, fmt.Sprintf("grade = $%d", argPos))
		args = append(args, *filter.Grade)
		argPos++
	}
	if filter.Scheme != nil {
		conditions = append(conditions, fmt.Sprintf("scheme = $%d", argPos))
		args = append(args, *filter.Scheme)
		argPos++
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", argPos))
		args = append(args, *filter.Active)
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var totalCount int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM employees %s`, whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s FROM employees
		%s
		ORDER BY code ASC
		LIMIT $%d OFFSET $%d
	`, employeeColumns, whereClause, argPos, argPos+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return employees, totalCount, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, r.db)

	var sets []string
	var args []interface{}
	argPos := 1

	if req.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argPos))
		args = append(args, *req.Name)
		argPos++
	}
	if req.NIK != nil {
		sets = append(sets, fmt.Sprintf("nik = $%d", argPos))
		args = append(args, *req.NIK)
		argPos++
	}
	if req.Grade != nil {
		sets = append(sets, fmt.Sprintf("grade = $%d", argPos))
		args = append(args, *req.Grade)
		argPos++
	}
	if req.Scheme != nil {
		sets = append(sets, fmt.Sprintf("scheme = $%d", argPos))
		args = append(args, *req.Scheme)
		argPos++
	}
	if req.Section != nil {
		sets = append(sets, fmt.Sprintf("section = $%d", argPos))
		args = append(args, *req.Section)
		argPos++
	}
	if req.JoinDate != nil {
		sets = append(sets, fmt.Sprintf("join_date = $%d", argPos))
		args = append(args, *req.JoinDate)
		argPos++
	}
	if req.Active != nil {
		sets = append(sets, fmt.Sprintf("active = $%d", argPos))
		args = append(args, *req.Active)
		argPos++
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = NOW()")
	query := fmt.Sprintf(`UPDATE employees SET %s WHERE id = $%d`, strings.Join(sets, ", "), argPos)
	args = append(args, req.ID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// DeleteByIDs implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) DeleteByIDs(ctx context.Context, ids []string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM employees WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("failed to delete employees: %w", err)
	}

	return nil
}

// Upsert implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Upsert(ctx context.Context, rows []employee.Employee) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO employees (id, code, name, nik, grade, scheme, section, join_date, active)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			nik = EXCLUDED.nik,
			grade = EXCLUDED.grade,
			scheme = EXCLUDED.scheme,
			section = EXCLUDED.section,
			join_date = EXCLUDED.join_date,
			active = EXCLUDED.active,
			updated_at = NOW()
	`
	for _, e := range rows {
		batch.Queue(query, e.Code, e.Name, e.NIK, e.Grade, e.Scheme, e.Section, e.JoinDate, e.Active)
	}

	results := r.db.Pool.SendBatch(ctx, batch)
	defer results.Close()

	for range rows {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to upsert employees: %w", err)
		}
	}

	return nil
}
