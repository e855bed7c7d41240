package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kurniatex/payroll-backend-go/internal/domain/production"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/database"
)

type outputRepositoryImpl struct {
	db *database.DB
}

func NewOutputRepository(db *database.DB) production.OutputRepository {
	return &outputRepositoryImpl{db: db}
}

const outputColumns = `p.id, p.employee_code, p.date, p.item, p.quantity, p.rate, p.amount, p.created_at, p.updated_at, e.name`

func scanOutput(row pgx.Row) (production.Output, error) {
	var o production.Output
	err := row.Scan(
		&o.ID,
		&o.EmployeeCode,
		&o.Date,
		&o.Item,
		&o.Quantity,
		&o.Rate,
		&o.Amount,
		&o.CreatedAt,
		&o.UpdatedAt,
		&o.EmployeeName,
	)
	return o, err
}

// Create implements production.OutputRepository. Amount is computed in SQL so
// it always equals quantity * rate regardless of caller arithmetic.
func (r *outputRepositoryImpl) Create(ctx context.Context, out production.Output) (production.Output, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO production_outputs (id, employee_code, date, item, quantity, rate, amount)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $4::numeric * $5::numeric)
		RETURNING id, amount, created_at, updated_at
	`

	result := out
	err := q.QueryRow(ctx, query,
		out.EmployeeCode, out.Date, out.Item, out.Quantity, out.Rate,
	).Scan(&result.ID, &result.Amount, &result.CreatedAt, &result.UpdatedAt)
	if err != nil {
		switch database.Classify(err) {
		case database.KindUniqueViolation:
			return production.Output{}, production.ErrDuplicateOutput
		case database.KindConstraintViolation:
			return production.Output{}, production.ErrEmployeeUnknown
		}
		return production.Output{}, fmt.Errorf("failed to create production output: %w", err)
	}

	return result, nil
}

// GetByID implements production.OutputRepository.
func (r *outputRepositoryImpl) GetByID(ctx context.Context, id string) (production.Output, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM production_outputs p
		LEFT JOIN employees e ON e.code = p.employee_code
		WHERE p.id = $1
	`, outputColumns)

	result, err := scanOutput(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return production.Output{}, production.ErrOutputNotFound
	}
	if err != nil {
		return production.Output{}, fmt.Errorf("failed to get production output: %w", err)
	}

	return result, nil
}

// List implements production.OutputRepository.
func (r *outputRepositoryImpl) List(ctx context.Context, filter production.OutputFilter) ([]production.Output, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argPos := 1

	if filter.Month != nil {
		conditions = append(conditions, fmt.Sprintf("to_char(p.date, 'YYYY-MM') = $%d", argPos))
		args = append(args, *filter.Month)
		argPos++
	}
	if filter.Date != nil {
		conditions = append(conditions, fmt.Sprintf("p.date = $%d::date", argPos))
		args = append(args, *filter.Date)
		argPos++
	}
	if filter.EmployeeCode != nil {
		conditions = append(conditions, fmt.Sprintf("p.employee_code = $%d", argPos))
		args = append(args, *filter.EmployeeCode)
		argPos++
	}
	if filter.Item != nil && *filter.Item != "" {
		conditions = append(conditions, fmt.Sprintf("p.item ILIKE $%d", argPos))
		args = append(args, "%"+*filter.Item+"%")
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var totalCount int64
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM production_outputs p
		%s
	`, whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count production outputs: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s
		FROM production_outputs p
		LEFT JOIN employees e ON e.code = p.employee_code
		%s
		ORDER BY p.date DESC, p.employee_code ASC, p.item ASC
		LIMIT $%d OFFSET $%d
	`, outputColumns, whereClause, argPos, argPos+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list production outputs: %w", err)
	}
	defer rows.Close()

	var outputs []production.Output
	for rows.Next() {
		o, err := scanOutput(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan production output: %w", err)
		}
		outputs = append(outputs, o)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return outputs, totalCount, nil
}

// Update implements production.OutputRepository. Amount is recomputed from
// the resulting quantity and rate.
func (r *outputRepositoryImpl) Update(ctx context.Context, req production.UpdateOutputRequest) error {
	q := GetQuerier(ctx, r.db)

	var sets []string
	var args []interface{}
	argPos := 1

	if req.Item != nil {
		sets = append(sets, fmt.Sprintf("item = $%d", argPos))
		args = append(args, *req.Item)
		argPos++
	}
	if req.Quantity != nil {
		sets = append(sets, fmt.Sprintf("quantity = $%d", argPos))
		args = append(args, *req.Quantity)
		argPos++
	}
	if req.Rate != nil {
		sets = append(sets, fmt.Sprintf("rate = $%d", argPos))
		args = append(args, *req.Rate)
		argPos++
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = NOW()")
	query := fmt.Sprintf(`
		UPDATE production_outputs
		SET %s
		WHERE id = $%d
	`, strings.Join(sets, ", "), argPos)
	args = append(args, req.ID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update production output: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return production.ErrOutputNotFound
	}

	if req.Quantity != nil || req.Rate != nil {
		if _, err := q.Exec(ctx, `UPDATE production_outputs SET amount = quantity * rate WHERE id = $1`, req.ID); err != nil {
			return fmt.Errorf("failed to recompute production amount: %w", err)
		}
	}

	return nil
}

// Delete implements production.OutputRepository.
func (r *outputRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM production_outputs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete production output: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return production.ErrOutputNotFound
	}

	return nil
}

// DeleteByIDs implements production.OutputRepository.
func (r *outputRepositoryImpl) DeleteByIDs(ctx context.Context, ids []string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM production_outputs WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("failed to delete production outputs: %w", err)
	}

	return nil
}

// ListMonth implements production.OutputRepository.
func (r *outputRepositoryImpl) ListMonth(ctx context.Context, month time.Time) ([]production.Output, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM production_outputs p
		LEFT JOIN employees e ON e.code = p.employee_code
		WHERE p.date >= date_trunc('month', $1::date)
		  AND p.date < date_trunc('month', $1::date) + interval '1 month'
		ORDER BY p.employee_code ASC, p.date ASC, p.item ASC
	`, outputColumns)

	rows, err := q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list month production outputs: %w", err)
	}
	defer rows.Close()

	var outputs []production.Output
	for rows.Next() {
		o, err := scanOutput(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan production output: %w", err)
		}
		outputs = append(outputs, o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return outputs, nil
}

// Upsert implements production.OutputRepository.
func (r *outputRepositoryImpl) Upsert(ctx context.Context, rows []production.Output) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO production_outputs (id, employee_code, date, item, quantity, rate, amount)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $4::numeric * $5::numeric)
		ON CONFLICT (employee_code, date, item) DO UPDATE SET
			quantity = EXCLUDED.quantity,
			rate = EXCLUDED.rate,
			amount = EXCLUDED.amount,
			updated_at = NOW()
	`
	for _, o := range rows {
		batch.Queue(query, o.EmployeeCode, o.Date, o.Item, o.Quantity, o.Rate)
	}

	results := r.db.Pool.SendBatch(ctx, batch)
	defer results.Close()

	for range rows {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to upsert production output: %w", err)
		}
	}

	return nil
}
