package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kurniatex/payroll-backend-go/internal/domain/master/grade"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/database"
)

type gradeRepositoryImpl struct {
	db *database.DB
}

func NewGradeRepository(db *database.DB) grade.GradeRepository {
	return &gradeRepositoryImpl{db: db}
}

// Create implements grade.GradeRepository.
func (r *gradeRepositoryImpl) Create(ctx context.Context, g grade.Grade) (grade.Grade, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO grades (id, name, description)
		VALUES (gen_random_uuid(), $1, $2)
		RETURNING id, created_at, updated_at
	`

	result := g
	err := q.QueryRow(ctx, query, g.Name, g.Description).Scan(&result.ID, &result.CreatedAt, &result.UpdatedAt)
	if err != nil {
		if database.Classify(err) == database.KindUniqueViolation {
			return grade.Grade{}, grade.ErrGradeNameExists
		}
		return grade.Grade{}, fmt.Errorf("failed to create grade: %w", err)
	}

	return result, nil
}

// GetByID implements grade.GradeRepository.
func (r *gradeRepositoryImpl) GetByID(ctx context.Context, id string) (grade.Grade, error) {
	q := GetQuerier(ctx, r.db)

	var g grade.Grade
	err := q.QueryRow(ctx,
		`SELECT id, name, description, created_at, updated_at FROM grades WHERE id = $1`,
		id,
	).Scan(&g.ID, &g.Name, &g.Description, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return grade.Grade{}, grade.ErrGradeNotFound
	}
	if err != nil {
		return grade.Grade{}, fmt.Errorf("failed to get grade: %w", err)
	}

	return g, nil
}

// GetByName implements grade.GradeRepository.
func (r *gradeRepositoryImpl) GetByName(ctx context.Context, name string) (grade.Grade, error) {
	q := GetQuerier(ctx, r.db)

	var g grade.Grade
	err := q.QueryRow(ctx,
		`SELECT id, name, description, created_at, updated_at FROM grades WHERE name = $1`,
		name,
	).Scan(&g.ID, &g.Name, &g.Description, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return grade.Grade{}, grade.ErrGradeNotFound
	}
	if err != nil {
		return grade.Grade{}, fmt.Errorf("failed to get grade by name: %w", err)
	}

	return g, nil
}

// List implements grade.GradeRepository.
func (r *gradeRepositoryImpl) List(ctx context.Context) ([]grade.Grade, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, description, created_at, updated_at FROM grades ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list grades: %w", err)
	}
	defer rows.Close()

	var grades []grade.Grade
	for rows.Next() {
		var g grade.Grade
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan grade: %w", err)
		}
		grades = append(grades, g)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return grades, nil
}

// Update implements grade.GradeRepository.
func (r *gradeRepositoryImpl) Update(ctx context.Context, req grade.UpdateGradeRequest) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx,
		`UPDATE grades SET name = $1, description = $2, updated_at = NOW() WHERE id = $3`,
		req.Name, req.Description, req.ID,
	)
	if err != nil {
		if database.Classify(err) == database.KindUniqueViolation {
			return grade.ErrGradeNameExists
		}
		return fmt.Errorf("failed to update grade: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return grade.ErrGradeNotFound
	}

	return nil
}

// Delete implements grade.GradeRepository.
func (r *gradeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM grades WHERE id = $1`, id)
	if err != nil {
		if database.Classify(err) == database.KindConstraintViolation {
			return grade.ErrGradeInUse
		}
		return fmt.Errorf("failed to delete grade: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return grade.ErrGradeNotFound
	}

	return nil
}
