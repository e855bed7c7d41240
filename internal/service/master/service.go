package master

import (
	"context"

	"github.com/kurniatex/payroll-backend-go/internal/domain/master/grade"
)

// MasterService covers the small reference tables behind dropdowns, for now
// just grades.
type MasterService interface {
	CreateGrade(ctx context.Context, req grade.CreateGradeRequest) (grade.GradeResponse, error)
	GetGrade(ctx context.Context, id string) (grade.GradeResponse, error)
	ListGrades(ctx context.Context) ([]grade.GradeResponse, error)
	UpdateGrade(ctx context.Context, req grade.UpdateGradeRequest) error
	DeleteGrade(ctx context.Context, id string) error
}

type masterServiceImpl struct {
	gradeRepo grade.GradeRepository
}

func NewMasterService(gradeRepo grade.GradeRepository) MasterService {
	return &masterServiceImpl{gradeRepo: gradeRepo}
}

func (s *masterServiceImpl) CreateGrade(ctx context.Context, req grade.CreateGradeRequest) (grade.GradeResponse, error) {
	if err := req.Validate(); err != nil {
		return grade.GradeResponse{}, err
	}

	created, err := s.gradeRepo.Create(ctx, grade.Grade{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return grade.GradeResponse{}, err
	}

	return gradeToResponse(created), nil
}

func (s *masterServiceImpl) GetGrade(ctx context.Context, id string) (grade.GradeResponse, error) {
	g, err := s.gradeRepo.GetByID(ctx, id)
	if err != nil {
		return grade.GradeResponse{}, err
	}

	return gradeToResponse(g), nil
}

func (s *masterServiceImpl) ListGrades(ctx context.Context) ([]grade.GradeResponse, error) {
	grades, err := s.gradeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]grade.GradeResponse, 0, len(grades))
	for _, g := range grades {
		resp = append(resp, gradeToResponse(g))
	}

	return resp, nil
}

func (s *masterServiceImpl) UpdateGrade(ctx context.Context, req grade.UpdateGradeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	return s.gradeRepo.Update(ctx, req)
}

func (s *masterServiceImpl) DeleteGrade(ctx context.Context, id string) error {
	return s.gradeRepo.Delete(ctx, id)
}

func gradeToResponse(g grade.Grade) grade.GradeResponse {
	return grade.GradeResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
	}
}
