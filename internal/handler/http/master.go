package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kurniatex/payroll-backend-go/internal/domain/master/grade"
	"github.com/kurniatex/payroll-backend-go/internal/handler/http/response"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/validator"
	"github.com/kurniatex/payroll-backend-go/internal/service/master"
)

type MasterHandler interface {
	CreateGrade(w http.ResponseWriter, r *http.Request)
	GetGrade(w http.ResponseWriter, r *http.Request)
	ListGrades(w http.ResponseWriter, r *http.Request)
	UpdateGrade(w http.ResponseWriter, r *http.Request)
	DeleteGrade(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &masterHandlerImpl{masterService: masterService}
}

// CreateGrade implements MasterHandler
func (h *masterHandlerImpl) CreateGrade(w http.ResponseWriter, r *http.Request) {
	var req grade.CreateGradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreateGrade(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Grade created", result)
}

// GetGrade implements MasterHandler
func (h *masterHandlerImpl) GetGrade(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Grade ID must be a valid UUID", nil)
		return
	}

	result, err := h.masterService.GetGrade(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListGrades implements MasterHandler
func (h *masterHandlerImpl) ListGrades(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.ListGrades(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateGrade implements MasterHandler
func (h *masterHandlerImpl) UpdateGrade(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Grade ID must be a valid UUID", nil)
		return
	}

	var req grade.UpdateGradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := h.masterService.UpdateGrade(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Grade updated", nil)
}

// DeleteGrade implements MasterHandler
func (h *masterHandlerImpl) DeleteGrade(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Grade ID must be a valid UUID", nil)
		return
	}

	if err := h.masterService.DeleteGrade(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Grade deleted", nil)
}
