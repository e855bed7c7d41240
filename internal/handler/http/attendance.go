package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kurniatex/payroll-backend-go/internal/domain/attendance"
	"github.com/kurniatex/payroll-backend-go/internal/handler/http/response"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	BulkDelete(w http.ResponseWriter, r *http.Request)
	Import(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

func attendanceFilterFromQuery(r *http.Request) attendance.AttendanceFilter {
	var filter attendance.AttendanceFilter
	q := r.URL.Query()

	if month := q.Get("month"); month != "" {
		filter.Month = &month
	}
	if date := q.Get("date"); date != "" {
		filter.Date = &date
	}
	if code := q.Get("employee_code"); code != "" {
		filter.EmployeeCode = &code
	}
	if search := q.Get("search"); search != "" {
		filter.Search = &search
	}
	if code := q.Get("code"); code != "" {
		filter.Code = &code
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	return filter
}

// List implements AttendanceHandler
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.List(r.Context(), attendanceFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages(result.TotalCount, result.Limit),
	})
}

// Get implements AttendanceHandler
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Attendance ID must be a valid UUID", nil)
		return
	}

	result, err := h.attendanceService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements AttendanceHandler
func (h *attendanceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance recorded", result)
}

// Update implements AttendanceHandler
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Attendance ID must be a valid UUID", nil)
		return
	}

	var req attendance.UpdateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.attendanceService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated", result)
}

// Delete implements AttendanceHandler
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Attendance ID must be a valid UUID", nil)
		return
	}

	if err := h.attendanceService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance deleted", nil)
}

// BulkDelete implements AttendanceHandler
func (h *attendanceHandlerImpl) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req attendance.BulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, h.attendanceService.BulkDelete(r.Context(), req))
}

// Import implements AttendanceHandler
func (h *attendanceHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	data, err := readWorkbookUpload(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	summary, err := h.attendanceService.ImportXLSX(r.Context(), data)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Import finished", summary)
}

// Export implements AttendanceHandler
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.attendanceService.ExportXLSX(r.Context(), attendanceFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeWorkbook(w, "absensi.xlsx", data)
}
