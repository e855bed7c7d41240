package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kurniatex/payroll-backend-go/internal/domain/employee"
	"github.com/kurniatex/payroll-backend-go/internal/handler/http/response"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/validator"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	BulkDelete(w http.ResponseWriter, r *http.Request)
	Import(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

func employeeFilterFromQuery(r *http.Request) employee.EmployeeFilter {
	var filter employee.EmployeeFilter
	q := r.URL.Query()

	if search := q.Get("search"); search != "" {
		filter.Search = &search
	}
	if grade := q.Get("grade"); grade != "" {
		filter.Grade = &grade
	}
	if scheme := q.Get("scheme"); scheme != "" {
		filter.Scheme = &scheme
	}
	if active := q.Get("active"); active != "" {
		if parsed, err := strconv.ParseBool(active); err == nil {
			filter.Active = &parsed
		}
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	return filter
}

// List implements EmployeeHandler
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.List(r.Context(), employeeFilterFromQuery(r))
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

// Get implements EmployeeHandler
func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Employee ID must be a valid UUID", nil)
		return
	}

	result, err := h.employeeService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements EmployeeHandler
func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created", result)
}

// Update implements EmployeeHandler
func (h *employeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Employee ID must be a valid UUID", nil)
		return
	}

	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.employeeService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated", result)
}

// Delete implements EmployeeHandler
func (h *employeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Employee ID must be a valid UUID", nil)
		return
	}

	if err := h.employeeService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted", nil)
}

// BulkDelete implements EmployeeHandler
func (h *employeeHandlerImpl) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if len(req.IDs) == 0 {
		response.BadRequest(w, "At least one ID is required", nil)
		return
	}

	response.Success(w, h.employeeService.BulkDelete(r.Context(), req.IDs))
}

// Import implements EmployeeHandler
func (h *employeeHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	data, err := readWorkbookUpload(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	summary, err := h.employeeService.ImportXLSX(r.Context(), data)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Import finished", summary)
}

// Export implements EmployeeHandler
func (h *employeeHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.employeeService.ExportXLSX(r.Context(), employeeFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeWorkbook(w, "karyawan.xlsx", data)
}

// readWorkbookUpload accepts either a multipart "file" field or a raw body.
func readWorkbookUpload(r *http.Request) ([]byte, error) {
	contentType := r.Header.Get("Content-Type")
	if len(contentType) >= 19 && contentType[:19] == "multipart/form-data" {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			return nil, err
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return io.ReadAll(file)
	}

	return io.ReadAll(http.MaxBytesReader(nil, r.Body, 10<<20))
}

func writeWorkbook(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit > 0 {
		pages++
	}
	return pages
}
