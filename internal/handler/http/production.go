package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kurniatex/payroll-backend-go/internal/domain/production"
	"github.com/kurniatex/payroll-backend-go/internal/handler/http/response"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/validator"
)

type ProductionHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Import(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type productionHandlerImpl struct {
	outputService production.OutputService
}

func NewProductionHandler(outputService production.OutputService) ProductionHandler {
	return &productionHandlerImpl{outputService: outputService}
}

func outputFilterFromQuery(r *http.Request) production.OutputFilter {
	var filter production.OutputFilter
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
	if item := q.Get("item"); item != "" {
		filter.Item = &item
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	return filter
}

// List implements ProductionHandler
func (h *productionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.outputService.List(r.Context(), outputFilterFromQuery(r))
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

// Get implements ProductionHandler
func (h *productionHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Production output ID must be a valid UUID", nil)
		return
	}

	result, err := h.outputService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements ProductionHandler
func (h *productionHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req production.CreateOutputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.outputService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Production output recorded", result)
}

// Update implements ProductionHandler
func (h *productionHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Production output ID must be a valid UUID", nil)
		return
	}

	var req production.UpdateOutputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.outputService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Production output updated", result)
}

// Delete implements ProductionHandler
func (h *productionHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Production output ID must be a valid UUID", nil)
		return
	}

	if err := h.outputService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Production output deleted", nil)
}

// Import implements ProductionHandler
func (h *productionHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	data, err := readWorkbookUpload(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	summary, err := h.outputService.ImportXLSX(r.Context(), data)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Import finished", summary)
}

// Export implements ProductionHandler
func (h *productionHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.outputService.ExportXLSX(r.Context(), outputFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeWorkbook(w, "produksi.xlsx", data)
}
