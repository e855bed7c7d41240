package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kurniatex/payroll-backend-go/internal/domain/payroll"
	"github.com/kurniatex/payroll-backend-go/internal/handler/http/response"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/validator"
)

type PayrollHandler interface {
	// Master rates
	UpsertMasterRate(w http.ResponseWriter, r *http.Request)
	ListMasterRates(w http.ResponseWriter, r *http.Request)
	DeleteMasterRate(w http.ResponseWriter, r *http.Request)
	ImportMasterRates(w http.ResponseWriter, r *http.Request)

	// Month divisors
	UpsertMonthDivisor(w http.ResponseWriter, r *http.Request)
	ListMonthDivisors(w http.ResponseWriter, r *http.Request)
	DeleteMonthDivisor(w http.ResponseWriter, r *http.Request)

	// Salary records
	ListSalaryRecords(w http.ResponseWriter, r *http.Request)
	ExportSalaryRecords(w http.ResponseWriter, r *http.Request)
	GetBreakdown(w http.ResponseWriter, r *http.Request)
	Sync(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
	syncer         payroll.MonthlySyncer
}

func NewPayrollHandler(payrollService payroll.PayrollService, syncer payroll.MonthlySyncer) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
		syncer:         syncer,
	}
}

// UpsertMasterRate implements PayrollHandler
func (h *payrollHandlerImpl) UpsertMasterRate(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpsertMasterRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.UpsertMasterRate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary master rate saved", result)
}

// ListMasterRates implements PayrollHandler
func (h *payrollHandlerImpl) ListMasterRates(w http.ResponseWriter, r *http.Request) {
	var filter payroll.MasterRateFilter
	q := r.URL.Query()

	if month := q.Get("month"); month != "" {
		filter.Month = &month
	}
	if grade := q.Get("grade"); grade != "" {
		filter.Grade = &grade
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	result, err := h.payrollService.ListMasterRates(r.Context(), filter)
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

// DeleteMasterRate implements PayrollHandler
func (h *payrollHandlerImpl) DeleteMasterRate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Master rate ID must be a valid UUID", nil)
		return
	}

	if err := h.payrollService.DeleteMasterRate(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary master rate deleted", nil)
}

// ImportMasterRates implements PayrollHandler
func (h *payrollHandlerImpl) ImportMasterRates(w http.ResponseWriter, r *http.Request) {
	data, err := readWorkbookUpload(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	summary, err := h.payrollService.ImportMasterRatesXLSX(r.Context(), data)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Import finished", summary)
}

// UpsertMonthDivisor implements PayrollHandler
func (h *payrollHandlerImpl) UpsertMonthDivisor(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpsertMonthDivisorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.UpsertMonthDivisor(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Month divisor saved", result)
}

// ListMonthDivisors implements PayrollHandler
func (h *payrollHandlerImpl) ListMonthDivisors(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ListMonthDivisors(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DeleteMonthDivisor implements PayrollHandler
func (h *payrollHandlerImpl) DeleteMonthDivisor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Month divisor ID must be a valid UUID", nil)
		return
	}

	if err := h.payrollService.DeleteMonthDivisor(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Month divisor deleted", nil)
}

func salaryRecordFilterFromQuery(r *http.Request) payroll.SalaryRecordFilter {
	var filter payroll.SalaryRecordFilter
	q := r.URL.Query()

	if month := q.Get("month"); month != "" {
		filter.Month = &month
	}
	if code := q.Get("employee_code"); code != "" {
		filter.EmployeeCode = &code
	}
	if search := q.Get("search"); search != "" {
		filter.Search = &search
	}
	if scheme := q.Get("scheme"); scheme != "" {
		filter.Scheme = &scheme
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	return filter
}

// ListSalaryRecords implements PayrollHandler
func (h *payrollHandlerImpl) ListSalaryRecords(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ListSalaryRecords(r.Context(), salaryRecordFilterFromQuery(r))
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

// ExportSalaryRecords implements PayrollHandler
func (h *payrollHandlerImpl) ExportSalaryRecords(w http.ResponseWriter, r *http.Request) {
	data, err := h.payrollService.ExportSalaryRecordsXLSX(r.Context(), salaryRecordFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeWorkbook(w, "gaji.xlsx", data)
}

// GetBreakdown implements PayrollHandler
func (h *payrollHandlerImpl) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Salary record ID must be a valid UUID", nil)
		return
	}

	result, err := h.payrollService.GetBreakdown(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Sync implements PayrollHandler
func (h *payrollHandlerImpl) Sync(w http.ResponseWriter, r *http.Request) {
	var req payroll.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.syncer.SyncMonth(r.Context(), req.Month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Monthly sync finished", result)
}
