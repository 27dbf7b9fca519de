/*
handlers.go - HTTP API handlers for the payroll service

PURPOSE:
  Exposes the statutory calculator and the monthly payroll batch via REST.
  Handles HTTP request/response, JSON serialization, validation, and
  delegates to the payroll and statutory packages.

ENDPOINTS:
  Statutory:
    POST   /api/statutory/calculate          One-off EPF/SOCSO/EIS calculation
    GET    /api/statutory/schedule           Rate schedule in use

  Employees:
    GET    /api/employees                    List employees (?status=ACTIVE)
    POST   /api/employees                    Create employee
    GET    /api/employees/{id}               Get employee
    GET    /api/employees/{id}/ea-form       Yearly EA form (?year=)
    GET    /api/employees/{id}/ea-form.pdf   Same, as PDF

  Payroll:
    POST   /api/payroll/runs                 Run a month for all active employees
    GET    /api/payroll/records              List records (?year=&month=&employee_id=&paid=)
    GET    /api/payroll/records/{id}         Get record
    POST   /api/payroll/records/{id}/toggle-paid
    DELETE /api/payroll/records/{id}
    GET    /api/payroll/records/{id}/payslip.pdf

  Scenarios:
    GET    /api/scenarios                    List demo scenarios
    POST   /api/scenarios/load               Load a demo scenario

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid period or inputs, nobody to pay
  - 404: Employee or record not found
  - 500: Internal errors

SECURITY NOTE:
  No authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo data loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/waymongoh96-sys/Way-Pay-Database-1/factory"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/nric"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/payroll"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/statutory"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Processor *payroll.Processor
	Factory   *factory.ScheduleFactory
	Logger    zerolog.Logger

	// Now supplies the default reference year and the scenario dates.
	Now func() time.Time

	validate *validator.Validate
}

// NewHandler creates a handler around processor.
func NewHandler(processor *payroll.Processor) *Handler {
	return &Handler{
		Processor: processor,
		Factory:   factory.NewScheduleFactory(),
		Logger:    zerolog.Nop(),
		Now:       time.Now,
		validate:  newValidator(),
	}
}

// =============================================================================
// STATUTORY
// =============================================================================

// Calculate runs the statutory engine on one set of earnings.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if !h.decode(w, r, &req) {
		return
	}

	age := nric.DefaultAge
	switch {
	case req.Age != nil:
		age = *req.Age
	case req.NRIC != "":
		year := req.ReferenceYear
		if year == 0 {
			year = h.Now().Year()
		}
		age = nric.DeriveAge(req.NRIC, year)
	}

	result := h.Processor.Calculator.Calculate(statutory.Inputs{
		ActualBasicSalary: req.ActualBasicSalary,
		Allowance:         req.Allowance,
		Bonus:             req.Bonus,
		Overtime:          req.Overtime,
		UnpaidLeaveDays:   req.UnpaidLeaveDays,
		OtherDeductions:   req.OtherDeductions,
		ManualPCB:         req.PCB,
		DaysInMonth:       req.DaysInMonth,
		AgeYears:          age,
	})

	writeJSON(w, http.StatusOK, CalculateResponse{AgeYears: age, StatutoryResultDTO: toResultDTO(result)})
}

// GetSchedule returns the rate schedule the calculator uses.
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Factory.ToJSON(h.Processor.Calculator.Schedule()))
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	filter := payroll.EmployeeFilter{Status: payroll.EmployeeStatus(r.URL.Query().Get("status"))}
	employees, err := h.Processor.Store.ListEmployees(r.Context(), filter)
	if err != nil {
		h.handleError(w, err, "Failed to list employees")
		return
	}

	dtos := make([]EmployeeDTO, 0, len(employees))
	for _, e := range employees {
		dtos = append(dtos, toEmployeeDTO(e))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}

	emp, err := h.Processor.AddEmployee(r.Context(), req.toEmployee())
	if err != nil {
		h.handleError(w, err, "Failed to create employee")
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(*emp))
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Processor.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err, "Failed to get employee")
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// GetEAForm returns the yearly totals of an employee's paid records.
func (h *Handler) GetEAForm(w http.ResponseWriter, r *http.Request) {
	form, ok := h.eaForm(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toEAFormDTO(*form))
}

func (h *Handler) GetEAFormPDF(w http.ResponseWriter, r *http.Request) {
	form, ok := h.eaForm(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := payroll.RenderEAForm(&buf, *form); err != nil {
		h.handleError(w, err, "Failed to render EA form")
		return
	}
	writePDF(w, fmt.Sprintf("ea-form-%s-%d.pdf", form.Employee.ID, form.Year), buf.Bytes())
}

func (h *Handler) eaForm(w http.ResponseWriter, r *http.Request) (*payroll.EAForm, bool) {
	year := h.Now().Year()
	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return nil, false
		}
		year = parsed
	}

	form, err := h.Processor.EAForm(r.Context(), chi.URLParam(r, "id"), year)
	if err != nil {
		h.handleError(w, err, "Failed to build EA form")
		return nil, false
	}
	return form, true
}

// =============================================================================
// PAYROLL
// =============================================================================

// RunPayroll computes and saves a month for every active employee.
func (h *Handler) RunPayroll(w http.ResponseWriter, r *http.Request) {
	var req RunPayrollRequest
	if !h.decode(w, r, &req) {
		return
	}

	summary, err := h.Processor.Run(r.Context(), req.toRunRequest())
	if err != nil {
		h.handleError(w, err, "Payroll run failed")
		return
	}
	writeJSON(w, http.StatusOK, toRunSummaryDTO(*summary))
}

func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := payroll.RecordFilter{EmployeeID: q.Get("employee_id")}

	for _, p := range []struct {
		name string
		dst  **int
	}{{"year", &filter.Year}, {"month", &filter.Month}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid "+p.name, err)
			return
		}
		*p.dst = &n
	}
	if v := q.Get("paid"); v != "" {
		paid, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid paid flag", err)
			return
		}
		filter.PaidOnly = paid
	}

	records, err := h.Processor.ListRecords(r.Context(), filter)
	if err != nil {
		h.handleError(w, err, "Failed to list records")
		return
	}
	writeJSON(w, http.StatusOK, toRecordDTOs(records))
}

func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Processor.GetRecord(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err, "Failed to get record")
		return
	}
	writeJSON(w, http.StatusOK, toRecordDTO(*rec))
}

func (h *Handler) TogglePaid(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Processor.TogglePaid(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err, "Failed to update payment status")
		return
	}
	writeJSON(w, http.StatusOK, toRecordDTO(*rec))
}

func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := h.Processor.DeleteRecord(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleError(w, err, "Failed to delete record")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetPayslipPDF renders one record as a payslip.
func (h *Handler) GetPayslipPDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rec, err := h.Processor.GetRecord(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err, "Failed to get record")
		return
	}
	emp, err := h.Processor.GetEmployee(ctx, rec.EmployeeID)
	if err != nil {
		h.handleError(w, err, "Failed to get employee")
		return
	}

	var buf bytes.Buffer
	if err := payroll.RenderPayslip(&buf, h.Processor.Company, *emp, *rec); err != nil {
		h.handleError(w, err, "Failed to render payslip")
		return
	}
	writePDF(w, fmt.Sprintf("payslip-%s-%d-%02d.pdf", emp.ID, rec.Year, rec.Month), buf.Bytes())
}

// =============================================================================
// HELPERS
// =============================================================================

// decode reads and validates a JSON body, writing a 400 on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: validationMessage(err),
			Code:  "VALIDATION_FAILED",
		})
		return false
	}
	return true
}

// handleError maps domain errors to HTTP statuses.
func (h *Handler) handleError(w http.ResponseWriter, err error, message string) {
	switch {
	case payroll.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case payroll.IsClientError(err):
		resp := ErrorResponse{Error: message, Code: "INVALID_REQUEST", Details: err.Error()}
		var runErr *payroll.RunError
		if errors.As(err, &runErr) {
			resp.Details = map[string]string{"employee_id": runErr.EmployeeID, "reason": runErr.Err.Error()}
		}
		writeJSON(w, http.StatusBadRequest, resp)
	default:
		h.Logger.Error().Err(err).Msg(message)
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func writePDF(w http.ResponseWriter, filename string, body []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
