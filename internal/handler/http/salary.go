package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/salary"
	"github.com/nmep-hris/payroll-backend-go/internal/handler/http/response"
)

type SalaryHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UpdatePaymentStatus(w http.ResponseWriter, r *http.Request)
	Payslip(w http.ResponseWriter, r *http.Request)
}

type SalaryHandlerImpl struct {
	salaryService salary.SalaryService
}

func NewSalaryHandler(salaryService salary.SalaryService) SalaryHandler {
	return &SalaryHandlerImpl{
		salaryService: salaryService,
	}
}

// Generate implements SalaryHandler.
func (h *SalaryHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req salary.GenerateSalaryRequest
	if !decodeJSON(w, r, "GenerateSalary", &req) {
		return
	}

	generated, err := h.salaryService.GenerateSalary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary generated successfully", generated)
}

// Get implements SalaryHandler.
func (h *SalaryHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.salaryService.GetSalary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, s)
}

// List implements SalaryHandler.
func (h *SalaryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := pagination(r, 10)

	salaries, total, err := h.salaryService.ListSalaries(r.Context(), salary.SalaryFilter{
		EmployeeCode:  q.Get("employeeId"),
		Month:         queryInt(r, "month"),
		Year:          queryInt(r, "year"),
		PaymentStatus: q.Get("paymentStatus"),
		Department:    q.Get("department"),
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, salaries, pageMeta(page, limit, total))
}

// UpdatePaymentStatus implements SalaryHandler.
func (h *SalaryHandlerImpl) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req salary.UpdatePaymentStatusRequest
	if !decodeJSON(w, r, "UpdatePaymentStatus", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.salaryService.UpdatePaymentStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment status updated successfully", updated)
}

// Payslip implements SalaryHandler.
func (h *SalaryHandlerImpl) Payslip(w http.ResponseWriter, r *http.Request) {
	pdf, filename, err := h.salaryService.Payslip(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		slog.Error("failed to write payslip", "error", err)
	}
}
