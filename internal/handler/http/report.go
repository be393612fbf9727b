package http

import (
	"net/http"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/report"
	"github.com/nmep-hris/payroll-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Salary(w http.ResponseWriter, r *http.Request)
	Attendance(w http.ResponseWriter, r *http.Request)
	PFESI(w http.ResponseWriter, r *http.Request)
	Incentives(w http.ResponseWriter, r *http.Request)
	Deductions(w http.ResponseWriter, r *http.Request)
	Increments(w http.ResponseWriter, r *http.Request)
	Advances(w http.ResponseWriter, r *http.Request)
	Employees(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{
		reportService: reportService,
	}
}

func (h *ReportHandlerImpl) Salary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.reportService.SalaryReport(r.Context(), report.SalaryReportFilter{
		Month:         queryInt(r, "month"),
		Year:          queryInt(r, "year"),
		Department:    q.Get("department"),
		PaymentStatus: q.Get("paymentStatus"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *ReportHandlerImpl) Attendance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.reportService.AttendanceReport(r.Context(), report.AttendanceReportFilter{
		StartDate:  q.Get("startDate"),
		EndDate:    q.Get("endDate"),
		Department: q.Get("department"),
		EmployeeID: q.Get("employeeId"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *ReportHandlerImpl) PFESI(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.PFESIReport(r.Context(), report.PeriodFilter{
		Month: queryInt(r, "month"),
		Year:  queryInt(r, "year"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *ReportHandlerImpl) Incentives(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.IncentiveReport(r.Context(), ledgerFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *ReportHandlerImpl) Deductions(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.DeductionReport(r.Context(), ledgerFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *ReportHandlerImpl) Increments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.reportService.IncrementReport(r.Context(), report.IncrementReportFilter{
		Year:       queryInt(r, "year"),
		Reason:     q.Get("reason"),
		EmployeeID: q.Get("employeeId"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *ReportHandlerImpl) Advances(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.reportService.AdvanceReport(r.Context(), report.AdvanceReportFilter{
		Status:          q.Get("status"),
		RepaymentStatus: q.Get("repaymentStatus"),
		EmployeeID:      q.Get("employeeId"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *ReportHandlerImpl) Employees(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.reportService.EmployeeReport(r.Context(), report.EmployeeReportFilter{
		Department: q.Get("department"),
		Status:     q.Get("status"),
		SalaryType: q.Get("salaryType"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func ledgerFilter(r *http.Request) report.LedgerFilter {
	q := r.URL.Query()
	return report.LedgerFilter{
		Month:  queryInt(r, "month"),
		Year:   queryInt(r, "year"),
		Type:   q.Get("type"),
		Status: q.Get("status"),
	}
}
