package http

import (
	"net/http"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/dashboard"
	"github.com/nmep-hris/payroll-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	Metrics(w http.ResponseWriter, r *http.Request)
	MonthlySummary(w http.ResponseWriter, r *http.Request)
	DepartmentSummary(w http.ResponseWriter, r *http.Request)
	AttendanceTrend(w http.ResponseWriter, r *http.Request)
	UpcomingTasks(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &DashboardHandlerImpl{
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandlerImpl) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.dashboardService.GetMetrics(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, metrics)
}

func (h *DashboardHandlerImpl) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardService.GetMonthlySummary(r.Context(), queryInt(r, "month"), queryInt(r, "year"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

func (h *DashboardHandlerImpl) DepartmentSummary(w http.ResponseWriter, r *http.Request) {
	departments, err := h.dashboardService.GetDepartmentSummary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, departments)
}

func (h *DashboardHandlerImpl) AttendanceTrend(w http.ResponseWriter, r *http.Request) {
	trend, err := h.dashboardService.GetAttendanceTrend(r.Context(), queryInt(r, "days"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, trend)
}

func (h *DashboardHandlerImpl) UpcomingTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.dashboardService.GetUpcomingTasks(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, tasks)
}

func (h *DashboardHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.dashboardService.Refresh(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Dashboard cache cleared", nil)
}
