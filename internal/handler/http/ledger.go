package http

import (
	"net/http"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/deduction"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/incentive"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/increment"
	"github.com/nmep-hris/payroll-backend-go/internal/handler/http/response"
)

// LedgerHandler serves the per-period incentive and deduction entries and salary increments.
type LedgerHandler interface {
	AddIncentive(w http.ResponseWriter, r *http.Request)
	ListIncentives(w http.ResponseWriter, r *http.Request)
	AddDeduction(w http.ResponseWriter, r *http.Request)
	ListDeductions(w http.ResponseWriter, r *http.Request)
	ApplyIncrement(w http.ResponseWriter, r *http.Request)
	ListIncrements(w http.ResponseWriter, r *http.Request)
}

type LedgerHandlerImpl struct {
	incentiveService incentive.IncentiveService
	deductionService deduction.DeductionService
	incrementService increment.IncrementService
}

func NewLedgerHandler(
	incentiveService incentive.IncentiveService,
	deductionService deduction.DeductionService,
	incrementService increment.IncrementService,
) LedgerHandler {
	return &LedgerHandlerImpl{
		incentiveService: incentiveService,
		deductionService: deductionService,
		incrementService: incrementService,
	}
}

// AddIncentive implements LedgerHandler.
func (h *LedgerHandlerImpl) AddIncentive(w http.ResponseWriter, r *http.Request) {
	var req incentive.CreateIncentiveRequest
	if !decodeJSON(w, r, "AddIncentive", &req) {
		return
	}

	created, err := h.incentiveService.AddIncentive(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Incentive added successfully", created)
}

// ListIncentives implements LedgerHandler.
func (h *LedgerHandlerImpl) ListIncentives(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r, 20)

	items, total, err := h.incentiveService.ListIncentives(r.Context(), incentive.IncentiveFilter{
		EmployeeID: r.URL.Query().Get("employeeId"),
		Month:      queryInt(r, "month"),
		Year:       queryInt(r, "year"),
		Status:     r.URL.Query().Get("status"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, items, pageMeta(page, limit, total))
}

// AddDeduction implements LedgerHandler.
func (h *LedgerHandlerImpl) AddDeduction(w http.ResponseWriter, r *http.Request) {
	var req deduction.CreateDeductionRequest
	if !decodeJSON(w, r, "AddDeduction", &req) {
		return
	}

	created, err := h.deductionService.AddDeduction(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Deduction added successfully", created)
}

// ListDeductions implements LedgerHandler.
func (h *LedgerHandlerImpl) ListDeductions(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r, 20)

	items, total, err := h.deductionService.ListDeductions(r.Context(), deduction.DeductionFilter{
		EmployeeID: r.URL.Query().Get("employeeId"),
		Month:      queryInt(r, "month"),
		Year:       queryInt(r, "year"),
		Status:     r.URL.Query().Get("status"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, items, pageMeta(page, limit, total))
}

// ApplyIncrement implements LedgerHandler.
func (h *LedgerHandlerImpl) ApplyIncrement(w http.ResponseWriter, r *http.Request) {
	var req increment.CreateIncrementRequest
	if !decodeJSON(w, r, "ApplyIncrement", &req) {
		return
	}

	applied, err := h.incrementService.ApplyIncrement(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Increment applied successfully", applied)
}

// ListIncrements implements LedgerHandler.
func (h *LedgerHandlerImpl) ListIncrements(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r, 20)

	items, total, err := h.incrementService.ListIncrements(r.Context(), increment.IncrementFilter{
		EmployeeID: r.URL.Query().Get("employeeId"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, items, pageMeta(page, limit, total))
}
