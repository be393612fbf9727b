package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/advance"
	"github.com/nmep-hris/payroll-backend-go/internal/handler/http/response"
)

type AdvanceHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	RecordRepayment(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type AdvanceHandlerImpl struct {
	advanceService advance.AdvanceService
}

func NewAdvanceHandler(advanceService advance.AdvanceService) AdvanceHandler {
	return &AdvanceHandlerImpl{
		advanceService: advanceService,
	}
}

// Create implements AdvanceHandler.
func (h *AdvanceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req advance.CreateAdvanceRequest
	if !decodeJSON(w, r, "CreateAdvance", &req) {
		return
	}

	created, err := h.advanceService.CreateAdvance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Advance created successfully", created)
}

// Decide implements AdvanceHandler.
func (h *AdvanceHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var req advance.DecideAdvanceRequest
	if !decodeJSON(w, r, "DecideAdvance", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	decided, err := h.advanceService.DecideAdvance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Advance "+string(decided.ApprovalStatus), decided)
}

// RecordRepayment implements AdvanceHandler.
func (h *AdvanceHandlerImpl) RecordRepayment(w http.ResponseWriter, r *http.Request) {
	var req advance.RecordRepaymentRequest
	if !decodeJSON(w, r, "RecordRepayment", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.advanceService.RecordRepayment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Repayment recorded successfully", updated)
}

// Get implements AdvanceHandler.
func (h *AdvanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.advanceService.GetAdvance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, a)
}

// List implements AdvanceHandler.
func (h *AdvanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := pagination(r, 20)

	advances, total, err := h.advanceService.ListAdvances(r.Context(), advance.AdvanceFilter{
		EmployeeID:      q.Get("employeeId"),
		ApprovalStatus:  q.Get("approvalStatus"),
		RepaymentStatus: q.Get("repaymentStatus"),
		Page:            page,
		Limit:           limit,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, advances, pageMeta(page, limit, total))
}
