package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/employee"
	"github.com/nmep-hris/payroll-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Terminate(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListIncomplete(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	UploadDocument(w http.ResponseWriter, r *http.Request)
	UploadDocuments(w http.ResponseWriter, r *http.Request)
	Documents(w http.ResponseWriter, r *http.Request)
	DeleteDocument(w http.ResponseWriter, r *http.Request)
	PendingDocuments(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{
		employeeService: employeeService,
	}
}

// Create implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if !decodeJSON(w, r, "CreateEmployee", &req) {
		return
	}

	created, err := h.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", created)
}

// Get implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	emp, err := h.employeeService.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, emp)
}

// Update implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest
	if !decodeJSON(w, r, "UpdateEmployee", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.employeeService.UpdateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", updated)
}

// Terminate implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Terminate(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeService.TerminateEmployee(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee terminated successfully", nil)
}

// List implements EmployeeHandler.
func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := pagination(r, 10)

	result, err := h.employeeService.ListEmployees(r.Context(), employee.EmployeeFilter{
		Search:     q.Get("search"),
		Department: q.Get("department"),
		Status:     q.Get("status"),
		SortBy:     q.Get("sortBy"),
		SortOrder:  q.Get("sortOrder"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Employees, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// ListIncomplete implements EmployeeHandler.
func (h *EmployeeHandlerImpl) ListIncomplete(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.ListIncomplete(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employees)
}

// Stats implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.employeeService.GetStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// UploadDocument implements EmployeeHandler.
func (h *EmployeeHandlerImpl) UploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("UploadDocument parse error", "error", err)
		response.BadRequest(w, "File too large or invalid form data", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "file is required", nil)
		return
	}
	defer file.Close()

	updated, err := h.employeeService.UploadDocument(r.Context(), employee.UploadDocumentRequest{
		EmployeeID:   chi.URLParam(r, "id"),
		DocumentType: r.FormValue("documentType"),
		File:         file,
		Filename:     header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Document uploaded successfully", updated)
}

// UploadDocuments implements EmployeeHandler. Files arrive as repeated "files" parts.
func (h *EmployeeHandlerImpl) UploadDocuments(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("UploadDocuments parse error", "error", err)
		response.BadRequest(w, "File too large or invalid form data", nil)
		return
	}

	headers := r.MultipartForm.File["files"]
	files := make([]employee.UploadFile, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			response.BadRequest(w, "Could not read uploaded file", map[string]string{"files": header.Filename})
			return
		}
		defer f.Close()
		files = append(files, employee.UploadFile{
			File:        f,
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
		})
	}

	updated, err := h.employeeService.UploadDocuments(r.Context(), employee.UploadDocumentsRequest{
		EmployeeID:   chi.URLParam(r, "id"),
		DocumentType: r.FormValue("documentType"),
		Files:        files,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Documents uploaded successfully", updated)
}

// Documents implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Documents(w http.ResponseWriter, r *http.Request) {
	docs, err := h.employeeService.GetDocuments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, docs)
}

// DeleteDocument implements EmployeeHandler.
func (h *EmployeeHandlerImpl) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	updated, err := h.employeeService.DeleteDocument(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "type"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Document deleted successfully", updated)
}

// PendingDocuments implements EmployeeHandler.
func (h *EmployeeHandlerImpl) PendingDocuments(w http.ResponseWriter, r *http.Request) {
	pending, err := h.employeeService.ListPendingDocuments(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, pending)
}
