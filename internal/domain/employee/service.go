package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// CreateEmployee allocates a fresh employee id and stores the record (admin/hr)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (Employee, error)

	// GetEmployee retrieves by row id or employee id; employees may only read themselves
	GetEmployee(ctx context.Context, id string) (Employee, error)

	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (Employee, error)

	// TerminateEmployee moves the employee to Terminated; records are never removed
	TerminateEmployee(ctx context.Context, id string) error

	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)
	ListIncomplete(ctx context.Context) ([]Employee, error)
	GetStats(ctx context.Context) (Stats, error)

	// UploadDocument stores the file first and only then records its URL
	UploadDocument(ctx context.Context, req UploadDocumentRequest) (Employee, error)

	// UploadDocuments stores every file before recording any of them
	UploadDocuments(ctx context.Context, req UploadDocumentsRequest) (Employee, error)

	GetDocuments(ctx context.Context, id string) (EmployeeDocuments, error)

	// DeleteDocument clears the recorded files of one type and removes them from storage
	DeleteDocument(ctx context.Context, id, documentType string) (Employee, error)

	// ListPendingDocuments returns active employees whose profile is still incomplete
	ListPendingDocuments(ctx context.Context) ([]EmployeeDocuments, error)
}
