package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/employee"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/user"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/sheets"
	"github.com/nmep-hris/payroll-backend-go/internal/service/file"
)

// maxIDAttempts bounds employee id allocation when generated ids collide.
const maxIDAttempts = 5

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	fileService  file.FileService
	syncer       sheets.Syncer
	now          func() time.Time
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	fileService file.FileService,
	syncer sheets.Syncer,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		fileService:  fileService,
		syncer:       syncer,
		now:          time.Now,
	}
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return employee.Employee{}, err
	}

	newEmployee := req.ToEntity()
	newEmployee.CreatedBy = &actor.UserID

	for attempt := 1; attempt <= maxIDAttempts; attempt++ {
		newEmployee.EmployeeID = employee.GenerateEmployeeID(s.now())

		created, err := s.employeeRepo.Create(ctx, newEmployee)
		if errors.Is(err, employee.ErrEmployeeIDTaken) {
			slog.Debug("employee id collision, retrying", "employee_id", newEmployee.EmployeeID, "attempt", attempt)
			continue
		}
		if err != nil {
			return employee.Employee{}, err
		}

		s.sync(ctx, created)
		return created, nil
	}

	return employee.Employee{}, employee.ErrEmployeeIDExhausted
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.Employee, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return employee.Employee{}, err
	}

	emp, err := employee.Resolve(ctx, s.employeeRepo, id)
	if err != nil {
		return employee.Employee{}, err
	}

	// Employees can only view their own record
	if !actor.IsStaff() && actor.EmployeeID != emp.ID {
		return employee.Employee{}, employee.ErrUnauthorized
	}

	return emp, nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return employee.Employee{}, err
	}

	existing, err := employee.Resolve(ctx, s.employeeRepo, req.ID)
	if err != nil {
		return employee.Employee{}, err
	}

	updated := req.Apply(existing)
	updated.UpdatedBy = &actor.UserID

	saved, err := s.employeeRepo.Update(ctx, updated)
	if err != nil {
		return employee.Employee{}, err
	}

	s.sync(ctx, saved)
	return saved, nil
}

// TerminateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) TerminateEmployee(ctx context.Context, id string) error {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return err
	}

	emp, err := employee.Resolve(ctx, s.employeeRepo, id)
	if err != nil {
		return err
	}
	if emp.Status == employee.StatusTerminated {
		return employee.ErrEmployeeAlreadyExited
	}

	if err := s.employeeRepo.UpdateStatus(ctx, emp.ID, employee.StatusTerminated, &actor.UserID); err != nil {
		return fmt.Errorf("failed to terminate employee: %w", err)
	}
	return nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	return employee.ListEmployeeResponse{
		Employees:  employees,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// ListIncomplete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListIncomplete(ctx context.Context) ([]employee.Employee, error) {
	employees, err := s.employeeRepo.ListIncomplete(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomplete profiles: %w", err)
	}
	return employees, nil
}

// GetStats implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetStats(ctx context.Context) (employee.Stats, error) {
	stats, err := s.employeeRepo.Stats(ctx)
	if err != nil {
		return employee.Stats{}, fmt.Errorf("failed to get employee stats: %w", err)
	}
	return stats, nil
}

// UploadDocument implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UploadDocument(ctx context.Context, req employee.UploadDocumentRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}
	return s.attach(ctx, req.EmployeeID, req.DocumentType, []employee.UploadFile{
		{File: req.File, Filename: req.Filename, ContentType: req.ContentType},
	})
}

// UploadDocuments implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UploadDocuments(ctx context.Context, req employee.UploadDocumentsRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}
	return s.attach(ctx, req.EmployeeID, req.DocumentType, req.Files)
}

// attach stores every file, then records them in one write. A failure at any
// step removes the files stored so far. A replaced single document is removed
// from storage once the new one is saved.
func (s *EmployeeServiceImpl) attach(ctx context.Context, ref, documentType string, files []employee.UploadFile) (employee.Employee, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return employee.Employee{}, err
	}

	emp, err := employee.Resolve(ctx, s.employeeRepo, ref)
	if err != nil {
		return employee.Employee{}, err
	}

	var replaced []employee.StoredFile
	if documentType != employee.DocumentEducationCertificates {
		replaced, _ = emp.Documents.Clear(documentType)
	}

	stored := make([]employee.StoredFile, 0, len(files))
	discard := func() {
		for _, f := range stored {
			if delErr := s.fileService.DeleteFile(ctx, f.Key); delErr != nil {
				slog.Warn("failed to remove orphaned document", "key", f.Key, "error", delErr)
			}
		}
	}

	for _, f := range files {
		obj, err := s.fileService.UploadDocument(ctx, emp.EmployeeID, documentType, f.File, f.Filename)
		if err != nil {
			discard()
			return employee.Employee{}, err
		}
		file := employee.StoredFile{URL: obj.URL, Key: obj.Key}
		stored = append(stored, file)
		if err := emp.Documents.Attach(documentType, file); err != nil {
			discard()
			return employee.Employee{}, err
		}
	}
	emp.UpdatedBy = &actor.UserID

	saved, err := s.employeeRepo.Update(ctx, emp)
	if err != nil {
		discard()
		return employee.Employee{}, fmt.Errorf("failed to save document: %w", err)
	}

	s.removeStored(ctx, emp.EmployeeID, replaced)
	return saved, nil
}

// GetDocuments implements employee.EmployeeService. Employees may read their
// own documents; staff need the document permission.
func (s *EmployeeServiceImpl) GetDocuments(ctx context.Context, id string) (employee.EmployeeDocuments, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return employee.EmployeeDocuments{}, err
	}

	emp, err := employee.Resolve(ctx, s.employeeRepo, id)
	if err != nil {
		return employee.EmployeeDocuments{}, err
	}

	if !actor.Can(user.PermissionViewDocuments) && actor.EmployeeID != emp.ID {
		return employee.EmployeeDocuments{}, employee.ErrUnauthorized
	}

	return employee.NewEmployeeDocuments(emp), nil
}

// DeleteDocument implements employee.EmployeeService. Storage is only touched
// after the record no longer points at the files.
func (s *EmployeeServiceImpl) DeleteDocument(ctx context.Context, id, documentType string) (employee.Employee, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	if !actor.Can(user.PermissionViewDocuments) {
		return employee.Employee{}, employee.ErrUnauthorized
	}

	emp, err := employee.Resolve(ctx, s.employeeRepo, id)
	if err != nil {
		return employee.Employee{}, err
	}

	removed, err := emp.Documents.Clear(documentType)
	if err != nil {
		return employee.Employee{}, err
	}
	emp.UpdatedBy = &actor.UserID

	saved, err := s.employeeRepo.Update(ctx, emp)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to delete document: %w", err)
	}

	s.removeStored(ctx, emp.EmployeeID, removed)
	slog.Info("document deleted", "employee_id", emp.EmployeeID, "document_type", documentType, "files", len(removed))
	return saved, nil
}

// ListPendingDocuments implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListPendingDocuments(ctx context.Context) ([]employee.EmployeeDocuments, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.Can(user.PermissionViewDocuments) {
		return nil, employee.ErrUnauthorized
	}

	employees, err := s.employeeRepo.ListIncomplete(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending documents: %w", err)
	}

	pending := make([]employee.EmployeeDocuments, 0, len(employees))
	for _, e := range employees {
		pending = append(pending, employee.NewEmployeeDocuments(e))
	}
	return pending, nil
}

// removeStored deletes files that are no longer referenced. Failures are
// logged; the record is already consistent.
func (s *EmployeeServiceImpl) removeStored(ctx context.Context, employeeCode string, files []employee.StoredFile) {
	for _, f := range files {
		if f.Key == "" {
			slog.Warn("document has no storage key, file left in place", "employee_id", employeeCode, "url", f.URL)
			continue
		}
		removed, err := s.fileService.RemoveDocument(ctx, f.Key)
		switch {
		case err != nil:
			slog.Warn("failed to remove document from storage", "employee_id", employeeCode, "key", f.Key, "error", err)
		case !removed:
			slog.Debug("document already absent from storage", "employee_id", employeeCode, "key", f.Key)
		}
	}
}

func (s *EmployeeServiceImpl) sync(ctx context.Context, e employee.Employee) {
	if err := s.syncer.SyncEmployee(ctx, e); err != nil {
		slog.Warn("sheets sync failed", "entity", "employee", "employee_id", e.EmployeeID, "error", err)
	}
}
