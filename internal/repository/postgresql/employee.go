package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/employee"
	"github.com/nmep-hris/payroll-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

const (
	constraintEmployeeID = "uk_employees_employee_id"
	constraintAadhaar    = "uk_employees_aadhaar"
	constraintPAN        = "uk_employees_pan"
)

const employeeColumns = `
	e.id, e.employee_id, e.first_name, e.middle_name, e.last_name, e.date_of_birth, e.gender, e.blood_group,
	e.aadhaar_number, e.pan_number, e.bank_details, e.email, e.phone, e.alternate_phone,
	e.current_address, e.permanent_address, e.family_details,
	e.department, e.designation, e.date_of_joining, e.employment_type, e.salary_type,
	e.basic_salary, e.hra, e.other_allowances, e.pf_number, e.esi_number, e.uan_number,
	e.documents, e.profile_complete, e.profile_completion, e.missing_fields, e.status,
	e.created_by, e.updated_by, e.created_at, e.updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row rowScanner) (employee.Employee, error) {
	var (
		e                                employee.Employee
		bank, current, permanent, family []byte
		documents                        []byte
	)
	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.FirstName, &e.MiddleName, &e.LastName, &e.DateOfBirth, &e.Gender, &e.BloodGroup,
		&e.AadhaarNumber, &e.PANNumber, &bank, &e.Email, &e.Phone, &e.AlternatePhone,
		&current, &permanent, &family,
		&e.Department, &e.Designation, &e.DateOfJoining, &e.EmploymentType, &e.SalaryType,
		&e.BasicSalary, &e.HRA, &e.OtherAllowances, &e.PFNumber, &e.ESINumber, &e.UANNumber,
		&documents, &e.ProfileStatus.IsComplete, &e.ProfileStatus.CompletionPercentage, &e.ProfileStatus.MissingFields, &e.Status,
		&e.CreatedBy, &e.UpdatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	for _, f := range []struct {
		raw []byte
		dst any
	}{
		{bank, &e.Bank},
		{current, &e.CurrentAddress},
		{permanent, &e.PermanentAddress},
		{family, &e.Family},
		{documents, &e.Documents},
	} {
		if err := fromJSON(f.raw, f.dst); err != nil {
			return employee.Employee{}, err
		}
	}
	if e.Documents.EducationCertificates == nil {
		e.Documents.EducationCertificates = []string{}
	}
	if e.ProfileStatus.MissingFields == nil {
		e.ProfileStatus.MissingFields = []string{}
	}
	return e, nil
}

// employeeArgs returns the columns shared by Create and Update, in order.
// Basic salary is excluded: it only changes through increments.
func employeeArgs(e employee.Employee) ([]any, error) {
	bank, err := toJSON(e.Bank)
	if err != nil {
		return nil, err
	}
	current, err := toJSON(e.CurrentAddress)
	if err != nil {
		return nil, err
	}
	permanent, err := toJSON(e.PermanentAddress)
	if err != nil {
		return nil, err
	}
	family, err := toJSON(e.Family)
	if err != nil {
		return nil, err
	}
	documents, err := toJSON(e.Documents)
	if err != nil {
		return nil, err
	}
	return []any{
		e.EmployeeID, e.FirstName, e.MiddleName, e.LastName, e.DateOfBirth, e.Gender, e.BloodGroup,
		e.AadhaarNumber, e.PANNumber, bank, e.Email, e.Phone, e.AlternatePhone,
		current, permanent, family,
		string(e.Department), e.Designation, e.DateOfJoining, string(e.EmploymentType), string(e.SalaryType),
		e.HRA, e.OtherAllowances, e.PFNumber, e.ESINumber, e.UANNumber,
		documents, e.ProfileStatus.IsComplete, e.ProfileStatus.CompletionPercentage, e.ProfileStatus.MissingFields, string(e.Status),
	}, nil
}

func mapEmployeeWriteError(err error) error {
	switch {
	case database.IsUniqueViolation(err, constraintAadhaar):
		return employee.ErrAadhaarExists
	case database.IsUniqueViolation(err, constraintPAN):
		return employee.ErrPANExists
	case database.IsUniqueViolation(err, constraintEmployeeID):
		return employee.ErrEmployeeIDTaken
	}
	return err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	e = employee.Normalize(e)

	args, err := employeeArgs(e)
	if err != nil {
		return employee.Employee{}, err
	}
	args = append(args, e.BasicSalary.Round(2), e.CreatedBy)

	query := `
		INSERT INTO employees AS e (
			employee_id, first_name, middle_name, last_name, date_of_birth, gender, blood_group,
			aadhaar_number, pan_number, bank_details, email, phone, alternate_phone,
			current_address, permanent_address, family_details,
			department, designation, date_of_joining, employment_type, salary_type,
			hra, other_allowances, pf_number, esi_number, uan_number,
			documents, profile_complete, profile_completion, missing_fields, status,
			basic_salary, created_by, updated_by, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12, $13,
			$14, $15, $16,
			$17, $18, $19, $20, $21,
			$22, $23, $24, $25, $26,
			$27, $28, $29, $30, $31,
			$32, $33, $33, NOW(), NOW()
		)
		ON CONFLICT ON CONSTRAINT ` + constraintEmployeeID + ` DO NOTHING
		RETURNING` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeIDTaken
		}
		return employee.Employee{}, fmt.Errorf("create employee: %w", mapEmployeeWriteError(err))
	}
	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return r.get(ctx, id, "")
}

// GetByIDForUpdate implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	return r.get(ctx, id, " FOR UPDATE OF e")
}

func (r *employeeRepositoryImpl) get(ctx context.Context, id, lock string) (employee.Employee, error) {
	if !isRowID(id) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	q := GetQuerier(ctx, r.db)
	query := `SELECT` + employeeColumns + ` FROM employees e WHERE e.id = $1` + lock

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("get employee %s: %w", id, err)
	}
	return e, nil
}

// GetByEmployeeID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT` + employeeColumns + ` FROM employees e WHERE e.employee_id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, strings.ToUpper(employeeID)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("get employee %s: %w", employeeID, err)
	}
	return e, nil
}

// Update implements employee.EmployeeRepository. Basic salary is left as stored.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	e = employee.Normalize(e)

	args, err := employeeArgs(e)
	if err != nil {
		return employee.Employee{}, err
	}
	args = append(args, e.UpdatedBy, e.ID)

	query := `
		UPDATE employees AS e SET
			employee_id = $1, first_name = $2, middle_name = $3, last_name = $4, date_of_birth = $5,
			gender = $6, blood_group = $7, aadhaar_number = $8, pan_number = $9, bank_details = $10,
			email = $11, phone = $12, alternate_phone = $13,
			current_address = $14, permanent_address = $15, family_details = $16,
			department = $17, designation = $18, date_of_joining = $19, employment_type = $20, salary_type = $21,
			hra = $22, other_allowances = $23, pf_number = $24, esi_number = $25, uan_number = $26,
			documents = $27, profile_complete = $28, profile_completion = $29, missing_fields = $30, status = $31,
			updated_by = $32, updated_at = NOW()
		WHERE e.id = $33
		RETURNING` + employeeColumns

	updated, err := scanEmployee(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("update employee %s: %w", e.ID, mapEmployeeWriteError(err))
	}
	return updated, nil
}

// UpdateStatus implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdateStatus(ctx context.Context, id string, status employee.Status, updatedBy *string) error {
	if !isRowID(id) {
		return employee.ErrEmployeeNotFound
	}
	q := GetQuerier(ctx, r.db)
	query := `UPDATE employees SET status = $1, updated_by = $2, updated_at = NOW() WHERE id = $3`

	tag, err := q.Exec(ctx, query, string(status), updatedBy, id)
	if err != nil {
		return fmt.Errorf("update employee status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// UpdateBasicSalary implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdateBasicSalary(ctx context.Context, id string, basic decimal.Decimal, updatedBy *string) error {
	q := GetQuerier(ctx, r.db)
	query := `UPDATE employees SET basic_salary = $1, updated_by = $2, updated_at = NOW() WHERE id = $3`

	tag, err := q.Exec(ctx, query, basic.Round(2), updatedBy, id)
	if err != nil {
		return fmt.Errorf("update basic salary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []any
	)
	argIndex := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(e.first_name ILIKE $%d OR e.last_name ILIKE $%d OR e.employee_id ILIKE $%d OR e.email ILIKE $%d)",
			argIndex, argIndex, argIndex, argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}
	if filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("e.department = $%d", argIndex))
		args = append(args, filter.Department)
		argIndex++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("e.status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM employees e "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}

	sortColumn, ok := employee.SortColumns[filter.SortBy]
	if !ok {
		sortColumn = "created_at"
	}
	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	query := fmt.Sprintf(`SELECT %s FROM employees e %s ORDER BY e.%s %s, e.id LIMIT $%d OFFSET $%d`,
		employeeColumns, whereClause, sortColumn, sortOrder, argIndex, argIndex+1)
	args = append(args, filter.Limit, offset(filter.Page, filter.Limit))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0, filter.Limit)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, e)
	}
	return employees, total, rows.Err()
}

// ListIncomplete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListIncomplete(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT` + employeeColumns + `
		FROM employees e
		WHERE e.profile_complete = FALSE AND e.status = $1
		ORDER BY e.profile_completion ASC, e.created_at DESC`

	rows, err := q.Query(ctx, query, string(employee.StatusActive))
	if err != nil {
		return nil, fmt.Errorf("list incomplete employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// Stats implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Stats(ctx context.Context) (employee.Stats, error) {
	q := GetQuerier(ctx, r.db)
	stats := employee.Stats{
		ByStatus:     make(map[string]int64),
		ByDepartment: make(map[string]int64),
	}

	rows, err := q.Query(ctx, `SELECT status, COUNT(*) FROM employees GROUP BY status`)
	if err != nil {
		return employee.Stats{}, fmt.Errorf("employee stats by status: %w", err)
	}
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			rows.Close()
			return employee.Stats{}, err
		}
		stats.ByStatus[status] = count
		stats.Total += count
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return employee.Stats{}, err
	}

	rows, err = q.Query(ctx, `SELECT department, COUNT(*) FROM employees WHERE status = $1 GROUP BY department`, string(employee.StatusActive))
	if err != nil {
		return employee.Stats{}, fmt.Errorf("employee stats by department: %w", err)
	}
	for rows.Next() {
		var department string
		var count int64
		if err := rows.Scan(&department, &count); err != nil {
			rows.Close()
			return employee.Stats{}, err
		}
		stats.ByDepartment[department] = count
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return employee.Stats{}, err
	}

	err = q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE profile_complete = FALSE AND status = $1`,
		string(employee.StatusActive)).Scan(&stats.Incomplete)
	if err != nil {
		return employee.Stats{}, fmt.Errorf("count incomplete employees: %w", err)
	}
	return stats, nil
}
