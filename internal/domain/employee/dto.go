package employee

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/nmep-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	FirstName        string        `json:"firstName"`
	MiddleName       string        `json:"middleName"`
	LastName         string        `json:"lastName"`
	DateOfBirth      *string       `json:"dateOfBirth,omitempty"`
	Gender           string        `json:"gender"`
	BloodGroup       string        `json:"bloodGroup"`
	AadhaarNumber    string        `json:"aadhaarNumber"`
	PANNumber        string        `json:"panNumber"`
	Bank             BankDetails   `json:"bankDetails"`
	Email            string        `json:"email"`
	Phone            string        `json:"phone"`
	AlternatePhone   string        `json:"alternatePhone"`
	CurrentAddress   Address       `json:"currentAddress"`
	PermanentAddress Address       `json:"permanentAddress"`
	Family           FamilyDetails `json:"familyDetails"`

	Department      string           `json:"department"`
	Designation     string           `json:"designation"`
	DateOfJoining   string           `json:"dateOfJoining"`
	EmploymentType  string           `json:"employmentType"`
	SalaryType      string           `json:"salaryType"`
	BasicSalary     decimal.Decimal  `json:"basicSalary"`
	HRA             *decimal.Decimal `json:"hra,omitempty"`
	OtherAllowances *decimal.Decimal `json:"otherAllowances,omitempty"`
	PFNumber        string           `json:"pfNumber"`
	ESINumber       string           `json:"esiNumber"`
	UANNumber       string           `json:"uanNumber"`
}

func (r CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "firstName", Message: "first name is required"})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "lastName", Message: "last name is required"})
	}
	if !validator.IsValidEmail(strings.TrimSpace(r.Email)) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "a valid email is required"})
	}
	if !validator.IsValidPhoneNumber(r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "a valid 10 digit mobile number is required"})
	}
	if r.AlternatePhone != "" && !validator.IsValidPhoneNumber(r.AlternatePhone) {
		errs = append(errs, validator.ValidationError{Field: "alternatePhone", Message: "invalid phone number"})
	}
	if r.DateOfBirth != nil {
		if _, ok := validator.IsValidDate(*r.DateOfBirth); !ok {
			errs = append(errs, validator.ValidationError{Field: "dateOfBirth", Message: "date must be YYYY-MM-DD"})
		}
	}
	if r.Gender != "" && !validator.IsInSlice(r.Gender, Genders) {
		errs = append(errs, validator.ValidationError{Field: "gender", Message: "gender must be one of " + strings.Join(Genders, ", ")})
	}
	if r.Family.MaritalStatus != "" && !validator.IsInSlice(r.Family.MaritalStatus, MaritalStatuses) {
		errs = append(errs, validator.ValidationError{Field: "familyDetails.maritalStatus", Message: "invalid marital status"})
	}

	errs = append(errs, validateIdentity(r.AadhaarNumber, r.PANNumber, r.Bank.IFSCCode)...)
	errs = append(errs, validateAddress("currentAddress", r.CurrentAddress)...)
	errs = append(errs, validateAddress("permanentAddress", r.PermanentAddress)...)

	if !validator.IsInSlice(r.Department, Departments) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "department must be one of " + strings.Join(Departments, ", ")})
	}
	if !validator.IsInSlice(r.Designation, Designations) {
		errs = append(errs, validator.ValidationError{Field: "designation", Message: "invalid designation"})
	}
	if _, ok := validator.IsValidDate(r.DateOfJoining); !ok {
		errs = append(errs, validator.ValidationError{Field: "dateOfJoining", Message: "date of joining is required (YYYY-MM-DD)"})
	}
	if r.EmploymentType != "" && !validator.IsInSlice(r.EmploymentType, EmploymentTypes) {
		errs = append(errs, validator.ValidationError{Field: "employmentType", Message: "employment type must be one of " + strings.Join(EmploymentTypes, ", ")})
	}
	if !validator.IsInSlice(r.SalaryType, SalaryTypes) {
		errs = append(errs, validator.ValidationError{Field: "salaryType", Message: "salary type must be Monthly or Daily"})
	}
	errs = append(errs, validateMoney(r.BasicSalary, r.HRA, r.OtherAllowances)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToEntity maps a validated request onto a new Employee.
func (r CreateEmployeeRequest) ToEntity() Employee {
	e := Employee{
		FirstName:        r.FirstName,
		MiddleName:       r.MiddleName,
		LastName:         r.LastName,
		Gender:           r.Gender,
		BloodGroup:       r.BloodGroup,
		AadhaarNumber:    r.AadhaarNumber,
		PANNumber:        r.PANNumber,
		Bank:             r.Bank,
		Email:            r.Email,
		Phone:            r.Phone,
		AlternatePhone:   r.AlternatePhone,
		CurrentAddress:   r.CurrentAddress,
		PermanentAddress: r.PermanentAddress,
		Family:           r.Family,
		Department:       Department(r.Department),
		Designation:      r.Designation,
		EmploymentType:   EmploymentType(r.EmploymentType),
		SalaryType:       SalaryType(r.SalaryType),
		BasicSalary:      r.BasicSalary,
		HRA:              r.HRA,
		OtherAllowances:  r.OtherAllowances,
		PFNumber:         r.PFNumber,
		ESINumber:        r.ESINumber,
		UANNumber:        r.UANNumber,
		Status:           StatusActive,
	}
	if r.DateOfBirth != nil {
		if dob, ok := validator.IsValidDate(*r.DateOfBirth); ok {
			e.DateOfBirth = &dob
		}
	}
	e.DateOfJoining, _ = validator.IsValidDate(r.DateOfJoining)
	return e
}

// UpdateEmployeeRequest is a partial update; nil fields are left untouched.
type UpdateEmployeeRequest struct {
	ID string `json:"-"`

	FirstName        *string        `json:"firstName,omitempty"`
	MiddleName       *string        `json:"middleName,omitempty"`
	LastName         *string        `json:"lastName,omitempty"`
	DateOfBirth      *string        `json:"dateOfBirth,omitempty"`
	Gender           *string        `json:"gender,omitempty"`
	BloodGroup       *string        `json:"bloodGroup,omitempty"`
	AadhaarNumber    *string        `json:"aadhaarNumber,omitempty"`
	PANNumber        *string        `json:"panNumber,omitempty"`
	Bank             *BankDetails   `json:"bankDetails,omitempty"`
	Email            *string        `json:"email,omitempty"`
	Phone            *string        `json:"phone,omitempty"`
	AlternatePhone   *string        `json:"alternatePhone,omitempty"`
	CurrentAddress   *Address       `json:"currentAddress,omitempty"`
	PermanentAddress *Address       `json:"permanentAddress,omitempty"`
	Family           *FamilyDetails `json:"familyDetails,omitempty"`

	Department      *string          `json:"department,omitempty"`
	Designation     *string          `json:"designation,omitempty"`
	DateOfJoining   *string          `json:"dateOfJoining,omitempty"`
	EmploymentType  *string          `json:"employmentType,omitempty"`
	SalaryType      *string          `json:"salaryType,omitempty"`
	HRA             *decimal.Decimal `json:"hra,omitempty"`
	OtherAllowances *decimal.Decimal `json:"otherAllowances,omitempty"`
	PFNumber        *string          `json:"pfNumber,omitempty"`
	ESINumber       *string          `json:"esiNumber,omitempty"`
	UANNumber       *string          `json:"uanNumber,omitempty"`
	Status          *string          `json:"status,omitempty"`
}

func (r UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "firstName", Message: "first name cannot be empty"})
	}
	if r.LastName != nil && validator.IsEmpty(*r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "lastName", Message: "last name cannot be empty"})
	}
	if r.Email != nil && !validator.IsValidEmail(strings.TrimSpace(*r.Email)) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email"})
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "invalid phone number"})
	}
	if r.DateOfBirth != nil {
		if _, ok := validator.IsValidDate(*r.DateOfBirth); !ok {
			errs = append(errs, validator.ValidationError{Field: "dateOfBirth", Message: "date must be YYYY-MM-DD"})
		}
	}
	if r.Gender != nil && !validator.IsInSlice(*r.Gender, Genders) {
		errs = append(errs, validator.ValidationError{Field: "gender", Message: "invalid gender"})
	}
	aadhaar, pan, ifsc := "", "", ""
	if r.AadhaarNumber != nil {
		aadhaar = *r.AadhaarNumber
	}
	if r.PANNumber != nil {
		pan = *r.PANNumber
	}
	if r.Bank != nil {
		ifsc = r.Bank.IFSCCode
	}
	errs = append(errs, validateIdentity(aadhaar, pan, ifsc)...)
	if r.CurrentAddress != nil {
		errs = append(errs, validateAddress("currentAddress", *r.CurrentAddress)...)
	}
	if r.PermanentAddress != nil {
		errs = append(errs, validateAddress("permanentAddress", *r.PermanentAddress)...)
	}
	if r.Department != nil && !validator.IsInSlice(*r.Department, Departments) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "invalid department"})
	}
	if r.Designation != nil && !validator.IsInSlice(*r.Designation, Designations) {
		errs = append(errs, validator.ValidationError{Field: "designation", Message: "invalid designation"})
	}
	if r.DateOfJoining != nil {
		if _, ok := validator.IsValidDate(*r.DateOfJoining); !ok {
			errs = append(errs, validator.ValidationError{Field: "dateOfJoining", Message: "date must be YYYY-MM-DD"})
		}
	}
	if r.EmploymentType != nil && !validator.IsInSlice(*r.EmploymentType, EmploymentTypes) {
		errs = append(errs, validator.ValidationError{Field: "employmentType", Message: "invalid employment type"})
	}
	if r.SalaryType != nil && !validator.IsInSlice(*r.SalaryType, SalaryTypes) {
		errs = append(errs, validator.ValidationError{Field: "salaryType", Message: "salary type must be Monthly or Daily"})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, Statuses) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "invalid status"})
	}
	errs = append(errs, validateMoney(decimal.Zero, r.HRA, r.OtherAllowances)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply copies the set fields onto e. Basic salary is only changed through increments.
func (r UpdateEmployeeRequest) Apply(e Employee) Employee {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&e.FirstName, r.FirstName)
	setString(&e.MiddleName, r.MiddleName)
	setString(&e.LastName, r.LastName)
	setString(&e.Gender, r.Gender)
	setString(&e.BloodGroup, r.BloodGroup)
	setString(&e.AadhaarNumber, r.AadhaarNumber)
	setString(&e.PANNumber, r.PANNumber)
	setString(&e.Email, r.Email)
	setString(&e.Phone, r.Phone)
	setString(&e.AlternatePhone, r.AlternatePhone)
	setString(&e.Designation, r.Designation)
	setString(&e.PFNumber, r.PFNumber)
	setString(&e.ESINumber, r.ESINumber)
	setString(&e.UANNumber, r.UANNumber)

	if r.DateOfBirth != nil {
		if dob, ok := validator.IsValidDate(*r.DateOfBirth); ok {
			e.DateOfBirth = &dob
		}
	}
	if r.DateOfJoining != nil {
		if doj, ok := validator.IsValidDate(*r.DateOfJoining); ok {
			e.DateOfJoining = doj
		}
	}
	if r.Bank != nil {
		e.Bank = *r.Bank
	}
	if r.CurrentAddress != nil {
		e.CurrentAddress = *r.CurrentAddress
	}
	if r.PermanentAddress != nil {
		e.PermanentAddress = *r.PermanentAddress
	}
	if r.Family != nil {
		e.Family = *r.Family
	}
	if r.Department != nil {
		e.Department = Department(*r.Department)
	}
	if r.EmploymentType != nil {
		e.EmploymentType = EmploymentType(*r.EmploymentType)
	}
	if r.SalaryType != nil {
		e.SalaryType = SalaryType(*r.SalaryType)
	}
	if r.HRA != nil {
		e.HRA = r.HRA
	}
	if r.OtherAllowances != nil {
		e.OtherAllowances = r.OtherAllowances
	}
	if r.Status != nil {
		e.Status = Status(*r.Status)
	}
	return e
}

type EmployeeFilter struct {
	Search     string
	Department string
	Status     string
	SortBy     string
	SortOrder  string
	Page       int
	Limit      int
}

// Sortable columns exposed to clients.
var SortColumns = map[string]string{
	"createdAt":     "created_at",
	"employeeId":    "employee_id",
	"firstName":     "first_name",
	"dateOfJoining": "date_of_joining",
	"department":    "department",
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit cannot exceed 100"})
	}
	if f.Department != "" && !validator.IsInSlice(f.Department, Departments) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "invalid department"})
	}
	if f.Status != "" && !validator.IsInSlice(f.Status, Statuses) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "invalid status"})
	}
	if f.SortBy == "" {
		f.SortBy = "createdAt"
	}
	if _, ok := SortColumns[f.SortBy]; !ok {
		errs = append(errs, validator.ValidationError{Field: "sortBy", Message: "unsupported sort column"})
	}
	if f.SortOrder == "" {
		f.SortOrder = "desc"
	}
	if f.SortOrder != "asc" && f.SortOrder != "desc" {
		errs = append(errs, validator.ValidationError{Field: "sortOrder", Message: "sortOrder must be asc or desc"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListEmployeeResponse struct {
	Employees  []Employee `json:"employees"`
	TotalCount int64      `json:"totalCount"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"totalPages"`
}

type Stats struct {
	Total        int64            `json:"total"`
	ByStatus     map[string]int64 `json:"byStatus"`
	ByDepartment map[string]int64 `json:"byDepartment"`
	Incomplete   int64            `json:"incomplete"`
}

type UploadDocumentRequest struct {
	EmployeeID   string
	DocumentType string
	File         io.Reader
	Filename     string
	ContentType  string
}

func (r UploadDocumentRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.EmployeeID == "" {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "employee id is required"})
	}
	if !validator.IsInSlice(r.DocumentType, DocumentTypes) {
		errs = append(errs, validator.ValidationError{Field: "documentType", Message: "document type must be one of " + strings.Join(DocumentTypes, ", ")})
	}
	if r.File == nil {
		errs = append(errs, validator.ValidationError{Field: "file", Message: "file is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// GenerateEmployeeID builds "NM" + last 6 digits of the unix millis + 3 random digits.
func GenerateEmployeeID(now time.Time) string {
	ts := now.UnixMilli() % 1_000_000
	return fmt.Sprintf("NM%06d%03d", ts, rand.IntN(1000))
}

func validateIdentity(aadhaar, pan, ifsc string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if aadhaar != "" && !validator.IsValidAadhaar(aadhaar) {
		errs = append(errs, validator.ValidationError{Field: "aadhaarNumber", Message: "aadhaar number must be 12 digits"})
	}
	if pan != "" && !validator.IsValidPAN(pan) {
		errs = append(errs, validator.ValidationError{Field: "panNumber", Message: "invalid PAN number"})
	}
	if ifsc != "" && !validator.IsValidIFSC(ifsc) {
		errs = append(errs, validator.ValidationError{Field: "bankDetails.ifscCode", Message: "invalid IFSC code"})
	}
	return errs
}

func validateAddress(field string, a Address) validator.ValidationErrors {
	if a.Pincode != "" && !validator.IsValidPincode(a.Pincode) {
		return validator.ValidationErrors{{Field: field + ".pincode", Message: "pincode must be 6 digits"}}
	}
	return nil
}

func validateMoney(basic decimal.Decimal, hra, other *decimal.Decimal) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if basic.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "basicSalary", Message: "basic salary cannot be negative"})
	}
	if hra != nil && hra.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hra", Message: "hra cannot be negative"})
	}
	if other != nil && other.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "otherAllowances", Message: "other allowances cannot be negative"})
	}
	return errs
}

// UploadFile is one part of a multi-file upload.
type UploadFile struct {
	File        io.Reader
	Filename    string
	ContentType string
}

// UploadDocumentsRequest attaches several files under one document type. Only
// education certificates hold more than one file.
type UploadDocumentsRequest struct {
	EmployeeID   string
	DocumentType string
	Files        []UploadFile
}

func (r UploadDocumentsRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.EmployeeID == "" {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "employee id is required"})
	}
	if !validator.IsInSlice(r.DocumentType, DocumentTypes) {
		errs = append(errs, validator.ValidationError{Field: "documentType", Message: "document type must be one of " + strings.Join(DocumentTypes, ", ")})
	}
	switch {
	case len(r.Files) == 0:
		errs = append(errs, validator.ValidationError{Field: "files", Message: "at least one file is required"})
	case len(r.Files) > 1 && r.DocumentType != DocumentEducationCertificates:
		errs = append(errs, validator.ValidationError{Field: "files", Message: "only " + DocumentEducationCertificates + " accept more than one file"})
	}
	for i, f := range r.Files {
		if f.File == nil {
			errs = append(errs, validator.ValidationError{Field: fmt.Sprintf("files[%d]", i), Message: "file is required"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EmployeeDocuments is the document view of one employee.
type EmployeeDocuments struct {
	ID               string        `json:"id"`
	EmployeeID       string        `json:"employeeId"`
	Name             string        `json:"name"`
	Documents        Documents     `json:"documents"`
	MissingDocuments []string      `json:"missingDocuments"`
	ProfileStatus    ProfileStatus `json:"profileStatus"`
}

func NewEmployeeDocuments(e Employee) EmployeeDocuments {
	return EmployeeDocuments{
		ID:               e.ID,
		EmployeeID:       e.EmployeeID,
		Name:             e.FullName(),
		Documents:        e.Documents,
		MissingDocuments: e.Documents.MissingRequired(),
		ProfileStatus:    e.ProfileStatus,
	}
}
