package employee

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Department string

const (
	DepartmentMechanical Department = "Mechanical"
	DepartmentBodyshop   Department = "Bodyshop"
	DepartmentInsurance  Department = "Insurance"
	DepartmentSales      Department = "Sales"
)

var Departments = []string{
	string(DepartmentMechanical),
	string(DepartmentBodyshop),
	string(DepartmentInsurance),
	string(DepartmentSales),
}

var Designations = []string{
	"Denter",
	"Painter",
	"Semi-Denter",
	"Fitter",
	"Semi-Painter",
	"Rubbing & Cleaning",
	"Manager",
	"Supervisor",
	"Sales Executive",
	"Insurance Executive",
}

type EmploymentType string

const (
	EmploymentTypePermanent EmploymentType = "Permanent"
	EmploymentTypeContract  EmploymentType = "Contract"
	EmploymentTypeTemporary EmploymentType = "Temporary"
)

var EmploymentTypes = []string{
	string(EmploymentTypePermanent),
	string(EmploymentTypeContract),
	string(EmploymentTypeTemporary),
}

type SalaryType string

const (
	SalaryTypeMonthly SalaryType = "Monthly"
	SalaryTypeDaily   SalaryType = "Daily"
)

var SalaryTypes = []string{string(SalaryTypeMonthly), string(SalaryTypeDaily)}

var Genders = []string{"Male", "Female", "Other"}

var MaritalStatuses = []string{"Single", "Married", "Divorced", "Widowed"}

type Status string

const (
	StatusActive     Status = "Active"
	StatusInactive   Status = "Inactive"
	StatusTerminated Status = "Terminated"
	StatusResigned   Status = "Resigned"
)

var Statuses = []string{
	string(StatusActive),
	string(StatusInactive),
	string(StatusTerminated),
	string(StatusResigned),
}

// Document kinds accepted by the upload endpoint.
const (
	DocumentPhotograph            = "photograph"
	DocumentAadhaarCard           = "aadhaarCard"
	DocumentPANCard               = "panCard"
	DocumentApplicationHindi      = "applicationHindi"
	DocumentApplicationEnglish    = "applicationEnglish"
	DocumentEducationCertificates = "educationCertificates"
)

var DocumentTypes = []string{
	DocumentPhotograph,
	DocumentAadhaarCard,
	DocumentPANCard,
	DocumentApplicationHindi,
	DocumentApplicationEnglish,
	DocumentEducationCertificates,
}

// Missing field labels reported by the profile gate.
const (
	FieldAadhaarNumber   = "Aadhaar Number"
	FieldPANNumber       = "PAN Number"
	FieldBankAccount     = "Bank Account Number"
	FieldAadhaarDocument = "Aadhaar Card Document"
	FieldPANDocument     = "PAN Card Document"
)

type Address struct {
	Line1   string `json:"line1,omitempty"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Pincode string `json:"pincode,omitempty"`
}

type Relative struct {
	Name         string     `json:"name"`
	DateOfBirth  *time.Time `json:"dateOfBirth,omitempty"`
	Gender       string     `json:"gender,omitempty"`
	Occupation   string     `json:"occupation,omitempty"`
	Relationship string     `json:"relationship,omitempty"`
}

type FamilyDetails struct {
	FatherName       string     `json:"fatherName,omitempty"`
	FatherOccupation string     `json:"fatherOccupation,omitempty"`
	MotherName       string     `json:"motherName,omitempty"`
	MotherOccupation string     `json:"motherOccupation,omitempty"`
	MaritalStatus    string     `json:"maritalStatus,omitempty"`
	MarriageDate     *time.Time `json:"marriageDate,omitempty"`
	SpouseName       string     `json:"spouseName,omitempty"`
	SpouseOccupation string     `json:"spouseOccupation,omitempty"`
	Children         []Relative `json:"children,omitempty"`
	Siblings         []Relative `json:"siblings,omitempty"`
}

type BankDetails struct {
	AccountNumber string `json:"accountNumber,omitempty"`
	IFSCCode      string `json:"ifscCode,omitempty"`
	BankName      string `json:"bankName,omitempty"`
	BranchName    string `json:"branchName,omitempty"`
}

type Documents struct {
	Photograph            string   `json:"photograph,omitempty"`
	AadhaarCard           string   `json:"aadhaarCard,omitempty"`
	PANCard               string   `json:"panCard,omitempty"`
	ApplicationHindi      string   `json:"applicationHindi,omitempty"`
	ApplicationEnglish    string   `json:"applicationEnglish,omitempty"`
	EducationCertificates []string `json:"educationCertificates"`

	// StorageKeys maps each recorded URL to its key in file storage.
	StorageKeys map[string]string `json:"storageKeys,omitempty"`
}

// StoredFile is a document URL together with its storage key. Key is empty
// for URLs recorded without one.
type StoredFile struct {
	URL string
	Key string
}

// Set records url under the given document type. Education certificates accumulate.
func (d *Documents) Set(documentType, url string) error {
	switch documentType {
	case DocumentPhotograph:
		d.Photograph = url
	case DocumentAadhaarCard:
		d.AadhaarCard = url
	case DocumentPANCard:
		d.PANCard = url
	case DocumentApplicationHindi:
		d.ApplicationHindi = url
	case DocumentApplicationEnglish:
		d.ApplicationEnglish = url
	case DocumentEducationCertificates:
		d.EducationCertificates = append(d.EducationCertificates, url)
	default:
		return ErrInvalidDocumentType
	}
	return nil
}

// Attach records f under the given document type and remembers its key.
func (d *Documents) Attach(documentType string, f StoredFile) error {
	if err := d.Set(documentType, f.URL); err != nil {
		return err
	}
	if f.Key != "" {
		if d.StorageKeys == nil {
			d.StorageKeys = make(map[string]string)
		}
		d.StorageKeys[f.URL] = f.Key
	}
	return nil
}

// Clear removes every file recorded under documentType and returns them.
// Nothing recorded yields ErrDocumentNotFound.
func (d *Documents) Clear(documentType string) ([]StoredFile, error) {
	var urls []string
	switch documentType {
	case DocumentPhotograph:
		urls, d.Photograph = []string{d.Photograph}, ""
	case DocumentAadhaarCard:
		urls, d.AadhaarCard = []string{d.AadhaarCard}, ""
	case DocumentPANCard:
		urls, d.PANCard = []string{d.PANCard}, ""
	case DocumentApplicationHindi:
		urls, d.ApplicationHindi = []string{d.ApplicationHindi}, ""
	case DocumentApplicationEnglish:
		urls, d.ApplicationEnglish = []string{d.ApplicationEnglish}, ""
	case DocumentEducationCertificates:
		urls, d.EducationCertificates = d.EducationCertificates, []string{}
	default:
		return nil, ErrInvalidDocumentType
	}

	removed := make([]StoredFile, 0, len(urls))
	for _, url := range urls {
		if url == "" {
			continue
		}
		removed = append(removed, StoredFile{URL: url, Key: d.StorageKeys[url]})
		delete(d.StorageKeys, url)
	}
	if len(removed) == 0 {
		return nil, ErrDocumentNotFound
	}
	return removed, nil
}

// RequiredDocuments must be on file before payroll treats a profile as complete.
var RequiredDocuments = []string{DocumentAadhaarCard, DocumentPANCard}

// MissingRequired lists the required document types with nothing recorded.
func (d Documents) MissingRequired() []string {
	missing := []string{}
	for _, documentType := range RequiredDocuments {
		var url string
		switch documentType {
		case DocumentAadhaarCard:
			url = d.AadhaarCard
		case DocumentPANCard:
			url = d.PANCard
		}
		if strings.TrimSpace(url) == "" {
			missing = append(missing, documentType)
		}
	}
	return missing
}

type ProfileStatus struct {
	IsComplete           bool     `json:"isComplete"`
	CompletionPercentage int      `json:"completionPercentage"`
	MissingFields        []string `json:"missingFields"`
}

type Employee struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`

	FirstName        string      `json:"firstName"`
	MiddleName       string      `json:"middleName,omitempty"`
	LastName         string      `json:"lastName"`
	DateOfBirth      *time.Time  `json:"dateOfBirth,omitempty"`
	Gender           string      `json:"gender,omitempty"`
	BloodGroup       string      `json:"bloodGroup,omitempty"`
	AadhaarNumber    string      `json:"aadhaarNumber,omitempty"`
	PANNumber        string      `json:"panNumber,omitempty"`
	Bank             BankDetails `json:"bankDetails"`
	Email            string      `json:"email"`
	Phone            string      `json:"phone"`
	AlternatePhone   string      `json:"alternatePhone,omitempty"`
	CurrentAddress   Address     `json:"currentAddress"`
	PermanentAddress Address     `json:"permanentAddress"`

	Family FamilyDetails `json:"familyDetails"`

	Department      Department       `json:"department"`
	Designation     string           `json:"designation"`
	DateOfJoining   time.Time        `json:"dateOfJoining"`
	EmploymentType  EmploymentType   `json:"employmentType"`
	SalaryType      SalaryType       `json:"salaryType"`
	BasicSalary     decimal.Decimal  `json:"basicSalary"`
	HRA             *decimal.Decimal `json:"hra,omitempty"`
	OtherAllowances *decimal.Decimal `json:"otherAllowances,omitempty"`
	PFNumber        string           `json:"pfNumber,omitempty"`
	ESINumber       string           `json:"esiNumber,omitempty"`
	UANNumber       string           `json:"uanNumber,omitempty"`

	Documents     Documents     `json:"documents"`
	ProfileStatus ProfileStatus `json:"profileStatus"`
	Status        Status        `json:"status"`

	CreatedBy *string   `json:"createdBy,omitempty"`
	UpdatedBy *string   `json:"updatedBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FullName joins first, middle and last name.
func (e Employee) FullName() string {
	parts := []string{e.FirstName}
	if e.MiddleName != "" {
		parts = append(parts, e.MiddleName)
	}
	parts = append(parts, e.LastName)
	return strings.Join(parts, " ")
}

func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}

// ComputeProfileStatus derives completeness from the fields payroll depends on.
func ComputeProfileStatus(e Employee) ProfileStatus {
	required := []struct {
		label string
		value string
	}{
		{FieldAadhaarNumber, e.AadhaarNumber},
		{FieldPANNumber, e.PANNumber},
		{FieldBankAccount, e.Bank.AccountNumber},
		{FieldAadhaarDocument, e.Documents.AadhaarCard},
		{FieldPANDocument, e.Documents.PANCard},
	}

	missing := make([]string, 0, len(required))
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.label)
		}
	}

	filled := len(required) - len(missing)
	percentage := int(math.Round(float64(filled) / float64(len(required)) * 100))

	return ProfileStatus{
		IsComplete:           len(missing) == 0,
		CompletionPercentage: percentage,
		MissingFields:        missing,
	}
}

// Normalize canonicalises identity fields and recomputes the derived profile
// status. Repositories call it on every write.
func Normalize(e Employee) Employee {
	e.FirstName = strings.TrimSpace(e.FirstName)
	e.MiddleName = strings.TrimSpace(e.MiddleName)
	e.LastName = strings.TrimSpace(e.LastName)
	e.Email = strings.ToLower(strings.TrimSpace(e.Email))
	e.AadhaarNumber = strings.ReplaceAll(strings.TrimSpace(e.AadhaarNumber), " ", "")
	e.PANNumber = strings.ToUpper(strings.TrimSpace(e.PANNumber))
	e.Bank.AccountNumber = strings.TrimSpace(e.Bank.AccountNumber)
	e.Bank.IFSCCode = strings.ToUpper(strings.TrimSpace(e.Bank.IFSCCode))

	if e.EmploymentType == "" {
		e.EmploymentType = EmploymentTypePermanent
	}
	if e.Status == "" {
		e.Status = StatusActive
	}
	if e.Documents.EducationCertificates == nil {
		e.Documents.EducationCertificates = []string{}
	}

	e.ProfileStatus = ComputeProfileStatus(e)
	return e
}
