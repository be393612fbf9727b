package attendance

import (
	"strings"
	"time"

	"github.com/nmep-hris/payroll-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type MarkAttendanceRequest struct {
	Employee         string    `json:"employee"`
	Date             string    `json:"date"`
	Status           string    `json:"status"`
	CheckInTime      *string   `json:"checkInTime,omitempty"`
	CheckOutTime     *string   `json:"checkOutTime,omitempty"`
	IsNightDuty      bool      `json:"isNightDuty"`
	CheckInLocation  *Location `json:"checkInLocation,omitempty"`
	CheckOutLocation *Location `json:"checkOutLocation,omitempty"`
	Remarks          string    `json:"remarks"`
}

func (r MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Employee) {
		errs = append(errs, validator.ValidationError{Field: "employee", Message: "employee is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date is required (YYYY-MM-DD)"})
	}
	if !validator.IsInSlice(r.Status, Statuses) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of: " + strings.Join(Statuses, ", ")})
	}
	errs = append(errs, validateTimes(r.CheckInTime, r.CheckOutTime)...)
	errs = append(errs, validateLocation("checkInLocation", r.CheckInLocation)...)
	errs = append(errs, validateLocation("checkOutLocation", r.CheckOutLocation)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToEntity builds the record for employeeID. The request must be valid.
func (r MarkAttendanceRequest) ToEntity(employeeID string) Attendance {
	date, _ := validator.IsValidDate(r.Date)
	return Attendance{
		EmployeeID:       employeeID,
		Date:             date,
		Status:           Status(r.Status),
		CheckInTime:      parseTime(r.CheckInTime),
		CheckOutTime:     parseTime(r.CheckOutTime),
		IsNightDuty:      r.IsNightDuty,
		CheckInLocation:  r.CheckInLocation,
		CheckOutLocation: r.CheckOutLocation,
		Remarks:          r.Remarks,
	}
}

type BulkAttendanceRecord struct {
	Employee    string `json:"employee"`
	Status      string `json:"status"`
	IsNightDuty bool   `json:"isNightDuty"`
	Remarks     string `json:"remarks"`
}

type BulkAttendanceRequest struct {
	Date    string                 `json:"date"`
	Records []BulkAttendanceRecord `json:"attendanceRecords"`
}

func (r BulkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date is required (YYYY-MM-DD)"})
	}
	if len(r.Records) == 0 {
		errs = append(errs, validator.ValidationError{Field: "attendanceRecords", Message: "no attendance records provided"})
	}
	if len(r.Records) > 500 {
		errs = append(errs, validator.ValidationError{Field: "attendanceRecords", Message: "at most 500 records per request"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkFailure struct {
	Employee string `json:"employee"`
	Reason   string `json:"reason"`
}

type BulkAttendanceResult struct {
	Success []Attendance  `json:"success"`
	Failed  []BulkFailure `json:"failed"`
}

type UpdateAttendanceRequest struct {
	ID               string    `json:"-"`
	Status           *string   `json:"status,omitempty"`
	CheckInTime      *string   `json:"checkInTime,omitempty"`
	CheckOutTime     *string   `json:"checkOutTime,omitempty"`
	IsNightDuty      *bool     `json:"isNightDuty,omitempty"`
	CheckInLocation  *Location `json:"checkInLocation,omitempty"`
	CheckOutLocation *Location `json:"checkOutLocation,omitempty"`
	Remarks          *string   `json:"remarks,omitempty"`
}

func (r UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != nil && !validator.IsInSlice(*r.Status, Statuses) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of: " + strings.Join(Statuses, ", ")})
	}
	errs = append(errs, validateTimes(r.CheckInTime, r.CheckOutTime)...)
	errs = append(errs, validateLocation("checkInLocation", r.CheckInLocation)...)
	errs = append(errs, validateLocation("checkOutLocation", r.CheckOutLocation)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r UpdateAttendanceRequest) Apply(a Attendance) Attendance {
	if r.Status != nil {
		a.Status = Status(*r.Status)
	}
	if r.CheckInTime != nil {
		a.CheckInTime = parseTime(r.CheckInTime)
	}
	if r.CheckOutTime != nil {
		a.CheckOutTime = parseTime(r.CheckOutTime)
	}
	if r.IsNightDuty != nil {
		a.IsNightDuty = *r.IsNightDuty
	}
	if r.CheckInLocation != nil {
		a.CheckInLocation = r.CheckInLocation
	}
	if r.CheckOutLocation != nil {
		a.CheckOutLocation = r.CheckOutLocation
	}
	if r.Remarks != nil {
		a.Remarks = *r.Remarks
	}
	return a
}

type AttendanceFilter struct {
	EmployeeID string
	StartDate  string
	EndDate    string
	Status     string
	Page       int
	Limit      int
}

func (f *AttendanceFilter) Validate() error {
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

	var start, end time.Time
	var okStart, okEnd bool
	if f.StartDate != "" {
		if start, okStart = validator.IsValidDate(f.StartDate); !okStart {
			errs = append(errs, validator.ValidationError{Field: "startDate", Message: "date must be YYYY-MM-DD"})
		}
	}
	if f.EndDate != "" {
		if end, okEnd = validator.IsValidDate(f.EndDate); !okEnd {
			errs = append(errs, validator.ValidationError{Field: "endDate", Message: "date must be YYYY-MM-DD"})
		}
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "endDate", Message: "endDate must not be before startDate"})
	}
	if f.Status != "" && !validator.IsInSlice(f.Status, Statuses) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "invalid status"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListAttendanceResponse struct {
	Records    []Attendance `json:"records"`
	TotalCount int64        `json:"totalCount"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalPages int          `json:"totalPages"`
}

type SummaryEmployee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type SummaryResponse struct {
	Employee SummaryEmployee `json:"employee"`
	Month    int             `json:"month"`
	Year     int             `json:"year"`
	Summary  Summary         `json:"summary"`
}

func validateTimes(checkIn, checkOut *string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	var in, out time.Time
	var okIn, okOut bool
	if checkIn != nil && *checkIn != "" {
		if in, okIn = validator.IsValidDateTime(*checkIn); !okIn {
			errs = append(errs, validator.ValidationError{Field: "checkInTime", Message: "must be an RFC3339 timestamp"})
		}
	}
	if checkOut != nil && *checkOut != "" {
		if out, okOut = validator.IsValidDateTime(*checkOut); !okOut {
			errs = append(errs, validator.ValidationError{Field: "checkOutTime", Message: "must be an RFC3339 timestamp"})
		}
	}
	if okIn && okOut && !out.After(in) {
		errs = append(errs, validator.ValidationError{Field: "checkOutTime", Message: "check-out must be after check-in"})
	}
	return errs
}

func validateLocation(field string, loc *Location) validator.ValidationErrors {
	if loc == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !validator.IsValidLatitude(loc.Latitude) {
		errs = append(errs, validator.ValidationError{Field: field + ".latitude", Message: "latitude must be between -90 and 90"})
	}
	if !validator.IsValidLongitude(loc.Longitude) {
		errs = append(errs, validator.ValidationError{Field: field + ".longitude", Message: "longitude must be between -180 and 180"})
	}
	return errs
}

func parseTime(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, ok := validator.IsValidDateTime(*s)
	if !ok {
		return nil
	}
	return &t
}

// ValidatePeriod checks a month/year pair taken from the query string.
func ValidatePeriod(month, year int) error {
	var errs validator.ValidationErrors
	if !validator.IsValidMonth(month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if !validator.IsValidYear(year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "invalid year"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
