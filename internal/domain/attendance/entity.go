package attendance

import (
	"math"
	"strings"
	"time"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusHalfDay Status = "Half Day"
	StatusLeave   Status = "Leave"
	StatusHoliday Status = "Holiday"
)

var Statuses = []string{
	string(StatusPresent),
	string(StatusAbsent),
	string(StatusHalfDay),
	string(StatusLeave),
	string(StatusHoliday),
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

type Attendance struct {
	ID               string     `json:"id"`
	EmployeeID       string     `json:"employee"`
	Date             time.Time  `json:"date"`
	Status           Status     `json:"status"`
	CheckInTime      *time.Time `json:"checkInTime,omitempty"`
	CheckOutTime     *time.Time `json:"checkOutTime,omitempty"`
	WorkingHours     *float64   `json:"workingHours,omitempty"`
	IsNightDuty      bool       `json:"isNightDuty"`
	CheckInLocation  *Location  `json:"checkInLocation,omitempty"`
	CheckOutLocation *Location  `json:"checkOutLocation,omitempty"`
	Remarks          string     `json:"remarks,omitempty"`
	MarkedBy         *string    `json:"markedBy,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`

	// Join
	EmployeeCode string `json:"employeeId,omitempty"`
	EmployeeName string `json:"employeeName,omitempty"`
	Department   string `json:"department,omitempty"`
}

// Day truncates t to its calendar date in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Normalize truncates the date and derives working hours from the check-in and
// check-out times. Repositories call it on every write.
func Normalize(a Attendance) Attendance {
	a.Date = Day(a.Date)
	a.Remarks = strings.TrimSpace(a.Remarks)
	a.WorkingHours = nil

	if a.CheckInTime != nil && a.CheckOutTime != nil && a.CheckOutTime.After(*a.CheckInTime) {
		hours := a.CheckOutTime.Sub(*a.CheckInTime).Hours()
		hours = math.Round(hours*100) / 100
		a.WorkingHours = &hours
	}
	return a
}

// Summary is the per-month rollup of one employee's attendance.
type Summary struct {
	TotalWorkingDays  int     `json:"totalWorkingDays"`
	PresentDays       int     `json:"presentDays"`
	AbsentDays        int     `json:"absentDays"`
	HalfDays          int     `json:"halfDays"`
	Leaves            int     `json:"leaves"`
	Holidays          int     `json:"holidays"`
	NightDutyDays     int     `json:"nightDutyDays"`
	TotalWorkingHours float64 `json:"totalWorkingHours"`
}

// WorkingDaysInMonth counts the calendar days of the month that are not Sundays.
func WorkingDaysInMonth(month, year int) int {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	days := 0
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Sunday {
			days++
		}
	}
	return days
}

// MonthRange returns [start, end) for the given month.
func MonthRange(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// Summarize counts records by status for the month. Records outside the month
// are ignored.
func Summarize(records []Attendance, month, year int) Summary {
	start, end := MonthRange(month, year)
	s := Summary{TotalWorkingDays: WorkingDaysInMonth(month, year)}

	for _, r := range records {
		day := Day(r.Date)
		if day.Before(start) || !day.Before(end) {
			continue
		}
		switch r.Status {
		case StatusPresent:
			s.PresentDays++
		case StatusAbsent:
			s.AbsentDays++
		case StatusHalfDay:
			s.HalfDays++
		case StatusLeave:
			s.Leaves++
		case StatusHoliday:
			s.Holidays++
		}
		if r.IsNightDuty {
			s.NightDutyDays++
		}
		if r.WorkingHours != nil {
			s.TotalWorkingHours += *r.WorkingHours
		}
	}

	s.TotalWorkingHours = math.Round(s.TotalWorkingHours*100) / 100
	return s
}
