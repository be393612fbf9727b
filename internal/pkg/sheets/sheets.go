package sheets

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/nmep-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/employee"
	"github.com/nmep-hris/payroll-backend-go/internal/domain/salary"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

const (
	EmployeeRange   = "Employees!A:L"
	SalaryRange     = "Salaries!A:P"
	AttendanceRange = "Attendance!A:J"
)

// Syncer appends records to the payroll spreadsheet.
type Syncer interface {
	// Enabled reports whether rows are actually written somewhere
	Enabled() bool
	SyncEmployee(ctx context.Context, e employee.Employee) error
	SyncAttendance(ctx context.Context, a attendance.Attendance, e employee.Employee) error
	SyncSalary(ctx context.Context, s salary.Salary, e employee.Employee) error
}

type GoogleSyncer struct {
	svc           *gsheets.Service
	spreadsheetID string
	now           func() time.Time
}

// NewGoogleSyncer authenticates with a service account given either as a JSON
// document or a path to one.
func NewGoogleSyncer(ctx context.Context, spreadsheetID, credentialsJSON, credentialsFile string) (*GoogleSyncer, error) {
	raw := []byte(credentialsJSON)
	if len(raw) == 0 {
		b, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read sheets credentials: %w", err)
		}
		raw = b
	}

	creds, err := google.CredentialsFromJSON(ctx, raw, gsheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse sheets credentials: %w", err)
	}

	svc, err := gsheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &GoogleSyncer{svc: svc, spreadsheetID: spreadsheetID, now: time.Now}, nil
}

func (g *GoogleSyncer) Enabled() bool {
	return true
}

func (g *GoogleSyncer) SyncEmployee(ctx context.Context, e employee.Employee) error {
	return g.append(ctx, EmployeeRange, EmployeeRow(e, g.now()))
}

func (g *GoogleSyncer) SyncAttendance(ctx context.Context, a attendance.Attendance, e employee.Employee) error {
	return g.append(ctx, AttendanceRange, AttendanceRow(a, e, g.now()))
}

func (g *GoogleSyncer) SyncSalary(ctx context.Context, s salary.Salary, e employee.Employee) error {
	return g.append(ctx, SalaryRange, SalaryRow(s, e, g.now()))
}

func (g *GoogleSyncer) append(ctx context.Context, rng string, row []interface{}) error {
	vr := &gsheets.ValueRange{Values: [][]interface{}{row}}
	_, err := g.svc.Spreadsheets.Values.Append(g.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append %s: %w", rng, err)
	}
	return nil
}

// Noop drops every row. It is used when no spreadsheet is configured.
type Noop struct{}

func (Noop) Enabled() bool { return false }

func (Noop) SyncEmployee(ctx context.Context, e employee.Employee) error { return nil }

func (Noop) SyncAttendance(ctx context.Context, a attendance.Attendance, e employee.Employee) error {
	return nil
}

func (Noop) SyncSalary(ctx context.Context, s salary.Salary, e employee.Employee) error { return nil }

func EmployeeRow(e employee.Employee, now time.Time) []interface{} {
	return []interface{}{
		e.EmployeeID,
		e.FirstName,
		e.MiddleName,
		e.LastName,
		e.Email,
		e.Phone,
		string(e.Department),
		e.Designation,
		e.DateOfJoining.Format("2006-01-02"),
		e.BasicSalary.String(),
		string(e.Status),
		now.UTC().Format(time.RFC3339),
	}
}

func SalaryRow(s salary.Salary, e employee.Employee, now time.Time) []interface{} {
	return []interface{}{
		e.EmployeeID,
		e.FullName(),
		strconv.Itoa(s.Month) + "/" + strconv.Itoa(s.Year),
		s.BasicSalary.String(),
		s.HRA.String(),
		s.OtherAllowances.String(),
		s.TotalIncentives.String(),
		s.GrossSalary.String(),
		s.ProvidentFund.String(),
		s.ESI.String(),
		s.TotalAdvances.String(),
		s.TotalDeductions.String(),
		s.TotalDeductionsAmount.String(),
		s.NetSalary.String(),
		string(s.PaymentStatus),
		now.UTC().Format(time.RFC3339),
	}
}

func AttendanceRow(a attendance.Attendance, e employee.Employee, now time.Time) []interface{} {
	clock := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("15:04")
	}
	hours := ""
	if a.WorkingHours != nil {
		hours = strconv.FormatFloat(*a.WorkingHours, 'f', 2, 64)
	}
	night := "No"
	if a.IsNightDuty {
		night = "Yes"
	}

	return []interface{}{
		e.EmployeeID,
		e.FullName(),
		a.Date.Format("2006-01-02"),
		string(a.Status),
		clock(a.CheckInTime),
		clock(a.CheckOutTime),
		hours,
		night,
		a.Remarks,
		now.UTC().Format(time.RFC3339),
	}
}
