package validator

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ValidationError is a single field level failure, keyed by the JSON field name.
type ValidationError struct {
	Field   string
	Message string
}

// ValidationErrors collects every failure of one request so the client can fix them together.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var b strings.Builder
	for i, e := range v {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(e.Field)
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// ToMap flattens the errors for the response body. A later message for the same field wins.
func (v ValidationErrors) ToMap() map[string]string {
	out := make(map[string]string, len(v))
	for _, e := range v {
		out[e.Field] = e.Message
	}
	return out
}

const dateLayout = "2006-01-02"

var (
	emailPattern        = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	digitsPattern       = regexp.MustCompile(`^[0-9]+$`)
	employeeCodePattern = regexp.MustCompile(`^NM[0-9]{9}$`)

	aadhaarPattern = regexp.MustCompile(`^[2-9][0-9]{11}$`)
	panPattern     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	ifscPattern    = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)
)

func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

func IsNumeric(s string) bool {
	return digitsPattern.MatchString(s)
}

func IsInSlice(value string, allowed []string) bool {
	return slices.Contains(allowed, value)
}

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidUUID accepts the canonical hyphenated form of a time ordered (v7) UUID in either case.
func IsValidUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	return id.Version() == 7 && id.Variant() == uuid.RFC4122
}

// IsValidEmployeeCode checks the "NM" + 9 digit business code.
func IsValidEmployeeCode(code string) bool {
	return employeeCodePattern.MatchString(code)
}

// IsValidAadhaar accepts 12 digits not starting with 0 or 1, optionally grouped by spaces.
func IsValidAadhaar(aadhaar string) bool {
	return aadhaarPattern.MatchString(strings.ReplaceAll(aadhaar, " ", ""))
}

func IsValidPAN(pan string) bool {
	return panPattern.MatchString(strings.ToUpper(pan))
}

func IsValidIFSC(ifsc string) bool {
	return ifscPattern.MatchString(strings.ToUpper(ifsc))
}

func IsValidPincode(pincode string) bool {
	return pincodePattern.MatchString(pincode)
}

// IsValidPhoneNumber accepts an Indian mobile number. Spaces, dashes, a +91
// country code and a leading trunk 0 are tolerated.
func IsValidPhoneNumber(phone string) bool {
	phone = strings.NewReplacer(" ", "", "-", "").Replace(phone)
	phone = strings.TrimPrefix(phone, "+91")
	if len(phone) == 11 && phone[0] == '0' {
		phone = phone[1:]
	}
	return len(phone) == 10 && IsNumeric(phone) && phone[0] >= '6'
}

func IsValidMonth(m int) bool {
	return m >= 1 && m <= 12
}

// IsValidYear bounds the payroll years the system accepts.
func IsValidYear(y int) bool {
	return y >= 2000 && y <= 2100
}

// IsValidDate parses a calendar date in YYYY-MM-DD form.
func IsValidDate(s string) (time.Time, bool) {
	d, err := time.Parse(dateLayout, s)
	return d, err == nil
}

// IsValidDateTime parses an RFC 3339 timestamp, fractional seconds included.
func IsValidDateTime(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func IsValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func IsValidLongitude(lng float64) bool {
	return lng >= -180 && lng <= 180
}
