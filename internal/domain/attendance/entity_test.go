package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkingDaysInMonth(t *testing.T) {
	cases := []struct {
		month, year, want int
	}{
		{1, 2024, 27},  // 4 Sundays
		{2, 2024, 25},  // leap February, 4 Sundays
		{3, 2024, 26},  // 5 Sundays
		{6, 2025, 25},  // 5 Sundays
		{2, 2026, 24},  // 4 Sundays in 28 days
		{12, 2024, 26}, // 5 Sundays
	}
	for _, c := range cases {
		assert.Equal(t, c.want, WorkingDaysInMonth(c.month, c.year), "%d/%d", c.month, c.year)
	}
}

func TestNormalize_WorkingHours(t *testing.T) {
	in := time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)
	out := in.Add(8*time.Hour + 20*time.Minute)

	a := Normalize(Attendance{Date: in, CheckInTime: &in, CheckOutTime: &out})

	require.NotNil(t, a.WorkingHours)
	assert.InDelta(t, 8.33, *a.WorkingHours, 0.0001)
	assert.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), a.Date)
}

func TestNormalize_DropsCallerSuppliedHours(t *testing.T) {
	bogus := 99.0
	in := time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)

	a := Normalize(Attendance{Date: in, CheckInTime: &in, WorkingHours: &bogus})

	assert.Nil(t, a.WorkingHours)
}

func TestSummarize(t *testing.T) {
	hours := 8.5
	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }
	records := []Attendance{
		{Date: day(1), Status: StatusPresent, WorkingHours: &hours},
		{Date: day(2), Status: StatusPresent, IsNightDuty: true, WorkingHours: &hours},
		{Date: day(4), Status: StatusHalfDay},
		{Date: day(5), Status: StatusAbsent},
		{Date: day(6), Status: StatusLeave},
		{Date: day(8), Status: StatusHoliday, IsNightDuty: true},
		{Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), Status: StatusPresent},
	}

	s := Summarize(records, 3, 2024)

	assert.Equal(t, Summary{
		TotalWorkingDays:  26,
		PresentDays:       2,
		AbsentDays:        1,
		HalfDays:          1,
		Leaves:            1,
		Holidays:          1,
		NightDutyDays:     2,
		TotalWorkingHours: 17,
	}, s)
}

func TestMarkAttendanceRequest_Validate(t *testing.T) {
	in := "2024-05-06T09:00:00+05:30"
	out := "2024-05-06T08:00:00+05:30"
	req := MarkAttendanceRequest{
		Employee:        "NM123456789",
		Date:            "2024-05-06",
		Status:          "Late",
		CheckInTime:     &in,
		CheckOutTime:    &out,
		CheckInLocation: &Location{Latitude: 120, Longitude: 77},
	}

	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status")
	assert.Contains(t, err.Error(), "checkOutTime")
	assert.Contains(t, err.Error(), "checkInLocation.latitude")

	req.Status = string(StatusPresent)
	out = "2024-05-06T18:00:00+05:30"
	req.CheckInLocation.Latitude = 28.6
	assert.NoError(t, req.Validate())
}
