package warehouse

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rlange/teledw/internal/config"
	"github.com/rlange/teledw/internal/model"
)

func testLog() zerolog.Logger {
	return zerolog.Nop()
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildDateDimension_SpanAndNoGaps(t *testing.T) {
	observed := []time.Time{day(2025, 3, 20), day(2025, 3, 10)}
	rows := BuildDateDimension(testLog(), observed, 30)

	// 2025-02-08 .. 2025-04-19 inclusive
	if len(rows) != 71 {
		t.Fatalf("got %d rows, want 71", len(rows))
	}
	if rows[0].DateID != "20250208" {
		t.Errorf("first date_id = %s, want 20250208", rows[0].DateID)
	}
	if rows[len(rows)-1].DateID != "20250419" {
		t.Errorf("last date_id = %s, want 20250419", rows[len(rows)-1].DateID)
	}

	seen := make(map[string]bool)
	prev := ""
	for _, r := range rows {
		if seen[r.DateID] {
			t.Fatalf("duplicate date_id %s", r.DateID)
		}
		seen[r.DateID] = true
		if r.DateID <= prev {
			t.Fatalf("date_id %s not ascending after %s", r.DateID, prev)
		}
		prev = r.DateID
	}
}

func TestBuildDateDimension_Attributes(t *testing.T) {
	rows := BuildDateDimension(testLog(), []time.Time{day(2025, 3, 15)}, 0)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	r := rows[0]
	// 2025-03-15 is a Saturday
	if r.DayName != "Saturday" || r.DayOfWeek != 5 || !r.IsWeekend {
		t.Errorf("weekend attrs wrong: %+v", r)
	}
	if r.Quarter != 1 || r.Month != 3 || r.Day != 15 || r.Year != 2025 {
		t.Errorf("calendar attrs wrong: %+v", r)
	}
	if r.MonthName != "March" || r.DateValue != "2025-03-15" {
		t.Errorf("name attrs wrong: %+v", r)
	}
	if r.IsHoliday {
		t.Error("is_holiday should always be false")
	}
}

func TestBuildDateDimension_Empty(t *testing.T) {
	if rows := BuildDateDimension(testLog(), nil, 30); len(rows) != 0 {
		t.Errorf("empty observed set should produce empty dimension, got %d rows", len(rows))
	}
}

func TestBuildTimeDimension_RowCounts(t *testing.T) {
	cases := []struct {
		granularity int
		want        int
	}{
		{15, 96},
		{60, 24},
		{1, 1440},
		{1440, 1},
	}
	for _, c := range cases {
		rows, err := BuildTimeDimension(c.granularity)
		if err != nil {
			t.Fatalf("granularity %d: %v", c.granularity, err)
		}
		if len(rows) != c.want {
			t.Errorf("granularity %d: got %d rows, want %d", c.granularity, len(rows), c.want)
		}
	}
}

func TestBuildTimeDimension_InvalidGranularity(t *testing.T) {
	for _, g := range []int{0, -5, 7, 13} {
		if _, err := BuildTimeDimension(g); err == nil {
			t.Errorf("granularity %d: expected error", g)
		}
	}
}

func TestBuildTimeDimension_Attributes(t *testing.T) {
	rows, err := BuildTimeDimension(60)
	if err != nil {
		t.Fatal(err)
	}

	midnight := rows[0]
	if midnight.TimeID != "0000" || midnight.Hour12 != 12 || midnight.AmPm != "AM" || midnight.DayPeriod != "Early Morning" {
		t.Errorf("midnight row wrong: %+v", midnight)
	}
	if midnight.TimeValue != "00:00:00" {
		t.Errorf("time_value = %q", midnight.TimeValue)
	}

	one := rows[13] // 13:00
	if one.TimeID != "1300" || one.Hour12 != 1 || one.AmPm != "PM" || one.DayPeriod != "Afternoon" {
		t.Errorf("13:00 row wrong: %+v", one)
	}

	cases := []struct {
		hour   int
		period string
	}{
		{5, "Early Morning"}, {6, "Morning"}, {11, "Morning"},
		{12, "Afternoon"}, {16, "Afternoon"}, {17, "Evening"},
		{20, "Evening"}, {21, "Night"}, {23, "Night"},
	}
	for _, c := range cases {
		if got := rows[c.hour].DayPeriod; got != c.period {
			t.Errorf("hour %d: day_period = %q, want %q", c.hour, got, c.period)
		}
	}
}

func TestBuildProviderDimension_SurrogateKeys(t *testing.T) {
	raws := []model.RawProvider{
		{ProviderID: "P2", FirstName: "Ana", Specialty: "Cardiology"},
		{ProviderID: "P1", FirstName: "Ben", Specialty: "Dermatology"},
	}
	rows := BuildProviderDimension(testLog(), raws)
	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
	// Keys follow input order, not natural-key order
	if rows[0].ProviderKey != 1 || rows[0].ProviderID != "P2" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].ProviderKey != 2 || rows[1].ProviderID != "P1" {
		t.Errorf("row 1 = %+v", rows[1])
	}
}

func TestBuildProviderDimension_Empty(t *testing.T) {
	if rows := BuildProviderDimension(testLog(), nil); len(rows) != 0 {
		t.Errorf("expected empty dimension, got %d rows", len(rows))
	}
}

func TestAgeGroup_Boundaries(t *testing.T) {
	cases := []struct {
		age  int32
		want string
	}{
		{1, "Under 18"},
		{18, "Under 18"},
		{19, "18-34"},
		{35, "18-34"},
		{36, "35-49"},
		{50, "35-49"},
		{65, "50-64"},
		{66, "65+"},
		{100, "65+"},
		{0, ""},
		{-3, ""},
		{101, ""},
	}
	for _, c := range cases {
		if got := AgeGroup(c.age, config.DefaultAgeBins); got != c.want {
			t.Errorf("AgeGroup(%d) = %q, want %q", c.age, got, c.want)
		}
	}
}

func TestBuildPatientDimension(t *testing.T) {
	raws := []model.RawPatient{
		{PatientID: "A1", Age: 42, Gender: "F", HasInsurance: true, RegistrationDate: "2024-01-02"},
		{PatientID: "A2", Age: 17},
	}
	rows := BuildPatientDimension(testLog(), raws, config.DefaultAgeBins)
	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0].PatientKey != 1 || rows[0].AgeGroup != "35-49" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].PatientKey != 2 || rows[1].AgeGroup != "Under 18" {
		t.Errorf("row 1 = %+v", rows[1])
	}
}

func TestBuildStatusDimension(t *testing.T) {
	rows := BuildStatusDimension()
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	for _, r := range rows {
		wantSuccess := r.Status == "Completed"
		if r.IsSuccessful != wantSuccess {
			t.Errorf("status %q: is_successful = %v", r.Status, r.IsSuccessful)
		}
	}
}

func TestBuildDeviceDimension(t *testing.T) {
	rows := BuildDeviceDimension()
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	mobile := map[string]bool{"Mobile Phone": true, "Tablet": true, "Laptop": false, "Desktop": false}
	for _, r := range rows {
		if r.IsMobile != mobile[r.DeviceType] {
			t.Errorf("device %q: is_mobile = %v", r.DeviceType, r.IsMobile)
		}
	}
}
