package model

// DateDimRow is one calendar day of the date dimension. DateID doubles as
// the table's natural key and the fact-side foreign key (YYYYMMDD).
type DateDimRow struct {
	DateID    string `parquet:"date_id"`
	DateValue string `parquet:"date_value"` // ISO date, e.g. "2025-03-14"
	Day       int32  `parquet:"day"`
	Month     int32  `parquet:"month"`
	Year      int32  `parquet:"year"`
	Quarter   int32  `parquet:"quarter"`
	DayOfWeek int32  `parquet:"day_of_week"` // Monday=0 .. Sunday=6
	DayName   string `parquet:"day_name"`
	MonthName string `parquet:"month_name"`
	IsWeekend bool   `parquet:"is_weekend"`
	IsHoliday bool   `parquet:"is_holiday"` // placeholder, needs a holiday calendar
}

// TimeDimRow is one slot of the fixed intra-day time grid (HHMM key).
type TimeDimRow struct {
	TimeID    string `parquet:"time_id"`
	TimeValue string `parquet:"time_value"` // "HH:MM:00"
	Hour      int32  `parquet:"hour"`
	Minute    int32  `parquet:"minute"`
	AmPm      string `parquet:"am_pm"`
	Hour12    int32  `parquet:"hour_12"`
	DayPeriod string `parquet:"day_period"`
}

// ProviderDimRow carries the raw provider attributes plus the surrogate key
// assigned at build time. The key is stable only within one build.
type ProviderDimRow struct {
	ProviderKey     int64    `parquet:"provider_key"`
	ProviderID      string   `parquet:"provider_id"`
	FirstName       string   `parquet:"first_name"`
	LastName        string   `parquet:"last_name"`
	Specialty       string   `parquet:"specialty"`
	YearsExperience *int32   `parquet:"years_experience,optional"`
	State           string   `parquet:"state"`
	HourlyRate      *float64 `parquet:"hourly_rate,optional"`
	AvailableHours  *float64 `parquet:"available_hours,optional"`
	Active          bool     `parquet:"active"`
}

// PatientDimRow carries the raw patient attributes plus the surrogate key
// and the derived age group.
type PatientDimRow struct {
	PatientKey       int64  `parquet:"patient_key"`
	PatientID        string `parquet:"patient_id"`
	Age              int32  `parquet:"age"`
	AgeGroup         string `parquet:"age_group"`
	Gender           string `parquet:"gender"`
	HasInsurance     bool   `parquet:"has_insurance"`
	RegistrationDate string `parquet:"registration_date"`
}

// StatusDimRow is one row of the fixed appointment-status dimension.
type StatusDimRow struct {
	StatusKey    int64  `parquet:"status_key"`
	Status       string `parquet:"status"`
	IsSuccessful bool   `parquet:"is_successful"`
}

// DeviceDimRow is one row of the fixed device-type dimension.
type DeviceDimRow struct {
	DeviceKey  int64  `parquet:"device_key"`
	DeviceType string `parquet:"device_type"`
	IsMobile   bool   `parquet:"is_mobile"`
}

// DateDimColumns returns the ordered column names for COPY into dim_date.
func DateDimColumns() []string {
	return []string{
		"date_id", "date_value", "day", "month", "year", "quarter",
		"day_of_week", "day_name", "month_name", "is_weekend", "is_holiday",
	}
}

// CopyValues returns the row values in DateDimColumns order.
func (r *DateDimRow) CopyValues() []any {
	return []any{
		r.DateID, r.DateValue, r.Day, r.Month, r.Year, r.Quarter,
		r.DayOfWeek, r.DayName, r.MonthName, r.IsWeekend, r.IsHoliday,
	}
}

// TimeDimColumns returns the ordered column names for COPY into dim_time.
func TimeDimColumns() []string {
	return []string{"time_id", "time_value", "hour", "minute", "am_pm", "hour_12", "day_period"}
}

// CopyValues returns the row values in TimeDimColumns order.
func (r *TimeDimRow) CopyValues() []any {
	return []any{r.TimeID, r.TimeValue, r.Hour, r.Minute, r.AmPm, r.Hour12, r.DayPeriod}
}

// ProviderDimColumns returns the ordered column names for COPY into dim_provider.
func ProviderDimColumns() []string {
	return []string{
		"provider_key", "provider_id", "first_name", "last_name", "specialty",
		"years_experience", "state", "hourly_rate", "available_hours", "active",
	}
}

// CopyValues returns the row values in ProviderDimColumns order.
func (r *ProviderDimRow) CopyValues() []any {
	return []any{
		r.ProviderKey, r.ProviderID, r.FirstName, r.LastName, r.Specialty,
		r.YearsExperience, r.State, r.HourlyRate, r.AvailableHours, r.Active,
	}
}

// PatientDimColumns returns the ordered column names for COPY into dim_patient.
func PatientDimColumns() []string {
	return []string{
		"patient_key", "patient_id", "age", "age_group",
		"gender", "has_insurance", "registration_date",
	}
}

// CopyValues returns the row values in PatientDimColumns order.
func (r *PatientDimRow) CopyValues() []any {
	return []any{
		r.PatientKey, r.PatientID, r.Age, r.AgeGroup,
		r.Gender, r.HasInsurance, r.RegistrationDate,
	}
}

// StatusDimColumns returns the ordered column names for COPY into dim_status.
func StatusDimColumns() []string {
	return []string{"status_key", "status", "is_successful"}
}

// CopyValues returns the row values in StatusDimColumns order.
func (r *StatusDimRow) CopyValues() []any {
	return []any{r.StatusKey, r.Status, r.IsSuccessful}
}

// DeviceDimColumns returns the ordered column names for COPY into dim_device.
func DeviceDimColumns() []string {
	return []string{"device_key", "device_type", "is_mobile"}
}

// CopyValues returns the row values in DeviceDimColumns order.
func (r *DeviceDimRow) CopyValues() []any {
	return []any{r.DeviceKey, r.DeviceType, r.IsMobile}
}
