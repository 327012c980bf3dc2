package model

// RawProvider mirrors the Parquet schema of the provider reference extract.
type RawProvider struct {
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

// RawPatient mirrors the Parquet schema of the patient reference extract.
type RawPatient struct {
	PatientID        string `parquet:"patient_id"`
	Age              int32  `parquet:"age"`
	Gender           string `parquet:"gender"`
	HasInsurance     bool   `parquet:"has_insurance"`
	RegistrationDate string `parquet:"registration_date"`
}

// RawAppointment mirrors the Parquet schema of the appointment log extract.
// Optional columns come through as nil when the source row omitted them.
type RawAppointment struct {
	AppointmentID      string   `parquet:"appointment_id"`
	ProviderID         *string  `parquet:"provider_id,optional"`
	PatientID          *string  `parquet:"patient_id,optional"`
	AppointmentDate    string   `parquet:"appointment_date"`
	ScheduledTime      *string  `parquet:"scheduled_time,optional"`
	AppointmentType    *string  `parquet:"appointment_type,optional"`
	Status             *string  `parquet:"status,optional"`
	WaitTimeMinutes    *float64 `parquet:"wait_time_minutes,optional"`
	DurationMinutes    *float64 `parquet:"duration_minutes,optional"`
	DeviceType         *string  `parquet:"device_type,optional"`
	OperatingSystem    *string  `parquet:"operating_system,optional"`
	Browser            *string  `parquet:"browser,optional"`
	ConnectionQuality  *string  `parquet:"connection_quality,optional"`
	HadTechnicalIssues *bool    `parquet:"had_technical_issues,optional"`
	TechnicalIssueType *string  `parquet:"technical_issue_type,optional"`
	Timestamp          string   `parquet:"timestamp"`
}

// RawFeedback mirrors the Parquet schema of the patient feedback extract.
type RawFeedback struct {
	FeedbackID          string   `parquet:"feedback_id"`
	AppointmentID       *string  `parquet:"appointment_id,optional"`
	PatientID           *string  `parquet:"patient_id,optional"`
	ProviderID          *string  `parquet:"provider_id,optional"`
	FeedbackDate        string   `parquet:"feedback_date"`
	ProviderRating      *float64 `parquet:"provider_rating,optional"`
	EaseOfUseRating     *float64 `parquet:"ease_of_use_rating,optional"`
	AudioQualityRating  *float64 `parquet:"audio_quality_rating,optional"`
	VideoQualityRating  *float64 `parquet:"video_quality_rating,optional"`
	OverallSatisfaction *float64 `parquet:"overall_satisfaction,optional"`
	WouldRecommend      *bool    `parquet:"would_recommend,optional"`
	Comments            *string  `parquet:"comments,optional"`
	Timestamp           string   `parquet:"timestamp"`
}
