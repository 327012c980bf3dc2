package model

// AppointmentFactRow is one appointment transaction with resolved dimension
// keys. The raw provider_id/patient_id natural keys are retained next to
// their surrogate keys so that a reference that failed to resolve stays
// observable downstream instead of vanishing into a bare null.
type AppointmentFactRow struct {
	AppointmentID string  `parquet:"appointment_id"`
	ProviderID    *string `parquet:"provider_id,optional"`
	PatientID     *string `parquet:"patient_id,optional"`
	ProviderKey   *int64  `parquet:"provider_key,optional"`
	PatientKey    *int64  `parquet:"patient_key,optional"`
	DateID        *string `parquet:"date_id,optional"`
	TimeID        *string `parquet:"time_id,optional"`
	StatusKey     *int64  `parquet:"status_key,optional"`
	DeviceKey     *int64  `parquet:"device_key,optional"`

	AppointmentType    *string `parquet:"appointment_type,optional"`
	WaitTimeMinutes    float64 `parquet:"wait_time_minutes"` // nil in source filled to 0
	DurationMinutes    float64 `parquet:"duration_minutes"`  // nil in source filled to 0
	ConnectionQuality  *string `parquet:"connection_quality,optional"`
	HadTechnicalIssues bool    `parquet:"had_technical_issues"` // nil in source filled to false
	TechnicalIssueType *string `parquet:"technical_issue_type,optional"`
	Timestamp          string  `parquet:"timestamp"`
}

// FeedbackFactRow is one feedback transaction. It references the appointment
// fact by natural appointment_id; no surrogate resolution happens between
// facts. Rating measures stay nullable end to end: a rating the patient
// never gave is "not provided", which the range rule must not confuse with
// an out-of-bounds value. The null→0 fill happens at warehouse load.
type FeedbackFactRow struct {
	FeedbackID    string  `parquet:"feedback_id"`
	AppointmentID *string `parquet:"appointment_id,optional"`
	ProviderID    *string `parquet:"provider_id,optional"`
	PatientID     *string `parquet:"patient_id,optional"`
	ProviderKey   *int64  `parquet:"provider_key,optional"`
	PatientKey    *int64  `parquet:"patient_key,optional"`
	DateID        *string `parquet:"date_id,optional"`

	ProviderRating      *float64 `parquet:"provider_rating,optional"`
	EaseOfUseRating     *float64 `parquet:"ease_of_use_rating,optional"`
	AudioQualityRating  *float64 `parquet:"audio_quality_rating,optional"`
	VideoQualityRating  *float64 `parquet:"video_quality_rating,optional"`
	OverallSatisfaction *float64 `parquet:"overall_satisfaction,optional"`
	WouldRecommend      bool     `parquet:"would_recommend"` // nil in source filled to false
	Comments            *string  `parquet:"comments,optional"`
	Timestamp           string   `parquet:"timestamp"`
}

// Ratings returns the five rating measures keyed by their column name.
func (r *FeedbackFactRow) Ratings() map[string]*float64 {
	return map[string]*float64{
		"provider_rating":      r.ProviderRating,
		"ease_of_use_rating":   r.EaseOfUseRating,
		"audio_quality_rating": r.AudioQualityRating,
		"video_quality_rating": r.VideoQualityRating,
		"overall_satisfaction": r.OverallSatisfaction,
	}
}

// AppointmentFactColumns returns the ordered column names for COPY into fact_appointment.
func AppointmentFactColumns() []string {
	return []string{
		"appointment_id", "provider_id", "patient_id", "provider_key", "patient_key",
		"date_id", "time_id", "status_key", "device_key",
		"appointment_type", "wait_time_minutes", "duration_minutes",
		"connection_quality", "had_technical_issues", "technical_issue_type", "timestamp",
	}
}

// CopyValues returns the row values in AppointmentFactColumns order.
func (r *AppointmentFactRow) CopyValues() []any {
	return []any{
		r.AppointmentID, r.ProviderID, r.PatientID, r.ProviderKey, r.PatientKey,
		r.DateID, r.TimeID, r.StatusKey, r.DeviceKey,
		r.AppointmentType, r.WaitTimeMinutes, r.DurationMinutes,
		r.ConnectionQuality, r.HadTechnicalIssues, r.TechnicalIssueType, r.Timestamp,
	}
}

// FeedbackFactColumns returns the ordered column names for COPY into fact_feedback.
func FeedbackFactColumns() []string {
	return []string{
		"feedback_id", "appointment_id", "provider_id", "patient_id",
		"provider_key", "patient_key", "date_id",
		"provider_rating", "ease_of_use_rating", "audio_quality_rating",
		"video_quality_rating", "overall_satisfaction",
		"would_recommend", "comments", "timestamp",
	}
}

// CopyValues returns the row values in FeedbackFactColumns order. Nil rating
// measures are filled to 0 here: the warehouse copy is the one place the
// fill policy applies, after all validation has already seen the nulls.
func (r *FeedbackFactRow) CopyValues() []any {
	return []any{
		r.FeedbackID, r.AppointmentID, r.ProviderID, r.PatientID,
		r.ProviderKey, r.PatientKey, r.DateID,
		fillRating(r.ProviderRating), fillRating(r.EaseOfUseRating), fillRating(r.AudioQualityRating),
		fillRating(r.VideoQualityRating), fillRating(r.OverallSatisfaction),
		r.WouldRecommend, r.Comments, r.Timestamp,
	}
}

func fillRating(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
