package check

import (
	"encoding/json"
	"fmt"

	"github.com/rlange/teledw/internal/config"
	"github.com/rlange/teledw/internal/model"
)

// QualityResult is one named rule outcome. ID-scoped rules carry the
// affected natural keys; required-field rules only carry a row count.
type QualityResult struct {
	HasIssues   bool
	IssueCount  int
	AffectedIDs []string
	byRowCount  bool
}

// MarshalJSON emits affected_ids for id-scoped rules and affected_rows for
// row-count rules, mirroring the report contract.
func (r QualityResult) MarshalJSON() ([]byte, error) {
	if r.byRowCount {
		return json.Marshal(struct {
			HasIssues    bool `json:"has_issues"`
			IssueCount   int  `json:"issue_count"`
			AffectedRows int  `json:"affected_rows"`
		}{r.HasIssues, r.IssueCount, r.IssueCount})
	}
	ids := r.AffectedIDs
	if ids == nil {
		ids = []string{}
	}
	return json.Marshal(struct {
		HasIssues   bool     `json:"has_issues"`
		IssueCount  int      `json:"issue_count"`
		AffectedIDs []string `json:"affected_ids"`
	}{r.HasIssues, r.IssueCount, ids})
}

func idResult(ids []string) QualityResult {
	return QualityResult{HasIssues: len(ids) > 0, IssueCount: len(ids), AffectedIDs: ids}
}

func rowResult(count int) QualityResult {
	return QualityResult{HasIssues: count > 0, IssueCount: count, byRowCount: true}
}

// CheckQuality runs the value-range, non-negativity, and required-field
// rules against both fact tables. Rules never raise; an absent or empty
// table simply contributes no entries (its absence is already reported by
// the builder's warning and the integrity checker's error entries).
func CheckQuality(w *model.Warehouse, bounds config.RatingBounds) map[string]QualityResult {
	results := make(map[string]QualityResult)

	if len(w.FactAppointment) > 0 {
		var negWait, negDur []string
		var missingID, missingDate, missingStatus int
		for _, r := range w.FactAppointment {
			if r.WaitTimeMinutes < 0 {
				negWait = append(negWait, r.AppointmentID)
			}
			if r.DurationMinutes < 0 {
				negDur = append(negDur, r.AppointmentID)
			}
			if r.AppointmentID == "" {
				missingID++
			}
			if r.DateID == nil {
				missingDate++
			}
			if r.StatusKey == nil {
				missingStatus++
			}
		}
		results["negative_wait_times"] = idResult(negWait)
		results["negative_durations"] = idResult(negDur)
		results["missing_appointment_id"] = rowResult(missingID)
		results["missing_date_id"] = rowResult(missingDate)
		results["missing_status_key"] = rowResult(missingStatus)
	}

	if len(w.FactFeedback) > 0 {
		invalid := make(map[string][]string)
		var missingID, missingAppt, missingDate int
		for _, r := range w.FactFeedback {
			for field, v := range r.Ratings() {
				// A nil rating means "not provided" and is exempt from the
				// range rule; only a present out-of-bounds value violates it.
				if v != nil && (*v < bounds.Min || *v > bounds.Max) {
					invalid[field] = append(invalid[field], r.FeedbackID)
				}
			}
			if r.FeedbackID == "" {
				missingID++
			}
			if r.AppointmentID == nil || *r.AppointmentID == "" {
				missingAppt++
			}
			if r.DateID == nil {
				missingDate++
			}
		}
		for _, field := range ratingFields {
			results[fmt.Sprintf("invalid_%s", field)] = idResult(invalid[field])
		}
		results["missing_feedback_id"] = rowResult(missingID)
		results["feedback_missing_appointment_id"] = rowResult(missingAppt)
		results["feedback_missing_date_id"] = rowResult(missingDate)
	}

	return results
}

// ratingFields fixes the iteration order so result maps serialize the same
// way on every run.
var ratingFields = []string{
	"provider_rating",
	"ease_of_use_rating",
	"audio_quality_rating",
	"video_quality_rating",
	"overall_satisfaction",
}
