package warehouse

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/rlange/teledw/internal/model"
	"github.com/rlange/teledw/internal/normalize"
)

// keyIndex maps a dimension's natural keys to its surrogate keys.
type keyIndex map[string]int64

func providerIndex(dim []model.ProviderDimRow) keyIndex {
	idx := make(keyIndex, len(dim))
	for _, r := range dim {
		idx[r.ProviderID] = r.ProviderKey
	}
	return idx
}

func patientIndex(dim []model.PatientDimRow) keyIndex {
	idx := make(keyIndex, len(dim))
	for _, r := range dim {
		idx[r.PatientID] = r.PatientKey
	}
	return idx
}

// resolve looks up a natural key and returns the surrogate key, or nil when
// the natural key is absent or unmatched. An unmatched key is recorded on
// the fact row via the retained natural key, never rejected.
func (idx keyIndex) resolve(natural *string) *int64 {
	if natural == nil || *natural == "" {
		return nil
	}
	key, ok := idx[*natural]
	if !ok {
		return nil
	}
	return &key
}

// BuildAppointmentFacts emits exactly one fact row per raw appointment, in
// input order. Dimension keys resolve via natural-key lookup; date and time
// keys are computed from the record's own fields with the same encoding the
// dimensions use.
func BuildAppointmentFacts(log zerolog.Logger, raws []model.RawAppointment,
	providers []model.ProviderDimRow, patients []model.PatientDimRow) []model.AppointmentFactRow {

	if len(raws) == 0 {
		log.Warn().Msg("no appointment data, appointment fact table will be empty")
		return nil
	}

	provIdx := providerIndex(providers)
	patIdx := patientIndex(patients)

	var unresolved int
	rows := make([]model.AppointmentFactRow, 0, len(raws))
	for _, a := range raws {
		row := model.AppointmentFactRow{
			AppointmentID:      a.AppointmentID,
			ProviderID:         a.ProviderID,
			PatientID:          a.PatientID,
			ProviderKey:        provIdx.resolve(a.ProviderID),
			PatientKey:         patIdx.resolve(a.PatientID),
			DateID:             normalize.DateIDFromString(a.AppointmentDate),
			TimeID:             normalize.TimeID(a.ScheduledTime),
			StatusKey:          statusKey(a.Status),
			DeviceKey:          deviceKey(a.DeviceType),
			AppointmentType:    a.AppointmentType,
			WaitTimeMinutes:    normalize.FillFloat(a.WaitTimeMinutes),
			DurationMinutes:    normalize.FillFloat(a.DurationMinutes),
			ConnectionQuality:  a.ConnectionQuality,
			HadTechnicalIssues: normalize.FillBool(a.HadTechnicalIssues),
			TechnicalIssueType: a.TechnicalIssueType,
			Timestamp:          a.Timestamp,
		}
		if row.ProviderKey == nil && a.ProviderID != nil {
			unresolved++
		}
		rows = append(rows, row)
	}

	log.Info().
		Int("rows", len(rows)).
		Int("unresolved_provider_refs", unresolved).
		Msg("appointment fact table built")
	return rows
}

// BuildFeedbackFacts emits exactly one fact row per raw feedback record, in
// input order. The appointment reference stays on the natural key; rating
// measures keep their nulls.
func BuildFeedbackFacts(log zerolog.Logger, raws []model.RawFeedback,
	providers []model.ProviderDimRow, patients []model.PatientDimRow) []model.FeedbackFactRow {

	if len(raws) == 0 {
		log.Warn().Msg("no feedback data, feedback fact table will be empty")
		return nil
	}

	provIdx := providerIndex(providers)
	patIdx := patientIndex(patients)

	rows := make([]model.FeedbackFactRow, 0, len(raws))
	for _, f := range raws {
		rows = append(rows, model.FeedbackFactRow{
			FeedbackID:          f.FeedbackID,
			AppointmentID:       f.AppointmentID,
			ProviderID:          f.ProviderID,
			PatientID:           f.PatientID,
			ProviderKey:         provIdx.resolve(f.ProviderID),
			PatientKey:          patIdx.resolve(f.PatientID),
			DateID:              normalize.DateIDFromString(f.FeedbackDate),
			ProviderRating:      f.ProviderRating,
			EaseOfUseRating:     f.EaseOfUseRating,
			AudioQualityRating:  f.AudioQualityRating,
			VideoQualityRating:  f.VideoQualityRating,
			OverallSatisfaction: f.OverallSatisfaction,
			WouldRecommend:      normalize.FillBool(f.WouldRecommend),
			Comments:            f.Comments,
			Timestamp:           f.Timestamp,
		})
	}

	log.Info().Int("rows", len(rows)).Msg("feedback fact table built")
	return rows
}

// statusKey maps a raw status label through the closed enumeration.
// An unrecognized label resolves to nil, never an invented key.
func statusKey(label *string) *int64 {
	if label == nil {
		return nil
	}
	s, ok := model.StatusByLabel(*label)
	if !ok {
		return nil
	}
	return &s.Key
}

func deviceKey(label *string) *int64 {
	if label == nil {
		return nil
	}
	d, ok := model.DeviceByLabel(*label)
	if !ok {
		return nil
	}
	return &d.Key
}

// ObservedDates extracts the parseable appointment dates used to size the
// date dimension.
func ObservedDates(raws []model.RawAppointment) []time.Time {
	var dates []time.Time
	for _, a := range raws {
		if t := normalize.ParseDate(a.AppointmentDate); t != nil {
			dates = append(dates, *t)
		}
	}
	return dates
}
