package warehouse

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rlange/teledw/internal/config"
	"github.com/rlange/teledw/internal/model"
	"github.com/rlange/teledw/internal/normalize"
)

// BuildDateDimension generates one row per calendar day spanning
// [min(observed)-bufferDays, max(observed)+bufferDays]. An empty observed
// set is not an error: the dimension degrades to an empty table.
func BuildDateDimension(log zerolog.Logger, observed []time.Time, bufferDays int) []model.DateDimRow {
	if len(observed) == 0 {
		log.Warn().Msg("no observed dates, date dimension will be empty")
		return nil
	}

	min, max := observed[0], observed[0]
	for _, d := range observed[1:] {
		if d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}

	start := time.Date(min.Year(), min.Month(), min.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -bufferDays)
	end := time.Date(max.Year(), max.Month(), max.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, bufferDays)

	var rows []model.DateDimRow
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dow := mondayIndexed(d.Weekday())
		rows = append(rows, model.DateDimRow{
			DateID:    normalize.DateID(d),
			DateValue: d.Format("2006-01-02"),
			Day:       int32(d.Day()),
			Month:     int32(d.Month()),
			Year:      int32(d.Year()),
			Quarter:   int32((int(d.Month())-1)/3 + 1),
			DayOfWeek: dow,
			DayName:   d.Weekday().String(),
			MonthName: d.Month().String(),
			IsWeekend: dow >= 5,
			IsHoliday: false,
		})
	}

	log.Info().
		Str("from", rows[0].DateID).
		Str("to", rows[len(rows)-1].DateID).
		Int("rows", len(rows)).
		Msg("date dimension built")
	return rows
}

// mondayIndexed converts Go's Sunday-based weekday to the Monday=0 .. Sunday=6
// convention the warehouse uses.
func mondayIndexed(w time.Weekday) int32 {
	return int32((int(w) + 6) % 7)
}

// BuildTimeDimension generates the fixed 24-hour grid at the given
// granularity. The only failure mode is a granularity that does not evenly
// divide the day.
func BuildTimeDimension(granularityMinutes int) ([]model.TimeDimRow, error) {
	if granularityMinutes <= 0 || 1440%granularityMinutes != 0 {
		return nil, fmt.Errorf("granularity must be a positive divisor of 1440 minutes, got %d", granularityMinutes)
	}

	rows := make([]model.TimeDimRow, 0, 1440/granularityMinutes)
	for m := 0; m < 1440; m += granularityMinutes {
		hour := m / 60
		minute := m % 60
		rows = append(rows, model.TimeDimRow{
			TimeID:    fmt.Sprintf("%02d%02d", hour, minute),
			TimeValue: fmt.Sprintf("%02d:%02d:00", hour, minute),
			Hour:      int32(hour),
			Minute:    int32(minute),
			AmPm:      amPm(hour),
			Hour12:    hour12(hour),
			DayPeriod: dayPeriod(hour),
		})
	}
	return rows, nil
}

func amPm(hour int) string {
	if hour < 12 {
		return "AM"
	}
	return "PM"
}

func hour12(hour int) int32 {
	h := hour % 12
	if h == 0 {
		return 12
	}
	return int32(h)
}

func dayPeriod(hour int) string {
	switch {
	case hour < 6:
		return "Early Morning"
	case hour < 12:
		return "Morning"
	case hour < 17:
		return "Afternoon"
	case hour < 21:
		return "Evening"
	default:
		return "Night"
	}
}

// BuildProviderDimension copies raw providers through and assigns surrogate
// keys sequentially in input order. Keys are stable only within one build.
func BuildProviderDimension(log zerolog.Logger, raws []model.RawProvider) []model.ProviderDimRow {
	if len(raws) == 0 {
		log.Warn().Msg("no provider data, provider dimension will be empty")
		return nil
	}

	rows := make([]model.ProviderDimRow, 0, len(raws))
	for i, p := range raws {
		rows = append(rows, model.ProviderDimRow{
			ProviderKey:     int64(i + 1),
			ProviderID:      p.ProviderID,
			FirstName:       p.FirstName,
			LastName:        p.LastName,
			Specialty:       p.Specialty,
			YearsExperience: p.YearsExperience,
			State:           p.State,
			HourlyRate:      p.HourlyRate,
			AvailableHours:  p.AvailableHours,
			Active:          p.Active,
		})
	}
	log.Info().Int("rows", len(rows)).Msg("provider dimension built")
	return rows
}

// BuildPatientDimension copies raw patients through, assigns surrogate keys
// in input order, and derives the age group from the configured bins.
func BuildPatientDimension(log zerolog.Logger, raws []model.RawPatient, bins []config.AgeBin) []model.PatientDimRow {
	if len(raws) == 0 {
		log.Warn().Msg("no patient data, patient dimension will be empty")
		return nil
	}

	rows := make([]model.PatientDimRow, 0, len(raws))
	for i, p := range raws {
		rows = append(rows, model.PatientDimRow{
			PatientKey:       int64(i + 1),
			PatientID:        p.PatientID,
			Age:              p.Age,
			AgeGroup:         AgeGroup(p.Age, bins),
			Gender:           p.Gender,
			HasInsurance:     p.HasInsurance,
			RegistrationDate: p.RegistrationDate,
		})
	}
	log.Info().Int("rows", len(rows)).Msg("patient dimension built")
	return rows
}

// AgeGroup buckets an age into the first right-closed bin with age <= Max.
// Ages outside (0, last edge] get no group.
func AgeGroup(age int32, bins []config.AgeBin) string {
	if age <= 0 {
		return ""
	}
	for _, b := range bins {
		if age <= b.Max {
			return b.Label
		}
	}
	return ""
}

// BuildStatusDimension returns the fixed appointment-status enumeration.
func BuildStatusDimension() []model.StatusDimRow {
	rows := make([]model.StatusDimRow, 0, len(model.AllStatuses))
	for _, s := range model.AllStatuses {
		rows = append(rows, model.StatusDimRow{
			StatusKey:    s.Key,
			Status:       s.Label,
			IsSuccessful: s.Successful,
		})
	}
	return rows
}

// BuildDeviceDimension returns the fixed device-type enumeration.
func BuildDeviceDimension() []model.DeviceDimRow {
	rows := make([]model.DeviceDimRow, 0, len(model.AllDeviceTypes))
	for _, d := range model.AllDeviceTypes {
		rows = append(rows, model.DeviceDimRow{
			DeviceKey:  d.Key,
			DeviceType: d.Label,
			IsMobile:   d.Mobile,
		})
	}
	return rows
}
