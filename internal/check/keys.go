package check

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/rlange/teledw/internal/model"
)

// PKResult reports duplicate primary-key values in one table. A table that
// could not be checked at all carries only an error message, matching the
// report contract that every configured check yields an entry.
type PKResult struct {
	HasDuplicates  bool
	DuplicateCount int
	DuplicateKeys  []string
	Error          string
}

// MarshalJSON emits either {"error": ...} or the duplicate triple, never both.
func (r PKResult) MarshalJSON() ([]byte, error) {
	if r.Error != "" {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{r.Error})
	}
	keys := r.DuplicateKeys
	if keys == nil {
		keys = []string{}
	}
	return json.Marshal(struct {
		HasDuplicates  bool     `json:"has_duplicates"`
		DuplicateCount int      `json:"duplicate_count"`
		DuplicateKeys  []string `json:"duplicate_keys"`
	}{r.HasDuplicates, r.DuplicateCount, keys})
}

// FKResult reports fact-side key values with no counterpart on the
// referenced table's key column.
type FKResult struct {
	HasInvalid   bool
	InvalidCount int
	InvalidKeys  []string
	Error        string
}

// MarshalJSON emits either {"error": ...} or the invalid triple.
func (r FKResult) MarshalJSON() ([]byte, error) {
	if r.Error != "" {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{r.Error})
	}
	keys := r.InvalidKeys
	if keys == nil {
		keys = []string{}
	}
	return json.Marshal(struct {
		HasInvalid   bool     `json:"has_invalid"`
		InvalidCount int      `json:"invalid_count"`
		InvalidKeys  []string `json:"invalid_keys"`
	}{r.HasInvalid, r.InvalidCount, keys})
}

func tableMissing(name string) string {
	return fmt.Sprintf("table %s not found or empty", name)
}

// duplicates scans an ordered key list and reports every occurrence of any
// key that appears more than once, in the order the rows arrived.
func duplicates(keys []string) PKResult {
	counts := make(map[string]int, len(keys))
	for _, k := range keys {
		counts[k]++
	}
	var dup []string
	for _, k := range keys {
		if counts[k] > 1 {
			dup = append(dup, k)
		}
	}
	return PKResult{
		HasDuplicates:  len(dup) > 0,
		DuplicateCount: len(dup),
		DuplicateKeys:  dup,
	}
}

func pkOf[T any](table string, rows []T, key func(T) string) PKResult {
	if len(rows) == 0 {
		return PKResult{Error: tableMissing(table)}
	}
	keys := make([]string, len(rows))
	for i, r := range rows {
		keys[i] = key(r)
	}
	return duplicates(keys)
}

// CheckPrimaryKeys validates key uniqueness for every dimension and fact
// table. It never fails: an absent or empty table becomes an error entry.
func CheckPrimaryKeys(w *model.Warehouse) map[string]PKResult {
	return map[string]PKResult{
		model.TableDimDate:     pkOf(model.TableDimDate, w.DimDate, func(r model.DateDimRow) string { return r.DateID }),
		model.TableDimTime:     pkOf(model.TableDimTime, w.DimTime, func(r model.TimeDimRow) string { return r.TimeID }),
		model.TableDimProvider: pkOf(model.TableDimProvider, w.DimProvider, func(r model.ProviderDimRow) string { return formatKey(r.ProviderKey) }),
		model.TableDimPatient:  pkOf(model.TableDimPatient, w.DimPatient, func(r model.PatientDimRow) string { return formatKey(r.PatientKey) }),
		model.TableDimStatus:   pkOf(model.TableDimStatus, w.DimStatus, func(r model.StatusDimRow) string { return formatKey(r.StatusKey) }),
		model.TableDimDevice:   pkOf(model.TableDimDevice, w.DimDevice, func(r model.DeviceDimRow) string { return formatKey(r.DeviceKey) }),
		model.TableFactAppointment: pkOf(model.TableFactAppointment, w.FactAppointment,
			func(r model.AppointmentFactRow) string { return r.AppointmentID }),
		model.TableFactFeedback: pkOf(model.TableFactFeedback, w.FactFeedback,
			func(r model.FeedbackFactRow) string { return r.FeedbackID }),
	}
}

func formatKey(k int64) string {
	return strconv.FormatInt(k, 10)
}

// relation computes the set difference between non-null fact-side key values
// and the referenced table's key set. Invalid keys come back deduplicated
// and sorted so runs over identical inputs report identically.
func relation(factVals []*string, refKeys map[string]struct{}) FKResult {
	seen := make(map[string]struct{})
	var invalid []string
	for _, v := range factVals {
		if v == nil || *v == "" {
			continue // null reference, flagged by the quality rules instead
		}
		if _, ok := refKeys[*v]; ok {
			continue
		}
		if _, dup := seen[*v]; dup {
			continue
		}
		seen[*v] = struct{}{}
		invalid = append(invalid, *v)
	}
	sort.Strings(invalid)
	return FKResult{
		HasInvalid:   len(invalid) > 0,
		InvalidCount: len(invalid),
		InvalidKeys:  invalid,
	}
}

func keySet[T any](rows []T, key func(T) string) map[string]struct{} {
	set := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		set[key(r)] = struct{}{}
	}
	return set
}

func keyPtr(k *int64) *string {
	if k == nil {
		return nil
	}
	s := formatKey(*k)
	return &s
}

// CheckForeignKeys validates the ten fact→dimension and fact→fact
// relationships of the star schema. Provider and patient relationships are
// checked on the retained natural keys, so a reference that the fact
// builder could not resolve still surfaces here with the offending source
// id. Date, time, status, and device relationships are checked on the key
// columns themselves.
func CheckForeignKeys(w *model.Warehouse) map[string]FKResult {
	results := make(map[string]FKResult)

	providerIDs := keySet(w.DimProvider, func(r model.ProviderDimRow) string { return r.ProviderID })
	patientIDs := keySet(w.DimPatient, func(r model.PatientDimRow) string { return r.PatientID })
	dateIDs := keySet(w.DimDate, func(r model.DateDimRow) string { return r.DateID })
	timeIDs := keySet(w.DimTime, func(r model.TimeDimRow) string { return r.TimeID })
	statusKeys := keySet(w.DimStatus, func(r model.StatusDimRow) string { return formatKey(r.StatusKey) })
	deviceKeys := keySet(w.DimDevice, func(r model.DeviceDimRow) string { return formatKey(r.DeviceKey) })
	appointmentIDs := keySet(w.FactAppointment, func(r model.AppointmentFactRow) string { return r.AppointmentID })

	appointmentRels := []struct {
		name   string
		dim    string
		dimLen int
		keys   map[string]struct{}
		vals   func(r model.AppointmentFactRow) *string
	}{
		{"appointment_provider_fk", model.TableDimProvider, len(w.DimProvider), providerIDs,
			func(r model.AppointmentFactRow) *string { return r.ProviderID }},
		{"appointment_patient_fk", model.TableDimPatient, len(w.DimPatient), patientIDs,
			func(r model.AppointmentFactRow) *string { return r.PatientID }},
		{"appointment_date_fk", model.TableDimDate, len(w.DimDate), dateIDs,
			func(r model.AppointmentFactRow) *string { return r.DateID }},
		{"appointment_time_fk", model.TableDimTime, len(w.DimTime), timeIDs,
			func(r model.AppointmentFactRow) *string { return r.TimeID }},
		{"appointment_status_fk", model.TableDimStatus, len(w.DimStatus), statusKeys,
			func(r model.AppointmentFactRow) *string { return keyPtr(r.StatusKey) }},
		{"appointment_device_fk", model.TableDimDevice, len(w.DimDevice), deviceKeys,
			func(r model.AppointmentFactRow) *string { return keyPtr(r.DeviceKey) }},
	}

	for _, rel := range appointmentRels {
		if len(w.FactAppointment) == 0 {
			results[rel.name] = FKResult{Error: tableMissing(model.TableFactAppointment)}
			continue
		}
		if rel.dimLen == 0 {
			results[rel.name] = FKResult{Error: tableMissing(rel.dim)}
			continue
		}
		vals := make([]*string, len(w.FactAppointment))
		for i, r := range w.FactAppointment {
			vals[i] = rel.vals(r)
		}
		results[rel.name] = relation(vals, rel.keys)
	}

	feedbackRels := []struct {
		name   string
		ref    string
		refLen int
		keys   map[string]struct{}
		vals   func(r model.FeedbackFactRow) *string
	}{
		{"feedback_provider_fk", model.TableDimProvider, len(w.DimProvider), providerIDs,
			func(r model.FeedbackFactRow) *string { return r.ProviderID }},
		{"feedback_patient_fk", model.TableDimPatient, len(w.DimPatient), patientIDs,
			func(r model.FeedbackFactRow) *string { return r.PatientID }},
		{"feedback_date_fk", model.TableDimDate, len(w.DimDate), dateIDs,
			func(r model.FeedbackFactRow) *string { return r.DateID }},
		{"feedback_appointment_fk", model.TableFactAppointment, len(w.FactAppointment), appointmentIDs,
			func(r model.FeedbackFactRow) *string { return r.AppointmentID }},
	}

	for _, rel := range feedbackRels {
		if len(w.FactFeedback) == 0 {
			results[rel.name] = FKResult{Error: tableMissing(model.TableFactFeedback)}
			continue
		}
		if rel.refLen == 0 {
			results[rel.name] = FKResult{Error: tableMissing(rel.ref)}
			continue
		}
		vals := make([]*string, len(w.FactFeedback))
		for i, r := range w.FactFeedback {
			vals[i] = rel.vals(r)
		}
		results[rel.name] = relation(vals, rel.keys)
	}

	return results
}
