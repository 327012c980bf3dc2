package model

// Canonical table names, shared by the staging writer, the warehouse loader,
// and the validation report.
const (
	TableDimDate         = "dim_date"
	TableDimTime         = "dim_time"
	TableDimProvider     = "dim_provider"
	TableDimPatient      = "dim_patient"
	TableDimStatus       = "dim_status"
	TableDimDevice       = "dim_device"
	TableFactAppointment = "fact_appointment"
	TableFactFeedback    = "fact_feedback"
)

// AllTables lists the eight output tables in build order.
var AllTables = []string{
	TableDimDate,
	TableDimTime,
	TableDimProvider,
	TableDimPatient,
	TableDimStatus,
	TableDimDevice,
	TableFactAppointment,
	TableFactFeedback,
}

// Warehouse is one complete dimensional build: six dimensions and two facts,
// materialized in memory. Tables are write-once outputs of a single run.
type Warehouse struct {
	DimDate         []DateDimRow
	DimTime         []TimeDimRow
	DimProvider     []ProviderDimRow
	DimPatient      []PatientDimRow
	DimStatus       []StatusDimRow
	DimDevice       []DeviceDimRow
	FactAppointment []AppointmentFactRow
	FactFeedback    []FeedbackFactRow
}

// RowCounts returns the per-table row counts keyed by table name.
func (w *Warehouse) RowCounts() map[string]int {
	return map[string]int{
		TableDimDate:         len(w.DimDate),
		TableDimTime:         len(w.DimTime),
		TableDimProvider:     len(w.DimProvider),
		TableDimPatient:      len(w.DimPatient),
		TableDimStatus:       len(w.DimStatus),
		TableDimDevice:       len(w.DimDevice),
		TableFactAppointment: len(w.FactAppointment),
		TableFactFeedback:    len(w.FactFeedback),
	}
}
