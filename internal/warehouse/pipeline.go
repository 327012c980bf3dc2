package warehouse

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rlange/teledw/internal/check"
	"github.com/rlange/teledw/internal/config"
	"github.com/rlange/teledw/internal/model"
	"github.com/rlange/teledw/internal/parquetio"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// RawInputs holds the four raw record sets a build consumes.
type RawInputs struct {
	Providers    []model.RawProvider
	Patients     []model.RawPatient
	Appointments []model.RawAppointment
	Feedback     []model.RawFeedback
}

// LoadRawInputs reads the raw extracts from inputDir. An absent file
// degrades to an empty record set with a warning; an unreadable file is a
// hard error for the load phase.
func LoadRawInputs(log zerolog.Logger, inputDir string) (*RawInputs, error) {
	in := &RawInputs{}

	var err error
	if in.Providers, err = loadInput[model.RawProvider](log, inputDir, "providers"); err != nil {
		return nil, err
	}
	if in.Patients, err = loadInput[model.RawPatient](log, inputDir, "patients"); err != nil {
		return nil, err
	}
	if in.Appointments, err = loadInput[model.RawAppointment](log, inputDir, "appointments"); err != nil {
		return nil, err
	}
	if in.Feedback, err = loadInput[model.RawFeedback](log, inputDir, "feedback"); err != nil {
		return nil, err
	}
	return in, nil
}

func loadInput[T any](log zerolog.Logger, dir, name string) ([]T, error) {
	path := parquetio.TablePath(dir, name)
	rows, err := parquetio.ReadTable[T](path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("file", path).Msg("table not found, continuing with empty table")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	log.Info().Str("file", path).Int("rows", len(rows)).Msg("table read")
	return rows, nil
}

// ReadWarehouse reads a previously staged warehouse back from dir so the
// validation suite can run on its own. A missing table degrades to an empty
// one; the checker then reports it as an error entry.
func ReadWarehouse(log zerolog.Logger, dir string) (*model.Warehouse, error) {
	w := &model.Warehouse{}

	var err error
	if w.DimDate, err = loadInput[model.DateDimRow](log, dir, model.TableDimDate); err != nil {
		return nil, err
	}
	if w.DimTime, err = loadInput[model.TimeDimRow](log, dir, model.TableDimTime); err != nil {
		return nil, err
	}
	if w.DimProvider, err = loadInput[model.ProviderDimRow](log, dir, model.TableDimProvider); err != nil {
		return nil, err
	}
	if w.DimPatient, err = loadInput[model.PatientDimRow](log, dir, model.TableDimPatient); err != nil {
		return nil, err
	}
	if w.DimStatus, err = loadInput[model.StatusDimRow](log, dir, model.TableDimStatus); err != nil {
		return nil, err
	}
	if w.DimDevice, err = loadInput[model.DeviceDimRow](log, dir, model.TableDimDevice); err != nil {
		return nil, err
	}
	if w.FactAppointment, err = loadInput[model.AppointmentFactRow](log, dir, model.TableFactAppointment); err != nil {
		return nil, err
	}
	if w.FactFeedback, err = loadInput[model.FeedbackFactRow](log, dir, model.TableFactFeedback); err != nil {
		return nil, err
	}
	return w, nil
}

// Build derives the complete dimensional model from the raw inputs. It is
// pure given its inputs: the same records in the same order produce the
// same warehouse.
func Build(log zerolog.Logger, cfg *config.Config, in *RawInputs) (*model.Warehouse, error) {
	timeDim, err := BuildTimeDimension(cfg.GranularityMinutes)
	if err != nil {
		return nil, err
	}

	w := &model.Warehouse{
		DimDate:     BuildDateDimension(log, ObservedDates(in.Appointments), cfg.BufferDays),
		DimTime:     timeDim,
		DimProvider: BuildProviderDimension(log, in.Providers),
		DimPatient:  BuildPatientDimension(log, in.Patients, cfg.AgeBins),
		DimStatus:   BuildStatusDimension(),
		DimDevice:   BuildDeviceDimension(),
	}
	w.FactAppointment = BuildAppointmentFacts(log, in.Appointments, w.DimProvider, w.DimPatient)
	w.FactFeedback = BuildFeedbackFacts(log, in.Feedback, w.DimProvider, w.DimPatient)
	return w, nil
}

// WriteWarehouse writes all eight tables to the staging directory.
func WriteWarehouse(log zerolog.Logger, dir string, w *model.Warehouse) error {
	writes := []struct {
		table string
		fn    func() (string, error)
	}{
		{model.TableDimDate, func() (string, error) { return parquetio.WriteTable(dir, model.TableDimDate, w.DimDate) }},
		{model.TableDimTime, func() (string, error) { return parquetio.WriteTable(dir, model.TableDimTime, w.DimTime) }},
		{model.TableDimProvider, func() (string, error) { return parquetio.WriteTable(dir, model.TableDimProvider, w.DimProvider) }},
		{model.TableDimPatient, func() (string, error) { return parquetio.WriteTable(dir, model.TableDimPatient, w.DimPatient) }},
		{model.TableDimStatus, func() (string, error) { return parquetio.WriteTable(dir, model.TableDimStatus, w.DimStatus) }},
		{model.TableDimDevice, func() (string, error) { return parquetio.WriteTable(dir, model.TableDimDevice, w.DimDevice) }},
		{model.TableFactAppointment, func() (string, error) { return parquetio.WriteTable(dir, model.TableFactAppointment, w.FactAppointment) }},
		{model.TableFactFeedback, func() (string, error) { return parquetio.WriteTable(dir, model.TableFactFeedback, w.FactFeedback) }},
	}

	counts := w.RowCounts()
	for _, wr := range writes {
		path, err := wr.fn()
		if err != nil {
			return fmt.Errorf("write %s: %w", wr.table, err)
		}
		log.Info().Str("table", wr.table).Str("file", path).Int("rows", counts[wr.table]).Msg("table staged")
	}
	return nil
}

// Run executes the full build pipeline: load → transform → write →
// validate. The validation stage never fails the run; data problems land in
// the report, which is always produced when checks are enabled.
func Run(log zerolog.Logger, cfg *config.Config) (*model.BuildSummary, *check.Report, error) {
	totalStart := time.Now()
	buildID := uuid.New()
	log = log.With().Str("build_id", buildID.String()).Logger()

	// Phase 1: Load raw inputs
	log.Info().Str("input", cfg.InputDir).Msg("loading raw inputs")
	loadStart := time.Now()
	in, err := LoadRawInputs(log, cfg.InputDir)
	if err != nil {
		return nil, nil, &PipelineError{Phase: "load", Err: err}
	}
	loadDur := time.Since(loadStart)

	// Phase 2: Transform
	log.Info().Msg("building dimensional model")
	transformStart := time.Now()
	w, err := Build(log, cfg, in)
	if err != nil {
		return nil, nil, &PipelineError{Phase: "transform", Err: err}
	}
	transformDur := time.Since(transformStart)

	// Phase 3: Write staging tables
	log.Info().Str("staging", cfg.StagingDir).Msg("writing staged tables")
	writeStart := time.Now()
	if err := WriteWarehouse(log, cfg.StagingDir, w); err != nil {
		return nil, nil, &PipelineError{Phase: "write", Err: err}
	}
	writeDur := time.Since(writeStart)

	summary := &model.BuildSummary{
		BuildID:           buildID.String(),
		InputDir:          cfg.InputDir,
		StagingDir:        cfg.StagingDir,
		RawAppointments:   int64(len(in.Appointments)),
		RawFeedback:       int64(len(in.Feedback)),
		RawProviders:      int64(len(in.Providers)),
		RawPatients:       int64(len(in.Patients)),
		TableRows:         w.RowCounts(),
		DurationLoad:      loadDur,
		DurationTransform: transformDur,
		DurationWrite:     writeDur,
	}

	// Phase 4: Validate
	var report *check.Report
	if !cfg.SkipChecks {
		log.Info().Msg("running validation suite")
		checkStart := time.Now()
		report = check.RunAll(log, buildID.String(), w, cfg.RatingBounds)
		summary.DurationCheck = time.Since(checkStart)
		summary.ChecksRun = true
		summary.TotalIssues = report.TotalIssues()
	} else {
		log.Info().Msg("skipping validation suite")
	}

	summary.DurationTotal = time.Since(totalStart)
	log.Info().
		Int("fact_appointment_rows", summary.TableRows[model.TableFactAppointment]).
		Int("fact_feedback_rows", summary.TableRows[model.TableFactFeedback]).
		Int("total_issues", summary.TotalIssues).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("build pipeline complete")

	return summary, report, nil
}
