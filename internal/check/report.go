package check

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/rlange/teledw/internal/config"
	"github.com/rlange/teledw/internal/model"
)

// PKSection aggregates the primary-key check results.
type PKSection struct {
	TablesChecked      int                 `json:"tables_checked"`
	TablesWithIssues   int                 `json:"tables_with_issues"`
	TotalDuplicateKeys int                 `json:"total_duplicate_keys"`
	Details            map[string]PKResult `json:"details"`
}

// FKSection aggregates the foreign-key check results.
type FKSection struct {
	RelationshipsChecked    int                 `json:"relationships_checked"`
	RelationshipsWithIssues int                 `json:"relationships_with_issues"`
	TotalInvalidKeys        int                 `json:"total_invalid_keys"`
	Details                 map[string]FKResult `json:"details"`
}

// QualitySection aggregates the quality rule results.
type QualitySection struct {
	ChecksPerformed    int                      `json:"checks_performed"`
	ChecksWithIssues   int                      `json:"checks_with_issues"`
	TotalQualityIssues int                      `json:"total_quality_issues"`
	Details            map[string]QualityResult `json:"details"`
}

// Report is the single structured artifact the validation stage hands to
// external monitoring. It is always produced, however bad the data looked.
type Report struct {
	Timestamp         string         `json:"timestamp"`
	BuildID           string         `json:"build_id,omitempty"`
	PrimaryKeyChecks  PKSection      `json:"primary_key_checks"`
	ForeignKeyChecks  FKSection      `json:"foreign_key_checks"`
	DataQualityChecks QualitySection `json:"data_quality_checks"`
}

// BuildReport rolls the three result maps into one timestamped report with
// top-level counters, keeping every per-check detail.
func BuildReport(buildID string, pk map[string]PKResult, fk map[string]FKResult, dq map[string]QualityResult) *Report {
	r := &Report{
		Timestamp:         time.Now().Format("2006-01-02 15:04:05"),
		BuildID:           buildID,
		PrimaryKeyChecks:  PKSection{TablesChecked: len(pk), Details: pk},
		ForeignKeyChecks:  FKSection{RelationshipsChecked: len(fk), Details: fk},
		DataQualityChecks: QualitySection{ChecksPerformed: len(dq), Details: dq},
	}
	for _, res := range pk {
		if res.HasDuplicates {
			r.PrimaryKeyChecks.TablesWithIssues++
		}
		r.PrimaryKeyChecks.TotalDuplicateKeys += res.DuplicateCount
	}
	for _, res := range fk {
		if res.HasInvalid {
			r.ForeignKeyChecks.RelationshipsWithIssues++
		}
		r.ForeignKeyChecks.TotalInvalidKeys += res.InvalidCount
	}
	for _, res := range dq {
		if res.HasIssues {
			r.DataQualityChecks.ChecksWithIssues++
		}
		r.DataQualityChecks.TotalQualityIssues += res.IssueCount
	}
	return r
}

// TotalIssues sums the violation counters across all three sections.
func (r *Report) TotalIssues() int {
	return r.PrimaryKeyChecks.TotalDuplicateKeys +
		r.ForeignKeyChecks.TotalInvalidKeys +
		r.DataQualityChecks.TotalQualityIssues
}

// WriteFile serializes the report into dir with a timestamped name and
// returns the path written.
func (r *Report) WriteFile(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	name := fmt.Sprintf("quality_check_summary_%s.json", time.Now().Format("20060102150405"))
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// RunAll runs the full validation suite over a built warehouse and returns
// the aggregated report. Data problems never surface as errors here.
func RunAll(log zerolog.Logger, buildID string, w *model.Warehouse, bounds config.RatingBounds) *Report {
	pk := CheckPrimaryKeys(w)
	fk := CheckForeignKeys(w)
	dq := CheckQuality(w, bounds)
	report := BuildReport(buildID, pk, fk, dq)

	log.Info().
		Int("tables_with_duplicates", report.PrimaryKeyChecks.TablesWithIssues).
		Int("relationships_with_invalid_keys", report.ForeignKeyChecks.RelationshipsWithIssues).
		Int("quality_checks_with_issues", report.DataQualityChecks.ChecksWithIssues).
		Int("total_issues", report.TotalIssues()).
		Msg("validation suite complete")
	return report
}
