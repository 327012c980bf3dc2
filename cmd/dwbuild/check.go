package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rlange/teledw/internal/check"
	"github.com/rlange/teledw/internal/exitcode"
	"github.com/rlange/teledw/internal/warehouse"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the validation suite against a staged warehouse",
	RunE:  runCheck,
}

func init() {
	f := checkCmd.Flags()
	f.StringVar(&cfg.StagingDir, "staging", "", "Directory holding the staged tables (required)")
	f.StringVar(&cfg.ReportDir, "report", "", "Directory for the quality report (defaults to staging dir)")
	_ = checkCmd.MarkFlagRequired("staging")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	log := setup()

	w, err := warehouse.ReadWarehouse(log, cfg.StagingDir)
	if err != nil {
		log.Error().Err(err).Msg("failed to read staged warehouse")
		os.Exit(exitcode.InputError)
	}

	report := check.RunAll(log, uuid.New().String(), w, cfg.RatingBounds)

	reportDir := cfg.ReportDir
	if reportDir == "" {
		reportDir = cfg.StagingDir
	}
	path, err := report.WriteFile(reportDir)
	if err != nil {
		log.Error().Err(err).Msg("failed to write quality report")
		os.Exit(exitcode.InputError)
	}

	fmt.Printf("Checks complete: %d tables with duplicates, %d relationships with invalid keys, %d quality issues\nReport: %s\n",
		report.PrimaryKeyChecks.TablesWithIssues,
		report.ForeignKeyChecks.RelationshipsWithIssues,
		report.DataQualityChecks.TotalQualityIssues,
		path)

	if report.TotalIssues() > 0 {
		os.Exit(exitcode.IssuesFound)
	}
	return nil
}
