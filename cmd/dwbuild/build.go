package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rlange/teledw/internal/exitcode"
	"github.com/rlange/teledw/internal/warehouse"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the dimensional model from raw extracts and stage it",
	RunE:  runBuild,
}

func init() {
	f := buildCmd.Flags()
	f.StringVar(&cfg.InputDir, "input", "", "Directory holding the raw Parquet extracts (required)")
	f.StringVar(&cfg.StagingDir, "staging", "", "Directory to write the staged tables to (required)")
	f.StringVar(&cfg.ReportDir, "report", "", "Directory for the quality report (defaults to staging dir)")
	f.BoolVar(&cfg.SkipChecks, "skip-checks", false, "Skip the validation suite after the build")
	f.IntVar(&cfg.BufferDays, "buffer-days", cfg.BufferDays, "Days of date-dimension padding around observed dates")
	f.IntVar(&cfg.GranularityMinutes, "granularity", cfg.GranularityMinutes, "Time dimension grid granularity in minutes")
	_ = buildCmd.MarkFlagRequired("input")
	_ = buildCmd.MarkFlagRequired("staging")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	log := setup()

	if err := cfg.ValidateBuild(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	summary, report, err := warehouse.Run(log, &cfg)
	if err != nil {
		if pe, ok := err.(*warehouse.PipelineError); ok {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("build failed")
			switch pe.Phase {
			case "load":
				os.Exit(exitcode.InputError)
			default:
				os.Exit(exitcode.TransformError)
			}
		}
		log.Error().Err(err).Msg("build failed")
		os.Exit(exitcode.TransformError)
	}

	if report != nil {
		reportDir := cfg.ReportDir
		if reportDir == "" {
			reportDir = cfg.StagingDir
		}
		path, werr := report.WriteFile(reportDir)
		if werr != nil {
			log.Error().Err(werr).Msg("failed to write quality report")
			os.Exit(exitcode.TransformError)
		}
		log.Info().Str("file", path).Msg("quality report written")
	}

	fmt.Printf("Build complete: %d appointment facts, %d feedback facts, %d issues (%.1fs)\n",
		summary.TableRows["fact_appointment"], summary.TableRows["fact_feedback"],
		summary.TotalIssues, summary.DurationTotal.Seconds())
	return nil
}
