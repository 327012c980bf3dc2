package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rlange/teledw/internal/db"
	"github.com/rlange/teledw/internal/exitcode"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Bulk-load the staged tables into Postgres",
	RunE:  runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&cfg.StagingDir, "staging", "", "Directory holding the staged tables (required)")
	_ = loadCmd.MarkFlagRequired("staging")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	log := setup()
	ctx := context.Background()

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, pool, log); err != nil {
		log.Error().Err(err).Msg("migration failed")
		os.Exit(exitcode.LoadError)
	}

	result, err := db.LoadWarehouse(ctx, pool, log, cfg.StagingDir)
	if err != nil {
		log.Error().Err(err).Msg("warehouse load failed")
		os.Exit(exitcode.LoadError)
	}

	var total int64
	for _, n := range result.RowsLoaded {
		total += n
	}
	fmt.Printf("Load complete: %d rows across %d tables (%.1fs)\n",
		total, len(result.RowsLoaded), result.Duration.Seconds())
	return nil
}
