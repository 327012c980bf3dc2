package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rlange/teledw/internal/exitcode"
	"github.com/rlange/teledw/internal/model"
	"github.com/rlange/teledw/internal/normalize"
	"github.com/rlange/teledw/internal/parquetio"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run stats on the raw appointment extract (no writes)",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&cfg.InputDir, "input", "", "Directory holding the raw Parquet extracts (required)")
	_ = planCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := setup()

	path := parquetio.TablePath(cfg.InputDir, "appointments")
	schema, err := parquetio.Schema(path)
	if err != nil {
		log.Error().Err(err).Msg("failed to open appointment extract")
		os.Exit(exitcode.InputError)
	}
	if err := parquetio.ValidateColumns(schema, parquetio.AppointmentColumns); err != nil {
		log.Error().Err(err).Msg("schema validation failed")
		os.Exit(exitcode.InputError)
	}

	rows, err := parquetio.ReadTable[model.RawAppointment](path)
	if err != nil {
		log.Error().Err(err).Msg("failed to read appointment extract")
		os.Exit(exitcode.InputError)
	}

	var minDate, maxDate string
	statusCounts := make(map[string]int)
	deviceCounts := make(map[string]int)
	var unparseableDates, unmappedStatus, unmappedDevice int

	for _, a := range rows {
		id := normalize.DateIDFromString(a.AppointmentDate)
		if id == nil {
			unparseableDates++
		} else {
			if minDate == "" || *id < minDate {
				minDate = *id
			}
			if *id > maxDate {
				maxDate = *id
			}
		}
		if a.Status != nil {
			statusCounts[*a.Status]++
			if _, ok := model.StatusByLabel(*a.Status); !ok {
				unmappedStatus++
			}
		}
		if a.DeviceType != nil {
			deviceCounts[*a.DeviceType]++
			if _, ok := model.DeviceByLabel(*a.DeviceType); !ok {
				unmappedDevice++
			}
		}
	}

	fmt.Println("=== dwbuild plan ===")
	fmt.Printf("File:         %s\n", path)
	fmt.Printf("Rows:         %d\n", len(rows))
	fmt.Printf("Date range:   %s .. %s (%d unparseable)\n", minDate, maxDate, unparseableDates)
	fmt.Printf("Buffer days:  %d\n", cfg.BufferDays)
	fmt.Println()
	fmt.Println("Status distribution:")
	for _, s := range model.AllStatuses {
		fmt.Printf("  %-12s %6d\n", s.Label, statusCounts[s.Label])
	}
	fmt.Println("Device distribution:")
	for _, d := range model.AllDeviceTypes {
		fmt.Printf("  %-12s %6d\n", d.Label, deviceCounts[d.Label])
	}
	if unmappedStatus > 0 || unmappedDevice > 0 {
		fmt.Printf("\nUnmapped labels: %d status, %d device (will resolve to null keys)\n",
			unmappedStatus, unmappedDevice)
	}
	fmt.Println("Schema validation: OK")

	return nil
}
