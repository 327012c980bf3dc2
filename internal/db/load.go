package db

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/rlange/teledw/internal/model"
	"github.com/rlange/teledw/internal/parquetio"
)

const loadBatchSize = 1024

// LoadResult holds metrics from a warehouse load run.
type LoadResult struct {
	RowsLoaded map[string]int64
	Duration   time.Duration
}

// LoadWarehouse bulk-loads every staged table from dir into Postgres via the
// COPY protocol. Each table is truncated first: the model is a full refresh
// per run, never an incremental merge. A staged table that is missing on
// disk is skipped with a warning; an unreadable one fails the load.
func LoadWarehouse(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, dir string) (*LoadResult, error) {
	start := time.Now()
	result := &LoadResult{RowsLoaded: make(map[string]int64, len(model.AllTables))}

	loaders := map[string]func() (int64, error){
		model.TableDimDate: func() (int64, error) {
			return loadTable[model.DateDimRow](ctx, pool, dir, model.TableDimDate, model.DateDimColumns())
		},
		model.TableDimTime: func() (int64, error) {
			return loadTable[model.TimeDimRow](ctx, pool, dir, model.TableDimTime, model.TimeDimColumns())
		},
		model.TableDimProvider: func() (int64, error) {
			return loadTable[model.ProviderDimRow](ctx, pool, dir, model.TableDimProvider, model.ProviderDimColumns())
		},
		model.TableDimPatient: func() (int64, error) {
			return loadTable[model.PatientDimRow](ctx, pool, dir, model.TableDimPatient, model.PatientDimColumns())
		},
		model.TableDimStatus: func() (int64, error) {
			return loadTable[model.StatusDimRow](ctx, pool, dir, model.TableDimStatus, model.StatusDimColumns())
		},
		model.TableDimDevice: func() (int64, error) {
			return loadTable[model.DeviceDimRow](ctx, pool, dir, model.TableDimDevice, model.DeviceDimColumns())
		},
		model.TableFactAppointment: func() (int64, error) {
			return loadTable[model.AppointmentFactRow](ctx, pool, dir, model.TableFactAppointment, model.AppointmentFactColumns())
		},
		model.TableFactFeedback: func() (int64, error) {
			return loadTable[model.FeedbackFactRow](ctx, pool, dir, model.TableFactFeedback, model.FeedbackFactColumns())
		},
	}

	for _, table := range model.AllTables {
		tableStart := time.Now()
		n, err := loaders[table]()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Warn().Str("table", table).Msg("staged table not found, skipping")
				continue
			}
			return nil, fmt.Errorf("load %s: %w", table, err)
		}
		result.RowsLoaded[table] = n
		log.Info().
			Str("table", table).
			Int64("rows", n).
			Dur("duration", time.Since(tableStart)).
			Msg("table loaded")
	}

	result.Duration = time.Since(start)
	log.Info().Dur("duration", result.Duration).Msg("warehouse load complete")
	return result, nil
}

// loadTable streams one staged Parquet table into warehouse.<table> through
// a channel-backed CopyFromSource. The producer goroutine reads Parquet
// batches; COPY consumes them with natural backpressure.
func loadTable[T any, PT interface {
	*T
	CopyRow
}](ctx context.Context, pool *pgxpool.Pool, dir, table string, columns []string) (int64, error) {

	reader, err := parquetio.Open[T](parquetio.TablePath(dir, table))
	if err != nil {
		return 0, err
	}
	defer reader.Close()

	if _, err := pool.Exec(ctx, "TRUNCATE warehouse."+table); err != nil {
		return 0, fmt.Errorf("truncate: %w", err)
	}

	ch := make(chan PT, loadBatchSize)
	errCh := make(chan error, 1)

	go func() {
		defer close(ch)
		buf := make([]T, loadBatchSize)
		for {
			n, readErr := reader.Read(buf)
			for i := 0; i < n; i++ {
				row := buf[i]
				select {
				case ch <- PT(&row):
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				}
			}
			if readErr == io.EOF {
				break
			}
			if readErr != nil {
				errCh <- readErr
				return
			}
		}
		errCh <- nil
	}()

	source := NewChannelSource[PT](ch)
	rows, copyErr := pool.CopyFrom(ctx, pgx.Identifier{"warehouse", table}, columns, source)

	if prodErr := <-errCh; prodErr != nil {
		return 0, fmt.Errorf("read staged rows: %w", prodErr)
	}
	if copyErr != nil {
		return 0, fmt.Errorf("copy: %w", copyErr)
	}
	return rows, nil
}
