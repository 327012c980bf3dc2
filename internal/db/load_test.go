package db_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rlange/teledw/internal/db"
	"github.com/rlange/teledw/internal/logging"
	"github.com/rlange/teledw/internal/model"
	"github.com/rlange/teledw/internal/parquetio"
)

const (
	testPort     = 15433
	testDB       = "teledwtest"
	testUser     = "postgres"
	testPassword = "postgres"
)

var testDSN string

func TestMain(m *testing.M) {
	if os.Getenv("TELEDW_PG_TEST") == "" {
		fmt.Fprintln(os.Stderr, "SKIP: set TELEDW_PG_TEST=1 to run warehouse load tests")
		os.Exit(0)
	}

	testDSN = fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s?sslmode=disable",
		testUser, testPassword, testPort, testDB)

	pg := embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			Port(uint32(testPort)).
			Database(testDB).
			Username(testUser).
			Password(testPassword).
			Version(embeddedpostgres.V16).
			StartTimeout(30 * time.Second),
	)

	if err := pg.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start embedded postgres: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := pg.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop embedded postgres: %v\n", err)
	}

	os.Exit(code)
}

// setupDB connects, drops the warehouse schema for a clean state, and
// reapplies migrations.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pool, err := db.NewPool(ctx, testDSN)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	if _, err := pool.Exec(ctx, "DROP SCHEMA IF EXISTS warehouse CASCADE"); err != nil {
		t.Fatalf("drop schema: %v", err)
	}

	log := logging.Setup("text")
	if err := db.ApplyMigrations(ctx, pool, log); err != nil {
		pool.Close()
		t.Fatalf("migrations: %v", err)
	}

	t.Cleanup(func() { pool.Close() })
	return pool
}

func strPtr(s string) *string   { return &s }
func i64Ptr(v int64) *int64     { return &v }
func f64Ptr(v float64) *float64 { return &v }

// stageWarehouse writes a small but fully populated warehouse to dir.
func stageWarehouse(t *testing.T, dir string) *model.Warehouse {
	t.Helper()
	w := &model.Warehouse{
		DimDate: []model.DateDimRow{
			{DateID: "20250314", DateValue: "2025-03-14", Day: 14, Month: 3, Year: 2025,
				Quarter: 1, DayOfWeek: 4, DayName: "Friday", MonthName: "March"},
			{DateID: "20250315", DateValue: "2025-03-15", Day: 15, Month: 3, Year: 2025,
				Quarter: 1, DayOfWeek: 5, DayName: "Saturday", MonthName: "March", IsWeekend: true},
		},
		DimTime: []model.TimeDimRow{
			{TimeID: "0900", TimeValue: "09:00:00", Hour: 9, AmPm: "AM", Hour12: 9, DayPeriod: "Morning"},
			{TimeID: "0915", TimeValue: "09:15:00", Hour: 9, Minute: 15, AmPm: "AM", Hour12: 9, DayPeriod: "Morning"},
		},
		DimProvider: []model.ProviderDimRow{
			{ProviderKey: 1, ProviderID: "P1", FirstName: "Ana", LastName: "Reyes",
				Specialty: "Dermatology", State: "NY", Active: true},
		},
		DimPatient: []model.PatientDimRow{
			{PatientKey: 1, PatientID: "A1", Age: 42, AgeGroup: "35-49", Gender: "F",
				HasInsurance: true, RegistrationDate: "2024-01-02"},
		},
		DimStatus: []model.StatusDimRow{
			{StatusKey: 1, Status: "Completed", IsSuccessful: true},
			{StatusKey: 2, Status: "Cancelled"},
		},
		DimDevice: []model.DeviceDimRow{
			{DeviceKey: 1, DeviceType: "Mobile Phone", IsMobile: true},
			{DeviceKey: 3, DeviceType: "Laptop"},
		},
		FactAppointment: []model.AppointmentFactRow{
			{AppointmentID: "X1", ProviderID: strPtr("P1"), PatientID: strPtr("A1"),
				ProviderKey: i64Ptr(1), PatientKey: i64Ptr(1),
				DateID: strPtr("20250314"), TimeID: strPtr("0900"),
				StatusKey: i64Ptr(1), DeviceKey: i64Ptr(1),
				WaitTimeMinutes: 4, DurationMinutes: 25, Timestamp: "2025-03-14 09:00:00"},
			{AppointmentID: "X2", ProviderID: strPtr("P_UNKNOWN"), PatientID: strPtr("A1"),
				PatientKey: i64Ptr(1), DateID: strPtr("20250315"),
				Timestamp: "2025-03-15 10:00:00"},
		},
		FactFeedback: []model.FeedbackFactRow{
			{FeedbackID: "F1", AppointmentID: strPtr("X1"), ProviderID: strPtr("P1"),
				PatientID: strPtr("A1"), ProviderKey: i64Ptr(1), PatientKey: i64Ptr(1),
				DateID: strPtr("20250314"), ProviderRating: f64Ptr(4.5),
				WouldRecommend: true, Timestamp: "2025-03-14 09:30:00"},
			{FeedbackID: "F2", AppointmentID: strPtr("X2"), PatientID: strPtr("A1"),
				PatientKey: i64Ptr(1), DateID: strPtr("20250315"),
				Timestamp: "2025-03-15 11:00:00"},
		},
	}

	stage := func(table string, err error) {
		if err != nil {
			t.Fatalf("stage %s: %v", table, err)
		}
	}
	_, err := parquetio.WriteTable(dir, model.TableDimDate, w.DimDate)
	stage(model.TableDimDate, err)
	_, err = parquetio.WriteTable(dir, model.TableDimTime, w.DimTime)
	stage(model.TableDimTime, err)
	_, err = parquetio.WriteTable(dir, model.TableDimProvider, w.DimProvider)
	stage(model.TableDimProvider, err)
	_, err = parquetio.WriteTable(dir, model.TableDimPatient, w.DimPatient)
	stage(model.TableDimPatient, err)
	_, err = parquetio.WriteTable(dir, model.TableDimStatus, w.DimStatus)
	stage(model.TableDimStatus, err)
	_, err = parquetio.WriteTable(dir, model.TableDimDevice, w.DimDevice)
	stage(model.TableDimDevice, err)
	_, err = parquetio.WriteTable(dir, model.TableFactAppointment, w.FactAppointment)
	stage(model.TableFactAppointment, err)
	_, err = parquetio.WriteTable(dir, model.TableFactFeedback, w.FactFeedback)
	stage(model.TableFactFeedback, err)
	return w
}

func TestLoadWarehouse(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text")
	dir := t.TempDir()

	w := stageWarehouse(t, dir)

	result, err := db.LoadWarehouse(ctx, pool, log, dir)
	if err != nil {
		t.Fatalf("LoadWarehouse: %v", err)
	}

	t.Run("row_counts", func(t *testing.T) {
		for table, n := range w.RowCounts() {
			want := int64(n)
			if result.RowsLoaded[table] != want {
				t.Errorf("%s: result reports %d rows, want %d", table, result.RowsLoaded[table], want)
			}
			var count int64
			if err := pool.QueryRow(ctx, "SELECT count(*) FROM warehouse."+table).Scan(&count); err != nil {
				t.Fatalf("count %s: %v", table, err)
			}
			if count != want {
				t.Errorf("%s: %d rows in db, want %d", table, count, want)
			}
		}
	})

	t.Run("unresolved_reference_stays_null", func(t *testing.T) {
		var providerID *string
		var providerKey *int64
		err := pool.QueryRow(ctx,
			"SELECT provider_id, provider_key FROM warehouse.fact_appointment WHERE appointment_id = 'X2'").
			Scan(&providerID, &providerKey)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if providerID == nil || *providerID != "P_UNKNOWN" {
			t.Errorf("provider_id = %v, want P_UNKNOWN", providerID)
		}
		if providerKey != nil {
			t.Errorf("provider_key = %v, want null", *providerKey)
		}
	})

	t.Run("missing_ratings_filled_to_zero", func(t *testing.T) {
		var rating float64
		err := pool.QueryRow(ctx,
			"SELECT provider_rating FROM warehouse.fact_feedback WHERE feedback_id = 'F2'").
			Scan(&rating)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if rating != 0 {
			t.Errorf("provider_rating = %v, want 0 fill", rating)
		}
	})

	t.Run("rating_values_preserved", func(t *testing.T) {
		var rating float64
		var recommend bool
		err := pool.QueryRow(ctx,
			"SELECT provider_rating, would_recommend FROM warehouse.fact_feedback WHERE feedback_id = 'F1'").
			Scan(&rating, &recommend)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if rating != 4.5 || !recommend {
			t.Errorf("got rating=%v recommend=%v", rating, recommend)
		}
	})
}

func TestLoadWarehouse_FullRefresh(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text")
	dir := t.TempDir()

	stageWarehouse(t, dir)

	if _, err := db.LoadWarehouse(ctx, pool, log, dir); err != nil {
		t.Fatalf("first load: %v", err)
	}
	if _, err := db.LoadWarehouse(ctx, pool, log, dir); err != nil {
		t.Fatalf("second load: %v", err)
	}

	// Each load truncates first, so re-running must not double the rows.
	var count int64
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM warehouse.fact_appointment").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("fact_appointment rows after re-load = %d, want 2", count)
	}
}

func TestLoadWarehouse_MissingStagedTablesSkipped(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text")
	dir := t.TempDir()

	// only one table staged, the rest are absent
	rows := []model.StatusDimRow{{StatusKey: 1, Status: "Completed", IsSuccessful: true}}
	if _, err := parquetio.WriteTable(dir, model.TableDimStatus, rows); err != nil {
		t.Fatalf("stage: %v", err)
	}

	result, err := db.LoadWarehouse(ctx, pool, log, dir)
	if err != nil {
		t.Fatalf("LoadWarehouse: %v", err)
	}
	if len(result.RowsLoaded) != 1 || result.RowsLoaded[model.TableDimStatus] != 1 {
		t.Errorf("RowsLoaded = %v, want only dim_status", result.RowsLoaded)
	}
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text")

	// setupDB already applied them once
	if err := db.ApplyMigrations(ctx, pool, log); err != nil {
		t.Fatalf("second apply: %v", err)
	}
}
