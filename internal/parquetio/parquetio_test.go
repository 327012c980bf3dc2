package parquetio

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/rlange/teledw/internal/model"
)

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	rows := []model.StatusDimRow{
		{StatusKey: 1, Status: "Completed", IsSuccessful: true},
		{StatusKey: 2, Status: "Cancelled", IsSuccessful: false},
	}

	path, err := WriteTable(dir, model.TableDimStatus, rows)
	if err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	if path != TablePath(dir, model.TableDimStatus) {
		t.Errorf("path = %q, want %q", path, TablePath(dir, model.TableDimStatus))
	}

	got, err := ReadTable[model.StatusDimRow](path)
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("read %d rows, want 2", len(got))
	}
	if got[0] != rows[0] || got[1] != rows[1] {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestWriteTable_Empty(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteTable(dir, model.TableDimDate, []model.DateDimRow{})
	if err != nil {
		t.Fatalf("WriteTable empty: %v", err)
	}
	got, err := ReadTable[model.DateDimRow](path)
	if err != nil {
		t.Fatalf("ReadTable empty: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("read %d rows from empty table", len(got))
	}
}

func TestReadTable_Missing(t *testing.T) {
	_, err := ReadTable[model.DateDimRow]("/nonexistent/dim_date.parquet")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error should unwrap to fs.ErrNotExist, got %v", err)
	}
}

func TestValidateColumns(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteTable(dir, "appointments", []model.RawAppointment{{
		AppointmentID:   "A1",
		AppointmentDate: "2025-01-01",
		Timestamp:       "2025-01-01T09:00:00",
	}})
	if err != nil {
		t.Fatalf("WriteTable: %v", err)
	}

	schema, err := Schema(path)
	if err != nil {
		t.Fatalf("Schema: %v", err)
	}
	if err := ValidateColumns(schema, AppointmentColumns); err != nil {
		t.Errorf("ValidateColumns: %v", err)
	}
	if err := ValidateColumns(schema, []string{"no_such_column"}); err == nil {
		t.Error("expected error for missing column")
	}
}
