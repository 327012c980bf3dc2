package parquetio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
)

// WriteTable writes rows to <dir>/<table>.parquet, creating dir as needed.
// The write goes through a temp file renamed into place so a crashed run
// never leaves a half-written table in the staging directory.
func WriteTable[T any](dir, table string, rows []T) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}

	final := filepath.Join(dir, table+".parquet")
	tmp := final + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", tmp, err)
	}

	w := parquet.NewGenericWriter[T](f)
	if _, err := w.Write(rows); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("write %s rows: %w", table, err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("close parquet writer for %s: %w", table, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("close %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("rename %s into place: %w", tmp, err)
	}
	return final, nil
}

// TablePath returns the canonical staging path for a table.
func TablePath(dir, table string) string {
	return filepath.Join(dir, table+".parquet")
}
