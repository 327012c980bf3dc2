package parquetio

import (
	"fmt"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// ValidateColumns checks that the Parquet schema contains every required column.
func ValidateColumns(schema *parquet.Schema, required []string) error {
	columns := make(map[string]bool)
	for _, field := range schema.Fields() {
		columns[strings.ToLower(field.Name())] = true
	}
	for _, col := range required {
		if !columns[col] {
			return fmt.Errorf("missing required column: %s", col)
		}
	}
	return nil
}

// AppointmentColumns are the columns an appointment extract must carry for
// the fact builder to resolve its keys.
var AppointmentColumns = []string{"appointment_id", "appointment_date", "timestamp"}

// FeedbackColumns are the columns a feedback extract must carry.
var FeedbackColumns = []string{"feedback_id", "feedback_date", "timestamp"}
