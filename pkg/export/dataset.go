package export

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/gocarina/gocsv"
)

// Dataset is tabular export content.
type Dataset struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// FromTable converts a slice of csv-tagged structs into a Dataset.
func FromTable(title string, rows interface{}) (Dataset, error) {
	encoded, err := gocsv.MarshalString(rows)
	if err != nil {
		return Dataset{}, fmt.Errorf("encode table: %w", err)
	}
	records, err := csv.NewReader(strings.NewReader(encoded)).ReadAll()
	if err != nil {
		return Dataset{}, fmt.Errorf("decode table: %w", err)
	}
	if len(records) == 0 {
		return Dataset{}, fmt.Errorf("table %q has no header", title)
	}
	return Dataset{Title: title, Headers: records[0], Rows: records[1:]}, nil
}

// Width returns the number of columns.
func (d Dataset) Width() int { return len(d.Headers) }
