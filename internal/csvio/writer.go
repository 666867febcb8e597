package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/noah-isme/curriculum-scheduler/internal/models"
	"github.com/noah-isme/curriculum-scheduler/internal/scheduler"
)

// Table file names written by WriteResult.
const (
	AssignmentsFile  = "assignments.csv"
	UnscheduledFile  = "unscheduled.csv"
	LoadWarningsFile = "load_warnings.csv"
	UtilizationFile  = "utilization.csv"
	ConfigErrorsFile = "config_errors.csv"
)

// configErrorRow flattens a configuration error for CSV output.
type configErrorRow struct {
	Entity  string `csv:"entity"`
	Key     string `csv:"key"`
	Field   string `csv:"field"`
	Message string `csv:"message"`
}

// WriteTable encodes rows, a slice of csv-tagged structs, with a header line.
func WriteTable(out io.Writer, rows interface{}) error {
	writer := gocsv.NewSafeCSVWriter(csv.NewWriter(out))
	if err := gocsv.MarshalCSV(rows, writer); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// WriteAssignments writes the assignment table in schedule order.
func WriteAssignments(out io.Writer, rows []models.Assignment) error {
	return WriteTable(out, &rows)
}

// WriteUnscheduled writes the unscheduled course list.
func WriteUnscheduled(out io.Writer, rows []models.PlacementFailure) error {
	return WriteTable(out, &rows)
}

// WriteLoadWarnings writes faculty load warnings.
func WriteLoadWarnings(out io.Writer, rows []models.LoadViolation) error {
	return WriteTable(out, &rows)
}

// WriteUtilization writes the room utilization table.
func WriteUtilization(out io.Writer, rows []scheduler.RoomUtilization) error {
	return WriteTable(out, &rows)
}

// WriteConfigErrors writes configuration errors.
func WriteConfigErrors(out io.Writer, errs []scheduler.ConfigurationError) error {
	rows := make([]configErrorRow, len(errs))
	for i, e := range errs {
		rows[i] = configErrorRow{Entity: e.Entity, Key: e.Key, Field: e.Field, Message: e.Message}
	}
	return WriteTable(out, &rows)
}

// WriteResult writes every output table of a run into dir and returns the file paths.
func WriteResult(dir string, result *scheduler.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	tables := []struct {
		name  string
		write func(io.Writer) error
	}{
		{AssignmentsFile, func(w io.Writer) error { return WriteAssignments(w, result.Assignments) }},
		{UnscheduledFile, func(w io.Writer) error { return WriteUnscheduled(w, result.Unscheduled) }},
		{LoadWarningsFile, func(w io.Writer) error { return WriteLoadWarnings(w, result.LoadWarnings) }},
		{UtilizationFile, func(w io.Writer) error { return WriteUtilization(w, result.Report.Rooms) }},
		{ConfigErrorsFile, func(w io.Writer) error { return WriteConfigErrors(w, result.ConfigErrors) }},
	}
	paths := make([]string, 0, len(tables))
	for _, table := range tables {
		path := filepath.Join(dir, table.name)
		if err := writeFile(path, table.write); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}
