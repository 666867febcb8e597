package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/noah-isme/curriculum-scheduler/internal/models"
	"github.com/noah-isme/curriculum-scheduler/internal/scheduler"
)

// Paths locates the four input tables of a scheduling run.
type Paths struct {
	Courses     string
	Rooms       string
	Faculty     string
	Enrollments string
}

// Reader decodes input tables with a configurable delimiter.
type Reader struct {
	comma rune
}

// NewReader returns a Reader. A zero comma means ','.
func NewReader(comma rune) *Reader {
	if comma == 0 {
		comma = ','
	}
	return &Reader{comma: comma}
}

func (r *Reader) csvReader(in io.Reader) gocsv.CSVReader {
	reader := csv.NewReader(in)
	reader.Comma = r.comma
	reader.TrimLeadingSpace = true
	return reader
}

func (r *Reader) decode(in io.Reader, out interface{}) error {
	return gocsv.UnmarshalCSV(r.csvReader(in), out)
}

// ReadCourses decodes the course catalog.
func (r *Reader) ReadCourses(in io.Reader) ([]models.Course, error) {
	var rows []models.Course
	if err := r.decode(in, &rows); err != nil {
		return nil, fmt.Errorf("decode courses: %w", err)
	}
	return rows, nil
}

// ReadRooms decodes the room inventory.
func (r *Reader) ReadRooms(in io.Reader) ([]models.Room, error) {
	var rows []models.Room
	if err := r.decode(in, &rows); err != nil {
		return nil, fmt.Errorf("decode rooms: %w", err)
	}
	return rows, nil
}

// ReadFaculty decodes the faculty roster.
func (r *Reader) ReadFaculty(in io.Reader) ([]models.Faculty, error) {
	var rows []models.Faculty
	if err := r.decode(in, &rows); err != nil {
		return nil, fmt.Errorf("decode faculty: %w", err)
	}
	return rows, nil
}

// ReadEnrollments decodes cohort headcounts.
func (r *Reader) ReadEnrollments(in io.Reader) ([]models.Enrollment, error) {
	var rows []models.Enrollment
	if err := r.decode(in, &rows); err != nil {
		return nil, fmt.Errorf("decode enrollments: %w", err)
	}
	return rows, nil
}

// LoadInput opens and decodes all four tables.
func (r *Reader) LoadInput(paths Paths) (scheduler.Input, error) {
	var in scheduler.Input
	var err error
	if err = r.loadFile(paths.Courses, func(f io.Reader) error {
		in.Courses, err = r.ReadCourses(f)
		return err
	}); err != nil {
		return scheduler.Input{}, err
	}
	if err = r.loadFile(paths.Rooms, func(f io.Reader) error {
		in.Rooms, err = r.ReadRooms(f)
		return err
	}); err != nil {
		return scheduler.Input{}, err
	}
	if err = r.loadFile(paths.Faculty, func(f io.Reader) error {
		in.Faculty, err = r.ReadFaculty(f)
		return err
	}); err != nil {
		return scheduler.Input{}, err
	}
	if err = r.loadFile(paths.Enrollments, func(f io.Reader) error {
		in.Enrollments, err = r.ReadEnrollments(f)
		return err
	}); err != nil {
		return scheduler.Input{}, err
	}
	return in, nil
}

func (r *Reader) loadFile(path string, read func(io.Reader) error) error {
	if path == "" {
		return fmt.Errorf("missing input path")
	}
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	if err := read(file); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
