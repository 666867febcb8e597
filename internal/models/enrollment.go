package models

import "fmt"

// CohortKey groups records of the same program, year and term.
type CohortKey struct {
	Program string
	Year    int
	Term    string
}

// String renders PROGRAM/YEAR/TERM.
func (k CohortKey) String() string {
	return fmt.Sprintf("%s/%d/%s", k.Program, k.Year, k.Term)
}

// Enrollment is the total headcount of a cohort.
type Enrollment struct {
	Program string `csv:"program" json:"program" validate:"required"`
	Year    int    `csv:"year_level" json:"year" validate:"min=1,max=10"`
	Term    string `csv:"term" json:"term" validate:"required"`
	Count   int    `csv:"total_students" json:"count" validate:"min=0"`
}

// CohortKey identifies the cohort.
func (e Enrollment) CohortKey() CohortKey {
	return CohortKey{Program: e.Program, Year: e.Year, Term: e.Term}
}

// Section is a bounded-size subgroup of a cohort scheduled as a unit.
type Section struct {
	ID      string `json:"id"`
	Program string `json:"program"`
	Year    int    `json:"year"`
	Term    string `json:"term"`
	Letter  string `json:"letter"`
	Size    int    `json:"size"`
}
