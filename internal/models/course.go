package models

import "math"

// ComponentKind distinguishes the lecture and laboratory parts of a course.
type ComponentKind string

const (
	ComponentLecture ComponentKind = "LECTURE"
	ComponentLab     ComponentKind = "LAB"
)

// Course is a catalog entry offered to one program/year/term cohort.
type Course struct {
	Program      string  `csv:"program" json:"program" validate:"required"`
	Year         int     `csv:"year_level" json:"year" validate:"min=1,max=10"`
	Term         string  `csv:"term" json:"term" validate:"required"`
	Code         string  `csv:"course_code" json:"code" validate:"required"`
	Title        string  `csv:"course_title" json:"title,omitempty"`
	LectureHours float64 `csv:"lecture_hours" json:"lecture_hours" validate:"min=0,halfhour"`
	LabHours     float64 `csv:"lab_hours" json:"lab_hours" validate:"min=0,halfhour"`
}

// HasLab reports whether the course carries a laboratory component.
func (c Course) HasLab() bool { return c.LabHours > 0 }

// CohortKey identifies the enrollment cohort the course is offered to.
func (c Course) CohortKey() CohortKey {
	return CohortKey{Program: c.Program, Year: c.Year, Term: c.Term}
}

// WeeklyMinutes returns the required weekly minutes for a component.
func (c Course) WeeklyMinutes(kind ComponentKind) int {
	switch kind {
	case ComponentLab:
		return HoursToMinutes(c.LabHours)
	default:
		return HoursToMinutes(c.LectureHours)
	}
}

// Components lists the components with a positive weekly requirement, lecture first.
func (c Course) Components() []ComponentKind {
	kinds := make([]ComponentKind, 0, 2)
	if c.LectureHours > 0 {
		kinds = append(kinds, ComponentLecture)
	}
	if c.HasLab() {
		kinds = append(kinds, ComponentLab)
	}
	return kinds
}

// HoursToMinutes converts fractional hours to whole minutes.
func HoursToMinutes(hours float64) int {
	return int(math.Round(hours * 60))
}

// MinutesToHours converts minutes to fractional hours.
func MinutesToHours(minutes int) float64 {
	return float64(minutes) / 60
}
