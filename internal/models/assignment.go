package models

import "fmt"

// Assignment is one committed session of a course component for a section.
// A split component produces one Assignment per day of its pair.
type Assignment struct {
	SectionID  string        `csv:"section_id" json:"section_id"`
	CourseCode string        `csv:"course_code" json:"course_code"`
	RoomID     string        `csv:"room_id" json:"room_id"`
	FacultyID  string        `csv:"faculty_id" json:"faculty_id"`
	DayPair    DayPair       `csv:"day_pair" json:"day_pair"`
	StartTime  Clock         `csv:"start_time" json:"start_time"`
	EndTime    Clock         `csv:"end_time" json:"end_time"`
	Component  ComponentKind `csv:"component_kind" json:"component_kind"`
	Day        Weekday       `csv:"day" json:"day"`
}

// Minutes returns the session length.
func (a Assignment) Minutes() int { return int(a.EndTime - a.StartTime) }

// PlacementReason explains why a course-section could not be placed.
type PlacementReason string

const (
	ReasonRoomExhaustion       PlacementReason = "room exhaustion"
	ReasonFacultyExhaustion    PlacementReason = "faculty exhaustion"
	ReasonTimeWindowExhaustion PlacementReason = "time-window exhaustion"
	ReasonNoSections           PlacementReason = "no sections"
)

// PlacementFailure records an unscheduled course-section.
type PlacementFailure struct {
	CourseCode string          `csv:"course_code" json:"course_code"`
	Reason     PlacementReason `csv:"reason" json:"reason"`
	SectionID  string          `csv:"section_id" json:"section_id,omitempty"`
	Component  ComponentKind   `csv:"component_kind" json:"component_kind,omitempty"`
	Attempts   int             `csv:"attempts" json:"attempts"`
}

// Error implements error so failures can travel through error paths.
func (f PlacementFailure) Error() string {
	if f.SectionID == "" {
		return fmt.Sprintf("course %s unscheduled: %s", f.CourseCode, f.Reason)
	}
	return fmt.Sprintf("course %s section %s unscheduled (%s): %s", f.CourseCode, f.SectionID, f.Component, f.Reason)
}

// LoadViolationKind classifies a load bound breach.
type LoadViolationKind string

const (
	LoadUnderload LoadViolationKind = "UNDERLOAD"
	LoadOverload  LoadViolationKind = "OVERLOAD"
)

// LoadViolation is a non-fatal warning about a faculty member's weekly hours.
type LoadViolation struct {
	FacultyID      string            `csv:"faculty_id" json:"faculty_id"`
	AssignedHours  float64           `csv:"assigned_hours" json:"assigned_hours"`
	ViolationKind  LoadViolationKind `csv:"violation_kind" json:"violation_kind"`
	EmploymentType EmploymentType    `csv:"employment_type" json:"employment_type"`
	BoundHours     float64           `csv:"bound_hours" json:"bound_hours"`
}
