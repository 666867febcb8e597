package models

// ConflictDimension names the shared resource of two clashing assignments.
type ConflictDimension string

const (
	ConflictRoom    ConflictDimension = "ROOM"
	ConflictFaculty ConflictDimension = "FACULTY"
	ConflictSection ConflictDimension = "SECTION"
)

// ScheduleConflict describes a clash between two assignments on one resource.
type ScheduleConflict struct {
	Dimension ConflictDimension `json:"dimension"`
	Resource  string            `json:"resource"`
	First     Assignment        `json:"first"`
	Second    Assignment        `json:"second"`
}

// ScheduleConflictError is returned when a schedule contains clashing assignments.
type ScheduleConflictError struct {
	Message   string             `json:"message"`
	Conflicts []ScheduleConflict `json:"conflicts,omitempty"`
}

// Error implements the error interface for conflict errors.
func (e *ScheduleConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}
