package dto

import (
	"github.com/noah-isme/curriculum-scheduler/internal/models"
	"github.com/noah-isme/curriculum-scheduler/internal/scheduler"
)

// GenerateScheduleRequest carries an inline snapshot for one engine run.
// Records are validated individually by the engine; malformed ones are reported, not fatal.
type GenerateScheduleRequest struct {
	Term        string              `json:"term"`
	Seed        *int                `json:"seed,omitempty"`
	Courses     []models.Course     `json:"courses" validate:"required,min=1"`
	Rooms       []models.Room       `json:"rooms" validate:"required,min=1"`
	Faculty     []models.Faculty    `json:"faculty" validate:"required,min=1"`
	Enrollments []models.Enrollment `json:"enrollments" validate:"required,min=1"`
}

// Input converts the request into the engine input.
func (r GenerateScheduleRequest) Input() scheduler.Input {
	return scheduler.Input{
		Courses:     r.Courses,
		Rooms:       r.Rooms,
		Faculty:     r.Faculty,
		Enrollments: r.Enrollments,
	}
}

// GenerateScheduleResponse returns the engine result held as a proposal.
type GenerateScheduleResponse struct {
	ProposalID  string            `json:"proposalId"`
	Fingerprint string            `json:"fingerprint"`
	Cached      bool              `json:"cached"`
	Conflicts   int               `json:"conflicts"`
	Result      *scheduler.Result `json:"result"`
}

// SaveScheduleRequest persists a proposal as a draft run.
type SaveScheduleRequest struct {
	ProposalID string `json:"proposalId" validate:"required"`
}

// SaveScheduleResponse identifies the stored run.
type SaveScheduleResponse struct {
	ID      string `json:"id"`
	Term    string `json:"term"`
	Version int    `json:"version"`
}

// ScheduleRunQuery filters stored runs.
type ScheduleRunQuery struct {
	Term string `form:"term" json:"term"`
}

// ScheduleRunReportResponse is the report of a stored run.
type ScheduleRunReportResponse struct {
	RunID   string           `json:"runId"`
	Term    string           `json:"term"`
	Version int              `json:"version"`
	Status  string           `json:"status"`
	Report  scheduler.Report `json:"report"`
}
