package dto

import "github.com/noah-isme/curriculum-scheduler/internal/models"

// ExportRequest asks for a file rendering of a stored run.
type ExportRequest struct {
	ScheduleRunID string              `json:"scheduleRunId" validate:"required,uuid"`
	View          models.ExportView   `json:"view" validate:"required,oneof=assignments unscheduled utilization load_warnings"`
	Format        models.ExportFormat `json:"format" validate:"required,oneof=csv pdf"`
	SectionID     string              `json:"sectionId,omitempty"`
	FacultyID     string              `json:"facultyId,omitempty"`
}

// ExportJobResponse is returned when a job is accepted.
type ExportJobResponse struct {
	ID       string              `json:"id"`
	Status   models.ExportStatus `json:"status"`
	Progress int                 `json:"progress"`
}

// ExportStatusResponse reports job progress and the signed download URL.
type ExportStatusResponse struct {
	ID        string              `json:"id"`
	Status    models.ExportStatus `json:"status"`
	Progress  int                 `json:"progress"`
	ResultURL *string             `json:"resultUrl,omitempty"`
	Error     *string             `json:"error,omitempty"`
}
