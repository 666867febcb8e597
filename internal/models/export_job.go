package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ExportView selects which table of a run is exported.
type ExportView string

const (
	ExportViewAssignments ExportView = "assignments"
	ExportViewUnscheduled ExportView = "unscheduled"
	ExportViewUtilization ExportView = "utilization"
	ExportViewWarnings    ExportView = "load_warnings"
)

// ExportFormat enumerates supported export formats.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportStatus captures background job lifecycle states.
type ExportStatus string

const (
	ExportStatusQueued     ExportStatus = "QUEUED"
	ExportStatusProcessing ExportStatus = "PROCESSING"
	ExportStatusFinished   ExportStatus = "FINISHED"
	ExportStatusFailed     ExportStatus = "FAILED"
	ExportStatusExpired    ExportStatus = "EXPIRED"
)

// ExportJob persisted background job metadata.
type ExportJob struct {
	ID            string          `db:"id" json:"id"`
	ScheduleRunID string          `db:"schedule_run_id" json:"schedule_run_id"`
	View          ExportView      `db:"view" json:"view"`
	Params        ExportJobParams `db:"params" json:"params"`
	Status        ExportStatus    `db:"status" json:"status"`
	Progress      int             `db:"progress" json:"progress"`
	ResultURL     *string         `db:"result_url" json:"result_url,omitempty"`
	CreatedBy     string          `db:"created_by" json:"created_by"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	FinishedAt    *time.Time      `db:"finished_at" json:"finished_at,omitempty"`
	ErrorMessage  *string         `db:"error_message" json:"error_message,omitempty"`
}

// ExportJobParams stores request-scoped options persisted as JSONB.
type ExportJobParams struct {
	Format    ExportFormat `json:"format"`
	SectionID string       `json:"sectionId,omitempty"`
	FacultyID string       `json:"facultyId,omitempty"`
}

// Value marshals params to JSON for persistence.
func (p ExportJobParams) Value() (driver.Value, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal export job params: %w", err)
	}
	return data, nil
}

// Scan unmarshals JSON payloads into the params struct.
func (p *ExportJobParams) Scan(value interface{}) error {
	if value == nil {
		*p = ExportJobParams{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for ExportJobParams", value)
	}
	if len(data) == 0 {
		*p = ExportJobParams{}
		return nil
	}
	if err := json.Unmarshal(data, p); err != nil {
		return fmt.Errorf("unmarshal export job params: %w", err)
	}
	return nil
}
