package models

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx/types"
)

// ScheduleRunStatus represents lifecycle phases for persisted runs.
type ScheduleRunStatus string

const (
	ScheduleRunStatusDraft     ScheduleRunStatus = "DRAFT"
	ScheduleRunStatusPublished ScheduleRunStatus = "PUBLISHED"
	ScheduleRunStatusArchived  ScheduleRunStatus = "ARCHIVED"
)

// ScheduleRun is a versioned, persisted engine result for a term.
type ScheduleRun struct {
	ID          string            `db:"id" json:"id"`
	Term        string            `db:"term" json:"term"`
	Version     int               `db:"version" json:"version"`
	Status      ScheduleRunStatus `db:"status" json:"status"`
	Fingerprint string            `db:"fingerprint" json:"fingerprint"`
	Meta        types.JSONText    `db:"meta" json:"meta"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at" json:"updated_at"`
}

// ScheduleRunAssignment is a stored row of a run's assignment table.
type ScheduleRunAssignment struct {
	ID            string        `db:"id" json:"id"`
	ScheduleRunID string        `db:"schedule_run_id" json:"schedule_run_id"`
	Seq           int           `db:"seq" json:"seq"`
	SectionID     string        `db:"section_id" json:"section_id"`
	CourseCode    string        `db:"course_code" json:"course_code"`
	RoomID        string        `db:"room_id" json:"room_id"`
	FacultyID     string        `db:"faculty_id" json:"faculty_id"`
	DayPair       DayPair       `db:"day_pair" json:"day_pair"`
	Day           Weekday       `db:"day" json:"day"`
	StartTime     Clock         `db:"start_time" json:"start_time"`
	EndTime       Clock         `db:"end_time" json:"end_time"`
	Component     ComponentKind `db:"component_kind" json:"component_kind"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}

// Assignment converts the stored row back to the engine contract.
func (r ScheduleRunAssignment) Assignment() Assignment {
	return Assignment{
		SectionID:  r.SectionID,
		CourseCode: r.CourseCode,
		RoomID:     r.RoomID,
		FacultyID:  r.FacultyID,
		DayPair:    r.DayPair,
		Day:        r.Day,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Component:  r.Component,
	}
}

// ScheduleRunMeta is the JSON document stored alongside a run.
type ScheduleRunMeta struct {
	Unscheduled    []PlacementFailure `json:"unscheduled"`
	LoadWarnings   []LoadViolation    `json:"load_warnings"`
	ConfigErrors   []string           `json:"config_errors,omitempty"`
	Sections       []Section          `json:"sections"`
	Rooms          []Room             `json:"rooms"`
	Faculty        []Faculty          `json:"faculty"`
	WindowStart    Clock              `json:"window_start"`
	WindowEnd      Clock              `json:"window_end"`
	RotatorCounter int                `json:"rotator_counter"`
	Policy         map[string]any     `json:"policy,omitempty"`
	GeneratedAt    time.Time          `json:"generated_at"`
}

// DecodeMeta unmarshals the stored meta document.
func (r ScheduleRun) DecodeMeta() (ScheduleRunMeta, error) {
	var meta ScheduleRunMeta
	if len(r.Meta) == 0 {
		return meta, nil
	}
	if err := r.Meta.Unmarshal(&meta); err != nil {
		return meta, fmt.Errorf("decode schedule run meta: %w", err)
	}
	return meta, nil
}
