package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/curriculum-scheduler/internal/models"
)

// ScheduleAssignmentRepository stores the assignment rows of a run.
type ScheduleAssignmentRepository struct {
	db *sqlx.DB
}

// NewScheduleAssignmentRepository builds repository.
func NewScheduleAssignmentRepository(db *sqlx.DB) *ScheduleAssignmentRepository {
	return &ScheduleAssignmentRepository{db: db}
}

func (r *ScheduleAssignmentRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// InsertBatch writes the assignments of a run, preserving their commit order in seq.
func (r *ScheduleAssignmentRepository) InsertBatch(ctx context.Context, exec sqlx.ExtContext, runID string, assignments []models.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}
	target := r.exec(exec)
	now := time.Now().UTC()

	const query = `
INSERT INTO schedule_run_assignments (id, schedule_run_id, seq, section_id, course_code, room_id, faculty_id, day_pair, day, start_time, end_time, component_kind, created_at)
VALUES (:id, :schedule_run_id, :seq, :section_id, :course_code, :room_id, :faculty_id, :day_pair, :day, :start_time, :end_time, :component_kind, :created_at)`

	for i, a := range assignments {
		row := models.ScheduleRunAssignment{
			ID:            uuid.NewString(),
			ScheduleRunID: runID,
			Seq:           i + 1,
			SectionID:     a.SectionID,
			CourseCode:    a.CourseCode,
			RoomID:        a.RoomID,
			FacultyID:     a.FacultyID,
			DayPair:       a.DayPair,
			Day:           a.Day,
			StartTime:     a.StartTime,
			EndTime:       a.EndTime,
			Component:     a.Component,
			CreatedAt:     now,
		}
		if _, err := sqlx.NamedExecContext(ctx, target, query, row); err != nil {
			return fmt.Errorf("insert schedule assignment %d: %w", row.Seq, err)
		}
	}
	return nil
}

// ListByRun returns the rows of a run in commit order.
func (r *ScheduleAssignmentRepository) ListByRun(ctx context.Context, runID string) ([]models.ScheduleRunAssignment, error) {
	const query = `SELECT id, schedule_run_id, seq, section_id, course_code, room_id, faculty_id, day_pair, day, start_time, end_time, component_kind, created_at
FROM schedule_run_assignments WHERE schedule_run_id = $1 ORDER BY seq ASC`
	rows := []models.ScheduleRunAssignment{}
	if err := r.db.SelectContext(ctx, &rows, query, runID); err != nil {
		return nil, fmt.Errorf("list schedule assignments: %w", err)
	}
	return rows, nil
}
