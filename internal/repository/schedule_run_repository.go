package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/noah-isme/curriculum-scheduler/internal/models"
)

const scheduleRunColumns = `id, term, version, status, fingerprint, meta, created_at, updated_at`

// ScheduleRunRepository persists versioned engine runs per term.
type ScheduleRunRepository struct {
	db *sqlx.DB
}

// NewScheduleRunRepository constructs repository.
func NewScheduleRunRepository(db *sqlx.DB) *ScheduleRunRepository {
	return &ScheduleRunRepository{db: db}
}

func (r *ScheduleRunRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// CreateVersioned inserts a run assigning the next version for its term.
func (r *ScheduleRunRepository) CreateVersioned(ctx context.Context, exec sqlx.ExtContext, run *models.ScheduleRun) error {
	if run == nil {
		return fmt.Errorf("schedule run payload is nil")
	}
	if run.Term == "" {
		return fmt.Errorf("term is required")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Status == "" {
		run.Status = models.ScheduleRunStatusDraft
	}
	if len(run.Meta) == 0 {
		run.Meta = types.JSONText(`{}`)
	}
	now := time.Now().UTC()
	if run.CreatedAt.IsZero() {
		run.CreatedAt = now
	}
	run.UpdatedAt = now

	target := r.exec(exec)

	const nextVersionQuery = `SELECT COALESCE(MAX(version), 0) + 1 FROM schedule_runs WHERE term = $1`
	if err := sqlx.GetContext(ctx, target, &run.Version, nextVersionQuery, run.Term); err != nil {
		return fmt.Errorf("compute next schedule run version: %w", err)
	}

	const insertQuery = `
INSERT INTO schedule_runs (id, term, version, status, fingerprint, meta, created_at, updated_at)
VALUES (:id, :term, :version, :status, :fingerprint, :meta, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, target, insertQuery, run); err != nil {
		return fmt.Errorf("insert schedule run: %w", err)
	}
	return nil
}

// ListByTerm returns every version for the term, newest first.
func (r *ScheduleRunRepository) ListByTerm(ctx context.Context, term string) ([]models.ScheduleRun, error) {
	query := `SELECT ` + scheduleRunColumns + ` FROM schedule_runs WHERE term = $1 ORDER BY version DESC`
	runs := []models.ScheduleRun{}
	if err := r.db.SelectContext(ctx, &runs, query, term); err != nil {
		return nil, fmt.Errorf("list schedule runs: %w", err)
	}
	return runs, nil
}

// FindByID loads a run by its identifier.
func (r *ScheduleRunRepository) FindByID(ctx context.Context, id string) (*models.ScheduleRun, error) {
	query := `SELECT ` + scheduleRunColumns + ` FROM schedule_runs WHERE id = $1`
	var run models.ScheduleRun
	if err := r.db.GetContext(ctx, &run, query, id); err != nil {
		return nil, err
	}
	return &run, nil
}

// FindByFingerprint returns the newest run for the term built from the same snapshot.
func (r *ScheduleRunRepository) FindByFingerprint(ctx context.Context, term, fingerprint string) (*models.ScheduleRun, error) {
	query := `SELECT ` + scheduleRunColumns + ` FROM schedule_runs WHERE term = $1 AND fingerprint = $2 ORDER BY version DESC LIMIT 1`
	var run models.ScheduleRun
	if err := r.db.GetContext(ctx, &run, query, term, fingerprint); err != nil {
		return nil, err
	}
	return &run, nil
}

// Delete removes a stored run. Assignments cascade.
func (r *ScheduleRunRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM schedule_runs WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete schedule run: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("schedule run rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateStatus moves a run to the given status.
func (r *ScheduleRunRepository) UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id string, status models.ScheduleRunStatus) error {
	target := r.exec(exec)
	const query = `UPDATE schedule_runs SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := target.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update schedule run status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("schedule run status rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ArchivePublished archives the currently published runs of a term except keepID.
func (r *ScheduleRunRepository) ArchivePublished(ctx context.Context, exec sqlx.ExtContext, term, keepID string) error {
	target := r.exec(exec)
	const query = `UPDATE schedule_runs SET status = $1, updated_at = $2 WHERE term = $3 AND status = $4 AND id <> $5`
	if _, err := target.ExecContext(ctx, query, models.ScheduleRunStatusArchived, time.Now().UTC(), term, models.ScheduleRunStatusPublished, keepID); err != nil {
		return fmt.Errorf("archive published schedule runs: %w", err)
	}
	return nil
}
