package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/curriculum-scheduler/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var scheduleRunRowColumns = []string{"id", "term", "version", "status", "fingerprint", "meta", "created_at", "updated_at"}

func TestScheduleRunRepositoryCreateVersioned(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRunRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(version), 0) + 1 FROM schedule_runs WHERE term = $1")).
		WithArgs("1st").
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(3))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedule_runs")).
		WithArgs(sqlmock.AnyArg(), "1st", 3, string(models.ScheduleRunStatusDraft), "abc", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	run := &models.ScheduleRun{Term: "1st", Fingerprint: "abc"}
	require.NoError(t, repo.CreateVersioned(context.Background(), nil, run))
	assert.Equal(t, 3, run.Version)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, types.JSONText(`{}`), run.Meta)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRunRepositoryCreateVersionedRequiresTerm(t *testing.T) {
	db, _, cleanup := newRepoMock(t)
	defer cleanup()

	err := NewScheduleRunRepository(db).CreateVersioned(context.Background(), nil, &models.ScheduleRun{})
	assert.Error(t, err)
}

func TestScheduleRunRepositoryListByTerm(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRunRepository(db)

	rows := sqlmock.NewRows(scheduleRunRowColumns).
		AddRow("run-2", "1st", 2, "DRAFT", "abc", []byte(`{}`), time.Now(), time.Now()).
		AddRow("run-1", "1st", 1, "PUBLISHED", "abc", []byte(`{}`), time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM schedule_runs WHERE term = $1 ORDER BY version DESC")).
		WithArgs("1st").
		WillReturnRows(rows)

	runs, err := repo.ListByTerm(context.Background(), "1st")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, models.ScheduleRunStatusPublished, runs[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRunRepositoryDeleteNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRunRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schedule_runs WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRunRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRunRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE schedule_runs SET status = $1, updated_at = $2 WHERE id = $3")).
		WithArgs(models.ScheduleRunStatusPublished, sqlmock.AnyArg(), "run-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), nil, "run-1", models.ScheduleRunStatusPublished))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleAssignmentRepositoryInsertBatchKeepsOrder(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleAssignmentRepository(db)

	assignments := []models.Assignment{
		{SectionID: "BSIT1A", CourseCode: "IT101", RoomID: "R1", FacultyID: "F1", DayPair: models.PairMonThu, Day: models.Monday, StartTime: models.NewClock(7, 0), EndTime: models.NewClock(8, 30), Component: models.ComponentLecture},
		{SectionID: "BSIT1A", CourseCode: "IT101", RoomID: "R1", FacultyID: "F1", DayPair: models.PairMonThu, Day: models.Thursday, StartTime: models.NewClock(7, 0), EndTime: models.NewClock(8, 30), Component: models.ComponentLecture},
	}
	for i, a := range assignments {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedule_run_assignments")).
			WithArgs(sqlmock.AnyArg(), "run-1", i+1, "BSIT1A", "IT101", "R1", "F1", "MON-THU", string(a.Day), "07:00", "08:30", "LECTURE", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}

	require.NoError(t, repo.InsertBatch(context.Background(), nil, "run-1", assignments))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleAssignmentRepositoryListByRun(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleAssignmentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "schedule_run_id", "seq", "section_id", "course_code", "room_id", "faculty_id", "day_pair", "day", "start_time", "end_time", "component_kind", "created_at"}).
		AddRow("a-1", "run-1", 1, "BSIT1A", "IT101", "R1", "F1", "MON-THU", "MONDAY", "07:00", "08:30", "LECTURE", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM schedule_run_assignments WHERE schedule_run_id = $1 ORDER BY seq ASC")).
		WithArgs("run-1").
		WillReturnRows(rows)

	list, err := repo.ListByRun(context.Background(), "run-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	a := list[0].Assignment()
	assert.Equal(t, models.NewClock(8, 30), a.EndTime)
	assert.Equal(t, models.PairMonThu, a.DayPair)
	assert.NoError(t, mock.ExpectationsWereMet())
}
