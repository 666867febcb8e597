package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/curriculum-scheduler/internal/models"
)

func hoursSession(faculty string, hours int) models.Assignment {
	return models.Assignment{
		SectionID: "BSIT1A", CourseCode: "IT101", RoomID: "R1", FacultyID: faculty,
		DayPair: models.PairMonThu, Day: models.Monday,
		StartTime: models.NewClock(7, 0), EndTime: models.NewClock(7+hours, 0),
	}
}

func TestFacultyLoadTrackerWarnings(t *testing.T) {
	tracker := NewFacultyLoadTracker(DefaultOptions().Load, []models.Faculty{
		fullTime("F1"), partTime("P1"), fullTime("F2"), partTime("P2"),
	})
	for i := 0; i < 3; i++ {
		tracker.Commit(hoursSession("F2", 8))
	}
	for i := 0; i < 4; i++ {
		tracker.Commit(hoursSession("P1", 5))
	}
	tracker.Commit(hoursSession("P2", 6))

	warnings := tracker.Warnings()
	require.Len(t, warnings, 2)

	assert.Equal(t, "F1", warnings[0].FacultyID)
	assert.Equal(t, models.LoadUnderload, warnings[0].ViolationKind)
	assert.Equal(t, 0.0, warnings[0].AssignedHours)
	assert.Equal(t, 24.0, warnings[0].BoundHours)

	assert.Equal(t, "P1", warnings[1].FacultyID)
	assert.Equal(t, models.LoadOverload, warnings[1].ViolationKind)
	assert.Equal(t, 20.0, warnings[1].AssignedHours)
	assert.Equal(t, 18.0, warnings[1].BoundHours)
}

func TestFacultyLoadTrackerRecordsOverloadOnce(t *testing.T) {
	tracker := NewFacultyLoadTracker(DefaultOptions().Load, []models.Faculty{partTime("P1")})
	for i := 0; i < 6; i++ {
		tracker.Commit(hoursSession("P1", 4))
	}
	overloads := tracker.Overloads()
	require.Len(t, overloads, 1)
	assert.Equal(t, 20.0, overloads[0].AssignedHours)
	assert.Equal(t, 24.0, tracker.Hours("P1"))
	assert.Equal(t, 6, tracker.Sessions("P1"))
}

func TestFacultyLoadTrackerOrderedAndCap(t *testing.T) {
	roster := []models.Faculty{fullTime("F1"), partTime("P1"), fullTime("F2")}
	tracker := NewFacultyLoadTracker(DefaultOptions().Load, roster)
	tracker.Commit(hoursSession("F1", 3))
	tracker.Commit(hoursSession("P1", 2))

	ordered := tracker.Ordered(roster)
	assert.Equal(t, []string{"F2", "P1", "F1"}, []string{ordered[0].ID, ordered[1].ID, ordered[2].ID})

	tracker.Commit(hoursSession("P1", 12))
	assert.False(t, tracker.WouldExceed(roster[1], 240))
	assert.True(t, tracker.WouldExceed(roster[1], 270))
	assert.False(t, tracker.WouldExceed(roster[0], 6000))
}
