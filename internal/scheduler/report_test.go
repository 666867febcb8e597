package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/curriculum-scheduler/internal/models"
)

func TestBuildReport(t *testing.T) {
	limited := lectureRoom("R2", 30)
	limited.Days = models.WeekdaySet{models.Monday, models.Tuesday}
	limited.Opens = models.NewClock(8, 0)
	limited.Closes = models.NewClock(12, 0)

	assignments := []models.Assignment{
		session("BSIT1A", "IT101", "R1", "F1", models.PairMonThu, models.Thursday, "09:00", "10:30"),
		session("BSIT1A", "IT101", "R1", "F1", models.PairMonThu, models.Monday, "09:00", "10:30"),
		session("BSIT1B", "IT101", "R2", "F2", models.PairTueFri, models.Tuesday, "08:00", "09:00"),
	}
	report := BuildReport(ReportInput{
		Window:       DefaultOptions().Window,
		Rooms:        []models.Room{lectureRoom("R1", 40), limited, lectureRoom("R3", 50)},
		Faculty:      []models.Faculty{fullTime("F1"), partTime("F2"), fullTime("F3")},
		Sections:     []models.Section{section("BSIT1A", 38), section("BSIT1B", 37)},
		Assignments:  assignments,
		Unscheduled:  2,
		LoadWarnings: 1,
	})

	require.Len(t, report.Rooms, 3)
	r1 := report.Rooms[0]
	assert.Equal(t, 2, r1.Sessions)
	assert.Equal(t, 180, r1.MinutesUsed)
	assert.Equal(t, 6*840, r1.AvailableMinutes)
	assert.Equal(t, 1, r1.SectionsServed)
	assert.Equal(t, 2, r1.DaysUsed)
	assert.InDelta(t, 3.57, r1.UtilizationPct, 0.001)

	r2 := report.Rooms[1]
	assert.Equal(t, 2*240, r2.AvailableMinutes)
	assert.InDelta(t, 12.5, r2.UtilizationPct, 0.001)
	assert.Zero(t, report.Rooms[2].UtilizationPct)

	assert.Equal(t, 3, report.Summary.TotalAssignments)
	assert.Equal(t, 2, report.Summary.RoomsUsed)
	assert.Equal(t, 2, report.Summary.FacultyUsed)
	assert.Equal(t, 2, report.Summary.Sections)
	assert.Equal(t, 2, report.Summary.Unscheduled)
	assert.Equal(t, 1, report.Summary.LoadWarnings)
	assert.InDelta(t, 5.36, report.Summary.UtilizationMean, 0.01)
	assert.InDelta(t, 6.44, report.Summary.UtilizationStdDev, 0.01)

	assert.Equal(t, 3.0, report.Faculty[0].Hours)
	assert.Equal(t, 1.0, report.Faculty[1].Hours)
	assert.Zero(t, report.Faculty[2].Sessions)

	assert.Equal(t, []PairShare{
		{DayPair: models.PairMonThu, Placements: 1, Assignments: 2},
		{DayPair: models.PairTueFri, Placements: 1, Assignments: 1},
		{DayPair: models.PairWedSat, Placements: 0, Assignments: 0},
	}, report.DayPairs)

	require.Len(t, report.Timetables, 2)
	timetable := report.Timetables[0].Sessions
	require.Len(t, timetable, 2)
	assert.Equal(t, models.Monday, timetable[0].Day)
	assert.Equal(t, models.Thursday, timetable[1].Day)
}

func TestBuildReportDerivesUnknownResources(t *testing.T) {
	report := BuildReport(ReportInput{
		Window: DefaultOptions().Window,
		Assignments: []models.Assignment{
			session("BSIT1A", "IT101", "R9", "F9", models.PairWedSat, models.Wednesday, "07:00", "08:00"),
		},
	})
	require.Len(t, report.Rooms, 1)
	assert.Equal(t, "R9", report.Rooms[0].RoomID)
	require.Len(t, report.Faculty, 1)
	assert.Equal(t, "F9", report.Faculty[0].FacultyID)
	require.Len(t, report.Timetables, 1)
	assert.Equal(t, report.Rooms[0].UtilizationPct, report.Summary.UtilizationMean)
	assert.Zero(t, report.Summary.UtilizationStdDev)
}
