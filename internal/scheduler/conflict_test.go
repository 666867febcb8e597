package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/curriculum-scheduler/internal/models"
)

func session(section, course, room, faculty string, pair models.DayPair, day models.Weekday, start, end string) models.Assignment {
	s, _ := models.ParseClock(start)
	e, _ := models.ParseClock(end)
	return models.Assignment{
		SectionID: section, CourseCode: course, RoomID: room, FacultyID: faculty,
		DayPair: pair, Day: day, StartTime: s, EndTime: e, Component: models.ComponentLecture,
	}
}

func TestDetectReportsEachDimension(t *testing.T) {
	existing := []models.Assignment{session("BSIT1A", "IT101", "R1", "F1", models.PairMonThu, models.Monday, "09:00", "10:30")}

	conflicts := Detect(session("BSIT1A", "IT102", "R1", "F1", models.PairMonThu, models.Monday, "10:00", "11:00"), existing)
	require.Len(t, conflicts, 3)
	assert.Equal(t, models.ConflictRoom, conflicts[0].Dimension)
	assert.Equal(t, models.ConflictFaculty, conflicts[1].Dimension)
	assert.Equal(t, models.ConflictSection, conflicts[2].Dimension)
	assert.Equal(t, "R1", conflicts[0].Resource)
}

func TestDetectIsPairLevel(t *testing.T) {
	existing := []models.Assignment{session("BSIT1A", "IT101", "R1", "F1", models.PairMonThu, models.Monday, "09:00", "10:30")}

	// Thursday belongs to the same pair as Monday, so the room is taken.
	conflicts := Detect(session("BSCS1A", "CS101", "R1", "F2", models.PairMonThu, models.Thursday, "09:30", "10:00"), existing)
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictRoom, conflicts[0].Dimension)

	assert.True(t, Accept(session("BSCS1A", "CS101", "R1", "F1", models.PairTueFri, models.Tuesday, "09:00", "10:30"), existing))
}

func TestDetectTouchingIntervals(t *testing.T) {
	existing := []models.Assignment{session("BSIT1A", "IT101", "R1", "F1", models.PairMonThu, models.Monday, "09:00", "10:30")}
	assert.True(t, Accept(session("BSIT1A", "IT102", "R1", "F1", models.PairMonThu, models.Monday, "10:30", "12:00"), existing))
	assert.True(t, Accept(session("BSIT1A", "IT102", "R1", "F1", models.PairMonThu, models.Monday, "07:30", "09:00"), existing))
}

func TestDetectIgnoresSessionsOfSamePlacement(t *testing.T) {
	monday := session("BSIT1A", "IT101", "R1", "F1", models.PairMonThu, models.Monday, "09:00", "10:30")
	thursday := session("BSIT1A", "IT101", "R1", "F1", models.PairMonThu, models.Thursday, "09:00", "10:30")
	assert.True(t, Accept(thursday, []models.Assignment{monday}))

	lab := thursday
	lab.Component = models.ComponentLab
	assert.False(t, Accept(lab, []models.Assignment{monday}))

	sameDay := session("BSIT1A", "IT101", "R1", "F1", models.PairMonThu, models.Monday, "09:30", "11:00")
	conflicts := Detect(sameDay, []models.Assignment{monday})
	require.Len(t, conflicts, 3)
	assert.Equal(t, models.ConflictRoom, conflicts[0].Dimension)
}

func TestAuditFindsClashes(t *testing.T) {
	schedule := []models.Assignment{
		session("BSIT1A", "IT101", "R1", "F1", models.PairMonThu, models.Monday, "09:00", "10:30"),
		session("BSIT1A", "IT101", "R1", "F1", models.PairMonThu, models.Thursday, "09:00", "10:30"),
		session("BSCS1A", "CS101", "R2", "F1", models.PairMonThu, models.Monday, "10:00", "11:00"),
		session("BSCS1B", "CS101", "R3", "F2", models.PairTueFri, models.Tuesday, "10:00", "11:00"),
	}
	conflicts := Audit(schedule)
	require.Len(t, conflicts, 2)
	for _, c := range conflicts {
		assert.Equal(t, models.ConflictFaculty, c.Dimension)
		assert.Equal(t, "F1", c.Resource)
		assert.Equal(t, "CS101", c.Second.CourseCode)
	}
	assert.Empty(t, Audit(schedule[:2]))

	duplicated := []models.Assignment{
		session("BSIT1A", "IT101", "R1", "F1", models.PairMonThu, models.Monday, "09:00", "10:30"),
		session("BSIT1A", "IT101", "R1", "F1", models.PairMonThu, models.Monday, "09:30", "11:00"),
	}
	assert.Len(t, Audit(duplicated), 3)
}

func TestScheduleRelatedUsesIndices(t *testing.T) {
	s := NewSchedule()
	s.Commit(
		session("BSIT1A", "IT101", "R1", "F1", models.PairMonThu, models.Monday, "09:00", "10:30"),
		session("BSIT1B", "IT101", "R2", "F2", models.PairMonThu, models.Monday, "09:00", "10:30"),
		session("BSIT1C", "IT101", "R1", "F3", models.PairTueFri, models.Tuesday, "09:00", "10:30"),
		session("BSIT1D", "IT101", "R4", "F1", models.PairMonThu, models.Monday, "13:00", "14:30"),
	)
	require.Equal(t, 4, s.Len())

	related := s.Related(session("BSIT1Z", "IT109", "R1", "F1", models.PairMonThu, models.Monday, "08:00", "09:00"))
	require.Len(t, related, 2)
	assert.Equal(t, "BSIT1A", related[0].SectionID)
	assert.Equal(t, "BSIT1D", related[1].SectionID)

	copied := s.Assignments()
	copied[0].RoomID = "changed"
	assert.Equal(t, "R1", s.Assignments()[0].RoomID)
}
