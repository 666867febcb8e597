package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/curriculum-scheduler/internal/models"
)

func TestPrepareDropsInvalidRecords(t *testing.T) {
	badHours := course("BSIT", 1, "IT105", 1.25, 0)
	noHours := course("BSIT", 1, "IT106", 0, 0)
	in := Input{
		Courses: []models.Course{course("BSIT", 1, "IT101", 3, 0), badHours, noHours, course("BSIT", 1, "IT101", 2, 0)},
		Rooms: []models.Room{
			lectureRoom("R1", 40),
			lectureRoom("R2", 10),
			{ID: "R3", Capacity: 40, Type: "GYM"},
			lectureRoom("R1", 45),
			{ID: "R4", Capacity: 40, Type: models.RoomTypeLecture, Opens: models.NewClock(12, 0), Closes: models.NewClock(9, 0)},
		},
		Faculty:     []models.Faculty{fullTime("F1"), {ID: "F2", EmploymentType: "CONTRACT"}, fullTime("F1")},
		Enrollments: []models.Enrollment{enrollment("BSIT", 1, 75), {Program: "", Year: 1, Term: testTerm, Count: 20}, enrollment("BSIT", 1, 80)},
	}

	snap, errs, err := Prepare(in, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, testTerm, snap.Term)
	require.Len(t, snap.Courses, 1)
	require.Len(t, snap.Rooms, 1)
	require.Len(t, snap.Faculty, 1)
	require.Len(t, snap.Enrollments, 1)
	assert.Equal(t, 75, snap.Enrollments[0].Count)

	byKey := make(map[string]ConfigurationError)
	for _, e := range errs {
		byKey[e.Entity+"|"+e.Key+"|"+e.Field] = e
	}
	assert.Contains(t, byKey["course|BSIT/1/2024-1:IT105|lecture_hours"].Message, "0.5 hours")
	assert.Contains(t, byKey["course|BSIT/1/2024-1:IT106|lecture_hours"].Message, "no weekly hours")
	assert.Contains(t, byKey["course|BSIT/1/2024-1:IT101|"].Message, "duplicate")
	assert.Contains(t, byKey["room|R2|capacity"].Message, "below the minimum")
	assert.Contains(t, byKey["room|R3|room_type"].Message, "one of")
	assert.Contains(t, byKey["room|R1|"].Message, "duplicate")
	assert.Contains(t, byKey["room|R4|end_time"].Message, "closes before")
	assert.Contains(t, byKey["faculty|F2|employment_type"].Message, "one of")
	assert.Contains(t, byKey["faculty|F1|"].Message, "duplicate")
	assert.Contains(t, byKey["enrollment|/1/2024-1|program"].Message, "required")
	assert.Contains(t, byKey["enrollment|BSIT/1/2024-1|"].Message, "duplicate")
	assert.Len(t, errs, 11)
}

func TestPrepareFiltersByTerm(t *testing.T) {
	other := course("BSIT", 1, "IT201", 3, 0)
	other.Term = "2024-2"
	otherEnrollment := enrollment("BSIT", 1, 40)
	otherEnrollment.Term = "2024-2"
	in := Input{
		Courses:     []models.Course{course("BSIT", 1, "IT101", 3, 0), other},
		Enrollments: []models.Enrollment{enrollment("BSIT", 1, 75), otherEnrollment},
	}

	_, _, err := Prepare(in, DefaultOptions())
	require.ErrorIs(t, err, ErrAmbiguousTerm)

	opts := DefaultOptions()
	opts.Term = "2024-2"
	snap, errs, err := Prepare(in, opts)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, "2024-2", snap.Term)
	require.Len(t, snap.Courses, 1)
	assert.Equal(t, "IT201", snap.Courses[0].Code)
	require.Len(t, snap.Enrollments, 1)
	assert.Equal(t, 40, snap.Enrollments[0].Count)
}

func TestConfigurationErrorMessage(t *testing.T) {
	err := ConfigurationError{Entity: "room", Key: "R2", Field: "capacity", Message: "too small"}
	assert.Equal(t, "room R2: capacity too small", err.Error())
	err.Field = ""
	assert.Equal(t, "room R2: too small", err.Error())
}
