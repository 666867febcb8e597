package scheduler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/curriculum-scheduler/internal/models"
)

func TestRunPlacesExampleCohort(t *testing.T) {
	result, err := Run(Input{
		Courses:     []models.Course{course("BSIT", 1, "IT101", 3, 0)},
		Rooms:       []models.Room{lectureRoom("R1", 30), lectureRoom("R2", 40), lectureRoom("R3", 50)},
		Faculty:     []models.Faculty{fullTime("F1")},
		Enrollments: []models.Enrollment{enrollment("BSIT", 1, 75)},
	}, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, result.Sections, 2)
	assert.Equal(t, "BSIT1A", result.Sections[0].ID)
	assert.Equal(t, 38, result.Sections[0].Size)
	assert.Equal(t, 37, result.Sections[1].Size)

	require.Len(t, result.Assignments, 4)
	first, second := result.Assignments[0], result.Assignments[1]
	assert.Equal(t, "BSIT1A", first.SectionID)
	assert.Equal(t, models.PairMonThu, first.DayPair)
	assert.Equal(t, models.Monday, first.Day)
	assert.Equal(t, models.Thursday, second.Day)
	assert.Equal(t, first.StartTime, second.StartTime)
	assert.Equal(t, 90, first.Minutes())
	assert.Equal(t, "R2", first.RoomID)

	third := result.Assignments[2]
	assert.Equal(t, "BSIT1B", third.SectionID)
	assert.Equal(t, models.PairTueFri, third.DayPair)

	assert.Empty(t, result.Unscheduled)
	assert.Empty(t, result.ConfigErrors)
	assert.Equal(t, 2, result.Rotation.Counter)
	assert.Equal(t, testTerm, result.Term)
}

func TestRunRoomExhaustion(t *testing.T) {
	result, err := Run(Input{
		Courses:     []models.Course{course("BSIT", 1, "IT101", 3, 0)},
		Rooms:       []models.Room{lectureRoom("R1", 30)},
		Faculty:     []models.Faculty{fullTime("F1")},
		Enrollments: []models.Enrollment{enrollment("BSIT", 1, 38)},
	}, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, result.Assignments)
	require.Len(t, result.Unscheduled, 1)
	assert.Equal(t, "IT101", result.Unscheduled[0].CourseCode)
	assert.Equal(t, models.ReasonRoomExhaustion, result.Unscheduled[0].Reason)
}

func TestRunCourseWithoutEnrollment(t *testing.T) {
	result, err := Run(Input{
		Courses:     []models.Course{course("BSCS", 4, "CS401", 3, 0), course("BSIT", 1, "IT101", 1, 0)},
		Rooms:       []models.Room{lectureRoom("R1", 40)},
		Faculty:     []models.Faculty{fullTime("F1")},
		Enrollments: []models.Enrollment{enrollment("BSIT", 1, 30)},
	}, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, result.Unscheduled, 1)
	assert.Equal(t, models.PlacementFailure{CourseCode: "CS401", Reason: models.ReasonNoSections}, result.Unscheduled[0])
	assert.Len(t, result.Assignments, 1)
}

func TestRunNoSectionsIsFatal(t *testing.T) {
	result, err := Run(Input{
		Courses:     []models.Course{course("BSIT", 1, "IT101", 3, 0)},
		Rooms:       []models.Room{lectureRoom("R1", 40)},
		Faculty:     []models.Faculty{fullTime("F1")},
		Enrollments: []models.Enrollment{enrollment("BSIT", 1, 8)},
	}, DefaultOptions())
	require.ErrorIs(t, err, ErrNoSections)
	require.NotNil(t, result)
	require.Len(t, result.ConfigErrors, 1)
	assert.Equal(t, "count", result.ConfigErrors[0].Field)

	_, err = Run(Input{Courses: []models.Course{course("BSIT", 1, "IT101", 3, 0)}}, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoSections)
}

func TestRunCommitsCourseSectionAllOrNothing(t *testing.T) {
	result, err := Run(Input{
		Courses:     []models.Course{course("BSIT", 1, "IT102", 3, 3)},
		Rooms:       []models.Room{lectureRoom("R1", 40)},
		Faculty:     []models.Faculty{fullTime("F1")},
		Enrollments: []models.Enrollment{enrollment("BSIT", 1, 30)},
	}, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, result.Assignments)
	require.Len(t, result.Unscheduled, 1)
	assert.Equal(t, models.ComponentLab, result.Unscheduled[0].Component)
	assert.Equal(t, models.ReasonRoomExhaustion, result.Unscheduled[0].Reason)
	assert.Equal(t, 0.0, result.Report.Faculty[0].Hours)
}

func TestRunLectureAndLabNeverOverlap(t *testing.T) {
	result, err := Run(Input{
		Courses:     []models.Course{course("BSIT", 1, "IT102", 3, 3), course("BSIT", 1, "IT103", 2, 2)},
		Rooms:       []models.Room{{ID: "R1", Capacity: 40, Type: models.RoomTypeEither}},
		Faculty:     []models.Faculty{fullTime("F1")},
		Enrollments: []models.Enrollment{enrollment("BSIT", 1, 30)},
	}, DefaultOptions())
	require.NoError(t, err)
	require.Empty(t, result.Unscheduled)
	require.Len(t, result.Assignments, 6)

	for i, a := range result.Assignments {
		for _, b := range result.Assignments[i+1:] {
			if a.CourseCode == b.CourseCode && a.Component != b.Component && a.DayPair == b.DayPair {
				assert.False(t, Overlaps(a.StartTime, a.EndTime, b.StartTime, b.EndTime), "%s lecture and lab overlap", a.CourseCode)
			}
		}
	}
	assert.Empty(t, Audit(result.Assignments))
}

func TestRunInvariantsOnSampleCatalog(t *testing.T) {
	opts := DefaultOptions()
	result, err := Run(sampleInput(), opts)
	require.NoError(t, err)
	require.NotEmpty(t, result.Assignments)

	assert.Empty(t, Audit(result.Assignments), "committed schedule must be conflict free")
	for _, s := range result.Sections {
		assert.GreaterOrEqual(t, s.Size, opts.Bounds.Min)
		assert.LessOrEqual(t, s.Size, opts.Bounds.Max)
	}
	for _, a := range result.Assignments {
		assert.GreaterOrEqual(t, int(a.StartTime), int(opts.Window.Start))
		assert.Less(t, int(a.EndTime), int(opts.Window.End))
		assert.Positive(t, a.Minutes())
		assert.Zero(t, a.Minutes()%SlotStep)
		days := a.DayPair.Days()
		assert.True(t, a.Day == days[0] || a.Day == days[1])
	}
	sizes := make(map[string]int)
	for _, s := range result.Sections {
		sizes[s.ID] = s.Size
	}
	rooms := make(map[string]models.Room)
	for _, r := range sampleInput().Rooms {
		rooms[r.ID] = r
	}
	for _, a := range result.Assignments {
		assert.GreaterOrEqual(t, rooms[a.RoomID].Capacity, sizes[a.SectionID])
		assert.True(t, rooms[a.RoomID].Type.Hosts(a.Component))
	}
}

func TestRunIsDeterministic(t *testing.T) {
	first, err := Run(sampleInput(), DefaultOptions())
	require.NoError(t, err)
	second, err := Run(sampleInput(), DefaultOptions())
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestRunBalancesDayPairsWithoutContention(t *testing.T) {
	var courses []models.Course
	for _, code := range []string{"IT101", "IT102", "IT103", "IT104", "IT105", "IT106", "IT107"} {
		courses = append(courses, course("BSIT", 1, code, 1, 0))
	}
	result, err := Run(Input{
		Courses:     courses,
		Rooms:       []models.Room{lectureRoom("R1", 40)},
		Faculty:     []models.Faculty{fullTime("F1")},
		Enrollments: []models.Enrollment{enrollment("BSIT", 1, 30)},
	}, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, result.Assignments, 7)

	lowest, highest := len(result.Assignments), 0
	for _, share := range result.Report.DayPairs {
		lowest = min(lowest, share.Placements)
		highest = max(highest, share.Placements)
	}
	assert.LessOrEqual(t, highest-lowest, 1)
	assert.Equal(t, 7, result.Rotation.Counter)
}

func TestRunBalancesDayPairsWithMixedHours(t *testing.T) {
	result, err := Run(Input{
		Courses:     []models.Course{course("BSIT", 1, "IT101", 3, 0), course("BSIT", 1, "IT102", 1, 0)},
		Rooms:       []models.Room{lectureRoom("R1", 40)},
		Faculty:     []models.Faculty{fullTime("F1")},
		Enrollments: []models.Enrollment{enrollment("BSIT", 1, 30)},
	}, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, result.Assignments, 3)

	assert.Equal(t, []PairShare{
		{DayPair: models.PairMonThu, Placements: 1, Assignments: 2},
		{DayPair: models.PairTueFri, Placements: 1, Assignments: 1},
		{DayPair: models.PairWedSat, Placements: 0, Assignments: 0},
	}, result.Report.DayPairs)
	for _, share := range result.Report.DayPairs {
		assert.Equal(t, result.Rotation.Issued[share.DayPair], share.Placements)
	}
}

func TestRunReportsLoadWarnings(t *testing.T) {
	result, err := Run(Input{
		Courses:     []models.Course{course("BSIT", 1, "IT101", 3, 0)},
		Rooms:       []models.Room{lectureRoom("R1", 40)},
		Faculty:     []models.Faculty{fullTime("F1"), fullTime("F2", "CS999")},
		Enrollments: []models.Enrollment{enrollment("BSIT", 1, 30)},
	}, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, result.LoadWarnings, 2)
	assert.Equal(t, "F1", result.LoadWarnings[0].FacultyID)
	assert.Equal(t, 3.0, result.LoadWarnings[0].AssignedHours)
	assert.Equal(t, "F2", result.LoadWarnings[1].FacultyID)
	assert.Equal(t, models.LoadUnderload, result.LoadWarnings[1].ViolationKind)
}

func TestAssembleUsesCallerOwnedRotator(t *testing.T) {
	snap, errs, err := Prepare(Input{
		Courses:     []models.Course{course("BSIT", 1, "IT101", 1, 0)},
		Rooms:       []models.Room{lectureRoom("R1", 40)},
		Faculty:     []models.Faculty{fullTime("F1")},
		Enrollments: []models.Enrollment{enrollment("BSIT", 1, 30)},
	}, DefaultOptions())
	require.NoError(t, err)
	require.Empty(t, errs)

	opts := DefaultOptions()
	opts.RotatorSeed = 2
	run := NewRun(opts)
	result, err := Assemble(run, snap)
	require.NoError(t, err)
	require.Len(t, result.Assignments, 1)
	assert.Equal(t, models.PairWedSat, result.Assignments[0].DayPair)
	assert.Equal(t, models.Wednesday, result.Assignments[0].Day)
	assert.Equal(t, 3, run.Rotator.Counter())
	assert.Equal(t, 1, run.Schedule.Len())
}
