package scheduler

import (
	"errors"
	"fmt"

	"github.com/noah-isme/curriculum-scheduler/internal/models"
)

// RunContext owns the mutable state of one scheduling run. It must not be shared
// between runs or goroutines.
type RunContext struct {
	Options  Options
	Schedule *Schedule
	Rotator  *DayPairRotator
	Load     *FacultyLoadTracker
}

// NewRun builds a fresh run context for the given policy.
func NewRun(opts Options) *RunContext {
	opts = opts.withDefaults()
	return &RunContext{
		Options:  opts,
		Schedule: NewSchedule(),
		Rotator:  NewDayPairRotator(opts.RotatorSeed),
		Load:     NewFacultyLoadTracker(opts.Load, nil),
	}
}

// Rotation captures the rotator state at the end of a run.
type Rotation struct {
	Counter int                    `json:"counter"`
	Issued  map[models.DayPair]int `json:"issued"`
}

// Result is the complete output of a run.
type Result struct {
	Term         string                    `json:"term"`
	Sections     []models.Section          `json:"sections"`
	Assignments  []models.Assignment       `json:"assignments"`
	Unscheduled  []models.PlacementFailure `json:"unscheduled"`
	LoadWarnings []models.LoadViolation    `json:"load_warnings"`
	ConfigErrors []ConfigurationError      `json:"config_errors"`
	Rotation     Rotation                  `json:"rotation"`
	Report       Report                    `json:"report"`
}

// Assemble schedules every course of the snapshot. Courses are processed in catalog
// order and sections in generation order; each course-section is committed all or
// nothing. When no section can be generated it returns ErrNoSections together with
// a partial result carrying the configuration errors.
func Assemble(run *RunContext, snap Snapshot) (*Result, error) {
	result := &Result{Term: snap.Term}

	cohorts := make(map[models.CohortKey][]models.Section, len(snap.Enrollments))
	for _, enrollment := range snap.Enrollments {
		sections, err := GenerateSections(enrollment, run.Options.Bounds)
		if err != nil {
			var cfgErr ConfigurationError
			if !errors.As(err, &cfgErr) {
				return nil, err
			}
			result.ConfigErrors = append(result.ConfigErrors, cfgErr)
			continue
		}
		cohorts[enrollment.CohortKey()] = sections
		result.Sections = append(result.Sections, sections...)
	}
	if len(result.Sections) == 0 {
		result.finalize(run, snap)
		return result, fmt.Errorf("%w from %d enrollment records", ErrNoSections, len(snap.Enrollments))
	}

	run.Load.Register(snap.Faculty...)
	allocator := NewTimeSlotAllocator(run.Options, snap.Rooms, snap.Faculty)

	for _, course := range snap.Courses {
		sections := cohorts[course.CohortKey()]
		if len(sections) == 0 {
			result.Unscheduled = append(result.Unscheduled, models.PlacementFailure{
				CourseCode: course.Code,
				Reason:     models.ReasonNoSections,
			})
			continue
		}
		for _, section := range sections {
			if failure, ok := placeSection(run, allocator, course, section); !ok {
				result.Unscheduled = append(result.Unscheduled, failure)
			}
		}
	}

	result.finalize(run, snap)
	return result, nil
}

// placeSection plans every component tentatively and commits only when all fit.
func placeSection(run *RunContext, allocator *TimeSlotAllocator, course models.Course, section models.Section) (models.PlacementFailure, bool) {
	var pending []models.Assignment
	for _, kind := range course.Components() {
		placement := allocator.Allocate(ComponentRequest{
			Course:  course,
			Section: section,
			Kind:    kind,
			Pending: pending,
		}, run.Schedule, run.Rotator, run.Load)
		if !placement.OK() {
			return models.PlacementFailure{
				CourseCode: course.Code,
				Reason:     placement.Reason,
				SectionID:  section.ID,
				Component:  kind,
				Attempts:   placement.Attempts,
			}, false
		}
		pending = append(pending, placement.Sessions...)
	}

	run.Schedule.Commit(pending...)
	for _, session := range pending {
		run.Load.Commit(session)
	}
	return models.PlacementFailure{}, true
}

func (r *Result) finalize(run *RunContext, snap Snapshot) {
	r.Assignments = run.Schedule.Assignments()
	r.LoadWarnings = run.Load.Warnings()
	r.Rotation = Rotation{Counter: run.Rotator.Counter(), Issued: run.Rotator.Issued()}

	if r.Sections == nil {
		r.Sections = []models.Section{}
	}
	if r.Unscheduled == nil {
		r.Unscheduled = []models.PlacementFailure{}
	}
	if r.LoadWarnings == nil {
		r.LoadWarnings = []models.LoadViolation{}
	}
	if r.ConfigErrors == nil {
		r.ConfigErrors = []ConfigurationError{}
	}

	r.Report = BuildReport(ReportInput{
		Window:       run.Options.Window,
		Rooms:        snap.Rooms,
		Faculty:      snap.Faculty,
		Sections:     r.Sections,
		Assignments:  r.Assignments,
		Unscheduled:  len(r.Unscheduled),
		LoadWarnings: len(r.LoadWarnings),
	})
}

// Run validates the input, builds a run context and assembles the schedule.
func Run(in Input, opts Options) (*Result, error) {
	snap, cfgErrs, err := Prepare(in, opts)
	if err != nil {
		return nil, err
	}
	result, err := Assemble(NewRun(opts), snap)
	if result != nil && len(cfgErrs) > 0 {
		result.ConfigErrors = append(cfgErrs, result.ConfigErrors...)
	}
	return result, err
}
