package scheduler

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/curriculum-scheduler/internal/models"
)

// Input is the raw record set handed to the engine.
type Input struct {
	Courses     []models.Course     `json:"courses"`
	Rooms       []models.Room       `json:"rooms"`
	Faculty     []models.Faculty    `json:"faculty"`
	Enrollments []models.Enrollment `json:"enrollments"`
}

// Snapshot is the validated, term-filtered record set of one run. It is never mutated.
type Snapshot struct {
	Term        string              `json:"term"`
	Courses     []models.Course     `json:"courses"`
	Rooms       []models.Room       `json:"rooms"`
	Faculty     []models.Faculty    `json:"faculty"`
	Enrollments []models.Enrollment `json:"enrollments"`
}

// NewValidator returns a validator that understands the engine's custom rules and
// reports fields by their CSV column names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("csv"), ",", 2)[0]
		if name == "" || name == "-" {
			name = strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("halfhour", func(fl validator.FieldLevel) bool {
		doubled := fl.Field().Float() * 2
		return math.Abs(doubled-math.Round(doubled)) < 1e-9
	})
	return v
}

// Prepare validates the input once and filters it to a single term. Invalid records
// are dropped and reported; the returned error is set only when the term is ambiguous.
func Prepare(in Input, opts Options) (Snapshot, []ConfigurationError, error) {
	opts = opts.withDefaults()
	term, err := resolveTerm(in, opts.Term)
	if err != nil {
		return Snapshot{}, nil, err
	}

	v := NewValidator()
	snap := Snapshot{Term: term}
	var errs []ConfigurationError

	seenCourses := make(map[string]bool)
	for _, course := range in.Courses {
		key := fmt.Sprintf("%s:%s", course.CohortKey(), course.Code)
		if err := v.Struct(course); err != nil {
			errs = append(errs, validationErrors("course", key, err)...)
			continue
		}
		if course.LectureHours+course.LabHours <= 0 {
			errs = append(errs, ConfigurationError{Entity: "course", Key: key, Field: "lecture_hours", Message: "course has no weekly hours"})
			continue
		}
		if term != "" && course.Term != term {
			continue
		}
		if seenCourses[key] {
			errs = append(errs, ConfigurationError{Entity: "course", Key: key, Message: "duplicate course for cohort"})
			continue
		}
		seenCourses[key] = true
		snap.Courses = append(snap.Courses, course)
	}

	seenRooms := make(map[string]bool)
	for _, room := range in.Rooms {
		if err := v.Struct(room); err != nil {
			errs = append(errs, validationErrors("room", room.ID, err)...)
			continue
		}
		switch {
		case room.Capacity < opts.Bounds.Min:
			errs = append(errs, ConfigurationError{Entity: "room", Key: room.ID, Field: "capacity",
				Message: fmt.Sprintf("capacity %d is below the minimum section size %d", room.Capacity, opts.Bounds.Min)})
		case room.Closes > 0 && room.Closes <= room.Opens:
			errs = append(errs, ConfigurationError{Entity: "room", Key: room.ID, Field: "end_time", Message: "closes before it opens"})
		case seenRooms[room.ID]:
			errs = append(errs, ConfigurationError{Entity: "room", Key: room.ID, Message: "duplicate room id"})
		default:
			seenRooms[room.ID] = true
			snap.Rooms = append(snap.Rooms, room)
		}
	}

	seenFaculty := make(map[string]bool)
	for _, member := range in.Faculty {
		if err := v.Struct(member); err != nil {
			errs = append(errs, validationErrors("faculty", member.ID, err)...)
			continue
		}
		if seenFaculty[member.ID] {
			errs = append(errs, ConfigurationError{Entity: "faculty", Key: member.ID, Message: "duplicate faculty id"})
			continue
		}
		seenFaculty[member.ID] = true
		snap.Faculty = append(snap.Faculty, member)
	}

	seenCohorts := make(map[models.CohortKey]bool)
	for _, enrollment := range in.Enrollments {
		key := enrollment.CohortKey()
		if err := v.Struct(enrollment); err != nil {
			errs = append(errs, validationErrors("enrollment", key.String(), err)...)
			continue
		}
		if term != "" && enrollment.Term != term {
			continue
		}
		if seenCohorts[key] {
			errs = append(errs, ConfigurationError{Entity: "enrollment", Key: key.String(), Message: "duplicate enrollment for cohort"})
			continue
		}
		seenCohorts[key] = true
		snap.Enrollments = append(snap.Enrollments, enrollment)
	}

	return snap, errs, nil
}

// resolveTerm returns the requested term or the single term present in the data.
func resolveTerm(in Input, requested string) (string, error) {
	if requested = strings.TrimSpace(requested); requested != "" {
		return requested, nil
	}
	seen := make(map[string]bool)
	var terms []string
	add := func(term string) {
		term = strings.TrimSpace(term)
		if term == "" || seen[term] {
			return
		}
		seen[term] = true
		terms = append(terms, term)
	}
	for _, c := range in.Courses {
		add(c.Term)
	}
	for _, e := range in.Enrollments {
		add(e.Term)
	}
	switch len(terms) {
	case 0:
		return "", nil
	case 1:
		return terms[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguousTerm, strings.Join(terms, ", "))
	}
}

func validationErrors(entity, key string, err error) []ConfigurationError {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []ConfigurationError{{Entity: entity, Key: key, Message: err.Error()}}
	}
	out := make([]ConfigurationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ConfigurationError{Entity: entity, Key: key, Field: fe.Field(), Message: describeRule(fe)})
	}
	return out
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "halfhour":
		return "must be a multiple of 0.5 hours"
	case "oneof":
		return "must be one of " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
