package scheduler

import (
	"sort"

	"github.com/noah-isme/curriculum-scheduler/internal/models"
)

// Overlaps reports whether two half-open intervals intersect.
func Overlaps(s1, e1, s2, e2 models.Clock) bool {
	return s1 < e2 && s2 < e1
}

// samePlacement reports whether two sessions are the two days of one split lecture
// or lab. Those never conflict with each other; two sessions on one day always can.
func samePlacement(a, b models.Assignment) bool {
	return a.SectionID == b.SectionID && a.CourseCode == b.CourseCode && a.Component == b.Component && a.Day != b.Day
}

// Detect lists every clash between candidate and existing. Two sessions clash when
// they share a day pair, their intervals overlap and they use the same room,
// faculty member or section.
func Detect(candidate models.Assignment, existing []models.Assignment) []models.ScheduleConflict {
	var conflicts []models.ScheduleConflict
	for _, other := range existing {
		if other.DayPair != candidate.DayPair || samePlacement(candidate, other) {
			continue
		}
		if !Overlaps(candidate.StartTime, candidate.EndTime, other.StartTime, other.EndTime) {
			continue
		}
		if other.RoomID == candidate.RoomID {
			conflicts = append(conflicts, models.ScheduleConflict{
				Dimension: models.ConflictRoom, Resource: candidate.RoomID, First: other, Second: candidate,
			})
		}
		if other.FacultyID == candidate.FacultyID {
			conflicts = append(conflicts, models.ScheduleConflict{
				Dimension: models.ConflictFaculty, Resource: candidate.FacultyID, First: other, Second: candidate,
			})
		}
		if other.SectionID == candidate.SectionID {
			conflicts = append(conflicts, models.ScheduleConflict{
				Dimension: models.ConflictSection, Resource: candidate.SectionID, First: other, Second: candidate,
			})
		}
	}
	return conflicts
}

// Accept is the boolean form of Detect.
func Accept(candidate models.Assignment, existing []models.Assignment) bool {
	return len(Detect(candidate, existing)) == 0
}

// Audit scans a complete schedule and returns every conflicting pair in schedule order.
func Audit(assignments []models.Assignment) []models.ScheduleConflict {
	var conflicts []models.ScheduleConflict
	for i := 1; i < len(assignments); i++ {
		conflicts = append(conflicts, Detect(assignments[i], assignments[:i])...)
	}
	return conflicts
}

// Schedule is the append-only list of committed assignments of one run.
// Per-resource indices keep conflict lookups proportional to a resource's own load.
type Schedule struct {
	assignments []models.Assignment
	byRoom      map[string][]int
	byFaculty   map[string][]int
	bySection   map[string][]int
}

// NewSchedule returns an empty schedule.
func NewSchedule() *Schedule {
	return &Schedule{
		byRoom:    make(map[string][]int),
		byFaculty: make(map[string][]int),
		bySection: make(map[string][]int),
	}
}

// Commit appends assignments to the schedule.
func (s *Schedule) Commit(assignments ...models.Assignment) {
	for _, a := range assignments {
		idx := len(s.assignments)
		s.assignments = append(s.assignments, a)
		s.byRoom[resourceKey(a.RoomID, a.DayPair)] = append(s.byRoom[resourceKey(a.RoomID, a.DayPair)], idx)
		s.byFaculty[resourceKey(a.FacultyID, a.DayPair)] = append(s.byFaculty[resourceKey(a.FacultyID, a.DayPair)], idx)
		s.bySection[resourceKey(a.SectionID, a.DayPair)] = append(s.bySection[resourceKey(a.SectionID, a.DayPair)], idx)
	}
}

// Len returns the number of committed assignments.
func (s *Schedule) Len() int { return len(s.assignments) }

// Assignments returns a copy of the committed assignments in commit order.
func (s *Schedule) Assignments() []models.Assignment {
	out := make([]models.Assignment, len(s.assignments))
	copy(out, s.assignments)
	return out
}

// Related returns the committed assignments in the candidate's day pair that share
// its room, faculty member or section, in commit order.
func (s *Schedule) Related(candidate models.Assignment) []models.Assignment {
	seen := make(map[int]struct{})
	var idxs []int
	for _, bucket := range [][]int{
		s.byRoom[resourceKey(candidate.RoomID, candidate.DayPair)],
		s.byFaculty[resourceKey(candidate.FacultyID, candidate.DayPair)],
		s.bySection[resourceKey(candidate.SectionID, candidate.DayPair)],
	} {
		for _, idx := range bucket {
			if _, ok := seen[idx]; ok {
				continue
			}
			seen[idx] = struct{}{}
			idxs = append(idxs, idx)
		}
	}
	sort.Ints(idxs)
	out := make([]models.Assignment, len(idxs))
	for i, idx := range idxs {
		out[i] = s.assignments[idx]
	}
	return out
}

func resourceKey(id string, pair models.DayPair) string {
	return id + "|" + string(pair)
}
