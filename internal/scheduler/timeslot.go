package scheduler

import (
	"sort"

	"github.com/noah-isme/curriculum-scheduler/internal/models"
)

// Layout returns the session lengths, in minutes, for a component's weekly minutes.
// A split layout holds session i on day i of the chosen pair.
func (p SessionPolicy) Layout(kind models.ComponentKind, minutes int) []int {
	if minutes <= 0 {
		return nil
	}
	threshold := p.LectureSplitThreshold
	if kind == models.ComponentLab {
		threshold = p.LabSplitThreshold
	}
	if threshold <= 0 || minutes < threshold {
		return []int{minutes}
	}
	if half := minutes / 2; minutes%2 == 0 && half%SlotStep == 0 {
		return []int{half, half}
	}
	if p.Mode == SplitLongFirst {
		first := (minutes/2 + SlotStep - 1) / SlotStep * SlotStep
		if second := minutes - first; second > 0 {
			return []int{first, second}
		}
	}
	return []int{minutes}
}

// ComponentRequest asks for one component of one course-section.
// Pending holds sessions already planned for the same course-section but not yet committed.
type ComponentRequest struct {
	Course  models.Course
	Section models.Section
	Kind    models.ComponentKind
	Pending []models.Assignment
}

// Placement is the outcome of one allocation.
type Placement struct {
	Sessions []models.Assignment
	Attempts int
	Reason   models.PlacementReason
}

// OK reports whether the component was placed.
func (p Placement) OK() bool { return p.Reason == "" }

// TimeSlotAllocator searches start times, rooms and faculty for one component at a time.
type TimeSlotAllocator struct {
	window     Window
	policy     SessionPolicy
	attempts   int
	enforceCap bool
	rooms      []models.Room
	faculty    []models.Faculty
}

// NewTimeSlotAllocator prepares the room and faculty candidate lists.
func NewTimeSlotAllocator(opts Options, rooms []models.Room, faculty []models.Faculty) *TimeSlotAllocator {
	opts = opts.withDefaults()
	sorted := make([]models.Room, len(rooms))
	copy(sorted, rooms)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Capacity != sorted[j].Capacity {
			return sorted[i].Capacity < sorted[j].Capacity
		}
		return sorted[i].ID < sorted[j].ID
	})
	roster := make([]models.Faculty, len(faculty))
	copy(roster, faculty)
	return &TimeSlotAllocator{
		window:     opts.Window,
		policy:     opts.Sessions,
		attempts:   opts.MaxPairAttempts,
		enforceCap: opts.Load.EnforcePartTimeCap,
		rooms:      sorted,
		faculty:    roster,
	}
}

// searchTally remembers what blocked the search across every start time tried.
type searchTally struct {
	roomFree           bool
	roomAndFacultyFree bool
}

func (t searchTally) reason() models.PlacementReason {
	switch {
	case !t.roomFree:
		return models.ReasonRoomExhaustion
	case !t.roomAndFacultyFree:
		return models.ReasonFacultyExhaustion
	default:
		return models.ReasonTimeWindowExhaustion
	}
}

// Allocate places the requested component, asking the rotator for a new day pair
// each time the current one is exhausted.
func (a *TimeSlotAllocator) Allocate(req ComponentRequest, schedule *Schedule, rotator *DayPairRotator, load *FacultyLoadTracker) Placement {
	minutes := req.Course.WeeklyMinutes(req.Kind)
	layout := a.policy.Layout(req.Kind, minutes)
	if len(layout) == 0 || !a.window.Fits(a.window.Start, a.window.Start.Add(longest(layout))) {
		return Placement{Reason: models.ReasonTimeWindowExhaustion}
	}
	rooms := a.EligibleRooms(req.Kind, req.Section.Size)
	if len(rooms) == 0 {
		return Placement{Reason: models.ReasonRoomExhaustion}
	}
	qualified := a.QualifiedFaculty(req.Course.Code)
	if len(qualified) == 0 {
		return Placement{Reason: models.ReasonFacultyExhaustion}
	}

	var candidates []models.Faculty
	for _, member := range load.Ordered(qualified) {
		if a.enforceCap && load.WouldExceed(member, minutes+pendingMinutes(req.Pending, member.ID)) {
			continue
		}
		candidates = append(candidates, member)
	}
	if len(candidates) == 0 {
		return Placement{Reason: models.ReasonFacultyExhaustion}
	}

	var tally searchTally
	for attempt := 1; attempt <= a.attempts; attempt++ {
		round := rotator.Round()
		pair := rotator.Next()
		days := sessionDays(pair, len(layout), round)
		if sessions, ok := a.searchPair(req, pair, days, layout, rooms, candidates, schedule, &tally); ok {
			return Placement{Sessions: sessions, Attempts: attempt}
		}
	}
	return Placement{Attempts: a.attempts, Reason: tally.reason()}
}

func (a *TimeSlotAllocator) searchPair(req ComponentRequest, pair models.DayPair, days []models.Weekday, layout []int, rooms []models.Room, faculty []models.Faculty, schedule *Schedule, tally *searchTally) ([]models.Assignment, bool) {
	span := longest(layout)
	for start := a.window.Start; a.window.Fits(start, start.Add(span)); start = start.Add(SlotStep) {
	rooms:
		for _, room := range rooms {
			if !roomOpen(room, days, layout, start) {
				continue
			}
			for _, member := range faculty {
				candidate := buildSessions(req, pair, days, start, layout, room.ID, member.ID)
				conflicts := detectAll(candidate, schedule, req.Pending)
				if len(conflicts) == 0 {
					return candidate, true
				}
				dims := dimensionsOf(conflicts)
				if dims[models.ConflictRoom] {
					continue rooms
				}
				tally.roomFree = true
				if !dims[models.ConflictFaculty] {
					// Room and faculty are free, so only the section itself is busy at this start.
					tally.roomAndFacultyFree = true
					break rooms
				}
			}
		}
	}
	return nil, false
}

// EligibleRooms returns rooms hosting the component with enough seats, smallest first.
func (a *TimeSlotAllocator) EligibleRooms(kind models.ComponentKind, size int) []models.Room {
	var out []models.Room
	for _, room := range a.rooms {
		if room.Type.Hosts(kind) && room.Capacity >= size {
			out = append(out, room)
		}
	}
	return out
}

// QualifiedFaculty returns roster members qualified for the course, in roster order.
func (a *TimeSlotAllocator) QualifiedFaculty(courseCode string) []models.Faculty {
	var out []models.Faculty
	for _, member := range a.faculty {
		if member.QualifiedFor(courseCode) {
			out = append(out, member)
		}
	}
	return out
}

// sessionDays picks the day of each session. Single sessions alternate between the
// first and second day of the pair on every other rotation round.
func sessionDays(pair models.DayPair, sessions, round int) []models.Weekday {
	days := pair.Days()
	if sessions == 1 {
		return []models.Weekday{days[((round%2)+2)%2]}
	}
	return days[:]
}

func buildSessions(req ComponentRequest, pair models.DayPair, days []models.Weekday, start models.Clock, layout []int, roomID, facultyID string) []models.Assignment {
	sessions := make([]models.Assignment, len(layout))
	for i, length := range layout {
		sessions[i] = models.Assignment{
			SectionID:  req.Section.ID,
			CourseCode: req.Course.Code,
			RoomID:     roomID,
			FacultyID:  facultyID,
			DayPair:    pair,
			StartTime:  start,
			EndTime:    start.Add(length),
			Component:  req.Kind,
			Day:        days[i],
		}
	}
	return sessions
}

func detectAll(candidate []models.Assignment, schedule *Schedule, pending []models.Assignment) []models.ScheduleConflict {
	var conflicts []models.ScheduleConflict
	for _, session := range candidate {
		existing := append(schedule.Related(session), pending...)
		conflicts = append(conflicts, Detect(session, existing)...)
	}
	return conflicts
}

func dimensionsOf(conflicts []models.ScheduleConflict) map[models.ConflictDimension]bool {
	dims := make(map[models.ConflictDimension]bool, 3)
	for _, c := range conflicts {
		dims[c.Dimension] = true
	}
	return dims
}

func roomOpen(room models.Room, days []models.Weekday, layout []int, start models.Clock) bool {
	for i, length := range layout {
		if !room.AvailableAt(days[i], start, start.Add(length)) {
			return false
		}
	}
	return true
}

func pendingMinutes(pending []models.Assignment, facultyID string) int {
	total := 0
	for _, a := range pending {
		if a.FacultyID == facultyID {
			total += a.Minutes()
		}
	}
	return total
}

func longest(layout []int) int {
	span := 0
	for _, length := range layout {
		if length > span {
			span = length
		}
	}
	return span
}
