package scheduler

import (
	"sort"

	"github.com/noah-isme/curriculum-scheduler/internal/models"
)

// FacultyLoadTracker accumulates committed teaching minutes per faculty member.
type FacultyLoadTracker struct {
	policy    LoadPolicy
	roster    []models.Faculty
	position  map[string]int
	minutes   map[string]int
	sessions  map[string]int
	overloads []models.LoadViolation
	flagged   map[string]bool
}

// NewFacultyLoadTracker builds a tracker for the given roster.
func NewFacultyLoadTracker(policy LoadPolicy, roster []models.Faculty) *FacultyLoadTracker {
	t := &FacultyLoadTracker{
		policy:   policy,
		position: make(map[string]int),
		minutes:  make(map[string]int),
		sessions: make(map[string]int),
		flagged:  make(map[string]bool),
	}
	t.Register(roster...)
	return t
}

// Register appends faculty to the roster. Known ids are ignored.
func (t *FacultyLoadTracker) Register(roster ...models.Faculty) {
	for _, f := range roster {
		if _, ok := t.position[f.ID]; ok {
			continue
		}
		t.position[f.ID] = len(t.roster)
		t.roster = append(t.roster, f)
	}
}

// Commit adds a committed session to its faculty member's load.
func (t *FacultyLoadTracker) Commit(a models.Assignment) {
	t.minutes[a.FacultyID] += a.Minutes()
	t.sessions[a.FacultyID]++

	pos, ok := t.position[a.FacultyID]
	if !ok || t.flagged[a.FacultyID] {
		return
	}
	member := t.roster[pos]
	if member.EmploymentType == models.EmploymentPartTime && t.Hours(a.FacultyID) > t.policy.PartTimeMaxHours {
		t.flagged[a.FacultyID] = true
		t.overloads = append(t.overloads, t.violation(member, models.LoadOverload))
	}
}

// Minutes returns committed minutes for a faculty id.
func (t *FacultyLoadTracker) Minutes(id string) int { return t.minutes[id] }

// Hours returns committed hours for a faculty id.
func (t *FacultyLoadTracker) Hours(id string) float64 {
	return models.MinutesToHours(t.minutes[id])
}

// Sessions returns the number of committed sessions for a faculty id.
func (t *FacultyLoadTracker) Sessions(id string) int { return t.sessions[id] }

// WouldExceed reports whether adding extra minutes pushes a part-time member past the cap.
func (t *FacultyLoadTracker) WouldExceed(f models.Faculty, extra int) bool {
	if f.EmploymentType != models.EmploymentPartTime {
		return false
	}
	return models.MinutesToHours(t.minutes[f.ID]+extra) > t.policy.PartTimeMaxHours
}

// Ordered returns the candidates sorted by committed load, ties kept in input order.
func (t *FacultyLoadTracker) Ordered(candidates []models.Faculty) []models.Faculty {
	out := make([]models.Faculty, len(candidates))
	copy(out, candidates)
	sort.SliceStable(out, func(i, j int) bool {
		return t.minutes[out[i].ID] < t.minutes[out[j].ID]
	})
	return out
}

// Overloads returns the overloads recorded as they happened, in commit order.
func (t *FacultyLoadTracker) Overloads() []models.LoadViolation {
	out := make([]models.LoadViolation, len(t.overloads))
	copy(out, t.overloads)
	return out
}

// Warnings evaluates every bound against the final loads, in roster order.
func (t *FacultyLoadTracker) Warnings() []models.LoadViolation {
	var warnings []models.LoadViolation
	for _, member := range t.roster {
		hours := t.Hours(member.ID)
		switch member.EmploymentType {
		case models.EmploymentFullTime:
			if hours < t.policy.FullTimeMinHours {
				warnings = append(warnings, t.violation(member, models.LoadUnderload))
			}
		case models.EmploymentPartTime:
			if hours > t.policy.PartTimeMaxHours {
				warnings = append(warnings, t.violation(member, models.LoadOverload))
			}
		}
	}
	return warnings
}

func (t *FacultyLoadTracker) violation(member models.Faculty, kind models.LoadViolationKind) models.LoadViolation {
	bound := t.policy.FullTimeMinHours
	if kind == models.LoadOverload {
		bound = t.policy.PartTimeMaxHours
	}
	return models.LoadViolation{
		FacultyID:      member.ID,
		AssignedHours:  t.Hours(member.ID),
		ViolationKind:  kind,
		EmploymentType: member.EmploymentType,
		BoundHours:     bound,
	}
}
