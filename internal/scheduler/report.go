package scheduler

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/noah-isme/curriculum-scheduler/internal/models"
)

// RoomUtilization summarises how much of a room's weekly availability is booked.
type RoomUtilization struct {
	RoomID           string          `json:"room_id" csv:"room_id"`
	RoomType         models.RoomType `json:"room_type" csv:"room_type"`
	Capacity         int             `json:"capacity" csv:"capacity"`
	Sessions         int             `json:"sessions" csv:"sessions"`
	MinutesUsed      int             `json:"minutes_used" csv:"minutes_used"`
	AvailableMinutes int             `json:"available_minutes" csv:"available_minutes"`
	SectionsServed   int             `json:"sections_served" csv:"sections_served"`
	DaysUsed         int             `json:"days_used" csv:"days_used"`
	UtilizationPct   float64         `json:"utilization_pct" csv:"utilization_pct"`
}

// FacultyLoad is one row of the faculty load table.
type FacultyLoad struct {
	FacultyID      string                `json:"faculty_id" csv:"faculty_id"`
	Name           string                `json:"name,omitempty" csv:"faculty_name"`
	EmploymentType models.EmploymentType `json:"employment_type,omitempty" csv:"employment_type"`
	Sessions       int                   `json:"sessions" csv:"sessions"`
	Hours          float64               `json:"hours" csv:"hours"`
}

// PairShare counts assignments per day pair.
// Placements counts component placements, so both days of a split component count once.
type PairShare struct {
	DayPair     models.DayPair `json:"day_pair"`
	Placements  int            `json:"placements"`
	Assignments int            `json:"assignments"`
}

// SectionTimetable is a section's week ordered by day and start time.
type SectionTimetable struct {
	SectionID string              `json:"section_id"`
	Sessions  []models.Assignment `json:"sessions"`
}

// ReportSummary holds the headline numbers of a run.
type ReportSummary struct {
	TotalAssignments  int     `json:"total_assignments"`
	Sections          int     `json:"sections"`
	RoomsUsed         int     `json:"rooms_used"`
	FacultyUsed       int     `json:"faculty_used"`
	Unscheduled       int     `json:"unscheduled"`
	LoadWarnings      int     `json:"load_warnings"`
	UtilizationMean   float64 `json:"utilization_mean"`
	UtilizationStdDev float64 `json:"utilization_stddev"`
}

// Report is the derived view of a schedule used by exports and the API.
type Report struct {
	Summary    ReportSummary      `json:"summary"`
	Rooms      []RoomUtilization  `json:"rooms"`
	Faculty    []FacultyLoad      `json:"faculty"`
	DayPairs   []PairShare        `json:"day_pairs"`
	Timetables []SectionTimetable `json:"timetables"`
}

// ReportInput carries what BuildReport needs. Rooms, Faculty and Sections may be
// empty, in which case they are derived from the assignments.
type ReportInput struct {
	Window       Window
	Rooms        []models.Room
	Faculty      []models.Faculty
	Sections     []models.Section
	Assignments  []models.Assignment
	Unscheduled  int
	LoadWarnings int
}

// BuildReport derives utilization, load and timetable views from a schedule.
func BuildReport(in ReportInput) Report {
	report := Report{
		Rooms:      roomUtilization(in),
		Faculty:    facultyLoads(in),
		DayPairs:   pairShares(in.Assignments),
		Timetables: timetables(in),
	}

	values := make([]float64, len(report.Rooms))
	for i, room := range report.Rooms {
		values[i] = room.UtilizationPct
		if room.Sessions > 0 {
			report.Summary.RoomsUsed++
		}
	}
	for _, member := range report.Faculty {
		if member.Sessions > 0 {
			report.Summary.FacultyUsed++
		}
	}
	switch {
	case len(values) == 1:
		report.Summary.UtilizationMean = values[0]
	case len(values) > 1:
		mean, std := stat.MeanStdDev(values, nil)
		report.Summary.UtilizationMean = round2(mean)
		report.Summary.UtilizationStdDev = round2(std)
	}
	report.Summary.TotalAssignments = len(in.Assignments)
	report.Summary.Sections = len(report.Timetables)
	report.Summary.Unscheduled = in.Unscheduled
	report.Summary.LoadWarnings = in.LoadWarnings
	return report
}

func roomUtilization(in ReportInput) []RoomUtilization {
	rooms := make([]models.Room, 0, len(in.Rooms))
	known := make(map[string]bool, len(in.Rooms))
	for _, room := range in.Rooms {
		known[room.ID] = true
		rooms = append(rooms, room)
	}
	for _, a := range in.Assignments {
		if !known[a.RoomID] {
			known[a.RoomID] = true
			rooms = append(rooms, models.Room{ID: a.RoomID})
		}
	}

	out := make([]RoomUtilization, 0, len(rooms))
	for _, room := range rooms {
		row := RoomUtilization{
			RoomID:           room.ID,
			RoomType:         room.Type,
			Capacity:         room.Capacity,
			AvailableMinutes: availableMinutes(room, in.Window),
		}
		sections := make(map[string]bool)
		days := make(map[models.Weekday]bool)
		for _, a := range in.Assignments {
			if a.RoomID != room.ID {
				continue
			}
			row.Sessions++
			row.MinutesUsed += a.Minutes()
			sections[a.SectionID] = true
			days[a.Day] = true
		}
		row.SectionsServed = len(sections)
		row.DaysUsed = len(days)
		if row.AvailableMinutes > 0 {
			row.UtilizationPct = round2(float64(row.MinutesUsed) / float64(row.AvailableMinutes) * 100)
		}
		out = append(out, row)
	}
	return out
}

// availableMinutes is the room's weekly bookable time inside the window.
func availableMinutes(room models.Room, window Window) int {
	opening, closing := window.Start, window.End
	if room.Opens > opening {
		opening = room.Opens
	}
	if room.Closes > 0 && room.Closes < closing {
		closing = room.Closes
	}
	if closing <= opening {
		return 0
	}
	days := 0
	for _, day := range models.TeachingDays {
		if room.Days.Contains(day) {
			days++
		}
	}
	return days * int(closing-opening)
}

func facultyLoads(in ReportInput) []FacultyLoad {
	roster := make([]models.Faculty, 0, len(in.Faculty))
	known := make(map[string]bool, len(in.Faculty))
	for _, member := range in.Faculty {
		known[member.ID] = true
		roster = append(roster, member)
	}
	for _, a := range in.Assignments {
		if !known[a.FacultyID] {
			known[a.FacultyID] = true
			roster = append(roster, models.Faculty{ID: a.FacultyID})
		}
	}

	out := make([]FacultyLoad, 0, len(roster))
	for _, member := range roster {
		row := FacultyLoad{FacultyID: member.ID, Name: member.Name, EmploymentType: member.EmploymentType}
		minutes := 0
		for _, a := range in.Assignments {
			if a.FacultyID == member.ID {
				row.Sessions++
				minutes += a.Minutes()
			}
		}
		row.Hours = models.MinutesToHours(minutes)
		out = append(out, row)
	}
	return out
}

func pairShares(assignments []models.Assignment) []PairShare {
	out := make([]PairShare, len(models.DayPairs))
	for i, pair := range models.DayPairs {
		out[i].DayPair = pair
		placed := make(map[string]bool)
		for _, a := range assignments {
			if a.DayPair != pair {
				continue
			}
			out[i].Assignments++
			key := a.SectionID + "|" + a.CourseCode + "|" + string(a.Component)
			if !placed[key] {
				placed[key] = true
				out[i].Placements++
			}
		}
	}
	return out
}

func timetables(in ReportInput) []SectionTimetable {
	ids := make([]string, 0, len(in.Sections))
	known := make(map[string]bool, len(in.Sections))
	for _, section := range in.Sections {
		known[section.ID] = true
		ids = append(ids, section.ID)
	}
	for _, a := range in.Assignments {
		if !known[a.SectionID] {
			known[a.SectionID] = true
			ids = append(ids, a.SectionID)
		}
	}

	out := make([]SectionTimetable, 0, len(ids))
	for _, id := range ids {
		out = append(out, SectionTimetable{SectionID: id, Sessions: TimetableFor(in.Assignments, id)})
	}
	return out
}

// TimetableFor returns one section's sessions ordered by day, start time and course.
func TimetableFor(assignments []models.Assignment, sectionID string) []models.Assignment {
	sessions := make([]models.Assignment, 0)
	for _, a := range assignments {
		if a.SectionID == sectionID {
			sessions = append(sessions, a)
		}
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		a, b := sessions[i], sessions[j]
		if a.Day.Index() != b.Day.Index() {
			return a.Day.Index() < b.Day.Index()
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		return a.CourseCode < b.CourseCode
	})
	return sessions
}

func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}
