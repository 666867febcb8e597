package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Weekday names a teaching day.
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
)

// TeachingDays lists the days in calendar order.
var TeachingDays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

var weekdayAliases = map[string]Weekday{
	"MON": Monday, "MONDAY": Monday,
	"TUE": Tuesday, "TUES": Tuesday, "TUESDAY": Tuesday,
	"WED": Wednesday, "WEDNESDAY": Wednesday,
	"THU": Thursday, "THUR": Thursday, "THURS": Thursday, "THURSDAY": Thursday,
	"FRI": Friday, "FRIDAY": Friday,
	"SAT": Saturday, "SATURDAY": Saturday,
}

// ParseWeekday accepts full or abbreviated day names in any case.
func ParseWeekday(raw string) (Weekday, error) {
	day, ok := weekdayAliases[strings.ToUpper(strings.TrimSpace(raw))]
	if !ok {
		return "", fmt.Errorf("unknown weekday %q", raw)
	}
	return day, nil
}

// UnmarshalText accepts the same spellings as ParseWeekday. Unknown values are
// kept upper-cased so they fail availability checks instead of decoding.
func (d *Weekday) UnmarshalText(data []byte) error {
	parsed, err := ParseWeekday(string(data))
	if err != nil {
		*d = Weekday(strings.ToUpper(strings.TrimSpace(string(data))))
		return nil
	}
	*d = parsed
	return nil
}

// Index returns the position of the day in the teaching week, or -1.
func (d Weekday) Index() int {
	for i, day := range TeachingDays {
		if day == d {
			return i
		}
	}
	return -1
}

// WeekdaySet is an ordered set of days. An empty set means every day.
type WeekdaySet []Weekday

// ParseWeekdaySet parses "Monday,Tuesday" or ranges like "Mon-Fri".
func ParseWeekdaySet(raw string) (WeekdaySet, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	seen := make(map[Weekday]bool)
	for _, token := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ';' || r == '|' }) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if from, to, isRange := strings.Cut(token, "-"); isRange {
			start, err := ParseWeekday(from)
			if err != nil {
				return nil, err
			}
			end, err := ParseWeekday(to)
			if err != nil {
				return nil, err
			}
			if end.Index() < start.Index() {
				return nil, fmt.Errorf("invalid day range %q", token)
			}
			for _, day := range TeachingDays[start.Index() : end.Index()+1] {
				seen[day] = true
			}
			continue
		}
		day, err := ParseWeekday(token)
		if err != nil {
			return nil, err
		}
		seen[day] = true
	}
	set := make(WeekdaySet, 0, len(seen))
	for _, day := range TeachingDays {
		if seen[day] {
			set = append(set, day)
		}
	}
	return set, nil
}

// Contains reports whether the day is available. Empty sets contain every day.
func (s WeekdaySet) Contains(day Weekday) bool {
	if len(s) == 0 {
		return true
	}
	for _, d := range s {
		if d == day {
			return true
		}
	}
	return false
}

// String joins the days with commas.
func (s WeekdaySet) String() string {
	parts := make([]string, len(s))
	for i, day := range s {
		parts[i] = string(day)
	}
	return strings.Join(parts, ",")
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (s WeekdaySet) MarshalCSV() (string, error) { return s.String(), nil }

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (s *WeekdaySet) UnmarshalCSV(raw string) error {
	parsed, err := ParseWeekdaySet(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// DayPair is one of the three fixed weekly day combinations.
type DayPair string

const (
	PairMonThu DayPair = "MON-THU"
	PairTueFri DayPair = "TUE-FRI"
	PairWedSat DayPair = "WED-SAT"
)

// DayPairs is the rotation order.
var DayPairs = []DayPair{PairMonThu, PairTueFri, PairWedSat}

// Days returns the two days of the pair in calendar order.
func (p DayPair) Days() [2]Weekday {
	switch p {
	case PairMonThu:
		return [2]Weekday{Monday, Thursday}
	case PairTueFri:
		return [2]Weekday{Tuesday, Friday}
	case PairWedSat:
		return [2]Weekday{Wednesday, Saturday}
	default:
		return [2]Weekday{}
	}
}

// Valid reports whether p is a known pair.
func (p DayPair) Valid() bool {
	return p == PairMonThu || p == PairTueFri || p == PairWedSat
}

// PairOf returns the day pair containing the given day.
func PairOf(day Weekday) (DayPair, bool) {
	for _, pair := range DayPairs {
		days := pair.Days()
		if days[0] == day || days[1] == day {
			return pair, true
		}
	}
	return "", false
}

// Value implements driver.Valuer.
func (p DayPair) Value() (driver.Value, error) { return string(p), nil }
