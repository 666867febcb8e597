package models

import (
	"fmt"
	"strings"
)

// RoomType restricts which components a room can host.
type RoomType string

const (
	RoomTypeLecture RoomType = "LECTURE"
	RoomTypeLab     RoomType = "LAB"
	RoomTypeEither  RoomType = "EITHER"
)

// ParseRoomType accepts Lecture, Lab, Laboratory, Either or Both in any case.
func ParseRoomType(raw string) (RoomType, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "LECTURE":
		return RoomTypeLecture, nil
	case "LAB", "LABORATORY":
		return RoomTypeLab, nil
	case "EITHER", "BOTH", "ANY":
		return RoomTypeEither, nil
	default:
		return "", fmt.Errorf("unknown room type %q", raw)
	}
}

// UnmarshalText lets JSON payloads use the same lenient spellings as CSV files.
// Unknown values are kept upper-cased and left to validation.
func (t *RoomType) UnmarshalText(data []byte) error {
	parsed, err := ParseRoomType(string(data))
	if err != nil {
		*t = RoomType(strings.ToUpper(strings.TrimSpace(string(data))))
		return nil
	}
	*t = parsed
	return nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (t *RoomType) UnmarshalCSV(raw string) error {
	return t.UnmarshalText([]byte(raw))
}

// Hosts reports whether a room of this type can host the component.
func (t RoomType) Hosts(kind ComponentKind) bool {
	switch t {
	case RoomTypeEither:
		return true
	case RoomTypeLab:
		return kind == ComponentLab
	case RoomTypeLecture:
		return kind == ComponentLecture
	default:
		return false
	}
}

// Room is a schedulable space.
type Room struct {
	ID       string     `csv:"room_id" json:"id" validate:"required"`
	Capacity int        `csv:"capacity" json:"capacity" validate:"min=1"`
	Type     RoomType   `csv:"room_type" json:"type" validate:"oneof=LECTURE LAB EITHER"`
	Days     WeekdaySet `csv:"available_days" json:"available_days,omitempty"`
	Opens    Clock      `csv:"start_time" json:"opens,omitempty"`
	Closes   Clock      `csv:"end_time" json:"closes,omitempty"`
}

// AvailableAt reports whether the room is open for the whole interval on the day.
// Zero Opens/Closes mean the room follows the operating window.
func (r Room) AvailableAt(day Weekday, start, end Clock) bool {
	if !r.Days.Contains(day) {
		return false
	}
	if r.Opens > 0 && start < r.Opens {
		return false
	}
	if r.Closes > 0 && end > r.Closes {
		return false
	}
	return true
}
