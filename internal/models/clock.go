package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

// Clock is a time of day expressed in minutes since midnight.
type Clock int

// NewClock builds a Clock from hour and minute parts.
func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ParseClock accepts HH:MM or H:MM.
func ParseClock(raw string) (Clock, error) {
	raw = strings.TrimSpace(raw)
	parts := strings.Split(raw, ":")
	if len(parts) == 3 && parts[2] == "00" {
		parts = parts[:2]
	}
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock %q", raw)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock hour %q", raw)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock minute %q", raw)
	}
	if hour < 0 || hour > 24 || minute < 0 || minute > 59 || (hour == 24 && minute != 0) {
		return 0, fmt.Errorf("clock %q out of range", raw)
	}
	return NewClock(hour, minute), nil
}

// Hour returns the hour component.
func (c Clock) Hour() int { return int(c) / 60 }

// Minute returns the minute component.
func (c Clock) Minute() int { return int(c) % 60 }

// Add shifts the clock by the given number of minutes.
func (c Clock) Add(minutes int) Clock { return c + Clock(minutes) }

// String renders HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// MarshalText implements encoding.TextMarshaler.
func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Clock) UnmarshalText(data []byte) error {
	parsed, err := ParseClock(string(data))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalCSV renders the clock for gocsv.
func (c Clock) MarshalCSV() (string, error) {
	return c.String(), nil
}

// UnmarshalCSV parses the clock for gocsv. Empty cells leave the zero value.
func (c *Clock) UnmarshalCSV(raw string) error {
	if strings.TrimSpace(raw) == "" {
		*c = 0
		return nil
	}
	return c.UnmarshalText([]byte(raw))
}

// Value stores the clock as HH:MM text.
func (c Clock) Value() (driver.Value, error) {
	return c.String(), nil
}

// Scan reads HH:MM text columns.
func (c *Clock) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*c = 0
		return nil
	case string:
		return c.UnmarshalText([]byte(v))
	case []byte:
		return c.UnmarshalText(v)
	default:
		return fmt.Errorf("unsupported type %T for Clock", value)
	}
}
