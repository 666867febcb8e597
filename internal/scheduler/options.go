package scheduler

import "github.com/noah-isme/curriculum-scheduler/internal/models"

// SlotStep is the granularity of start times and session lengths, in minutes.
const SlotStep = 30

// DefaultMaxPairAttempts bounds how many day pairs are tried per component.
const DefaultMaxPairAttempts = 3

// SectionBounds limits section sizes.
type SectionBounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Window is the daily operating window. Sessions start at or after Start and end before End.
type Window struct {
	Start models.Clock `json:"start"`
	End   models.Clock `json:"end"`
}

// Fits reports whether [start,end) lies inside the window.
func (w Window) Fits(start, end models.Clock) bool {
	return start >= w.Start && end < w.End && end > start
}

// Minutes returns the usable length of the window.
func (w Window) Minutes() int {
	return int(w.End - w.Start)
}

// SplitMode decides what happens when a split would not align to SlotStep.
type SplitMode string

const (
	// SplitEven falls back to a single session when halves are misaligned.
	SplitEven SplitMode = "even"
	// SplitLongFirst rounds the first session up to the slot step and gives the remainder to the second.
	SplitLongFirst SplitMode = "long-first"
)

// SessionPolicy controls how weekly minutes become sessions.
type SessionPolicy struct {
	LectureSplitThreshold int       `json:"lecture_split_threshold"`
	LabSplitThreshold     int       `json:"lab_split_threshold"`
	Mode                  SplitMode `json:"mode"`
}

// LoadPolicy holds the employment-type bounds.
type LoadPolicy struct {
	FullTimeMinHours   float64 `json:"full_time_min_hours"`
	PartTimeMaxHours   float64 `json:"part_time_max_hours"`
	EnforcePartTimeCap bool    `json:"enforce_part_time_cap"`
}

// Options configures one scheduling run.
type Options struct {
	Term            string        `json:"term,omitempty"`
	Bounds          SectionBounds `json:"bounds"`
	Window          Window        `json:"window"`
	Sessions        SessionPolicy `json:"sessions"`
	Load            LoadPolicy    `json:"load"`
	RotatorSeed     int           `json:"rotator_seed"`
	MaxPairAttempts int           `json:"max_pair_attempts"`
}

// DefaultOptions returns the standard academic policy.
func DefaultOptions() Options {
	return Options{
		Bounds: SectionBounds{Min: 12, Max: 40},
		Window: Window{Start: models.NewClock(7, 0), End: models.NewClock(21, 0)},
		Sessions: SessionPolicy{
			LectureSplitThreshold: 180,
			LabSplitThreshold:     180,
			Mode:                  SplitEven,
		},
		Load: LoadPolicy{
			FullTimeMinHours: 24,
			PartTimeMaxHours: 18,
		},
		MaxPairAttempts: DefaultMaxPairAttempts,
	}
}

// withDefaults fills zero values from DefaultOptions.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Bounds.Min <= 0 {
		o.Bounds.Min = def.Bounds.Min
	}
	if o.Bounds.Max <= 0 {
		o.Bounds.Max = def.Bounds.Max
	}
	if o.Window.End <= o.Window.Start {
		o.Window = def.Window
	}
	if o.Sessions.LectureSplitThreshold == 0 {
		o.Sessions.LectureSplitThreshold = def.Sessions.LectureSplitThreshold
	}
	if o.Sessions.LabSplitThreshold == 0 {
		o.Sessions.LabSplitThreshold = def.Sessions.LabSplitThreshold
	}
	if o.Sessions.Mode == "" {
		o.Sessions.Mode = def.Sessions.Mode
	}
	if o.Load.FullTimeMinHours <= 0 {
		o.Load.FullTimeMinHours = def.Load.FullTimeMinHours
	}
	if o.Load.PartTimeMaxHours <= 0 {
		o.Load.PartTimeMaxHours = def.Load.PartTimeMaxHours
	}
	if o.MaxPairAttempts <= 0 || o.MaxPairAttempts > len(models.DayPairs) {
		o.MaxPairAttempts = def.MaxPairAttempts
	}
	return o
}
