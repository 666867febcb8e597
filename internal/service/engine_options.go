package service

import (
	"fmt"
	"time"

	"github.com/noah-isme/curriculum-scheduler/internal/models"
	"github.com/noah-isme/curriculum-scheduler/internal/scheduler"
	"github.com/noah-isme/curriculum-scheduler/pkg/config"
)

// EngineOptions converts the configured policy into engine options.
// Zero values fall back to the engine defaults.
func EngineOptions(cfg config.EngineConfig) (scheduler.Options, error) {
	opts := scheduler.DefaultOptions()

	if cfg.SectionMin > 0 {
		opts.Bounds.Min = cfg.SectionMin
	}
	if cfg.SectionMax > 0 {
		opts.Bounds.Max = cfg.SectionMax
	}
	if opts.Bounds.Min > opts.Bounds.Max {
		return scheduler.Options{}, fmt.Errorf("section bounds %d-%d are inverted", opts.Bounds.Min, opts.Bounds.Max)
	}

	if cfg.WindowStart != "" {
		start, err := models.ParseClock(cfg.WindowStart)
		if err != nil {
			return scheduler.Options{}, fmt.Errorf("window start: %w", err)
		}
		opts.Window.Start = start
	}
	if cfg.WindowEnd != "" {
		end, err := models.ParseClock(cfg.WindowEnd)
		if err != nil {
			return scheduler.Options{}, fmt.Errorf("window end: %w", err)
		}
		opts.Window.End = end
	}
	if opts.Window.End <= opts.Window.Start {
		return scheduler.Options{}, fmt.Errorf("window %s-%s is empty", opts.Window.Start, opts.Window.End)
	}

	if cfg.LectureSplitThreshold > 0 {
		opts.Sessions.LectureSplitThreshold = int(cfg.LectureSplitThreshold / time.Minute)
	}
	if cfg.LabSplitThreshold > 0 {
		opts.Sessions.LabSplitThreshold = int(cfg.LabSplitThreshold / time.Minute)
	}
	switch scheduler.SplitMode(cfg.SplitMode) {
	case "":
	case scheduler.SplitEven, scheduler.SplitLongFirst:
		opts.Sessions.Mode = scheduler.SplitMode(cfg.SplitMode)
	default:
		return scheduler.Options{}, fmt.Errorf("unknown split mode %q", cfg.SplitMode)
	}

	if cfg.FullTimeMinHours > 0 {
		opts.Load.FullTimeMinHours = cfg.FullTimeMinHours
	}
	if cfg.PartTimeMaxHours > 0 {
		opts.Load.PartTimeMaxHours = cfg.PartTimeMaxHours
	}
	opts.Load.EnforcePartTimeCap = cfg.EnforcePartTimeCap
	opts.RotatorSeed = cfg.RotatorSeed
	if cfg.MaxPairAttempts > 0 {
		opts.MaxPairAttempts = cfg.MaxPairAttempts
	}
	return opts, nil
}
