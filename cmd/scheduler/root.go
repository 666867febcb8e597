package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/curriculum-scheduler/internal/csvio"
	"github.com/noah-isme/curriculum-scheduler/internal/scheduler"
	"github.com/noah-isme/curriculum-scheduler/internal/service"
	"github.com/noah-isme/curriculum-scheduler/pkg/config"
	"github.com/noah-isme/curriculum-scheduler/pkg/logger"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

// inputFlags are shared by the commands that read a snapshot from CSV files.
type inputFlags struct {
	paths     csvio.Paths
	delimiter string
	term      string
	seed      int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "scheduler",
		Short:         "Generate conflict-free course schedules from CSV snapshots",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", ".env", "env file with the scheduling policy")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level")

	cmd.AddCommand(newGenerateCmd(opts), newValidateCmd(opts), newTokenCmd(opts))
	return cmd
}

func (o *rootOptions) load() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadFrom(o.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logr, err := logger.NewCLI(o.logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logr, nil
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.paths.Courses, "courses", "", "course catalog CSV")
	cmd.Flags().StringVar(&f.paths.Rooms, "rooms", "", "room inventory CSV")
	cmd.Flags().StringVar(&f.paths.Faculty, "faculty", "", "faculty roster CSV")
	cmd.Flags().StringVar(&f.paths.Enrollments, "enrollments", "", "enrollment counts CSV")
	cmd.Flags().StringVar(&f.delimiter, "delimiter", ",", "CSV field delimiter")
	cmd.Flags().StringVar(&f.term, "term", "", "only schedule this term")
	cmd.Flags().IntVar(&f.seed, "seed", -1, "day-pair rotator seed (overrides ROTATOR_SEED)")
	for _, name := range []string{"courses", "rooms", "faculty", "enrollments"} {
		_ = cmd.MarkFlagRequired(name)
	}
}

func (f *inputFlags) load(cfg *config.Config) (scheduler.Input, scheduler.Options, error) {
	opts, err := service.EngineOptions(cfg.Engine)
	if err != nil {
		return scheduler.Input{}, scheduler.Options{}, fmt.Errorf("engine policy: %w", err)
	}
	if f.term != "" {
		opts.Term = f.term
	}
	if f.seed >= 0 {
		opts.RotatorSeed = f.seed
	}

	var comma rune
	if runes := []rune(f.delimiter); len(runes) == 1 {
		comma = runes[0]
	} else if f.delimiter != "" {
		return scheduler.Input{}, scheduler.Options{}, fmt.Errorf("delimiter must be a single character, got %q", f.delimiter)
	}
	in, err := csvio.NewReader(comma).LoadInput(f.paths)
	if err != nil {
		return scheduler.Input{}, scheduler.Options{}, err
	}
	return in, opts, nil
}
