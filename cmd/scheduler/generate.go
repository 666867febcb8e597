package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/curriculum-scheduler/internal/csvio"
	"github.com/noah-isme/curriculum-scheduler/internal/scheduler"
	"github.com/noah-isme/curriculum-scheduler/pkg/export"
)

type generateOptions struct {
	input  inputFlags
	out    string
	format string
	verify bool
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run the scheduling engine and write the output tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, root, opts)
		},
	}
	opts.input.register(cmd)
	cmd.Flags().StringVarP(&opts.out, "out", "o", "schedule-out", "output directory")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "csv", "output format: csv, pdf or json")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "audit the result and fail on any conflict")
	return cmd
}

func runGenerate(cmd *cobra.Command, root *rootOptions, opts *generateOptions) error {
	cfg, logr, err := root.load()
	if err != nil {
		return err
	}
	defer logr.Sync() //nolint:errcheck

	in, engineOpts, err := opts.input.load(cfg)
	if err != nil {
		return err
	}

	result, runErr := scheduler.Run(in, engineOpts)
	if runErr != nil && !errors.Is(runErr, scheduler.ErrNoSections) {
		return runErr
	}
	for _, cfgErr := range result.ConfigErrors {
		logr.Warn("record skipped", zap.String("error", cfgErr.Error()))
	}
	if runErr != nil {
		return runErr
	}

	written, err := writeOutput(opts.out, opts.format, result)
	if err != nil {
		return err
	}
	for _, path := range written {
		logr.Info("wrote output", zap.String("path", path))
	}

	summary := result.Report.Summary
	fmt.Fprintf(cmd.OutOrStdout(), "term %s: %d sections, %d assignments, %d unscheduled, %d load warnings\n",
		result.Term, summary.Sections, summary.TotalAssignments, summary.Unscheduled, summary.LoadWarnings)

	if opts.verify {
		if conflicts := scheduler.Audit(result.Assignments); len(conflicts) > 0 {
			for _, c := range conflicts {
				logr.Error("conflict", zap.String("dimension", string(c.Dimension)), zap.String("resource", c.Resource),
					zap.String("first", c.First.SectionID+"/"+c.First.CourseCode), zap.String("second", c.Second.SectionID+"/"+c.Second.CourseCode))
			}
			return fmt.Errorf("verification found %d conflicts", len(conflicts))
		}
		fmt.Fprintln(cmd.OutOrStdout(), "verification passed: no conflicts")
	}
	return nil
}

func writeOutput(dir, format string, result *scheduler.Result) ([]string, error) {
	switch format {
	case "csv":
		return csvio.WriteResult(dir, result)
	case "json":
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
		payload, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode result: %w", err)
		}
		path := filepath.Join(dir, "schedule.json")
		if err := os.WriteFile(path, payload, 0o644); err != nil {
			return nil, err
		}
		return []string{path}, nil
	case "pdf":
		return writePDF(dir, result)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func writePDF(dir string, result *scheduler.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	tables := []struct {
		name  string
		title string
		rows  interface{}
	}{
		{"assignments.pdf", "Assignments " + result.Term, nonNil(result.Assignments)},
		{"unscheduled.pdf", "Unscheduled Courses " + result.Term, nonNil(result.Unscheduled)},
		{"load_warnings.pdf", "Faculty Load Warnings " + result.Term, nonNil(result.LoadWarnings)},
		{"utilization.pdf", "Room Utilization " + result.Term, nonNil(result.Report.Rooms)},
	}
	renderer := export.NewPDFExporter()
	paths := make([]string, 0, len(tables))
	for _, table := range tables {
		dataset, err := export.FromTable(table.title, table.rows)
		if err != nil {
			return paths, err
		}
		payload, err := renderer.Render(dataset)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, table.name)
		if err := os.WriteFile(path, payload, 0o644); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
