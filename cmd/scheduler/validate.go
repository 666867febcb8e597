package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/curriculum-scheduler/internal/csvio"
	"github.com/noah-isme/curriculum-scheduler/internal/scheduler"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	input := &inputFlags{}
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load and validate a snapshot without scheduling it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logr, err := root.load()
			if err != nil {
				return err
			}
			defer logr.Sync() //nolint:errcheck

			in, opts, err := input.load(cfg)
			if err != nil {
				return err
			}
			snap, cfgErrs, err := scheduler.Prepare(in, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "term %s: %d courses, %d rooms, %d faculty, %d enrollment records\n",
				snap.Term, len(snap.Courses), len(snap.Rooms), len(snap.Faculty), len(snap.Enrollments))
			if len(cfgErrs) == 0 {
				fmt.Fprintln(out, "no configuration errors")
				return nil
			}
			if err := csvio.WriteConfigErrors(out, cfgErrs); err != nil {
				return err
			}
			if strict {
				return fmt.Errorf("%d configuration errors", len(cfgErrs))
			}
			return nil
		},
	}
	input.register(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any record is rejected")
	return cmd
}
