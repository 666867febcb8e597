package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/curriculum-scheduler/internal/dto"
	"github.com/noah-isme/curriculum-scheduler/internal/models"
	"github.com/noah-isme/curriculum-scheduler/internal/service"
)

func newTokenCmd(root *rootOptions) *cobra.Command {
	var (
		subject string
		role    string
		name    string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logr, err := root.load()
			if err != nil {
				return err
			}
			defer logr.Sync() //nolint:errcheck

			expiry := cfg.JWT.Expiration
			if ttl > 0 {
				expiry = ttl
			}
			tokens := service.NewTokenService(nil, logr, service.TokenConfig{
				Secret: cfg.JWT.Secret,
				Issuer: cfg.JWT.Issuer,
				Expiry: expiry,
			})
			issued, err := tokens.Issue(dto.IssueTokenRequest{
				Subject: subject,
				Role:    models.UserRole(strings.ToUpper(role)),
				Name:    name,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), issued.AccessToken)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "token subject (user or service id)")
	cmd.Flags().StringVar(&role, "role", string(models.RoleRegistrar), "ADMIN, REGISTRAR or VIEWER")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to JWT_EXPIRATION)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
