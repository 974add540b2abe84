package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"taxifleet/pkg/forms"
	"taxifleet/pkg/logger"
	"taxifleet/service"
)

// createDriverCmd bootstraps an account, since every page but login
// needs one.
func createDriverCmd() *cobra.Command {
	var form forms.DriverCreationForm

	cmd := &cobra.Command{
		Use:   "create-driver",
		Short: "Create a driver account",
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			cfg, log := setup()
			defer func() { _ = log.Sync() }()

			in, errs := form.Validate()
			if errs.Any() {
				return formError(errs)
			}

			stg, err := openStorage(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer stg.Close()

			d, err := service.New(stg, log).Driver().Create(ctx, in)
			if errors.Is(err, service.ErrDuplicate) {
				return fmt.Errorf("username or license number already taken: %w", err)
			}
			if err != nil {
				return err
			}

			log.Info("driver created", logger.Int64("id", d.ID), logger.String("username", d.Username))
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Username, "username", "", "login name")
	cmd.Flags().StringVar(&form.Password, "password", "", "password")
	cmd.Flags().StringVar(&form.LicenseNumber, "license", "", "license number, e.g. ABC12345")
	cmd.Flags().StringVar(&form.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&form.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&form.Email, "email", "", "email address")
	return cmd
}

func formError(errs forms.Errors) error {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("invalid driver:")
	for _, f := range fields {
		for _, msg := range errs[f] {
			fmt.Fprintf(&b, "\n  %s: %s", f, msg)
		}
	}
	return errors.New(b.String())
}
