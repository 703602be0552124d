package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cstore-prefill/internal/registry"
)

type migrationStatus struct {
	Version uint `json:"version"`
	Dirty   bool `json:"dirty"`
}

func newMigrateCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the registry store schema",
	}

	databaseURL := func() (string, error) {
		cfg, err := flags.loadConfig()
		if err != nil {
			return "", err
		}
		if !cfg.Database.Registry.Configured() {
			return "", errors.New("database.registry is not configured")
		}
		return cfg.Database.Registry.MigrationURL(), nil
	}

	status := func(cmd *cobra.Command, url string) error {
		version, dirty, err := registry.SchemaVersion(url)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), flags.output, migrationStatus{Version: version, Dirty: dirty})
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Create or upgrade the license and corporate registry tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := databaseURL()
			if err != nil {
				return err
			}
			if err := registry.MigrateUp(url); err != nil {
				return err
			}
			return status(cmd, url)
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll the registry schema back",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := databaseURL()
			if err != nil {
				return err
			}
			if err := registry.MigrateDown(url, steps); err != nil {
				return fmt.Errorf("migrate down: %w", err)
			}
			return status(cmd, url)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := databaseURL()
			if err != nil {
				return err
			}
			return status(cmd, url)
		},
	})

	return cmd
}
