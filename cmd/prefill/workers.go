package main

import (
	"github.com/spf13/cobra"

	"cstore-prefill/internal/workers/prefill"
)

func newWorkersCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "workers",
		Short: "List the Zeebe job types this service handles and their settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), flags.output, prefill.Catalog(cfg))
		},
	}
}
