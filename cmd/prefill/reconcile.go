package main

import (
	"github.com/spf13/cobra"

	"cstore-prefill/internal/bootstrap"
)

func newReconcileCommand(flags *globalFlags) *cobra.Command {
	var capture bool

	cmd := &cobra.Command{
		Use:   "reconcile <address>",
		Short: "Fetch and fuse parcel, place and registry data for an address",
		Long: `Reconcile queries the parcel provider, the places provider and the
registry store for one street address and prints the fused result.

With --capture the raw source records are printed instead; feed them to
"prefill evaluate --file" to replay the fusion offline.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			engine, err := bootstrap.NewEngine(cmd.Context(), cfg, nil, flags.logger())
			if err != nil {
				return err
			}
			defer engine.Close()

			if capture {
				captured, err := engine.Service.Collect(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), flags.output, captured)
			}

			result, err := engine.Service.Reconcile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), flags.output, result)
		},
	}

	cmd.Flags().BoolVar(&capture, "capture", false, "print raw source records instead of the fused result")
	return cmd
}
