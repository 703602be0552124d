package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"cstore-prefill/internal/reconcile"
)

func newEvaluateCommand(flags *globalFlags) *cobra.Command {
	var (
		file           string
		mapsKey        string
		minMatchLength int
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Fuse captured source records without calling any provider",
		Long: `Evaluate reads the output of "prefill reconcile --capture" (or any JSON
document with address, parcel, place and registry keys) and prints the
form data, validation verdict and ownership verdict derived from it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			var captured reconcile.Captured
			if err := json.NewDecoder(r).Decode(&captured); err != nil {
				return fmt.Errorf("decode captured records: %w", err)
			}

			result := reconcile.Assemble(captured, reconcile.Options{
				MapsAPIKey:     mapsKey,
				MinMatchLength: minMatchLength,
			})
			return render(cmd.OutOrStdout(), flags.output, result)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "captured records file, - for stdin")
	cmd.Flags().StringVar(&mapsKey, "maps-key", os.Getenv("GOOGLE_MAPS_API_KEY"), "key embedded in the street-view URL")
	cmd.Flags().IntVar(&minMatchLength, "min-match-length", 0, "shortest name allowed to match by containment")
	return cmd
}
