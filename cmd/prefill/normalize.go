package main

import (
	"strings"

	"github.com/spf13/cobra"

	"cstore-prefill/internal/normalize"
)

type addressNormalization struct {
	Input    string   `json:"input"`
	Tokens   []string `json:"tokens"`
	Patterns []string `json:"patterns"`
}

type businessNormalization struct {
	Input      string   `json:"input"`
	Normalized string   `json:"normalized"`
	Patterns   []string `json:"patterns"`
}

func newNormalizeCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Show how addresses and business names are normalized for registry search",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "address <text>",
		Short: "Tokenize an address and print its registry search patterns",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")
			return render(cmd.OutOrStdout(), flags.output, addressNormalization{
				Input:    input,
				Tokens:   nonNil(normalize.Tokens(input)),
				Patterns: nonNil(normalize.AddressPatterns(input)),
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "business <text>",
		Short: "Normalize a business name and print its registry search patterns",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")
			return render(cmd.OutOrStdout(), flags.output, businessNormalization{
				Input:      input,
				Normalized: normalize.BusinessName(input),
				Patterns:   nonNil(normalize.BusinessPatterns(input)),
			})
		},
	})

	return cmd
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
