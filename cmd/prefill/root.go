package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"cstore-prefill/internal/common/config"
	"cstore-prefill/internal/common/logger"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

type globalFlags struct {
	configPath string
	output     string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "prefill",
		Short:         "Reconcile property, business and registry data for c-store intake",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flags.output != outputJSON && flags.output != outputYAML {
				return fmt.Errorf("unsupported output format %q (json or yaml)", flags.output)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default: configs/config.yaml)")
	root.PersistentFlags().StringVarP(&flags.output, "output", "o", outputJSON, "output format: json or yaml")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "log level written to stderr")

	root.AddCommand(
		newReconcileCommand(flags),
		newNormalizeCommand(flags),
		newEvaluateCommand(flags),
		newMigrateCommand(flags),
		newWorkersCommand(flags),
	)
	return root
}

func (f *globalFlags) loadConfig() (*config.Config, error) {
	if f.configPath != "" {
		return config.LoadFromFile(f.configPath)
	}
	return config.Load()
}

func (f *globalFlags) logger() logger.Logger {
	return logger.NewStructured(f.logLevel, "console", "stderr")
}

// render writes v in the selected format. YAML is produced from the JSON
// encoding so both formats share field names.
func render(w io.Writer, format string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	if format == outputYAML {
		if data, err = yaml.JSONToYAML(data); err != nil {
			return fmt.Errorf("encode yaml output: %w", err)
		}
	}
	if _, err = w.Write(data); err != nil {
		return err
	}
	if format == outputJSON {
		_, err = io.WriteString(w, "\n")
	}
	return err
}
