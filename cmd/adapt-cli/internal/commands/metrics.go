package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/XiaoConstantine/adapt-go/cmd/adapt-cli/internal/display"
	"github.com/XiaoConstantine/adapt-go/pkg/config"
	"github.com/XiaoConstantine/adapt-go/pkg/core"
	"github.com/XiaoConstantine/adapt-go/pkg/errors"
	"github.com/XiaoConstantine/adapt-go/pkg/store"
)

func NewMetricsCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Summarize the persisted run history",
		Long: `Read the SQLite-backed performance journal configured under stores.persist
and print per-strategy totals and average efficiency across all recorded
runs.

Requires a config file with stores.persist enabled; without one there is no
history to read.`,
		Example: `  # Summarize history recorded by previous learn runs
  adapt-cli metrics --config adapt.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return errors.New(errors.ConfigurationError, "metrics requires --config with stores.persist enabled")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if !cfg.Stores.Persist {
				return errors.New(errors.ConfigurationError, "stores.persist is disabled; no run history to read")
			}

			journal, err := store.NewSQLite[*core.PerformanceRecord](
				cfg.Stores.Path, "performance_journal", 0)
			if err != nil {
				return err
			}
			defer journal.Close()

			fmt.Print(display.FormatHistory(cfg.Stores.Path, journal.Values()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")

	return cmd
}
