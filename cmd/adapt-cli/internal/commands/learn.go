package commands

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/XiaoConstantine/adapt-go/cmd/adapt-cli/internal/display"
	"github.com/XiaoConstantine/adapt-go/pkg/config"
	"github.com/XiaoConstantine/adapt-go/pkg/core"
	"github.com/XiaoConstantine/adapt-go/pkg/datasets"
	"github.com/XiaoConstantine/adapt-go/pkg/engine"
	"github.com/XiaoConstantine/adapt-go/pkg/logging"
	"github.com/XiaoConstantine/adapt-go/pkg/store"

	// Register the built-in learning modes.
	_ "github.com/XiaoConstantine/adapt-go/pkg/modes"
)

func NewLearnCommand() *cobra.Command {
	var (
		configPath string
		seed       int64
		threshold  float64
	)

	cmd := &cobra.Command{
		Use:   "learn <mode> <dataset>",
		Short: "Run one learning pass over an experience batch",
		Long: `Load an experience batch from a JSON or Parquet file, run the named
learning mode's full pipeline over it, and print the run's confidence,
insights, and store totals.

With --config the run picks up store bounds, per-mode overrides, and the
optional SQLite run history from a YAML file.`,
		Example: `  # Run active learning over a recorded batch
  adapt-cli learn active_learning samples/mixed_pool.json

  # Reproducible run with a fixed seed
  adapt-cli learn online_learning stream.parquet --seed 42

  # Use a config file with a persistent run history
  adapt-cli learn adaptive_learning batch.json --config adapt.yaml`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return modeNames(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveDefault
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, datasetPath := args[0], args[1]

			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if err := setupLogging(cfg); err != nil {
				return err
			}

			if cfg.Datasets.Dir != "" && !filepath.IsAbs(datasetPath) {
				datasetPath = filepath.Join(cfg.Datasets.Dir, datasetPath)
			}
			experiences, err := datasets.LoadExperiences(datasetPath)
			if err != nil {
				return err
			}

			spec, err := core.GetModeRegistry().Create(mode)
			if err != nil {
				fmt.Println("Available modes:")
				for _, name := range modeNames() {
					fmt.Printf("  - %s\n", name)
				}
				return err
			}

			opts := []engine.EngineOption{
				engine.WithTaskCapacity(cfg.Stores.TaskCapacity),
				engine.WithEventCapacity(cfg.Stores.EventCapacity),
				engine.WithPerformanceCapacity(cfg.Stores.PerformanceCapacity),
				engine.WithRetention(cfg.Stores.Retention.Std()),
			}

			if mc, ok := cfg.Modes[mode]; ok {
				if mc.EventThreshold != nil {
					opts = append(opts, engine.WithEventThreshold(*mc.EventThreshold))
				}
				if mc.Seed != nil {
					opts = append(opts, engine.WithRandSource(core.NewSeededRandSource(*mc.Seed)))
				}
			}
			// Flags win over config.
			if cmd.Flags().Changed("seed") {
				opts = append(opts, engine.WithRandSource(core.NewSeededRandSource(seed)))
			}
			if cmd.Flags().Changed("threshold") {
				opts = append(opts, engine.WithEventThreshold(threshold))
			}

			if cfg.Stores.Persist {
				journal, err := store.NewSQLite[*core.PerformanceRecord](
					cfg.Stores.Path, "performance_journal", 0)
				if err != nil {
					return err
				}
				defer journal.Close()
				opts = append(opts, engine.WithJournal(journal))
			}

			e := engine.New(spec, opts...)
			result, err := e.Learn(cmd.Context(), experiences)
			if err != nil {
				return err
			}

			fmt.Print(display.FormatResult(mode, len(experiences), result, e.PerformanceMetrics()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().Int64Var(&seed, "seed", 0, "fix the random source for a reproducible run")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "override the mode's event threshold")

	return cmd
}

// modeNames lists the registered modes in sorted order.
func modeNames() []string {
	names := core.GetModeRegistry().List()
	sort.Strings(names)
	return names
}

// setupLogging replaces the default logger per the config's level and
// optional log file.
func setupLogging(cfg *config.Config) error {
	outputs := []logging.Output{logging.NewConsoleOutput(true)}
	if cfg.Logging.File != "" {
		fileOut, err := logging.NewFileOutput(cfg.Logging.File)
		if err != nil {
			return err
		}
		outputs = append(outputs, fileOut)
	}
	logging.SetLogger(logging.NewLogger(logging.Config{
		Severity: logging.ParseSeverity(cfg.Logging.Level),
		Outputs:  outputs,
	}))
	return nil
}
