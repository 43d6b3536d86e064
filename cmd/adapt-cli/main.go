package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/XiaoConstantine/adapt-go/cmd/adapt-cli/internal/commands"
)

var rootCmd = &cobra.Command{
	Use:   "adapt-cli",
	Short: "CLI for running adapt-go learning modes over recorded experience batches",
	Long: `A command-line interface for the adapt-go learning engine that makes it easy
to run learning modes over recorded experience batches without writing
boilerplate code.

The CLI provides:
- One-shot learning runs with per-run confidence and insights
- Mode discovery with strategy catalogs
- Dataset inspection for JSON and Parquet batches
- Optional SQLite-backed run history`,
	Version: "0.1.0",
}

func main() {
	rootCmd.AddCommand(commands.NewLearnCommand())
	rootCmd.AddCommand(commands.NewModesCommand())
	rootCmd.AddCommand(commands.NewMetricsCommand())
	rootCmd.AddCommand(commands.NewInspectCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
