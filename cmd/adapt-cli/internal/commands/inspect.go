package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/XiaoConstantine/adapt-go/cmd/adapt-cli/internal/display"
	"github.com/XiaoConstantine/adapt-go/pkg/core"
	"github.com/XiaoConstantine/adapt-go/pkg/datasets"
)

func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <dataset>",
		Short: "Summarize an experience batch file",
		Long: `Load a JSON or Parquet experience batch and print its record count, the
labeled/unlabeled split, payload shape distribution, and action tags.

Use it to sanity-check a batch before feeding it to a learning run.`,
		Example: `  # Summarize a JSON batch
  adapt-cli inspect samples/mixed_pool.json

  # Summarize a Parquet batch
  adapt-cli inspect exports/stream.parquet`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			experiences, err := datasets.LoadExperiences(args[0])
			if err != nil {
				return err
			}

			summary := display.DatasetSummary{Path: args[0], Total: len(experiences)}
			summary.Shapes = make(map[core.PayloadShape]int)
			for _, exp := range experiences {
				if exp.Labeled() {
					summary.Labeled++
				}
				if exp.Action != "" {
					summary.Actions++
				}
				summary.Shapes[core.ClassifyPayload(exp.Data)]++
			}

			fmt.Print(display.FormatDatasetSummary(summary))
			return nil
		},
	}
}
