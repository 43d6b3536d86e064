package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/XiaoConstantine/adapt-go/cmd/adapt-cli/internal/display"
	"github.com/XiaoConstantine/adapt-go/pkg/core"
)

func NewModesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List all available learning modes",
		Long: `Display the registered learning modes with their algorithm family, event
threshold, and strategy catalog.

This command helps you discover which modes are available and what each one
brings before running a batch through it.`,
		Example: `  # List all modes
  adapt-cli modes

  # Pipe to grep for filtering
  adapt-cli modes | grep -i drift`,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range modeNames() {
				spec, err := core.GetModeRegistry().Create(name)
				if err != nil {
					return err
				}
				fmt.Print(display.FormatMode(spec))
			}
			return nil
		},
	}
}
