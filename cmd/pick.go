package cmd

import (
	"github.com/spf13/cobra"

	"clippy/internal/tui"
)

func init() {
	rootCmd.AddCommand(pickCmd)
}

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick the default model interactively",
	Long:  "Browse configured models in a terminal UI to set the default, add or remove models",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := openConfig(console(cmd))
		if err != nil {
			return err
		}
		// warnings would corrupt the alternate screen
		manager.Warn = nil
		return tui.Run(manager, manager.GetConfigPath())
	},
}
