package cmd

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(setDefaultCmd)
}

var setDefaultCmd = &cobra.Command{
	Use:   "set_default <model_name>",
	Short: "Set the default model",
	Long:  "Make a configured model the one used when --model is not given",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		con := console(cmd)
		manager, err := openConfig(con)
		if err != nil {
			return err
		}
		if err := manager.SetDefault(args[0]); err != nil {
			return err
		}

		con.Successf("Default model set to '%s'.", args[0])
		return nil
	},
}
