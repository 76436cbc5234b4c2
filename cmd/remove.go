package cmd

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:     "remove_model <model_name>",
	Aliases: []string{"rm"},
	Short:   "Remove a configured model",
	Long:    "Remove a configured model and its API key. Removing the default model leaves no default set.",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		con := console(cmd)
		manager, err := openConfig(con)
		if err != nil {
			return err
		}
		wasDefault, err := manager.RemoveModel(name)
		if err != nil {
			return err
		}

		con.Infof("Removed model '%s'.", name)
		if wasDefault {
			con.Warnf("Removed model was the default. No default model is set now.")
			con.Infof("Set a new default using 'clippy set_default <model_name>'.")
		}
		con.Successf("Configuration updated.")
		return nil
	},
}
