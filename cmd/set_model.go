package cmd

import (
	"github.com/spf13/cobra"

	"clippy/config/validation"
	"clippy/internal/providers"
)

var setModelDefault bool

func init() {
	rootCmd.AddCommand(setModelCmd)
	setModelCmd.Flags().BoolVarP(&setModelDefault, "default", "d", false, "Set this model as default")
}

var setModelCmd = &cobra.Command{
	Use:   "set_model <model_name>:<api_key>",
	Short: "Configure an AI model",
	Long: `Add or update a model and its API key. The provider is inferred from the
model name: gpt-* uses openai, gemini-* uses google and claude-* uses anthropic.
The first configured model becomes the default.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		con := console(cmd)
		name, apiKey, err := validation.NewValidator().ParseModelAPI(args[0])
		if err != nil {
			return err
		}
		providerType := providers.Resolve(name, func(msg string) { con.Warnf("%s", msg) })

		manager, err := openConfig(con)
		if err != nil {
			return err
		}
		becameDefault, err := manager.SetModel(name, apiKey, providerType, setModelDefault)
		if err != nil {
			return err
		}

		con.Infof("Model '%s' (type: %s) configured.", name, providerType)
		if becameDefault {
			con.Infof("Model '%s' set as default.", name)
		}
		return nil
	},
}
