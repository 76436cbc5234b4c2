package cmd

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"clippy/config/models"
	"clippy/internal/providers"
	"clippy/internal/ui"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List configured models",
	Long:    "List all configured models with their provider and masked API key",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		con := console(cmd)
		manager, err := openConfig(con)
		if err != nil {
			return err
		}
		file, err := manager.Load()
		if err != nil {
			return err
		}

		if len(file.Models) == 0 {
			con.Infof("No models configured. Use 'clippy set_model <model_name>:<api_key>' to add one.")
			return nil
		}

		writeModelTable(cmd.OutOrStdout(), file)

		if file.DefaultModel != "" {
			con.Infof("\n(* indicates the default model)")
		} else {
			con.Infof("\nNo default model set. Use 'clippy set_default <model_name>'.")
		}
		return nil
	},
}

func writeModelTable(w io.Writer, file *models.File) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateHeader = true
	tw.Style().Options.DrawBorder = true

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
	})

	tw.AppendHeader(table.Row{"", "Model", "Provider", "API Key"})
	for _, name := range file.ModelNames() {
		mc := file.Models[name]
		marker := ""
		if name == file.DefaultModel {
			marker = "*"
		}
		provider := mc.ProviderType
		if provider == "" {
			provider, _ = providers.ResolveKey(name)
		}
		tw.AppendRow(table.Row{marker, name, provider, ui.MaskAPIKey(mc.APIKey)})
	}

	_ = tw.Render()
}
