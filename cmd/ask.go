package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"clippy/config/models"
	"clippy/internal/assistant"
	"clippy/internal/history"
	"clippy/internal/providers"
	"clippy/internal/transport"
	"clippy/internal/ui"
)

var (
	askModel       string
	askRaw         bool
	askTimeout     time.Duration
	askMaxTokens   int
	askTemperature float64
)

// newAssistant is replaced in tests
var newAssistant = func(timeout time.Duration) *assistant.Assistant {
	return assistant.New(assistant.WithTransport(transport.New(transport.WithTimeout(timeout))))
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVarP(&askModel, "model", "m", "", "Model name to use (overrides default)")
	askCmd.Flags().BoolVar(&askRaw, "raw", false, "Output the raw response without formatting")
	askCmd.Flags().DurationVar(&askTimeout, "timeout", transport.DefaultTimeout, "Request timeout")
	askCmd.Flags().IntVar(&askMaxTokens, "max-tokens", 0, "Maximum tokens in the response (0 uses the provider default)")
	askCmd.Flags().Float64Var(&askTemperature, "temperature", assistant.DefaultTemperature, "Sampling temperature")
}

var askCmd = &cobra.Command{
	Use:   "ask [prompt...]",
	Short: "Ask the AI (default command)",
	Long: `Send a prompt to the selected model and print the answer.

The prompt is the arguments joined by spaces. When standard input is piped its
content is appended after a blank line.`,
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	con := console(cmd)
	manager, err := openConfig(con)
	if err != nil {
		return err
	}
	file, err := manager.Load()
	if err != nil {
		return err
	}

	modelName, mc, err := selectModel(file, askModel)
	if err != nil {
		return err
	}
	providerType := mc.ProviderType
	if providerType == "" {
		con.Warnf("Provider type for model '%s' missing. Determining from prefix.", modelName)
		providerType = providers.Resolve(modelName, func(msg string) { con.Warnf("%s", msg) })
	}

	piped, err := readPiped(cmd.InOrStdin())
	if err != nil {
		return err
	}
	prompt := assemblePrompt(args, piped)

	if !askRaw {
		con.Infof("Querying model '%s' (%s)...", modelName, providerType)
	}

	q := assistant.Query{
		Prompt:      prompt,
		Model:       modelName,
		APIKey:      mc.APIKey,
		ProviderKey: providerType,
		Temperature: askTemperature,
	}
	if askMaxTokens > 0 {
		q.MaxTokens = &askMaxTokens
	}

	response, askErr := newAssistant(askTimeout).Ask(context.Background(), q)

	if file.LogEnabled {
		store := history.NewStore(manager.HistoryDir())
		if _, err := store.Save(history.Entry{
			Prompt:       prompt,
			ModelName:    modelName,
			ProviderType: providerType,
			Response:     response,
		}); err != nil {
			con.Errorf("Failed to save log entry: %v", err)
		}
	}

	if askErr != nil {
		return fmt.Errorf("API interaction failed: %w", askErr)
	}

	out := cmd.OutOrStdout()
	response = strings.TrimSpace(response)
	if askRaw {
		fmt.Fprintln(out, response)
		return nil
	}

	color := ui.IsTerminal(out)
	title := "AI Response:"
	if color {
		title = lipgloss.NewStyle().Bold(true).Render(title)
	}
	fmt.Fprintf(out, "\n%s\n\n", title)
	fmt.Fprintln(out, ui.NewFormatter(color).Format(response))
	return nil
}

// selectModel picks the requested model, or the default one
func selectModel(file *models.File, requested string) (string, models.ModelConfig, error) {
	if len(file.Models) == 0 {
		return "", models.ModelConfig{}, fmt.Errorf("No models configured. Use 'clippy set_model <model_name>:<api_key>' first.")
	}

	name := requested
	if name == "" {
		name = file.DefaultModel
	}
	if name == "" {
		return "", models.ModelConfig{}, fmt.Errorf("No model specified and no default model set. Specify a model with --model or run 'clippy set_default <model_name>'.")
	}

	mc, ok := file.Models[name]
	if !ok {
		return "", models.ModelConfig{}, fmt.Errorf("Model '%s' not found. Available: %s", name, strings.Join(file.ModelNames(), ", "))
	}
	if mc.APIKey == "" {
		return "", models.ModelConfig{}, fmt.Errorf("API key for model '%s' is missing.", name)
	}
	return name, mc, nil
}

// assemblePrompt joins the argument words and appends piped input after a blank line
func assemblePrompt(args []string, piped string) string {
	prompt := strings.TrimSpace(strings.Join(args, " "))
	piped = strings.TrimSpace(piped)
	if piped != "" {
		if prompt != "" {
			prompt += "\n\n" + piped
		} else {
			prompt = piped
		}
	}
	return strings.TrimSpace(prompt)
}
