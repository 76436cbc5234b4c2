package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"clippy/config"
	"clippy/internal/ui"
	"clippy/internal/update"
)

// Version information
var (
	version string
	commit  string
	date    string
)

// SetVersionInfo sets the version information
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

var skipUpdateCheck bool

// newUpdateChecker is replaced in tests
var newUpdateChecker = update.NewChecker

var rootCmd = &cobra.Command{
	Use:   "clippy",
	Short: "Your AI command-line assistant",
	Long: `Clippy sends prompts to OpenAI, Google or Anthropic models and bundles a few
developer helpers: C++ include packing, archive unpacking, stack-trace file
extraction and Python virtual environments.

Running clippy with a prompt that is not a command name asks the default model.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if skipUpdateCheck {
			return
		}
		if newUpdateChecker().Behind() {
			con := console(cmd)
			con.Warnf("Your clippy checkout is behind the main branch (%s).", update.RepoURL)
			con.Warnf("Consider updating by running: git pull origin main from the clippy directory.")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&skipUpdateCheck, "skip-update-check", false, "Do not check whether the clippy checkout is behind upstream")
}

// Execute executes the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(`clippy {{.Version}}
Commit: ` + commit + `
Date: ` + date + `
`)

	rootCmd.SetArgs(defaultToAsk(rootCmd, os.Args[1:]))
	return rootCmd.Execute()
}

// defaultToAsk routes a bare prompt to the ask command. Arguments are left
// alone when the first one names a command or is a flag.
func defaultToAsk(root *cobra.Command, args []string) []string {
	if len(args) > 0 && (strings.HasPrefix(args[0], "-") || isCommand(root, args[0])) {
		return args
	}
	return append([]string{askCmd.Name()}, args...)
}

func isCommand(root *cobra.Command, name string) bool {
	if name == "help" || name == "completion" {
		return true
	}
	for _, c := range root.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return false
}

// console writes diagnostics to the command's streams
func console(cmd *cobra.Command) *ui.Console {
	return &ui.Console{
		Out:   cmd.OutOrStdout(),
		Err:   cmd.ErrOrStderr(),
		Color: ui.IsTerminal(cmd.ErrOrStderr()),
	}
}

// openConfig creates a config manager reporting problems on con
func openConfig(con *ui.Console) (*config.Manager, error) {
	manager, err := config.NewConfigManager()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config manager: %w", err)
	}
	manager.Warn = con.Warnf
	return manager, nil
}

// readPiped returns stdin content when it is not an interactive terminal
func readPiped(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && ui.IsTerminal(f) {
		return "", nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read standard input: %w", err)
	}
	return string(data), nil
}
