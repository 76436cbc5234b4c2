package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"clippy/internal/stacktrace"
)

func init() {
	rootCmd.AddCommand(stacktraceCmd)
}

var stacktraceCmd = &cobra.Command{
	Use:   "stacktrace <stack_trace_file>",
	Short: "Print a stack trace followed by the local files it references",
	Long: `Read a stack trace, print it, then print the content of every file it
references that exists under the current directory. Each file is introduced
by a '>>> path' line, which makes the output ready to paste into a prompt.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("the stack trace file '%s' was not found", args[0])
			}
			return fmt.Errorf("failed to read stack trace file '%s': %w", args[0], err)
		}

		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}

		trace := string(data)
		return stacktrace.Render(cmd.OutOrStdout(), trace, stacktrace.Extract(trace, cwd))
	},
}
