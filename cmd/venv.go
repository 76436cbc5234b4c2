package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"clippy/internal/venv"
)

// newVenvManager is replaced in tests
var newVenvManager = venv.NewManager

func init() {
	rootCmd.AddCommand(venvCmd)
}

var venvCmd = &cobra.Command{
	Use:   "venv [project_dir]",
	Short: "Ensure a project has a Python virtual environment",
	Long: `Create <project_dir>/venv when it is missing and install requirements.txt
into it, then print the path of the environment's Python interpreter.
The project directory defaults to the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		con := console(cmd)
		// progress goes to stderr so stdout carries only the interpreter path
		manager := newVenvManager(cmd.ErrOrStderr(), cmd.ErrOrStderr())
		manager.Info = func(format string, args ...any) {
			fmt.Fprintf(con.Err, format+"\n", args...)
		}

		python, err := manager.Ensure(dir)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), python)
		return nil
	},
}
