package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"clippy/internal/archive"
)

var packOutput string

func init() {
	rootCmd.AddCommand(packCmd)
	packCmd.Flags().StringVarP(&packOutput, "output", "o", "", "Write the archive to a file instead of standard output")
}

var packCmd = &cobra.Command{
	Use:   "pack <main_cpp_file>",
	Short: "Pack a C++ file and its local includes",
	Long: `Pack a source file and every file it includes with #include "..." into one
text archive. Include paths are resolved against the current directory and
only direct includes are followed. Each file starts with a '>>>>name' line.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		con := console(cmd)
		packer := &archive.Packer{Warn: con.Warnf}
		entries, err := packer.Pack(args[0])
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if packOutput != "" {
			f, err := os.Create(packOutput)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", packOutput, err)
			}
			defer f.Close()
			w = f
		}
		if _, err := io.WriteString(w, archive.Encode(entries)); err != nil {
			return fmt.Errorf("failed to write archive: %w", err)
		}
		if packOutput != "" {
			con.Successf("Packed %d file(s) into %s.", len(entries), packOutput)
		}
		return nil
	},
}
