package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"clippy/internal/archive"
)

var unpackDir string

func init() {
	rootCmd.AddCommand(unpackCmd)
	unpackCmd.Flags().StringVarP(&unpackDir, "dir", "C", "", "Base directory to unpack into (default: current directory)")
}

var unpackCmd = &cobra.Command{
	Use:   "unpack [archive]",
	Short: "Unpack a '>>>>name' archive",
	Long: `Split a text archive back into files. The archive is read from the given
file or from standard input. Entry names are stripped of '.' and '..'
components and directories are never created: entries whose directory does
not exist are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		con := console(cmd)

		source := "stdin"
		var text string
		if len(args) == 1 {
			source = args[0]
			data, err := os.ReadFile(args[0])
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("the file '%s' was not found", args[0])
				}
				return fmt.Errorf("failed to read '%s': %w", args[0], err)
			}
			text = string(data)
		} else {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read standard input: %w", err)
			}
			text = string(data)
		}

		con.Infof("Starting to unpack from %s...", source)
		entries := archive.Decode(text)
		if len(entries) == 0 {
			con.Infof("No file markers ('%sfilename') found in the input.", archive.Marker)
			return nil
		}

		unpacker := &archive.Unpacker{Dir: unpackDir, Info: con.Infof, Warn: con.Warnf}
		summary := unpacker.Unpack(entries)
		con.Infof("\n%s", summary)
		if summary.Failed > 0 {
			return fmt.Errorf("%d file(s) could not be written", summary.Failed)
		}
		return nil
	},
}
