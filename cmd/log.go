package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"clippy/internal/history"
	"clippy/internal/ui"
)

const (
	logTimeLayout      = "Mon Jan 02 - 15:04:05 2006"
	logStatusLatest    = 3
	defaultClearCount  = -10
	defaultShowSession = 1
)

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logOnCmd, logOffCmd, logShowCmd, logClearCmd)
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Manage interaction logs",
	Long:  "Show the logging status and the latest sessions. Use the sub-commands to toggle, show or clear logs.",
	Args:  cobra.NoArgs,
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
		store := history.NewStore(manager.HistoryDir())

		con.Infof("\n%s", con.Header("Log Command Status & Help:"))
		con.Infof("Manages interaction logs stored in: %s", store.Dir())
		con.Infof("\nSub-commands:")
		con.Infof("  on        Enable logging (default)")
		con.Infof("  off       Disable logging")
		con.Infof("  show [N]  Show the latest N log sessions (default N=%d)", defaultShowSession)
		con.Infof("  clear [N] Clear the oldest N logs, or keep latest N if N is negative (default N=%d)", defaultClearCount)

		status := "disabled"
		if file.LogEnabled {
			status = "enabled"
		}
		con.Infof("\nCurrent status: Logging is %s.", status)

		files, err := store.Files()
		if err != nil {
			return err
		}
		if len(files) == 0 {
			con.Infof("History: No log sessions found.")
			return nil
		}
		con.Infof("History: Contains %d log session(s).", len(files))

		latest, err := store.Latest(logStatusLatest)
		if err != nil {
			return err
		}
		con.Infof("\nLatest %d log session timestamp(s):", len(latest))
		for _, path := range latest {
			ts, err := history.TimestampOf(path)
			if err != nil {
				con.Errorf("  - Could not parse timestamp from filename: %s", filepath.Base(path))
				continue
			}
			con.Infof("  - %s", ts.Format(logTimeLayout))
		}
		return nil
	},
}

var logOnCmd = &cobra.Command{
	Use:   "on",
	Short: "Enable logging (default)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setLogging(cmd, true)
	},
}

var logOffCmd = &cobra.Command{
	Use:   "off",
	Short: "Disable logging",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setLogging(cmd, false)
	},
}

func setLogging(cmd *cobra.Command, enabled bool) error {
	con := console(cmd)
	manager, err := openConfig(con)
	if err != nil {
		return err
	}
	if err := manager.SetLogEnabled(enabled); err != nil {
		state := "disable"
		if enabled {
			state = "enable"
		}
		return fmt.Errorf("failed to update config to %s logging: %w", state, err)
	}
	if enabled {
		con.Successf("Logging is enabled.")
	} else {
		con.Successf("Logging is disabled.")
	}
	return nil
}

var logShowCmd = &cobra.Command{
	Use:   "show [N]",
	Short: "Show the latest N log sessions",
	Long:  "Show the latest N log sessions, newest first (default 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := countArg(args, defaultShowSession)
		if err != nil {
			return err
		}
		if count <= 0 {
			return fmt.Errorf("number of logs to show must be positive")
		}

		con := console(cmd)
		manager, err := openConfig(con)
		if err != nil {
			return err
		}
		store := history.NewStore(manager.HistoryDir())
		files, err := store.Latest(count)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			con.Infof("No log history found.")
			return nil
		}

		con.Infof("Showing the latest %d log session(s):", len(files))
		shown := 0
		for i, path := range files {
			entry, err := store.Read(path)
			if err != nil {
				con.Errorf("%v", err)
				continue
			}
			printSession(cmd, con, entry, i+1, len(files))
			shown++
		}
		if shown == 0 {
			return fmt.Errorf("no log session could be read")
		}
		return nil
	},
}

func printSession(cmd *cobra.Command, con *ui.Console, e *history.Entry, index, total int) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%s\n", con.Header(fmt.Sprintf("==== Session %d of %d (%s) ====", index, total, e.Time().Format(logTimeLayout))))
	fmt.Fprintf(out, "Model: '%s' (%s)\n", e.ModelName, e.ProviderType)
	fmt.Fprintf(out, "Prompt:\n%s\n", indent(e.Prompt, "  "))
	fmt.Fprintf(out, "Response:\n%s\n", indent(strings.TrimSpace(e.Response), "  "))
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

var logClearCmd = &cobra.Command{
	Use:   "clear [N]",
	Short: "Clear log sessions",
	Long: `Clear log sessions. A positive N removes the N oldest sessions, a negative N
keeps only the N newest. The default keeps the 10 newest.`,
	Args: cobra.MaximumNArgs(1),
	// negative counts would otherwise be parsed as flags
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 && (args[0] == "-h" || args[0] == "--help") {
			return cmd.Help()
		}
		count, err := countArg(args, defaultClearCount)
		if err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("clear count cannot be zero. Use positive N to clear oldest, negative N to keep latest")
		}

		con := console(cmd)
		manager, err := openConfig(con)
		if err != nil {
			return err
		}
		store := history.NewStore(manager.HistoryDir())
		files, err := store.Files()
		if err != nil {
			return err
		}
		total := len(files)
		if total == 0 {
			con.Infof("No log history found to clear.")
			return nil
		}
		if count < 0 && -count >= total {
			con.Infof("Keeping all %d log(s). Nothing to clear.", total)
			return nil
		}

		removed, err := store.Clear(count)
		if err != nil {
			con.Warnf("Cleared %d log file(s) before failing.", removed)
			return err
		}
		con.Successf("Successfully cleared %d log file(s).", removed)
		con.Infof("%d log file(s) remain.", total-removed)
		return nil
	},
}

func countArg(args []string, def int) (int, error) {
	if len(args) == 0 {
		return def, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid count '%s': must be an integer", args[0])
	}
	return n, nil
}
