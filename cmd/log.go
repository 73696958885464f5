package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/alomac6/mavpulse/internal/audit"
	logger "github.com/alomac6/mavpulse/internal/logging"
	"github.com/alomac6/mavpulse/internal/ui"
)

var logLimit int

var LogCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the local operation log",
	Long:  `Prints the append-only log of operations performed from this device.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{Verbose: verbose, Debug: debug}
	},
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := audit.ReadEntries()
		if err != nil {
			printError("Failed to read operation log", err)
			return
		}
		if len(entries) == 0 {
			fmt.Println(ui.Muted.Sprint("no operations logged yet"))
			return
		}

		start := 0
		if logLimit > 0 && len(entries) > logLimit {
			start = len(entries) - logLimit
		}
		for _, entry := range entries[start:] {
			line := entry.Timestamp + "  " + color.CyanString("%-16s", entry.Operation)
			if entry.RoomID != "" {
				line += " room=" + entry.RoomID
			}
			if entry.RequestID != "" {
				line += " request=" + entry.RequestID
			}
			if entry.NoteID != "" {
				line += " note=" + entry.NoteID
			}
			if entry.Course != "" {
				line += " course=" + entry.Course
			}
			if entry.Outcome != "" {
				line += " " + ui.Muted.Sprint(entry.Outcome)
			}
			fmt.Println(line)
		}
	},
}

func init() {
	addVerbosityFlags(LogCmd.Flags())
	LogCmd.Flags().IntVarP(&logLimit, "limit", "n", 0, "show only the last N entries")
}
