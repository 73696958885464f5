package main

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/alomac6/mavpulse/cmd"
)

var rootCmd = &cobra.Command{
	Use:   "mavpulse",
	Short: "MavPulse - A CLI for course notes, study rooms, and favorites.",
	Long: `MavPulse is a command-line client for the MavPulse course-notes and
study-room platform.

Features:
  - Browse departments, courses, and course notes
  - Upload, download, and favorite notes
  - Create study rooms and approve join requests with end-to-end wrapped room keys

Usage:
  mavpulse <command> [flags]

Available Commands:
  auth       Log in, register, or log out
  courses    Browse departments and courses
  notes      Browse, upload, and favorite course notes
  rooms      Manage study rooms and join requests
  profile    Show your notes and favorites
  config     Show or change client configuration
  log        Show the local operation log

Run 'mavpulse help <command>' for more details on a specific command.
`,
	Run: func(command *cobra.Command, args []string) {
		figure.NewFigure("MavPulse", "", true).Print()
		fmt.Println("Run 'mavpulse --help' to see available commands.")
	},
}

func main() {
	rootCmd.AddCommand(cmd.AuthCmd)
	rootCmd.AddCommand(cmd.CoursesCmd)
	rootCmd.AddCommand(cmd.NotesCmd)
	rootCmd.AddCommand(cmd.RoomsCmd)
	rootCmd.AddCommand(cmd.ProfileCmd)
	rootCmd.AddCommand(cmd.ConfigCmd)
	rootCmd.AddCommand(cmd.LogCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
