package cmd

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/alomac6/mavpulse/internal/models"
	"github.com/alomac6/mavpulse/internal/ui"
)

var downloadDir string

func init() {
	notesDownloadCmd.Flags().StringVarP(&downloadDir, "dir", "o", "", "directory to download into (default: current directory)")
}

var notesDownloadCmd = &cobra.Command{
	Use:   "download <course> <note-id>",
	Short: "Downloads a note's file",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		course, noteID := args[0], args[1]

		spinner, cleanup := startSpinner("Downloading note...", verbose)
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			printError("Failed to load client config", err)
			return
		}

		controller := newNotesController(rt)

		ctx, cancel := context.WithTimeout(context.Background(), rt.config.Timeout())
		defer cancel()

		courseNotes, err := controller.FetchNotes(ctx, course)
		if err != nil {
			spinner.FinalMSG = color.RedString("✗") + " Failed to fetch notes: " + err.Error()
			return
		}

		var target *models.Note
		for i := range courseNotes {
			if courseNotes[i].ID == noteID {
				target = &courseNotes[i]
				break
			}
		}
		if target == nil {
			spinner.FinalMSG = color.RedString("✗") + " Note " + ui.Highlight.Sprint(noteID) + " not found in " + ui.Highlight.Sprint(course)
			return
		}

		dir := downloadDir
		if dir == "" {
			dir, err = os.Getwd()
			if err != nil {
				printError("Failed to get working directory", err)
				return
			}
		}

		dest, err := controller.DownloadNote(ctx, *target, dir)
		if err != nil {
			spinner.FinalMSG = color.RedString("✗") + " Download failed: " + err.Error()
			return
		}

		spinner.FinalMSG = color.GreenString("✓") + " Downloaded to " + ui.Highlight.Sprint(dest)
	},
}
