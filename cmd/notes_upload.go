package cmd

import (
	"context"
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	apperrors "github.com/alomac6/mavpulse/internal/errors"
	"github.com/alomac6/mavpulse/internal/ui"
)

var uploadTitle string

func init() {
	notesUploadCmd.Flags().StringVarP(&uploadTitle, "title", "t", "", "title for the uploaded note")
	if err := notesUploadCmd.MarkFlagRequired("title"); err != nil {
		printError("Failed to mark --title flag as required", err)
	}
}

var notesUploadCmd = &cobra.Command{
	Use:   "upload <course> <file>",
	Short: "Uploads a file as a course note",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		course, path := args[0], args[1]

		spinner, cleanup := startSpinner("Uploading note...", verbose)
		defer cleanup()

		rt, err := newSessionRuntime()
		if err != nil {
			if errors.Is(err, apperrors.ErrNotLoggedIn) {
				spinner.FinalMSG = notLoggedInMessage()
				return
			}
			printError("Failed to load session", err)
			return
		}

		controller := newNotesController(rt)

		ctx, cancel := context.WithTimeout(context.Background(), rt.config.Timeout())
		defer cancel()

		note, err := controller.UploadNote(ctx, course, uploadTitle, rt.session.UserID, path)
		if err != nil {
			if errors.Is(err, apperrors.ErrFileTooLarge) {
				spinner.FinalMSG = color.RedString("✗") + " File exceeds the 3MB upload limit"
				return
			}
			spinner.FinalMSG = color.RedString("✗") + " Upload failed: " + err.Error()
			return
		}

		spinner.FinalMSG = color.GreenString("✓") + " Uploaded " + ui.Highlight.Sprint(note.Title) +
			" to " + ui.Highlight.Sprint(course)
	},
}
