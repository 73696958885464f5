package cmd

import (
	"context"
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	apperrors "github.com/alomac6/mavpulse/internal/errors"
	"github.com/alomac6/mavpulse/internal/ui"
)

var notesDeleteCmd = &cobra.Command{
	Use:   "delete <note-id>",
	Short: "Deletes one of your notes",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		noteID := args[0]

		spinner, cleanup := startSpinner("Deleting note...", verbose)
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

		if err := controller.DeleteNote(ctx, noteID, rt.session.UserID); err != nil {
			spinner.FinalMSG = color.RedString("✗") + " Delete failed: " + err.Error()
			return
		}

		spinner.FinalMSG = color.GreenString("✓") + " Deleted note " + ui.Highlight.Sprint(noteID)
	},
}
