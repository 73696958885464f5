package cmd

import (
	"context"
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	apperrors "github.com/alomac6/mavpulse/internal/errors"
	"github.com/alomac6/mavpulse/internal/ui"
)

var notesFavoriteCmd = &cobra.Command{
	Use:   "favorite <note-id>",
	Short: "Toggles a note's favorite state",
	Long: `Adds the note to your favorites, or removes it if already favorited.
The local state is updated optimistically and rolled back if the server call
fails, so you can simply retry.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		noteID := args[0]

		spinner, cleanup := startSpinner("Updating favorites...", verbose)
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

		// Seed the local set so the toggle direction is correct.
		if _, err := controller.FetchFavorites(ctx, rt.session.UserID); err != nil {
			spinner.FinalMSG = color.RedString("✗") + " Failed to fetch favorites: " + err.Error()
			return
		}

		nowFavorite, err := controller.ToggleFavorite(ctx, noteID, rt.session.UserID)
		if err != nil {
			spinner.FinalMSG = color.RedString("✗") + " Favorite toggle failed and was rolled back: " + err.Error()
			return
		}

		if nowFavorite {
			spinner.FinalMSG = color.GreenString("✓") + " Added " + ui.Highlight.Sprint(noteID) + " to favorites"
		} else {
			spinner.FinalMSG = color.GreenString("✓") + " Removed " + ui.Highlight.Sprint(noteID) + " from favorites"
		}
	},
}
