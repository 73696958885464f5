package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	apperrors "github.com/alomac6/mavpulse/internal/errors"
	logger "github.com/alomac6/mavpulse/internal/logging"
	"github.com/alomac6/mavpulse/internal/ui"
)

var ProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your notes and favorites",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{Verbose: verbose, Debug: debug}
	},
	Run: func(cmd *cobra.Command, args []string) {
		spinner, cleanup := startSpinner("Fetching profile...", verbose)
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

		ctx, cancel := context.WithTimeout(context.Background(), rt.config.Timeout())
		defer cancel()

		favorites, err := rt.client.FavoriteNotes(ctx, rt.session.UserID)
		if err != nil {
			spinner.FinalMSG = color.RedString("✗") + " Failed to fetch favorites: " + err.Error()
			return
		}
		userNotes, err := rt.client.UserNotes(ctx, rt.session.UserID)
		if err != nil {
			spinner.FinalMSG = color.RedString("✗") + " Failed to fetch your notes: " + err.Error()
			return
		}

		msg := color.GreenString("✓") + " Profile for " + ui.Highlight.Sprint(rt.session.Username) + "\n"

		msg += fmt.Sprintf("\nFavorites (%d):\n", len(favorites))
		for _, f := range favorites {
			title := f.Title
			if title == "" {
				title = f.NoteID
			}
			msg += "  " + title + "\n"
		}

		msg += fmt.Sprintf("\nYour notes (%d):\n", len(userNotes))
		for _, n := range userNotes {
			msg += fmt.Sprintf("  %-24s %s\n", n.CourseName, n.Title)
		}

		spinner.FinalMSG = msg
	},
}

func init() {
	addVerbosityFlags(ProfileCmd.Flags())
}
