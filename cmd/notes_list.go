package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/alomac6/mavpulse/internal/cache"
	"github.com/alomac6/mavpulse/internal/configs"
	"github.com/alomac6/mavpulse/internal/models"
	"github.com/alomac6/mavpulse/internal/ui"
)

var notesListCmd = &cobra.Command{
	Use:   "list <course>",
	Short: "Lists the notes of a course",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		course := args[0]

		spinner, cleanup := startSpinner("Fetching notes...", verbose)
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			printError("Failed to load client config", err)
			return
		}

		store, err := cache.Open(configs.UserMavPulseSettings.CachePath())
		if err != nil {
			printError("Failed to open local cache", err)
			return
		}
		defer store.Close()

		ctx, cancel := context.WithTimeout(context.Background(), rt.config.Timeout())
		defer cancel()

		var courseNotes []models.Note
		fromCache := false

		courseNotes, err = rt.client.Notes(ctx, course)
		if err != nil {
			Logger.Warnf("Backend unreachable, trying local cache: %v", err)
			if ok, cacheErr := store.Get("notes/"+course, cache.DefaultTTL, &courseNotes); cacheErr != nil || !ok {
				spinner.FinalMSG = color.RedString("✗") + " Failed to fetch notes for " + ui.Highlight.Sprint(course) + ": " + err.Error()
				return
			}
			fromCache = true
		} else {
			if err := store.Put("notes/"+course, courseNotes); err != nil {
				Logger.Warnf("Failed to update local cache: %v", err)
			}
		}

		msg := color.GreenString("✓") + fmt.Sprintf(" %d notes in %s", len(courseNotes), ui.Highlight.Sprint(course))
		if fromCache {
			msg += " " + ui.Muted.Sprint("cached")
		}
		msg += "\n"
		for _, note := range courseNotes {
			msg += fmt.Sprintf("  %-36s %s\n", note.ID, note.Title)
		}
		spinner.FinalMSG = msg
	},
}
