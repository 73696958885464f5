package cmd

import (
	logger "github.com/alomac6/mavpulse/internal/logging"
	"github.com/alomac6/mavpulse/internal/notes"
	"github.com/alomac6/mavpulse/internal/state"
	"github.com/spf13/cobra"
)

var NotesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Browse, upload, and favorite course notes",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing notes command with verbose=%t, debug=%t", verbose, debug)
	},
}

func init() {
	addVerbosityFlags(NotesCmd.PersistentFlags())

	NotesCmd.AddCommand(notesListCmd)
	NotesCmd.AddCommand(notesUploadCmd)
	NotesCmd.AddCommand(notesDownloadCmd)
	NotesCmd.AddCommand(notesDeleteCmd)
	NotesCmd.AddCommand(notesFavoriteCmd)
}

// newNotesController builds a notes controller over a logged-in runtime.
func newNotesController(rt *runtime) *notes.Controller {
	return notes.NewController(rt.client, state.NewNoteList(), state.NewFavorites(), Logger)
}
