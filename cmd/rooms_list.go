package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/alomac6/mavpulse/internal/ui"
)

var roomsListCmd = &cobra.Command{
	Use:   "list <course>",
	Short: "Lists the study rooms of a course",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		course := args[0]

		spinner, cleanup := startSpinner("Fetching rooms...", verbose)
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			printError("Failed to load client config", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), rt.config.Timeout())
		defer cancel()

		courseRooms, err := rt.client.Rooms(ctx, course)
		if err != nil {
			spinner.FinalMSG = color.RedString("✗") + " Failed to fetch rooms: " + err.Error()
			return
		}

		msg := color.GreenString("✓") + fmt.Sprintf(" %d rooms in %s\n", len(courseRooms), ui.Highlight.Sprint(course))
		for _, room := range courseRooms {
			msg += fmt.Sprintf("  %-36s %-24s %d members (owner: %s)\n", room.ID, room.Name, room.Members, room.Owner)
		}
		spinner.FinalMSG = msg
	},
}
