package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	apperrors "github.com/alomac6/mavpulse/internal/errors"
	"github.com/alomac6/mavpulse/internal/ui"
)

var createRoomName string

func init() {
	roomsCreateCmd.Flags().StringVarP(&createRoomName, "name", "n", "", "name for the new room")
	if err := roomsCreateCmd.MarkFlagRequired("name"); err != nil {
		printError("Failed to mark --name flag as required", err)
	}
}

var roomsCreateCmd = &cobra.Command{
	Use:   "create <course-id>",
	Short: "Creates a study room for a course",
	Long: `Creates a room and its symmetric key. The key is generated locally,
wrapped under your public key, and only the wrapped copy is sent to the
backend. You become the room's owner.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		courseID := args[0]

		spinner, cleanup := startSpinner("Creating room...", verbose)
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

		controller, err := newRoomsController(rt)
		if err != nil {
			printError("Failed to open device keystore", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), rt.config.Timeout())
		defer cancel()

		room, err := controller.CreateRoom(ctx, courseID, rt.session.UserID, createRoomName, rt.session.Username)
		if err != nil {
			spinner.FinalMSG = color.RedString("✗") + " Failed to create room: " + err.Error()
			return
		}

		spinner.FinalMSG = color.GreenString("✓") + " Created room " + ui.Highlight.Sprint(room.Name) +
			" " + ui.Muted.Sprint(room.ID) + "\n" +
			color.CyanString("→") + fmt.Sprintf(" %d member, role owner", room.Members)
	},
}
