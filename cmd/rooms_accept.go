package cmd

import (
	"context"
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	apperrors "github.com/alomac6/mavpulse/internal/errors"
	"github.com/alomac6/mavpulse/internal/models"
	"github.com/alomac6/mavpulse/internal/ui"
)

var roomsAcceptCmd = &cobra.Command{
	Use:   "accept <request-id>",
	Short: "Accepts a pending join request for a room you own",
	Long: `Grants the requester access: your wrapped room key is unwrapped with
this device's private key, re-wrapped under the requester's public key, and
stored as their membership. If any step fails the request stays pending and
no membership is created.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		requestID := args[0]

		spinner, cleanup := startSpinner("Accepting join request...", verbose)
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

		request, err := findPendingRequest(ctx, rt, requestID)
		if err != nil {
			spinner.FinalMSG = color.RedString("✗") + " " + err.Error()
			return
		}

		if err := controller.AcceptJoinRequest(ctx, *request, rt.session.UserID); err != nil {
			spinner.FinalMSG = color.RedString("✗") + " Failed to accept request: " + err.Error() + "\n" +
				color.CyanString("→") + " The request is still pending; you can retry"
			return
		}

		name := request.RequesterUsername
		if name == "" {
			name = request.RequesterID
		}
		spinner.FinalMSG = color.GreenString("✓") + " Accepted " + ui.Highlight.Sprint(name) +
			" into the room\n" +
			color.CyanString("→") + " They now hold their own wrapped copy of the room key"
	},
}

var roomsDenyCmd = &cobra.Command{
	Use:   "deny <request-id>",
	Short: "Denies a pending join request",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		requestID := args[0]

		spinner, cleanup := startSpinner("Denying join request...", verbose)
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

		request, err := findPendingRequest(ctx, rt, requestID)
		if err != nil {
			spinner.FinalMSG = color.RedString("✗") + " " + err.Error()
			return
		}

		if err := controller.DenyJoinRequest(ctx, *request, rt.session.UserID); err != nil {
			spinner.FinalMSG = color.RedString("✗") + " Failed to deny request: " + err.Error()
			return
		}

		spinner.FinalMSG = color.GreenString("✓") + " Denied request " + ui.Highlight.Sprint(requestID)
	},
}

// findPendingRequest resolves a request id against the owner's pending list.
func findPendingRequest(ctx context.Context, rt *runtime, requestID string) (*models.JoinRequest, error) {
	requests, err := rt.client.PendingJoinRequests(ctx, rt.session.UserID)
	if err != nil {
		return nil, err
	}
	for i := range requests {
		if requests[i].ID == requestID {
			return &requests[i], nil
		}
	}
	return nil, errors.New("no pending join request with id " + requestID)
}
