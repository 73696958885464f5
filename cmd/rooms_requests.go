package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	apperrors "github.com/alomac6/mavpulse/internal/errors"
	"github.com/alomac6/mavpulse/internal/feed"
	"github.com/alomac6/mavpulse/internal/models"
	"github.com/alomac6/mavpulse/internal/ui"
)

var watchRequests bool

func init() {
	roomsRequestsCmd.Flags().BoolVarP(&watchRequests, "watch", "w", false, "keep listening for new requests until interrupted")
}

var roomsRequestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "Shows pending join requests for rooms you own",
	Long: `Lists join requests pending for your rooms. With --watch, stays
subscribed to the change feed and prints new requests as they arrive.
Duplicate feed deliveries for the same request are suppressed.`,
	Run: func(cmd *cobra.Command, args []string) {
		rt, err := newSessionRuntime()
		if err != nil {
			if errors.Is(err, apperrors.ErrNotLoggedIn) {
				fmt.Println(notLoggedInMessage())
				return
			}
			printError("Failed to load session", err)
			return
		}

		if !watchRequests {
			spinner, cleanup := startSpinner("Fetching join requests...", verbose)
			defer cleanup()

			ctx, cancel := context.WithTimeout(context.Background(), rt.config.Timeout())
			defer cancel()

			requests, err := rt.client.PendingJoinRequests(ctx, rt.session.UserID)
			if err != nil {
				spinner.FinalMSG = color.RedString("✗") + " Failed to fetch join requests: " + err.Error()
				return
			}

			spinner.FinalMSG = formatRequests(requests)
			return
		}

		feedURL := rt.config.Backend.FeedURL
		if feedURL == "" {
			feedURL = deriveFeedURL(rt.config.Backend.BaseURL)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		listener := feed.NewListener(feedURL, rt.session.UserID, rt.client.PendingJoinRequests, Logger)

		go func() {
			if err := listener.Run(ctx); err != nil {
				Logger.Errorf("join-request feed stopped: %v", err)
				stop()
			}
		}()

		fmt.Println(ui.Info.Sprint("Listening for join requests. Press Ctrl-C to stop."))
		for request := range listener.Requests() {
			fmt.Print(formatRequests([]models.JoinRequest{request}))
		}
	},
}

func formatRequests(requests []models.JoinRequest) string {
	if len(requests) == 0 {
		return color.GreenString("✓") + " No pending join requests\n"
	}

	var b strings.Builder
	for _, r := range requests {
		name := r.RequesterUsername
		if name == "" {
			name = r.RequesterID
		}
		room := r.RoomName
		if room == "" {
			room = r.RoomID
		}
		b.WriteString(color.YellowString("•") + " " + ui.Highlight.Sprint(name) +
			" wants to join " + ui.Highlight.Sprint(room) +
			" " + ui.Muted.Sprint(r.ID) + "\n")
	}
	b.WriteString(color.CyanString("→") + " Accept with " + ui.Code.Sprint("mavpulse rooms accept <request-id>") + "\n")
	return b.String()
}

// deriveFeedURL maps the REST base URL to its websocket counterpart.
func deriveFeedURL(baseURL string) string {
	switch {
	case strings.HasPrefix(baseURL, "https://"):
		return "wss://" + strings.TrimPrefix(baseURL, "https://")
	case strings.HasPrefix(baseURL, "http://"):
		return "ws://" + strings.TrimPrefix(baseURL, "http://")
	default:
		return baseURL
	}
}
