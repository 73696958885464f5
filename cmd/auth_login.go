package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alomac6/mavpulse/internal/api"
	"github.com/alomac6/mavpulse/internal/audit"
	"github.com/alomac6/mavpulse/internal/session"
	"github.com/alomac6/mavpulse/internal/ui"
)

var loginEmail string

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "email address to log in with")
	if err := loginCmd.MarkFlagRequired("email"); err != nil {
		printError("Failed to mark --email flag as required", err)
	}
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Logs in to the MavPulse backend and stores the session",
	Run: func(cmd *cobra.Command, args []string) {
		password, err := promptPassword()
		if err != nil {
			printError("Failed to read password", err)
			return
		}

		spinner, cleanup := startSpinner("Logging in...", verbose)
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			printError("Failed to load client config", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), rt.config.Timeout())
		defer cancel()

		resp, err := rt.client.Login(ctx, api.LoginRequest{Email: loginEmail, Password: password})
		if err != nil {
			spinner.FinalMSG = color.RedString("✗") + " Login failed: " + err.Error()
			return
		}

		username := resp.Username
		if username == "" {
			// Fall back to the mailbox name, matching the backend's behavior
			// when no username is set.
			username = strings.SplitN(loginEmail, "@", 2)[0]
		}

		manager, err := session.OpenDefault()
		if err != nil {
			printError("Failed to open keyring", err)
			return
		}
		if err := manager.Save(session.Session{
			UserID:   resp.UserID,
			Username: username,
			Email:    loginEmail,
			Token:    resp.Token,
		}); err != nil {
			printError("Failed to store session", err)
			return
		}

		audit.Log(audit.Entry{UserID: resp.UserID, Operation: "auth.login", Outcome: "ok"})
		spinner.FinalMSG = color.GreenString("✓") + " Logged in as " + ui.Highlight.Sprint(username)
	},
}

// promptPassword reads a password without echo when stdin is a terminal.
func promptPassword() (string, error) {
	fmt.Print("Password: ")
	if term.IsTerminal(int(syscall.Stdin)) {
		data, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		return string(data), err
	}

	// Piped input (tests, scripts).
	var password string
	if _, err := fmt.Fscanln(os.Stdin, &password); err != nil {
		return "", err
	}
	return password, nil
}
