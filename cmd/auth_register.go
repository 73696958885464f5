package cmd

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/alomac6/mavpulse/internal/api"
	"github.com/alomac6/mavpulse/internal/ui"
)

var (
	registerUsername string
	registerEmail    string
)

func init() {
	registerCmd.Flags().StringVarP(&registerUsername, "user", "u", "", "username for the new account")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "email address for the new account")
	if err := registerCmd.MarkFlagRequired("user"); err != nil {
		printError("Failed to mark --user flag as required", err)
	}
	if err := registerCmd.MarkFlagRequired("email"); err != nil {
		printError("Failed to mark --email flag as required", err)
	}
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Creates a new MavPulse account",
	Run: func(cmd *cobra.Command, args []string) {
		password, err := promptPassword()
		if err != nil {
			printError("Failed to read password", err)
			return
		}

		spinner, cleanup := startSpinner("Creating account...", verbose)
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			printError("Failed to load client config", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), rt.config.Timeout())
		defer cancel()

		resp, err := rt.client.Register(ctx, api.RegisterRequest{
			Username: registerUsername,
			Email:    registerEmail,
			Password: password,
		})
		if err != nil {
			spinner.FinalMSG = color.RedString("✗") + " Registration failed: " + err.Error()
			return
		}

		message := resp.Message
		if message == "" {
			message = "Registration successful"
		}
		spinner.FinalMSG = color.GreenString("✓") + " " + message + "\n" +
			color.CyanString("→") + " Log in with " + ui.Code.Sprint("mavpulse auth login")
	},
}
