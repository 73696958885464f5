package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/alomac6/mavpulse/internal/audit"
	"github.com/alomac6/mavpulse/internal/session"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clears the stored session on this device",
	Run: func(cmd *cobra.Command, args []string) {
		spinner, cleanup := startSpinner("Logging out...", verbose)
		defer cleanup()

		manager, err := session.OpenDefault()
		if err != nil {
			printError("Failed to open keyring", err)
			return
		}
		if err := manager.Clear(); err != nil {
			printError("Failed to clear session", err)
			return
		}

		audit.Log(audit.Entry{Operation: "auth.logout", Outcome: "ok"})
		spinner.FinalMSG = color.GreenString("✓") + " Logged out"
	},
}
