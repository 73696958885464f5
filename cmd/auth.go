package cmd

import (
	logger "github.com/alomac6/mavpulse/internal/logging"
	"github.com/spf13/cobra"
)

var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Log in, register, or log out",
	Long:  `Manages the device's login session. The access token is stored in the OS keyring.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing auth command with verbose=%t, debug=%t", verbose, debug)
	},
}

func init() {
	addVerbosityFlags(AuthCmd.PersistentFlags())

	AuthCmd.AddCommand(loginCmd)
	AuthCmd.AddCommand(registerCmd)
	AuthCmd.AddCommand(logoutCmd)
}
