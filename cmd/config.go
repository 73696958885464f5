package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/alomac6/mavpulse/internal/configs"
	logger "github.com/alomac6/mavpulse/internal/logging"
	"github.com/alomac6/mavpulse/internal/ui"
)

var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change client configuration",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{Verbose: verbose, Debug: debug}
	},
}

func init() {
	addVerbosityFlags(ConfigCmd.PersistentFlags())

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configSetURLCmd)
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Shows the current client configuration",
	Run: func(cmd *cobra.Command, args []string) {
		config, err := configs.EnsureClientConfig()
		if err != nil {
			printError("Failed to load client config", err)
			return
		}

		fmt.Println("Backend URL:  " + ui.Highlight.Sprint(config.Backend.BaseURL))
		if config.Backend.FeedURL != "" {
			fmt.Println("Feed URL:     " + ui.Highlight.Sprint(config.Backend.FeedURL))
		}
		fmt.Printf("Timeout:      %ds\n", config.Backend.TimeoutSeconds)
		fmt.Println("Device:       " + config.Device.Name + " " + ui.Muted.Sprint(config.Device.UUID))
		if config.User.ID != "" {
			fmt.Println("Logged in as: " + ui.Highlight.Sprint(config.User.Username) + " " + ui.Muted.Sprint(config.User.ID))
		} else {
			fmt.Println("Logged in as: " + ui.Muted.Sprint("not logged in"))
		}
	},
}

var configSetURLCmd = &cobra.Command{
	Use:   "set-url <base-url>",
	Short: "Sets the backend base URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config, err := configs.EnsureClientConfig()
		if err != nil {
			printError("Failed to load client config", err)
			return
		}

		config.Backend.BaseURL = args[0]
		if err := configs.SaveClientConfig(config); err != nil {
			printError("Failed to save client config", err)
			return
		}

		fmt.Println(color.GreenString("✓") + " Backend URL set to " + ui.Highlight.Sprint(args[0]))
	},
}
