package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alomac6/mavpulse/internal/configs"
	"github.com/alomac6/mavpulse/internal/crypto"
	"github.com/alomac6/mavpulse/internal/keystore"
	logger "github.com/alomac6/mavpulse/internal/logging"
	"github.com/alomac6/mavpulse/internal/rooms"
	"github.com/alomac6/mavpulse/internal/state"
)

var RoomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "Manage study rooms and join requests",
	Long: `Creates course study rooms and handles join requests. Each room has a
symmetric key that only ever leaves this device wrapped under a member's
public key.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing rooms command with verbose=%t, debug=%t", verbose, debug)
	},
}

func init() {
	addVerbosityFlags(RoomsCmd.PersistentFlags())

	RoomsCmd.AddCommand(roomsListCmd)
	RoomsCmd.AddCommand(roomsCreateCmd)
	RoomsCmd.AddCommand(roomsRequestsCmd)
	RoomsCmd.AddCommand(roomsAcceptCmd)
	RoomsCmd.AddCommand(roomsDenyCmd)
}

// newRoomsController builds a rooms controller over a logged-in runtime,
// backed by the device keystore.
func newRoomsController(rt *runtime) (*rooms.Controller, error) {
	store, err := keystore.OpenDefault(configs.UserMavPulseSettings.KeysPath())
	if err != nil {
		return nil, err
	}
	manager := crypto.NewManager(store)
	return rooms.NewController(rt.client, manager, state.NewRoomList(), Logger), nil
}
