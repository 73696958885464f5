package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/alomac6/mavpulse/internal/api"
	"github.com/alomac6/mavpulse/internal/configs"
	logger "github.com/alomac6/mavpulse/internal/logging"
	"github.com/alomac6/mavpulse/internal/session"
	"github.com/alomac6/mavpulse/internal/ui"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger
)

// addVerbosityFlags registers the shared verbosity flags on a command's flag
// set (plain or persistent).
func addVerbosityFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	fs.BoolVarP(&debug, "debug", "d", false, "enable debug output")
}

// startSpinner creates and starts a spinner with the given message when not
// in verbose or debug mode. Returns the spinner and a function that should be
// deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines; the cleanup function
// calls ui.EnsureNewline on the final message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if !verbose && !debug {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

func printError(message string, err error) {
	fmt.Fprintf(os.Stderr, "%s %s: %v\n", color.RedString("✗"), message, err)
}

// runtime bundles the collaborators most commands need.
type runtime struct {
	config  *configs.ClientConfig
	client  *api.Client
	session *session.Session
}

// newRuntime loads the client config and builds an anonymous API client.
func newRuntime() (*runtime, error) {
	config, err := configs.EnsureClientConfig()
	if err != nil {
		return nil, err
	}

	return &runtime{
		config: config,
		client: api.New(api.Config{
			BaseURL: config.Backend.BaseURL,
			Timeout: config.Timeout(),
		}),
	}, nil
}

// newSessionRuntime additionally resolves the stored login session and
// authenticates the API client with it.
func newSessionRuntime() (*runtime, error) {
	rt, err := newRuntime()
	if err != nil {
		return nil, err
	}

	manager, err := session.OpenDefault()
	if err != nil {
		return nil, err
	}
	sess, err := manager.Load()
	if err != nil {
		return nil, err
	}

	rt.session = sess
	rt.client = rt.client.WithToken(sess.Token)
	return rt, nil
}

// notLoggedInMessage is the shared FinalMSG for commands that need a session.
func notLoggedInMessage() string {
	return color.RedString("✗") + " You are not logged in\n" +
		color.CyanString("→") + " Please run " + ui.Code.Sprint("mavpulse auth login") + " first"
}
