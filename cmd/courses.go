package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/alomac6/mavpulse/internal/cache"
	"github.com/alomac6/mavpulse/internal/configs"
	logger "github.com/alomac6/mavpulse/internal/logging"
	"github.com/alomac6/mavpulse/internal/models"
	"github.com/alomac6/mavpulse/internal/ui"
)

var CoursesCmd = &cobra.Command{
	Use:   "courses [department]",
	Short: "Browse departments and courses",
	Long: `Without arguments, lists all departments. With a department name, lists
that department's courses. Listings are cached locally so browsing keeps
working offline.`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{Verbose: verbose, Debug: debug}
	},
	Run: func(cmd *cobra.Command, args []string) {
		spinner, cleanup := startSpinner("Fetching courses...", verbose)
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			printError("Failed to load client config", err)
			return
		}

		store, err := cache.Open(configs.UserMavPulseSettings.CachePath())
		if err != nil {
			printError("Failed to open local cache", err)
			return
		}
		defer store.Close()

		ctx, cancel := context.WithTimeout(context.Background(), rt.config.Timeout())
		defer cancel()

		if len(args) == 0 {
			var departments []models.Department
			fromCache := false

			departments, err = rt.client.Departments(ctx)
			if err != nil {
				Logger.Warnf("Backend unreachable, trying local cache: %v", err)
				if ok, cacheErr := store.Get("departments", cache.DefaultTTL, &departments); cacheErr != nil || !ok {
					spinner.FinalMSG = color.RedString("✗") + " Failed to fetch departments: " + err.Error()
					return
				}
				fromCache = true
			} else {
				if err := store.Put("departments", departments); err != nil {
					Logger.Warnf("Failed to update local cache: %v", err)
				}
			}

			msg := color.GreenString("✓") + fmt.Sprintf(" %d departments", len(departments))
			if fromCache {
				msg += " " + ui.Muted.Sprint("cached")
			}
			msg += "\n"
			for _, d := range departments {
				msg += "  " + d.Name + "\n"
			}
			spinner.FinalMSG = msg
			return
		}

		department := args[0]
		var courses []models.Course
		fromCache := false

		courses, err = rt.client.Courses(ctx, department)
		if err != nil {
			Logger.Warnf("Backend unreachable, trying local cache: %v", err)
			if ok, cacheErr := store.Get("courses/"+department, cache.DefaultTTL, &courses); cacheErr != nil || !ok {
				spinner.FinalMSG = color.RedString("✗") + " Failed to fetch courses for " + ui.Highlight.Sprint(department) + ": " + err.Error()
				return
			}
			fromCache = true
		} else {
			if err := store.Put("courses/"+department, courses); err != nil {
				Logger.Warnf("Failed to update local cache: %v", err)
			}
		}

		msg := color.GreenString("✓") + fmt.Sprintf(" %d courses in %s", len(courses), ui.Highlight.Sprint(department))
		if fromCache {
			msg += " " + ui.Muted.Sprint("cached")
		}
		msg += "\n"
		for _, c := range courses {
			msg += fmt.Sprintf("  %-12s %s\n", c.Number, c.Name)
		}
		spinner.FinalMSG = msg
	},
}

func init() {
	addVerbosityFlags(CoursesCmd.Flags())
}
