package commands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pomotrack/pomotrack/internal/api"
	"github.com/pomotrack/pomotrack/internal/util"
)

var (
	// Logging related
	debug bool

	// Backend connection
	serverURL string

	// Output related
	timezone string

	rootCmd = &cobra.Command{
		Use:   "pomotrack",
		Short: "Pomodoro timer and statistics client",
		Long: `pomotrack is a command-line pomodoro client. It runs timed work and
break sessions against a pomodoro backend, manages the task list the
sessions are booked on, and renders statistics for the recorded
sessions.

Examples:
  pomotrack login --email dev@example.com     # Sign in to the backend
  pomotrack timer                             # Run the interactive timer
  pomotrack tasks add "Write the report"      # Add a task
  pomotrack stats --period weekly             # Show last week's statistics
  pomotrack stats --period monthly -o json    # Monthly statistics as JSON`,
	}
)

const (
	defaultServerURL  = "http://localhost:5000"
	defaultLogFile    = "~/.pomotrack/logs/app.log"
	defaultCookieFile = "~/.pomotrack/cookies.json"
	defaultPrefsFile  = "~/.pomotrack/prefs.json"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServerURL,
		"Backend server URL")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "Local",
		"Timezone setting (e.g., Asia/Shanghai, UTC)")
}

// initRuntime sets up logging and the time provider; every command runs
// it first
func initRuntime() error {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := expandPath(defaultLogFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return err
	}
	util.InitLogger(logLevel, logFile, debug)
	return util.InitializeTimeProvider(timezone)
}

// newClient creates the API client with the persistent cookie store
func newClient() (*api.Client, error) {
	return api.NewClient(serverURL, api.WithCookieFile(expandPath(defaultCookieFile)))
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
