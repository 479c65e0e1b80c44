package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/runvoy/contactform/internal/client/output"
	"github.com/runvoy/contactform/internal/constants"
	"github.com/runvoy/contactform/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	debug   bool
	verbose bool
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   constants.ProjectName,
	Short: constants.ProjectName,
	Long: fmt.Sprintf(`%s - %s
Serverless contact form: store each submission and notify by email`,
		constants.ProjectName, *constants.GetVersion()),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		printHeader(cmd)

		if verbose {
			output.Infof("CLI build: " + output.Bold(*constants.GetVersion()))
			output.Infof("Verbose output enabled")
		}

		logger.Initialize(constants.CLI, logLevel())

		loaded, err := loadEnvFile(envFile)
		if err != nil {
			return err
		}
		if loaded && verbose {
			output.Infof("Loaded environment from %s", output.Bold(envFile))
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		output.Fatalf("%v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debugging logs")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file loaded before reading configuration")
}

// loadEnvFile loads KEY=value pairs into the process environment without
// overriding variables that are already set. A missing file is not an error.
func loadEnvFile(path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		return false, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return true, nil
}

func logLevel() slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func printHeader(cmd *cobra.Command) {
	output.Header(output.Bold("✉ " + constants.ProjectName + " " + cmd.CalledAs()))
}

// RootCmd returns the root command for use by tools like doc generators.
func RootCmd() *cobra.Command {
	return rootCmd
}
