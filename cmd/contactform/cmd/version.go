package cmd

import (
	"github.com/runvoy/contactform/internal/client/output"
	"github.com/runvoy/contactform/internal/constants"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the version of the CLI",
	Run: func(_ *cobra.Command, _ []string) {
		output.KeyValue("CLI version", *constants.GetVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
