package cmd

import (
	"fmt"

	"github.com/KenichiNogami/ricePriceSurvey/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the version of the rice survey service`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Rice Price Survey v%s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
