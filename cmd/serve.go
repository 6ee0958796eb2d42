package cmd

import (
	"github.com/KenichiNogami/ricePriceSurvey/logger"
	"github.com/KenichiNogami/ricePriceSurvey/server"
	"github.com/KenichiNogami/ricePriceSurvey/version"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Serve the rice survey endpoint (POST /api/riceSurvey) until SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Infof("Starting Rice Price Survey v%s 🍚", version.Version)

		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			settings.Server.Addr = addr
		}

		service, cleanup, err := newSurveyService(settings)
		if err != nil {
			return err
		}
		defer cleanup()

		return server.New(settings.Server, service).Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Address to listen on, overrides HTTP_ADDR and PORT")
}
