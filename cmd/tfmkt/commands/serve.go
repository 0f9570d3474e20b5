package commands

import (
	"github.com/baldidon/transfermarkt-api/internal/api"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address, overrides server.addr")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve [--addr :8000]",
	Short: "Serves the managers API over HTTP.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			appConfig.Server.Addr = serveAddr
		}
		if appConfig.Log.Level != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}

		router := api.NewRouter(newService(appConfig))
		return api.Serve(cmd.Context(), appConfig.Server, router)
	},
}
