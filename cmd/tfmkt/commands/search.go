package commands

import (
	"github.com/baldidon/transfermarkt-api/internal/io"
	"github.com/baldidon/transfermarkt-api/internal/managers"
	"github.com/spf13/cobra"
)

var searchPage int

func init() {
	searchCmd.Flags().IntVarP(&searchPage, "page", "p", 1, "Result page number")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <name> [--page N]",
	Short: "Searches managers by name and prints one page of results.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := newService(appConfig).Search(cmd.Context(), managers.SearchRequest{
			Query:      args[0],
			PageNumber: searchPage,
		})
		if err != nil {
			return err
		}

		w := io.NewResultWriter(&appConfig.IO)
		w.Stdout = cmd.OutOrStdout()
		return w.Write(res)
	},
}
