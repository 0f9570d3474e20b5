package commands

import (
	"fmt"

	"github.com/baldidon/transfermarkt-api/internal/io"
	"github.com/baldidon/transfermarkt-api/internal/worker"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	profileInput  string
	profileOutput string
	profileFormat string
)

func init() {
	profileCmd.Flags().StringVarP(&profileInput, "input", "i", "", "File with manager ids or profile URLs, one per line")
	profileCmd.Flags().StringVarP(&profileOutput, "output", "o", "", "Write results to this file instead of stdout")
	profileCmd.Flags().StringVar(&profileFormat, "format", "", "Output format: json or jsonl")
	rootCmd.AddCommand(profileCmd)
}

var profileCmd = &cobra.Command{
	Use:   "profile [id|url]... [--input ids.txt] [--output results.json]",
	Short: "Extracts manager profiles, several at a time.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ioCfg := appConfig.IO
		if profileInput != "" {
			ioCfg.InputFile = profileInput
		}
		if profileOutput != "" {
			ioCfg.OutputFile = profileOutput
		}
		if profileFormat != "" {
			ioCfg.OutputFormat = profileFormat
		}

		ids, err := io.NewIDReader(&ioCfg).GetIDs(args)
		if err != nil {
			return err
		}

		log.Info().Int("ids", len(ids)).Int("workers", appConfig.Workers.Count).Msg("extracting profiles")
		results := worker.Run(cmd.Context(), &appConfig.Workers, newService(appConfig), ids)

		w := io.NewResultWriter(&ioCfg)
		w.Stdout = cmd.OutOrStdout()
		if err := w.Write(results); err != nil {
			return err
		}

		failed := 0
		for _, r := range results {
			if r.Failed() {
				failed++
			}
		}
		log.Info().Int("ok", len(results)-failed).Int("failed", failed).Msg("profiles done")
		if failed > 0 {
			return fmt.Errorf("%d of %d profiles failed", failed, len(results))
		}
		return nil
	},
}
