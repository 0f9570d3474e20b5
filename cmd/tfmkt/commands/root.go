package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/baldidon/transfermarkt-api/internal/config"
	"github.com/baldidon/transfermarkt-api/internal/managers"
	"github.com/baldidon/transfermarkt-api/internal/scraper"
	"github.com/baldidon/transfermarkt-api/internal/telemetry"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	baseURL    string

	appConfig *config.AppConfig
	shutdown  telemetry.Shutdown
)

var rootCmd = &cobra.Command{
	Use:           "tfmkt",
	Short:         "tfmkt extracts manager search results and profiles from Transfermarkt.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := setupLogging(cfg.Log); err != nil {
			return err
		}

		shutdown, err = telemetry.Setup(cmd.Context(), cfg.Telemetry)
		if err != nil {
			log.Warn().Err(err).Msg("tracing disabled")
		}
		appConfig = cfg
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Override the Transfermarkt base URL")
}

// ExecuteContext runs the command line and returns the process exit code.
func ExecuteContext(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)

	if shutdown != nil {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if serr := shutdown(flushCtx); serr != nil {
			log.Warn().Err(serr).Msg("telemetry shutdown")
		}
		cancel()
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// loadConfig applies the command line flags on top of the file and
// environment before validation.
func loadConfig() (*config.AppConfig, error) {
	return config.Load(configPath, func(c *config.AppConfig) {
		if logLevel != "" {
			c.Log.Level = logLevel
		}
		if baseURL != "" {
			c.Scraper.BaseURL = baseURL
		}
	})
}

// setupLogging configures the global logger. Logs go to stderr so command
// output on stdout stays machine readable.
func setupLogging(c config.LogConfig) error {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)

	if c.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		return nil
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	return nil
}

func newService(cfg *config.AppConfig) *managers.Service {
	return managers.NewService(scraper.New(cfg), cfg.Scraper.BaseURL)
}
