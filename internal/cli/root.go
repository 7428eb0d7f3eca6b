// Package cli handles the command-line interface logic using the Cobra library.
package cli

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/tiagomars/weather-data-pipeline/internal/config"
	"github.com/tiagomars/weather-data-pipeline/internal/pipeline"
	"github.com/tiagomars/weather-data-pipeline/internal/storage"
	"github.com/tiagomars/weather-data-pipeline/internal/weather"
)

// NewRootCmd creates and configures the main "root" command for the
// application and attaches all sub-commands.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "weather-pipeline",
		Short: "Daily ETL pipeline for weather observations",
		Long: `weather-pipeline collects current weather for a configured set of cities,
lands the raw batch in object storage, derives categorized records, and lands
those as parquet. One run per calendar date; re-runs overwrite.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

// newPipeline assembles the stage chain from configuration.
func newPipeline(cfg *config.AppConfig, history pipeline.HistoryStore) (*pipeline.Pipeline, error) {
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
	fetcher := weather.NewOpenWeatherClient(httpClient, cfg.OpenWeatherAPIKey, cfg.Lang)

	objects, err := storage.NewS3Store(cfg.Bucket)
	if err != nil {
		return nil, err
	}

	policy := pipeline.RetryPolicy{
		MaxRetries: cfg.StageMaxRetries,
		Delay:      cfg.StageRetryDelay,
	}

	return pipeline.New(fetcher, cfg.Locations, cfg.StagingDir, objects, history, policy), nil
}
