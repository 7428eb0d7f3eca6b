package cli

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tiagomars/weather-data-pipeline/internal/config"
)

// newRunCmd creates the "run" sub-command: a single one-off pipeline run,
// the manual-trigger equivalent of the daily schedule.
func newRunCmd() *cobra.Command {
	var date string

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Execute one pipeline run for a given date",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(date)
		},
	}

	runCmd.Flags().StringVarP(&date, "date", "d", "", "Run date (YYYY-MM-DD, default: today UTC)")

	return runCmd
}

func runOnce(date string) error {
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid --date %q: %w", date, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	p, err := newPipeline(cfg, nil)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, cfg.RunTimeout)
	defer cancel()

	exec, err := p.Execute(ctx, date)
	if err != nil {
		return fmt.Errorf("run %s: %w", date, err)
	}

	log.Printf("INFO: run %s finished: state=%s raw=%s processed=%s",
		date, exec.State, exec.RawKey, exec.ProcessedKey)
	return nil
}
