package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var cronSpec string

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the pipeline on a cron schedule",
	Long: `Schedule keeps the process alive and executes a full collection run
on the given cron expression. Each run is independent; a run that finds
nothing to report exits cleanly and the next run fires as scheduled.

Example:
  intelbrief schedule
  intelbrief schedule --cron "0 13 * * MON" --recipient analyst@example.org`,
	Args: cobra.NoArgs,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().StringVar(&cronSpec, "cron", "0 13 * * MON", "cron expression for scheduled runs")

	// Same run flags as the one-shot command
	scheduleCmd.Flags().StringVar(&keywordsFile, "keywords", "keywords.csv", "tracked keywords file (CSV with a keyword column, or one per line)")
	scheduleCmd.Flags().StringVar(&searchKind, "kind", "news", "search vertical (news, web)")
	scheduleCmd.Flags().IntVar(&maxResults, "results", 20, "maximum search results to retrieve")
	scheduleCmd.Flags().StringVar(&window, "window", "week", "recency window (day, week, month, none)")
	scheduleCmd.Flags().DurationVar(&runTimeout, "timeout", 5*time.Minute, "timeout per run")
	scheduleCmd.Flags().StringVar(&outputDir, "output-dir", "./briefings", "directory for report documents")
	scheduleCmd.Flags().StringVar(&recipient, "recipient", "", "email recipient (empty skips email delivery)")
	scheduleCmd.Flags().StringVar(&geoTable, "geo-table", "city_to_msa_mapping.csv", "City,MSA lookup CSV")
	scheduleCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the page cache (force fresh fetches)")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Schedule.Cron = cronSpec

	// Components are built once per process and shared across runs.
	p, req, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.Schedule.Cron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		if runErr := executeRun(ctx, p, req); runErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: scheduled run failed: %v\n", runErr)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", cfg.Schedule.Cron, err)
	}

	scheduler.Start()
	fmt.Fprintf(os.Stderr, "Scheduled runs with %q; waiting\n", cfg.Schedule.Cron)

	// Block until interrupted, then let the current run finish.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	<-scheduler.Stop().Done()
	return nil
}
