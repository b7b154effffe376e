package cli

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"LedgerLens/internal/ledger"
	"LedgerLens/internal/scheduler"
)

var (
	watchLedger string
	watchStart  string
	watchEnd    string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the analysis on a cron schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		start, err := parseDay(watchStart)
		if err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
		endFixed, err := parseDay(watchEnd)
		if err != nil {
			return fmt.Errorf("invalid --end: %w", err)
		}

		refresh := func() {
			records, err := ledger.ReadCSV(watchLedger)
			if err != nil {
				log.Printf("[ERROR] refresh: %v", err)
				return
			}
			end := endFixed
			if end.IsZero() {
				end = time.Now()
			}
			rec := buildRecorder(cfg)
			defer rec.Close()

			result, err := buildPipeline(cfg, rec, cfg.Portfolio.InitialCash).Run(records, start, end)
			if err != nil {
				log.Printf("[ERROR] refresh: %v", err)
				return
			}
			reportResult(result)
		}

		// Run once up front, then on the configured schedule.
		refresh()

		sched, err := scheduler.New(cfg.Schedule.RefreshCron, refresh)
		if err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		log.Printf("[INFO] watching %s on schedule %q, Ctrl+C to stop", watchLedger, cfg.Schedule.RefreshCron)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("[INFO] shutdown signal received, stopping")
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchLedger, "ledger", "", "path to the trade ledger CSV (required)")
	watchCmd.Flags().StringVar(&watchStart, "start", "", "range start day YYYY-MM-DD (default: first trade)")
	watchCmd.Flags().StringVar(&watchEnd, "end", "", "range end day YYYY-MM-DD (default: today at refresh time)")
	watchCmd.MarkFlagRequired("ledger")
	rootCmd.AddCommand(watchCmd)
}
