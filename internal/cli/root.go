package cli

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"LedgerLens/internal/config"
	"LedgerLens/internal/pipeline"
	"LedgerLens/internal/pricefeed"
	"LedgerLens/internal/recorder"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "ledgerlens",
	Short: "Reconstruct daily holdings, valuations and returns from a trade ledger",
	Long: `ledgerlens replays a raw trade ledger day by day against historical
price data and produces gap-free, numerically finite daily position,
valuation and return series for portfolio analytics.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	log.SetFlags(log.LstdFlags)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "configs/config.yaml", "path to YAML config")
}

func loadConfig() (*config.Config, error) {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildResolver assembles the three price tiers in priority order:
// authenticated feed, public feed, synthetic generator.
func buildResolver(cfg *config.Config) *pricefeed.Resolver {
	return pricefeed.NewResolver(
		pricefeed.NewAuthenticatedSource(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy),
		pricefeed.NewPublicSource(cfg.DataSource.BaseURL, cfg.Proxy),
		&pricefeed.SyntheticSource{
			StartPrice: cfg.Synthetic.StartPrice,
			Volatility: cfg.Synthetic.Volatility,
		},
	)
}

func buildRecorder(cfg *config.Config) recorder.Recorder {
	recorders := recorder.Tee{&recorder.CSVRecorder{
		PositionsPath:  cfg.Output.PositionsCSV,
		ValuationsPath: cfg.Output.ValuationsCSV,
		ReturnsPath:    cfg.Output.ReturnsCSV,
		PricesDir:      cfg.Output.PricesDir,
	}}
	if cfg.Output.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Output.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, continuing without it: %v", err)
		} else {
			recorders = append(recorders, sr)
		}
	}
	return recorders
}

func buildPipeline(cfg *config.Config, rec recorder.Recorder, initialCash float64) *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Resolver:    buildResolver(cfg),
		Recorder:    rec,
		InitialCash: initialCash,
		Pegged:      cfg.Portfolio.Pegged,
		SymbolMap:   cfg.Portfolio.SymbolMap,
	}
}
