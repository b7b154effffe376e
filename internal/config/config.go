package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		BaseURL   string `yaml:"base_url"`
		APIKey    string `yaml:"api_key"`
		APISecret string `yaml:"api_secret"`
	} `yaml:"data_source"`
	Synthetic struct {
		StartPrice float64 `yaml:"start_price"`
		Volatility float64 `yaml:"volatility"`
	} `yaml:"synthetic"`
	Portfolio struct {
		InitialCash float64            `yaml:"initial_cash"`
		Pegged      map[string]float64 `yaml:"pegged"`     // asset -> fixed quote price
		SymbolMap   map[string]string  `yaml:"symbol_map"` // asset -> market symbol
	} `yaml:"portfolio"`
	Output struct {
		PositionsCSV  string `yaml:"positions_csv"`
		ValuationsCSV string `yaml:"valuations_csv"`
		ReturnsCSV    string `yaml:"returns_csv"`
		PricesDir     string `yaml:"prices_dir"`
		SQLitePath    string `yaml:"sqlite_path"`
	} `yaml:"output"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides, then fills defaults. A missing file is not an error;
// defaults cover a credential-free offline run.
func Load(path string) (*Config, error) {
	// Credentials may live in a .env next to the binary, as with the
	// exchange exports this tool consumes. A missing .env is fine.
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("BINANCE_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("BINANCE_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("BINANCE_API_SECRET"); v != "" {
		cfg.DataSource.APISecret = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("INITIAL_CASH"); v != "" {
		var cash float64
		if _, err := fmt.Sscanf(v, "%f", &cash); err == nil {
			cfg.Portfolio.InitialCash = cash
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Output.SQLitePath = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}

	// Defaults
	if cfg.DataSource.BaseURL == "" {
		cfg.DataSource.BaseURL = "https://api.binance.com"
	}
	if cfg.Synthetic.StartPrice == 0 {
		cfg.Synthetic.StartPrice = 95000
	}
	if cfg.Synthetic.Volatility == 0 {
		cfg.Synthetic.Volatility = 0.02
	}
	if cfg.Portfolio.Pegged == nil {
		cfg.Portfolio.Pegged = map[string]float64{
			"USDT": 1.0,
			"BUSD": 1.0,
			"USDC": 1.0,
			"USD":  1.0,
		}
	}
	if cfg.Output.PositionsCSV == "" {
		cfg.Output.PositionsCSV = "positions.csv"
	}
	if cfg.Output.ReturnsCSV == "" {
		cfg.Output.ReturnsCSV = "returns.csv"
	}
	if cfg.Output.ValuationsCSV == "" {
		cfg.Output.ValuationsCSV = "valuations.csv"
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 0 6 * * *"
	}

	return cfg, nil
}

// MarketSymbol maps an asset to the market symbol used for price lookups,
// defaulting to <ASSET>USDT.
func (c *Config) MarketSymbol(asset string) string {
	if s, ok := c.Portfolio.SymbolMap[asset]; ok {
		return s
	}
	return asset + "USDT"
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.DataSource.BaseURL == "" {
		return fmt.Errorf("data_source.base_url is required")
	}
	if c.Synthetic.StartPrice <= 0 {
		return fmt.Errorf("synthetic.start_price must be positive")
	}
	if c.Synthetic.Volatility <= 0 {
		return fmt.Errorf("synthetic.volatility must be positive")
	}
	for asset, price := range c.Portfolio.Pegged {
		if price <= 0 {
			return fmt.Errorf("portfolio.pegged.%s must be positive", asset)
		}
	}
	return nil
}
