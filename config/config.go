// Package config loads the simulator configuration from a yaml file or,
// when no file is given, from CLI flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/dripfolio/dripfolio/internal/domain"
)

const (
	DefaultListenAddr = ":8080"
	DefaultWALDir     = "./wal/simulations"

	dateLayout = "2006-01-02"
)

// Config is the resolved runtime configuration.
type Config struct {
	// Platform selects the price source: coingecko, binance, bybit or simulate.
	Platform string

	Coins         []string
	Currency      string
	ReferenceCoin string
	MonthlyAmount decimal.Decimal
	StartDate     time.Time
	DayOfMonth    int

	ListenAddr      string
	WALDir          string
	CoinGeckoAPIKey string
}

// ConfigTmp is the yaml wire form. Decimal and date fields travel as
// strings and are validated while converting to Config.
type ConfigTmp struct {
	Platform        string   `yaml:"platform"`
	Coins           []string `yaml:"coins"`
	Currency        string   `yaml:"currency"`
	ReferenceCoin   string   `yaml:"reference_coin,omitempty"`
	MonthlyAmount   string   `yaml:"monthly_amount"`
	StartDate       string   `yaml:"start_date"`
	DayOfMonth      int      `yaml:"day_of_month"`
	ListenAddr      string   `yaml:"listen_addr,omitempty"`
	WALDir          string   `yaml:"wal_dir,omitempty"`
	CoinGeckoAPIKey string   `yaml:"coingecko_api_key,omitempty"`
}

// Get reads the configuration from the yaml file named by -config, or from
// the remaining CLI flags when -config is empty. The COINGECKO_API_KEY env
// var overrides the file value either way.
func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	platform := flag.String("platform", "coingecko", "price source: coingecko, binance, bybit or simulate")
	coins := flag.String("coins", "bitcoin", "comma-separated coin slugs, example: bitcoin,ethereum")
	currency := flag.String("currency", "eur", "fiat currency the plan invests in")
	refCoin := flag.String("refcoin", domain.ReferenceCoin, "coin used for cross-rate valuation")
	amount := flag.String("amount", "100", "monthly investment amount")
	start := flag.String("start", "", "plan start date, example: 2024-01-15")
	day := flag.Int("day", 1, "day of month the plan invests on")
	listen := flag.String("listen", DefaultListenAddr, "HTTP listen address")
	walDir := flag.String("waldir", DefaultWALDir, "directory of the run journal")
	flag.Parse()

	if *configPath != "" {
		return getYaml(*configPath)
	}

	tmp := ConfigTmp{
		Platform:      *platform,
		Coins:         strings.Split(*coins, ","),
		Currency:      *currency,
		ReferenceCoin: *refCoin,
		MonthlyAmount: *amount,
		StartDate:     *start,
		DayOfMonth:    *day,
		ListenAddr:    *listen,
		WALDir:        *walDir,
	}
	return tmp.resolve()
}

func getYaml(path string) (Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var tmp ConfigTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return Config{}, err
	}
	return tmp.resolve()
}

func (t ConfigTmp) resolve() (Config, error) {
	cfg := Config{
		Platform:        domain.NormalizeSlug(t.Platform),
		Currency:        domain.NormalizeSlug(t.Currency),
		ReferenceCoin:   domain.NormalizeSlug(t.ReferenceCoin),
		DayOfMonth:      t.DayOfMonth,
		ListenAddr:      t.ListenAddr,
		WALDir:          t.WALDir,
		CoinGeckoAPIKey: t.CoinGeckoAPIKey,
	}

	switch cfg.Platform {
	case "coingecko", "binance", "bybit", "simulate":
	case "":
		cfg.Platform = "coingecko"
	default:
		return Config{}, fmt.Errorf("unknown 'platform' param: %s", t.Platform)
	}

	for _, c := range t.Coins {
		if slug := domain.NormalizeSlug(c); slug != "" {
			cfg.Coins = append(cfg.Coins, slug)
		}
	}
	if len(cfg.Coins) == 0 {
		return Config{}, fmt.Errorf("at least one coin is required")
	}

	if cfg.Currency == "" {
		return Config{}, fmt.Errorf("'currency' param is required")
	}
	if cfg.ReferenceCoin == "" {
		cfg.ReferenceCoin = domain.ReferenceCoin
	}

	amount, err := decimal.NewFromString(t.MonthlyAmount)
	if err != nil {
		return Config{}, fmt.Errorf("incorrect 'monthly_amount' param (correct format is 100.50): %w", err)
	}
	if !amount.IsPositive() {
		return Config{}, fmt.Errorf("'monthly_amount' param must be positive, got %s", amount)
	}
	cfg.MonthlyAmount = amount

	if t.StartDate != "" {
		startDate, err := time.Parse(dateLayout, t.StartDate)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'start_date' param (correct format is %s): %w", dateLayout, err)
		}
		cfg.StartDate = startDate
	}

	if cfg.DayOfMonth < 1 || cfg.DayOfMonth > 31 {
		return Config{}, fmt.Errorf("'day_of_month' param must be within 1..31, got %d", t.DayOfMonth)
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.WALDir == "" {
		cfg.WALDir = DefaultWALDir
	}

	if key := os.Getenv("COINGECKO_API_KEY"); key != "" {
		cfg.CoinGeckoAPIKey = key
	}

	return cfg, nil
}

// Plan converts the configured defaults into an investment plan. The zero
// StartDate means no plan was configured and no initial run happens.
func (c Config) Plan() (domain.InvestmentPlan, bool) {
	if c.StartDate.IsZero() {
		return domain.InvestmentPlan{}, false
	}
	return domain.InvestmentPlan{
		Coins:         c.Coins,
		StartDate:     c.StartDate,
		DayOfMonth:    c.DayOfMonth,
		MonthlyAmount: c.MonthlyAmount,
		Currency:      c.Currency,
	}, true
}
