package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestGetYaml(t *testing.T) {
	path := writeConfig(t, `
platform: coingecko
coins: [Bitcoin, ethereum]
currency: EUR
monthly_amount: "250.50"
start_date: "2024-01-15"
day_of_month: 15
listen_addr: ":9090"
coingecko_api_key: demo-key
`)
	t.Setenv("COINGECKO_API_KEY", "")

	cfg, err := getYaml(path)
	require.NoError(t, err)

	require.Equal(t, "coingecko", cfg.Platform)
	require.Equal(t, []string{"bitcoin", "ethereum"}, cfg.Coins)
	require.Equal(t, "eur", cfg.Currency)
	require.Equal(t, "btc", cfg.ReferenceCoin)
	require.True(t, cfg.MonthlyAmount.Equal(decimal.RequireFromString("250.50")))
	require.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), cfg.StartDate)
	require.Equal(t, 15, cfg.DayOfMonth)
	require.Equal(t, ":9090", cfg.ListenAddr)
	require.Equal(t, DefaultWALDir, cfg.WALDir)
	require.Equal(t, "demo-key", cfg.CoinGeckoAPIKey)

	plan, ok := cfg.Plan()
	require.True(t, ok)
	require.Equal(t, []string{"bitcoin", "ethereum"}, plan.Coins)
	require.NoError(t, plan.Validate())
}

func TestGetYaml_EnvOverridesAPIKey(t *testing.T) {
	path := writeConfig(t, `
platform: coingecko
coins: [bitcoin]
currency: eur
monthly_amount: "100"
day_of_month: 1
coingecko_api_key: file-key
`)
	t.Setenv("COINGECKO_API_KEY", "env-key")

	cfg, err := getYaml(path)
	require.NoError(t, err)
	require.Equal(t, "env-key", cfg.CoinGeckoAPIKey)

	// no start date means no initial plan
	_, ok := cfg.Plan()
	require.False(t, ok)
}

func TestGetYaml_RejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"unknown platform": `
platform: kraken
coins: [bitcoin]
currency: eur
monthly_amount: "100"
day_of_month: 1
`,
		"no coins": `
platform: simulate
coins: []
currency: eur
monthly_amount: "100"
day_of_month: 1
`,
		"bad amount": `
platform: simulate
coins: [bitcoin]
currency: eur
monthly_amount: "lots"
day_of_month: 1
`,
		"negative amount": `
platform: simulate
coins: [bitcoin]
currency: eur
monthly_amount: "-5"
day_of_month: 1
`,
		"day out of range": `
platform: simulate
coins: [bitcoin]
currency: eur
monthly_amount: "100"
day_of_month: 32
`,
		"bad start date": `
platform: simulate
coins: [bitcoin]
currency: eur
monthly_amount: "100"
start_date: "15/01/2024"
day_of_month: 1
`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := getYaml(writeConfig(t, body))
			require.Error(t, err)
		})
	}
}

func TestGetYaml_Defaults(t *testing.T) {
	path := writeConfig(t, `
coins: [bitcoin]
currency: eur
monthly_amount: "100"
day_of_month: 1
`)

	cfg, err := getYaml(path)
	require.NoError(t, err)
	require.Equal(t, "coingecko", cfg.Platform)
	require.Equal(t, DefaultListenAddr, cfg.ListenAddr)
	require.Equal(t, "btc", cfg.ReferenceCoin)
}
