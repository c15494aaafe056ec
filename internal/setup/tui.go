// Package setup provides the terminal wizard that writes a starter yaml
// configuration.
package setup

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/dripfolio/dripfolio/config"
	"github.com/dripfolio/dripfolio/internal/domain"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

// RunTUI launches the terminal configuration wizard and writes
// config.gen.yaml on confirmation.
func RunTUI() error {
	var (
		platform  string
		coinsStr  string
		currency  string
		amountStr string
		startStr  string
		dayStr    string
		listen    string
		apiKey    string
		confirm   bool
	)

	// defaults
	coinsStr = "bitcoin"
	currency = "eur"
	amountStr = "100"
	startStr = time.Now().UTC().AddDate(-1, 0, 0).Format("2006-01-02")
	dayStr = "1"
	listen = config.DefaultListenAddr

	// step 1: welcome and platform
	fmt.Print("\033[H\033[2J") // Clear screen
	fmt.Println(headerStyle.Render("DRIPFOLIO CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Let's set up your recurring investment simulation.\n"))

	fmt.Println(stepStyle.Render("STEP 1: PRICE SOURCE"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select Price Source").
				Options(
					huh.NewOption("CoinGecko", "coingecko"),
					huh.NewOption("Binance", "binance"),
					huh.NewOption("Bybit", "bybit"),
					huh.NewOption("Simulation", "simulate"),
				).
				Value(&platform),
		),
	).Run()
	if err != nil {
		return err
	}

	if platform == "coingecko" || platform == "bybit" {
		err = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("CoinGecko API Key").
					Description("Optional; falls back to the COINGECKO_API_KEY env var").
					Value(&apiKey).
					EchoMode(huh.EchoModePassword),
			),
		).Run()
		if err != nil {
			return err
		}
	}

	// step 2: coins
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("DRIPFOLIO CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 2: COINS"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Coins").
				Description("Comma-separated slugs (e.g. bitcoin,ethereum)").
				Value(&coinsStr).
				Validate(func(s string) error {
					if len(splitCoins(s)) == 0 {
						return fmt.Errorf("at least one coin is required")
					}
					return nil
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	// step 3: plan parameters
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("DRIPFOLIO CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 3: PLAN"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Currency").
				Description("Fiat currency the plan invests in (e.g. eur, usd)").
				Value(&currency).
				Validate(func(s string) error {
					if domain.NormalizeSlug(s) == "" {
						return fmt.Errorf("currency cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Monthly Amount").
				Description("Amount invested every period (e.g. 100.50)").
				Value(&amountStr).
				Validate(validateAmount),
			huh.NewInput().
				Title("Start Date").
				Description("First investment date (YYYY-MM-DD)").
				Value(&startStr).
				Validate(func(s string) error {
					_, err := time.Parse("2006-01-02", s)
					return err
				}),
			huh.NewInput().
				Title("Day of Month").
				Description("Day the plan invests on (1-31, clamped to short months)").
				Value(&dayStr).
				Validate(validateDay),
			huh.NewInput().
				Title("Listen Address").
				Description("HTTP listen address of the dashboard").
				Value(&listen),
		),
	).Run()
	if err != nil {
		return err
	}

	// confirmation
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("DRIPFOLIO CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("FINAL CONFIRMATION"))

	summary := fmt.Sprintf(
		"Source: %s\nCoins: %s\nCurrency: %s\nMonthly: %s\nStart: %s\nDay: %s\nListen: %s\n",
		platform, coinsStr, currency, amountStr, startStr, dayStr, listen,
	)
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save and start").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}

	if !confirm {
		return fmt.Errorf("setup cancelled by user")
	}

	day, _ := strconv.Atoi(dayStr)
	cfgTmp := config.ConfigTmp{
		Platform:        platform,
		Coins:           splitCoins(coinsStr),
		Currency:        domain.NormalizeSlug(currency),
		MonthlyAmount:   amountStr,
		StartDate:       startStr,
		DayOfMonth:      day,
		ListenAddr:      listen,
		CoinGeckoAPIKey: apiKey,
	}

	data, err := yaml.Marshal(cfgTmp)
	if err != nil {
		return fmt.Errorf("failed to generate yaml: %w", err)
	}

	filename := "config.gen.yaml"
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(fmt.Sprintf("\n✓ Configuration saved to %s\nStarting simulator...", filename)))
	time.Sleep(1500 * time.Millisecond) // small pause to read success message
	return nil
}

func splitCoins(s string) []string {
	coins := make([]string, 0)
	for _, c := range strings.Split(s, ",") {
		if slug := domain.NormalizeSlug(c); slug != "" {
			coins = append(coins, slug)
		}
	}
	return coins
}

func validateAmount(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("must be a valid number")
	}
	if !d.IsPositive() {
		return fmt.Errorf("must be positive")
	}
	return nil
}

func validateDay(s string) error {
	day, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a whole number")
	}
	if day < 1 || day > 31 {
		return fmt.Errorf("must be between 1 and 31")
	}
	return nil
}
