package setup

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/vadiminshakov/geflip/config"
	"github.com/vadiminshakov/geflip/internal/services/screener"
)

// DefaultPath where the wizard writes its result.
const DefaultPath = "geflip.gen.yaml"

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

func step(title string) {
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("GEFLIP CONFIG WIZARD"))
	fmt.Println(stepStyle.Render(title))
}

// RunTUI launches the terminal configuration wizard and writes the result to path.
func RunTUI(path string) error {
	if path == "" {
		path = DefaultPath
	}

	defaults := config.Default().Tmp()
	answers := defaults
	var confirm bool

	// step 1: welcome
	step("STEP 1: MARKET DATA")
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Point geflip at a price snapshot and the item mapping.\n"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Price snapshot").
				Description("JSON in the prices API /1h format").
				Value(&answers.PricesPath).
				Validate(notEmpty),
			huh.NewInput().
				Title("Item mapping").
				Description("JSON in the prices API /mapping format").
				Value(&answers.MappingPath).
				Validate(notEmpty),
		),
	).Run()
	if err != nil {
		return err
	}

	step("STEP 2: THRESHOLDS")
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Max investment per trade").
				Description("Coins (e.g. 5000000)").
				Value(&answers.MaxInvestmentStr).
				Validate(positiveDecimal),
			huh.NewInput().
				Title("Min volume").
				Description("Items traded in the window").
				Value(&answers.MinVolumeStr).
				Validate(nonNegativeDecimal),
			huh.NewInput().
				Title("Min ROI %").
				Value(&answers.MinROIStr).
				Validate(nonNegativeDecimal),
			huh.NewInput().
				Title("Min profit per item").
				Value(&answers.MinProfitPerItemStr).
				Validate(nonNegativeDecimal),
			huh.NewInput().
				Title("Min spread %").
				Value(&answers.MinSpreadPercentageStr).
				Validate(nonNegativeDecimal),
			huh.NewInput().
				Title("GE tax rate").
				Description("Fraction of the sell price (e.g. 0.01)").
				Value(&answers.TaxRateStr).
				Validate(validateTax),
		),
	).Run()
	if err != nil {
		return err
	}

	step("STEP 3: LISTING")
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Sort opportunities by").
				Options(
					huh.NewOption("Confidence", string(screener.FieldConfidence)),
					huh.NewOption("ROI", string(screener.FieldROI)),
					huh.NewOption("Profit per item", string(screener.FieldProfit)),
					huh.NewOption("Total profit", string(screener.FieldTotalProfit)),
					huh.NewOption("Volume", string(screener.FieldVolume)),
					huh.NewOption("Confidence to profit", string(screener.FieldConfidenceToProfit)),
					huh.NewOption("Price stability", string(screener.FieldStability)),
				).
				Value(&answers.SortBy),
			huh.NewSelect[string]().
				Title("Items").
				Options(
					huh.NewOption("All", string(screener.MembershipAll)),
					huh.NewOption("Members only", string(screener.MembershipMembers)),
					huh.NewOption("Free to play only", string(screener.MembershipF2P)),
				).
				Value(&answers.Members),
			huh.NewInput().
				Title("HTTP listen address").
				Value(&answers.Listen).
				Validate(notEmpty),
		),
	).Run()
	if err != nil {
		return err
	}

	// confirmation
	step("FINAL CONFIRMATION")

	summary := fmt.Sprintf(
		"Prices: %s\nMapping: %s\nMax investment: %s\nMin ROI: %s%%\nTax: %s\nSort: %s\nItems: %s\n",
		answers.PricesPath, answers.MappingPath, answers.MaxInvestmentStr, answers.MinROIStr,
		answers.TaxRateStr, answers.SortBy, answers.Members,
	)
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save").
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

	if err := Save(path, answers); err != nil {
		return err
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(fmt.Sprintf("\n✓ Configuration saved to %s\nRun: geflip scan --config %s", path, path)))
	return nil
}

// Save validates the answers and writes them as yaml.
func Save(path string, answers config.ConfigTmp) error {
	if _, err := answers.Parse(); err != nil {
		return err
	}

	data, err := yaml.Marshal(answers)
	if err != nil {
		return fmt.Errorf("failed to generate yaml: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}
	return nil
}

func notEmpty(s string) error {
	if s == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}

func positiveDecimal(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("must be a valid number")
	}
	if !d.IsPositive() {
		return fmt.Errorf("must be greater than 0")
	}
	return nil
}

func nonNegativeDecimal(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("must be a valid number")
	}
	if d.IsNegative() {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func validateTax(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("must be a valid number")
	}
	if d.IsNegative() || d.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("must be between 0 and 1")
	}
	return nil
}
