// Package report renders opportunities and item inspections for the terminal.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/geflip/internal/domain"
	"github.com/vadiminshakov/geflip/internal/services/analyzer"
	"github.com/vadiminshakov/geflip/internal/services/narrative"
	"github.com/vadiminshakov/geflip/internal/services/screener"
)

const unknown = "n/a"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	profitStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	lossStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#16858E")).
			Padding(0, 1)
)

type column struct {
	title string
	width int
	value func(domain.TradeOpportunity) string
}

var columns = []column{
	{"ID", 7, func(o domain.TradeOpportunity) string { return o.ItemID }},
	{"Item", 28, func(o domain.TradeOpportunity) string { return truncate(o.Name, 27) }},
	{"Buy", 13, func(o domain.TradeOpportunity) string { return Coins(o.BuyPrice) }},
	{"Sell", 13, func(o domain.TradeOpportunity) string { return Coins(o.SellPrice) }},
	{"Profit", 11, func(o domain.TradeOpportunity) string { return Coins(o.ProfitPerItem) }},
	{"ROI", 9, func(o domain.TradeOpportunity) string { return Percent(o.ROI) }},
	{"Qty", 8, func(o domain.TradeOpportunity) string { return Count(o.RecommendedQuantity) }},
	{"Total", 15, func(o domain.TradeOpportunity) string { return Coins(o.TotalPotentialProfit) }},
	{"Conf", 6, func(o domain.TradeOpportunity) string { return Ratio(o.Confidence) }},
	{"Time", 18, func(o domain.TradeOpportunity) string { return o.TimeAnalysis.TotalTime.Formatted }},
}

// Opportunities writes a table of opportunities.
func Opportunities(w io.Writer, title string, opportunities []domain.TradeOpportunity) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	if len(opportunities) == 0 {
		b.WriteString(mutedStyle.Render("no opportunities match the current thresholds"))
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	cells := make([]string, 0, len(columns))
	for _, c := range columns {
		cells = append(cells, headerStyle.Width(c.width).Render(c.title))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	b.WriteString("\n")

	for _, opp := range opportunities {
		cells = cells[:0]
		for _, c := range columns {
			style := lipgloss.NewStyle().Width(c.width)
			if c.title == "Profit" {
				style = style.Inherit(signStyle(opp.ProfitPerItem))
			}
			cells = append(cells, style.Render(c.value(opp)))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Summary writes bucket counts of a scan.
func Summary(w io.Writer, total int, buckets screener.Buckets) error {
	body := fmt.Sprintf(
		"Opportunities: %d\nHigh confidence: %d\nHigh ROI: %d\nHigh volume: %d",
		total, len(buckets.HighConfidence), len(buckets.HighROI), len(buckets.HighVolume),
	)
	_, err := fmt.Fprintln(w, boxStyle.Render(body))
	return err
}

// Inspection writes the detail view of a single item.
func Inspection(w io.Writer, name string, in analyzer.Inspection, r narrative.Renderer) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render(name))
	b.WriteString("\n")

	if !in.Validation.Valid {
		b.WriteString(lossStyle.Render(in.Validation.Summary()))
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	for _, warning := range in.Warnings {
		b.WriteString(warningStyle.Render("⚠ " + warning))
		b.WriteString("\n")
	}

	opp := in.Opportunity
	lines := []string{
		fmt.Sprintf("Buy price:        %s", Coins(opp.BuyPrice)),
		fmt.Sprintf("Sell price:       %s (%s after tax)", Coins(opp.SellPrice), Coins(opp.NetSellPrice)),
		fmt.Sprintf("Profit per item:  %s", signStyle(opp.ProfitPerItem).Render(Coins(opp.ProfitPerItem))),
		fmt.Sprintf("ROI:              %s", Percent(opp.ROI)),
		fmt.Sprintf("Buy limit:        %s", Count(opp.BuyLimit)),
		fmt.Sprintf("Volume:           %s", Count(opp.Volume)),
		fmt.Sprintf("Quantity:         %s", Count(opp.RecommendedQuantity)),
		fmt.Sprintf("Total profit:     %s", Coins(opp.TotalPotentialProfit)),
		fmt.Sprintf("Confidence:       %s", Percent(opp.Confidence*100)),
		fmt.Sprintf("Price stability:  %s", Percent(opp.PriceStability*100)),
		fmt.Sprintf("Expected to sell: %s", opp.ExpectedTimeToSell),
	}
	b.WriteString(boxStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")

	ta := opp.TimeAnalysis
	timing := []string{
		fmt.Sprintf("Buy:   %s", ta.BuyTime.Formatted),
		fmt.Sprintf("Sell:  %s", ta.SellTime.Formatted),
		fmt.Sprintf("Total: %s (confidence %s)", ta.TotalTime.Formatted, Percent(ta.Confidence*100)),
	}
	for _, text := range narrative.Texts(r, ta.Factors) {
		timing = append(timing, "• "+text)
	}
	for _, text := range narrative.Texts(r, ta.Advice) {
		timing = append(timing, "→ "+text)
	}
	b.WriteString(headerStyle.Render("Timing"))
	b.WriteString("\n")
	b.WriteString(strings.Join(timing, "\n"))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render("Volume"))
	b.WriteString("\n")
	b.WriteString(narrative.Join(r, in.VolumeRemarks))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render("Advice"))
	b.WriteString("\n")
	b.WriteString(narrative.Join(r, in.AdviceRemarks))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Coins formats a coin amount with thousands separators.
func Coins(v float64) string {
	if !finite(v) {
		return unknown
	}
	return humanize.Comma(decimal.NewFromFloat(v).Round(0).IntPart()) + " gp"
}

// Count formats a whole quantity with thousands separators.
func Count(v float64) string {
	if !finite(v) {
		return unknown
	}
	return humanize.Comma(decimal.NewFromFloat(v).Round(0).IntPart())
}

// Percent formats v, already in percent, with two decimals.
func Percent(v float64) string {
	if !finite(v) {
		return unknown
	}
	return decimal.NewFromFloat(v).StringFixed(2) + "%"
}

// Ratio formats a 0..1 score with two decimals.
func Ratio(v float64) string {
	if !finite(v) {
		return unknown
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func signStyle(v float64) lipgloss.Style {
	if v > 0 {
		return profitStyle
	}
	return lossStyle
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
