package report

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vadiminshakov/geflip/internal/domain"
	"github.com/vadiminshakov/geflip/internal/services/analyzer"
	"github.com/vadiminshakov/geflip/internal/services/narrative"
	"github.com/vadiminshakov/geflip/internal/services/screener"
)

func TestFormatters(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"small coins", Coins(999), "999 gp"},
		{"grouped coins", Coins(1234567), "1,234,567 gp"},
		{"rounded coins", Coins(1000.6), "1,001 gp"},
		{"negative coins", Coins(-12345), "-12,345 gp"},
		{"nan coins", Coins(math.NaN()), "n/a"},
		{"count", Count(25000), "25,000"},
		{"infinite count", Count(math.Inf(1)), "n/a"},
		{"percent", Percent(3.14159), "3.14%"},
		{"infinite percent", Percent(math.Inf(-1)), "n/a"},
		{"ratio", Ratio(0.5), "0.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}

func TestOpportunities(t *testing.T) {
	opps := []domain.TradeOpportunity{
		{ItemID: "1333", Name: "Rune scimitar", BuyPrice: 14800, SellPrice: 15200, ProfitPerItem: 248, ROI: 1.68, Confidence: 0.81},
		{ItemID: "2", Name: "Cannonball", BuyPrice: 0, ROI: math.NaN()},
	}

	var buf bytes.Buffer
	require.NoError(t, Opportunities(&buf, "Top flips", opps))

	out := buf.String()
	assert.Contains(t, out, "Top flips")
	assert.Contains(t, out, "Rune scimitar")
	assert.Contains(t, out, "14,800 gp")
	assert.Contains(t, out, "1.68%")
	assert.Contains(t, out, "n/a")
}

func TestOpportunitiesEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Opportunities(&buf, "Top flips", nil))
	assert.Contains(t, buf.String(), "no opportunities")
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	buckets := screener.Buckets{HighROI: make([]domain.TradeOpportunity, 2)}
	require.NoError(t, Summary(&buf, 7, buckets))
	assert.Contains(t, buf.String(), "Opportunities: 7")
	assert.Contains(t, buf.String(), "High ROI: 2")
}

func TestInspection(t *testing.T) {
	a := analyzer.New(zap.NewNop())
	obs := &domain.ItemObservation{
		ItemID:          "1333",
		AvgHighPrice:    15200,
		AvgLowPrice:     14800,
		HighPriceVolume: 1200,
		LowPriceVolume:  1300,
		Details:         &domain.ItemDetails{Name: "Rune scimitar", Limit: 70},
	}

	var buf bytes.Buffer
	in := a.Inspect(obs, domain.DefaultTradingConfig())
	require.NoError(t, Inspection(&buf, "Rune scimitar", in, narrative.English{}))

	out := buf.String()
	assert.Contains(t, out, "15,200 gp")
	assert.Contains(t, out, "Timing")
	assert.Contains(t, out, narrative.English{}.Render(in.VolumeRemarks[0]))
}

func TestInspectionInvalid(t *testing.T) {
	a := analyzer.New(zap.NewNop())

	var buf bytes.Buffer
	in := a.Inspect(nil, domain.DefaultTradingConfig())
	require.NoError(t, Inspection(&buf, "unknown", in, narrative.English{}))
	assert.Contains(t, buf.String(), "Item is undefined or null")
}
