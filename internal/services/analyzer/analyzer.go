// Package analyzer scores Grand Exchange flip candidates: validation, margin and
// confidence scoring, fill-time estimation and advisory narratives.
//
// Every operation is a synchronous function of its inputs. Degenerate input
// (zero buy price, zero volume) is not guarded and propagates as NaN or
// infinite values; callers gate on Validate first.
package analyzer

import (
	"math"

	"go.uber.org/zap"

	"github.com/vadiminshakov/geflip/internal/domain"
)

const (
	// DefaultTaxRate is the sell-side Grand Exchange tax.
	DefaultTaxRate = 0.01

	// ScoringDefaultBuyLimit is the quota assumed by Analyze when the item has none.
	ScoringDefaultBuyLimit = 100
	// TimingDefaultBuyLimit is the quota assumed by AnalyzeTime when the item has none.
	TimingDefaultBuyLimit = 1

	// share of the observed volume a single flip may take
	liquidityShare = 0.1
)

// Analyzer computes trade opportunities. It is immutable and safe for concurrent use.
type Analyzer struct {
	logger  *zap.Logger
	taxRate float64
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithTaxRate overrides the sell-side tax rate.
func WithTaxRate(rate float64) Option {
	return func(a *Analyzer) {
		a.taxRate = rate
	}
}

// New creates an Analyzer. A nil logger disables logging.
func New(logger *zap.Logger, opts ...Option) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Analyzer{
		logger:  logger,
		taxRate: DefaultTaxRate,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// TaxRate returns the sell-side tax rate in use.
func (a *Analyzer) TaxRate() float64 {
	return a.taxRate
}

// Analyze scores obs against cfg. Only cfg.MaxInvestment is used.
// Analyze does not reject invalid observations; validate them first.
func (a *Analyzer) Analyze(obs domain.ItemObservation, cfg domain.TradingConfig) domain.TradeOpportunity {
	buyPrice := obs.AvgLowPrice
	netSellPrice := obs.AvgHighPrice * (1 - a.taxRate)
	profitPerItem := netSellPrice - buyPrice
	volume := float64(obs.Volume())
	roi := profitPerItem / buyPrice * 100

	buyLimit := float64(obs.LimitOr(ScoringDefaultBuyLimit))

	confidence := Confidence(obs)
	priceStability := PriceStability(obs)
	quantity := recommendedQuantity(volume, buyLimit, buyPrice, cfg.MaxInvestment)

	name := obs.DisplayName()
	opp := domain.TradeOpportunity{
		ItemID:               obs.ItemID,
		Name:                 name,
		Icon:                 domain.IconURL(name),
		BuyPrice:             buyPrice,
		SellPrice:            obs.AvgHighPrice,
		NetSellPrice:         netSellPrice,
		Volume:               volume,
		ProfitPerItem:        profitPerItem,
		TotalPotentialProfit: profitPerItem * quantity,
		ROI:                  roi,
		BuyLimit:             buyLimit,
		Confidence:           confidence,
		PriceStability:       priceStability,
		RecommendedQuantity:  quantity,
		// the daily volume is used as the hourly rate on purpose: this is the
		// optimistic headline figure, TimeAnalysis carries the hourly model
		ExpectedTimeToSell: expectedTimeToSell(volume, quantity),
		ConfidenceToProfit: math.Sqrt(confidence*math.Sqrt(profitPerItem*quantity)) / 10,
		TimeAnalysis:       a.AnalyzeTime(obs),
		Members:            obs.Members(),
	}

	if !opp.Finite() {
		a.logger.Debug("opportunity has non-finite scores",
			zap.String("item", obs.ItemID),
			zap.Float64("buy_price", buyPrice),
			zap.Float64("volume", volume),
		)
	}

	return opp
}

// recommendedQuantity is bound by liquidity, budget and the purchase quota,
// whichever is smallest.
func recommendedQuantity(volume, buyLimit, buyPrice, maxInvestment float64) float64 {
	byVolume := math.Floor(volume * liquidityShare)
	byInvestment := math.Floor(maxInvestment / buyPrice)

	return math.Min(math.Min(byVolume, byInvestment), buyLimit)
}
