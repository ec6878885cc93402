// Package screener analyzes batches of observations and applies the caller-side
// trading thresholds: filtering, ordering and highlight buckets.
package screener

import (
	"context"
	"runtime"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vadiminshakov/geflip/internal/domain"
	"github.com/vadiminshakov/geflip/internal/services/analyzer"
)

const (
	highConfidence = 0.7
	highROI        = 5
	highVolume     = 1000
)

// Screener runs the analyzer over many observations.
type Screener struct {
	analyzer *analyzer.Analyzer
	logger   *zap.Logger
	workers  int
}

// New creates a Screener. workers bounds concurrent analyses; zero or less
// uses the number of CPUs.
func New(a *analyzer.Analyzer, logger *zap.Logger, workers int) *Screener {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Screener{analyzer: a, logger: logger, workers: workers}
}

// Scan analyzes observations concurrently. Observations without both average
// prices are skipped; everything else is scored, with a missing buy limit
// falling back to analyzer.ScoringDefaultBuyLimit. The result keeps input order.
func (s *Screener) Scan(ctx context.Context, observations []domain.ItemObservation, cfg domain.TradingConfig) ([]domain.TradeOpportunity, error) {
	results := make([]*domain.TradeOpportunity, len(observations))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i := range observations {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			obs := observations[i]
			if !priced(obs) {
				return nil
			}
			opp := s.analyzer.Analyze(obs, cfg)
			results[i] = &opp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opportunities := make([]domain.TradeOpportunity, 0, len(results))
	for _, opp := range results {
		if opp != nil {
			opportunities = append(opportunities, *opp)
		}
	}

	s.logger.Debug("scan finished",
		zap.Int("observations", len(observations)),
		zap.Int("opportunities", len(opportunities)),
	)

	return opportunities, nil
}

func priced(obs domain.ItemObservation) bool {
	return obs.AvgHighPrice > 0 && obs.AvgLowPrice > 0
}

// Filter keeps opportunities that meet every threshold of cfg and whose scores
// are finite. The input slice is not modified.
func Filter(opportunities []domain.TradeOpportunity, cfg domain.TradingConfig) []domain.TradeOpportunity {
	filtered := make([]domain.TradeOpportunity, 0, len(opportunities))
	for _, opp := range opportunities {
		if !opp.Finite() {
			continue
		}
		if opp.Volume < cfg.MinVolume ||
			opp.ROI < cfg.MinROI ||
			opp.ProfitPerItem < cfg.MinProfitPerItem ||
			opp.BuyPrice*opp.BuyLimit > cfg.MaxInvestment ||
			opp.SpreadPercentage() < cfg.MinSpreadPercentage {
			continue
		}
		filtered = append(filtered, opp)
	}
	return filtered
}

// Sort orders opportunities in place by field, descending when desc is set.
// Ties keep their previous order.
func Sort(opportunities []domain.TradeOpportunity, field Field, desc bool) {
	value := field.value
	sort.SliceStable(opportunities, func(i, j int) bool {
		if desc {
			return value(opportunities[i]) > value(opportunities[j])
		}
		return value(opportunities[i]) < value(opportunities[j])
	})
}

// Buckets highlight groups of opportunities.
type Buckets struct {
	HighConfidence []domain.TradeOpportunity
	HighROI        []domain.TradeOpportunity
	HighVolume     []domain.TradeOpportunity
}

// Bucketize groups opportunities with confidence above 0.7, ROI above 5% and
// volume above 1000. An opportunity may land in several buckets.
func Bucketize(opportunities []domain.TradeOpportunity) Buckets {
	var b Buckets
	for _, opp := range opportunities {
		if opp.Confidence > highConfidence {
			b.HighConfidence = append(b.HighConfidence, opp)
		}
		if opp.ROI > highROI {
			b.HighROI = append(b.HighROI, opp)
		}
		if opp.Volume > highVolume {
			b.HighVolume = append(b.HighVolume, opp)
		}
	}
	return b
}
