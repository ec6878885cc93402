// Package catalog decodes price snapshots and item mappings and joins them into
// observations ready for analysis.
package catalog

import (
	"encoding/json"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/geflip/internal/domain"
)

// ErrItemNotFound is returned when an item has no price data or no mapping entry.
var ErrItemNotFound = errors.New("item not found")

// items that are listed on the exchange but cannot be flipped
var excludedNames = map[string]struct{}{
	"Old school bond": {},
}

// detail lookups treat a missing quota as a single unit
const lookupDefaultLimit = 1

// Item joined observation with its raw margin.
type Item struct {
	Observation domain.ItemObservation
	// Margin is the per-unit profit after tax, in coins.
	Margin decimal.Decimal
	// MarginPercent is the quoted spread relative to the low price.
	MarginPercent decimal.Decimal
}

// Catalog price snapshot joined with item metadata.
type Catalog struct {
	prices  domain.PriceSnapshot
	mapping map[string]domain.ItemMapping
	taxRate decimal.Decimal
}

// New joins a price snapshot with a mapping list. taxRate is used for margins.
func New(prices domain.PriceSnapshot, mapping []domain.ItemMapping, taxRate float64) *Catalog {
	byID := make(map[string]domain.ItemMapping, len(mapping))
	for _, m := range mapping {
		byID[m.Key()] = m
	}
	if prices.Data == nil {
		prices.Data = map[string]domain.PriceData{}
	}
	return &Catalog{
		prices:  prices,
		mapping: byID,
		taxRate: decimal.NewFromFloat(taxRate),
	}
}

// DecodePrices reads a price snapshot in the prices API format.
func DecodePrices(r io.Reader) (domain.PriceSnapshot, error) {
	var snapshot domain.PriceSnapshot
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return domain.PriceSnapshot{}, errors.Wrap(err, "decode price snapshot")
	}
	return snapshot, nil
}

// DecodeMapping reads an item mapping list in the mapping API format.
func DecodeMapping(r io.Reader) ([]domain.ItemMapping, error) {
	var mapping []domain.ItemMapping
	if err := json.NewDecoder(r).Decode(&mapping); err != nil {
		return nil, errors.Wrap(err, "decode item mapping")
	}
	return mapping, nil
}

// Load reads a price snapshot file and a mapping file and joins them.
func Load(pricesPath, mappingPath string, taxRate float64) (*Catalog, error) {
	pricesFile, err := os.Open(pricesPath)
	if err != nil {
		return nil, errors.Wrap(err, "open prices file")
	}
	defer pricesFile.Close()

	prices, err := DecodePrices(pricesFile)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", pricesPath)
	}

	mappingFile, err := os.Open(mappingPath)
	if err != nil {
		return nil, errors.Wrap(err, "open mapping file")
	}
	defer mappingFile.Close()

	mapping, err := DecodeMapping(mappingFile)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", mappingPath)
	}

	return New(prices, mapping, taxRate), nil
}

// Timestamp returns the time the price snapshot was taken.
func (c *Catalog) Timestamp() time.Time {
	return time.Unix(c.prices.Timestamp, 0).UTC()
}

// Len returns the number of priced entries in the snapshot.
func (c *Catalog) Len() int {
	return len(c.prices.Data)
}

// Items returns every tradable item, ordered by item id. Entries without both
// prices, without a named mapping entry, or known to be untradable are skipped.
func (c *Catalog) Items() []Item {
	items := make([]Item, 0, len(c.prices.Data))
	for id, price := range c.prices.Data {
		if !price.HasPrices() {
			continue
		}
		m, ok := c.mapping[id]
		if !ok || strings.TrimSpace(m.Name) == "" {
			continue
		}
		if _, excluded := excludedNames[m.Name]; excluded {
			continue
		}

		obs := price.Observation(id, m.Details())
		items = append(items, Item{
			Observation:   obs,
			Margin:        c.margin(obs),
			MarginPercent: marginPercent(obs),
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return lessID(items[i].Observation.ItemID, items[j].Observation.ItemID)
	})

	return items
}

// Observations returns the observations of Items, in the same order.
func (c *Catalog) Observations() []domain.ItemObservation {
	items := c.Items()
	observations := make([]domain.ItemObservation, len(items))
	for i, item := range items {
		observations[i] = item.Observation
	}
	return observations
}

// Lookup returns the observation of a single item. Unlike Items it keeps
// entries with missing prices so that validation can report them, and a
// non-positive quota is normalized to one unit.
func (c *Catalog) Lookup(id string) (domain.ItemObservation, error) {
	price, ok := c.prices.Data[id]
	if !ok {
		return domain.ItemObservation{}, errors.Wrapf(ErrItemNotFound, "no price data for item %s", id)
	}
	m, ok := c.mapping[id]
	if !ok {
		return domain.ItemObservation{}, errors.Wrapf(ErrItemNotFound, "no mapping for item %s", id)
	}

	details := m.Details()
	if details.Limit <= 0 {
		details.Limit = lookupDefaultLimit
	}

	return price.Observation(id, details), nil
}

func (c *Catalog) margin(obs domain.ItemObservation) decimal.Decimal {
	high := decimal.NewFromFloat(obs.AvgHighPrice)
	low := decimal.NewFromFloat(obs.AvgLowPrice)

	return high.Sub(high.Mul(c.taxRate)).Sub(low)
}

func marginPercent(obs domain.ItemObservation) decimal.Decimal {
	low := decimal.NewFromFloat(obs.AvgLowPrice)
	if !low.IsPositive() {
		return decimal.Zero
	}
	high := decimal.NewFromFloat(obs.AvgHighPrice)

	return high.Sub(low).Div(low).Mul(decimal.NewFromInt(100))
}

// lessID orders numeric ids numerically and everything else lexically.
func lessID(a, b string) bool {
	if len(a) != len(b) && isDigits(a) && isDigits(b) {
		return len(a) < len(b)
	}
	return a < b
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
