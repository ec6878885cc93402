package domain

import "strconv"

// PriceData averaged prices and volumes of one item as published by the
// prices API. Every field may be null.
type PriceData struct {
	AvgHighPrice    *int64 `json:"avgHighPrice"`
	AvgLowPrice     *int64 `json:"avgLowPrice"`
	HighPriceVolume *int64 `json:"highPriceVolume"`
	LowPriceVolume  *int64 `json:"lowPriceVolume"`
}

// PriceSnapshot price data of all items keyed by item id.
type PriceSnapshot struct {
	Data      map[string]PriceData `json:"data"`
	Timestamp int64                `json:"timestamp"`
}

// ItemMapping metadata of one item as published by the mapping API.
type ItemMapping struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Examine  string `json:"examine"`
	Members  bool   `json:"members"`
	LowAlch  int64  `json:"lowalch"`
	Limit    int    `json:"limit"`
	Value    int64  `json:"value"`
	HighAlch int64  `json:"highalch"`
	Icon     string `json:"icon"`
}

// Key returns the item id in the form used by price snapshots.
func (m ItemMapping) Key() string {
	return strconv.Itoa(m.ID)
}

// Details converts the mapping entry into item details.
func (m ItemMapping) Details() *ItemDetails {
	return &ItemDetails{
		Name:     m.Name,
		Examine:  m.Examine,
		Members:  m.Members,
		Limit:    m.Limit,
		HighAlch: m.HighAlch,
		Value:    m.Value,
		Icon:     m.Icon,
	}
}

// HasPrices reports whether both average prices are present and non-zero.
func (p PriceData) HasPrices() bool {
	return valueOf(p.AvgHighPrice) != 0 && valueOf(p.AvgLowPrice) != 0
}

// Observation builds an observation of item id from the price data; nulls become zero.
func (p PriceData) Observation(itemID string, details *ItemDetails) ItemObservation {
	return ItemObservation{
		ItemID:          itemID,
		AvgHighPrice:    float64(valueOf(p.AvgHighPrice)),
		AvgLowPrice:     float64(valueOf(p.AvgLowPrice)),
		HighPriceVolume: valueOf(p.HighPriceVolume),
		LowPriceVolume:  valueOf(p.LowPriceVolume),
		Details:         details,
	}
}

func valueOf(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
