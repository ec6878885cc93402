package domain

// ItemObservation market snapshot of one tradable item over the observation window.
// A zero price means the price was not observed, a zero volume means no trades
// were recorded on that side.
type ItemObservation struct {
	ItemID          string       `json:"itemId"`
	AvgHighPrice    float64      `json:"avgHighPrice"`
	AvgLowPrice     float64      `json:"avgLowPrice"`
	HighPriceVolume int64        `json:"highPriceVolume"`
	LowPriceVolume  int64        `json:"lowPriceVolume"`
	Details         *ItemDetails `json:"details,omitempty"`
}

// ItemDetails item metadata joined from the mapping collection.
type ItemDetails struct {
	Name    string `json:"name"`
	Examine string `json:"examine,omitempty"`
	Members bool   `json:"members"`
	// Limit is the purchase quota per 4-hour period. Zero means unknown.
	Limit    int    `json:"limit"`
	HighAlch int64  `json:"highalch,omitempty"`
	Value    int64  `json:"value,omitempty"`
	Icon     string `json:"icon,omitempty"`
}

// Volume returns the total traded volume of both sides.
func (o ItemObservation) Volume() int64 {
	return o.HighPriceVolume + o.LowPriceVolume
}

// DisplayName returns the item name, falling back to the item id.
func (o ItemObservation) DisplayName() string {
	if o.Details != nil && o.Details.Name != "" {
		return o.Details.Name
	}
	return o.ItemID
}

// LimitOr returns the purchase quota, or fallback when it is absent or not positive.
func (o ItemObservation) LimitOr(fallback int) int {
	if o.Details != nil && o.Details.Limit > 0 {
		return o.Details.Limit
	}
	return fallback
}

// Spread returns the absolute difference between the average high and low price.
func (o ItemObservation) Spread() float64 {
	return o.AvgHighPrice - o.AvgLowPrice
}

// SpreadRatio returns the spread relative to the low price.
// The result is not finite when the low price is zero.
func (o ItemObservation) SpreadRatio() float64 {
	return o.Spread() / o.AvgLowPrice
}

// Members reports whether the item is members-only.
func (o ItemObservation) Members() bool {
	return o.Details != nil && o.Details.Members
}
