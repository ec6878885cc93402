package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v int64) *int64 { return &v }

func TestPriceData_Observation(t *testing.T) {
	price := PriceData{AvgHighPrice: ptr(210), AvgLowPrice: ptr(200), LowPriceVolume: ptr(1500)}
	details := ItemMapping{ID: 561, Name: "Nature rune", Limit: 18000, Members: false}.Details()

	obs := price.Observation("561", details)

	assert.Equal(t, "561", obs.ItemID)
	assert.Equal(t, 210.0, obs.AvgHighPrice)
	assert.Equal(t, 200.0, obs.AvgLowPrice)
	assert.Equal(t, int64(0), obs.HighPriceVolume)
	assert.Equal(t, int64(1500), obs.LowPriceVolume)
	require.NotNil(t, obs.Details)
	assert.Equal(t, 18000, obs.Details.Limit)
}

func TestPriceData_HasPrices(t *testing.T) {
	assert.True(t, PriceData{AvgHighPrice: ptr(2), AvgLowPrice: ptr(1)}.HasPrices())
	assert.False(t, PriceData{AvgHighPrice: ptr(2)}.HasPrices())
	assert.False(t, PriceData{AvgHighPrice: ptr(0), AvgLowPrice: ptr(1)}.HasPrices())
}

func TestItemMapping_Key(t *testing.T) {
	assert.Equal(t, "4151", ItemMapping{ID: 4151}.Key())
}
