package catalog

import (
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadiminshakov/geflip/internal/domain"
)

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load("testdata/prices.json", "testdata/mapping.json", 0.01)
	require.NoError(t, err)
	return c
}

func TestLoad(t *testing.T) {
	c := loadTestCatalog(t)

	assert.Equal(t, 7, c.Len())
	assert.Equal(t, time.Unix(1760000400, 0).UTC(), c.Timestamp())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/nope.json", "testdata/mapping.json", 0.01)
	assert.Error(t, err)
}

func TestDecodePrices_Invalid(t *testing.T) {
	_, err := DecodePrices(strings.NewReader(`{"data": [}`))
	assert.ErrorContains(t, err, "decode price snapshot")
}

func TestDecodeMapping(t *testing.T) {
	mapping, err := DecodeMapping(strings.NewReader(`[{"id": 561, "name": "Nature rune", "limit": 18000, "members": false}]`))
	require.NoError(t, err)
	require.Len(t, mapping, 1)
	assert.Equal(t, "561", mapping[0].Key())
	assert.Equal(t, 18000, mapping[0].Limit)
}

func TestCatalog_Items(t *testing.T) {
	items := loadTestCatalog(t).Items()

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.Observation.ItemID)
	}
	// 1333 has no low price, 13190 is a bond, 99999 has no mapping
	assert.Equal(t, []string{"2", "561", "4151", "5295"}, ids)

	nature := items[1]
	require.NotNil(t, nature.Observation.Details)
	assert.Equal(t, "Nature rune", nature.Observation.Details.Name)
	assert.Equal(t, 18000, nature.Observation.Details.Limit)
	assert.Equal(t, int64(50000), nature.Observation.Volume())
	// 105 - 1.05 - 100
	assert.Equal(t, "3.95", nature.Margin.String())
	assert.Equal(t, "5", nature.MarginPercent.String())

	seed := items[3]
	assert.Equal(t, int64(600), seed.Observation.HighPriceVolume)
	assert.Equal(t, int64(0), seed.Observation.LowPriceVolume)
	assert.True(t, seed.Observation.Members())
}

func TestCatalog_ItemsKeepMissingLimit(t *testing.T) {
	items := loadTestCatalog(t).Items()

	whip := items[2]
	assert.Equal(t, "4151", whip.Observation.ItemID)
	assert.Equal(t, 0, whip.Observation.Details.Limit)
}

func TestCatalog_Observations(t *testing.T) {
	c := loadTestCatalog(t)

	observations := c.Observations()
	items := c.Items()
	require.Len(t, observations, len(items))
	for i := range items {
		assert.Equal(t, items[i].Observation, observations[i])
	}
}

func TestCatalog_Lookup(t *testing.T) {
	c := loadTestCatalog(t)

	t.Run("known item", func(t *testing.T) {
		obs, err := c.Lookup("561")
		require.NoError(t, err)
		assert.Equal(t, 105.0, obs.AvgHighPrice)
	})

	t.Run("missing limit normalized to one", func(t *testing.T) {
		obs, err := c.Lookup("4151")
		require.NoError(t, err)
		assert.Equal(t, 1, obs.Details.Limit)
	})

	t.Run("missing price is kept for validation", func(t *testing.T) {
		obs, err := c.Lookup("1333")
		require.NoError(t, err)
		assert.Equal(t, 0.0, obs.AvgLowPrice)
	})

	t.Run("no mapping", func(t *testing.T) {
		_, err := c.Lookup("99999")
		assert.True(t, errors.Is(err, ErrItemNotFound))
	})

	t.Run("no price", func(t *testing.T) {
		_, err := c.Lookup("20000")
		assert.True(t, errors.Is(err, ErrItemNotFound))
	})
}

func TestNew_EmptySnapshot(t *testing.T) {
	c := New(domain.PriceSnapshot{}, nil, 0.01)

	assert.Empty(t, c.Items())
	_, err := c.Lookup("2")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestLessID(t *testing.T) {
	assert.True(t, lessID("2", "561"))
	assert.True(t, lessID("561", "4151"))
	assert.False(t, lessID("13190", "4151"))
	assert.True(t, lessID("abc", "abd"))
}
