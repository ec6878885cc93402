package web

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vadiminshakov/geflip/internal/domain"
	"github.com/vadiminshakov/geflip/internal/services/analyzer"
	"github.com/vadiminshakov/geflip/internal/services/catalog"
	"github.com/vadiminshakov/geflip/internal/services/screener"
)

func newTestServer(t *testing.T, withCatalog bool) http.Handler {
	t.Helper()

	logger := zap.NewNop()
	a := analyzer.New(logger)
	var items itemSource
	if withCatalog {
		c, err := catalog.Load("../services/catalog/testdata/prices.json", "../services/catalog/testdata/mapping.json", analyzer.DefaultTaxRate)
		require.NoError(t, err)
		items = c
	}

	return NewServer(":0", a, screener.New(a, logger, 2), items, domain.DefaultTradingConfig(), logger).Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestNumberMarshalsNonFiniteAsNull(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.5, "1.5"},
		{0, "0"},
		{0.1, "0.1"},
		{-148000, "-148000"},
		{math.NaN(), "null"},
		{math.Inf(1), "null"},
		{math.Inf(-1), "null"},
	}

	for _, tt := range tests {
		got, err := json.Marshal(number(tt.in))
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(got))
	}
}

func TestHealth(t *testing.T) {
	rec, body := do(t, newTestServer(t, false), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestRequestID(t *testing.T) {
	h := newTestServer(t, false)

	rec, _ := do(t, h, http.MethodGet, "/healthz", "")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestIndex(t *testing.T) {
	rec, _ := do(t, newTestServer(t, false), http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/opportunities")
	// item names come from the mapping file and are set as text, never as markup
	assert.Contains(t, rec.Body.String(), "textContent")
	assert.NotContains(t, rec.Body.String(), "innerHTML")
}

func TestValidate(t *testing.T) {
	h := newTestServer(t, false)

	rec, body := do(t, h, http.MethodPost, "/api/validate", "null")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["isValid"])
	assert.Equal(t, []any{"Item is undefined or null"}, body["errors"])

	rec, body = do(t, h, http.MethodPost, "/api/validate",
		`{"itemId":"1","avgHighPrice":300,"avgLowPrice":100,"highPriceVolume":10,"lowPriceVolume":10,"details":{"name":"x","limit":5}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["isValid"])
	assert.Equal(t, "Item is valid for trading", body["summary"])
	assert.Len(t, body["warnings"], 1)

	rec, _ = do(t, h, http.MethodPost, "/api/validate", "{")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyze(t *testing.T) {
	h := newTestServer(t, false)

	rec, body := do(t, h, http.MethodPost, "/api/analyze", `{
		"item": {"itemId":"1333","avgHighPrice":15200,"avgLowPrice":14800,"highPriceVolume":1200,"lowPriceVolume":1300,
			"details":{"name":"Rune scimitar","limit":70}},
		"config": {"maxInvestment": 148000}
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, true, body["profitable"])
	opp := body["opportunity"].(map[string]any)
	assert.Equal(t, "Rune scimitar", opp["name"])
	assert.Equal(t, 10.0, opp["recommendedQuantity"])
	assert.NotEmpty(t, body["volumeAnalysis"])

	rec, body = do(t, h, http.MethodPost, "/api/analyze", `{"item": null}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, body["opportunity"])
}

func TestTimeEncodesNonFiniteAsNull(t *testing.T) {
	h := newTestServer(t, false)

	rec, body := do(t, h, http.MethodPost, "/api/time",
		`{"itemId":"1","avgHighPrice":10,"avgLowPrice":9,"highPriceVolume":0,"lowPriceVolume":0}`)
	require.Equal(t, http.StatusOK, rec.Code)

	buy := body["buyTime"].(map[string]any)
	assert.Nil(t, buy["min"])
	assert.Nil(t, buy["max"])

	rec, _ = do(t, h, http.MethodPost, "/api/time", "null")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNarratives(t *testing.T) {
	h := newTestServer(t, false)

	rec, body := do(t, h, http.MethodGet, "/api/narrative/volume?volume=500&limit=1000", "")
	require.Equal(t, http.StatusOK, rec.Code)
	remarks := body["remarks"].([]any)
	require.NotEmpty(t, remarks)
	assert.Equal(t, string(domain.RemarkVolumeBelowLimit), remarks[0].(map[string]any)["code"])
	assert.NotEmpty(t, body["text"])

	rec, body = do(t, h, http.MethodGet, "/api/narrative/advice?volume=20000&stability=0.9&confidence=0.9", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, body["remarks"])

	rec, _ = do(t, h, http.MethodGet, "/api/narrative/advice?volume=1&stability=x&confidence=1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/api/narrative/volume?volume=1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestItems(t *testing.T) {
	h := newTestServer(t, true)

	rec, body := do(t, h, http.MethodGet, "/api/items/561", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Nature rune", body["opportunity"].(map[string]any)["name"])

	// missing low price is reported by validation, not as an error
	rec, body = do(t, h, http.MethodGet, "/api/items/1333", "")
	require.Equal(t, http.StatusOK, rec.Code)
	validation := body["validation"].(map[string]any)
	assert.Equal(t, false, validation["isValid"])
	assert.Contains(t, validation["errors"], "Missing average low price")

	rec, _ = do(t, h, http.MethodGet, "/api/items/99999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestItemsWithoutCatalog(t *testing.T) {
	h := newTestServer(t, false)

	rec, _ := do(t, h, http.MethodGet, "/api/items/561", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/api/opportunities", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestOpportunities(t *testing.T) {
	h := newTestServer(t, true)

	get := func(target string) []map[string]any {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var out []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		return out
	}

	all := get("/api/opportunities")
	require.NotEmpty(t, all)
	ids := make([]any, 0, len(all))
	for _, o := range all {
		assert.NotEqual(t, "13190", o["itemId"], "bonds are never listed")
		ids = append(ids, o["itemId"])
	}
	// the whip has no buy limit in the mapping and is scored with the default
	assert.Contains(t, ids, "4151")

	byROI := get("/api/opportunities?sort=roi")
	assert.Equal(t, "5295", byROI[0]["itemId"])

	assert.Len(t, get("/api/opportunities?limit=1"), 1)

	f2p := get("/api/opportunities?members=f2p")
	require.Len(t, f2p, 1)
	assert.Equal(t, "561", f2p[0]["itemId"])

	rec, _ := do(t, h, http.MethodGet, "/api/opportunities?sort=name", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
