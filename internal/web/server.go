package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vadiminshakov/geflip/internal/domain"
	"github.com/vadiminshakov/geflip/internal/services/analyzer"
	"github.com/vadiminshakov/geflip/internal/services/catalog"
	"github.com/vadiminshakov/geflip/internal/services/narrative"
	"github.com/vadiminshakov/geflip/internal/services/screener"
)

const (
	maxBodyBytes    = 1 << 20
	requestIDHeader = "X-Request-ID"
)

type itemSource interface {
	Observations() []domain.ItemObservation
	Lookup(id string) (domain.ItemObservation, error)
}

// Server exposes the analysis engine over a JSON API and serves a small HTML
// listing of the current opportunities.
type Server struct {
	Addr     string
	Analyzer *analyzer.Analyzer
	Screener *screener.Screener
	// Items may be nil, then catalog endpoints answer 503.
	Items    itemSource
	Trading  domain.TradingConfig
	Renderer narrative.Renderer
	logger   *zap.Logger
}

// NewServer creates a new web server instance.
func NewServer(addr string, a *analyzer.Analyzer, s *screener.Screener, items itemSource, trading domain.TradingConfig, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		Addr:     addr,
		Analyzer: a,
		Screener: s,
		Items:    items,
		Trading:  trading,
		Renderer: narrative.English{},
		logger:   logger,
	}
}

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/validate", s.handleValidate)
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /api/time", s.handleTime)
	mux.HandleFunc("GET /api/narrative/volume", s.handleVolumeNarrative)
	mux.HandleFunc("GET /api/narrative/advice", s.handleAdviceNarrative)
	mux.HandleFunc("GET /api/items/{id}", s.handleItem)
	mux.HandleFunc("GET /api/opportunities", s.handleOpportunities)
	return s.withRequestID(mux)
}

// withRequestID tags every request with an id, reusing the one sent by the client.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request served",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)),
		)
	})
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	server := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("http server listening", zap.String("addr", s.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type analyzeRequest struct {
	Item   *domain.ItemObservation `json:"item"`
	Config *domain.TradingConfig   `json:"config"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// a JSON null body is a valid request: it is reported as an undefined item
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var obs *domain.ItemObservation
	if err := decodeBody(w, r, &obs); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	result := s.Analyzer.Validate(obs)
	if result.Errors == nil {
		result.Errors = []string{}
	}
	warnings := []string{}
	if warning, ok := analyzer.VolatilityWarning(obs); ok {
		warnings = append(warnings, warning)
	}

	s.writeJSON(w, http.StatusOK, struct {
		domain.ValidationResult
		Warnings []string `json:"warnings"`
		Summary  string   `json:"summary"`
	}{result, warnings, result.Summary()})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	cfg := s.Trading
	if req.Config != nil {
		cfg = *req.Config
	}

	s.writeJSON(w, http.StatusOK, toInspection(s.Renderer, s.Analyzer.Inspect(req.Item, cfg)))
}

func (s *Server) handleTime(w http.ResponseWriter, r *http.Request) {
	var obs *domain.ItemObservation
	if err := decodeBody(w, r, &obs); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if obs == nil {
		s.writeError(w, http.StatusBadRequest, errors.New("item is required"))
		return
	}

	s.writeJSON(w, http.StatusOK, toTimeAnalysis(s.Renderer, s.Analyzer.AnalyzeTime(*obs)))
}

func (s *Server) handleVolumeNarrative(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	volume, err := floatParam(q.Get("volume"), "volume")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	limit, err := floatParam(q.Get("limit"), "limit")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.writeNarrative(w, analyzer.VolumeRemarks(volume, limit))
}

func (s *Server) handleAdviceNarrative(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var values [3]float64
	for i, name := range []string{"volume", "stability", "confidence"} {
		v, err := floatParam(q.Get(name), name)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		values[i] = v
	}

	s.writeNarrative(w, analyzer.AdviceRemarks(values[0], values[1], values[2]))
}

func (s *Server) handleItem(w http.ResponseWriter, r *http.Request) {
	if s.Items == nil {
		s.writeError(w, http.StatusServiceUnavailable, errors.New("item catalog not loaded"))
		return
	}

	obs, err := s.Items.Lookup(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrItemNotFound) {
			s.writeError(w, http.StatusNotFound, err)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toInspection(s.Renderer, s.Analyzer.Inspect(&obs, s.Trading)))
}

// handleOpportunities accepts sort, order (asc|desc), limit and members query params.
func (s *Server) handleOpportunities(w http.ResponseWriter, r *http.Request) {
	if s.Items == nil {
		s.writeError(w, http.StatusServiceUnavailable, errors.New("item catalog not loaded"))
		return
	}

	q := r.URL.Query()
	field := screener.FieldConfidence
	if v := q.Get("sort"); v != "" {
		f, err := screener.ParseField(v)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		field = f
	}
	members, err := screener.ParseMembership(q.Get("members"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	limit := 0
	if v := q.Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 0 {
			s.writeError(w, http.StatusBadRequest, errors.Errorf("invalid limit %q", v))
			return
		}
	}

	opps, err := s.Screener.Scan(r.Context(), s.Items.Observations(), s.Trading)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	opps = screener.FilterMembership(screener.Filter(opps, s.Trading), members)
	screener.Sort(opps, field, q.Get("order") != "asc")
	if limit > 0 && len(opps) > limit {
		opps = opps[:limit]
	}

	s.writeJSON(w, http.StatusOK, toOpportunities(s.Renderer, opps))
}

func (s *Server) writeNarrative(w http.ResponseWriter, remarks []domain.Remark) {
	s.writeJSON(w, http.StatusOK, narrativeDTO{
		Remarks: toRemarks(s.Renderer, remarks),
		Text:    narrative.Join(s.Renderer, remarks),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(err, "decode request body")
	}
	return nil
}

func floatParam(raw, name string) (float64, error) {
	if raw == "" {
		return 0, errors.Errorf("missing %s parameter", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s parameter", name)
	}
	return v, nil
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>geflip</title>
<style>
  body { font-family: system-ui, sans-serif; background: #111827; color: #e5e7eb; margin: 2rem; }
  h1 { color: #7d56f4; }
  table { border-collapse: collapse; width: 100%; }
  th, td { padding: .4rem .6rem; text-align: right; border-bottom: 1px solid #374151; }
  th:nth-child(-n+2), td:nth-child(-n+2) { text-align: left; }
  td img { width: 24px; height: 24px; vertical-align: middle; margin-right: .4rem; }
  .profit { color: #10b981; }
  .loss { color: #ef4444; }
  select { background: #1f2937; color: inherit; border: 1px solid #374151; }
</style>
</head>
<body>
<h1>Grand Exchange flips</h1>
<label>Sort by
<select id="sort">
  <option value="confidence">confidence</option>
  <option value="roi">ROI</option>
  <option value="profit">profit per item</option>
  <option value="total_profit">total profit</option>
  <option value="volume">volume</option>
  <option value="confidence_to_profit">confidence to profit</option>
</select>
</label>
<table>
<thead><tr><th>ID</th><th>Item</th><th>Buy</th><th>Sell</th><th>Profit</th><th>ROI</th><th>Qty</th><th>Total</th><th>Confidence</th><th>Time</th></tr></thead>
<tbody id="rows"></tbody>
</table>
<script>
const fmt = (v, digits = 0) => v === null ? "n/a" : v.toLocaleString(undefined, {maximumFractionDigits: digits});
function cell(tr, text, cls) {
  const td = document.createElement("td");
  td.textContent = text;
  if (cls) td.className = cls;
  tr.appendChild(td);
  return td;
}
async function load() {
  const sort = document.getElementById("sort").value;
  const res = await fetch("/api/opportunities?limit=100&sort=" + encodeURIComponent(sort));
  const rows = await res.json();
  const body = document.getElementById("rows");
  body.replaceChildren();
  for (const o of rows) {
    const tr = document.createElement("tr");
    cell(tr, o.itemId);
    const name = cell(tr, o.name);
    const img = document.createElement("img");
    img.src = o.icon;
    img.alt = "";
    name.prepend(img);
    cell(tr, fmt(o.buyPrice));
    cell(tr, fmt(o.sellPrice));
    cell(tr, fmt(o.profitPerItem), o.profitPerItem > 0 ? "profit" : "loss");
    cell(tr, fmt(o.roi, 2) + "%");
    cell(tr, fmt(o.recommendedQuantity));
    cell(tr, fmt(o.totalPotentialProfit));
    cell(tr, fmt(o.confidence === null ? null : o.confidence * 100) + "%");
    cell(tr, o.timeAnalysis.totalTime.formatted);
    body.appendChild(tr);
  }
}
document.getElementById("sort").addEventListener("change", load);
load();
</script>
</body>
</html>
`
