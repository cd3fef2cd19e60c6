package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"smartprice-backend/internal/engine"
	"smartprice-backend/internal/kstream"
	"smartprice-backend/internal/model"
	"smartprice-backend/internal/normalize"
	"smartprice-backend/internal/scrape"
	"smartprice-backend/internal/stats"
)

const apiVersion = "2.1.0"

// go-playground/validator/v10: struct validator for request bodies.
var validate = validator.New()

// Handler wires the analyzer endpoints over the scraper collaborator, the
// reconciliation engine, and the supporting stores.
type Handler struct {
	scraper    scrape.Scraper
	engine     *engine.Engine
	cache      *scrape.Cache
	stats      *stats.Store
	defaultMax int
	publish    func(context.Context, model.AnalysisCompleted) error
}

// NewHandler creates the HTTP handler set. cache and stats may be nil in
// tests; both are optional fast paths, never correctness requirements.
func NewHandler(scraper scrape.Scraper, eng *engine.Engine, cache *scrape.Cache, statsStore *stats.Store, defaultMax int) *Handler {
	if defaultMax <= 0 {
		defaultMax = 5
	}
	return &Handler{
		scraper:    scraper,
		engine:     eng,
		cache:      cache,
		stats:      statsStore,
		defaultMax: defaultMax,
		publish:    kstream.PublishAnalysisCompleted,
	}
}

// RegisterRoutes wires all routes.
// gorilla/mux: method-based routing on a shared router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/analyze-prices", h.analyzeHandler).Methods(http.MethodPost)
	r.HandleFunc("/supported-cards", h.supportedCardsHandler).Methods(http.MethodGet)
	r.HandleFunc("/platforms", h.platformsHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/stats", h.statsHandler).Methods(http.MethodGet)
}

func (h *Handler) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"version":   apiVersion,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"features": []string{
			"Multi-platform price analysis",
			"Credit card offer matching",
			"Effective price ranking",
		},
	})
}

// analyzeHandler runs the full request path: validate, scrape (cache
// aware), reconcile, rank, respond. An empty result set is HTTP 200 with an
// empty products array, not an error.
func (h *Handler) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req model.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}
	if req.MaxProductsPerPlatform == 0 {
		req.MaxProductsPerPlatform = h.defaultMax
	}

	ctx := r.Context()

	byPlatform, cached := h.cachedScrape(ctx, req.ProductQuery, req.MaxProductsPerPlatform)
	if byPlatform == nil {
		var err error
		byPlatform, err = h.scraper.Scrape(ctx, req.ProductQuery, req.MaxProductsPerPlatform)
		if err != nil {
			log.Printf("httpapi: scrape failed for %q: %v", req.ProductQuery, err)
			writeError(w, http.StatusBadGateway, "scraping failed")
			return
		}
		if h.cache != nil {
			h.cache.Put(ctx, req.ProductQuery, req.MaxProductsPerPlatform, byPlatform)
		}
	}

	for platform, records := range byPlatform {
		if len(records) == 0 {
			// Partial data: the platform contributed nothing this round.
			log.Printf("httpapi: no listings from %s for %q", platform, req.ProductQuery)
		}
	}

	products := h.engine.Analyze(req.ProductQuery, req.UserCreditCards, byPlatform, req.MaxProductsPerPlatform)

	// Fire-and-forget telemetry; the response never waits on the broker.
	evt := model.AnalysisCompleted{
		Query:          req.ProductQuery,
		CardCount:      len(req.UserCreditCards),
		ProductCount:   len(products),
		Platforms:      platformCounts(byPlatform),
		DurationMillis: time.Since(start).Milliseconds(),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.publish(ctx, evt); err != nil {
		log.Printf("httpapi: telemetry publish failed: %v", err)
	}

	log.Printf("httpapi: analyzed %d products for %q in %dms (cache hit: %v)",
		len(products), req.ProductQuery, evt.DurationMillis, cached)

	writeJSON(w, http.StatusOK, model.AnalyzeResponse{
		Products:      products,
		TotalProducts: len(products),
		Query:         req.ProductQuery,
		Timestamp:     evt.Timestamp,
	})
}

func (h *Handler) cachedScrape(ctx context.Context, query string, max int) (map[string][]model.RawProduct, bool) {
	if h.cache == nil {
		return nil, false
	}
	if result, ok := h.cache.Get(ctx, query, max); ok {
		return result, true
	}
	return nil, false
}

func (h *Handler) supportedCardsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"supported_cards": h.engine.SupportedCards(),
		"note": "Custom card names are matched against bank names and known aliases; " +
			"unrecognised cards are skipped, not rejected.",
	})
}

func (h *Handler) platformsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"platforms": normalize.Platforms(),
	})
}

func (h *Handler) statsHandler(w http.ResponseWriter, r *http.Request) {
	if h.stats == nil {
		writeError(w, http.StatusServiceUnavailable, "stats store not configured")
		return
	}
	snap, err := h.stats.Read(r.Context())
	if err != nil {
		log.Printf("httpapi: stats read failed: %v", err)
		writeError(w, http.StatusInternalServerError, "stats unavailable")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func platformCounts(byPlatform map[string][]model.RawProduct) map[string]int {
	counts := make(map[string]int, len(byPlatform))
	for platform, records := range byPlatform {
		counts[platform] = len(records)
	}
	return counts
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
