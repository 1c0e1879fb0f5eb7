package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/burakozcn01/turkiye-deprem-takip/config"
	apperrors "github.com/burakozcn01/turkiye-deprem-takip/internal/errors"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/logger"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/models"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/notify"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/store"
)

// DefaultQueryLimit caps /api/earthquakes when no limit is given
const DefaultQueryLimit = 150

// RecentProvider serves the in-memory most-recent-first window
type RecentProvider interface {
	Recent(limit int) []models.Earthquake
}

// Handler handles HTTP requests for the API
type Handler struct {
	store     store.Store
	recent    RecentProvider
	subs      *notify.Subscriptions
	push      config.PushConfig
	staticDir string
	version   string
	startTime time.Time
}

// NewHandler creates a new API handler
func NewHandler(st store.Store, recent RecentProvider, subs *notify.Subscriptions, push config.PushConfig, staticDir, version string) *Handler {
	return &Handler{
		store:     st,
		recent:    recent,
		subs:      subs,
		push:      push,
		staticDir: staticDir,
		version:   version,
		startTime: time.Now(),
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/earthquakes", h.getEarthquakesHandler)
		r.Get("/earthquakes/recent", h.getRecentHandler)
		r.Get("/earthquakes/{id}", h.getEarthquakeHandler)
		r.Post("/push/subscribe", h.subscribeHandler)
		r.Get("/push/key", h.pushKeyHandler)
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", h.healthHandler)
		r.Get("/health/ready", h.readinessHandler)
		r.Get("/version", h.versionHandler)
	})

	// Static collaborators for the PWA frontend
	for _, name := range []string{"sw.js", "manifest.json", "robots.txt", "sitemap.xml"} {
		name := name
		r.Get("/"+name, func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, filepath.Join(h.staticDir, name))
		})
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.writeJSONResponse(w, http.StatusNotFound, map[string]string{"error": "Not found"})
	})
}

// earthquakeResponse renders timestamps the way the frontend expects:
// event time with an explicit UTC qualifier, detection time without one.
type earthquakeResponse struct {
	ID          string  `json:"id"`
	Magnitude   float64 `json:"magnitude"`
	Place       string  `json:"place"`
	NearestCity string  `json:"nearest_city"`
	DistanceKm  float64 `json:"distance_km"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Depth       float64 `json:"depth"`
	Time        string  `json:"time"`
	DetectedAt  string  `json:"detected_at"`
	Source      string  `json:"source"`
}

func renderEarthquake(ev models.Earthquake) earthquakeResponse {
	return earthquakeResponse{
		ID:          ev.ID,
		Magnitude:   ev.Magnitude,
		Place:       ev.Place,
		NearestCity: ev.NearestCity,
		DistanceKm:  ev.DistanceKm,
		Lat:         ev.Lat,
		Lon:         ev.Lon,
		Depth:       ev.Depth,
		Time:        ev.Time.UTC().Format("2006-01-02 15:04:05") + " UTC",
		DetectedAt:  ev.DetectedAt.Format("2006-01-02 15:04:05"),
		Source:      ev.Source,
	}
}

func renderEarthquakes(events []models.Earthquake) []earthquakeResponse {
	out := make([]earthquakeResponse, len(events))
	for i, ev := range events {
		out[i] = renderEarthquake(ev)
	}
	return out
}

// getEarthquakesHandler serves the most recent stored events, event time
// descending
func (h *Handler) getEarthquakesHandler(w http.ResponseWriter, r *http.Request) {
	limit := DefaultQueryLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}

	events, err := h.store.QueryEarthquakes(r.Context(), models.EarthquakeQuery{Limit: limit})
	if err != nil {
		logger.Error("Query earthquakes failed", "error", err)
		h.writeJSONResponse(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	h.writeJSONResponse(w, http.StatusOK, renderEarthquakes(events))
}

// getEarthquakeHandler serves a single stored event by id
func (h *Handler) getEarthquakeHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ev, err := h.store.GetEarthquake(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.writeJSONResponse(w, http.StatusNotFound, map[string]string{"error": "Not found"})
			return
		}
		logger.Error("Get earthquake failed", "id", id, "error", err)
		h.writeJSONResponse(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	h.writeJSONResponse(w, http.StatusOK, renderEarthquake(*ev))
}

// getRecentHandler serves the in-memory window without touching the store
func (h *Handler) getRecentHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, renderEarthquakes(h.recent.Recent(0)))
}

type subscribeRequest struct {
	Endpoint string      `json:"endpoint"`
	Keys     notify.Keys `json:"keys"`
}

// subscribeHandler registers a push subscription if not already present
func (h *Handler) subscribeHandler(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Endpoint == "" {
		h.writeJSONResponse(w, http.StatusBadRequest, map[string]string{"error": "invalid subscription"})
		return
	}

	h.subs.Add(req.Endpoint, req.Keys)
	h.writeJSONResponse(w, http.StatusOK, map[string]bool{"success": true})
}

// pushKeyHandler exposes the VAPID public key for client registration
func (h *Handler) pushKeyHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, map[string]string{"publicKey": h.push.VAPIDPublicKey})
}

// healthHandler provides basic health check
func (h *Handler) healthHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"version":   h.version,
	})
}

// readinessHandler checks if the application is ready to serve traffic
func (h *Handler) readinessHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Health(r.Context()); err != nil {
		h.writeJSONResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	h.writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ready"})
}

// versionHandler reports build information
func (h *Handler) versionHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, map[string]string{
		"version": h.version,
		"uptime":  time.Since(h.startTime).String(),
	})
}

func (h *Handler) writeJSONResponse(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Write JSON response failed", "error", err)
	}
}
