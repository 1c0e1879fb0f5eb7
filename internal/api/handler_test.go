package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/burakozcn01/turkiye-deprem-takip/config"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/dedup"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/models"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/notify"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/store"
)

func newTestHandler(t *testing.T) (*Handler, store.Store, *dedup.Deduplicator, *notify.Subscriptions) {
	t.Helper()
	st := store.NewInMemoryStore()
	d := dedup.New(1000, 100)
	subs := notify.NewSubscriptions()
	h := NewHandler(st, d, subs, config.PushConfig{VAPIDPublicKey: "test-public-key"}, "static", "test")
	return h, st, d, subs
}

func serve(h *Handler, method, target string, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	h.RegisterRoutes(r)

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetEarthquakes(t *testing.T) {
	h, st, _, _ := newTestHandler(t)

	when := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	st.UpsertEarthquakes(context.Background(), []models.Earthquake{
		{ID: "afad_1", Magnitude: 4.2, NearestCity: "İzmir", Time: when, DetectedAt: when, Source: models.SourceAFAD},
		{ID: "afad_2", Magnitude: 3.1, NearestCity: "Ankara", Time: when.Add(time.Hour), DetectedAt: when, Source: models.SourceAFAD},
	})

	w := serve(h, http.MethodGet, "/api/earthquakes", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var got []earthquakeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	// newest first
	if got[0].ID != "afad_2" {
		t.Errorf("first event = %q, want afad_2", got[0].ID)
	}
	if got[1].Time != "2024-01-15 10:30:00 UTC" {
		t.Errorf("time = %q, want %q", got[1].Time, "2024-01-15 10:30:00 UTC")
	}
}

func TestGetEarthquakesLimit(t *testing.T) {
	h, st, _, _ := newTestHandler(t)

	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	var events []models.Earthquake
	for i := 0; i < 5; i++ {
		events = append(events, models.Earthquake{
			ID:   string(rune('a' + i)),
			Time: base.Add(time.Duration(i) * time.Hour),
		})
	}
	st.UpsertEarthquakes(context.Background(), events)

	w := serve(h, http.MethodGet, "/api/earthquakes?limit=2", "")
	var got []earthquakeResponse
	json.Unmarshal(w.Body.Bytes(), &got)
	if len(got) != 2 {
		t.Errorf("got %d events with limit=2, want 2", len(got))
	}

	// invalid limit falls back to the default
	w = serve(h, http.MethodGet, "/api/earthquakes?limit=bogus", "")
	json.Unmarshal(w.Body.Bytes(), &got)
	if len(got) != 5 {
		t.Errorf("got %d events with bogus limit, want all 5", len(got))
	}
}

func TestGetEarthquakeByID(t *testing.T) {
	h, st, _, _ := newTestHandler(t)

	when := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	st.UpsertEarthquakes(context.Background(), []models.Earthquake{
		{ID: "afad_1", Magnitude: 4.2, NearestCity: "İzmir", Time: when, DetectedAt: when, Source: models.SourceAFAD},
	})

	w := serve(h, http.MethodGet, "/api/earthquakes/afad_1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var got earthquakeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if got.ID != "afad_1" || got.NearestCity != "İzmir" {
		t.Errorf("event = %+v, want afad_1 near İzmir", got)
	}

	w = serve(h, http.MethodGet, "/api/earthquakes/missing", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status for unknown id = %d, want 404", w.Code)
	}
}

func TestGetRecent(t *testing.T) {
	h, _, d, _ := newTestHandler(t)
	d.Admit(models.Earthquake{ID: "k1", Magnitude: 2.5, Time: time.Now()})
	d.Admit(models.Earthquake{ID: "k2", Magnitude: 3.5, Time: time.Now()})

	w := serve(h, http.MethodGet, "/api/earthquakes/recent", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var got []earthquakeResponse
	json.Unmarshal(w.Body.Bytes(), &got)
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].ID != "k2" {
		t.Errorf("first event = %q, want most recently admitted k2", got[0].ID)
	}
}

func TestSubscribe(t *testing.T) {
	h, _, _, subs := newTestHandler(t)

	body := `{"endpoint":"https://push.example.com/a","keys":{"p256dh":"p","auth":"a"}}`
	w := serve(h, http.MethodPost, "/api/push/subscribe", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if subs.Count() != 1 {
		t.Errorf("Count() = %d, want 1", subs.Count())
	}

	// same endpoint again is accepted but not duplicated
	w = serve(h, http.MethodPost, "/api/push/subscribe", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if subs.Count() != 1 {
		t.Errorf("Count() = %d after duplicate subscribe, want 1", subs.Count())
	}
}

func TestSubscribeInvalid(t *testing.T) {
	h, _, _, subs := newTestHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{not json`},
		{"missing endpoint", `{"keys":{"p256dh":"p","auth":"a"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(h, http.MethodPost, "/api/push/subscribe", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
	if subs.Count() != 0 {
		t.Errorf("Count() = %d, want 0", subs.Count())
	}
}

func TestPushKey(t *testing.T) {
	h, _, _, _ := newTestHandler(t)

	w := serve(h, http.MethodGet, "/api/push/key", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var got map[string]string
	json.Unmarshal(w.Body.Bytes(), &got)
	if got["publicKey"] != "test-public-key" {
		t.Errorf("publicKey = %q, want %q", got["publicKey"], "test-public-key")
	}
}

func TestHealth(t *testing.T) {
	h, _, _, _ := newTestHandler(t)

	w := serve(h, http.MethodGet, "/v1/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	w = serve(h, http.MethodGet, "/v1/health/ready", "")
	if w.Code != http.StatusOK {
		t.Errorf("readiness status = %d, want 200", w.Code)
	}
}

func TestNotFound(t *testing.T) {
	h, _, _, _ := newTestHandler(t)

	w := serve(h, http.MethodGet, "/api/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}
