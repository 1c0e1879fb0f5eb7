package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/text/encoding/charmap"

	"github.com/burakozcn01/turkiye-deprem-takip/internal/models"
)

func TestParseKandilliLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantOK   bool
		wantMag  float64
		wantLat  float64
		wantLon  float64
		wantDep  float64
		wantLoc  string
		wantTime time.Time
	}{
		{
			name:     "ML only with sentinel Mw",
			line:     "2024.01.15 10:30:00  38.50  27.50  10.0  -.-  4.2  -.-  İzmir İlksel",
			wantOK:   true,
			wantMag:  4.2,
			wantLat:  38.50,
			wantLon:  27.50,
			wantDep:  10.0,
			wantLoc:  "İzmir",
			wantTime: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:    "Mw larger than ML",
			line:    "2024.02.06 04:17:32  37.17  37.03  7.0  -.-  6.7  7.7  PAZARCIK (KAHRAMANMARAS) REVIZE02",
			wantOK:  true,
			wantMag: 7.7,
			wantLoc: "PAZARCIK (KAHRAMANMARAS)",
			wantLat: 37.17, wantLon: 37.03, wantDep: 7.0,
			wantTime: time.Date(2024, 2, 6, 4, 17, 32, 0, time.UTC),
		},
		{
			name:   "both magnitudes missing",
			line:   "2024.01.15 10:30:00  38.50  27.50  10.0  -.-  -.-  -.-  Somewhere İlksel",
			wantOK: false,
		},
		{
			name:   "column header",
			line:   "Tarih      Saat      Enlem(N)  Boylam(E) Der(km)  MD   ML   Mw   Yer",
			wantOK: false,
		},
		{
			name:   "blank line",
			line:   "   ",
			wantOK: false,
		},
		{
			name:   "too few tokens",
			line:   "2024.01.15 10:30:00 38.50 27.50",
			wantOK: false,
		},
		{
			name:   "unparseable latitude",
			line:   "2024.01.15 10:30:00  xx.xx  27.50  10.0  -.-  4.2  -.-  İzmir İlksel",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := parseKandilliLine(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("parseKandilliLine() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if ev.Magnitude != tt.wantMag {
				t.Errorf("Magnitude = %v, want %v", ev.Magnitude, tt.wantMag)
			}
			if ev.Lat != tt.wantLat || ev.Lon != tt.wantLon {
				t.Errorf("coords = (%v, %v), want (%v, %v)", ev.Lat, ev.Lon, tt.wantLat, tt.wantLon)
			}
			if ev.Depth != tt.wantDep {
				t.Errorf("Depth = %v, want %v", ev.Depth, tt.wantDep)
			}
			if ev.Place != tt.wantLoc {
				t.Errorf("Place = %q, want %q", ev.Place, tt.wantLoc)
			}
			if !ev.OccurredAt.Equal(tt.wantTime) {
				t.Errorf("OccurredAt = %v, want %v", ev.OccurredAt, tt.wantTime)
			}
			if ev.Source != models.SourceKandilli {
				t.Errorf("Source = %q, want %q", ev.Source, models.SourceKandilli)
			}
		})
	}
}

func TestParseKandilli(t *testing.T) {
	content := `<html><body><pre>
Tarih      Saat      Enlem(N)  Boylam(E) Der(km)  MD   ML   Mw   Yer
2024.01.15 10:30:00  38.50  27.50  10.0  -.-  4.2  -.-  İzmir İlksel
2024.01.15 09:12:45  40.71  29.10   5.2  -.-  2.1  -.-  Marmara Denizi İlksel
garbage line that should be skipped
</pre></body></html>`

	events := parseKandilli(content)
	if len(events) != 2 {
		t.Fatalf("parseKandilli() returned %d events, want 2", len(events))
	}
	if events[0].Magnitude != 4.2 || events[1].Magnitude != 2.1 {
		t.Errorf("magnitudes = %v, %v, want 4.2, 2.1", events[0].Magnitude, events[1].Magnitude)
	}
}

func TestParseKandilliNoPreBlock(t *testing.T) {
	if events := parseKandilli("<html><body>maintenance</body></html>"); events != nil {
		t.Errorf("parseKandilli() = %v, want nil", events)
	}
}

func TestKandilliFetch(t *testing.T) {
	page := "<pre>\n2024.01.15 10:30:00  38.50  27.50  10.0  -.-  4.2  -.-  İzmir İlksel\n</pre>"

	encoded, err := charmap.Windows1254.NewEncoder().Bytes([]byte(page))
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=windows-1254")
		w.Write(encoded)
	}))
	defer srv.Close()

	src := NewKandilliSource(srv.URL, 5*time.Second)
	events, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Fetch() returned %d events, want 1", len(events))
	}
	if events[0].Place != "İzmir" {
		t.Errorf("Place = %q, want %q (windows-1254 decode)", events[0].Place, "İzmir")
	}
}

func TestKandilliFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src := NewKandilliSource(srv.URL, 5*time.Second)
	if _, err := src.Fetch(context.Background()); err == nil {
		t.Error("Fetch() error = nil, want error for HTTP 503")
	}
}
