package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/burakozcn01/turkiye-deprem-takip/internal/geo"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/models"
)

const afadTimeLayout = "2006-01-02 15:04:05"

// AFADSource fetches the AFAD event filter API over a rolling 24-hour
// window, bounded to the region of interest.
type AFADSource struct {
	url    string
	client *http.Client
	now    func() time.Time
}

// NewAFADSource creates an AFAD adapter
func NewAFADSource(url string, timeout time.Duration) *AFADSource {
	return &AFADSource{url: url, client: newHTTPClient(timeout), now: time.Now}
}

// Name returns the source name
func (s *AFADSource) Name() string { return models.SourceAFAD }

// afadEvent tolerates the API's habit of quoting numeric fields.
type afadEvent struct {
	ID        flexString `json:"earthquake_id"`
	Magnitude flexFloat  `json:"magnitude"`
	Location  string     `json:"location"`
	Latitude  flexFloat  `json:"latitude"`
	Longitude flexFloat  `json:"longitude"`
	Depth     flexFloat  `json:"depth"`
	Date      string     `json:"date"`
}

// Fetch queries the rolling window and parses the JSON array response.
func (s *AFADSource) Fetch(ctx context.Context) ([]RawEvent, error) {
	end := s.now()
	start := end.Add(-24 * time.Hour)

	params := url.Values{}
	params.Set("start", start.Format(afadTimeLayout))
	params.Set("end", end.Format(afadTimeLayout))
	params.Set("minlat", fmt.Sprintf("%.1f", geo.TurkeyLatMin))
	params.Set("maxlat", fmt.Sprintf("%.1f", geo.TurkeyLatMax))
	params.Set("minlon", fmt.Sprintf("%.1f", geo.TurkeyLonMin))
	params.Set("maxlon", fmt.Sprintf("%.1f", geo.TurkeyLonMax))
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch AFAD: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	var quakes []afadEvent
	if err := json.NewDecoder(resp.Body).Decode(&quakes); err != nil {
		return nil, fmt.Errorf("parse AFAD: %w", err)
	}

	events := make([]RawEvent, 0, len(quakes))
	for _, q := range quakes {
		events = append(events, RawEvent{
			NativeID:   string(q.ID),
			Magnitude:  float64(q.Magnitude),
			Place:      q.Location,
			Lat:        float64(q.Latitude),
			Lon:        float64(q.Longitude),
			Depth:      float64(q.Depth),
			OccurredAt: s.parseAFADTime(q.Date),
			Source:     models.SourceAFAD,
		})
	}

	return events, nil
}

// parseAFADTime accepts both date forms the API emits; an unparseable
// date defaults to the current instant rather than dropping the record.
func (s *AFADSource) parseAFADTime(date string) time.Time {
	layout := afadTimeLayout
	if strings.Contains(date, "T") {
		layout = "2006-01-02T15:04:05"
	}
	if t, err := time.Parse(layout, date); err == nil {
		return t
	}
	return s.now().UTC()
}

// flexFloat unmarshals from either a JSON number or a quoted number.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

// flexString unmarshals from either a JSON string or a bare number.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		s = ""
	}
	*f = flexString(s)
	return nil
}
