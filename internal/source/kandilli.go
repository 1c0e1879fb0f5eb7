package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"

	"github.com/burakozcn01/turkiye-deprem-takip/internal/models"
)

const (
	// magnitude columns carry this placeholder when no measurement exists
	kandilliNoMagnitude = "-.-"

	// date time lat lon depth MD ML Mw place...
	kandilliMinFields = 9

	kandilliTimeLayout = "2006.01.02 15:04:05"
)

// Lines end at one of these markers; anything after is solution metadata.
var kandilliRevisionMarkers = map[string]bool{
	"İlksel":   true,
	"REVIZE01": true,
	"REVIZE02": true,
}

var preBlockRe = regexp.MustCompile(`(?s)<pre>(.*?)</pre>`)

// KandilliSource fetches the Kandilli observatory list, an HTML page whose
// single <pre> block holds fixed-token event rows encoded as windows-1254.
type KandilliSource struct {
	url    string
	client *http.Client
}

// NewKandilliSource creates a Kandilli adapter
func NewKandilliSource(url string, timeout time.Duration) *KandilliSource {
	return &KandilliSource{url: url, client: newHTTPClient(timeout)}
}

// Name returns the source name
func (s *KandilliSource) Name() string { return models.SourceKandilli }

// Fetch retrieves and parses the observatory list. Lines that cannot be
// parsed are skipped individually.
func (s *KandilliSource) Fetch(ctx context.Context) ([]RawEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch Kandilli: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read Kandilli body: %w", err)
	}

	// The page is windows-1254. A failed decode only corrupts place names,
	// never the numeric columns, so fall back to the raw bytes.
	body, err := charmap.Windows1254.NewDecoder().Bytes(raw)
	if err != nil {
		body = raw
	}

	return parseKandilli(string(body)), nil
}

// parseKandilli extracts the <pre> block and parses its event rows.
func parseKandilli(content string) []RawEvent {
	m := preBlockRe.FindStringSubmatch(content)
	if m == nil {
		return nil
	}

	var events []RawEvent
	for _, line := range strings.Split(m[1], "\n") {
		if ev, ok := parseKandilliLine(line); ok {
			events = append(events, ev)
		}
	}
	return events
}

func parseKandilliLine(line string) (RawEvent, bool) {
	if strings.TrimSpace(line) == "" {
		return RawEvent{}, false
	}
	// column header carries all three magnitude-type tokens
	if strings.Contains(line, "MD") && strings.Contains(line, "ML") && strings.Contains(line, "Mw") {
		return RawEvent{}, false
	}

	fields := strings.Fields(line)
	if len(fields) < kandilliMinFields {
		return RawEvent{}, false
	}

	occurredAt, err := time.Parse(kandilliTimeLayout, fields[0]+" "+fields[1])
	if err != nil {
		return RawEvent{}, false
	}

	lat, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return RawEvent{}, false
	}
	lon, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return RawEvent{}, false
	}
	depth, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return RawEvent{}, false
	}

	// fields 6/7 are ML and Mw; the duration magnitude in field 5 is unused
	ml := parseKandilliMagnitude(fields[6])
	mw := parseKandilliMagnitude(fields[7])
	magnitude := ml
	if mw > magnitude {
		magnitude = mw
	}
	if magnitude == 0 {
		return RawEvent{}, false
	}

	placeFields := fields[8:]
	for i, f := range placeFields {
		if kandilliRevisionMarkers[f] {
			placeFields = placeFields[:i]
			break
		}
	}

	return RawEvent{
		Magnitude:  magnitude,
		Place:      strings.Join(placeFields, " "),
		Lat:        lat,
		Lon:        lon,
		Depth:      depth,
		OccurredAt: occurredAt,
		Source:     models.SourceKandilli,
	}, true
}

func parseKandilliMagnitude(s string) float64 {
	if s == kandilliNoMagnitude {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
