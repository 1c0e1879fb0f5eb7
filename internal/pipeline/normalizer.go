package pipeline

import (
	"fmt"
	"strings"

	"github.com/burakozcn01/turkiye-deprem-takip/internal/geo"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/models"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/source"
)

// Normalize maps a raw feed record into the canonical event shape.
// Returns false when the record should be skipped: EMSC records outside
// the admission rectangle (the Kandilli and AFAD feeds are already
// region-scoped upstream) and records that cannot carry a stable id.
func Normalize(raw source.RawEvent) (models.Earthquake, bool) {
	if raw.Source == models.SourceEMSC && !geo.InTurkey(raw.Lat, raw.Lon) {
		return models.Earthquake{}, false
	}

	id := canonicalID(raw)
	if id == "" {
		return models.Earthquake{}, false
	}

	return models.Earthquake{
		ID:        id,
		Magnitude: raw.Magnitude,
		Place:     strings.TrimSpace(raw.Place),
		Lat:       raw.Lat,
		Lon:       raw.Lon,
		Depth:     raw.Depth,
		Time:      raw.OccurredAt,
		Source:    raw.Source,
	}, true
}

// canonicalID assigns the source-prefixed identifier. Kandilli has no
// native id, so one is synthesized from timestamp and coordinates.
func canonicalID(raw source.RawEvent) string {
	switch raw.Source {
	case models.SourceEMSC:
		if raw.NativeID == "" {
			return ""
		}
		return "emsc_" + raw.NativeID
	case models.SourceAFAD:
		if raw.NativeID == "" {
			return ""
		}
		return "afad_" + raw.NativeID
	case models.SourceKandilli:
		return fmt.Sprintf("kandilli_%s_%g_%g", raw.OccurredAt.Format("20060102150405"), raw.Lat, raw.Lon)
	default:
		return ""
	}
}
