package models

import (
	"testing"
	"time"
)

func TestEarthquakeQueryMatches(t *testing.T) {
	when := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	ev := Earthquake{
		ID:          "afad_1",
		Magnitude:   4.2,
		NearestCity: "İzmir",
		Time:        when,
		Source:      SourceAFAD,
	}

	tests := []struct {
		name  string
		query EarthquakeQuery
		want  bool
	}{
		{"empty query matches everything", EarthquakeQuery{}, true},
		{"matching source", EarthquakeQuery{Sources: []string{SourceAFAD}}, true},
		{"non-matching source", EarthquakeQuery{Sources: []string{SourceEMSC}}, false},
		{"matching city", EarthquakeQuery{NearestCity: "İzmir"}, true},
		{"non-matching city", EarthquakeQuery{NearestCity: "Ankara"}, false},
		{"magnitude at bound", EarthquakeQuery{MinMagnitude: 4.2}, true},
		{"magnitude above event", EarthquakeQuery{MinMagnitude: 4.3}, false},
		{"since before event", EarthquakeQuery{Since: when.Add(-time.Hour)}, true},
		{"since after event", EarthquakeQuery{Since: when.Add(time.Hour)}, false},
		{"until after event", EarthquakeQuery{Until: when.Add(time.Hour)}, true},
		{"until before event", EarthquakeQuery{Until: when.Add(-time.Hour)}, false},
		{
			"combined filters",
			EarthquakeQuery{Sources: []string{SourceAFAD}, MinMagnitude: 3.0, NearestCity: "İzmir"},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.Matches(ev); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
