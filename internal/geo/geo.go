// Package geo resolves event coordinates to the nearest Turkish province
// using immutable reference tables: one centroid per province, overlapping
// axis-aligned bounding boxes, and a short override list for known
// box/centroid conflicts.
package geo

import (
	"math"
)

const earthRadiusKm = 6371

// Haversine returns the great-circle distance in kilometers between two
// points given in plain degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlon1 := lon1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	rlon2 := lon2 * math.Pi / 180

	dlat := rlat2 - rlat1
	dlon := rlon2 - rlon1

	a := math.Pow(math.Sin(dlat/2), 2) + math.Cos(rlat1)*math.Cos(rlat2)*math.Pow(math.Sin(dlon/2), 2)
	c := 2 * math.Asin(math.Sqrt(a))
	return c * earthRadiusKm
}

// Resolve returns the nearest city name and its distance in kilometers,
// rounded to one decimal. Resolution order:
//
//  1. special-region override: inside an override box -> that city, distance 0
//  2. province containment: exactly one box -> that province; several
//     overlapping boxes -> the one whose centroid is nearest
//  3. fallback for points outside every box (offshore events, coverage
//     gaps): linear scan for the globally nearest centroid
//
// Resolve is pure and always returns a city.
func Resolve(lat, lon float64) (string, float64) {
	for _, sr := range SpecialRegions {
		if sr.Box.Contains(lat, lon) {
			return sr.City, 0
		}
	}

	var matches []string
	for province, box := range ProvinceBounds {
		if box.Contains(lat, lon) {
			matches = append(matches, province)
		}
	}

	switch len(matches) {
	case 0:
		return nearestOf(lat, lon, nil)
	case 1:
		c := Cities[matches[0]]
		return matches[0], round1(Haversine(lat, lon, c.Lat, c.Lon))
	default:
		return nearestOf(lat, lon, matches)
	}
}

// nearestOf returns the candidate whose centroid is nearest to the point.
// A nil candidate list means the whole city table.
func nearestOf(lat, lon float64, candidates []string) (string, float64) {
	if candidates == nil {
		candidates = make([]string, 0, len(Cities))
		for city := range Cities {
			candidates = append(candidates, city)
		}
	}

	minDist := math.Inf(1)
	nearest := ""
	for _, city := range candidates {
		c := Cities[city]
		if d := Haversine(lat, lon, c.Lat, c.Lon); d < minDist {
			minDist = d
			nearest = city
		}
	}
	return nearest, round1(minDist)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
