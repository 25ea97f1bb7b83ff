// Package providers implements the nearest-provider lookup: haversine
// great-circle distance over an in-memory directory.
package providers

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/healthlinkai/healthlink/internal/model"
)

const earthRadiusKM = 6371.0

// Directory is an immutable provider directory.
type Directory struct {
	providers []model.Provider
}

// NewDirectory creates a directory over the given records. A nil slice uses
// the built-in seed records.
func NewDirectory(providers []model.Provider) *Directory {
	if providers == nil {
		providers = seedProviders()
	}
	return &Directory{providers: providers}
}

// Nearest returns up to limit providers sorted by ascending distance from
// (lat, lng), optionally filtered by type (case-insensitive equality).
// A non-positive limit defaults to 5.
func (d *Directory) Nearest(lat, lng float64, providerType string, limit int) []model.RankedProvider {
	if limit <= 0 {
		limit = 5
	}

	ranked := make([]model.RankedProvider, 0, len(d.providers))
	for _, p := range d.providers {
		if providerType != "" && !strings.EqualFold(p.Type, providerType) {
			continue
		}
		dist := Haversine(lat, lng, p.Latitude, p.Longitude)
		ranked = append(ranked, model.RankedProvider{
			Provider:        p,
			DistanceKM:      math.Round(dist*100) / 100,
			DistanceDisplay: fmt.Sprintf("%.1f km", dist),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKM < ranked[j].DistanceKM
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Haversine returns the great-circle distance in kilometers between two
// points given in decimal degrees.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lng1r := lng1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	lng2r := lng2 * math.Pi / 180

	dlat := lat2r - lat1r
	dlng := lng2r - lng1r

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dlng/2)*math.Sin(dlng/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return earthRadiusKM * c
}

// seedProviders is the built-in directory used until a real data source is
// wired in by the caller.
func seedProviders() []model.Provider {
	return []model.Provider{
		{
			ID: 1, Name: "Dr. Sarah Johnson", Specialty: "General Practitioner",
			Type: "general_practitioner", Phone: "+237-233-44-55-66",
			Address: "123 Rue de la Paix, Douala", Latitude: 4.0511, Longitude: 9.7679,
			Rating: 4.8, Availability: "Available today", Languages: []string{"French", "English"},
		},
		{
			ID: 2, Name: "Dr. Michael Chen", Specialty: "Psychiatrist",
			Type: "psychiatrist", Phone: "+237-233-44-55-77",
			Address: "456 Avenue Kennedy, Yaoundé", Latitude: 3.8480, Longitude: 11.5021,
			Rating: 4.9, Availability: "Next available: Tomorrow", Languages: []string{"French", "English", "Chinese"},
		},
		{
			ID: 3, Name: "Dr. Amina Kouassi", Specialty: "Cardiologist",
			Type: "cardiologist", Phone: "+237-233-44-55-88",
			Address: "789 Boulevard de la Liberté, Douala", Latitude: 4.0611, Longitude: 9.7779,
			Rating: 4.7, Availability: "Available this week", Languages: []string{"French", "English", "Arabic"},
		},
		{
			ID: 4, Name: "Dr. Jean-Paul Mbarga", Specialty: "Psychologist",
			Type: "psychologist", Phone: "+237-233-44-55-99",
			Address: "321 Rue du Commerce, Yaoundé", Latitude: 3.8580, Longitude: 11.5121,
			Rating: 4.6, Availability: "Available next week", Languages: []string{"French", "English"},
		},
		{
			ID: 5, Name: "Dr. Marie Dubois", Specialty: "Pediatrician",
			Type: "pediatrician", Phone: "+237-233-44-66-00",
			Address: "654 Avenue de l'Indépendance, Douala", Latitude: 4.0411, Longitude: 9.7579,
			Rating: 4.8, Availability: "Available today", Languages: []string{"French", "English"},
		},
		{
			ID: 6, Name: "Dr. Ibrahim Hassan", Specialty: "Dermatologist",
			Type: "dermatologist", Phone: "+237-233-44-66-11",
			Address: "987 Rue de la République, Yaoundé", Latitude: 3.8380, Longitude: 11.4921,
			Rating: 4.5, Availability: "Available this week", Languages: []string{"French", "English", "Arabic"},
		},
		{
			ID: 7, Name: "Dr. Catherine Nkomo", Specialty: "Gynecologist",
			Type: "gynecologist", Phone: "+237-233-44-66-22",
			Address: "147 Boulevard du 20 Mai, Yaoundé", Latitude: 3.8680, Longitude: 11.5221,
			Rating: 4.9, Availability: "Available next week", Languages: []string{"French", "English"},
		},
		{
			ID: 8, Name: "Dr. Paul Essomba", Specialty: "Orthopedist",
			Type: "orthopedist", Phone: "+237-233-44-66-33",
			Address: "258 Rue Joss, Douala", Latitude: 4.0711, Longitude: 9.7879,
			Rating: 4.4, Availability: "Available tomorrow", Languages: []string{"French", "English"},
		},
	}
}
