package model

// Provider is a healthcare provider record in the directory.
type Provider struct {
	ID           int      `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Specialty    string   `json:"specialty" yaml:"specialty"`
	Type         string   `json:"type" yaml:"type"` // filterable, e.g. "psychiatrist"
	Phone        string   `json:"phone,omitempty" yaml:"phone"`
	Address      string   `json:"address,omitempty" yaml:"address"`
	Latitude     float64  `json:"latitude" yaml:"latitude"`
	Longitude    float64  `json:"longitude" yaml:"longitude"`
	Rating       float64  `json:"rating,omitempty" yaml:"rating"`
	Availability string   `json:"availability,omitempty" yaml:"availability"`
	Languages    []string `json:"languages,omitempty" yaml:"languages"`
}

// RankedProvider is a provider plus its computed distance from the caller.
type RankedProvider struct {
	Provider
	DistanceKM      float64 `json:"distance_km"`
	DistanceDisplay string  `json:"distance_display"` // e.g. "2.3 km"
}
