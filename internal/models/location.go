package models

import "fmt"

// Coordinates is a latitude/longitude pair in decimal degrees
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// String formats the pair the way it is shown in the header
func (c Coordinates) String() string {
	return fmt.Sprintf("%.4f, %.4f", c.Latitude, c.Longitude)
}

// Location is a single autocomplete suggestion returned by the backend.
// It is never modified after it is decoded.
type Location struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Display   string  `json:"display"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Coordinates returns the position of the suggestion
func (l Location) Coordinates() Coordinates {
	return Coordinates{Latitude: l.Latitude, Longitude: l.Longitude}
}

// Label returns the text placed in the search box when the suggestion is
// selected. The backend normally fills Display; older responses may not.
func (l Location) Label() string {
	if l.Display != "" {
		return l.Display
	}
	if l.Country == "" {
		return l.Name
	}
	return l.Name + ", " + l.Country
}

// EchoedLocation is the location block the weather endpoints send back
// alongside the data, describing where the data was actually fetched for.
type EchoedLocation struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Coordinates returns the echoed position, or false when either component is
// missing (zero), matching how the dashboard ignored partial echoes.
func (e *EchoedLocation) Coordinates() (Coordinates, bool) {
	if e == nil || e.Latitude == 0 || e.Longitude == 0 {
		return Coordinates{}, false
	}
	return Coordinates{Latitude: e.Latitude, Longitude: e.Longitude}, true
}

// Label describes the echoed location for the header
func (e *EchoedLocation) Label() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Name != "" && e.Country != "":
		return e.Name + ", " + e.Country
	case e.Name != "":
		return e.Name
	default:
		return Coordinates{Latitude: e.Latitude, Longitude: e.Longitude}.String()
	}
}
