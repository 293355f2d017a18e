package models

// Place is a single place search result. Places are transient UI state;
// they are never persisted as part of an itinerary.
type Place struct {
	Name        string       `json:"name"`
	Address     string       `json:"address,omitempty"`
	Rating      float64      `json:"rating,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	OrderLink   string       `json:"order_link,omitempty"`
}

// PlacesResponse is the response body for the place lookup endpoint.
// The local_results key matches the upstream search API payload shape.
type PlacesResponse struct {
	LocalResults []Place `json:"local_results"`
}
