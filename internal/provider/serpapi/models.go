package serpapi

// localSearchResponse is the subset of the google_local payload we use.
type localSearchResponse struct {
	LocalResults []localResult `json:"local_results"`
}

type localResult struct {
	Title          string          `json:"title"`
	Rating         float64         `json:"rating"`
	Address        string          `json:"address"`
	GPSCoordinates *gpsCoordinates `json:"gps_coordinates"`
	Links          localLinks      `json:"links"`
}

type gpsCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type localLinks struct {
	Order string `json:"order"`
}
