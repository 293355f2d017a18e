package handler

import (
	"net/http"
	"strconv"

	"github.com/wanderdesk/wanderdesk/internal/api/middleware"
	"github.com/wanderdesk/wanderdesk/internal/api/models"
	"github.com/wanderdesk/wanderdesk/internal/api/response"
	"github.com/wanderdesk/wanderdesk/internal/places"
)

// PlacesHandler handles place lookup endpoints.
type PlacesHandler struct {
	service *places.Service
}

// NewPlacesHandler creates a new PlacesHandler.
func NewPlacesHandler(service *places.Service) *PlacesHandler {
	return &PlacesHandler{service: service}
}

// SearchPlaces handles GET /v1/api/search-places.
//
// Query parameters:
//   - lat, lng: coordinates to search around (required)
//   - query: free-text query, or
//   - filter: UI category filter (attractions, hotels; anything else
//     means restaurants)
//
// Lookup failures are not errors from the client's point of view: the
// response is always 200 with a (possibly empty) local_results array.
func (h *PlacesHandler) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		response.BadRequest(w, r, "lat must be a valid number", []models.FieldError{
			{Field: "lat", Message: "must be a valid number"},
		})
		return
	}

	lng, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err != nil {
		response.BadRequest(w, r, "lng must be a valid number", []models.FieldError{
			{Field: "lng", Message: "must be a valid number"},
		})
		return
	}

	query := r.URL.Query().Get("query")
	if query == "" {
		query = places.QueryForFilter(r.URL.Query().Get("filter"))
	}

	results := h.service.Search(r.Context(), middleware.GetSessionID(r.Context()), lat, lng, query)
	response.JSON(w, r, http.StatusOK, models.PlacesResponse{LocalResults: results})
}
