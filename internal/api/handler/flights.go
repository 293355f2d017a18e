package handler

import (
	"errors"
	"net/http"

	"github.com/wanderdesk/wanderdesk/internal/api/middleware"
	"github.com/wanderdesk/wanderdesk/internal/api/response"
	"github.com/wanderdesk/wanderdesk/internal/flights"
)

// FlightsHandler handles the flight search proxy endpoint.
type FlightsHandler struct {
	service *flights.Service
}

// NewFlightsHandler creates a new FlightsHandler.
func NewFlightsHandler(service *flights.Service) *FlightsHandler {
	return &FlightsHandler{service: service}
}

// SearchFlights handles GET /v1/api/flights. The upstream JSON body is
// returned verbatim on success; upstream failures surface as a generic
// 500 so the server key and upstream details stay hidden.
func (h *FlightsHandler) SearchFlights(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := flights.Query{
		DepartureID:   q.Get("departure_id"),
		ArrivalID:     q.Get("arrival_id"),
		OutboundDate:  q.Get("outbound_date"),
		ReturnDate:    q.Get("return_date"),
		Adults:        q.Get("adults"),
		TravelClass:   q.Get("travel_class"),
		Children:      q.Get("children"),
		InfantsInSeat: q.Get("infants_in_seat"),
		Airlines:      q.Get("airlines"),
		Nonstop:       q.Get("nonstop"),
	}

	body, err := h.service.Search(r.Context(), query)
	if err != nil {
		var validation *flights.ValidationError
		if errors.As(err, &validation) {
			response.BadRequest(w, r, "validation failed", validation.Errors)
			return
		}
		response.InternalError(w, r, "flight search failed")
		return
	}

	requestID := middleware.GetRequestID(r.Context())
	if requestID != "" {
		w.Header().Set("X-Request-Id", requestID)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
