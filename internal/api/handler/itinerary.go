package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wanderdesk/wanderdesk/internal/api/middleware"
	"github.com/wanderdesk/wanderdesk/internal/api/models"
	"github.com/wanderdesk/wanderdesk/internal/api/response"
	"github.com/wanderdesk/wanderdesk/internal/itinerary"
)

// ItineraryHandler handles itinerary endpoints. All operations are scoped
// to the planner session resolved by the session middleware.
type ItineraryHandler struct {
	service *itinerary.Service
}

// NewItineraryHandler creates a new ItineraryHandler.
func NewItineraryHandler(service *itinerary.Service) *ItineraryHandler {
	return &ItineraryHandler{service: service}
}

// GetItinerary handles GET /v1/api/itinerary - load the session snapshot.
func (h *ItineraryHandler) GetItinerary(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Get(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, snap)
}

// UpdateTrip handles PUT /v1/api/itinerary - update trip name and/or dates.
func (h *ItineraryHandler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	var input models.TripUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	snap, err := h.service.UpdateTrip(r.Context(), middleware.GetSessionID(r.Context()), &input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, snap)
}

// SetDates handles PUT /v1/api/itinerary/dates - regenerate days from a range.
func (h *ItineraryHandler) SetDates(w http.ResponseWriter, r *http.Request) {
	var input models.DateRangeRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	snap, err := h.service.SetTripDateRange(r.Context(), middleware.GetSessionID(r.Context()), &input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, snap)
}

// AddDay handles POST /v1/api/itinerary/days - append one day.
func (h *ItineraryHandler) AddDay(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.AddDay(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusCreated, snap)
}

// AddActivity handles POST /v1/api/itinerary/days/{day}/activities.
func (h *ItineraryHandler) AddActivity(w http.ResponseWriter, r *http.Request) {
	dayIndex, ok := h.dayIndex(w, r)
	if !ok {
		return
	}

	var input models.ActivityCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	activity, err := h.service.AddActivity(r.Context(), middleware.GetSessionID(r.Context()), dayIndex, &input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Created(w, r, "", activity)
}

// EditActivity handles PATCH /v1/api/itinerary/days/{day}/activities/{activityId}.
func (h *ItineraryHandler) EditActivity(w http.ResponseWriter, r *http.Request) {
	dayIndex, ok := h.dayIndex(w, r)
	if !ok {
		return
	}
	activityID := chi.URLParam(r, "activityId")

	var patch models.ActivityPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	activity, err := h.service.EditActivity(r.Context(), middleware.GetSessionID(r.Context()), dayIndex, activityID, &patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, activity)
}

// DeleteActivity handles DELETE /v1/api/itinerary/days/{day}/activities/{activityId}.
// Deleting an activity that is already gone still returns 204.
func (h *ItineraryHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	dayIndex, ok := h.dayIndex(w, r)
	if !ok {
		return
	}
	activityID := chi.URLParam(r, "activityId")

	if err := h.service.DeleteActivity(r.Context(), middleware.GetSessionID(r.Context()), dayIndex, activityID); err != nil {
		h.writeError(w, r, err)
		return
	}
	response.NoContent(w, r)
}

// MoveActivity handles POST /v1/api/itinerary/activities/move.
func (h *ItineraryHandler) MoveActivity(w http.ResponseWriter, r *http.Request) {
	var input models.MoveActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	snap, err := h.service.MoveActivity(r.Context(), middleware.GetSessionID(r.Context()), &input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, snap)
}

// AddFromPlace handles POST /v1/api/itinerary/days/{day}/places - convert a
// place search result into an activity.
func (h *ItineraryHandler) AddFromPlace(w http.ResponseWriter, r *http.Request) {
	dayIndex, ok := h.dayIndex(w, r)
	if !ok {
		return
	}

	var input models.PlaceAddRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	activity, err := h.service.AddFromPlace(r.Context(), middleware.GetSessionID(r.Context()), dayIndex, &input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Created(w, r, "", activity)
}

// GetTotals handles GET /v1/api/itinerary/totals.
func (h *ItineraryHandler) GetTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.service.Totals(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, totals)
}

func (h *ItineraryHandler) dayIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "day")
	idx, err := strconv.Atoi(raw)
	if err != nil || idx < 0 {
		response.BadRequest(w, r, "day must be a non-negative integer index", nil)
		return 0, false
	}
	return idx, true
}

func (h *ItineraryHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validation *itinerary.ValidationError
	switch {
	case errors.As(err, &validation):
		response.BadRequest(w, r, "validation failed", validation.Errors)
	case errors.Is(err, itinerary.ErrDayNotFound):
		response.NotFound(w, r, "day does not exist")
	case errors.Is(err, itinerary.ErrActivityNotFound):
		response.NotFound(w, r, "activity does not exist")
	default:
		response.InternalError(w, r, "an unexpected error occurred")
	}
}
