package models

// TripUpdateRequest updates trip metadata. Both fields are optional;
// omitted fields are left unchanged.
type TripUpdateRequest struct {
	TripName  *string           `json:"tripName"`
	TripDates *DateRangeRequest `json:"tripDates"`
}

// DateRangeRequest sets the trip date range. Dates use YYYY-MM-DD format.
type DateRangeRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ActivityCreateRequest creates a new activity on a day.
type ActivityCreateRequest struct {
	Title    string `json:"title"`
	Time     string `json:"time,omitempty"`
	Location string `json:"location,omitempty"`
	Notes    string `json:"notes,omitempty"`
	Category string `json:"category,omitempty"`
	Duration string `json:"duration,omitempty"`
	Cost     string `json:"cost,omitempty"`
}

// ActivityPatchRequest updates an existing activity. Only non-nil fields
// are applied.
type ActivityPatchRequest struct {
	Title    *string `json:"title"`
	Time     *string `json:"time"`
	Location *string `json:"location"`
	Notes    *string `json:"notes"`
	Category *string `json:"category"`
	Duration *string `json:"duration"`
	Cost     *string `json:"cost"`
}

// MoveActivityRequest moves an activity between days (or reorders it
// within a day when sourceDay equals targetDay).
type MoveActivityRequest struct {
	SourceDay  int    `json:"sourceDay"`
	ActivityID string `json:"activityId"`
	TargetDay  int    `json:"targetDay"`
	Position   int    `json:"position"`
}

// PlaceAddRequest converts a place search result into an activity.
type PlaceAddRequest struct {
	Name     string  `json:"name"`
	Address  string  `json:"address,omitempty"`
	Rating   float64 `json:"rating,omitempty"`
	Category string  `json:"category,omitempty"`
}
