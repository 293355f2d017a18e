// Package itinerary implements the day-planner core: a trip with an ordered
// collection of days, each holding an ordered collection of activities.
package itinerary

import (
	"strconv"
	"time"
)

// Category classifies an activity.
type Category string

const (
	CategoryAttraction Category = "attraction"
	CategoryRestaurant Category = "restaurant"
	CategoryHotel      Category = "hotel"
	CategoryTransport  Category = "transport"
	CategoryShopping   Category = "shopping"
	CategoryActivity   Category = "activity"
	CategoryOther      Category = "other"
)

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	switch c {
	case CategoryAttraction, CategoryRestaurant, CategoryHotel,
		CategoryTransport, CategoryShopping, CategoryActivity, CategoryOther:
		return true
	}
	return false
}

// Activity is a single planned item within a day.
type Activity struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Time     string   `json:"time,omitempty"`
	Location string   `json:"location,omitempty"`
	Notes    string   `json:"notes,omitempty"`
	Category Category `json:"category"`
	Duration string   `json:"duration,omitempty"`
	Cost     string   `json:"cost,omitempty"`
}

// Day is one calendar date within a trip. IDs are 1-based and sequential.
type Day struct {
	ID         int        `json:"id"`
	Date       Date       `json:"date"`
	Activities []Activity `json:"activities"`
}

// DateRange is the trip's inclusive date range.
type DateRange struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// Snapshot is the full persisted state of one planner session:
// trip metadata plus the ordered day collection. It is the unit of
// storage for the snapshot repository.
type Snapshot struct {
	TripName    string    `json:"tripName"`
	TripDates   DateRange `json:"tripDates"`
	Days        []Day     `json:"days"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// NewSnapshot returns an empty planner state.
func NewSnapshot() *Snapshot {
	return &Snapshot{Days: []Day{}}
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	cp := *s
	cp.Days = make([]Day, len(s.Days))
	for i, d := range s.Days {
		day := d
		day.Activities = make([]Activity, len(d.Activities))
		copy(day.Activities, d.Activities)
		cp.Days[i] = day
	}
	return &cp
}

// Totals are aggregates derived from the day collection on read.
type Totals struct {
	TotalDays       int     `json:"totalDays"`
	TotalActivities int     `json:"totalActivities"`
	TotalCost       float64 `json:"totalCost"`
}

// ComputeTotals derives totals from a day collection. Costs that are empty
// or unparsable count as zero. Recomputed on every read; the expected data
// volume is tens of activities.
func ComputeTotals(days []Day) Totals {
	totals := Totals{TotalDays: len(days)}
	for _, day := range days {
		totals.TotalActivities += len(day.Activities)
		for _, act := range day.Activities {
			if act.Cost == "" {
				continue
			}
			if cost, err := strconv.ParseFloat(act.Cost, 64); err == nil {
				totals.TotalCost += cost
			}
		}
	}
	return totals
}
