package itinerary_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/wanderdesk/wanderdesk/internal/itinerary"
)

func TestParseDate(t *testing.T) {
	d, err := itinerary.ParseDate("2024-03-01")
	if err != nil {
		t.Fatalf("failed to parse date: %v", err)
	}
	if d.String() != "2024-03-01" {
		t.Errorf("expected 2024-03-01, got %s", d)
	}

	if _, err := itinerary.ParseDate("01/03/2024"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestDate_DaysUntil(t *testing.T) {
	start := itinerary.NewDate(2024, time.March, 1)

	if got := start.DaysUntil(itinerary.NewDate(2024, time.March, 3)); got != 2 {
		t.Errorf("expected 2 days, got %d", got)
	}
	if got := start.DaysUntil(start); got != 0 {
		t.Errorf("expected 0 days, got %d", got)
	}
	if got := start.DaysUntil(itinerary.NewDate(2024, time.February, 28)); got != -2 {
		t.Errorf("expected -2 days, got %d", got)
	}
	// Across a leap day.
	feb := itinerary.NewDate(2024, time.February, 28)
	if got := feb.DaysUntil(itinerary.NewDate(2024, time.March, 1)); got != 2 {
		t.Errorf("expected 2 days across leap day, got %d", got)
	}
}

func TestDate_AddDays(t *testing.T) {
	d := itinerary.NewDate(2024, time.March, 30)
	if got := d.AddDays(2).String(); got != "2024-04-01" {
		t.Errorf("expected month rollover to 2024-04-01, got %s", got)
	}
}

func TestDate_JSON(t *testing.T) {
	d := itinerary.NewDate(2024, time.March, 1)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	if string(data) != `"2024-03-01"` {
		t.Errorf(`expected "2024-03-01", got %s`, data)
	}

	var zero itinerary.Date
	data, err = json.Marshal(zero)
	if err != nil {
		t.Fatalf("failed to marshal zero date: %v", err)
	}
	if string(data) != "null" {
		t.Errorf("expected null for zero date, got %s", data)
	}

	var parsed itinerary.Date
	if err := json.Unmarshal([]byte(`"2024-03-01"`), &parsed); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if !parsed.Equal(d) {
		t.Errorf("expected %s, got %s", d, parsed)
	}

	var unset itinerary.Date
	if err := json.Unmarshal([]byte(`""`), &unset); err != nil {
		t.Fatalf("failed to unmarshal empty string: %v", err)
	}
	if !unset.IsZero() {
		t.Error("expected empty string to mean unset")
	}
	if err := json.Unmarshal([]byte("null"), &unset); err != nil {
		t.Fatalf("failed to unmarshal null: %v", err)
	}
	if !unset.IsZero() {
		t.Error("expected null to mean unset")
	}
}
