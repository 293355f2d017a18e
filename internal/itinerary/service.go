package itinerary

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/wanderdesk/wanderdesk/internal/api/models"
)

// Service errors.
var (
	// ErrDayNotFound is returned for an operation on a day index that
	// does not exist.
	ErrDayNotFound = errors.New("day not found")

	// ErrActivityNotFound is returned when an activity ID is not present
	// on the given day.
	ErrActivityNotFound = errors.New("activity not found")
)

// ValidationError carries field-level validation failures. The operation
// is aborted and no state is mutated.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// ServiceConfig holds configuration for the itinerary service.
type ServiceConfig struct {
	// Repository persists planner snapshots.
	Repository SnapshotRepository

	// Logger for service operations.
	Logger zerolog.Logger

	// AutosaveDelay is the debounce window for persistence
	// (default: DefaultAutosaveDelay).
	AutosaveDelay time.Duration
}

// Service is the itinerary store. It holds per-session planner state,
// applies mutations synchronously, and schedules a debounced save after
// every mutation. State for a session is loaded from the repository on
// first touch; a missing or unreadable snapshot yields a fresh empty
// planner rather than an error.
type Service struct {
	repo   SnapshotRepository
	saver  *Autosaver
	logger zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*Snapshot
	lastID   int64
}

// NewService creates a new itinerary service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		repo:     cfg.Repository,
		saver:    NewAutosaver(cfg.Repository, cfg.Logger, cfg.AutosaveDelay),
		logger:   cfg.Logger,
		sessions: make(map[string]*Snapshot),
	}
}

// Close flushes pending autosaves.
func (s *Service) Close() {
	s.saver.Close()
}

// Get returns the current planner snapshot for a session.
func (s *Service) Get(ctx context.Context, key string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state(ctx, key).Clone(), nil
}

// Totals returns aggregates derived from the session's day collection.
func (s *Service) Totals(ctx context.Context, key string) (Totals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return ComputeTotals(s.state(ctx, key).Days), nil
}

// UpdateTrip applies trip metadata changes: an optional new name and an
// optional new date range. Setting the date range regenerates the day
// collection, one day per calendar date inclusive of both ends.
// Activities are preserved per day index where the index is reused; days
// beyond the new range are discarded. A range with either bound missing
// is ignored.
func (s *Service) UpdateTrip(ctx context.Context, key string, input *models.TripUpdateRequest) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state(ctx, key)

	if input.TripDates != nil {
		if err := s.applyDateRange(snap, input.TripDates); err != nil {
			return nil, err
		}
	}
	if input.TripName != nil {
		snap.TripName = *input.TripName
	}

	s.touch(key, snap)
	return snap.Clone(), nil
}

// SetTripDateRange regenerates the day collection from a date range.
// A request with either bound empty is a no-op.
func (s *Service) SetTripDateRange(ctx context.Context, key string, input *models.DateRangeRequest) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state(ctx, key)
	if err := s.applyDateRange(snap, input); err != nil {
		return nil, err
	}

	s.touch(key, snap)
	return snap.Clone(), nil
}

func (s *Service) applyDateRange(snap *Snapshot, input *models.DateRangeRequest) error {
	// Both bounds are required; a half-set range is silently ignored so
	// the planner keeps its current days while the user is mid-edit.
	if input.Start == "" || input.End == "" {
		return nil
	}

	start, err := ParseDate(input.Start)
	if err != nil {
		return &ValidationError{Errors: []models.FieldError{
			{Field: "tripDates.start", Message: "must be a YYYY-MM-DD date"},
		}}
	}
	end, err := ParseDate(input.End)
	if err != nil {
		return &ValidationError{Errors: []models.FieldError{
			{Field: "tripDates.end", Message: "must be a YYYY-MM-DD date"},
		}}
	}
	if end.Before(start) {
		return &ValidationError{Errors: []models.FieldError{
			{Field: "tripDates.end", Message: "must not be before start"},
		}}
	}

	count := start.DaysUntil(end) + 1
	days := make([]Day, count)
	for i := 0; i < count; i++ {
		activities := []Activity{}
		// Truncation is by index, not by date: a regenerated day keeps
		// whatever activities lived at the same position before.
		if i < len(snap.Days) && snap.Days[i].Activities != nil {
			activities = snap.Days[i].Activities
		}
		days[i] = Day{
			ID:         i + 1,
			Date:       start.AddDays(i),
			Activities: activities,
		}
	}

	snap.TripDates = DateRange{Start: start, End: end}
	snap.Days = days
	return nil
}

// AddDay appends one day after the last existing day (dated today when the
// planner is empty).
func (s *Service) AddDay(ctx context.Context, key string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state(ctx, key)

	date := Today()
	if n := len(snap.Days); n > 0 {
		date = snap.Days[n-1].Date.AddDays(1)
	}
	snap.Days = append(snap.Days, Day{
		ID:         len(snap.Days) + 1,
		Date:       date,
		Activities: []Activity{},
	})

	s.touch(key, snap)
	return snap.Clone(), nil
}

// AddActivity validates the draft and appends it to the day's activity
// sequence with a fresh unique ID.
func (s *Service) AddActivity(ctx context.Context, key string, dayIndex int, input *models.ActivityCreateRequest) (*Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state(ctx, key)
	if dayIndex < 0 || dayIndex >= len(snap.Days) {
		return nil, ErrDayNotFound
	}

	activity, err := s.buildActivity(input)
	if err != nil {
		return nil, err
	}

	snap.Days[dayIndex].Activities = append(snap.Days[dayIndex].Activities, activity)
	s.touch(key, snap)

	result := activity
	return &result, nil
}

// EditActivity merges a patch into the matching activity, preserving its
// ID and position.
func (s *Service) EditActivity(ctx context.Context, key string, dayIndex int, activityID string, patch *models.ActivityPatchRequest) (*Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state(ctx, key)
	if dayIndex < 0 || dayIndex >= len(snap.Days) {
		return nil, ErrDayNotFound
	}

	idx := findActivity(snap.Days[dayIndex].Activities, activityID)
	if idx < 0 {
		return nil, ErrActivityNotFound
	}

	// Validate the full patch before mutating anything.
	var errs []models.FieldError
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		errs = append(errs, models.FieldError{Field: "title", Message: "cannot be empty"})
	}
	var category Category
	if patch.Category != nil {
		// An explicit empty category in a patch is rejected rather than
		// silently resetting the existing one to the default.
		if *patch.Category == "" {
			errs = append(errs, models.FieldError{Field: "category", Message: "cannot be empty"})
		} else {
			var err error
			category, err = normalizeCategory(*patch.Category)
			if err != nil {
				errs = append(errs, models.FieldError{Field: "category", Message: "is not a known category"})
			}
		}
	}
	if patch.Cost != nil {
		errs = append(errs, validateCost(*patch.Cost)...)
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	act := &snap.Days[dayIndex].Activities[idx]
	if patch.Title != nil {
		act.Title = *patch.Title
	}
	if patch.Time != nil {
		act.Time = *patch.Time
	}
	if patch.Location != nil {
		act.Location = *patch.Location
	}
	if patch.Notes != nil {
		act.Notes = *patch.Notes
	}
	if patch.Category != nil {
		act.Category = category
	}
	if patch.Duration != nil {
		act.Duration = *patch.Duration
	}
	if patch.Cost != nil {
		act.Cost = *patch.Cost
	}

	s.touch(key, snap)

	result := *act
	return &result, nil
}

// DeleteActivity removes the activity with the given ID from the day.
// Deleting something that is already gone is a no-op, so a stale client
// reference never surfaces as an error.
func (s *Service) DeleteActivity(ctx context.Context, key string, dayIndex int, activityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state(ctx, key)
	if dayIndex < 0 || dayIndex >= len(snap.Days) {
		return nil
	}

	idx := findActivity(snap.Days[dayIndex].Activities, activityID)
	if idx < 0 {
		return nil
	}

	day := &snap.Days[dayIndex]
	day.Activities = append(day.Activities[:idx], day.Activities[idx+1:]...)

	s.touch(key, snap)
	return nil
}

// MoveActivity removes the activity from the source day and inserts it at
// the given position in the target day as one atomic operation. The
// position is clamped to the target's bounds after removal, which also
// covers reordering within the same day.
func (s *Service) MoveActivity(ctx context.Context, key string, input *models.MoveActivityRequest) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state(ctx, key)
	if input.SourceDay < 0 || input.SourceDay >= len(snap.Days) {
		return nil, ErrDayNotFound
	}
	if input.TargetDay < 0 || input.TargetDay >= len(snap.Days) {
		return nil, ErrDayNotFound
	}

	src := &snap.Days[input.SourceDay]
	idx := findActivity(src.Activities, input.ActivityID)
	if idx < 0 {
		return nil, ErrActivityNotFound
	}

	act := src.Activities[idx]
	src.Activities = append(src.Activities[:idx], src.Activities[idx+1:]...)

	dst := &snap.Days[input.TargetDay]
	pos := input.Position
	if pos < 0 {
		pos = 0
	}
	if pos > len(dst.Activities) {
		pos = len(dst.Activities)
	}

	dst.Activities = append(dst.Activities, Activity{})
	copy(dst.Activities[pos+1:], dst.Activities[pos:])
	dst.Activities[pos] = act

	s.touch(key, snap)
	return snap.Clone(), nil
}

// AddFromPlace converts a place search result into an activity on the
// given day. The place is copied; the stored activity has no link back to
// the live lookup result.
func (s *Service) AddFromPlace(ctx context.Context, key string, dayIndex int, input *models.PlaceAddRequest) (*Activity, error) {
	draft := &models.ActivityCreateRequest{
		Title:    input.Name,
		Location: input.Address,
		Category: input.Category,
	}
	if input.Rating > 0 {
		draft.Notes = fmt.Sprintf("Rating: %.1f", input.Rating)
	}
	return s.AddActivity(ctx, key, dayIndex, draft)
}

// state returns the in-memory snapshot for a session, loading it from the
// repository on first touch. Load failures reset to an empty planner; the
// worst case is stale data, never a crash. Callers must hold s.mu.
func (s *Service) state(ctx context.Context, key string) *Snapshot {
	if snap, ok := s.sessions[key]; ok {
		return snap
	}

	snap, err := s.repo.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrSnapshotNotFound) {
			s.logger.Warn().
				Err(err).
				Str("session", key).
				Msg("snapshot unreadable, starting empty")
		}
		snap = NewSnapshot()
	}

	s.sessions[key] = snap
	return snap
}

// touch stamps the snapshot and schedules a debounced save.
// Callers must hold s.mu.
func (s *Service) touch(key string, snap *Snapshot) {
	snap.LastUpdated = time.Now()
	s.saver.Schedule(key, snap.Clone())
}

// buildActivity validates a draft and assigns a fresh ID.
// Callers must hold s.mu (the ID sequence is shared).
func (s *Service) buildActivity(input *models.ActivityCreateRequest) (Activity, error) {
	var errs []models.FieldError

	if strings.TrimSpace(input.Title) == "" {
		errs = append(errs, models.FieldError{Field: "title", Message: "is required"})
	}

	category, err := normalizeCategory(input.Category)
	if err != nil {
		errs = append(errs, models.FieldError{Field: "category", Message: "is not a known category"})
	}

	errs = append(errs, validateCost(input.Cost)...)

	if len(errs) > 0 {
		return Activity{}, &ValidationError{Errors: errs}
	}

	return Activity{
		ID:       s.nextActivityID(),
		Title:    input.Title,
		Time:     input.Time,
		Location: input.Location,
		Notes:    input.Notes,
		Category: category,
		Duration: input.Duration,
		Cost:     input.Cost,
	}, nil
}

// nextActivityID returns a timestamp-based ID, bumped past the previous
// one so two activities created in the same millisecond stay distinct.
func (s *Service) nextActivityID() string {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return "act_" + strconv.FormatInt(id, 10)
}

// normalizeCategory maps an input category string onto the known set.
// Empty defaults to CategoryActivity.
func normalizeCategory(raw string) (Category, error) {
	if raw == "" {
		return CategoryActivity, nil
	}
	c := Category(strings.ToLower(raw))
	if !c.IsValid() {
		return "", fmt.Errorf("unknown category %q", raw)
	}
	return c, nil
}

// validateCost checks that a non-empty cost is a finite, non-negative
// number. ParseFloat accepts "NaN" and "Inf", which would poison the
// derived totals.
func validateCost(cost string) []models.FieldError {
	if cost == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cost, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return []models.FieldError{{Field: "cost", Message: "must be a non-negative number"}}
	}
	return nil
}

// findActivity returns the index of the activity with the given ID, or -1.
func findActivity(activities []Activity, id string) int {
	for i := range activities {
		if activities[i].ID == id {
			return i
		}
	}
	return -1
}
