package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	bookingserrors "github.com/quirino-git/fbs-plan/internal/bookings/errors"
	"github.com/quirino-git/fbs-plan/internal/bookings/repository"
	"github.com/quirino-git/fbs-plan/internal/bookings/validator"
	"github.com/quirino-git/fbs-plan/pkg/config"
	"github.com/quirino-git/fbs-plan/pkg/events"
	"github.com/quirino-git/fbs-plan/pkg/model"
)

// locateWindow pads the fixture interval when scanning the store for the
// fixture-linked booking. Wide enough to find a booking entered against a
// slightly shifted kickoff, narrow enough to keep the scan cheap.
const locateWindow = 24 * time.Hour

// Reconciler maps each fixture to at most one booking in the external
// store, via the tag embedded in the booking note. Book and Undo converge
// to the same state however many times they run; only a store collision
// breaks that, and a collision is a legitimate rejection, not a transient.
type Reconciler interface {
	Locate(ctx context.Context, fixture model.Fixture) (string, error)
	Book(ctx context.Context, fixture model.Fixture, pitchID string) (string, error)
	Undo(ctx context.Context, fixture model.Fixture) error
}

type reconciler struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	teams     []model.Team
	cfg       *config.Config
	locks     sync.Map // fixture UID -> *sync.Mutex
}

func NewReconciler(
	repo repository.BookingRepository,
	bookingValidator *validator.BookingValidator,
	publisher events.Publisher,
	teams []model.Team,
	cfg *config.Config,
) Reconciler {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &reconciler{
		repo:      repo,
		validator: bookingValidator,
		publisher: publisher,
		teams:     teams,
		cfg:       cfg,
	}
}

// Locate scans the bookings around the fixture's interval for a note
// carrying the fixture tag. Returns the empty string when none exists. At
// most one fixture-linked booking should exist per UID; if that invariant
// is ever violated the first match wins, never an error.
func (s *reconciler) Locate(ctx context.Context, fixture model.Fixture) (string, error) {
	bookings, err := s.repo.FindByRange(ctx, fixture.Start.Add(-locateWindow), fixture.End.Add(locateWindow))
	if err != nil {
		return "", fmt.Errorf("failed to scan for fixture booking: %w", err)
	}

	for _, b := range bookings {
		if NoteHasTag(b.Note, fixture.UID) {
			return b.ID, nil
		}
	}
	return "", nil
}

// Book creates the booking for a fixture, or returns the already-linked
// booking unchanged. A store collision propagates as ErrCollision.
func (s *reconciler) Book(ctx context.Context, fixture model.Fixture, pitchID string) (string, error) {
	if strings.Contains(fixture.UID, "]") {
		return "", bookingserrors.ErrInvalidFixtureUID
	}
	if pitchID == "" {
		return "", fmt.Errorf("pitch ID cannot be empty")
	}

	team, err := s.resolveLocalTeam()
	if err != nil {
		return "", err
	}

	mu := s.lockFor(fixture.UID)
	mu.Lock()
	defer mu.Unlock()

	existing, err := s.Locate(ctx, fixture)
	if err != nil {
		return "", err
	}
	if existing != "" {
		s.cfg.Log.Debug("Fixture already booked, returning existing booking",
			"fixture_uid", fixture.UID,
			"booking_id", existing,
		)
		return existing, nil
	}

	booking := &model.Booking{
		PitchID:   pitchID,
		TeamID:    team.ID,
		StartTime: fixture.Start,
		EndTime:   fixture.End,
		Status:    model.StatusApproved,
		Note:      fmt.Sprintf("%s %s", fixture.Summary, FixtureTag(fixture.UID)),
	}

	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "fixture_uid", fixture.UID, "error", err)
		return "", fmt.Errorf("booking validation failed: %w", err)
	}

	id, err := s.repo.Insert(ctx, booking)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrCollision) {
			s.cfg.Log.Warn("Booking rejected by store constraint",
				"fixture_uid", fixture.UID,
				"pitch_id", pitchID,
			)
			return "", err
		}
		return "", fmt.Errorf("failed to create booking: %w", err)
	}

	s.cfg.Log.Info("Booking created",
		"fixture_uid", fixture.UID,
		"booking_id", id,
		"pitch_id", pitchID,
		"team_id", team.ID,
	)
	s.publish(ctx, events.NewBookingEvent(events.TypeBookingCreated, fixture.UID, id, pitchID))

	return id, nil
}

// Undo removes the fixture-linked booking. Absence is a no-op, not an
// error, so repeated calls converge.
func (s *reconciler) Undo(ctx context.Context, fixture model.Fixture) error {
	mu := s.lockFor(fixture.UID)
	mu.Lock()
	defer mu.Unlock()

	id, err := s.Locate(ctx, fixture)
	if err != nil {
		return err
	}
	if id == "" {
		return nil
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		// a concurrent undo already removed it
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.cfg.Log.Info("Booking removed",
		"fixture_uid", fixture.UID,
		"booking_id", id,
	)
	s.publish(ctx, events.NewBookingEvent(events.TypeBookingCancelled, fixture.UID, id, ""))

	return nil
}

// resolveLocalTeam prefers an exact age-category match, then a
// case-insensitive substring match of the configured team name within a
// local team's name.
func (s *reconciler) resolveLocalTeam() (*model.Team, error) {
	if s.cfg.TeamAge != nil {
		for i, t := range s.teams {
			if t.Age != nil && *t.Age == *s.cfg.TeamAge {
				return &s.teams[i], nil
			}
		}
	}

	if name := strings.ToLower(strings.TrimSpace(s.cfg.TeamName)); name != "" {
		for i, t := range s.teams {
			if strings.Contains(strings.ToLower(t.Name), name) {
				return &s.teams[i], nil
			}
		}
	}

	return nil, bookingserrors.ErrNoLocalTeam
}

// lockFor serializes Book/Undo per fixture UID. The store constraint
// remains the authority across processes.
func (s *reconciler) lockFor(uid string) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(uid, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// publish is best-effort; a failed event never fails the booking operation.
func (s *reconciler) publish(ctx context.Context, event events.BookingEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event",
			"event_type", event.Type,
			"fixture_uid", event.FixtureUID,
			"error", err,
		)
	}
}
