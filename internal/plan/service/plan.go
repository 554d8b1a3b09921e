package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/quirino-git/fbs-plan/internal/availability"
	"github.com/quirino-git/fbs-plan/internal/bookings/repository"
	bookingsservice "github.com/quirino-git/fbs-plan/internal/bookings/service"
	"github.com/quirino-git/fbs-plan/internal/classify"
	"github.com/quirino-git/fbs-plan/internal/feed"
	"github.com/quirino-git/fbs-plan/pkg/config"
	"github.com/quirino-git/fbs-plan/pkg/model"
)

var ErrFixtureNotFound = errors.New("fixture not found in feed")

// FixturePlan is one home fixture annotated with the pitches still free in
// its window and the booking already linked to it, if any.
type FixturePlan struct {
	Fixture          model.Fixture `json:"fixture"`
	Candidates       []model.Pitch `json:"candidates"`
	SuggestedPitchID string        `json:"suggested_pitch_id,omitempty"`
	BookingID        string        `json:"booking_id,omitempty"`
}

// Plan is the full matchday report for the configured team.
type Plan struct {
	Fixtures    []FixturePlan `json:"fixtures"`
	RefreshedAt time.Time     `json:"refreshed_at"`
	// Stale marks a plan served from cache after a failed feed load.
	Stale bool `json:"stale,omitempty"`
}

// PlanService drives the pipeline: fetch, parse, classify, filter to home
// fixtures, compute availability, attach linked bookings. Each stage is a
// pure function; the only I/O is the feed fetch and the store queries.
type PlanService interface {
	BuildPlan(ctx context.Context) (*Plan, error)
	CachedPlan() *Plan
	BookFixture(ctx context.Context, uid, pitchID string) (string, error)
	UndoFixture(ctx context.Context, uid string) error
}

type planService struct {
	cfg        *config.Config
	fetcher    feed.Fetcher
	classifier *classify.Classifier
	repo       repository.BookingRepository
	reconciler bookingsservice.Reconciler
	pitches    []model.Pitch

	mu     sync.RWMutex
	cached *Plan
}

func NewPlanService(
	cfg *config.Config,
	fetcher feed.Fetcher,
	classifier *classify.Classifier,
	repo repository.BookingRepository,
	reconciler bookingsservice.Reconciler,
	pitches []model.Pitch,
) PlanService {
	return &planService{
		cfg:        cfg,
		fetcher:    fetcher,
		classifier: classifier,
		repo:       repo,
		reconciler: reconciler,
		pitches:    pitches,
	}
}

// BuildPlan runs one full load cycle. A feed failure is a hard failure for
// the cycle and leaves the cached plan untouched; the cache is only swapped
// once the whole plan has been computed.
func (s *planService) BuildPlan(ctx context.Context) (*Plan, error) {
	fixtures, err := s.loadHomeFixtures(ctx)
	if err != nil {
		return nil, err
	}

	plans := make([]FixturePlan, 0, len(fixtures))
	for _, f := range fixtures {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fp, err := s.planFixture(ctx, f)
		if err != nil {
			return nil, err
		}
		plans = append(plans, fp)
	}

	plan := &Plan{
		Fixtures:    plans,
		RefreshedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.cached = plan
	s.mu.Unlock()

	s.cfg.Log.Info("Plan rebuilt",
		"fixtures", len(plans),
		"club", s.cfg.ClubName,
		"team", s.cfg.TeamName,
	)
	return plan, nil
}

// planFixture computes one fixture's row. Fixtures are independent of each
// other; only the store is shared.
func (s *planService) planFixture(ctx context.Context, f model.Fixture) (FixturePlan, error) {
	bookings, err := s.repo.FindByRange(ctx, f.Start, f.End)
	if err != nil {
		return FixturePlan{}, fmt.Errorf("failed to query bookings for fixture %s: %w", f.UID, err)
	}

	candidates := availability.FreePitches(f.Start, f.End, s.cfg.TeamAge, s.pitches, bookings)

	fp := FixturePlan{
		Fixture:    f,
		Candidates: candidates,
	}
	if len(candidates) > 0 {
		fp.SuggestedPitchID = candidates[0].ID
	}

	bookingID, err := s.reconciler.Locate(ctx, f)
	if err != nil {
		return FixturePlan{}, err
	}
	fp.BookingID = bookingID

	return fp, nil
}

func (s *planService) CachedPlan() *Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cached
}

func (s *planService) BookFixture(ctx context.Context, uid, pitchID string) (string, error) {
	fixture, err := s.findFixture(ctx, uid)
	if err != nil {
		return "", err
	}
	return s.reconciler.Book(ctx, fixture, pitchID)
}

func (s *planService) UndoFixture(ctx context.Context, uid string) error {
	fixture, err := s.findFixture(ctx, uid)
	if err != nil {
		return err
	}
	return s.reconciler.Undo(ctx, fixture)
}

// findFixture resolves a fixture UID against the cached plan first, then a
// fresh feed load. Booking actions always work on a fixture that the feed
// actually contains.
func (s *planService) findFixture(ctx context.Context, uid string) (model.Fixture, error) {
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()

	if cached != nil {
		for _, fp := range cached.Fixtures {
			if fp.Fixture.UID == uid {
				return fp.Fixture, nil
			}
		}
	}

	fixtures, err := s.loadHomeFixtures(ctx)
	if err != nil {
		return model.Fixture{}, err
	}
	for _, f := range fixtures {
		if f.UID == uid {
			return f, nil
		}
	}
	return model.Fixture{}, fmt.Errorf("%w: %s", ErrFixtureNotFound, uid)
}

// loadHomeFixtures is the pure front half of the pipeline: fetch, parse,
// classify, filter. Unknown classifications pass the filter when configured
// to; falsely hiding a real home game is worse than an extra row.
func (s *planService) loadHomeFixtures(ctx context.Context) ([]model.Fixture, error) {
	text, err := s.fetcher.Fetch(ctx, s.cfg.FeedURL)
	if err != nil {
		return nil, fmt.Errorf("feed load failed: %w", err)
	}

	parsed := feed.Parse(text)
	classified := s.classifier.ClassifyAll(parsed)

	var home []model.Fixture
	for _, f := range classified {
		switch f.Side {
		case model.SideHome:
			home = append(home, f)
		case model.SideUnknown:
			if s.cfg.IncludeUnknownFixtures {
				home = append(home, f)
			}
		}
	}

	s.cfg.Log.Debug("Feed loaded",
		"parsed", len(parsed),
		"home", len(home),
	)
	return home, nil
}
