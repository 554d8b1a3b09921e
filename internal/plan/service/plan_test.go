package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quirino-git/fbs-plan/internal/classify"
	"github.com/quirino-git/fbs-plan/pkg/config"
	"github.com/quirino-git/fbs-plan/pkg/logger"
	"github.com/quirino-git/fbs-plan/pkg/model"
)

const testFeed = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:abc123\r\n" +
	"SUMMARY:FC Stern - SV Gegner, Kreisliga\r\n" +
	"DTSTART:20260222T140000Z\r\n" +
	"DTEND:20260222T160000Z\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:def456\r\n" +
	"SUMMARY:SV Gegner - FC Stern, Kreisliga\r\n" +
	"DTSTART:20260301T140000Z\r\n" +
	"DTEND:20260301T160000Z\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

type fakeFetcher struct {
	text string
	err  error
	hits int
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.hits++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type mockBookingRepository struct {
	findByRangeFunc func(ctx context.Context, start, end time.Time) ([]*model.Booking, error)
}

func (m *mockBookingRepository) FindByRange(ctx context.Context, start, end time.Time) ([]*model.Booking, error) {
	if m.findByRangeFunc != nil {
		return m.findByRangeFunc(ctx, start, end)
	}
	return nil, nil
}

func (m *mockBookingRepository) Insert(ctx context.Context, booking *model.Booking) (string, error) {
	return "mock-id", nil
}

func (m *mockBookingRepository) Delete(ctx context.Context, id string) error {
	return nil
}

type mockReconciler struct {
	locateFunc func(ctx context.Context, fixture model.Fixture) (string, error)
	bookFunc   func(ctx context.Context, fixture model.Fixture, pitchID string) (string, error)
	undoFunc   func(ctx context.Context, fixture model.Fixture) error
}

func (m *mockReconciler) Locate(ctx context.Context, fixture model.Fixture) (string, error) {
	if m.locateFunc != nil {
		return m.locateFunc(ctx, fixture)
	}
	return "", nil
}

func (m *mockReconciler) Book(ctx context.Context, fixture model.Fixture, pitchID string) (string, error) {
	if m.bookFunc != nil {
		return m.bookFunc(ctx, fixture, pitchID)
	}
	return "mock-booking", nil
}

func (m *mockReconciler) Undo(ctx context.Context, fixture model.Fixture) error {
	if m.undoFunc != nil {
		return m.undoFunc(ctx, fixture)
	}
	return nil
}

func intp(v int) *int { return &v }

func testConfig() *config.Config {
	return &config.Config{
		ClubName:               "FC Stern",
		TeamName:               "Herren 1",
		FeedURL:                "https://feed.example/calendar.ics",
		IncludeUnknownFixtures: true,
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
	}
}

func testPitches() []model.Pitch {
	return []model.Pitch{
		{ID: "p1", Name: "Platz Mitte", Surface: model.SurfaceFull},
		{ID: "p2", Name: "Platz Rechts", Surface: model.SurfaceFull},
		{ID: "p3", Name: "Kleinfeld", Surface: model.SurfaceCompact},
	}
}

func newTestPlanService(cfg *config.Config, fetcher *fakeFetcher, repo *mockBookingRepository, rec *mockReconciler) PlanService {
	classifier := classify.New(cfg.ClubName, cfg.TeamName, cfg.Log)
	return NewPlanService(cfg, fetcher, classifier, repo, rec, testPitches())
}

func TestBuildPlan_HomeFixturesOnly(t *testing.T) {
	cfg := testConfig()
	fetcher := &fakeFetcher{text: testFeed}
	svc := newTestPlanService(cfg, fetcher, &mockBookingRepository{}, &mockReconciler{})

	plan, err := svc.BuildPlan(context.Background())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if len(plan.Fixtures) != 1 {
		t.Fatalf("expected 1 home fixture, got %d", len(plan.Fixtures))
	}
	fp := plan.Fixtures[0]
	if fp.Fixture.UID != "abc123" {
		t.Errorf("expected home fixture abc123, got %q", fp.Fixture.UID)
	}
	if fp.Fixture.Side != model.SideHome {
		t.Errorf("expected side home, got %q", fp.Fixture.Side)
	}
	if len(fp.Candidates) != 3 {
		t.Errorf("expected all 3 pitches free, got %d", len(fp.Candidates))
	}
	if fp.SuggestedPitchID != "p1" {
		t.Errorf("expected first free pitch p1 suggested, got %q", fp.SuggestedPitchID)
	}
	if fp.BookingID != "" {
		t.Errorf("expected no linked booking, got %q", fp.BookingID)
	}
	if plan.Stale {
		t.Error("fresh plan must not be stale")
	}
	if plan.RefreshedAt.IsZero() {
		t.Error("RefreshedAt not set")
	}
}

func TestBuildPlan_BlockedPitchExcluded(t *testing.T) {
	cfg := testConfig()
	cfg.TeamAge = intp(16)
	fetcher := &fakeFetcher{text: testFeed}
	repo := &mockBookingRepository{
		findByRangeFunc: func(ctx context.Context, start, end time.Time) ([]*model.Booking, error) {
			return []*model.Booking{
				{
					ID:        "b1",
					PitchID:   "p1",
					StartTime: time.Date(2026, 2, 22, 13, 0, 0, 0, time.UTC),
					EndTime:   time.Date(2026, 2, 22, 15, 0, 0, 0, time.UTC),
					Status:    model.StatusApproved,
				},
			}, nil
		},
	}
	svc := newTestPlanService(cfg, fetcher, repo, &mockReconciler{})

	plan, err := svc.BuildPlan(context.Background())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	fp := plan.Fixtures[0]
	// age 16 restricts to full-size centre/right zones; p1 is booked
	if len(fp.Candidates) != 1 || fp.Candidates[0].ID != "p2" {
		t.Fatalf("expected only p2 as candidate, got %v", fp.Candidates)
	}
	if fp.SuggestedPitchID != "p2" {
		t.Errorf("expected p2 suggested, got %q", fp.SuggestedPitchID)
	}
}

func TestBuildPlan_LinkedBookingAttached(t *testing.T) {
	cfg := testConfig()
	fetcher := &fakeFetcher{text: testFeed}
	rec := &mockReconciler{
		locateFunc: func(ctx context.Context, fixture model.Fixture) (string, error) {
			if fixture.UID == "abc123" {
				return "bk-7", nil
			}
			return "", nil
		},
	}
	svc := newTestPlanService(cfg, fetcher, &mockBookingRepository{}, rec)

	plan, err := svc.BuildPlan(context.Background())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if plan.Fixtures[0].BookingID != "bk-7" {
		t.Errorf("expected linked booking bk-7, got %q", plan.Fixtures[0].BookingID)
	}
}

func TestBuildPlan_UnknownSideIncluded(t *testing.T) {
	feedText := "BEGIN:VEVENT\r\n" +
		"UID:mystery-1\r\n" +
		"SUMMARY:Pokalspiel Runde 2\r\n" +
		"DTSTART:20260315T100000Z\r\n" +
		"DTEND:20260315T120000Z\r\n" +
		"END:VEVENT\r\n"

	t.Run("included by default", func(t *testing.T) {
		cfg := testConfig()
		svc := newTestPlanService(cfg, &fakeFetcher{text: feedText}, &mockBookingRepository{}, &mockReconciler{})

		plan, err := svc.BuildPlan(context.Background())
		if err != nil {
			t.Fatalf("build failed: %v", err)
		}
		if len(plan.Fixtures) != 1 {
			t.Fatalf("expected unknown fixture to pass the filter, got %d fixtures", len(plan.Fixtures))
		}
		if plan.Fixtures[0].Fixture.Side != model.SideUnknown {
			t.Errorf("expected side unknown, got %q", plan.Fixtures[0].Fixture.Side)
		}
	})

	t.Run("excluded when configured", func(t *testing.T) {
		cfg := testConfig()
		cfg.IncludeUnknownFixtures = false
		svc := newTestPlanService(cfg, &fakeFetcher{text: feedText}, &mockBookingRepository{}, &mockReconciler{})

		plan, err := svc.BuildPlan(context.Background())
		if err != nil {
			t.Fatalf("build failed: %v", err)
		}
		if len(plan.Fixtures) != 0 {
			t.Fatalf("expected unknown fixture filtered out, got %d fixtures", len(plan.Fixtures))
		}
	})
}

func TestBuildPlan_FeedFailureKeepsCache(t *testing.T) {
	cfg := testConfig()
	fetcher := &fakeFetcher{text: testFeed}
	svc := newTestPlanService(cfg, fetcher, &mockBookingRepository{}, &mockReconciler{})

	if _, err := svc.BuildPlan(context.Background()); err != nil {
		t.Fatalf("initial build failed: %v", err)
	}
	cached := svc.CachedPlan()
	if cached == nil {
		t.Fatal("expected cached plan after build")
	}

	fetcher.err = errors.New("feed unreachable")
	if _, err := svc.BuildPlan(context.Background()); err == nil {
		t.Fatal("expected build to fail when feed is down")
	}

	if svc.CachedPlan() != cached {
		t.Error("failed build must not touch the cached plan")
	}
}

func TestBookFixture_ResolvesFromCache(t *testing.T) {
	cfg := testConfig()
	fetcher := &fakeFetcher{text: testFeed}
	var booked model.Fixture
	rec := &mockReconciler{
		bookFunc: func(ctx context.Context, fixture model.Fixture, pitchID string) (string, error) {
			booked = fixture
			return "bk-1", nil
		},
	}
	svc := newTestPlanService(cfg, fetcher, &mockBookingRepository{}, rec)

	if _, err := svc.BuildPlan(context.Background()); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	fetches := fetcher.hits

	id, err := svc.BookFixture(context.Background(), "abc123", "p1")
	if err != nil {
		t.Fatalf("book failed: %v", err)
	}
	if id != "bk-1" {
		t.Errorf("unexpected booking id %q", id)
	}
	if booked.UID != "abc123" {
		t.Errorf("reconciler received fixture %q", booked.UID)
	}
	if fetcher.hits != fetches {
		t.Error("cached fixture should not trigger a feed load")
	}
}

func TestBookFixture_UnknownUID(t *testing.T) {
	cfg := testConfig()
	svc := newTestPlanService(cfg, &fakeFetcher{text: testFeed}, &mockBookingRepository{}, &mockReconciler{})

	_, err := svc.BookFixture(context.Background(), "no-such-uid", "p1")
	if !errors.Is(err, ErrFixtureNotFound) {
		t.Errorf("expected ErrFixtureNotFound, got %v", err)
	}
}

func TestUndoFixture_ResolvesWithoutCache(t *testing.T) {
	cfg := testConfig()
	fetcher := &fakeFetcher{text: testFeed}
	var undone model.Fixture
	rec := &mockReconciler{
		undoFunc: func(ctx context.Context, fixture model.Fixture) error {
			undone = fixture
			return nil
		},
	}
	svc := newTestPlanService(cfg, fetcher, &mockBookingRepository{}, rec)

	// no BuildPlan first: the UID must resolve through a fresh feed load
	if err := svc.UndoFixture(context.Background(), "abc123"); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if undone.UID != "abc123" {
		t.Errorf("reconciler received fixture %q", undone.UID)
	}
	if fetcher.hits == 0 {
		t.Error("expected a feed load without a cached plan")
	}
}

func TestBuildPlan_ContextCancelled(t *testing.T) {
	cfg := testConfig()
	svc := newTestPlanService(cfg, &fakeFetcher{text: testFeed}, &mockBookingRepository{}, &mockReconciler{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.BuildPlan(ctx); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
	if svc.CachedPlan() != nil {
		t.Error("cancelled build must not populate the cache")
	}
}
