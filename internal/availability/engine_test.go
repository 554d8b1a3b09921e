package availability

import (
	"testing"
	"time"

	"github.com/quirino-git/fbs-plan/pkg/model"
)

func ts(hour, min int) time.Time {
	return time.Date(2026, 2, 22, hour, min, 0, 0, time.UTC)
}

func intp(v int) *int { return &v }

func TestOverlaps_HalfOpenBoundaries(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{
			name: "booking ending exactly at fixture start does not overlap",
			s1:   ts(12, 0), e1: ts(14, 0),
			s2: ts(14, 0), e2: ts(16, 0),
			want: false,
		},
		{
			name: "booking starting exactly at fixture end does not overlap",
			s1:   ts(16, 0), e1: ts(18, 0),
			s2: ts(14, 0), e2: ts(16, 0),
			want: false,
		},
		{
			name: "one second of intersection overlaps",
			s1:   ts(13, 0), e1: ts(14, 0).Add(time.Second),
			s2: ts(14, 0), e2: ts(16, 0),
			want: true,
		},
		{
			name: "containment overlaps",
			s1:   ts(14, 30), e1: ts(15, 0),
			s2: ts(14, 0), e2: ts(16, 0),
			want: true,
		},
		{
			name: "identical intervals overlap",
			s1:   ts(14, 0), e1: ts(16, 0),
			s2: ts(14, 0), e2: ts(16, 0),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.s1, tt.e1, tt.s2, tt.e2); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEligible(t *testing.T) {
	mitte := model.Pitch{ID: "p1", Name: "Platz Mitte", Surface: model.SurfaceFull}
	rechts := model.Pitch{ID: "p2", Name: "Platz Rechts", Surface: model.SurfaceFull}
	links := model.Pitch{ID: "p3", Name: "Platz Links", Surface: model.SurfaceFull}
	klein := model.Pitch{ID: "p4", Name: "Kleinfeld Mitte", Surface: model.SurfaceCompact}

	tests := []struct {
		name  string
		age   *int
		pitch model.Pitch
		want  bool
	}{
		{name: "nil age allows everything", age: nil, pitch: klein, want: true},
		{name: "young age allows everything", age: intp(12), pitch: links, want: true},
		{name: "14 and up allows full-size center zone", age: intp(14), pitch: mitte, want: true},
		{name: "14 and up allows full-size right zone", age: intp(16), pitch: rechts, want: true},
		{name: "14 and up rejects other full-size zones", age: intp(16), pitch: links, want: false},
		{name: "14 and up rejects compact even with zone name", age: intp(16), pitch: klein, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Eligible(tt.age, tt.pitch); got != tt.want {
				t.Errorf("Eligible(%v, %s) = %v, want %v", tt.age, tt.pitch.Name, got, tt.want)
			}
		})
	}
}

func TestFreePitches(t *testing.T) {
	pitches := []model.Pitch{
		{ID: "p1", Name: "Platz Mitte", Surface: model.SurfaceFull},
		{ID: "p2", Name: "Platz Rechts", Surface: model.SurfaceFull},
		{ID: "p3", Name: "Kleinfeld", Surface: model.SurfaceCompact},
	}

	t.Run("no bookings leaves all pitches free in inventory order", func(t *testing.T) {
		free := FreePitches(ts(14, 0), ts(16, 0), nil, pitches, nil)
		if len(free) != 3 {
			t.Fatalf("expected 3 free pitches, got %d", len(free))
		}
		for i, want := range []string{"p1", "p2", "p3"} {
			if free[i].ID != want {
				t.Errorf("position %d: expected %s, got %s", i, want, free[i].ID)
			}
		}
	})

	t.Run("approved overlapping booking blocks its pitch only", func(t *testing.T) {
		bookings := []*model.Booking{
			{ID: "b1", PitchID: "p1", StartTime: ts(13, 0), EndTime: ts(15, 0), Status: model.StatusApproved},
		}
		free := FreePitches(ts(14, 0), ts(16, 0), nil, pitches, bookings)
		if len(free) != 2 || free[0].ID != "p2" || free[1].ID != "p3" {
			t.Errorf("expected [p2 p3], got %v", ids(free))
		}
	})

	t.Run("requested booking blocks, rejected does not", func(t *testing.T) {
		bookings := []*model.Booking{
			{ID: "b1", PitchID: "p1", StartTime: ts(14, 0), EndTime: ts(16, 0), Status: model.StatusRequested},
			{ID: "b2", PitchID: "p2", StartTime: ts(14, 0), EndTime: ts(16, 0), Status: model.StatusRejected},
		}
		free := FreePitches(ts(14, 0), ts(16, 0), nil, pitches, bookings)
		if len(free) != 2 || free[0].ID != "p2" || free[1].ID != "p3" {
			t.Errorf("expected [p2 p3], got %v", ids(free))
		}
	})

	t.Run("booking ending at fixture start does not block", func(t *testing.T) {
		bookings := []*model.Booking{
			{ID: "b1", PitchID: "p1", StartTime: ts(12, 0), EndTime: ts(14, 0), Status: model.StatusApproved},
		}
		free := FreePitches(ts(14, 0), ts(16, 0), nil, pitches, bookings)
		if len(free) != 3 {
			t.Errorf("expected all pitches free, got %v", ids(free))
		}
	})

	t.Run("age sixteen with only center pitch booked yields empty result", func(t *testing.T) {
		inventory := []model.Pitch{
			{ID: "p1", Name: "Platz Mitte", Surface: model.SurfaceFull},
		}
		bookings := []*model.Booking{
			{ID: "b1", PitchID: "p1", StartTime: ts(13, 0), EndTime: ts(15, 0), Status: model.StatusApproved},
		}
		free := FreePitches(ts(14, 0), ts(16, 0), intp(16), inventory, bookings)
		if len(free) != 0 {
			t.Errorf("expected no candidates, got %v", ids(free))
		}
	})
}

func ids(pitches []model.Pitch) []string {
	out := make([]string, len(pitches))
	for i, p := range pitches {
		out[i] = p.ID
	}
	return out
}
