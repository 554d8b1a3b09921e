package availability

import (
	"strings"
	"time"

	"github.com/quirino-git/fbs-plan/pkg/model"
)

// From this age category on, teams play only on specific full-size zones.
const fullSizeAge = 14

// zone designators in the pitch display name that older age groups may use
var fullSizeZones = []string{"mitte", "rechts"}

// Overlaps reports whether [s1,e1) and [s2,e2) intersect. Half-open
// semantics: an interval starting exactly when another ends does not
// overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// Eligible applies the club's age policy. Age 14 and up restricts play to
// full-size pitches whose name carries a center or right zone designator;
// younger and open teams may use every pitch.
func Eligible(age *int, pitch model.Pitch) bool {
	if age == nil || *age < fullSizeAge {
		return true
	}
	if pitch.Surface != model.SurfaceFull {
		return false
	}

	name := strings.ToLower(pitch.Name)
	for _, zone := range fullSizeZones {
		if strings.Contains(name, zone) {
			return true
		}
	}
	return false
}

// FreePitches returns the pitches with no occupancy-blocking booking
// overlapping [start,end), in inventory order. The first element is the
// default suggestion. An empty result is a valid answer, not an error.
func FreePitches(start, end time.Time, age *int, pitches []model.Pitch, bookings []*model.Booking) []model.Pitch {
	var free []model.Pitch

	for _, pitch := range pitches {
		if !Eligible(age, pitch) {
			continue
		}

		blocked := false
		for _, b := range bookings {
			if b.PitchID != pitch.ID || !b.Blocking() {
				continue
			}
			if Overlaps(b.StartTime, b.EndTime, start, end) {
				blocked = true
				break
			}
		}

		if !blocked {
			free = append(free, pitch)
		}
	}

	return free
}
