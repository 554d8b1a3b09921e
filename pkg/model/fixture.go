package model

import "time"

// Side is the computed home/away classification of a fixture.
type Side string

const (
	SideHome    Side = "home"
	SideAway    Side = "away"
	SideUnknown Side = "unknown"
)

// Fixture is a single externally scheduled match taken from the league
// calendar feed. It is rebuilt on every feed load and never persisted;
// only Side is mutated after parsing, once, by the classifier.
type Fixture struct {
	UID      string    `json:"uid"`
	Summary  string    `json:"summary"`
	Location string    `json:"location,omitempty"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Side     Side      `json:"side"`
}
