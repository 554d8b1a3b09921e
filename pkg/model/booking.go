package model

import "time"

const (
	StatusRequested = "requested"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
)

// Booking reserves a pitch for a time interval. The interval is half-open:
// [StartTime, EndTime). A booking created for a fixture carries the fixture
// tag inside Note; that string is the only link between the two.
type Booking struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty"`
	PitchID   string    `json:"pitch_id" bson:"pitch_id" validate:"required"`
	TeamID    string    `json:"team_id,omitempty" bson:"team_id,omitempty"`
	StartTime time.Time `json:"start_time" bson:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" bson:"end_time" validate:"required,gtfield=StartTime"`
	Status    string    `json:"status" bson:"status" validate:"required,oneof=requested approved rejected"`
	Note      string    `json:"note" bson:"note" validate:"max=500"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Blocking reports whether the booking counts against availability.
// Rejected bookings never block.
func (b *Booking) Blocking() bool {
	return b.Status == StatusRequested || b.Status == StatusApproved
}
