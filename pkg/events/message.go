package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	TypeBookingCreated   = "booking.created"
	TypeBookingCancelled = "booking.cancelled"
)

// BookingEvent is published whenever the reconciler creates or removes a
// fixture-linked booking. Downstream notification delivery consumes these;
// delivery itself is not this service's concern.
type BookingEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	FixtureUID string    `json:"fixture_uid"`
	BookingID  string    `json:"booking_id"`
	PitchID    string    `json:"pitch_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewBookingEvent(eventType, fixtureUID, bookingID, pitchID string) BookingEvent {
	return BookingEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		FixtureUID: fixtureUID,
		BookingID:  bookingID,
		PitchID:    pitchID,
		OccurredAt: time.Now().UTC(),
	}
}

func (e BookingEvent) Marshal() ([]byte, error) {
	return json.Marshal(e)
}
