package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrCollision is the store rejecting an insert over its overlap or
	// uniqueness constraint. It is a legitimate rejection, never retried.
	ErrCollision = errors.New("booking conflicts with an existing reservation")

	ErrNoLocalTeam = errors.New("no local team could be resolved for the fixture")

	// Fixture UIDs embed into the booking note tag; a closing bracket
	// would break the tag's round-trip.
	ErrInvalidFixtureUID = errors.New("fixture UID must not contain ']'")
)
