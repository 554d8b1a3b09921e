package service

import "strings"

// tagPrefix is the wire contract between a fixture and its booking: the
// booking's note contains the literal substring "[BFV_UID:<fixture-uid>]".
// Nothing else links the two records.
const tagPrefix = "[BFV_UID:"

// FixtureTag builds the tag embedded into a booking note.
func FixtureTag(uid string) string {
	return tagPrefix + uid + "]"
}

// NoteHasTag reports whether a booking note carries the tag for the given
// fixture UID. Matching is case-insensitive.
func NoteHasTag(note, uid string) bool {
	return strings.Contains(strings.ToLower(note), strings.ToLower(FixtureTag(uid)))
}
