package service

import "testing"

func TestFixtureTagRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		note string
		uid  string
		want bool
	}{
		{
			name: "tag written by book is found",
			note: "FC Stern - SV Gegner, Kreisliga " + FixtureTag("abc123"),
			uid:  "abc123",
			want: true,
		},
		{
			name: "matching is case-insensitive",
			note: "[bfv_uid:ABC123]",
			uid:  "abc123",
			want: true,
		},
		{
			name: "different uid does not match",
			note: FixtureTag("abc123"),
			uid:  "abc124",
			want: false,
		},
		{
			name: "uid prefix of a longer uid does not match",
			note: FixtureTag("abc1234"),
			uid:  "abc123",
			want: false,
		},
		{
			name: "plain uid in text without tag does not match",
			note: "booking for abc123",
			uid:  "abc123",
			want: false,
		},
		{
			name: "empty note",
			note: "",
			uid:  "abc123",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NoteHasTag(tt.note, tt.uid); got != tt.want {
				t.Errorf("NoteHasTag(%q, %q) = %v, want %v", tt.note, tt.uid, got, tt.want)
			}
		})
	}
}
