package classify

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercase",
			input: "FC Stern",
			want:  "fc stern",
		},
		{
			name:  "umlauts fold to digraphs",
			input: "Grün-Weiß München",
			want:  "gruen weiss muenchen",
		},
		{
			name:  "accents stripped",
			input: "Café Olé",
			want:  "cafe ole",
		},
		{
			name:  "punctuation runs collapse to single spaces",
			input: "1. FC  Nord!!e.V.",
			want:  "1 fc nord e v",
		},
		{
			name:  "leading and trailing separators trimmed",
			input: "  (FC Stern)  ",
			want:  "fc stern",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMatchTokens(t *testing.T) {
	tests := []struct {
		name string
		club string
		team string
		want []string
	}{
		{
			name: "club abbreviation and short tokens excluded",
			club: "FC Stern",
			team: "Herren 1",
			want: []string{"stern"},
		},
		{
			name: "age category pattern excluded",
			club: "SV Gegner",
			team: "U14",
			want: []string{"gegner"},
		},
		{
			name: "stop words only yields empty set",
			club: "TSV e.V.",
			team: "Herren",
			want: nil,
		},
		{
			name: "umlaut folding applied before tokenization",
			club: "SpVgg Grün-Weiß",
			team: "",
			want: []string{"gruen", "weiss"},
		},
		{
			name: "duplicates removed",
			club: "FC Stern",
			team: "Stern Juniors",
			want: []string{"stern", "juniors"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchTokens(tt.club, tt.team)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MatchTokens(%q, %q) = %v, want %v", tt.club, tt.team, got, tt.want)
			}
		})
	}
}
