package classify

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// the four German forms that unicode decomposition alone does not fold
var umlautReplacer = strings.NewReplacer("ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss")

var agePattern = regexp.MustCompile(`^u\d{1,2}$`)

// stopWords are club-type abbreviations and generic suffixes that occur in
// nearly every club name. Keeping them as match tokens would make unrelated
// clubs match each other.
var stopWords = map[string]bool{
	"tsv":        true,
	"fsv":        true,
	"ssv":        true,
	"asv":        true,
	"esv":        true,
	"vfb":        true,
	"vfl":        true,
	"vfr":        true,
	"spvgg":      true,
	"djk":        true,
	"tus":        true,
	"jfg":        true,
	"sgm":        true,
	"fsg":        true,
	"verein":     true,
	"team":       true,
	"herren":     true,
	"damen":      true,
	"junioren":   true,
	"mannschaft": true,
	"fussball":   true,
}

// Normalize lowercases, folds German umlauts and ß to their ASCII digraphs,
// strips combining marks from any remaining accented characters, and
// collapses non-alphanumeric runs to single spaces.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = umlautReplacer.Replace(s)

	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}

	var b strings.Builder
	pending := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pending = false
			b.WriteRune(r)
		} else {
			pending = true
		}
	}
	return b.String()
}

// MatchTokens derives the token set used for containment testing from the
// club and team names. Tokens shorter than 3 characters, pure age-category
// patterns like "u14", and stop words are excluded: they produce false
// positives across unrelated clubs.
func MatchTokens(club, team string) []string {
	seen := make(map[string]bool)
	var tokens []string

	for _, word := range strings.Fields(Normalize(club + " " + team)) {
		if len(word) < 3 || agePattern.MatchString(word) || stopWords[word] || seen[word] {
			continue
		}
		seen[word] = true
		tokens = append(tokens, word)
	}
	return tokens
}
