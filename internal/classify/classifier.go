package classify

import (
	"regexp"
	"strings"

	"github.com/quirino-git/fbs-plan/pkg/logger"
	"github.com/quirino-git/fbs-plan/pkg/model"
)

// a single hyphen or en-dash surrounded by whitespace separates the sides
var sideSeparator = regexp.MustCompile(`\s+[-–]\s+`)

// Classifier determines each fixture's home/away side from the configured
// club and team identity.
type Classifier struct {
	tokens []string
	log    *logger.Logger
}

func New(club, team string, log *logger.Logger) *Classifier {
	return &Classifier{
		tokens: MatchTokens(club, team),
		log:    log,
	}
}

// Tokens returns the derived match-token set.
func (c *Classifier) Tokens() []string {
	return c.tokens
}

// ClassifyAll returns a new slice with Side populated on every fixture.
// Input fixtures are not mutated.
func (c *Classifier) ClassifyAll(fixtures []model.Fixture) []model.Fixture {
	out := make([]model.Fixture, len(fixtures))
	for i, f := range fixtures {
		f.Side = c.Side(f)
		out[i] = f
	}
	return out
}

// Side classifies a single fixture. Left side matching alone means home,
// right side alone means away. When both sides match, the result is home:
// a double match usually means both clubs share a token (a common city
// name, or a subsidiary-team derby), and listing convention still places
// the home side first. This directional bias was tuned against real feeds;
// do not invert it. When no side separator exists the venue text decides
// (match means home), and anything else is unknown rather than a guess.
func (c *Classifier) Side(f model.Fixture) model.Side {
	if len(c.tokens) == 0 {
		return model.SideUnknown
	}

	left, right, ok := splitSides(f.Summary)
	if !ok {
		if f.Location != "" && containsAny(Normalize(f.Location), c.tokens) {
			return model.SideHome
		}
		return model.SideUnknown
	}

	leftMatch := containsAny(Normalize(left), c.tokens)
	rightMatch := containsAny(Normalize(right), c.tokens)

	switch {
	case leftMatch && !rightMatch:
		return model.SideHome
	case rightMatch && !leftMatch:
		return model.SideAway
	case leftMatch && rightMatch:
		if c.log != nil {
			c.log.Debug("Both fixture sides matched, resolving to home",
				"uid", f.UID,
				"summary", f.Summary,
			)
		}
		return model.SideHome
	default:
		return model.SideUnknown
	}
}

// splitSides takes the team-pair segment (the text before the first comma,
// or the whole summary) and splits it once on the side separator.
func splitSides(summary string) (left, right string, ok bool) {
	pair := summary
	if comma := strings.Index(pair, ","); comma >= 0 {
		pair = pair[:comma]
	}

	loc := sideSeparator.FindStringIndex(pair)
	if loc == nil {
		return "", "", false
	}
	return pair[:loc[0]], pair[loc[1]:], true
}

func containsAny(normalized string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(normalized, token) {
			return true
		}
	}
	return false
}
