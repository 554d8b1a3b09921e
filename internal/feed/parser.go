package feed

import (
	"strings"
	"time"

	"github.com/quirino-git/fbs-plan/pkg/model"
)

const (
	beginEvent = "BEGIN:VEVENT"
	endEvent   = "END:VEVENT"

	stampLayout = "20060102T150405"
)

// Parse turns raw calendar feed text into fixtures, in feed order. A record
// is emitted only when UID, SUMMARY, DTSTART and DTEND were all present and
// parseable; anything else is dropped without error, since partial records
// are a normal property of third-party feeds. Unknown fields are ignored.
func Parse(text string) []model.Fixture {
	var fixtures []model.Fixture
	var cur *eventRecord

	for _, line := range unfold(text) {
		switch strings.TrimSpace(line) {
		case beginEvent:
			// a BEGIN inside an open record discards it and starts over
			cur = &eventRecord{}
		case endEvent:
			if cur != nil {
				if f, ok := cur.fixture(); ok {
					fixtures = append(fixtures, f)
				}
				cur = nil
			}
		default:
			if cur != nil {
				cur.apply(line)
			}
		}
	}

	return fixtures
}

// unfold joins folded continuation lines before record parsing. A line
// starting with a space or tab continues the previous logical line; a single
// field can arrive split across several wire lines.
func unfold(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var out []string
	for _, line := range raw {
		if len(line) > 0 && (line[0] == ' ' || line[0] == '\t') && len(out) > 0 {
			out[len(out)-1] += strings.TrimLeft(line, " \t")
			continue
		}
		out = append(out, line)
	}
	return out
}

type eventRecord struct {
	uid      string
	summary  string
	location string
	start    time.Time
	end      time.Time
	hasStart bool
	hasEnd   bool
}

func (r *eventRecord) apply(line string) {
	name, value, ok := splitProperty(line)
	if !ok {
		return
	}
	switch name {
	case "UID":
		r.uid = value
	case "SUMMARY":
		r.summary = value
	case "LOCATION":
		r.location = value
	case "DTSTART":
		r.start, r.hasStart = parseStamp(value)
	case "DTEND":
		r.end, r.hasEnd = parseStamp(value)
	}
}

func (r *eventRecord) fixture() (model.Fixture, bool) {
	if r.uid == "" || r.summary == "" || !r.hasStart || !r.hasEnd {
		return model.Fixture{}, false
	}
	return model.Fixture{
		UID:      r.uid,
		Summary:  r.summary,
		Location: r.location,
		Start:    r.start,
		End:      r.end,
		Side:     model.SideUnknown,
	}, true
}

// splitProperty splits a "NAME[;params]:value" content line. The name is the
// text before the first ';' or ':'; any parameter segment between the name
// and the terminating colon is dropped, and the value is everything after
// that colon.
func splitProperty(line string) (name, value string, ok bool) {
	colon := strings.Index(line, ":")
	if colon < 0 {
		return "", "", false
	}
	name = line[:colon]
	if semi := strings.Index(name, ";"); semi >= 0 {
		name = name[:semi]
	}
	return strings.ToUpper(strings.TrimSpace(name)), line[colon+1:], true
}

// parseStamp accepts the compact form YYYYMMDDTHHMMSS, optionally suffixed
// with "Z". With the suffix the instant is UTC; without it the feed means
// local civil time. Malformed stamps fail the record's required-field check.
func parseStamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)

	loc := time.Local
	if strings.HasSuffix(value, "Z") {
		value = strings.TrimSuffix(value, "Z")
		loc = time.UTC
	}

	t, err := time.ParseInLocation(stampLayout, value, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
