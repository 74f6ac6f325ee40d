package match

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// adapter converts one recognized raw shape into the canonical Record.
type adapter func(Raw) (Record, error)

// selectAdapter picks the adapter by structural check. Returns false for the
// unknown-shape case, which must fail loudly rather than produce partial data.
func selectAdapter(raw Raw) (adapter, bool) {
	switch {
	case strings.TrimSpace(raw.TeamA) != "" && strings.TrimSpace(raw.TeamB) != "":
		return adaptFlat, true
	case raw.Team1 != nil && raw.Team2 != nil:
		return adaptNested, true
	default:
		return nil, false
	}
}

// Normalize maps a raw upstream record onto the canonical shape. It is pure:
// no I/O, the input is never mutated.
func Normalize(raw Raw) (Record, error) {
	adapt, ok := selectAdapter(raw)
	if !ok {
		return Record{}, fmt.Errorf("%w: unrecognized raw shape", ErrMalformed)
	}
	return adapt(raw)
}

// NormalizeAll converts a batch best-effort: malformed records are dropped
// and counted, never aborting the rest of the pass.
func NormalizeAll(raws []Raw) ([]Record, int) {
	out := make([]Record, 0, len(raws))
	dropped := 0
	for _, raw := range raws {
		record, err := Normalize(raw)
		if err != nil {
			dropped++
			continue
		}
		out = append(out, record)
	}
	return out, dropped
}

// adaptFlat handles the current payload revision: two flat team-code fields
// plus one combined timestamp field.
func adaptFlat(raw Raw) (Record, error) {
	teamA, ok := ResolveTeam(raw.TeamA)
	if !ok {
		return Record{}, fmt.Errorf("%w: unknown team %q", ErrMalformed, raw.TeamA)
	}
	teamB, ok := ResolveTeam(raw.TeamB)
	if !ok {
		return Record{}, fmt.Errorf("%w: unknown team %q", ErrMalformed, raw.TeamB)
	}

	matchDate, ok := parseUpstreamTimestamp(raw.MatchDate)
	if !ok {
		return Record{}, fmt.Errorf("%w: unparseable matchDate %q", ErrMalformed, raw.MatchDate)
	}

	id := resolveRecordID(raw)
	if id == "" {
		return Record{}, fmt.Errorf("%w: record carries no id", ErrMalformed)
	}

	return Record{
		ID:         id,
		TeamA:      teamA,
		TeamB:      teamB,
		MatchDate:  matchDate,
		LeagueName: strings.TrimSpace(raw.LeagueName),
		Status:     strings.TrimSpace(raw.MatchStatus),
	}, nil
}

// adaptNested handles the older revision: nested team objects with separate
// date and time-of-day fields.
func adaptNested(raw Raw) (Record, error) {
	teamA, ok := resolveRawTeam(raw.Team1)
	if !ok {
		return Record{}, fmt.Errorf("%w: unknown team %q", ErrMalformed, raw.Team1.Name)
	}
	teamB, ok := resolveRawTeam(raw.Team2)
	if !ok {
		return Record{}, fmt.Errorf("%w: unknown team %q", ErrMalformed, raw.Team2.Name)
	}

	stamp := strings.TrimSpace(raw.Date)
	if clock := strings.TrimSpace(raw.Time); clock != "" {
		stamp += " " + clock
	}
	matchDate, ok := parseUpstreamTimestamp(stamp)
	if !ok {
		return Record{}, fmt.Errorf("%w: unparseable date/time pair %q", ErrMalformed, stamp)
	}

	id := resolveRecordID(raw)
	if id == "" {
		return Record{}, fmt.Errorf("%w: record carries no id", ErrMalformed)
	}

	return Record{
		ID:         id,
		TeamA:      teamA,
		TeamB:      teamB,
		MatchDate:  matchDate,
		LeagueName: strings.TrimSpace(raw.LeagueName),
		Status:     strings.TrimSpace(raw.MatchStatus),
	}, nil
}

func resolveRawTeam(team *RawTeam) (string, bool) {
	if team == nil {
		return "", false
	}
	if code, ok := ResolveTeam(team.Name); ok {
		return code, true
	}
	return ResolveTeam(team.ID)
}

// resolveRecordID prefers the numeric/string id, then the external game id,
// then the game name. Numeric ids arrive as float64 from JSON decoding.
// Empty means the record has no identity; adapters reject it as malformed,
// since dedupe keys on the id.
func resolveRecordID(raw Raw) string {
	switch id := raw.ID.(type) {
	case string:
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			return trimmed
		}
	case float64:
		if id != 0 {
			return strconv.FormatInt(int64(id), 10)
		}
	case int64:
		if id != 0 {
			return strconv.FormatInt(id, 10)
		}
	case int:
		if id != 0 {
			return strconv.Itoa(id)
		}
	}
	if trimmed := strings.TrimSpace(raw.ExternalGameID); trimmed != "" {
		return trimmed
	}
	return strings.TrimSpace(raw.GameName)
}

var upstreamTimestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseUpstreamTimestamp(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range upstreamTimestampLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}
