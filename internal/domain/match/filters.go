package match

import "strings"

// Scope narrows a normalized collection to the league and season of
// interest. The upstream feed comingles the developmental league and
// multiple season-years with the main league.
type Scope struct {
	ExcludeLeagueSubstring string
	SeasonYear             int
}

// ScopeFilter keeps records whose league name does not contain the excluded
// substring (case-insensitive) and whose date falls in the target season
// year. An empty substring or non-positive year disables that half of the
// check. Pure; the input is never mutated.
func ScopeFilter(records []Record, scope Scope) []Record {
	exclude := strings.ToLower(strings.TrimSpace(scope.ExcludeLeagueSubstring))

	out := make([]Record, 0, len(records))
	for _, record := range records {
		if exclude != "" && strings.Contains(strings.ToLower(record.LeagueName), exclude) {
			continue
		}
		if scope.SeasonYear > 0 && record.MatchDate.Year() != scope.SeasonYear {
			continue
		}
		out = append(out, record)
	}
	return out
}

// Dedupe keeps exactly one record per ID. When duplicates disagree the
// first-seen record wins; the raw feed carries no reliable "latest" signal,
// so first-seen is the only deterministic choice.
func Dedupe(records []Record) []Record {
	seen := make(map[string]struct{}, len(records))
	out := make([]Record, 0, len(records))
	for _, record := range records {
		if _, dup := seen[record.ID]; dup {
			continue
		}
		seen[record.ID] = struct{}{}
		out = append(out, record)
	}
	return out
}
