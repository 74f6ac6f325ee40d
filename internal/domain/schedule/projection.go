package schedule

import (
	"sort"
	"time"

	"github.com/junseong2im/Esports/internal/domain/match"
)

const (
	// AllTeams and AllPeriods are the sentinel filter values meaning
	// "no restriction".
	AllTeams   = "all"
	AllPeriods = "all"

	DefaultPageSize = 30

	periodLayout = "2006-01"
)

// FilterState is owned by the presentation layer and mutated only by user
// action; projections are pure functions of (records, filter).
type FilterState struct {
	Team   string
	Period string
	Page   int
}

// Page is one renderable slice of the filtered, sorted collection.
type Page struct {
	Items      []match.Record
	Page       int
	TotalPages int
}

// PeriodOf buckets a match date into its year-month navigation key.
func PeriodOf(t time.Time) string {
	return t.UTC().Format(periodLayout)
}

// VisibleMatches applies the team filter, then the period filter, then a
// stable ascending sort by match date. Ties keep their input order.
func VisibleMatches(records []match.Record, filter FilterState) []match.Record {
	out := make([]match.Record, 0, len(records))
	for _, record := range records {
		if filter.Team != "" && filter.Team != AllTeams &&
			record.TeamA != filter.Team && record.TeamB != filter.Team {
			continue
		}
		if filter.Period != "" && filter.Period != AllPeriods &&
			PeriodOf(record.MatchDate) != filter.Period {
			continue
		}
		out = append(out, record)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchDate.Before(out[j].MatchDate)
	})
	return out
}

// AvailablePeriods lists the distinct year-month buckets present in the
// data, ascending. It never contains a bucket with zero matches and is empty
// exactly when the input is empty.
func AvailablePeriods(records []match.Record) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0, 8)
	for _, record := range records {
		period := PeriodOf(record.MatchDate)
		if _, ok := seen[period]; ok {
			continue
		}
		seen[period] = struct{}{}
		out = append(out, period)
	}
	sort.Strings(out)
	return out
}

// NextPeriod returns the nearest non-empty bucket after current. ok=false
// means the control should be disabled: nothing further in that direction.
func NextPeriod(records []match.Record, current string) (string, bool) {
	for _, period := range AvailablePeriods(records) {
		if period > current {
			return period, true
		}
	}
	return "", false
}

// PreviousPeriod mirrors NextPeriod in the other direction.
func PreviousPeriod(records []match.Record, current string) (string, bool) {
	periods := AvailablePeriods(records)
	for i := len(periods) - 1; i >= 0; i-- {
		if periods[i] < current {
			return periods[i], true
		}
	}
	return "", false
}

// Paginate slices the collection into fixed-size pages. TotalPages is
// ceil(len/size); an empty input yields TotalPages 0 with an empty page,
// which renderers treat the same as a single empty page. The requested page
// is clamped into the valid range so misuse is harmless.
func Paginate(records []match.Record, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}

	total := (len(records) + size - 1) / size
	if page < 1 {
		page = 1
	}
	if total > 0 && page > total {
		page = total
	}

	start := (page - 1) * size
	if start >= len(records) {
		return Page{Items: []match.Record{}, Page: page, TotalPages: total}
	}
	end := start + size
	if end > len(records) {
		end = len(records)
	}

	items := make([]match.Record, end-start)
	copy(items, records[start:end])
	return Page{Items: items, Page: page, TotalPages: total}
}
