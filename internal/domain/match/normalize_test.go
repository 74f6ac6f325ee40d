package match

import (
	"errors"
	"testing"
	"time"
)

func TestNormalize_FlatShape(t *testing.T) {
	t.Parallel()

	raw := Raw{
		ID:          float64(42),
		TeamA:       "T1",
		TeamB:       "Gen.G",
		MatchDate:   "2026-03-20 17:00:00",
		LeagueName:  "LCK",
		MatchStatus: "scheduled",
	}

	record, err := Normalize(raw)
	if err != nil {
		t.Fatalf("normalize flat shape: %v", err)
	}
	if record.ID != "42" {
		t.Fatalf("unexpected id: got=%s want=42", record.ID)
	}
	if record.TeamA != TeamT1 || record.TeamB != TeamGenG {
		t.Fatalf("unexpected teams: %s vs %s", record.TeamA, record.TeamB)
	}
	want := time.Date(2026, 3, 20, 17, 0, 0, 0, time.UTC)
	if !record.MatchDate.Equal(want) {
		t.Fatalf("unexpected match date: got=%s want=%s", record.MatchDate, want)
	}
}

func TestNormalize_NestedShapeWithDateTimePair(t *testing.T) {
	t.Parallel()

	raw := Raw{
		ID:         "7",
		Team1:      &RawTeam{ID: "hanwha", Name: "Hanwha Life Esports"},
		Team2:      &RawTeam{ID: "geng", Name: "Gen.G"},
		Date:       "2026-03-21",
		Time:       "19:30",
		LeagueName: "LCK",
	}

	record, err := Normalize(raw)
	if err != nil {
		t.Fatalf("normalize nested shape: %v", err)
	}
	if record.TeamA != TeamHLE || record.TeamB != TeamGenG {
		t.Fatalf("unexpected teams: %s vs %s", record.TeamA, record.TeamB)
	}
	want := time.Date(2026, 3, 21, 19, 30, 0, 0, time.UTC)
	if !record.MatchDate.Equal(want) {
		t.Fatalf("unexpected match date: got=%s want=%s", record.MatchDate, want)
	}
}

func TestNormalize_NestedShapeDateOnly(t *testing.T) {
	t.Parallel()

	raw := Raw{
		ID:    "8",
		Team1: &RawTeam{ID: "drx"},
		Team2: &RawTeam{ID: "brion"},
		Date:  "2026-04-02",
	}

	record, err := Normalize(raw)
	if err != nil {
		t.Fatalf("normalize date-only nested shape: %v", err)
	}
	if record.TeamB != TeamBRO {
		t.Fatalf("expected BRO from slug id, got %s", record.TeamB)
	}
}

func TestNormalize_UnknownShapeFailsLoudly(t *testing.T) {
	t.Parallel()

	_, err := Normalize(Raw{ID: "9", LeagueName: "LCK"})
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed for unknown shape, got %v", err)
	}
}

func TestNormalize_RejectsTeamOutsideValidSet(t *testing.T) {
	t.Parallel()

	raw := Raw{
		ID:        "10",
		TeamA:     "T1",
		TeamB:     "Cloud9",
		MatchDate: "2026-03-20 17:00:00",
	}
	if _, err := Normalize(raw); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed for non-LCK team, got %v", err)
	}
}

func TestNormalize_RejectsUnparseableTimestamp(t *testing.T) {
	t.Parallel()

	raw := Raw{
		ID:        "11",
		TeamA:     "T1",
		TeamB:     "DRX",
		MatchDate: "soon(tm)",
	}
	if _, err := Normalize(raw); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed for bad timestamp, got %v", err)
	}
}

func TestNormalizeAll_DropsMalformedAndKeepsRest(t *testing.T) {
	t.Parallel()

	raws := []Raw{
		{ID: "1", TeamA: "T1", TeamB: "KT", MatchDate: "2026-03-01 17:00:00"},
		{ID: "2", LeagueName: "LCK"}, // unknown shape
		{ID: "3", TeamA: "DK", TeamB: "NS", MatchDate: "2026-03-02 17:00:00"},
	}

	records, dropped := NormalizeAll(raws)
	if dropped != 1 {
		t.Fatalf("expected 1 dropped record, got %d", dropped)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 normalized records, got %d", len(records))
	}
	if records[0].ID != "1" || records[1].ID != "3" {
		t.Fatalf("unexpected record order: %+v", records)
	}
}

func TestResolveRecordID_FallbackChain(t *testing.T) {
	t.Parallel()

	if got := resolveRecordID(Raw{ID: nil, ExternalGameID: "ext-5"}); got != "ext-5" {
		t.Fatalf("expected external game id fallback, got %q", got)
	}
	if got := resolveRecordID(Raw{GameName: "T1 vs KT"}); got != "T1 vs KT" {
		t.Fatalf("expected game name fallback, got %q", got)
	}
}

func TestNormalize_RejectsRecordWithoutIdentity(t *testing.T) {
	t.Parallel()

	// No id, external game id, or game name: dedupe keys on the id, so an
	// identityless record must fail instead of colliding with others.
	flat := Raw{
		TeamA:       "T1",
		TeamB:       "Gen.G",
		MatchDate:   "2026-03-05 17:00:00",
		LeagueName:  "LCK",
		MatchStatus: "scheduled",
	}
	if _, err := Normalize(flat); !errors.Is(err, ErrMalformed) {
		t.Fatalf("flat shape error = %v, want ErrMalformed", err)
	}

	nested := Raw{
		Team1: &RawTeam{ID: "drx"},
		Team2: &RawTeam{ID: "brion"},
		Date:  "2026-03-06",
	}
	if _, err := Normalize(nested); !errors.Is(err, ErrMalformed) {
		t.Fatalf("nested shape error = %v, want ErrMalformed", err)
	}
}
