package match

import (
	"errors"
	"time"
)

// ErrMalformed marks a raw record that cannot be normalized: unknown shape,
// team outside the valid set, or no parseable timestamp.
var ErrMalformed = errors.New("malformed match record")

// Record is the canonical in-memory match, independent of whichever raw
// upstream shape produced it.
type Record struct {
	ID         string
	TeamA      string
	TeamB      string
	MatchDate  time.Time
	LeagueName string
	Status     string
}

// Raw carries every field-name variant observed in upstream payloads. Exactly
// one adapter recognizes a given populated combination; the rest of the
// fields stay zero.
type Raw struct {
	ID             any      `json:"id"`
	ExternalGameID string   `json:"externalGameId"`
	GameName       string   `json:"gameName"`
	TeamA          string   `json:"teamA"`
	TeamB          string   `json:"teamB"`
	MatchDate      string   `json:"matchDate"`
	Team1          *RawTeam `json:"team1"`
	Team2          *RawTeam `json:"team2"`
	Date           string   `json:"date"`
	Time           string   `json:"time"`
	LeagueName     string   `json:"leagueName"`
	MatchStatus    string   `json:"matchStatus"`
}

// RawTeam is the nested team object used by older payload revisions.
type RawTeam struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
