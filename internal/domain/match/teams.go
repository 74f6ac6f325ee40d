package match

import "strings"

// Canonical LCK team codes. TeamA/TeamB of every normalized Record are
// members of this set.
const (
	TeamT1   = "T1"
	TeamGenG = "Gen.G"
	TeamDK   = "DK"
	TeamHLE  = "HLE"
	TeamKT   = "KT"
	TeamNS   = "NS"
	TeamBRO  = "BRO"
	TeamDRX  = "DRX"
	TeamKDF  = "KDF"
	TeamLSB  = "LSB"
)

func ValidTeams() []string {
	return []string{TeamT1, TeamGenG, TeamDK, TeamHLE, TeamKT, TeamNS, TeamBRO, TeamDRX, TeamKDF, TeamLSB}
}

// teamAliases maps every team spelling seen across upstream revisions
// (codes, full sponsor names, slug ids) to the canonical code. Keys are
// lower-cased.
var teamAliases = map[string]string{
	"t1":                  TeamT1,
	"gen.g":               TeamGenG,
	"geng":                TeamGenG,
	"gen.g esports":       TeamGenG,
	"dk":                  TeamDK,
	"dplus":               TeamDK,
	"dplus kia":           TeamDK,
	"damwon kia":          TeamDK,
	"hle":                 TeamHLE,
	"hanwha":              TeamHLE,
	"hanwha life esports": TeamHLE,
	"kt":                  TeamKT,
	"kt rolster":          TeamKT,
	"ns":                  TeamNS,
	"nongshim":            TeamNS,
	"nongshim redforce":   TeamNS,
	"bro":                 TeamBRO,
	"brion":               TeamBRO,
	"oksavingsbank brion": TeamBRO,
	"drx":                 TeamDRX,
	"kdf":                 TeamKDF,
	"kwangdong freecs":    TeamKDF,
	"lsb":                 TeamLSB,
	"liiv sandbox":        TeamLSB,
	"fearx":               TeamLSB,
	"bnk fearx":           TeamLSB,
}

// ResolveTeam maps any observed team spelling to its canonical code.
func ResolveTeam(name string) (string, bool) {
	code, ok := teamAliases[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}

func IsValidTeam(code string) bool {
	for _, valid := range ValidTeams() {
		if code == valid {
			return true
		}
	}
	return false
}
