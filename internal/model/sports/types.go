package sports

// Sport mirrors an entry of the upstream /sports payload.
type Sport struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// Tournament mirrors an entry of /sports/tournaments.
type Tournament struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	SportID int    `json:"sport_id"`
}

// Fixture mirrors an entry of /sports/fixtures.
type Fixture struct {
	ID           int    `json:"id"`
	SportID      int    `json:"sport_id"`
	TournamentID int    `json:"tournament_id"`
	TeamHome     string `json:"team_home"`
	TeamAway     string `json:"team_away"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Location     string `json:"location"`
}

// Odds mirrors an entry of /sports/odds for the 1-X-2 market.
type Odds struct {
	FixtureID   int     `json:"fixture_id"`
	Market      string  `json:"market"`
	HomeWin     float64 `json:"home_win"`
	Draw        float64 `json:"draw"`
	AwayWin     float64 `json:"away_win"`
	LastUpdated string  `json:"last_updated"`
}

// Status classifies the outcome of a sports lookup so callers can tell
// "nothing matched" apart from "the upstream was unreachable".
type Status string

const (
	StatusFound  Status = "found"
	StatusEmpty  Status = "empty"
	StatusFailed Status = "failed"
)

// QueryResult is the normalized outcome of one sports lookup.
type QueryResult struct {
	Status   Status    `json:"status"`
	Fixtures []Fixture `json:"fixtures,omitempty"`
	Odds     []Odds    `json:"odds,omitempty"`
}

// Empty reports whether the result carries no usable data.
func (r QueryResult) Empty() bool {
	return r.Status != StatusFound || (len(r.Fixtures) == 0 && len(r.Odds) == 0)
}

// PendingBet is a simulated bet awaiting user confirmation.
type PendingBet struct {
	FixtureID         int     `json:"fixtureId"`
	Match             string  `json:"match"`
	Market            string  `json:"market"`
	Selection         string  `json:"selection"`
	Stake             float64 `json:"stake"`
	PotentialWinnings float64 `json:"potentialWinnings"`
}
