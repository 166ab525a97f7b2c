package insights

import (
	"fmt"
)

const keyPrefix = "match_insights:v1:"

// Key returns the stable cache and coalescing key of the match.
func (m Match) Key() string {
	if m.ID > 0 {
		return fmt.Sprintf("%s%d", keyPrefix, m.ID)
	}
	return fmt.Sprintf("%s%d:%d-%d:%d", keyPrefix, m.LeagueID, m.HomeTeamID, m.AwayTeamID, m.KickoffAt.Unix())
}

// Validate reports the first missing identity field of the match.
func (m Match) Validate() error {
	switch {
	case m.ID < 0:
		return fmt.Errorf("match id must be >= 0")
	case m.LeagueID <= 0:
		return fmt.Errorf("league id is required")
	case m.HomeTeamID <= 0 || m.AwayTeamID <= 0:
		return fmt.Errorf("home and away team ids are required")
	case m.HomeTeamID == m.AwayTeamID:
		return fmt.Errorf("home and away team must differ")
	case m.ID == 0 && m.KickoffAt.IsZero():
		return fmt.Errorf("kickoff time is required when match id is unknown")
	case m.ResolvedSeason() <= 0:
		return fmt.Errorf("season is required when kickoff time is unknown")
	}
	return nil
}
