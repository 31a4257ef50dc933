package schedule

// Store defines the interface for match day and match persistence.
type Store interface {
	GetOrCreateMatchDay(date string) (*MatchDay, error)
	GetMatchDay(matchDayID string) (*MatchDay, error)
	GetMatchDayByDate(date string) (*MatchDay, error)
	CreateMatches(matches []Match) error
	GetMatch(matchID string) (*Match, error)
	GetMatchesForDay(matchDayID string) ([]Match, error)
	HasMatches(matchDayID string) (bool, error)
	UpdateMatchResult(matchID string, winnerIDs []string, score string, deltas map[string]int) error
	UpdateMatchTeams(matchID string, team1, team2 []string, score string) error
	UpdateMatchScore(matchID string, score string) error
}
