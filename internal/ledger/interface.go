package ledger

// Ledger defines the read interface over the award rows. Award writes happen
// inside the schedule store's transactions so a match row and its awards can
// never disagree.
type Ledger interface {
	GetByMatch(matchID string) ([]Award, error)
	SumByMatchDay(matchDayID string) (map[string]int, error)
}
