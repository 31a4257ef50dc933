package attendance

// Ledger defines the interface for the per-day attendance ledger.
type Ledger interface {
	Mark(matchDayID, playerID string, present bool) error
	MarkBulk(matchDayID string, records []Record) error
	GetForDay(matchDayID string) ([]Record, error)
	GetPresentPlayerIDs(matchDayID string) ([]string, error)
	GetAbsentPlayerIDs(matchDayID string) ([]string, error)
}
