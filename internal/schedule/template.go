package schedule

// templateSlot maps one match code to team positions within a court group of
// eight players (indices 0..7 in attendance order).
type templateSlot struct {
	Code  string
	Team1 []int
	Team2 []int
}

// matchTemplate is the fixed 12-match draw played by every court group.
// M1-M4 are the standard doubles slots, M5-M8 singles, M9-M10 crossover
// doubles and M11-M12 the finals slots. The rating tier for each slot lives
// in the scoring package; this table only fixes who plays whom.
var matchTemplate = []templateSlot{
	{Code: "M1", Team1: []int{0, 3}, Team2: []int{1, 2}},
	{Code: "M2", Team1: []int{4, 7}, Team2: []int{5, 6}},
	{Code: "M3", Team1: []int{2, 5}, Team2: []int{3, 4}},
	{Code: "M4", Team1: []int{0, 7}, Team2: []int{1, 6}},
	{Code: "M5", Team1: []int{0}, Team2: []int{1}},
	{Code: "M6", Team1: []int{2}, Team2: []int{3}},
	{Code: "M7", Team1: []int{4}, Team2: []int{5}},
	{Code: "M8", Team1: []int{6}, Team2: []int{7}},
	{Code: "M9", Team1: []int{0, 2}, Team2: []int{1, 3}},
	{Code: "M10", Team1: []int{4, 6}, Team2: []int{5, 7}},
	{Code: "M11", Team1: []int{0, 1}, Team2: []int{2, 3}},
	{Code: "M12", Team1: []int{4, 5}, Team2: []int{6, 7}},
}

// GroupSize is the fixed number of players per court group. Residual groups
// smaller than this are dropped from the draw, not scheduled.
const GroupSize = 8

// MatchesPerCourt is the number of matches each full court group plays,
// one per template slot.
const MatchesPerCourt = 12

func pickTeam(group []string, indices []int) []string {
	team := make([]string, len(indices))
	for i, idx := range indices {
		team[i] = group[idx]
	}
	return team
}
