package scoring

// AbsencePenalty is the flat rating deduction applied at finalize for every
// player explicitly recorded as absent on a match day.
const AbsencePenalty = -10

// TeamDeltas is the rating movement a single match awards each side.
type TeamDeltas struct {
	Winner int
	Loser  int
}

// deltaRule resolves the per-side deltas for one tier given the combined
// current ratings of the winning and losing teams.
type deltaRule func(winnerSum, loserSum int) TeamDeltas

func fixed(points int) deltaRule {
	return func(_, _ int) TeamDeltas {
		return TeamDeltas{Winner: points, Loser: -points}
	}
}

// upsetOr awards the larger symmetric delta only when the winning team's
// combined rating is strictly lower than the losing team's. A tie in sums
// is not an upset.
func upsetOr(upsetPoints, basePoints int) deltaRule {
	return func(winnerSum, loserSum int) TeamDeltas {
		if winnerSum < loserSum {
			return TeamDeltas{Winner: upsetPoints, Loser: -upsetPoints}
		}
		return TeamDeltas{Winner: basePoints, Loser: -basePoints}
	}
}

// fallback covers manually created matches outside the fixed template.
// A lower-rated winner gains 15 while the favourite loses 5; a favourite
// winner gains 5 while the underdog loses 15.
func fallback(winnerSum, loserSum int) TeamDeltas {
	if winnerSum < loserSum {
		return TeamDeltas{Winner: 15, Loser: -5}
	}
	return TeamDeltas{Winner: 5, Loser: -15}
}

var rulesByCode = map[string]deltaRule{
	"M1":  fixed(5),
	"M2":  fixed(5),
	"M3":  fixed(5),
	"M4":  fixed(5),
	"M5":  fixed(10),
	"M6":  fixed(10),
	"M7":  fixed(10),
	"M8":  fixed(10),
	"M9":  upsetOr(10, 5),
	"M10": upsetOr(10, 5),
	"M11": upsetOr(15, 5),
	"M12": upsetOr(15, 5),
}

// Deltas computes the winner and loser rating deltas for a match code given
// each team's combined current rating. Unknown codes fall through to the
// asymmetric rule for manually added matches.
func Deltas(matchCode string, winnerSum, loserSum int) TeamDeltas {
	if rule, ok := rulesByCode[matchCode]; ok {
		return rule(winnerSum, loserSum)
	}
	return fallback(winnerSum, loserSum)
}
