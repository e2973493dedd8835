package minibasket

// SuggestFreeThrowCount returns how many free throws a foul awards.
// teamFoulsInQuarter is the fouling team's count before this foul is recorded.
func SuggestFreeThrowCount(foul FoulType, teamFoulsInQuarter int, shot ShotSituation) int {
	switch foul {
	case FoulTechnical, FoulCoachTechnical, FoulBenchTechnical:
		return 1
	case FoulUnsportsmanlike, FoulDisqualifying:
		return 2
	case FoulPersonal:
		switch shot {
		case Shot3P:
			return 3
		case Shot2P:
			return 2
		case ShotAndOne:
			return 1
		}
		if teamFoulsInQuarter >= PenaltyThreshold {
			return 2
		}
	}
	return 0
}

// IsBenchFoul reports whether the foul is charged to the bench rather than a
// player on court.
func IsBenchFoul(playerID string) bool {
	return playerID == "" || playerID == PlayerCoach || playerID == PlayerBench
}

// FreeThrowsMade counts the made attempts in a result sequence.
func FreeThrowsMade(results []bool) int {
	n := 0
	for _, made := range results {
		if made {
			n++
		}
	}
	return n
}
