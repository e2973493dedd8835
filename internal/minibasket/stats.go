package minibasket

// scoreDelta is the stat change produced by one made shot.
func scoreDelta(t ScoreType) (PlayerStats, bool) {
	switch t {
	case Score2P:
		return PlayerStats{Points: 2, TwoPointMade: 1, TwoPointAttempted: 1}, true
	case Score3P:
		return PlayerStats{Points: 3, ThreePointMade: 1, ThreePointAttempted: 1}, true
	case ScoreFT:
		return PlayerStats{Points: 1, FreeThrowMade: 1, FreeThrowAttempted: 1}, true
	}
	return PlayerStats{}, false
}

// statDelta is the stat change produced by one stat event.
func statDelta(t StatType) (PlayerStats, bool) {
	switch t {
	case StatOffensiveRebound:
		return PlayerStats{OffensiveRebounds: 1}, true
	case StatDefensiveRebound:
		return PlayerStats{DefensiveRebounds: 1}, true
	case StatAssist:
		return PlayerStats{Assists: 1}, true
	case StatSteal:
		return PlayerStats{Steals: 1}, true
	case StatBlock:
		return PlayerStats{Blocks: 1}, true
	case StatTurnover:
		return PlayerStats{Turnovers: 1}, true
	case StatTurnoverTravel:
		return PlayerStats{Turnovers: 1, TurnoversTravel: 1}, true
	case StatTurnoverDouble:
		return PlayerStats{Turnovers: 1, TurnoversDouble: 1}, true
	case StatTurnoverOut:
		return PlayerStats{Turnovers: 1, TurnoversOut: 1}, true
	case StatTurnoverPass:
		return PlayerStats{Turnovers: 1, TurnoversPass: 1}, true
	case Stat2PA:
		return PlayerStats{TwoPointAttempted: 1}, true
	case Stat3PA:
		return PlayerStats{ThreePointAttempted: 1}, true
	case StatFTA:
		return PlayerStats{FreeThrowAttempted: 1}, true
	}
	return PlayerStats{}, false
}

func (s PlayerStats) apply(d PlayerStats, sign int) PlayerStats {
	s.Points += sign * d.Points
	s.TwoPointMade += sign * d.TwoPointMade
	s.TwoPointAttempted += sign * d.TwoPointAttempted
	s.ThreePointMade += sign * d.ThreePointMade
	s.ThreePointAttempted += sign * d.ThreePointAttempted
	s.FreeThrowMade += sign * d.FreeThrowMade
	s.FreeThrowAttempted += sign * d.FreeThrowAttempted
	s.OffensiveRebounds += sign * d.OffensiveRebounds
	s.DefensiveRebounds += sign * d.DefensiveRebounds
	s.Assists += sign * d.Assists
	s.Steals += sign * d.Steals
	s.Blocks += sign * d.Blocks
	s.Turnovers += sign * d.Turnovers
	s.TurnoversTravel += sign * d.TurnoversTravel
	s.TurnoversDouble += sign * d.TurnoversDouble
	s.TurnoversOut += sign * d.TurnoversOut
	s.TurnoversPass += sign * d.TurnoversPass
	return s
}

func (s PlayerStats) Add(d PlayerStats) PlayerStats { return s.apply(d, 1) }
func (s PlayerStats) Sub(d PlayerStats) PlayerStats { return s.apply(d, -1) }

// Rebounds is offensive plus defensive.
func (s PlayerStats) Rebounds() int { return s.OffensiveRebounds + s.DefensiveRebounds }

func (s PlayerStats) FieldGoalsMade() int      { return s.TwoPointMade + s.ThreePointMade }
func (s PlayerStats) FieldGoalsAttempted() int { return s.TwoPointAttempted + s.ThreePointAttempted }

// IsKnownStat reports whether t is a stat type the reducer accepts.
func IsKnownStat(t StatType) bool {
	_, ok := statDelta(t)
	return ok
}

func IsKnownScore(t ScoreType) bool {
	_, ok := scoreDelta(t)
	return ok
}

func IsKnownFoul(t FoulType) bool {
	switch t {
	case FoulPersonal, FoulTechnical, FoulUnsportsmanlike, FoulDisqualifying,
		FoulCoachTechnical, FoulBenchTechnical:
		return true
	}
	return false
}
