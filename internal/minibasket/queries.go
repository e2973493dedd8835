package minibasket

// Team returns the team in the given slot, or nil for an unknown id.
func (g *Game) Team(id TeamID) *Team {
	switch id {
	case TeamA:
		return &g.TeamA
	case TeamB:
		return &g.TeamB
	}
	return nil
}

// Player looks a player up by id within the team.
func (t *Team) Player(id string) *Player {
	for i := range t.Players {
		if t.Players[i].ID == id {
			return &t.Players[i]
		}
	}
	return nil
}

// Score is the team's cumulative points, derived from player stats.
func (t Team) Score() int {
	total := 0
	for _, p := range t.Players {
		total += p.Stats.Points
	}
	return total
}

func (t Team) OnCourt() []Player {
	var out []Player
	for _, p := range t.Players {
		if p.IsOnCourt {
			out = append(out, p)
		}
	}
	return out
}

// Bench lists the players not on court, in roster order.
func (t Team) Bench() []Player {
	var out []Player
	for _, p := range t.Players {
		if !p.IsOnCourt {
			out = append(out, p)
		}
	}
	return out
}

// FoulsInQuarter returns the team-foul counter for quarter q (1-based).
// Quarters outside 1..4 report 0.
func (t Team) FoulsInQuarter(q int) int {
	if q < 1 || q > Quarters {
		return 0
	}
	return t.TeamFouls[q-1]
}

// InPenalty reports whether the next personal foul in quarter q awards free
// throws regardless of the shot situation.
func (t Team) InPenalty(q int) bool {
	return t.FoulsInQuarter(q) >= PenaltyThreshold
}

func (p Player) IsFouledOut() bool {
	return len(p.Fouls) >= FoulOutLimit
}

// CanEnter reports whether the player may be substituted onto the court.
func (p Player) CanEnter() bool {
	return !p.IsOnCourt && !p.IsFouledOut()
}

// QuarterScores sums the score log per quarter, indexed [team][quarter-1].
func (g Game) QuarterScores() map[TeamID][Quarters]int {
	out := map[TeamID][Quarters]int{TeamA: {}, TeamB: {}}
	for _, e := range g.ScoreHistory {
		if e.Quarter < 1 || e.Quarter > Quarters {
			continue
		}
		s := out[e.TeamID]
		s[e.Quarter-1] += e.Points
		out[e.TeamID] = s
	}
	return out
}

// PlayingQuarter clamps the current quarter into 1..4 for indexing per-quarter
// counters; a finished game reports the last quarter.
func (g Game) PlayingQuarter() int {
	return clampQuarter(g.CurrentQuarter)
}

func clampQuarter(q int) int {
	switch {
	case q < 1:
		return 1
	case q > Quarters:
		return Quarters
	}
	return q
}

func (g Game) Pending(id string) (PendingAction, int, bool) {
	for i, p := range g.PendingActions {
		if p.ID == id {
			return p, i, true
		}
	}
	return PendingAction{}, -1, false
}
