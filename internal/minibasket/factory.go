package minibasket

import "slices"

var defaultColors = map[TeamID]string{
	TeamA: "#1d4ed8",
	TeamB: "#dc2626",
}

// NewGame returns a game in the setup phase with two empty teams.
func NewGame(id string, now int64) Game {
	return Game{
		ID:             id,
		TeamA:          NewTeam(TeamA, "Team A"),
		TeamB:          NewTeam(TeamB, "Team B"),
		CurrentQuarter: 1,
		Phase:          PhaseSetup,
		ScoreHistory:   []ScoreEntry{},
		StatHistory:    []StatEntry{},
		FoulHistory:    []FoulEntry{},
		PendingActions: []PendingAction{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func NewTeam(id TeamID, name string) Team {
	return Team{
		ID:         id,
		Name:       name,
		Players:    []Player{},
		CoachFouls: []CoachFoul{},
		Timeouts:   []Timeout{},
		Color:      defaultColors[id],
	}
}

func NewPlayer(id string, number int, name string) Player {
	p := Player{
		ID:     id,
		Number: number,
		Name:   name,
		Fouls:  []FoulRecord{},
	}
	for i := range p.QuartersPlayed {
		p.QuartersPlayed[i] = QuarterNone
	}
	return p
}

// normalizeTeam fills in the zero values a caller-supplied team may omit so
// the rest of the reducer can rely on non-nil slices and valid quarter slots.
func normalizeTeam(t Team, id TeamID) Team {
	t.ID = id
	if t.Players == nil {
		t.Players = []Player{}
	}
	if t.CoachFouls == nil {
		t.CoachFouls = []CoachFoul{}
	}
	if t.Timeouts == nil {
		t.Timeouts = []Timeout{}
	}
	if t.Color == "" {
		t.Color = defaultColors[id]
	}
	for i := range t.Players {
		p := &t.Players[i]
		if p.Fouls == nil {
			p.Fouls = []FoulRecord{}
		}
		for q := range p.QuartersPlayed {
			if p.QuartersPlayed[q] == "" {
				p.QuartersPlayed[q] = QuarterNone
			}
		}
	}
	return t
}

// Clone returns a deep copy of the game so transitions never share backing
// arrays with the previous snapshot.
func (g Game) Clone() Game {
	out := g
	out.TeamA = g.TeamA.clone()
	out.TeamB = g.TeamB.clone()
	out.ScoreHistory = slices.Clone(g.ScoreHistory)
	out.StatHistory = slices.Clone(g.StatHistory)
	out.FoulHistory = make([]FoulEntry, len(g.FoulHistory))
	for i, f := range g.FoulHistory {
		f.FreeThrowResults = slices.Clone(f.FreeThrowResults)
		f.FreeThrowEntryIDs = slices.Clone(f.FreeThrowEntryIDs)
		out.FoulHistory[i] = f
	}
	out.PendingActions = make([]PendingAction, len(g.PendingActions))
	for i, p := range g.PendingActions {
		p.OnCourtPlayers = slices.Clone(p.OnCourtPlayers)
		p.CandidatePlayerIDs = slices.Clone(p.CandidatePlayerIDs)
		out.PendingActions[i] = p
	}
	return out
}

func (t Team) clone() Team {
	out := t
	out.Players = make([]Player, len(t.Players))
	for i, p := range t.Players {
		p.Fouls = slices.Clone(p.Fouls)
		out.Players[i] = p
	}
	out.CoachFouls = slices.Clone(t.CoachFouls)
	out.Timeouts = slices.Clone(t.Timeouts)
	return out
}
