// Package scoresheet derives read-only views from a game snapshot: the box
// score served as JSON and the printable official scoresheet.
package scoresheet

import (
	"cmp"
	"slices"

	"github.com/playperu/minibasket/internal/minibasket"
)

type PlayerLine struct {
	ID             string                                    `json:"id"`
	Number         int                                       `json:"number"`
	Name           string                                    `json:"name"`
	IsCaptain      bool                                      `json:"isCaptain"`
	IsOnCourt      bool                                      `json:"isOnCourt"`
	FouledOut      bool                                      `json:"fouledOut"`
	Fouls          int                                       `json:"fouls"`
	QuartersPlayed [minibasket.Quarters]minibasket.QuarterPlay `json:"quartersPlayed"`
	Stats          minibasket.PlayerStats                    `json:"stats"`
	Rebounds       int                                       `json:"rebounds"`
	FieldGoalsMade int                                       `json:"fieldGoalsMade"`
	FieldGoalsAtt  int                                       `json:"fieldGoalsAttempted"`
}

type TeamLine struct {
	ID            minibasket.TeamID           `json:"id"`
	Name          string                      `json:"name"`
	Score         int                         `json:"score"`
	QuarterScores [minibasket.Quarters]int    `json:"quarterScores"`
	TeamFouls     [minibasket.Quarters]int    `json:"teamFouls"`
	InPenalty     bool                        `json:"inPenalty"`
	Timeouts      int                         `json:"timeouts"`
	CoachFouls    int                         `json:"coachFouls"`
	OnCourt       []int                       `json:"onCourt"`
	Bench         []int                       `json:"bench"`
	FreeThrows    FreeThrowLine               `json:"freeThrows"`
	Players       []PlayerLine                `json:"players"`
	Totals        minibasket.PlayerStats      `json:"totals"`
	UnknownStats  map[minibasket.StatType]int `json:"unknownStats,omitempty"`
}

// FreeThrowLine sums the free-throw sequences a team was awarded from fouls.
type FreeThrowLine struct {
	Trips   int `json:"trips"`
	Awarded int `json:"awarded"`
	Made    int `json:"made"`
}

type BoxScore struct {
	GameID         string           `json:"gameId"`
	Phase          minibasket.Phase `json:"phase"`
	CurrentQuarter int              `json:"currentQuarter"`
	TeamA          TeamLine         `json:"teamA"`
	TeamB          TeamLine         `json:"teamB"`
	PendingCount   int              `json:"pendingCount"`
}

// Build computes the box score for g. Players are ordered by jersey number.
func Build(g minibasket.Game) BoxScore {
	quarters := g.QuarterScores()
	return BoxScore{
		GameID:         g.ID,
		Phase:          g.Phase,
		CurrentQuarter: g.CurrentQuarter,
		TeamA:          teamLine(g, g.TeamA, quarters[minibasket.TeamA]),
		TeamB:          teamLine(g, g.TeamB, quarters[minibasket.TeamB]),
		PendingCount:   len(g.PendingActions),
	}
}

func teamLine(g minibasket.Game, t minibasket.Team, quarters [minibasket.Quarters]int) TeamLine {
	line := TeamLine{
		ID:            t.ID,
		Name:          t.Name,
		Score:         t.Score(),
		QuarterScores: quarters,
		TeamFouls:     t.TeamFouls,
		InPenalty:     t.InPenalty(g.PlayingQuarter()),
		Timeouts:      len(t.Timeouts),
		CoachFouls:    len(t.CoachFouls),
		OnCourt:       numbers(t.OnCourt()),
		Bench:         numbers(t.Bench()),
		Players:       make([]PlayerLine, 0, len(t.Players)),
	}
	for _, e := range g.FoulHistory {
		if e.ShooterTeamID != t.ID || len(e.FreeThrowResults) == 0 {
			continue
		}
		line.FreeThrows.Trips++
		line.FreeThrows.Awarded += e.FreeThrowCount
		line.FreeThrows.Made += minibasket.FreeThrowsMade(e.FreeThrowResults)
	}
	for _, p := range sortedPlayers(t.Players) {
		line.Players = append(line.Players, PlayerLine{
			ID:             p.ID,
			Number:         p.Number,
			Name:           p.DisplayName(),
			IsCaptain:      p.IsCaptain,
			IsOnCourt:      p.IsOnCourt,
			FouledOut:      p.IsFouledOut(),
			Fouls:          len(p.Fouls),
			QuartersPlayed: p.QuartersPlayed,
			Stats:          p.Stats,
			Rebounds:       p.Stats.Rebounds(),
			FieldGoalsMade: p.Stats.FieldGoalsMade(),
			FieldGoalsAtt:  p.Stats.FieldGoalsAttempted(),
		})
		line.Totals = line.Totals.Add(p.Stats)
	}
	for _, e := range g.StatHistory {
		if e.TeamID != t.ID || e.PlayerID != minibasket.PlayerUnknown {
			continue
		}
		if line.UnknownStats == nil {
			line.UnknownStats = make(map[minibasket.StatType]int)
		}
		line.UnknownStats[e.StatType]++
	}
	return line
}

func sortedPlayers(players []minibasket.Player) []minibasket.Player {
	out := slices.Clone(players)
	slices.SortStableFunc(out, func(a, b minibasket.Player) int {
		return cmp.Compare(a.Number, b.Number)
	})
	return out
}

// numbers lists jersey numbers in ascending order.
func numbers(players []minibasket.Player) []int {
	out := make([]int, 0, len(players))
	for _, p := range sortedPlayers(players) {
		out = append(out, p.Number)
	}
	return out
}
