package minibasket

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"testing"
	"time"
)

// testReducer returns a reducer with a clock that advances one millisecond per
// reading and sequential entry ids.
func testReducer(opts ...Option) *Reducer {
	var tick, seq int64
	base := time.UnixMilli(1_700_000_000_000)
	clock := func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Millisecond)
	}
	ids := func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	return NewReducer(append([]Option{WithClock(clock), WithIDs(ids)}, opts...)...)
}

func roster(id TeamID, name string, n int) Team {
	t := NewTeam(id, name)
	prefix := "a"
	if id == TeamB {
		prefix = "b"
	}
	for i := 1; i <= n; i++ {
		p := NewPlayer(fmt.Sprintf("%s%d", prefix, i), i+3, fmt.Sprintf("Player %s%d", prefix, i))
		p.IsOnCourt = i <= 5
		t.Players = append(t.Players, p)
	}
	return t
}

func mustApply(t *testing.T, r *Reducer, g Game, a Action) Game {
	t.Helper()
	next, changed := r.Reduce(g, a)
	if !changed {
		t.Fatalf("%s: expected state change", a.Type())
	}
	return next
}

func mustIgnore(t *testing.T, r *Reducer, g Game, a Action) {
	t.Helper()
	next, changed := r.Reduce(g, a)
	if changed {
		t.Fatalf("%s: expected no-op", a.Type())
	}
	if !reflect.DeepEqual(next, g) {
		t.Fatalf("%s: no-op returned a different snapshot", a.Type())
	}
}

func startedGame(t *testing.T, r *Reducer) Game {
	t.Helper()
	g := r.Initial()
	g = mustApply(t, r, g, SetTeams{TeamA: roster(TeamA, "Tigers", 8), TeamB: roster(TeamB, "Lions", 8)})
	return mustApply(t, r, g, StartGame{})
}

func player(t *testing.T, g Game, id string) Player {
	t.Helper()
	p := g.TeamA.Player(id)
	if p == nil {
		p = g.TeamB.Player(id)
	}
	if p == nil {
		t.Fatalf("player %s not found", id)
	}
	return *p
}

func TestScoreRoundTrip(t *testing.T) {
	for _, st := range []ScoreType{Score2P, Score3P, ScoreFT} {
		t.Run(string(st), func(t *testing.T) {
			r := testReducer()
			g := startedGame(t, r)
			before := player(t, g, "a1").Stats

			g = mustApply(t, r, g, AddScore{TeamID: TeamA, PlayerID: "a1", ScoreType: st})
			if got := g.TeamA.Score(); got != st.Points() {
				t.Fatalf("score = %d, want %d", got, st.Points())
			}
			entry := g.ScoreHistory[len(g.ScoreHistory)-1]
			if entry.RunningScoreA != st.Points() || entry.RunningScoreB != 0 {
				t.Errorf("running = %d-%d, want %d-0", entry.RunningScoreA, entry.RunningScoreB, st.Points())
			}

			g = mustApply(t, r, g, RemoveScore{EntryID: entry.ID})
			if got := player(t, g, "a1").Stats; got != before {
				t.Errorf("stats after remove = %+v, want %+v", got, before)
			}
			if len(g.ScoreHistory) != 0 {
				t.Errorf("score log len = %d, want 0", len(g.ScoreHistory))
			}
		})
	}
}

func TestStatRoundTrip(t *testing.T) {
	for _, st := range []StatType{
		StatOffensiveRebound, StatDefensiveRebound, StatAssist, StatSteal, StatBlock,
		StatTurnover, StatTurnoverTravel, StatTurnoverDouble, StatTurnoverOut, StatTurnoverPass,
		Stat2PA, Stat3PA, StatFTA,
	} {
		t.Run(string(st), func(t *testing.T) {
			r := testReducer()
			g := startedGame(t, r)
			before := player(t, g, "b2").Stats

			g = mustApply(t, r, g, AddStat{TeamID: TeamB, PlayerID: "b2", StatType: st})
			if player(t, g, "b2").Stats == before {
				t.Fatal("stat did not change player stats")
			}
			if g.TeamB.Score() != 0 {
				t.Errorf("stat changed score to %d", g.TeamB.Score())
			}
			g = mustApply(t, r, g, RemoveStat{EntryID: g.StatHistory[0].ID})
			if got := player(t, g, "b2").Stats; got != before {
				t.Errorf("stats after remove = %+v, want %+v", got, before)
			}
		})
	}
}

func TestSubclassifiedTurnoverCountsTowardTotal(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	g = mustApply(t, r, g, AddStat{TeamID: TeamA, PlayerID: "a1", StatType: StatTurnoverTravel})
	g = mustApply(t, r, g, AddStat{TeamID: TeamA, PlayerID: "a1", StatType: StatTurnover})

	s := player(t, g, "a1").Stats
	if s.Turnovers != 2 || s.TurnoversTravel != 1 {
		t.Errorf("turnovers = %d travel = %d, want 2 and 1", s.Turnovers, s.TurnoversTravel)
	}
}

func TestMissCountsAttemptOnly(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	g = mustApply(t, r, g, AddStat{TeamID: TeamA, PlayerID: "a1", StatType: Stat3PA})
	s := player(t, g, "a1").Stats
	if s.ThreePointAttempted != 1 || s.ThreePointMade != 0 || s.Points != 0 {
		t.Errorf("stats = %+v, want one 3P attempt only", s)
	}
}

func TestScoreClearsSelection(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	g = mustApply(t, r, g, SelectPlayer{TeamID: TeamA, PlayerID: "a3"})
	if g.SelectedPlayerID != "a3" || g.SelectedTeamID != TeamA {
		t.Fatalf("selection = %s/%s, want A/a3", g.SelectedTeamID, g.SelectedPlayerID)
	}
	g = mustApply(t, r, g, AddScore{TeamID: TeamA, PlayerID: "a3", ScoreType: Score2P})
	if g.SelectedPlayerID != "" || g.SelectedTeamID != "" {
		t.Errorf("selection not cleared: %s/%s", g.SelectedTeamID, g.SelectedPlayerID)
	}
}

func TestFoulRoundTrip(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)

	g = mustApply(t, r, g, AddFoul{TeamID: TeamA, PlayerID: "a1", FoulType: FoulPersonal})
	if n := len(player(t, g, "a1").Fouls); n != 1 {
		t.Fatalf("fouls = %d, want 1", n)
	}
	if g.TeamA.TeamFouls[0] != 1 {
		t.Fatalf("team fouls Q1 = %d, want 1", g.TeamA.TeamFouls[0])
	}

	g = mustApply(t, r, g, RemoveFoul{EntryID: g.FoulHistory[0].ID})
	if n := len(player(t, g, "a1").Fouls); n != 0 {
		t.Errorf("fouls after remove = %d, want 0", n)
	}
	if g.TeamA.TeamFouls[0] != 0 {
		t.Errorf("team fouls after remove = %d, want 0", g.TeamA.TeamFouls[0])
	}
	if len(g.FoulHistory) != 0 {
		t.Errorf("foul log len = %d, want 0", len(g.FoulHistory))
	}
}

func TestBenchFoulSkipsTeamFouls(t *testing.T) {
	tests := []struct {
		name     string
		playerID string
		foul     FoulType
		wantID   string
	}{
		{"coach", PlayerCoach, FoulCoachTechnical, PlayerCoach},
		{"bench", PlayerBench, FoulBenchTechnical, PlayerBench},
		{"empty coach", "", FoulCoachTechnical, PlayerCoach},
		{"empty bench", "", FoulBenchTechnical, PlayerBench},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testReducer()
			g := startedGame(t, r)
			g = mustApply(t, r, g, AddFoul{TeamID: TeamB, PlayerID: tt.playerID, FoulType: tt.foul})

			if len(g.TeamB.CoachFouls) != 1 {
				t.Fatalf("coach fouls = %d, want 1", len(g.TeamB.CoachFouls))
			}
			if g.TeamB.CoachFouls[0].PlayerID != tt.wantID {
				t.Errorf("charged to %q, want %q", g.TeamB.CoachFouls[0].PlayerID, tt.wantID)
			}
			if g.TeamB.TeamFouls != [Quarters]int{} {
				t.Errorf("team fouls = %v, want zero", g.TeamB.TeamFouls)
			}
			e := g.FoulHistory[0]
			if !e.IsCoachOrBench || e.PlayerNumber != NoPlayerNumber {
				t.Errorf("entry = %+v, want coach/bench with no number", e)
			}

			g = mustApply(t, r, g, RemoveFoul{EntryID: e.ID})
			if len(g.TeamB.CoachFouls) != 0 {
				t.Errorf("coach fouls after remove = %d, want 0", len(g.TeamB.CoachFouls))
			}
		})
	}
}

func TestRemoveFoulPrefersSameQuarter(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	g = mustApply(t, r, g, AddFoul{TeamID: TeamA, PlayerID: "a1", FoulType: FoulPersonal})
	g = mustApply(t, r, g, EndQuarter{})
	g = mustApply(t, r, g, StartGame{})
	g = mustApply(t, r, g, AddFoul{TeamID: TeamA, PlayerID: "a1", FoulType: FoulPersonal})

	g = mustApply(t, r, g, RemoveFoul{EntryID: g.FoulHistory[0].ID})
	fouls := player(t, g, "a1").Fouls
	if len(fouls) != 1 || fouls[0].Quarter != 2 {
		t.Fatalf("remaining fouls = %+v, want one in Q2", fouls)
	}
	if g.TeamA.TeamFouls[0] != 0 || g.TeamA.TeamFouls[1] != 1 {
		t.Errorf("team fouls = %v, want [0 1 0 0]", g.TeamA.TeamFouls)
	}
}

func TestFoulOut(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	for i := 0; i < FoulOutLimit; i++ {
		g = mustApply(t, r, g, AddFoul{TeamID: TeamA, PlayerID: "a1", FoulType: FoulPersonal})
	}
	if !player(t, g, "a1").IsFouledOut() {
		t.Fatal("player with five fouls is not fouled out")
	}
	g = mustApply(t, r, g, SubstitutePlayer{TeamID: TeamA, PlayerOutID: "a1", PlayerInID: "a6"})
	mustIgnore(t, r, g, SubstitutePlayer{TeamID: TeamA, PlayerOutID: "a2", PlayerInID: "a1"})
}

func TestRunningScoresMatchRecompute(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	for _, a := range []Action{
		AddScore{TeamID: TeamA, PlayerID: "a1", ScoreType: Score2P},
		AddScore{TeamID: TeamB, PlayerID: "b1", ScoreType: Score3P},
		AddScore{TeamID: TeamA, PlayerID: "a2", ScoreType: ScoreFT},
		AddScore{TeamID: TeamB, PlayerID: "b3", ScoreType: Score2P},
	} {
		g = mustApply(t, r, g, a)
	}
	if !reflect.DeepEqual(g.ScoreHistory, RecomputeRunningScores(g.ScoreHistory)) {
		t.Fatalf("running scores drift from recomputation:\n%+v", g.ScoreHistory)
	}
	last := g.ScoreHistory[len(g.ScoreHistory)-1]
	if last.RunningScoreA != g.TeamA.Score() || last.RunningScoreB != g.TeamB.Score() {
		t.Errorf("last running = %d-%d, want %d-%d", last.RunningScoreA, last.RunningScoreB, g.TeamA.Score(), g.TeamB.Score())
	}
}

func TestRemoveKeepsRunningScoresByDefault(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	g = mustApply(t, r, g, AddScore{TeamID: TeamA, PlayerID: "a1", ScoreType: Score2P})
	g = mustApply(t, r, g, AddScore{TeamID: TeamA, PlayerID: "a1", ScoreType: Score3P})
	g = mustApply(t, r, g, RemoveScore{EntryID: g.ScoreHistory[0].ID})

	if got := g.ScoreHistory[0].RunningScoreA; got != 5 {
		t.Errorf("running score A = %d, want stale 5", got)
	}
}

func TestRemoveRecomputesWhenEnabled(t *testing.T) {
	r := testReducer(WithRecomputeOnRemove(true))
	g := startedGame(t, r)
	g = mustApply(t, r, g, AddScore{TeamID: TeamA, PlayerID: "a1", ScoreType: Score2P})
	g = mustApply(t, r, g, AddScore{TeamID: TeamA, PlayerID: "a1", ScoreType: Score3P})
	g = mustApply(t, r, g, RemoveScore{EntryID: g.ScoreHistory[0].ID})

	if got := g.ScoreHistory[0].RunningScoreA; got != 3 {
		t.Errorf("running score A = %d, want 3", got)
	}
}

func TestEditScore(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	g = mustApply(t, r, g, AddScore{TeamID: TeamA, PlayerID: "a1", ScoreType: Score2P})
	g = mustApply(t, r, g, AddScore{TeamID: TeamA, PlayerID: "a2", ScoreType: Score2P})
	id := g.ScoreHistory[0].ID

	g = mustApply(t, r, g, EditScore{EntryID: id, PlayerID: "a3", ScoreType: Score3P})

	if got := player(t, g, "a1").Stats; got != (PlayerStats{}) {
		t.Errorf("a1 stats = %+v, want zero", got)
	}
	a3 := player(t, g, "a3").Stats
	if a3.Points != 3 || a3.ThreePointMade != 1 {
		t.Errorf("a3 stats = %+v, want one 3P make", a3)
	}
	e := g.ScoreHistory[0]
	if e.PlayerID != "a3" || e.PlayerNumber != player(t, g, "a3").Number || e.Points != 3 {
		t.Errorf("edited entry = %+v", e)
	}
	if g.ScoreHistory[1].RunningScoreA != 5 {
		t.Errorf("running score after edit = %d, want 5", g.ScoreHistory[1].RunningScoreA)
	}

	mustIgnore(t, r, g, EditScore{EntryID: id, PlayerID: "a3", ScoreType: Score3P})
	mustIgnore(t, r, g, EditScore{EntryID: id, PlayerID: "b1"})
	mustIgnore(t, r, g, EditScore{EntryID: "missing", PlayerID: "a1"})
}

func TestEditStat(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	g = mustApply(t, r, g, AddStat{TeamID: TeamB, PlayerID: "b1", StatType: StatAssist})
	g = mustApply(t, r, g, EditStat{EntryID: g.StatHistory[0].ID, PlayerID: "b2", StatType: StatSteal})

	if got := player(t, g, "b1").Stats.Assists; got != 0 {
		t.Errorf("b1 assists = %d, want 0", got)
	}
	if got := player(t, g, "b2").Stats.Steals; got != 1 {
		t.Errorf("b2 steals = %d, want 1", got)
	}
}

func TestConvertScoreToMissAndBack(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	g = mustApply(t, r, g, AddScore{TeamID: TeamA, PlayerID: "a1", ScoreType: Score3P})
	g = mustApply(t, r, g, AddScore{TeamID: TeamA, PlayerID: "a2", ScoreType: Score2P})
	scoreTS := g.ScoreHistory[0].Timestamp

	g = mustApply(t, r, g, ConvertScoreToMiss{EntryID: g.ScoreHistory[0].ID})
	a1 := player(t, g, "a1").Stats
	if a1.Points != 0 || a1.ThreePointMade != 0 || a1.ThreePointAttempted != 1 {
		t.Fatalf("after miss conversion a1 = %+v, want one 3P attempt", a1)
	}
	if len(g.StatHistory) != 1 || g.StatHistory[0].StatType != Stat3PA || g.StatHistory[0].Timestamp != scoreTS {
		t.Fatalf("stat log = %+v, want one 3PA at %d", g.StatHistory, scoreTS)
	}
	if g.ScoreHistory[0].RunningScoreA != 2 {
		t.Errorf("running score A = %d, want 2", g.ScoreHistory[0].RunningScoreA)
	}

	g = mustApply(t, r, g, ConvertMissToScore{EntryID: g.StatHistory[0].ID})
	a1 = player(t, g, "a1").Stats
	if a1.Points != 3 || a1.ThreePointMade != 1 || a1.ThreePointAttempted != 1 {
		t.Fatalf("after score conversion a1 = %+v, want one 3P make", a1)
	}
	if len(g.ScoreHistory) != 2 || g.ScoreHistory[0].PlayerID != "a1" {
		t.Fatalf("score log = %+v, want a1 entry restored first", g.ScoreHistory)
	}
	if g.ScoreHistory[0].RunningScoreA != 3 || g.ScoreHistory[1].RunningScoreA != 5 {
		t.Errorf("running scores = %d, %d, want 3, 5", g.ScoreHistory[0].RunningScoreA, g.ScoreHistory[1].RunningScoreA)
	}
}

func TestConvertMissToScoreRejectsNonMiss(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	g = mustApply(t, r, g, AddStat{TeamID: TeamA, PlayerID: "a1", StatType: StatAssist})
	mustIgnore(t, r, g, ConvertMissToScore{EntryID: g.StatHistory[0].ID})
}

func TestPhaseTransitions(t *testing.T) {
	tests := []struct {
		from   Phase
		action Action
		want   Phase
		ok     bool
	}{
		{PhaseSetup, StartGame{}, PhasePlaying, true},
		{PhaseSetup, PauseGame{}, PhaseSetup, false},
		{PhaseSetup, EndQuarter{}, PhaseSetup, false},
		{PhaseSetup, EndGame{}, PhaseSetup, false},
		{PhasePlaying, PauseGame{}, PhasePaused, true},
		{PhasePlaying, ResumeGame{}, PhasePlaying, false},
		{PhasePlaying, StartGame{}, PhasePlaying, false},
		{PhasePlaying, EndQuarter{}, PhaseQuarterEnd, true},
		{PhasePlaying, EndGame{}, PhaseFinished, true},
		{PhasePaused, ResumeGame{}, PhasePlaying, true},
		{PhasePaused, EndQuarter{}, PhaseQuarterEnd, true},
		{PhaseQuarterEnd, StartGame{}, PhasePlaying, true},
		{PhaseQuarterEnd, PauseGame{}, PhaseQuarterEnd, false},
		{PhaseQuarterEnd, EndGame{}, PhaseFinished, true},
		{PhaseFinished, StartGame{}, PhaseFinished, false},
		{PhaseFinished, EndGame{}, PhaseFinished, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.from, tt.action.Type()), func(t *testing.T) {
			r := testReducer()
			g := r.Initial()
			g.Phase = tt.from
			g.CurrentQuarter = 2
			next, changed := r.Reduce(g, tt.action)
			if changed != tt.ok {
				t.Fatalf("changed = %v, want %v", changed, tt.ok)
			}
			if next.Phase != tt.want {
				t.Errorf("phase = %s, want %s", next.Phase, tt.want)
			}
		})
	}
}

func TestQuarterProgression(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	for q := 1; q < Quarters; q++ {
		g = mustApply(t, r, g, EndQuarter{})
		if g.CurrentQuarter != q+1 || g.Phase != PhaseQuarterEnd {
			t.Fatalf("after Q%d end: quarter %d phase %s", q, g.CurrentQuarter, g.Phase)
		}
		g = mustApply(t, r, g, StartGame{})
	}
	g = mustApply(t, r, g, EndQuarter{})
	if g.CurrentQuarter != Quarters+1 || g.Phase != PhaseFinished {
		t.Fatalf("after Q4 end: quarter %d phase %s, want 5 finished", g.CurrentQuarter, g.Phase)
	}
	if g.EndTime == 0 {
		t.Error("end time not set")
	}
	// Late corrections land in the last quarter.
	g = mustApply(t, r, g, AddScore{TeamID: TeamA, PlayerID: "a1", ScoreType: Score2P})
	if q := g.ScoreHistory[0].Quarter; q != Quarters {
		t.Errorf("entry quarter = %d, want %d", q, Quarters)
	}
}

func TestStartGameMarksStarters(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	if got := player(t, g, "a1").QuartersPlayed[0]; got != QuarterStarter {
		t.Errorf("a1 Q1 = %s, want starter", got)
	}
	if got := player(t, g, "a6").QuartersPlayed[0]; got != QuarterNone {
		t.Errorf("a6 Q1 = %s, want none", got)
	}
	if g.StartTime == 0 {
		t.Error("start time not set")
	}
}

func TestSubstitutionQuarterPlay(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)

	g = mustApply(t, r, g, SubstitutePlayer{TeamID: TeamA, PlayerOutID: "a1", PlayerInID: "a6"})
	if player(t, g, "a1").IsOnCourt || !player(t, g, "a6").IsOnCourt {
		t.Fatal("substitution did not swap court flags")
	}
	if got := player(t, g, "a6").QuartersPlayed[0]; got != QuarterSub {
		t.Errorf("a6 Q1 = %s, want sub", got)
	}

	g = mustApply(t, r, g, SubstitutePlayer{TeamID: TeamA, PlayerOutID: "a6", PlayerInID: "a1"})
	if got := player(t, g, "a1").QuartersPlayed[0]; got != QuarterBoth {
		t.Errorf("a1 Q1 = %s, want both", got)
	}

	mustIgnore(t, r, g, SubstitutePlayer{TeamID: TeamA, PlayerOutID: "a7", PlayerInID: "a8"})
	mustIgnore(t, r, g, SubstitutePlayer{TeamID: TeamA, PlayerOutID: "a2", PlayerInID: "a3"})
	mustIgnore(t, r, g, SubstitutePlayer{TeamID: TeamA, PlayerOutID: "a2", PlayerInID: "b7"})
}

func TestSubstitutionDuringSetupDoesNotMarkQuarters(t *testing.T) {
	r := testReducer()
	g := r.Initial()
	g = mustApply(t, r, g, SetTeams{TeamA: roster(TeamA, "Tigers", 8), TeamB: roster(TeamB, "Lions", 8)})
	g = mustApply(t, r, g, SubstitutePlayer{TeamID: TeamA, PlayerOutID: "a1", PlayerInID: "a6"})
	if got := player(t, g, "a6").QuartersPlayed[0]; got != QuarterNone {
		t.Errorf("a6 Q1 = %s, want none", got)
	}
}

func TestAddFoulWithFreeThrows(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	g = mustApply(t, r, g, AddFoulWithFreeThrows{
		AddFoul: AddFoul{TeamID: TeamA, PlayerID: "a1", FoulType: FoulPersonal},
		FreeThrows: FreeThrows{
			ShotSituation:    Shot2P,
			FreeThrowCount:   2,
			FreeThrowResults: []bool{true, false},
			ShooterPlayerID:  "b1",
		},
	})

	if g.TeamB.Score() != 1 {
		t.Errorf("team B score = %d, want 1", g.TeamB.Score())
	}
	b1 := player(t, g, "b1").Stats
	if b1.FreeThrowMade != 1 || b1.FreeThrowAttempted != 2 {
		t.Errorf("b1 free throws = %d/%d, want 1/2", b1.FreeThrowMade, b1.FreeThrowAttempted)
	}
	if len(g.ScoreHistory) != 1 || len(g.StatHistory) != 1 || g.StatHistory[0].StatType != StatFTA {
		t.Errorf("logs = %d scores, %d stats, want 1 FT and 1 FTA", len(g.ScoreHistory), len(g.StatHistory))
	}
	fouls := player(t, g, "a1").Fouls
	if len(fouls) != 1 || fouls[0].FreeThrows != 2 {
		t.Errorf("a1 fouls = %+v, want one with 2 free throws", fouls)
	}
	e := g.FoulHistory[0]
	if e.ShooterTeamID != TeamB || len(e.FreeThrowEntryIDs) != 2 {
		t.Errorf("foul entry = %+v", e)
	}
	if g.ScoreHistory[0].Timestamp != e.Timestamp || g.StatHistory[0].Timestamp != e.Timestamp {
		t.Error("free-throw entries not stamped with the foul's time")
	}
}

func TestFreeThrowsThenScoreKeepRunningTotals(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	g = mustApply(t, r, g, AddFoulWithFreeThrows{
		AddFoul: AddFoul{TeamID: TeamA, PlayerID: "a1", FoulType: FoulPersonal},
		FreeThrows: FreeThrows{
			ShotSituation:    Shot3P,
			FreeThrowCount:   3,
			FreeThrowResults: []bool{true, true, true},
			ShooterPlayerID:  "b1",
		},
	})
	g = mustApply(t, r, g, AddScore{TeamID: TeamB, PlayerID: "b2", ScoreType: Score3P})

	assertRunningTotals(t, g.ScoreHistory)
	last := g.ScoreHistory[len(g.ScoreHistory)-1]
	if last.ScoreType != Score3P || last.RunningScoreB != 6 {
		t.Errorf("last entry = %s at %d, want 3P at 6", last.ScoreType, last.RunningScoreB)
	}
}

// assertRunningTotals checks that the cached totals equal a fresh recompute
// and never decrease when the log is walked in timestamp order.
func assertRunningTotals(t *testing.T, log []ScoreEntry) {
	t.Helper()
	if want := RecomputeRunningScores(log); !reflect.DeepEqual(log, want) {
		t.Errorf("cached running scores differ from recompute:\n got %+v\nwant %+v", log, want)
	}
	ordered := slices.Clone(log)
	slices.SortStableFunc(ordered, func(a, b ScoreEntry) int { return cmp.Compare(a.Timestamp, b.Timestamp) })
	for i := 1; i < len(ordered); i++ {
		prev, cur := ordered[i-1], ordered[i]
		if cur.RunningScoreA < prev.RunningScoreA || cur.RunningScoreB < prev.RunningScoreB {
			t.Errorf("running score drops at %s: %d-%d after %d-%d",
				cur.ID, cur.RunningScoreA, cur.RunningScoreB, prev.RunningScoreA, prev.RunningScoreB)
		}
	}
}

func TestAddFoulWithFreeThrowsUnknownShooterIsNoop(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	mustIgnore(t, r, g, AddFoulWithFreeThrows{
		AddFoul:    AddFoul{TeamID: TeamA, PlayerID: "a1", FoulType: FoulPersonal},
		FreeThrows: FreeThrows{FreeThrowCount: 1, FreeThrowResults: []bool{true}, ShooterPlayerID: "nobody"},
	})
}

func TestTimeout(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	g = mustApply(t, r, g, AddTimeout{TeamID: TeamB, ElapsedMinutes: 6})
	want := []Timeout{{Quarter: 1, ElapsedMinutes: 6}}
	if !reflect.DeepEqual(g.TeamB.Timeouts, want) {
		t.Errorf("timeouts = %+v, want %+v", g.TeamB.Timeouts, want)
	}
}

func TestStaleReferencesAreNoops(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	for _, a := range []Action{
		RemoveScore{EntryID: "missing"},
		RemoveStat{EntryID: "missing"},
		RemoveFoul{EntryID: "missing"},
		ConvertScoreToMiss{EntryID: "missing"},
		ConvertMissToScore{EntryID: "missing"},
		ResolvePendingAction{PendingID: "missing", PlayerID: "a1"},
		ResolvePendingActionUnknown{PendingID: "missing"},
		RemovePendingAction{PendingID: "missing"},
		UpdatePendingActionCandidates{PendingID: "missing"},
		AddScore{TeamID: TeamA, PlayerID: "b1", ScoreType: Score2P},
		AddScore{TeamID: "C", PlayerID: "a1", ScoreType: Score2P},
		AddScore{TeamID: TeamA, PlayerID: "a1", ScoreType: "4P"},
		AddStat{TeamID: TeamA, PlayerID: "a1", StatType: "DUNK"},
		AddFoul{TeamID: TeamA, PlayerID: "a1", FoulType: "X"},
		SelectPlayer{TeamID: TeamB, PlayerID: "a1"},
	} {
		t.Run(string(a.Type()), func(t *testing.T) {
			mustIgnore(t, r, g, a)
		})
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	g = mustApply(t, r, g, AddScore{TeamID: TeamA, PlayerID: "a1", ScoreType: Score2P})
	snapshot := g.Clone()

	next := mustApply(t, r, g, AddFoulWithFreeThrows{
		AddFoul:    AddFoul{TeamID: TeamB, PlayerID: "b1", FoulType: FoulUnsportsmanlike},
		FreeThrows: FreeThrows{FreeThrowCount: 2, FreeThrowResults: []bool{true, true}, ShooterPlayerID: "a1"},
	})
	next = mustApply(t, r, next, RemoveScore{EntryID: g.ScoreHistory[0].ID})

	if !reflect.DeepEqual(g, snapshot) {
		t.Fatal("reduce mutated its input snapshot")
	}
	if next.TeamA.Score() != 2 {
		t.Errorf("next score = %d, want 2", next.TeamA.Score())
	}
}

func TestSetTeamsOnlyDuringSetup(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	mustIgnore(t, r, g, SetTeams{TeamA: roster(TeamA, "X", 5), TeamB: roster(TeamB, "Y", 5)})
}

func TestResetAndRestore(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	g = mustApply(t, r, g, AddScore{TeamID: TeamA, PlayerID: "a1", ScoreType: Score2P})
	saved := g

	g = mustApply(t, r, g, ResetGame{})
	if g.Phase != PhaseSetup || len(g.ScoreHistory) != 0 || g.ID == saved.ID {
		t.Fatalf("reset game = phase %s, %d scores, id %s", g.Phase, len(g.ScoreHistory), g.ID)
	}

	g = mustApply(t, r, g, RestoreGame{Game: saved})
	if g.ID != saved.ID || g.TeamA.Score() != 2 || g.Phase != PhasePlaying {
		t.Errorf("restored game = id %s score %d phase %s", g.ID, g.TeamA.Score(), g.Phase)
	}
}

func TestRestoreNormalizesMissingFields(t *testing.T) {
	r := testReducer()
	g := mustApply(t, r, r.Initial(), RestoreGame{Game: Game{ID: "old"}})
	if g.Phase != PhaseSetup || g.CurrentQuarter != 1 {
		t.Errorf("phase %s quarter %d, want setup 1", g.Phase, g.CurrentQuarter)
	}
	if g.ScoreHistory == nil || g.PendingActions == nil || g.TeamA.Players == nil {
		t.Error("restored game has nil collections")
	}
}
