package minibasket

import (
	"reflect"
	"testing"
)

func TestPendingResolutionMatchesDirectAction(t *testing.T) {
	tests := []struct {
		name    string
		pending AddPendingAction
		direct  Action
	}{
		{
			name:    "score",
			pending: AddPendingAction{ActionType: PendingScore, Value: string(Score3P), TeamID: TeamA},
			direct:  AddScore{TeamID: TeamA, PlayerID: "a2", ScoreType: Score3P},
		},
		{
			name:    "stat",
			pending: AddPendingAction{ActionType: PendingStat, Value: string(StatDefensiveRebound), TeamID: TeamA},
			direct:  AddStat{TeamID: TeamA, PlayerID: "a2", StatType: StatDefensiveRebound},
		},
		{
			name:    "foul",
			pending: AddPendingAction{ActionType: PendingFoul, Value: string(FoulPersonal), TeamID: TeamA},
			direct:  AddFoul{TeamID: TeamA, PlayerID: "a2", FoulType: FoulPersonal},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testReducer()
			base := startedGame(t, r)

			direct := mustApply(t, r, base, tt.direct)

			viaPending := mustApply(t, r, base, tt.pending)
			if len(viaPending.PendingActions) != 1 {
				t.Fatalf("pending queue len = %d, want 1", len(viaPending.PendingActions))
			}
			viaPending = mustApply(t, r, viaPending, ResolvePendingAction{
				PendingID: viaPending.PendingActions[0].ID,
				PlayerID:  "a2",
			})

			if len(viaPending.PendingActions) != 0 {
				t.Errorf("pending queue len after resolve = %d, want 0", len(viaPending.PendingActions))
			}
			got, want := player(t, viaPending, "a2"), player(t, direct, "a2")
			if got.Stats != want.Stats {
				t.Errorf("stats = %+v, want %+v", got.Stats, want.Stats)
			}
			if len(got.Fouls) != len(want.Fouls) {
				t.Errorf("fouls = %d, want %d", len(got.Fouls), len(want.Fouls))
			}
			if viaPending.TeamA.TeamFouls != direct.TeamA.TeamFouls {
				t.Errorf("team fouls = %v, want %v", viaPending.TeamA.TeamFouls, direct.TeamA.TeamFouls)
			}
			if len(viaPending.ScoreHistory) != len(direct.ScoreHistory) ||
				len(viaPending.StatHistory) != len(direct.StatHistory) ||
				len(viaPending.FoulHistory) != len(direct.FoulHistory) {
				t.Error("log lengths differ between pending and direct paths")
			}
		})
	}
}

func TestPendingUsesCaptureQuarterAndTime(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	g = mustApply(t, r, g, AddPendingAction{ActionType: PendingScore, Value: string(Score2P), TeamID: TeamB})
	p := g.PendingActions[0]

	g = mustApply(t, r, g, EndQuarter{})
	g = mustApply(t, r, g, StartGame{})
	g = mustApply(t, r, g, ResolvePendingAction{PendingID: p.ID, PlayerID: "b4"})

	e := g.ScoreHistory[0]
	if e.Quarter != 1 || e.Timestamp != p.Timestamp {
		t.Errorf("entry quarter %d ts %d, want 1 and %d", e.Quarter, e.Timestamp, p.Timestamp)
	}
}

func TestBackdatedResolutionKeepsRunningTotals(t *testing.T) {
	tests := []struct {
		name    string
		pending AddPendingAction
		resolve func(id string) Action
		wantA   int
	}{
		{
			name:    "score",
			pending: AddPendingAction{ActionType: PendingScore, Value: string(Score2P), TeamID: TeamA},
			resolve: func(id string) Action { return ResolvePendingAction{PendingID: id, PlayerID: "a1"} },
			wantA:   4,
		},
		{
			name:    "foul with free throws",
			pending: AddPendingAction{ActionType: PendingFoul, Value: string(FoulPersonal), TeamID: TeamB},
			resolve: func(id string) Action {
				return ResolvePendingActionWithFreeThrows{
					PendingID: id,
					PlayerID:  "b1",
					FreeThrows: FreeThrows{
						ShotSituation:    Shot2P,
						FreeThrowCount:   2,
						FreeThrowResults: []bool{true, true},
						ShooterPlayerID:  "a3",
					},
				}
			},
			wantA: 4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testReducer()
			g := startedGame(t, r)
			g = mustApply(t, r, g, tt.pending)
			p := g.PendingActions[0]

			g = mustApply(t, r, g, AddScore{TeamID: TeamA, PlayerID: "a2", ScoreType: Score2P})
			g = mustApply(t, r, g, tt.resolve(p.ID))

			assertRunningTotals(t, g.ScoreHistory)
			if g.ScoreHistory[0].Timestamp != p.Timestamp {
				t.Errorf("first entry ts = %d, want the capture time %d", g.ScoreHistory[0].Timestamp, p.Timestamp)
			}
			last := g.ScoreHistory[len(g.ScoreHistory)-1]
			if last.PlayerID != "a2" || last.RunningScoreA != tt.wantA {
				t.Errorf("last entry = %s at %d, want a2 at %d", last.PlayerID, last.RunningScoreA, tt.wantA)
			}
		})
	}
}

func TestBackdatedStatIsOrderedByCaptureTime(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	g = mustApply(t, r, g, AddPendingAction{ActionType: PendingStat, Value: string(StatSteal), TeamID: TeamA})
	p := g.PendingActions[0]
	g = mustApply(t, r, g, AddStat{TeamID: TeamA, PlayerID: "a2", StatType: StatAssist})
	g = mustApply(t, r, g, ResolvePendingAction{PendingID: p.ID, PlayerID: "a1"})

	if len(g.StatHistory) != 2 || g.StatHistory[0].Timestamp != p.Timestamp {
		t.Errorf("stat log = %+v, want the steal first", g.StatHistory)
	}
}

func TestPendingSnapshotIsFrozen(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	g = mustApply(t, r, g, AddPendingAction{ActionType: PendingStat, Value: string(StatSteal), TeamID: TeamA})
	before := g.PendingActions[0].OnCourtPlayers
	if len(before) != 5 {
		t.Fatalf("snapshot size = %d, want 5", len(before))
	}

	g = mustApply(t, r, g, SubstitutePlayer{TeamID: TeamA, PlayerOutID: "a1", PlayerInID: "a6"})
	if !reflect.DeepEqual(g.PendingActions[0].OnCourtPlayers, before) {
		t.Error("snapshot changed after substitution")
	}

	// The substituted-out player can still be credited.
	g = mustApply(t, r, g, ResolvePendingAction{PendingID: g.PendingActions[0].ID, PlayerID: "a1"})
	if player(t, g, "a1").Stats.Steals != 1 {
		t.Error("steal not credited to substituted-out player")
	}
}

func TestPendingExplicitSnapshot(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	snap := []PlayerSnapshot{{ID: "a7", Number: 10, Name: "Player a7"}}
	g = mustApply(t, r, g, AddPendingAction{
		ActionType:     PendingFoul,
		Value:          string(FoulTechnical),
		TeamID:         TeamA,
		Quarter:        1,
		OnCourtPlayers: snap,
	})
	if !reflect.DeepEqual(g.PendingActions[0].OnCourtPlayers, snap) {
		t.Errorf("snapshot = %+v, want %+v", g.PendingActions[0].OnCourtPlayers, snap)
	}
	if g.PendingActions[0].CandidatePlayerIDs == nil {
		t.Error("candidate list is nil")
	}
}

func TestAddPendingRejectsInvalidValues(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	for _, a := range []AddPendingAction{
		{ActionType: PendingScore, Value: "AST", TeamID: TeamA},
		{ActionType: PendingStat, Value: "2P", TeamID: TeamA},
		{ActionType: PendingFoul, Value: "Z", TeamID: TeamA},
		{ActionType: "BLOCK", Value: "BLK", TeamID: TeamA},
		{ActionType: PendingScore, Value: "2P", TeamID: "C"},
		{ActionType: PendingScore, Value: "2P", TeamID: TeamA, Quarter: 5},
	} {
		mustIgnore(t, r, g, a)
	}
}

func TestResolveUnknown(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	g = mustApply(t, r, g, AddPendingAction{ActionType: PendingStat, Value: string(StatOffensiveRebound), TeamID: TeamB})
	before := g.TeamB.clone()

	g = mustApply(t, r, g, ResolvePendingActionUnknown{PendingID: g.PendingActions[0].ID})

	if len(g.StatHistory) != 1 {
		t.Fatalf("stat log len = %d, want 1", len(g.StatHistory))
	}
	e := g.StatHistory[0]
	if e.PlayerID != PlayerUnknown || e.PlayerNumber != NoPlayerNumber || e.StatType != StatOffensiveRebound {
		t.Errorf("entry = %+v, want unknown OREB", e)
	}
	for i, p := range g.TeamB.Players {
		if p.Stats != before.Players[i].Stats {
			t.Errorf("%s stats changed: %+v", p.ID, p.Stats)
		}
	}

	g = mustApply(t, r, g, RemoveStat{EntryID: e.ID})
	if len(g.StatHistory) != 0 {
		t.Errorf("stat log len = %d, want 0", len(g.StatHistory))
	}
}

func TestResolveUnknownOnlyForStats(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	g = mustApply(t, r, g, AddPendingAction{ActionType: PendingScore, Value: string(Score2P), TeamID: TeamA})
	mustIgnore(t, r, g, ResolvePendingActionUnknown{PendingID: g.PendingActions[0].ID})
}

func TestConvertUnknownMissIsNoop(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	g = mustApply(t, r, g, AddPendingAction{ActionType: PendingStat, Value: string(Stat2PA), TeamID: TeamA})
	g = mustApply(t, r, g, ResolvePendingActionUnknown{PendingID: g.PendingActions[0].ID})
	mustIgnore(t, r, g, ConvertMissToScore{EntryID: g.StatHistory[0].ID})
}

func TestResolveWithFoulType(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	g = mustApply(t, r, g, AddPendingAction{ActionType: PendingFoul, Value: string(FoulPersonal), TeamID: TeamA})
	id := g.PendingActions[0].ID

	mustIgnore(t, r, g, ResolvePendingActionWithFoulType{PendingID: id, PlayerID: "a3", FoulType: "?"})
	g = mustApply(t, r, g, ResolvePendingActionWithFoulType{PendingID: id, PlayerID: "a3", FoulType: FoulUnsportsmanlike})

	fouls := player(t, g, "a3").Fouls
	if len(fouls) != 1 || fouls[0].Type != FoulUnsportsmanlike {
		t.Errorf("fouls = %+v, want one U", fouls)
	}
}

func TestResolveFoulToCoach(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	g = mustApply(t, r, g, AddPendingAction{ActionType: PendingFoul, Value: string(FoulCoachTechnical), TeamID: TeamB})
	g = mustApply(t, r, g, ResolvePendingAction{PendingID: g.PendingActions[0].ID, PlayerID: PlayerCoach})

	if len(g.TeamB.CoachFouls) != 1 || g.TeamB.TeamFouls[0] != 0 {
		t.Errorf("coach fouls = %d team fouls = %d, want 1 and 0", len(g.TeamB.CoachFouls), g.TeamB.TeamFouls[0])
	}
}

func TestResolveWithFreeThrows(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	g = mustApply(t, r, g, AddPendingAction{ActionType: PendingFoul, Value: string(FoulPersonal), TeamID: TeamB})
	id := g.PendingActions[0].ID

	g = mustApply(t, r, g, ResolvePendingActionWithFreeThrows{
		PendingID: id,
		PlayerID:  "b2",
		FreeThrows: FreeThrows{
			ShotSituation:    Shot3P,
			FreeThrowCount:   3,
			FreeThrowResults: []bool{true, true, false},
			ShooterTeamID:    TeamA,
			ShooterPlayerID:  "a5",
		},
	})

	if g.TeamA.Score() != 2 {
		t.Errorf("team A score = %d, want 2", g.TeamA.Score())
	}
	a5 := player(t, g, "a5").Stats
	if a5.FreeThrowMade != 2 || a5.FreeThrowAttempted != 3 {
		t.Errorf("a5 free throws = %d/%d, want 2/3", a5.FreeThrowMade, a5.FreeThrowAttempted)
	}
	if f := player(t, g, "b2").Fouls; len(f) != 1 || f[0].Type != FoulPersonal {
		t.Errorf("b2 fouls = %+v, want one P", f)
	}
	if len(g.PendingActions) != 0 {
		t.Errorf("pending queue len = %d, want 0", len(g.PendingActions))
	}
}

func TestUpdateCandidatesAndRemove(t *testing.T) {
	r := testReducer()
	g := startedGame(t, r)
	g = mustApply(t, r, g, AddPendingAction{ActionType: PendingStat, Value: string(StatAssist), TeamID: TeamA})
	id := g.PendingActions[0].ID

	g = mustApply(t, r, g, UpdatePendingActionCandidates{PendingID: id, CandidatePlayerIDs: []string{"a1", "a2"}})
	if got := g.PendingActions[0].CandidatePlayerIDs; !reflect.DeepEqual(got, []string{"a1", "a2"}) {
		t.Errorf("candidates = %v", got)
	}
	g = mustApply(t, r, g, UpdatePendingActionCandidates{PendingID: id})
	if got := g.PendingActions[0].CandidatePlayerIDs; got == nil || len(got) != 0 {
		t.Errorf("candidates = %v, want empty", got)
	}

	statsBefore := g.TeamA.clone()
	g = mustApply(t, r, g, RemovePendingAction{PendingID: id})
	if len(g.PendingActions) != 0 || len(g.StatHistory) != 0 {
		t.Error("remove pending left residue")
	}
	if !reflect.DeepEqual(g.TeamA, statsBefore) {
		t.Error("remove pending changed the team")
	}
}
