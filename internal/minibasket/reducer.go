package minibasket

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Reducer applies actions to a Game. It is stateless apart from its clock, id
// source and policy switches, so one Reducer can serve any number of games.
type Reducer struct {
	now               func() time.Time
	newID             func() string
	recomputeOnRemove bool
}

type Option func(*Reducer)

func WithClock(now func() time.Time) Option {
	return func(r *Reducer) { r.now = now }
}

func WithIDs(newID func() string) Option {
	return func(r *Reducer) { r.newID = newID }
}

// WithRecomputeOnRemove makes REMOVE_SCORE, REMOVE_STAT and REMOVE_FOUL
// recompute the cached running scores. Off by default: removals leave the
// remaining entries' running scores untouched.
func WithRecomputeOnRemove(on bool) Option {
	return func(r *Reducer) { r.recomputeOnRemove = on }
}

func NewReducer(opts ...Option) *Reducer {
	r := &Reducer{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reducer) millis() int64 { return r.now().UnixMilli() }

// Initial returns a fresh game.
func (r *Reducer) Initial() Game {
	return NewGame(r.newID(), r.millis())
}

// Reduce applies a to g and returns the next snapshot. When the action does
// not apply (stale reference, wrong phase, invalid combination) the original
// snapshot is returned unchanged with changed == false. g is never mutated.
func (r *Reducer) Reduce(g Game, a Action) (next Game, changed bool) {
	next = g.Clone()
	if !r.apply(&next, a) {
		return g, false
	}
	next.UpdatedAt = r.millis()
	return next, true
}

func (r *Reducer) apply(g *Game, a Action) bool {
	switch a := a.(type) {
	case SetTeams:
		return r.setTeams(g, a)
	case StartGame:
		return r.startGame(g)
	case PauseGame:
		return transition(g, PhasePlaying, PhasePaused)
	case ResumeGame:
		return transition(g, PhasePaused, PhasePlaying)
	case EndQuarter:
		return r.endQuarter(g)
	case EndGame:
		return r.endGame(g)
	case ResetGame:
		*g = r.Initial()
		return true
	case RestoreGame:
		*g = restore(a.Game.Clone())
		return true
	case AddScore:
		if _, ok := r.applyScore(g, a.TeamID, a.PlayerID, a.ScoreType, g.PlayingQuarter(), r.millis()); !ok {
			return false
		}
		clearSelection(g)
		return true
	case AddStat:
		if _, ok := r.applyStat(g, a.TeamID, a.PlayerID, a.StatType, g.PlayingQuarter(), r.millis()); !ok {
			return false
		}
		clearSelection(g)
		return true
	case AddFoul:
		return r.addFoul(g, a, nil, g.PlayingQuarter(), r.millis())
	case AddFoulWithFreeThrows:
		return r.addFoul(g, a.AddFoul, &a.FreeThrows, g.PlayingQuarter(), r.millis())
	case AddTimeout:
		return addTimeout(g, a)
	case SubstitutePlayer:
		return substitute(g, a)
	case SelectPlayer:
		return selectPlayer(g, a)
	case ClearSelection:
		clearSelection(g)
		return true
	case RemoveScore:
		return r.removeScore(g, a.EntryID)
	case RemoveStat:
		return r.removeStat(g, a.EntryID)
	case RemoveFoul:
		return r.removeFoul(g, a.EntryID)
	case EditScore:
		return editScore(g, a)
	case EditStat:
		return editStat(g, a)
	case ConvertScoreToMiss:
		return r.convertScoreToMiss(g, a.EntryID)
	case ConvertMissToScore:
		return r.convertMissToScore(g, a.EntryID)
	case AddPendingAction:
		return r.addPending(g, a)
	case ResolvePendingAction:
		return r.resolvePending(g, a)
	case ResolvePendingActionWithFoulType:
		return r.resolvePendingWithFoulType(g, a)
	case ResolvePendingActionWithFreeThrows:
		return r.resolvePendingWithFreeThrows(g, a)
	case ResolvePendingActionUnknown:
		return r.resolvePendingUnknown(g, a)
	case UpdatePendingActionCandidates:
		return updateCandidates(g, a)
	case RemovePendingAction:
		return removePending(g, a.PendingID)
	}
	panic(fmt.Sprintf("minibasket: unhandled action %T", a))
}

// Phase transitions

func transition(g *Game, from, to Phase) bool {
	if g.Phase != from {
		return false
	}
	g.Phase = to
	return true
}

func (r *Reducer) setTeams(g *Game, a SetTeams) bool {
	if g.Phase != PhaseSetup {
		return false
	}
	g.TeamA = normalizeTeam(a.TeamA.clone(), TeamA)
	g.TeamB = normalizeTeam(a.TeamB.clone(), TeamB)
	clearSelection(g)
	return true
}

func (r *Reducer) startGame(g *Game) bool {
	if g.Phase != PhaseSetup && g.Phase != PhaseQuarterEnd {
		return false
	}
	q := g.PlayingQuarter()
	for _, t := range []*Team{&g.TeamA, &g.TeamB} {
		for i := range t.Players {
			p := &t.Players[i]
			if p.IsOnCourt {
				p.QuartersPlayed[q-1] = markStarter(p.QuartersPlayed[q-1])
			}
		}
	}
	if g.StartTime == 0 {
		g.StartTime = r.millis()
	}
	g.Phase = PhasePlaying
	return true
}

func (r *Reducer) endQuarter(g *Game) bool {
	if g.Phase != PhasePlaying && g.Phase != PhasePaused {
		return false
	}
	if g.CurrentQuarter >= Quarters {
		g.CurrentQuarter = Quarters + 1
		g.Phase = PhaseFinished
		g.EndTime = r.millis()
		return true
	}
	g.CurrentQuarter++
	g.Phase = PhaseQuarterEnd
	return true
}

func (r *Reducer) endGame(g *Game) bool {
	switch g.Phase {
	case PhasePlaying, PhasePaused, PhaseQuarterEnd:
	default:
		return false
	}
	g.Phase = PhaseFinished
	g.EndTime = r.millis()
	return true
}

func restore(g Game) Game {
	g.TeamA = normalizeTeam(g.TeamA, TeamA)
	g.TeamB = normalizeTeam(g.TeamB, TeamB)
	if g.Phase == "" {
		g.Phase = PhaseSetup
	}
	if g.CurrentQuarter < 1 {
		g.CurrentQuarter = 1
	}
	if g.ScoreHistory == nil {
		g.ScoreHistory = []ScoreEntry{}
	}
	if g.StatHistory == nil {
		g.StatHistory = []StatEntry{}
	}
	if g.FoulHistory == nil {
		g.FoulHistory = []FoulEntry{}
	}
	if g.PendingActions == nil {
		g.PendingActions = []PendingAction{}
	}
	return g
}

func markStarter(q QuarterPlay) QuarterPlay {
	if q == QuarterSub || q == QuarterBoth {
		return QuarterBoth
	}
	return QuarterStarter
}

func markSub(q QuarterPlay) QuarterPlay {
	if q == QuarterStarter || q == QuarterBoth {
		return QuarterBoth
	}
	return QuarterSub
}

// Roster and selection

func addTimeout(g *Game, a AddTimeout) bool {
	t := g.Team(a.TeamID)
	if t == nil {
		return false
	}
	t.Timeouts = append(t.Timeouts, Timeout{Quarter: g.PlayingQuarter(), ElapsedMinutes: a.ElapsedMinutes})
	return true
}

func substitute(g *Game, a SubstitutePlayer) bool {
	t := g.Team(a.TeamID)
	if t == nil || (a.PlayerInID == "" && a.PlayerOutID == "") || a.PlayerInID == a.PlayerOutID {
		return false
	}
	var out, in *Player
	if a.PlayerOutID != "" {
		if out = t.Player(a.PlayerOutID); out == nil || !out.IsOnCourt {
			return false
		}
	}
	if a.PlayerInID != "" {
		if in = t.Player(a.PlayerInID); in == nil || !in.CanEnter() {
			return false
		}
	}
	if out != nil {
		out.IsOnCourt = false
	}
	if in != nil {
		in.IsOnCourt = true
		if g.Phase == PhasePlaying || g.Phase == PhasePaused {
			q := g.PlayingQuarter()
			in.QuartersPlayed[q-1] = markSub(in.QuartersPlayed[q-1])
		}
	}
	return true
}

func selectPlayer(g *Game, a SelectPlayer) bool {
	t := g.Team(a.TeamID)
	if t == nil || t.Player(a.PlayerID) == nil {
		return false
	}
	g.SelectedTeamID = a.TeamID
	g.SelectedPlayerID = a.PlayerID
	return true
}

func clearSelection(g *Game) {
	g.SelectedPlayerID = ""
	g.SelectedTeamID = ""
}

// Forward path

func (r *Reducer) applyScore(g *Game, teamID TeamID, playerID string, st ScoreType, quarter int, ts int64) (ScoreEntry, bool) {
	t := g.Team(teamID)
	if t == nil {
		return ScoreEntry{}, false
	}
	p := t.Player(playerID)
	d, ok := scoreDelta(st)
	if p == nil || !ok {
		return ScoreEntry{}, false
	}
	p.Stats = p.Stats.Add(d)
	e := ScoreEntry{
		ID:            r.newID(),
		TeamID:        teamID,
		PlayerID:      p.ID,
		PlayerNumber:  p.Number,
		ScoreType:     st,
		Points:        st.Points(),
		Quarter:       quarter,
		Timestamp:     ts,
		RunningScoreA: g.TeamA.Score(),
		RunningScoreB: g.TeamB.Score(),
	}
	if n := len(g.ScoreHistory); n == 0 || g.ScoreHistory[n-1].Timestamp <= ts {
		g.ScoreHistory = append(g.ScoreHistory, e)
		return e, true
	}
	// Backdated entries (pending resolutions) change every later total.
	g.ScoreHistory = RecomputeRunningScores(insertScore(g.ScoreHistory, e))
	return e, true
}

func (r *Reducer) applyStat(g *Game, teamID TeamID, playerID string, st StatType, quarter int, ts int64) (StatEntry, bool) {
	t := g.Team(teamID)
	if t == nil {
		return StatEntry{}, false
	}
	p := t.Player(playerID)
	d, ok := statDelta(st)
	if p == nil || !ok {
		return StatEntry{}, false
	}
	p.Stats = p.Stats.Add(d)
	e := StatEntry{
		ID:           r.newID(),
		TeamID:       teamID,
		PlayerID:     p.ID,
		PlayerNumber: p.Number,
		StatType:     st,
		Quarter:      quarter,
		Timestamp:    ts,
	}
	g.StatHistory = insertStat(g.StatHistory, e)
	return e, true
}

// chargeFoul records the foul on the player or bench and returns the log
// entry for the caller to append.
func (r *Reducer) chargeFoul(g *Game, teamID TeamID, playerID string, ft FoulType, quarter int, ts int64, awarded int) (FoulEntry, bool) {
	t := g.Team(teamID)
	if t == nil || !IsKnownFoul(ft) {
		return FoulEntry{}, false
	}
	e := FoulEntry{
		ID:        r.newID(),
		TeamID:    teamID,
		FoulType:  ft,
		Quarter:   quarter,
		Timestamp: ts,
	}
	if IsBenchFoul(playerID) {
		if playerID == "" {
			playerID = PlayerCoach
			if ft == FoulBenchTechnical {
				playerID = PlayerBench
			}
		}
		t.CoachFouls = append(t.CoachFouls, CoachFoul{Type: ft, Quarter: quarter, PlayerID: playerID})
		e.PlayerID = playerID
		e.PlayerNumber = NoPlayerNumber
		e.IsCoachOrBench = true
		return e, true
	}
	p := t.Player(playerID)
	if p == nil {
		return FoulEntry{}, false
	}
	p.Fouls = append(p.Fouls, FoulRecord{Type: ft, Quarter: quarter, FreeThrows: awarded})
	t.TeamFouls[clampQuarter(quarter)-1]++
	e.PlayerID = p.ID
	e.PlayerNumber = p.Number
	return e, true
}

// addFoul charges the foul and, when ft is non-nil, records the free-throw
// sequence for the shooter in the same transition: one FT score per make and
// one FTA stat per miss, all stamped with the foul's time so they never
// straddle a later action.
func (r *Reducer) addFoul(g *Game, a AddFoul, ft *FreeThrows, quarter int, ts int64) bool {
	awarded := 0
	if ft != nil {
		awarded = ft.FreeThrowCount
		if awarded == 0 {
			awarded = len(ft.FreeThrowResults)
		}
	}
	e, ok := r.chargeFoul(g, a.TeamID, a.PlayerID, a.FoulType, quarter, ts, awarded)
	if !ok {
		return false
	}
	if ft != nil {
		if !r.shootFreeThrows(g, &e, *ft, a.TeamID, awarded, quarter, ts) {
			return false
		}
	}
	g.FoulHistory = append(g.FoulHistory, e)
	return true
}

func (r *Reducer) shootFreeThrows(g *Game, e *FoulEntry, ft FreeThrows, foulingTeam TeamID, awarded, quarter int, ts int64) bool {
	shooterTeam := ft.ShooterTeamID
	if shooterTeam == "" {
		shooterTeam = foulingTeam.Opponent()
	}
	e.ShotSituation = ft.ShotSituation
	e.FreeThrowCount = awarded
	e.FreeThrowResults = slices.Clone(ft.FreeThrowResults)
	e.ShooterTeamID = shooterTeam
	e.ShooterPlayerID = ft.ShooterPlayerID
	for _, made := range ft.FreeThrowResults {
		if made {
			s, ok := r.applyScore(g, shooterTeam, ft.ShooterPlayerID, ScoreFT, quarter, ts)
			if !ok {
				return false
			}
			e.FreeThrowEntryIDs = append(e.FreeThrowEntryIDs, s.ID)
			continue
		}
		s, ok := r.applyStat(g, shooterTeam, ft.ShooterPlayerID, StatFTA, quarter, ts)
		if !ok {
			return false
		}
		e.FreeThrowEntryIDs = append(e.FreeThrowEntryIDs, s.ID)
	}
	return true
}

// Reverse path

func (r *Reducer) removeScore(g *Game, id string) bool {
	i := slices.IndexFunc(g.ScoreHistory, func(e ScoreEntry) bool { return e.ID == id })
	if i < 0 {
		return false
	}
	e := g.ScoreHistory[i]
	if p := playerFor(g, e.TeamID, e.PlayerID); p != nil {
		d, _ := scoreDelta(e.ScoreType)
		p.Stats = p.Stats.Sub(d)
	}
	g.ScoreHistory = slices.Delete(g.ScoreHistory, i, i+1)
	if r.recomputeOnRemove {
		g.ScoreHistory = RecomputeRunningScores(g.ScoreHistory)
	}
	return true
}

func (r *Reducer) removeStat(g *Game, id string) bool {
	i := slices.IndexFunc(g.StatHistory, func(e StatEntry) bool { return e.ID == id })
	if i < 0 {
		return false
	}
	e := g.StatHistory[i]
	if p := playerFor(g, e.TeamID, e.PlayerID); p != nil {
		d, _ := statDelta(e.StatType)
		p.Stats = p.Stats.Sub(d)
	}
	g.StatHistory = slices.Delete(g.StatHistory, i, i+1)
	if r.recomputeOnRemove {
		g.ScoreHistory = RecomputeRunningScores(g.ScoreHistory)
	}
	return true
}

func (r *Reducer) removeFoul(g *Game, id string) bool {
	i := slices.IndexFunc(g.FoulHistory, func(e FoulEntry) bool { return e.ID == id })
	if i < 0 {
		return false
	}
	e := g.FoulHistory[i]
	if t := g.Team(e.TeamID); t != nil {
		if e.IsCoachOrBench {
			t.CoachFouls = removeCoachFoul(t.CoachFouls, e.FoulType, e.Quarter)
		} else {
			q := clampQuarter(e.Quarter) - 1
			t.TeamFouls[q] = max(0, t.TeamFouls[q]-1)
			if p := t.Player(e.PlayerID); p != nil {
				p.Fouls = removeFoulRecord(p.Fouls, e.FoulType, e.Quarter)
			}
		}
	}
	g.FoulHistory = slices.Delete(g.FoulHistory, i, i+1)
	if r.recomputeOnRemove {
		g.ScoreHistory = RecomputeRunningScores(g.ScoreHistory)
	}
	return true
}

// removeFoulRecord drops the latest foul of the given type, preferring one
// committed in the same quarter.
func removeFoulRecord(fouls []FoulRecord, ft FoulType, quarter int) []FoulRecord {
	idx := -1
	for i := len(fouls) - 1; i >= 0; i-- {
		if fouls[i].Type != ft {
			continue
		}
		if fouls[i].Quarter == quarter {
			idx = i
			break
		}
		if idx < 0 {
			idx = i
		}
	}
	if idx < 0 {
		return fouls
	}
	return slices.Delete(fouls, idx, idx+1)
}

func removeCoachFoul(fouls []CoachFoul, ft FoulType, quarter int) []CoachFoul {
	idx := -1
	for i := len(fouls) - 1; i >= 0; i-- {
		if fouls[i].Type != ft {
			continue
		}
		if fouls[i].Quarter == quarter {
			idx = i
			break
		}
		if idx < 0 {
			idx = i
		}
	}
	if idx < 0 {
		return fouls
	}
	return slices.Delete(fouls, idx, idx+1)
}

func playerFor(g *Game, teamID TeamID, playerID string) *Player {
	t := g.Team(teamID)
	if t == nil {
		return nil
	}
	return t.Player(playerID)
}

// Edit and conversion

// editScore moves the entry to another player or shot type in place. Running
// totals are always recomputed here, regardless of the remove option, since a
// changed point value shifts every later total.
func editScore(g *Game, a EditScore) bool {
	i := slices.IndexFunc(g.ScoreHistory, func(e ScoreEntry) bool { return e.ID == a.EntryID })
	if i < 0 {
		return false
	}
	e := &g.ScoreHistory[i]
	playerID, st := a.PlayerID, a.ScoreType
	if playerID == "" {
		playerID = e.PlayerID
	}
	if st == "" {
		st = e.ScoreType
	}
	if playerID == e.PlayerID && st == e.ScoreType {
		return false
	}
	newDelta, ok := scoreDelta(st)
	next := playerFor(g, e.TeamID, playerID)
	if !ok || next == nil {
		return false
	}
	if prev := playerFor(g, e.TeamID, e.PlayerID); prev != nil {
		oldDelta, _ := scoreDelta(e.ScoreType)
		prev.Stats = prev.Stats.Sub(oldDelta)
	}
	next.Stats = next.Stats.Add(newDelta)
	e.PlayerID = next.ID
	e.PlayerNumber = next.Number
	e.ScoreType = st
	e.Points = st.Points()
	g.ScoreHistory = RecomputeRunningScores(g.ScoreHistory)
	return true
}

func editStat(g *Game, a EditStat) bool {
	i := slices.IndexFunc(g.StatHistory, func(e StatEntry) bool { return e.ID == a.EntryID })
	if i < 0 {
		return false
	}
	e := &g.StatHistory[i]
	playerID, st := a.PlayerID, a.StatType
	if playerID == "" {
		playerID = e.PlayerID
	}
	if st == "" {
		st = e.StatType
	}
	if playerID == e.PlayerID && st == e.StatType {
		return false
	}
	newDelta, ok := statDelta(st)
	if !ok {
		return false
	}
	var next *Player
	if playerID != PlayerUnknown {
		if next = playerFor(g, e.TeamID, playerID); next == nil {
			return false
		}
	}
	if prev := playerFor(g, e.TeamID, e.PlayerID); prev != nil {
		oldDelta, _ := statDelta(e.StatType)
		prev.Stats = prev.Stats.Sub(oldDelta)
	}
	e.StatType = st
	if next == nil {
		e.PlayerID = PlayerUnknown
		e.PlayerNumber = NoPlayerNumber
		return true
	}
	next.Stats = next.Stats.Add(newDelta)
	e.PlayerID = next.ID
	e.PlayerNumber = next.Number
	return true
}

func (r *Reducer) convertScoreToMiss(g *Game, id string) bool {
	i := slices.IndexFunc(g.ScoreHistory, func(e ScoreEntry) bool { return e.ID == id })
	if i < 0 {
		return false
	}
	e := g.ScoreHistory[i]
	miss, ok := e.ScoreType.Miss()
	if !ok {
		return false
	}
	if p := playerFor(g, e.TeamID, e.PlayerID); p != nil {
		made, _ := scoreDelta(e.ScoreType)
		attempt, _ := statDelta(miss)
		p.Stats = p.Stats.Sub(made).Add(attempt)
	}
	g.ScoreHistory = slices.Delete(g.ScoreHistory, i, i+1)
	g.StatHistory = insertStat(g.StatHistory, StatEntry{
		ID:           r.newID(),
		TeamID:       e.TeamID,
		PlayerID:     e.PlayerID,
		PlayerNumber: e.PlayerNumber,
		StatType:     miss,
		Quarter:      e.Quarter,
		Timestamp:    e.Timestamp,
	})
	g.ScoreHistory = RecomputeRunningScores(g.ScoreHistory)
	return true
}

func (r *Reducer) convertMissToScore(g *Game, id string) bool {
	i := slices.IndexFunc(g.StatHistory, func(e StatEntry) bool { return e.ID == id })
	if i < 0 {
		return false
	}
	e := g.StatHistory[i]
	made, ok := e.StatType.Made()
	if !ok {
		return false
	}
	p := playerFor(g, e.TeamID, e.PlayerID)
	if p == nil {
		return false
	}
	attempt, _ := statDelta(e.StatType)
	score, _ := scoreDelta(made)
	p.Stats = p.Stats.Sub(attempt).Add(score)
	g.StatHistory = slices.Delete(g.StatHistory, i, i+1)
	g.ScoreHistory = insertScore(g.ScoreHistory, ScoreEntry{
		ID:           r.newID(),
		TeamID:       e.TeamID,
		PlayerID:     e.PlayerID,
		PlayerNumber: e.PlayerNumber,
		ScoreType:    made,
		Points:       made.Points(),
		Quarter:      e.Quarter,
		Timestamp:    e.Timestamp,
	})
	g.ScoreHistory = RecomputeRunningScores(g.ScoreHistory)
	return true
}

// insertScore places e after every entry with a timestamp <= its own.
func insertScore(log []ScoreEntry, e ScoreEntry) []ScoreEntry {
	i := slices.IndexFunc(log, func(x ScoreEntry) bool { return x.Timestamp > e.Timestamp })
	if i < 0 {
		return append(log, e)
	}
	return slices.Insert(log, i, e)
}

func insertStat(log []StatEntry, e StatEntry) []StatEntry {
	i := slices.IndexFunc(log, func(x StatEntry) bool { return x.Timestamp > e.Timestamp })
	if i < 0 {
		return append(log, e)
	}
	return slices.Insert(log, i, e)
}
