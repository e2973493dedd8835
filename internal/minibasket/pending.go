package minibasket

import "slices"

// Pending actions capture an event whose player is not known yet. Resolution
// replays the event through the same forward path as a direct action, using
// the quarter and time of capture, and then drops the pending record.

func (r *Reducer) addPending(g *Game, a AddPendingAction) bool {
	t := g.Team(a.TeamID)
	if t == nil || !validPendingValue(a.ActionType, a.Value) {
		return false
	}
	quarter := a.Quarter
	if quarter == 0 {
		quarter = g.PlayingQuarter()
	}
	if quarter < 1 || quarter > Quarters {
		return false
	}
	onCourt := slices.Clone(a.OnCourtPlayers)
	if onCourt == nil {
		onCourt = snapshotLineup(*t)
	}
	g.PendingActions = append(g.PendingActions, PendingAction{
		ID:                 r.newID(),
		ActionType:         a.ActionType,
		Value:              a.Value,
		TeamID:             a.TeamID,
		Quarter:            quarter,
		Timestamp:          r.millis(),
		OnCourtPlayers:     onCourt,
		CandidatePlayerIDs: []string{},
	})
	return true
}

func validPendingValue(kind PendingType, value string) bool {
	switch kind {
	case PendingScore:
		return IsKnownScore(ScoreType(value))
	case PendingStat:
		return IsKnownStat(StatType(value))
	case PendingFoul:
		return IsKnownFoul(FoulType(value))
	}
	return false
}

func snapshotLineup(t Team) []PlayerSnapshot {
	out := []PlayerSnapshot{}
	for _, p := range t.OnCourt() {
		out = append(out, PlayerSnapshot{ID: p.ID, Number: p.Number, Name: p.Name, CourtName: p.CourtName})
	}
	return out
}

func (r *Reducer) resolvePending(g *Game, a ResolvePendingAction) bool {
	p, i, ok := g.Pending(a.PendingID)
	if !ok {
		return false
	}
	switch p.ActionType {
	case PendingScore:
		_, ok = r.applyScore(g, p.TeamID, a.PlayerID, ScoreType(p.Value), p.Quarter, p.Timestamp)
	case PendingStat:
		_, ok = r.applyStat(g, p.TeamID, a.PlayerID, StatType(p.Value), p.Quarter, p.Timestamp)
	case PendingFoul:
		ok = r.addFoul(g, AddFoul{TeamID: p.TeamID, PlayerID: a.PlayerID, FoulType: FoulType(p.Value)}, nil, p.Quarter, p.Timestamp)
	default:
		ok = false
	}
	if !ok {
		return false
	}
	g.PendingActions = slices.Delete(g.PendingActions, i, i+1)
	return true
}

func (r *Reducer) resolvePendingWithFoulType(g *Game, a ResolvePendingActionWithFoulType) bool {
	p, i, ok := g.Pending(a.PendingID)
	if !ok || p.ActionType != PendingFoul {
		return false
	}
	if !r.addFoul(g, AddFoul{TeamID: p.TeamID, PlayerID: a.PlayerID, FoulType: a.FoulType}, nil, p.Quarter, p.Timestamp) {
		return false
	}
	g.PendingActions = slices.Delete(g.PendingActions, i, i+1)
	return true
}

func (r *Reducer) resolvePendingWithFreeThrows(g *Game, a ResolvePendingActionWithFreeThrows) bool {
	p, i, ok := g.Pending(a.PendingID)
	if !ok || p.ActionType != PendingFoul {
		return false
	}
	ft := a.FoulType
	if ft == "" {
		ft = FoulType(p.Value)
	}
	foul := AddFoul{TeamID: p.TeamID, PlayerID: a.PlayerID, FoulType: ft}
	if !r.addFoul(g, foul, &a.FreeThrows, p.Quarter, p.Timestamp) {
		return false
	}
	g.PendingActions = slices.Delete(g.PendingActions, i, i+1)
	return true
}

// resolvePendingUnknown keeps a stat in the log without crediting anyone.
// Only stat captures may be resolved this way.
func (r *Reducer) resolvePendingUnknown(g *Game, a ResolvePendingActionUnknown) bool {
	p, i, ok := g.Pending(a.PendingID)
	if !ok || p.ActionType != PendingStat {
		return false
	}
	g.StatHistory = insertStat(g.StatHistory, StatEntry{
		ID:           r.newID(),
		TeamID:       p.TeamID,
		PlayerID:     PlayerUnknown,
		PlayerNumber: NoPlayerNumber,
		StatType:     StatType(p.Value),
		Quarter:      p.Quarter,
		Timestamp:    p.Timestamp,
	})
	g.PendingActions = slices.Delete(g.PendingActions, i, i+1)
	return true
}

func updateCandidates(g *Game, a UpdatePendingActionCandidates) bool {
	_, i, ok := g.Pending(a.PendingID)
	if !ok {
		return false
	}
	ids := slices.Clone(a.CandidatePlayerIDs)
	if ids == nil {
		ids = []string{}
	}
	g.PendingActions[i].CandidatePlayerIDs = ids
	return true
}

func removePending(g *Game, id string) bool {
	_, i, ok := g.Pending(id)
	if !ok {
		return false
	}
	g.PendingActions = slices.Delete(g.PendingActions, i, i+1)
	return true
}
