package minibasket

type ActionType string

const (
	ActionSetTeams                           ActionType = "SET_TEAMS"
	ActionStartGame                          ActionType = "START_GAME"
	ActionPauseGame                          ActionType = "PAUSE_GAME"
	ActionResumeGame                         ActionType = "RESUME_GAME"
	ActionEndQuarter                         ActionType = "END_QUARTER"
	ActionEndGame                            ActionType = "END_GAME"
	ActionResetGame                          ActionType = "RESET_GAME"
	ActionRestoreGame                        ActionType = "RESTORE_GAME"
	ActionAddScore                           ActionType = "ADD_SCORE"
	ActionAddStat                            ActionType = "ADD_STAT"
	ActionAddFoul                            ActionType = "ADD_FOUL"
	ActionAddFoulWithFreeThrows              ActionType = "ADD_FOUL_WITH_FREE_THROWS"
	ActionAddTimeout                         ActionType = "ADD_TIMEOUT"
	ActionSubstitutePlayer                   ActionType = "SUBSTITUTE_PLAYER"
	ActionSelectPlayer                       ActionType = "SELECT_PLAYER"
	ActionClearSelection                     ActionType = "CLEAR_SELECTION"
	ActionRemoveScore                        ActionType = "REMOVE_SCORE"
	ActionRemoveStat                         ActionType = "REMOVE_STAT"
	ActionRemoveFoul                         ActionType = "REMOVE_FOUL"
	ActionEditScore                          ActionType = "EDIT_SCORE"
	ActionEditStat                           ActionType = "EDIT_STAT"
	ActionConvertScoreToMiss                 ActionType = "CONVERT_SCORE_TO_MISS"
	ActionConvertMissToScore                 ActionType = "CONVERT_MISS_TO_SCORE"
	ActionAddPendingAction                   ActionType = "ADD_PENDING_ACTION"
	ActionResolvePendingAction               ActionType = "RESOLVE_PENDING_ACTION"
	ActionResolvePendingActionWithFoulType   ActionType = "RESOLVE_PENDING_ACTION_WITH_FOUL_TYPE"
	ActionResolvePendingActionWithFreeThrows ActionType = "RESOLVE_PENDING_ACTION_WITH_FREE_THROWS"
	ActionResolvePendingActionUnknown        ActionType = "RESOLVE_PENDING_ACTION_UNKNOWN"
	ActionUpdatePendingActionCandidates      ActionType = "UPDATE_PENDING_ACTION_CANDIDATES"
	ActionRemovePendingAction                ActionType = "REMOVE_PENDING_ACTION"
)

// Action is one variant of the reducer's input. Each variant carries its own
// payload fields.
type Action interface {
	Type() ActionType
}

type SetTeams struct {
	TeamA Team `json:"teamA"`
	TeamB Team `json:"teamB"`
}

type StartGame struct{}
type PauseGame struct{}
type ResumeGame struct{}
type EndQuarter struct{}
type EndGame struct{}
type ResetGame struct{}

type RestoreGame struct {
	Game Game `json:"game"`
}

type AddScore struct {
	TeamID    TeamID    `json:"teamId"`
	PlayerID  string    `json:"playerId"`
	ScoreType ScoreType `json:"scoreType"`
}

type AddStat struct {
	TeamID   TeamID   `json:"teamId"`
	PlayerID string   `json:"playerId"`
	StatType StatType `json:"statType"`
}

// AddFoul charges a foul. An empty PlayerID, PlayerCoach or PlayerBench
// charges the bench.
type AddFoul struct {
	TeamID   TeamID   `json:"teamId"`
	PlayerID string   `json:"playerId,omitempty"`
	FoulType FoulType `json:"foulType"`
}

// FreeThrows describes the free-throw sequence awarded for a foul. The shooter
// belongs to the fouled team.
type FreeThrows struct {
	ShotSituation    ShotSituation `json:"shotSituation"`
	FreeThrowCount   int           `json:"freeThrowCount"`
	FreeThrowResults []bool        `json:"freeThrowResults"`
	ShooterTeamID    TeamID        `json:"shooterTeamId"`
	ShooterPlayerID  string        `json:"shooterPlayerId"`
}

type AddFoulWithFreeThrows struct {
	AddFoul
	FreeThrows
}

type AddTimeout struct {
	TeamID         TeamID `json:"teamId"`
	ElapsedMinutes int    `json:"elapsedMinutes"`
}

// SubstitutePlayer swaps PlayerOutID for PlayerInID. Either side may be empty
// to only add or only remove a player from the court while lineups are set.
type SubstitutePlayer struct {
	TeamID      TeamID `json:"teamId"`
	PlayerOutID string `json:"playerOutId,omitempty"`
	PlayerInID  string `json:"playerInId,omitempty"`
}

type SelectPlayer struct {
	TeamID   TeamID `json:"teamId"`
	PlayerID string `json:"playerId"`
}

type ClearSelection struct{}

type RemoveScore struct {
	EntryID string `json:"entryId"`
}

type RemoveStat struct {
	EntryID string `json:"entryId"`
}

type RemoveFoul struct {
	EntryID string `json:"entryId"`
}

// EditScore reassigns a score entry. Empty fields keep their current value.
type EditScore struct {
	EntryID   string    `json:"entryId"`
	PlayerID  string    `json:"playerId,omitempty"`
	ScoreType ScoreType `json:"scoreType,omitempty"`
}

// EditStat reassigns a stat entry. Empty fields keep their current value.
type EditStat struct {
	EntryID  string   `json:"entryId"`
	PlayerID string   `json:"playerId,omitempty"`
	StatType StatType `json:"statType,omitempty"`
}

type ConvertScoreToMiss struct {
	EntryID string `json:"entryId"`
}

type ConvertMissToScore struct {
	EntryID string `json:"entryId"`
}

// AddPendingAction records an action whose player is not yet known. A zero
// Quarter means the current quarter; a nil OnCourtPlayers freezes the team's
// current lineup.
type AddPendingAction struct {
	ActionType     PendingType      `json:"actionType"`
	Value          string           `json:"value"`
	TeamID         TeamID           `json:"teamId"`
	Quarter        int              `json:"quarter,omitempty"`
	OnCourtPlayers []PlayerSnapshot `json:"onCourtPlayers,omitempty"`
}

type ResolvePendingAction struct {
	PendingID string `json:"pendingId"`
	PlayerID  string `json:"playerId"`
}

type ResolvePendingActionWithFoulType struct {
	PendingID string   `json:"pendingId"`
	PlayerID  string   `json:"playerId"`
	FoulType  FoulType `json:"foulType"`
}

// ResolvePendingActionWithFreeThrows folds the free-throw sequence into the
// resolution. An empty FoulType keeps the pending record's value.
type ResolvePendingActionWithFreeThrows struct {
	PendingID string   `json:"pendingId"`
	PlayerID  string   `json:"playerId"`
	FoulType  FoulType `json:"foulType,omitempty"`
	FreeThrows
}

type ResolvePendingActionUnknown struct {
	PendingID string `json:"pendingId"`
}

type UpdatePendingActionCandidates struct {
	PendingID          string   `json:"pendingId"`
	CandidatePlayerIDs []string `json:"candidatePlayerIds"`
}

type RemovePendingAction struct {
	PendingID string `json:"pendingId"`
}

func (SetTeams) Type() ActionType              { return ActionSetTeams }
func (StartGame) Type() ActionType             { return ActionStartGame }
func (PauseGame) Type() ActionType             { return ActionPauseGame }
func (ResumeGame) Type() ActionType            { return ActionResumeGame }
func (EndQuarter) Type() ActionType            { return ActionEndQuarter }
func (EndGame) Type() ActionType               { return ActionEndGame }
func (ResetGame) Type() ActionType             { return ActionResetGame }
func (RestoreGame) Type() ActionType           { return ActionRestoreGame }
func (AddScore) Type() ActionType              { return ActionAddScore }
func (AddStat) Type() ActionType               { return ActionAddStat }
func (AddFoul) Type() ActionType               { return ActionAddFoul }
func (AddFoulWithFreeThrows) Type() ActionType { return ActionAddFoulWithFreeThrows }
func (AddTimeout) Type() ActionType            { return ActionAddTimeout }
func (SubstitutePlayer) Type() ActionType      { return ActionSubstitutePlayer }
func (SelectPlayer) Type() ActionType          { return ActionSelectPlayer }
func (ClearSelection) Type() ActionType        { return ActionClearSelection }
func (RemoveScore) Type() ActionType           { return ActionRemoveScore }
func (RemoveStat) Type() ActionType            { return ActionRemoveStat }
func (RemoveFoul) Type() ActionType            { return ActionRemoveFoul }
func (EditScore) Type() ActionType             { return ActionEditScore }
func (EditStat) Type() ActionType              { return ActionEditStat }
func (ConvertScoreToMiss) Type() ActionType    { return ActionConvertScoreToMiss }
func (ConvertMissToScore) Type() ActionType    { return ActionConvertMissToScore }
func (AddPendingAction) Type() ActionType      { return ActionAddPendingAction }
func (ResolvePendingAction) Type() ActionType  { return ActionResolvePendingAction }
func (ResolvePendingActionWithFoulType) Type() ActionType {
	return ActionResolvePendingActionWithFoulType
}
func (ResolvePendingActionWithFreeThrows) Type() ActionType {
	return ActionResolvePendingActionWithFreeThrows
}
func (ResolvePendingActionUnknown) Type() ActionType   { return ActionResolvePendingActionUnknown }
func (UpdatePendingActionCandidates) Type() ActionType { return ActionUpdatePendingActionCandidates }
func (RemovePendingAction) Type() ActionType           { return ActionRemovePendingAction }
