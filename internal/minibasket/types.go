// Package minibasket defines the scorekeeping domain for mini-basketball games:
// the Game aggregate, its action protocol, and the reducer that applies actions.
// Nothing in here performs I/O.
package minibasket

type Phase string

const (
	PhaseSetup      Phase = "setup"
	PhasePlaying    Phase = "playing"
	PhasePaused     Phase = "paused"
	PhaseQuarterEnd Phase = "quarterEnd"
	PhaseFinished   Phase = "finished"
)

type TeamID string

const (
	TeamA TeamID = "A"
	TeamB TeamID = "B"
)

// Opponent returns the other team slot.
func (id TeamID) Opponent() TeamID {
	if id == TeamA {
		return TeamB
	}
	return TeamA
}

// Sentinel player ids.
const (
	PlayerCoach   = "COACH"
	PlayerBench   = "BENCH"
	PlayerUnknown = "unknown"
)

// NoPlayerNumber is stored on entries that are not attributed to a player.
const NoPlayerNumber = -1

const (
	Quarters         = 4
	FoulOutLimit     = 5
	PenaltyThreshold = 4
)

type ScoreType string

const (
	Score2P ScoreType = "2P"
	Score3P ScoreType = "3P"
	ScoreFT ScoreType = "FT"
)

// Points returns the value of a made shot, or 0 for an unknown type.
func (t ScoreType) Points() int {
	switch t {
	case Score2P:
		return 2
	case Score3P:
		return 3
	case ScoreFT:
		return 1
	}
	return 0
}

// Miss returns the attempt-only stat for the same shot category.
func (t ScoreType) Miss() (StatType, bool) {
	switch t {
	case Score2P:
		return Stat2PA, true
	case Score3P:
		return Stat3PA, true
	case ScoreFT:
		return StatFTA, true
	}
	return "", false
}

type StatType string

const (
	StatOffensiveRebound StatType = "OREB"
	StatDefensiveRebound StatType = "DREB"
	StatAssist           StatType = "AST"
	StatSteal            StatType = "STL"
	StatBlock            StatType = "BLK"
	StatTurnover         StatType = "TO"
	StatTurnoverTravel   StatType = "TO_TRAVEL"
	StatTurnoverDouble   StatType = "TO_DOUBLE"
	StatTurnoverOut      StatType = "TO_OUT"
	StatTurnoverPass     StatType = "TO_PASS"
	Stat2PA              StatType = "2PA"
	Stat3PA              StatType = "3PA"
	StatFTA              StatType = "FTA"
)

// Made returns the scoring type for a miss pseudo-stat.
func (t StatType) Made() (ScoreType, bool) {
	switch t {
	case Stat2PA:
		return Score2P, true
	case Stat3PA:
		return Score3P, true
	case StatFTA:
		return ScoreFT, true
	}
	return "", false
}

type FoulType string

const (
	FoulPersonal        FoulType = "P"
	FoulTechnical       FoulType = "T"
	FoulUnsportsmanlike FoulType = "U"
	FoulDisqualifying   FoulType = "D"
	FoulCoachTechnical  FoulType = "C"
	FoulBenchTechnical  FoulType = "B"
)

type ShotSituation string

const (
	ShotNone   ShotSituation = "none"
	Shot2P     ShotSituation = "2P"
	Shot3P     ShotSituation = "3P"
	ShotAndOne ShotSituation = "and1"
)

type QuarterPlay string

const (
	QuarterNone    QuarterPlay = "none"
	QuarterStarter QuarterPlay = "starter"
	QuarterSub     QuarterPlay = "sub"
	QuarterBoth    QuarterPlay = "both"
)

// Played reports whether the player took part in the quarter at all.
func (q QuarterPlay) Played() bool {
	return q == QuarterStarter || q == QuarterSub || q == QuarterBoth
}

type PendingType string

const (
	PendingScore PendingType = "SCORE"
	PendingStat  PendingType = "STAT"
	PendingFoul  PendingType = "FOUL"
)

type PlayerStats struct {
	Points              int `json:"points"`
	TwoPointMade        int `json:"twoPointMade"`
	TwoPointAttempted   int `json:"twoPointAttempted"`
	ThreePointMade      int `json:"threePointMade"`
	ThreePointAttempted int `json:"threePointAttempted"`
	FreeThrowMade       int `json:"freeThrowMade"`
	FreeThrowAttempted  int `json:"freeThrowAttempted"`
	OffensiveRebounds   int `json:"offensiveRebounds"`
	DefensiveRebounds   int `json:"defensiveRebounds"`
	Assists             int `json:"assists"`
	Steals              int `json:"steals"`
	Blocks              int `json:"blocks"`
	Turnovers           int `json:"turnovers"`
	TurnoversTravel     int `json:"turnoversTravel"`
	TurnoversDouble     int `json:"turnoversDouble"`
	TurnoversOut        int `json:"turnoversOut"`
	TurnoversPass       int `json:"turnoversPass"`
}

type FoulRecord struct {
	Type       FoulType `json:"type"`
	Quarter    int      `json:"quarter"`
	FreeThrows int      `json:"freeThrows,omitempty"`
}

type Player struct {
	ID             string               `json:"id"`
	Number         int                  `json:"number"`
	Name           string               `json:"name"`
	CourtName      string               `json:"courtName,omitempty"`
	IsCaptain      bool                 `json:"isCaptain"`
	Fouls          []FoulRecord         `json:"fouls"`
	Stats          PlayerStats          `json:"stats"`
	QuartersPlayed [Quarters]QuarterPlay `json:"quartersPlayed"`
	IsOnCourt      bool                 `json:"isOnCourt"`
}

// DisplayName prefers the court name when one is set.
func (p Player) DisplayName() string {
	if p.CourtName != "" {
		return p.CourtName
	}
	return p.Name
}

type CoachFoul struct {
	Type     FoulType `json:"type"`
	Quarter  int      `json:"quarter"`
	PlayerID string   `json:"playerId"`
}

type Timeout struct {
	Quarter        int `json:"quarter"`
	ElapsedMinutes int `json:"elapsedMinutes"`
}

type Team struct {
	ID                 TeamID        `json:"id"`
	Name               string        `json:"name"`
	CoachName          string        `json:"coachName"`
	AssistantCoachName string        `json:"assistantCoachName,omitempty"`
	Players            []Player      `json:"players"`
	TeamFouls          [Quarters]int `json:"teamFouls"`
	CoachFouls         []CoachFoul   `json:"coachFouls"`
	Timeouts           []Timeout     `json:"timeouts"`
	Color              string        `json:"color"`
	IsMyTeam           bool          `json:"isMyTeam"`
}

type ScoreEntry struct {
	ID            string    `json:"id"`
	TeamID        TeamID    `json:"teamId"`
	PlayerID      string    `json:"playerId"`
	PlayerNumber  int       `json:"playerNumber"`
	ScoreType     ScoreType `json:"scoreType"`
	Points        int       `json:"points"`
	Quarter       int       `json:"quarter"`
	Timestamp     int64     `json:"timestamp"`
	RunningScoreA int       `json:"runningScoreA"`
	RunningScoreB int       `json:"runningScoreB"`
}

type StatEntry struct {
	ID           string   `json:"id"`
	TeamID       TeamID   `json:"teamId"`
	PlayerID     string   `json:"playerId"`
	PlayerNumber int      `json:"playerNumber"`
	StatType     StatType `json:"statType"`
	Quarter      int      `json:"quarter"`
	Timestamp    int64    `json:"timestamp"`
}

type FoulEntry struct {
	ID                string        `json:"id"`
	TeamID            TeamID        `json:"teamId"`
	PlayerID          string        `json:"playerId"`
	PlayerNumber      int           `json:"playerNumber"`
	FoulType          FoulType      `json:"foulType"`
	IsCoachOrBench    bool          `json:"isCoachOrBench"`
	Quarter           int           `json:"quarter"`
	Timestamp         int64         `json:"timestamp"`
	ShotSituation     ShotSituation `json:"shotSituation,omitempty"`
	FreeThrowCount    int           `json:"freeThrowCount,omitempty"`
	FreeThrowResults  []bool        `json:"freeThrowResults,omitempty"`
	ShooterTeamID     TeamID        `json:"shooterTeamId,omitempty"`
	ShooterPlayerID   string        `json:"shooterPlayerId,omitempty"`
	FreeThrowEntryIDs []string      `json:"freeThrowEntryIds,omitempty"`
}

// PlayerSnapshot is a frozen copy of an on-court player taken when a pending
// action is captured. It does not follow later substitutions.
type PlayerSnapshot struct {
	ID        string `json:"id"`
	Number    int    `json:"number"`
	Name      string `json:"name"`
	CourtName string `json:"courtName,omitempty"`
}

type PendingAction struct {
	ID                 string           `json:"id"`
	ActionType         PendingType      `json:"actionType"`
	Value              string           `json:"value"`
	TeamID             TeamID           `json:"teamId"`
	Quarter            int              `json:"quarter"`
	Timestamp          int64            `json:"timestamp"`
	OnCourtPlayers     []PlayerSnapshot `json:"onCourtPlayers"`
	CandidatePlayerIDs []string         `json:"candidatePlayerIds"`
}

type Game struct {
	ID               string          `json:"id"`
	TeamA            Team            `json:"teamA"`
	TeamB            Team            `json:"teamB"`
	CurrentQuarter   int             `json:"currentQuarter"`
	Phase            Phase           `json:"phase"`
	ScoreHistory     []ScoreEntry    `json:"scoreHistory"`
	StatHistory      []StatEntry     `json:"statHistory"`
	FoulHistory      []FoulEntry     `json:"foulHistory"`
	PendingActions   []PendingAction `json:"pendingActions"`
	SelectedPlayerID string          `json:"selectedPlayerId,omitempty"`
	SelectedTeamID   TeamID          `json:"selectedTeamId,omitempty"`
	CreatedAt        int64           `json:"createdAt"`
	UpdatedAt        int64           `json:"updatedAt"`
	StartTime        int64           `json:"startTime,omitempty"`
	EndTime          int64           `json:"endTime,omitempty"`
}
