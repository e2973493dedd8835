package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/playperu/minibasket/internal/minibasket"
	"github.com/playperu/minibasket/internal/scorekeeper"
	"github.com/playperu/minibasket/internal/scoresheet"
)

// DispatchResponse is the response for POST /api/game/actions. Applied is
// false when the action was a no-op against the current game.
type DispatchResponse struct {
	Applied bool            `json:"applied"`
	Game    minibasket.Game `json:"game"`
}

// FreeThrowSuggestion is the response for GET /api/freethrows/suggest.
type FreeThrowSuggestion struct {
	FoulType   minibasket.FoulType      `json:"foulType"`
	Shot       minibasket.ShotSituation `json:"shot"`
	TeamFouls  int                      `json:"teamFouls"`
	FreeThrows int                      `json:"freeThrows"`
}

func handleGetGame(keeper *scorekeeper.Keeper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, keeper.Snapshot())
	}
}

func handleDispatch(logger *slog.Logger, keeper *scorekeeper.Keeper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var env minibasket.Envelope
		if err := readJSON(r, &env); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		action, err := env.Decode()
		if err != nil {
			writeError(w, http.StatusBadRequest, decodeErrorMessage(err))
			return
		}

		g, applied := keeper.Dispatch(action)
		if applied {
			logger.Info("action dispatched",
				"type", action.Type(),
				"scorer", scorerFrom(r).Email,
				"game_id", g.ID,
			)
		}
		writeJSON(w, http.StatusOK, DispatchResponse{Applied: applied, Game: g})
	}
}

func decodeErrorMessage(err error) string {
	switch {
	case errors.Is(err, minibasket.ErrUnknownAction):
		return "unknown action type"
	case errors.Is(err, minibasket.ErrMalformedPayload):
		return "malformed action payload"
	}
	return "invalid action"
}

func handleBoxScore(keeper *scorekeeper.Keeper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, scoresheet.Build(keeper.Snapshot()))
	}
}

func handleScoresheet(keeper *scorekeeper.Keeper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeScoresheet(w, keeper.Snapshot())
	}
}

func writeScoresheet(w http.ResponseWriter, g minibasket.Game) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	scoresheet.Write(w, g)
}

func validShot(s minibasket.ShotSituation) bool {
	switch s {
	case minibasket.ShotNone, minibasket.Shot2P, minibasket.Shot3P, minibasket.ShotAndOne:
		return true
	}
	return false
}

// handleSuggestFreeThrows answers with the free throws a foul would award.
// The team foul count comes from teamFouls when given, otherwise from the
// live game for teamId in the current quarter.
func handleSuggestFreeThrows(keeper *scorekeeper.Keeper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		foul := minibasket.FoulType(q.Get("foulType"))
		if !minibasket.IsKnownFoul(foul) {
			writeError(w, http.StatusBadRequest, "unknown foulType")
			return
		}

		shot := minibasket.ShotNone
		if v := q.Get("shot"); v != "" {
			shot = minibasket.ShotSituation(v)
		}
		if !validShot(shot) {
			writeError(w, http.StatusBadRequest, "unknown shot situation")
			return
		}

		teamFouls := 0
		switch {
		case q.Get("teamFouls") != "":
			n, err := strconv.Atoi(q.Get("teamFouls"))
			if err != nil || n < 0 {
				writeError(w, http.StatusBadRequest, "teamFouls must be a non-negative integer")
				return
			}
			teamFouls = n
		case q.Get("teamId") != "":
			g := keeper.Snapshot()
			team := g.Team(minibasket.TeamID(q.Get("teamId")))
			if team == nil {
				writeError(w, http.StatusBadRequest, "unknown teamId")
				return
			}
			teamFouls = team.FoulsInQuarter(g.PlayingQuarter())
		}

		writeJSON(w, http.StatusOK, FreeThrowSuggestion{
			FoulType:   foul,
			Shot:       shot,
			TeamFouls:  teamFouls,
			FreeThrows: minibasket.SuggestFreeThrowCount(foul, teamFouls, shot),
		})
	}
}
