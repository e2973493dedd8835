package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/minibasket/internal/minibasket"
	"github.com/playperu/minibasket/internal/scorekeeper"
)

func handleArchiveGame(store Store, keeper *scorekeeper.Keeper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g := keeper.Snapshot()
		if g.Phase != minibasket.PhaseFinished {
			writeError(w, http.StatusConflict, "only finished games can be archived")
			return
		}

		summary, err := store.ArchiveGame(r.Context(), g)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, summary)
	}
}

func handleListHistory(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		games, err := store.ListHistory(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, games)
	}
}

func handleGetHistory(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, ok := loadHistory(w, r, store)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, g)
	}
}

func handleHistoryScoresheet(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, ok := loadHistory(w, r, store)
		if !ok {
			return
		}
		writeScoresheet(w, g)
	}
}

func loadHistory(w http.ResponseWriter, r *http.Request, store Store) (minibasket.Game, bool) {
	g, err := store.GetHistory(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "game not found")
		return minibasket.Game{}, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return minibasket.Game{}, false
	}
	return g, true
}

func handleDeleteHistory(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := store.DeleteHistory(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
