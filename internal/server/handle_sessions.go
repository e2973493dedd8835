package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/minibasket/internal/minibasket"
	"github.com/playperu/minibasket/internal/scorekeeper"
)

// SaveSessionRequest is the request body for POST /api/sessions. An empty
// name defaults to "<team A> vs <team B>".
type SaveSessionRequest struct {
	Name string `json:"name"`
}

func handleListSessions(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions, err := store.ListSessions(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, sessions)
	}
}

func handleSaveSession(store Store, keeper *scorekeeper.Keeper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SaveSessionRequest
		if r.ContentLength != 0 {
			if err := readJSON(r, &req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
		}

		summary, err := store.SaveSession(r.Context(), req.Name, keeper.Snapshot())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, summary)
	}
}

// handleLoadSession replaces the live game with a saved one.
func handleLoadSession(store Store, keeper *scorekeeper.Keeper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, err := store.GetSession(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		next, applied := keeper.Dispatch(minibasket.RestoreGame{Game: g})
		writeJSON(w, http.StatusOK, DispatchResponse{Applied: applied, Game: next})
	}
}

func handleDeleteSession(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := store.DeleteSession(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
