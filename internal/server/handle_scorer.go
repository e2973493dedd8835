package server

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ScorerLoginRequest is the request body for POST /api/scorer/login.
type ScorerLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ScorerMeResponse is the response for GET /api/scorer/me.
type ScorerMeResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func handleScorerLogin(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ScorerLoginRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "email and password are required")
			return
		}

		scorerID, passwordHash, err := store.ScorerCredentials(r.Context(), req.Email)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		sessionID, err := store.CreateScorerSession(r.Context(), scorerID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		setScorerCookie(w, sessionID, int(scorerSessionTTL.Seconds()))
		writeJSON(w, http.StatusOK, ScorerMeResponse{
			ID:    scorerID,
			Email: req.Email,
		})
	}
}

func handleScorerMe(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := scorerFromRequest(r, store)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		writeJSON(w, http.StatusOK, ScorerMeResponse{
			ID:    sess.ScorerID,
			Email: sess.Email,
		})
	}
}

func handleScorerLogout(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(scorerCookieName)
		if err == nil && cookie.Value != "" {
			store.DeleteScorerSession(r.Context(), cookie.Value)
		}

		setScorerCookie(w, "", -1)
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
