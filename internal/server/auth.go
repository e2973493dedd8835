package server

import (
	"errors"
	"net/http"
	"time"
)

var errNoScorerSession = errors.New("no valid scorer session")

const scorerCookieName = "scorer_session"

const scorerSessionTTL = 7 * 24 * time.Hour

// scorerFromRequest reads the scorer_session cookie and looks up its owner.
func scorerFromRequest(r *http.Request, store Store) (scorerSession, error) {
	cookie, err := r.Cookie(scorerCookieName)
	if err != nil || cookie.Value == "" {
		return scorerSession{}, errNoScorerSession
	}
	return store.ScorerFromSession(r.Context(), cookie.Value)
}

func setScorerCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     scorerCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
