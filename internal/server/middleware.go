package server

import (
	"context"
	"net/http"
)

type ctxKey int

const ctxKeyScorer ctxKey = iota

func scorerAuthMiddleware(store Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := scorerFromRequest(r, store)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyScorer, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func scorerFrom(r *http.Request) scorerSession {
	return r.Context().Value(ctxKeyScorer).(scorerSession)
}
