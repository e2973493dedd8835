package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	store, keeper := deps.Store, deps.Keeper

	broker := NewBroker()
	keeper.Subscribe(broker.Publish)

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Minibasket Scorer API", "/openapi.json", "/docs"))
	r.Get("/ws/game", handleGameSocket(logger, store, keeper, broker, deps.CORSOrigins))

	// Live game, readable by anyone with the link.
	r.Get("/api/game", handleGetGame(keeper))
	r.Get("/api/game/events", handleEvents(keeper, broker))
	r.Get("/api/game/boxscore", handleBoxScore(keeper))
	r.Get("/api/game/scoresheet", handleScoresheet(keeper))
	r.Get("/api/freethrows/suggest", handleSuggestFreeThrows(keeper))

	r.Get("/api/history", handleListHistory(store))
	r.Get("/api/history/{id}", handleGetHistory(store))
	r.Get("/api/history/{id}/scoresheet", handleHistoryScoresheet(store))

	// Scorer auth.
	r.Post("/api/scorer/login", handleScorerLogin(store))
	r.Post("/api/scorer/logout", handleScorerLogout(store))
	r.Get("/api/scorer/me", handleScorerMe(store))

	// Mutations require a scorer session.
	r.Group(func(r chi.Router) {
		r.Use(scorerAuthMiddleware(store))

		r.Post("/api/game/actions", handleDispatch(logger, keeper))

		r.Get("/api/sessions", handleListSessions(store))
		r.Post("/api/sessions", handleSaveSession(store, keeper))
		r.Post("/api/sessions/{id}/load", handleLoadSession(store, keeper))
		r.Delete("/api/sessions/{id}", handleDeleteSession(store))

		r.Post("/api/history", handleArchiveGame(store, keeper))
		r.Delete("/api/history/{id}", handleDeleteHistory(store))
	})

	if deps.SPADir != "" {
		if info, err := os.Stat(deps.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", deps.SPADir)
			r.NotFound(handleSPA(deps.SPADir))
		}
	}
}
