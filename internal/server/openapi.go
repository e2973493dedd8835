package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playperu/minibasket/internal/minibasket"
	"github.com/playperu/minibasket/internal/scoresheet"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse maps each dependency to its status.
type HealthResponse map[string]struct {
	Status string `json:"status"`
}

type suggestQuery struct {
	FoulType  string `query:"foulType" required:"true" enum:"P,T,U,D,C,B"`
	Shot      string `query:"shot" enum:"none,2P,3P,and1"`
	TeamID    string `query:"teamId" enum:"A,B"`
	TeamFouls int    `query:"teamFouls" minimum:"0"`
}

type idPath struct {
	ID string `path:"id"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Minibasket Scorer API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Scorekeeping API for mini-basketball games.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/game
	getGame, _ := r.NewOperationContext(http.MethodGet, "/api/game")
	getGame.SetSummary("Current game")
	getGame.SetDescription("Returns the full live game snapshot.")
	getGame.AddRespStructure(minibasket.Game{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getGame)

	// POST /api/game/actions
	postAction, _ := r.NewOperationContext(http.MethodPost, "/api/game/actions")
	postAction.SetSummary("Dispatch action")
	postAction.SetDescription("Applies one action envelope to the live game. Stale or invalid references are ignored and reported with applied=false. Requires scorer_session cookie.")
	postAction.AddReqStructure(minibasket.Envelope{})
	postAction.AddRespStructure(DispatchResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postAction.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postAction.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postAction)

	// GET /api/game/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/game/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream with the current snapshot followed by one event per applied action.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /ws/game
	getSocket, _ := r.NewOperationContext(http.MethodGet, "/ws/game")
	getSocket.SetSummary("Live game WebSocket")
	getSocket.SetDescription("Pushes game snapshots. Scorers with a session cookie may send action envelopes.")
	getSocket.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getSocket)

	// GET /api/game/boxscore
	getBox, _ := r.NewOperationContext(http.MethodGet, "/api/game/boxscore")
	getBox.SetSummary("Box score")
	getBox.SetDescription("Per-player and per-team totals derived from the live game.")
	getBox.AddRespStructure(scoresheet.BoxScore{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getBox)

	// GET /api/game/scoresheet
	getSheet, _ := r.NewOperationContext(http.MethodGet, "/api/game/scoresheet")
	getSheet.SetSummary("Scoresheet")
	getSheet.SetDescription("Plain-text official scoresheet of the live game.")
	getSheet.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getSheet)

	// GET /api/freethrows/suggest
	getSuggest, _ := r.NewOperationContext(http.MethodGet, "/api/freethrows/suggest")
	getSuggest.SetSummary("Suggest free throws")
	getSuggest.SetDescription("Number of free throws a foul awards. Without teamFouls the count is read from the live game for teamId.")
	getSuggest.AddReqStructure(suggestQuery{})
	getSuggest.AddRespStructure(FreeThrowSuggestion{}, openapi.WithHTTPStatus(http.StatusOK))
	getSuggest.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(getSuggest)

	// GET /api/sessions
	listSessions, _ := r.NewOperationContext(http.MethodGet, "/api/sessions")
	listSessions.SetSummary("List saved sessions")
	listSessions.SetDescription("Saved games, newest first. Requires scorer_session cookie.")
	listSessions.AddRespStructure([]SessionSummary{}, openapi.WithHTTPStatus(http.StatusOK))
	listSessions.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(listSessions)

	// POST /api/sessions
	saveSession, _ := r.NewOperationContext(http.MethodPost, "/api/sessions")
	saveSession.SetSummary("Save session")
	saveSession.SetDescription("Stores a copy of the live game under a name. Requires scorer_session cookie.")
	saveSession.AddReqStructure(SaveSessionRequest{})
	saveSession.AddRespStructure(SessionSummary{}, openapi.WithHTTPStatus(http.StatusCreated))
	saveSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(saveSession)

	// POST /api/sessions/{id}/load
	loadSession, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{id}/load")
	loadSession.SetSummary("Load session")
	loadSession.SetDescription("Replaces the live game with a saved session. Requires scorer_session cookie.")
	loadSession.AddReqStructure(idPath{})
	loadSession.AddRespStructure(DispatchResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	loadSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	loadSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(loadSession)

	// DELETE /api/sessions/{id}
	deleteSession, _ := r.NewOperationContext(http.MethodDelete, "/api/sessions/{id}")
	deleteSession.SetSummary("Delete session")
	deleteSession.SetDescription("Deletes a saved session. Requires scorer_session cookie.")
	deleteSession.AddReqStructure(idPath{})
	deleteSession.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	deleteSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	deleteSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(deleteSession)

	// POST /api/history
	archive, _ := r.NewOperationContext(http.MethodPost, "/api/history")
	archive.SetSummary("Archive game")
	archive.SetDescription("Archives the live game once it is finished. Requires scorer_session cookie.")
	archive.AddRespStructure(HistorySummary{}, openapi.WithHTTPStatus(http.StatusCreated))
	archive.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	archive.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(archive)

	// GET /api/history
	listHistory, _ := r.NewOperationContext(http.MethodGet, "/api/history")
	listHistory.SetSummary("List archived games")
	listHistory.SetDescription("Finished games, most recent first.")
	listHistory.AddRespStructure([]HistorySummary{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listHistory)

	// GET /api/history/{id}
	getHistory, _ := r.NewOperationContext(http.MethodGet, "/api/history/{id}")
	getHistory.SetSummary("Get archived game")
	getHistory.AddReqStructure(idPath{})
	getHistory.AddRespStructure(minibasket.Game{}, openapi.WithHTTPStatus(http.StatusOK))
	getHistory.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getHistory)

	// GET /api/history/{id}/scoresheet
	getHistorySheet, _ := r.NewOperationContext(http.MethodGet, "/api/history/{id}/scoresheet")
	getHistorySheet.SetSummary("Archived scoresheet")
	getHistorySheet.AddReqStructure(idPath{})
	getHistorySheet.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/plain"))
	getHistorySheet.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getHistorySheet)

	// DELETE /api/history/{id}
	deleteHistory, _ := r.NewOperationContext(http.MethodDelete, "/api/history/{id}")
	deleteHistory.SetSummary("Delete archived game")
	deleteHistory.SetDescription("Requires scorer_session cookie.")
	deleteHistory.AddReqStructure(idPath{})
	deleteHistory.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	deleteHistory.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	deleteHistory.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(deleteHistory)

	// POST /api/scorer/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/scorer/login")
	postLogin.SetSummary("Scorer login")
	postLogin.SetDescription("Authenticate with email and password. Sets scorer_session cookie.")
	postLogin.AddReqStructure(ScorerLoginRequest{})
	postLogin.AddRespStructure(ScorerMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/scorer/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/scorer/logout")
	postLogout.SetSummary("Scorer logout")
	postLogout.SetDescription("Clears scorer session and cookie.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/scorer/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/scorer/me")
	getMe.SetSummary("Current scorer")
	getMe.SetDescription("Returns the authenticated scorer. Requires scorer_session cookie.")
	getMe.AddRespStructure(ScorerMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
