package httpapi

import (
	"net/http"

	"github.com/kickaround/pickup-league/internal/usecase"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("POST /v1/players", handler.CreatePlayer)
	mux.HandleFunc("GET /v1/game/overview", handler.GetGameOverview)
	mux.HandleFunc("GET /v1/teams/overview", handler.GetTeamsOverview)
	mux.HandleFunc("GET /v1/results/overview", handler.ListResults)
	mux.HandleFunc("GET /v1/league/table", handler.GetLeagueTable)
	mux.HandleFunc("GET /v1/gameweeks/{gameweekID}/entries", handler.ListGameweekEntries)
	mux.HandleFunc("POST /v1/gameweeks/{gameweekID}/slots/claim", handler.ClaimSlot)
	mux.HandleFunc("POST /v1/gameweeks/{gameweekID}/slots/leave", handler.LeaveSlot)
	mux.HandleFunc("POST /v1/gameweeks/{gameweekID}/slots/request-removal", handler.RequestRemoval)
	mux.HandleFunc("POST /v1/organiser/verify", handler.VerifyOrganiser)
}

func registerOrganiserRoutes(mux *http.ServeMux, handler *Handler, verifier usecase.OrganiserVerifier) {
	mux.Handle("POST /v1/gameweeks", RequireOrganiser(verifier, http.HandlerFunc(handler.CreateGameweek)))
	mux.Handle("POST /v1/gameweeks/{gameweekID}/lock", RequireOrganiser(verifier, http.HandlerFunc(handler.LockGameweek)))
	mux.Handle("POST /v1/gameweeks/{gameweekID}/slots/assign", RequireOrganiser(verifier, http.HandlerFunc(handler.AssignSlot)))
	mux.Handle("POST /v1/gameweeks/{gameweekID}/slots/kick", RequireOrganiser(verifier, http.HandlerFunc(handler.KickPlayer)))
	mux.Handle("PUT /v1/players/{playerID}", RequireOrganiser(verifier, http.HandlerFunc(handler.UpdatePlayer)))
	mux.Handle("DELETE /v1/players/{playerID}", RequireOrganiser(verifier, http.HandlerFunc(handler.DeletePlayer)))
}
