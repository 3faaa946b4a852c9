package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/teams", handler.ListTeamsByLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/players", handler.ListPlayersByLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/seasons", handler.ListSeasons)
	mux.HandleFunc("POST /v1/leagues/{leagueID}/seasons", handler.CreateSeason)
	mux.HandleFunc("PUT /v1/leagues/{leagueID}/seasons/{seasonID}/primary", handler.SetPrimarySeason)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/leaderboards/{eventType}", handler.ListLeaderboard)
	mux.HandleFunc("POST /v1/leagues/{leagueID}/suspensions/reconcile", handler.ReconcileSuspensions)
	mux.HandleFunc("GET /v1/leaderboards/top-scorers", handler.ListTopScorers)
}

func registerSeasonRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/seasons/{seasonID}/fixtures", handler.GenerateFixtures)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/matches", handler.ListSeasonMatches)
	mux.HandleFunc("DELETE /v1/seasons/{seasonID}", handler.TeardownSeason)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/events", handler.ListMatchEvents)
	mux.HandleFunc("POST /v1/matches/{matchID}/goals", handler.RecordGoal)
	mux.HandleFunc("POST /v1/matches/{matchID}/cards", handler.RecordCard)
	mux.HandleFunc("DELETE /v1/matches/{matchID}/events/{eventID}", handler.DeleteMatchEvent)
	mux.HandleFunc("PUT /v1/matches/{matchID}/sheets/{side}/players", handler.AddRosterPlayer)
	mux.HandleFunc("DELETE /v1/matches/{matchID}/sheets/{side}/players/{playerID}", handler.RemoveRosterPlayer)
	// Lifecycle commands: start-game, end-first-half, submit, done, no-show, ...
	mux.HandleFunc("POST /v1/matches/{matchID}/{command}", handler.RunMatchCommand)
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/notices/{kind}", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ReceiveNotice)))
}
