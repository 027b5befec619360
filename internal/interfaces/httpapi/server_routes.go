package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAccountRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/me", RequireAuth(verifier, http.HandlerFunc(handler.Me)))
}

// League routes carry both the bearer token and the x-league-id header; the
// handlers read the league from context, never from the path.
func registerLeagueRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	leagueHandle := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, RequireAuth(verifier, RequireLeague(fn)))
	}

	leagueHandle("GET /v1/divisions", handler.ListDivisions)
	leagueHandle("GET /v1/divisions/{division}/teams", handler.ListTeams)
	leagueHandle("GET /v1/fields", handler.ListFields)

	leagueHandle("POST /v1/slots", handler.CreateSlot)
	leagueHandle("GET /v1/slots", handler.ListSlots)
	leagueHandle("GET /v1/slots/{division}/{slotID}", handler.GetSlot)
	leagueHandle("PATCH /v1/slots/{division}/{slotID}/cancel", handler.CancelSlot)

	leagueHandle("POST /v1/slots/{division}/{slotID}/requests", handler.CreateRequest)
	leagueHandle("GET /v1/slots/{division}/{slotID}/requests", handler.ListRequests)
	leagueHandle("PATCH /v1/slots/{division}/{slotID}/requests/{requestID}/approve", handler.ApproveRequest)
	leagueHandle("PATCH /v1/slots/{division}/{slotID}/requests/{requestID}/withdraw", handler.WithdrawRequest)
}
