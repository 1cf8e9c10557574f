package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/matches/import", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ImportMatches)))
	mux.Handle("POST /v1/internal/matches/import-payloads", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ImportPayloads)))
	mux.Handle("POST /v1/internal/players/{puuid}/matches/import-recent", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ImportRecentMatches)))
	mux.Handle("POST /v1/internal/feeds/{userID}/refresh", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RefreshFeed)))
	// Timeline import also stores the match when it is missing.
	mux.Handle("POST /v1/internal/matches/{matchID}/timeline", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ImportTimeline)))
}
