package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPredictionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/features", handler.GetFeatures)
	mux.HandleFunc("POST /v1/predictions/custom", handler.PredictCustom)
	mux.HandleFunc("GET /v1/predictions/current-matchday", handler.PredictCurrentMatchday)
}
