package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicMarketRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/lots", handler.ListLots)
	mux.HandleFunc("GET /v1/lots/{lotID}", handler.GetLot)
	mux.HandleFunc("GET /v1/lots/{lotID}/ended", handler.GetLotEnded)
	mux.HandleFunc("GET /v1/lots/{lotID}/bids", handler.ListLotBids)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedClubRoutes(mux, handler, verifier)
	registerAuthorizedCardRoutes(mux, handler, verifier)
	registerAuthorizedMarketRoutes(mux, handler, verifier)
}

func registerAuthorizedClubRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/club", RequireAuth(verifier, http.HandlerFunc(handler.GetMyClub)))
	mux.Handle("GET /v1/club/squad", RequireAuth(verifier, http.HandlerFunc(handler.GetMySquad)))
	mux.Handle("PUT /v1/club/squad/slots/{slotIndex}", RequireAuth(verifier, http.HandlerFunc(handler.PlaceCardInSlot)))
	mux.Handle("DELETE /v1/club/squad/slots/{slotIndex}", RequireAuth(verifier, http.HandlerFunc(handler.RemoveCardFromSlot)))
	mux.Handle("POST /v1/club/squad/exchange", RequireAuth(verifier, http.HandlerFunc(handler.ExchangeSquadSlots)))
	mux.Handle("PUT /v1/club/squad/formation", RequireAuth(verifier, http.HandlerFunc(handler.SetSquadFormation)))
	mux.Handle("PUT /v1/club/squad/tactic", RequireAuth(verifier, http.HandlerFunc(handler.SetSquadTactic)))
	mux.Handle("PUT /v1/club/squad/captain", RequireAuth(verifier, http.HandlerFunc(handler.SetSquadCaptain)))
}

func registerAuthorizedCardRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/cards", RequireAuth(verifier, http.HandlerFunc(handler.ListMyCards)))
	mux.Handle("GET /v1/cards/{cardID}", RequireAuth(verifier, http.HandlerFunc(handler.GetCard)))
	mux.Handle("POST /v1/cards/{cardID}/mint", RequireAuth(verifier, http.HandlerFunc(handler.MintCard)))
}

func registerAuthorizedMarketRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/lots", RequireAuth(verifier, http.HandlerFunc(handler.CreateLot)))
	mux.Handle("POST /v1/lots/{lotID}/bids", RequireAuth(verifier, http.HandlerFunc(handler.PlaceBid)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/close-lots", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunCloseLotsJob)))
}
