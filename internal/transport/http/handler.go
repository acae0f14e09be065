package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"gigtix/internal/model"
	"gigtix/internal/repository"
	"gigtix/internal/service"
)

type Handler struct {
	svc service.TicketService
}

func NewHandler(svc service.TicketService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /gigs", h.ListGigs)
	mux.HandleFunc("GET /gigs/{slug}", h.GetGig)
	mux.HandleFunc("POST /purchase", h.Purchase)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// Purchase accepts a ticket purchase for asynchronous processing. 202 means
// the purchase record was enqueued, not that the ticket has been issued.
func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req model.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	ack, err := h.svc.Purchase(r.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrValidation) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		// The request was fine; the queue was not. The caller may retry,
		// which will mint a fresh ticket id.
		h.respondError(w, http.StatusBadGateway, "could not enqueue purchase, try again later")
		return
	}

	h.respondJSON(w, http.StatusAccepted, ack)
}

func (h *Handler) ListGigs(w http.ResponseWriter, r *http.Request) {
	gigs, err := h.svc.ListGigs(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "could not list gigs")
		return
	}
	if gigs == nil {
		gigs = []model.Gig{}
	}
	h.respondJSON(w, http.StatusOK, gigs)
}

func (h *Handler) GetGig(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	gig, err := h.svc.GetGig(r.Context(), slug)
	if err != nil {
		if errors.Is(err, repository.ErrGigNotFound) {
			h.respondError(w, http.StatusNotFound, "gig_not_found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "could not load gig")
		return
	}
	h.respondJSON(w, http.StatusOK, gig)
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
