package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/campus-events/internal/application"
)

type rsvpService interface {
	CreateRSVP(ctx context.Context, params application.CreateRSVPParams) (application.RSVP, error)
}

type RSVPHandler struct {
	service   rsvpService
	responder responder
	logger    *slog.Logger
}

func NewRSVPHandler(service rsvpService, logger *slog.Logger) *RSVPHandler {
	base := defaultLogger(logger)
	return &RSVPHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *RSVPHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "RSVPHandler", operation, attrs...)
}

type rsvpRequest struct {
	EventID string `json:"event_id"`
}

type rsvpResponse struct {
	Message string `json:"message"`
}

// Create records the caller's attendance for an event. The user behind the
// RSVP is always the resolved identity; an identifier in the body would be
// ignored by the decoder.
func (h *RSVPHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		h.responder.writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Message: "Authentication required"})
		return
	}

	var req rsvpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode rsvp request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	_, err := h.service.CreateRSVP(r.Context(), application.CreateRSVPParams{
		Identity: identity,
		EventID:  strings.TrimSpace(req.EventID),
	})
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			h.responder.writeJSON(r.Context(), w, http.StatusNotFound, errorResponse{Message: "Event not found"})
			return
		}
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, rsvpResponse{Message: "RSVP successful"})
}
