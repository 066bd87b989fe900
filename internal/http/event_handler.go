package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/example/campus-events/internal/application"
)

type eventService interface {
	CreateEvent(ctx context.Context, params application.CreateEventParams) (application.Event, error)
	GetEvent(ctx context.Context, eventID string) (application.Event, error)
	ListEvents(ctx context.Context, params application.ListEventsParams) ([]application.Event, error)
}

type EventHandler struct {
	service   eventService
	responder responder
	logger    *slog.Logger
}

func NewEventHandler(service eventService, logger *slog.Logger) *EventHandler {
	base := defaultLogger(logger)
	return &EventHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *EventHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "EventHandler", operation, attrs...)
}

type eventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	ImageURL    string `json:"image_url"`
}

type eventDTO struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Date          string  `json:"date"`
	Location      string  `json:"location"`
	OrganizerID   string  `json:"organizer_id"`
	ImageURL      *string `json:"image_url,omitempty"`
	AttendeeCount int     `json:"attendee_count"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type eventResponse struct {
	Message string   `json:"message"`
	Event   eventDTO `json:"event"`
}

type eventListResponse struct {
	Message string     `json:"message"`
	Events  []eventDTO `json:"events"`
}

func toEventDTO(event application.Event) eventDTO {
	return eventDTO{
		ID:            event.ID,
		Title:         event.Title,
		Description:   event.Description,
		Category:      event.Category,
		Date:          event.Date.UTC().Format(time.RFC3339),
		Location:      event.Location,
		OrganizerID:   event.OrganizerID,
		ImageURL:      event.ImageURL,
		AttendeeCount: event.AttendeeCount,
		CreatedAt:     event.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     event.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// List returns recent events, newest first. Supports category and limit
// query parameters.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	params := application.ListEventsParams{
		Category: r.URL.Query().Get("category"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			h.responder.writeJSON(r.Context(), w, http.StatusBadRequest, errorResponse{Message: "Invalid limit"})
			return
		}
		params.Limit = limit
	}

	events, err := h.service.ListEvents(r.Context(), params)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]eventDTO, len(events))
	for i, event := range events {
		dtos[i] = toEventDTO(event)
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, eventListResponse{
		Message: "Fetched events successfully",
		Events:  dtos,
	})
}

// Create persists a new event organized by the caller.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		h.responder.writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Message: "Authentication required"})
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode event request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			h.responder.writeJSON(r.Context(), w, http.StatusBadRequest, errorResponse{
				Message: "Invalid input",
				Errors:  map[string]string{"date": "date must be RFC 3339"},
			})
			return
		}
		date = parsed
	}

	event, err := h.service.CreateEvent(r.Context(), application.CreateEventParams{
		Identity: identity,
		Input: application.EventInput{
			Title:       req.Title,
			Description: req.Description,
			Category:    req.Category,
			Date:        date,
			Location:    req.Location,
			ImageURL:    req.ImageURL,
		},
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, eventResponse{
		Message: "Event created successfully",
		Event:   toEventDTO(event),
	})
}

// Get returns a single event with its attendee count.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	eventID, ok := EventIDFromContext(r.Context())
	if !ok || eventID == "" {
		http.NotFound(w, r)
		return
	}

	event, err := h.service.GetEvent(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			h.responder.writeJSON(r.Context(), w, http.StatusNotFound, errorResponse{Message: "Event not found"})
			return
		}
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, eventResponse{
		Message: "Event fetched successfully",
		Event:   toEventDTO(event),
	})
}
