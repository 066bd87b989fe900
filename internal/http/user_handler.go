package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/campus-events/internal/application"
)

type profileService interface {
	Profile(ctx context.Context, identity application.Identity) (application.User, error)
}

type UserHandler struct {
	service   profileService
	responder responder
	logger    *slog.Logger
}

func NewUserHandler(service profileService, logger *slog.Logger) *UserHandler {
	base := defaultLogger(logger)
	return &UserHandler{service: service, responder: newResponder(base), logger: base}
}

type userDTO struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      *string `json:"phone,omitempty"`
	ProfilePic string  `json:"profile_pic"`
	Role       string  `json:"role"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

type profileResponse struct {
	User userDTO `json:"user"`
}

func toUserDTO(user application.User) userDTO {
	return userDTO{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Phone:      user.Phone,
		ProfilePic: user.ProfilePic,
		Role:       user.Role,
		CreatedAt:  user.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  user.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// Profile returns the account behind the caller's token.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		h.responder.writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Message: "Authentication required"})
		return
	}

	user, err := h.service.Profile(r.Context(), identity)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, profileResponse{User: toUserDTO(user)})
}
