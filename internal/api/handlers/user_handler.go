package handlers

import (
	"net/http"

	"github.com/isdelr/exercise-tracker-be/internal/models"
	"github.com/isdelr/exercise-tracker-be/internal/services"
	"github.com/rs/zerolog/log"
)

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// CreateUserPayload defines the structure for user creation requests.
type CreateUserPayload struct {
	Username string `json:"username"`
}

func (p *CreateUserPayload) readForm(get func(string) string) {
	p.Username = get("username")
}

// UserResponse is the public projection of a user.
type UserResponse struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

func newUserResponse(u models.User) UserResponse {
	return UserResponse{Username: u.Username, ID: u.ID}
}

// Create handles new user creation.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload CreateUserPayload
	if err := decodePayload(w, r, &payload); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.CreateUser(r.Context(), payload.Username)
	if err != nil {
		respondServiceError(w, r, err, "Failed to create user")
		return
	}

	log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("User created")
	respondJSON(w, r, http.StatusOK, newUserResponse(user))
}

// GetAll handles listing every user.
func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		respondServiceError(w, r, err, "Failed to list users")
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, newUserResponse(u))
	}
	respondJSON(w, r, http.StatusOK, resp)
}
