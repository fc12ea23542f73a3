package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/calebmh/inkwell-be/internal/apperr"
	"github.com/calebmh/inkwell-be/internal/services"
)

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// UpdateUserPayload carries the updatable profile fields. Absent fields are
// left untouched.
type UpdateUserPayload struct {
	Name *string `json:"name"`
}

// Create handles new user registration. No auth required.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, apperr.New(apperr.ErrValidation, "Invalid request body"))
		return
	}
	if payload.Email == "" || payload.Name == "" || payload.Password == "" {
		respondError(w, apperr.New(apperr.ErrValidation, "Email, name and password are required"))
		return
	}

	user, err := h.service.CreateUser(payload.Email, payload.Name, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed to register user")
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// GetAll handles listing all users.
func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetAllUsers()
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Get handles retrieving a user by their ID.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := h.service.GetUserByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Update handles updating a user's profile information.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var payload UpdateUserPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, apperr.New(apperr.ErrValidation, "Invalid request body"))
		return
	}

	user, err := h.service.UpdateUser(id, payload.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Delete handles the permanent deletion of a user account. Owned posts are
// removed with it.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteUser(id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
