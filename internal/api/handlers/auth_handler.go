package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/calebmh/inkwell-be/internal/apperr"
	"github.com/calebmh/inkwell-be/internal/services"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service services.AuthServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.AuthServiceProvider) *AuthHandler {
	return &AuthHandler{service: service}
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user authentication and token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, apperr.New(apperr.ErrValidation, "Invalid request body"))
		return
	}
	if payload.Email == "" || payload.Password == "" {
		respondError(w, apperr.New(apperr.ErrValidation, "Email and password are required"))
		return
	}

	result, err := h.service.Login(payload.Email, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed authentication attempt")
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
