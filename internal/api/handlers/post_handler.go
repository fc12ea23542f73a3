package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/calebmh/inkwell-be/internal/apperr"
	"github.com/calebmh/inkwell-be/internal/auth"
	"github.com/calebmh/inkwell-be/internal/services"
)

// PostHandler handles HTTP requests for post management.
type PostHandler struct {
	service services.PostServiceProvider
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(service services.PostServiceProvider) *PostHandler {
	return &PostHandler{service: service}
}

// CreatePostPayload defines the structure for post creation requests.
type CreatePostPayload struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

// UpdatePostPayload carries the updatable post fields. Absent fields are
// left untouched; the owner is never updatable.
type UpdatePostPayload struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
}

// Create handles post creation by the authenticated caller.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, apperr.New(apperr.ErrUnauthorized, "Missing auth token"))
		return
	}

	var payload CreatePostPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, apperr.New(apperr.ErrValidation, "Invalid request body"))
		return
	}
	if payload.Title == "" || payload.Content == "" {
		respondError(w, apperr.New(apperr.ErrValidation, "Title and content are required"))
		return
	}

	post, err := h.service.CreatePost(identity.UserID, payload.Title, payload.Content, payload.Published)
	if err != nil {
		log.Error().Err(err).Str("user_id", identity.UserID).Msg("Failed to create post")
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

// GetAll handles the public post listing, newest first.
func (h *PostHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.GetAllPosts()
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// Get handles retrieving a single post by its ID. Public.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	post, err := h.service.GetPostByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// GetByUser handles listing one owner's posts.
func (h *PostHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	posts, err := h.service.GetPostsByUser(userID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// Update handles partial updates of a post by its owner.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, apperr.New(apperr.ErrUnauthorized, "Missing auth token"))
		return
	}

	id := chi.URLParam(r, "id")
	var payload UpdatePostPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, apperr.New(apperr.ErrValidation, "Invalid request body"))
		return
	}

	post, err := h.service.UpdatePost(id, identity.UserID, payload.Title, payload.Content, payload.Published)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Delete handles deletion of a post by its owner.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, apperr.New(apperr.ErrUnauthorized, "Missing auth token"))
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.DeletePost(id, identity.UserID); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Post deleted"})
}
