package handler

import (
	"log/slog"
	"net/http"

	"inkwell/internal/domain/services"
	"inkwell/internal/httputil"
)

// PostHandler handles post HTTP requests
type PostHandler struct {
	postService services.PostService
	logger      *slog.Logger
}

// NewPostHandler creates a new post handler
func NewPostHandler(postService services.PostService, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		postService: postService,
		logger:      logger,
	}
}

// HealthCheck responds to health probes
// GET /health
func (h *PostHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListPosts retrieves all posts for the caller
// GET /api/posts
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	posts, err := h.postService.ListPosts(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, posts)
}

// CreatePost creates a new post (draft or immediate publish)
// POST /api/posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req services.CreatePostRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.AuthorID = userID

	post, err := h.postService.CreatePost(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, post)
}

// GetPost retrieves a post by ID
// GET /api/posts/{id}
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "post ID is required")
		return
	}

	post, err := h.postService.GetPost(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, post)
}

// GetPostBySlug retrieves the caller's post by slug with its threaded
// comments
// GET /api/posts/by-slug/{slug}
func (h *PostHandler) GetPostBySlug(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	slug := r.PathValue("slug")
	if slug == "" {
		httputil.RespondError(w, http.StatusBadRequest, "slug is required")
		return
	}

	post, err := h.postService.GetPostBySlug(r.Context(), slug, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, post)
}

// UpdatePost updates a draft's title/body
// PATCH /api/posts/{id}
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "post ID is required")
		return
	}

	var req services.UpdatePostRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := h.postService.UpdatePost(r.Context(), id, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, post)
}

// PublishPost publishes a draft
// POST /api/posts/{id}/publish
func (h *PostHandler) PublishPost(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "post ID is required")
		return
	}

	post, err := h.postService.PublishPost(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, post)
}

// DeletePost deletes a post and its comments
// DELETE /api/posts/{id}
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "post ID is required")
		return
	}

	if err := h.postService.DeletePost(r.Context(), id, userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
