package handler

import (
	"log/slog"
	"net/http"

	"inkwell/internal/domain/services"
	"inkwell/internal/httputil"
)

// CommentHandler handles comment HTTP requests
type CommentHandler struct {
	commentService services.CommentService
	logger         *slog.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService services.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		logger:         logger,
	}
}

// ReplyToComment inserts the caller's reply under an existing comment.
// When the parent was written by an agent persona the reply triggers a
// generated answer.
// POST /api/comments/{id}/replies
func (h *CommentHandler) ReplyToComment(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	parentID := r.PathValue("id")
	if parentID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "comment ID is required")
		return
	}

	var req services.ReplyRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.commentService.ReplyAsUser(r.Context(), parentID, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, reply)
}
