package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ideaboard/api/internal/adapter/redis/viewcache"
	"github.com/ideaboard/api/internal/domain"
	"github.com/ideaboard/api/internal/service/comment"
	"github.com/ideaboard/api/internal/view"
)

// commentService defines the minimal interface needed by CommentsHandler.
type commentService interface {
	CreateComment(ctx context.Context, input comment.CreateCommentInput) (*comment.CreateCommentResult, error)
	ListComments(ctx context.Context, ideaID uuid.UUID) ([]view.Comment, error)
	UpdateComment(ctx context.Context, input comment.UpdateCommentInput) (*comment.UpdateCommentResult, error)
	DeleteComment(ctx context.Context, commentID uuid.UUID) (*comment.DeleteCommentResult, error)
}

// CommentsHandler serves comment REST endpoints.
type CommentsHandler struct {
	svc   commentService
	cache *viewcache.Store
	log   *slog.Logger
}

// NewCommentsHandler creates a CommentsHandler.
func NewCommentsHandler(svc commentService, cache *viewcache.Store, logger *slog.Logger) *CommentsHandler {
	return &CommentsHandler{svc: svc, cache: cache, log: logger.With("handler", "comments")}
}

type commentRequest struct {
	Content string `json:"content"`
}

type commentResponse struct {
	ID        string `json:"id"`
	IdeaID    string `json:"idea_id"`
	UserID    string `json:"user_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toCommentResponse(c *domain.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID.String(),
		IdeaID:    c.IdeaID.String(),
		UserID:    c.UserID.String(),
		Content:   c.Content,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}

// List handles GET /ideas/{id}/comments.
func (h *CommentsHandler) List(w http.ResponseWriter, r *http.Request) {
	ideaID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid idea id")
		return
	}
	viewer := viewerTag(r)

	var cached []view.Comment
	if hit, err := h.cache.Get(r.Context(), view.CommentListKey(ideaID), viewer, &cached); err != nil {
		h.log.WarnContext(r.Context(), "view cache get failed", slog.Any("error", err))
	} else if hit {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	comments, err := h.svc.ListComments(r.Context(), ideaID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.cache.Set(r.Context(), view.CommentListKey(ideaID), viewer, comments); err != nil {
		h.log.WarnContext(r.Context(), "view cache set failed", slog.Any("error", err))
	}

	writeJSON(w, http.StatusOK, comments)
}

// Create handles POST /ideas/{id}/comments.
func (h *CommentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ideaID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid idea id")
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.CreateComment(r.Context(), comment.CreateCommentInput{
		IdeaID:  ideaID,
		Content: req.Content,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	h.invalidate(r.Context(), result.Stale)
	writeJSON(w, http.StatusCreated, toCommentResponse(result.Comment))
}

// Update handles PATCH /comments/{id}.
func (h *CommentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	commentID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.UpdateComment(r.Context(), comment.UpdateCommentInput{
		CommentID: commentID,
		Content:   req.Content,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	h.invalidate(r.Context(), result.Stale)
	writeJSON(w, http.StatusOK, toCommentResponse(result.Comment))
}

// Delete handles DELETE /comments/{id}.
func (h *CommentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	commentID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	result, err := h.svc.DeleteComment(r.Context(), commentID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	h.invalidate(r.Context(), result.Stale)
	w.WriteHeader(http.StatusNoContent)
}

func (h *CommentsHandler) invalidate(ctx context.Context, keys []view.Key) {
	if err := h.cache.Invalidate(ctx, keys...); err != nil {
		h.log.WarnContext(ctx, "view cache invalidate failed", slog.Any("error", err))
	}
}
