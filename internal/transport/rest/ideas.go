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
	"github.com/ideaboard/api/internal/service/idea"
	"github.com/ideaboard/api/internal/view"
)

// ideaService defines the minimal interface needed by IdeasHandler.
type ideaService interface {
	CreateIdea(ctx context.Context, input idea.CreateIdeaInput) (*idea.CreateIdeaResult, error)
	ListIdeas(ctx context.Context, topicID uuid.UUID, sort domain.SortOption) ([]view.Idea, error)
	UpdateIdea(ctx context.Context, input idea.UpdateIdeaInput) (*idea.UpdateIdeaResult, error)
	DeleteIdea(ctx context.Context, ideaID uuid.UUID) (*idea.DeleteIdeaResult, error)
	ToggleLike(ctx context.Context, ideaID uuid.UUID) (*idea.ToggleLikeResult, error)
	ListLikes(ctx context.Context, ideaID uuid.UUID) ([]view.Like, error)
}

// IdeasHandler serves idea and like REST endpoints.
type IdeasHandler struct {
	svc   ideaService
	cache *viewcache.Store
	log   *slog.Logger
}

// NewIdeasHandler creates an IdeasHandler.
func NewIdeasHandler(svc ideaService, cache *viewcache.Store, logger *slog.Logger) *IdeasHandler {
	return &IdeasHandler{svc: svc, cache: cache, log: logger.With("handler", "ideas")}
}

type createIdeaRequest struct {
	Content string `json:"content"`
}

type updateIdeaRequest struct {
	Content string `json:"content"`
}

type ideaResponse struct {
	ID        string `json:"id"`
	TopicID   string `json:"topic_id"`
	Content   string `json:"content"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type toggleLikeResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

func toIdeaResponse(i *domain.Idea) ideaResponse {
	return ideaResponse{
		ID:        i.ID.String(),
		TopicID:   i.TopicID.String(),
		Content:   i.Content,
		CreatedBy: i.CreatedBy.String(),
		CreatedAt: i.CreatedAt.Format(time.RFC3339),
		UpdatedAt: i.UpdatedAt.Format(time.RFC3339),
	}
}

// List handles GET /topics/{id}/ideas. The sort query parameter accepts
// newest, most_liked, and most_commented; the idea list cache is keyed per
// sort order so each ordering caches independently.
func (h *IdeasHandler) List(w http.ResponseWriter, r *http.Request) {
	topicID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid topic id")
		return
	}

	sort, err := domain.ParseSortOption(r.URL.Query().Get("sort"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	viewer := viewerTag(r)
	cacheKey := view.IdeaListKey(topicID) + view.Key(":"+string(sort))

	var cached []view.Idea
	if hit, err := h.cache.Get(r.Context(), cacheKey, viewer, &cached); err != nil {
		h.log.WarnContext(r.Context(), "view cache get failed", slog.Any("error", err))
	} else if hit {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	ideas, err := h.svc.ListIdeas(r.Context(), topicID, sort)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.cache.Set(r.Context(), cacheKey, viewer, ideas); err != nil {
		h.log.WarnContext(r.Context(), "view cache set failed", slog.Any("error", err))
	}

	writeJSON(w, http.StatusOK, ideas)
}

// Create handles POST /topics/{id}/ideas.
func (h *IdeasHandler) Create(w http.ResponseWriter, r *http.Request) {
	topicID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid topic id")
		return
	}

	var req createIdeaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.CreateIdea(r.Context(), idea.CreateIdeaInput{
		TopicID: topicID,
		Content: req.Content,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	h.invalidate(r.Context(), result.Stale)
	writeJSON(w, http.StatusCreated, toIdeaResponse(result.Idea))
}

// Update handles PATCH /ideas/{id}.
func (h *IdeasHandler) Update(w http.ResponseWriter, r *http.Request) {
	ideaID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid idea id")
		return
	}

	var req updateIdeaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.UpdateIdea(r.Context(), idea.UpdateIdeaInput{
		IdeaID:  ideaID,
		Content: req.Content,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	h.invalidate(r.Context(), result.Stale)
	writeJSON(w, http.StatusOK, toIdeaResponse(result.Idea))
}

// Delete handles DELETE /ideas/{id}.
func (h *IdeasHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ideaID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid idea id")
		return
	}

	result, err := h.svc.DeleteIdea(r.Context(), ideaID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	h.invalidate(r.Context(), result.Stale)
	w.WriteHeader(http.StatusNoContent)
}

// ToggleLike handles POST /ideas/{id}/like.
func (h *IdeasHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	ideaID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid idea id")
		return
	}

	result, err := h.svc.ToggleLike(r.Context(), ideaID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	h.invalidate(r.Context(), result.Stale)
	writeJSON(w, http.StatusOK, toggleLikeResponse{
		Liked:     result.Liked,
		LikeCount: result.LikeCount,
	})
}

// ListLikes handles GET /ideas/{id}/likes.
func (h *IdeasHandler) ListLikes(w http.ResponseWriter, r *http.Request) {
	ideaID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid idea id")
		return
	}
	viewer := viewerTag(r)

	var cached []view.Like
	if hit, err := h.cache.Get(r.Context(), view.LikeListKey(ideaID), viewer, &cached); err != nil {
		h.log.WarnContext(r.Context(), "view cache get failed", slog.Any("error", err))
	} else if hit {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	likes, err := h.svc.ListLikes(r.Context(), ideaID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.cache.Set(r.Context(), view.LikeListKey(ideaID), viewer, likes); err != nil {
		h.log.WarnContext(r.Context(), "view cache set failed", slog.Any("error", err))
	}

	writeJSON(w, http.StatusOK, likes)
}

func (h *IdeasHandler) invalidate(ctx context.Context, keys []view.Key) {
	if err := h.cache.Invalidate(ctx, keys...); err != nil {
		h.log.WarnContext(ctx, "view cache invalidate failed", slog.Any("error", err))
	}
}
