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
	"github.com/ideaboard/api/internal/service/topic"
	"github.com/ideaboard/api/internal/view"
)

// topicService defines the minimal interface needed by TopicsHandler.
type topicService interface {
	CreateTopic(ctx context.Context, input topic.CreateTopicInput) (*topic.CreateTopicResult, error)
	GetTopic(ctx context.Context, topicID uuid.UUID) (*view.Topic, error)
	ListTopics(ctx context.Context) ([]view.Topic, error)
	UpdateTopic(ctx context.Context, input topic.UpdateTopicInput) (*topic.UpdateTopicResult, error)
	DeleteTopic(ctx context.Context, input topic.DeleteTopicInput) (*topic.DeleteTopicResult, error)
}

// TopicsHandler serves topic REST endpoints.
type TopicsHandler struct {
	svc   topicService
	cache *viewcache.Store
	log   *slog.Logger
}

// NewTopicsHandler creates a TopicsHandler.
func NewTopicsHandler(svc topicService, cache *viewcache.Store, logger *slog.Logger) *TopicsHandler {
	return &TopicsHandler{svc: svc, cache: cache, log: logger.With("handler", "topics")}
}

type createTopicRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

type updateTopicRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type topicResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	CreatedBy   string  `json:"created_by"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func toTopicResponse(t *domain.Topic) topicResponse {
	return topicResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		CreatedBy:   t.CreatedBy.String(),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}

// List handles GET /topics.
func (h *TopicsHandler) List(w http.ResponseWriter, r *http.Request) {
	viewer := viewerTag(r)

	var cached []view.Topic
	if hit, err := h.cache.Get(r.Context(), view.TopicListKey(), viewer, &cached); err != nil {
		h.log.WarnContext(r.Context(), "view cache get failed", slog.Any("error", err))
	} else if hit {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	topics, err := h.svc.ListTopics(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.cache.Set(r.Context(), view.TopicListKey(), viewer, topics); err != nil {
		h.log.WarnContext(r.Context(), "view cache set failed", slog.Any("error", err))
	}

	writeJSON(w, http.StatusOK, topics)
}

// Get handles GET /topics/{id}.
func (h *TopicsHandler) Get(w http.ResponseWriter, r *http.Request) {
	topicID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid topic id")
		return
	}
	viewer := viewerTag(r)

	var cached view.Topic
	if hit, err := h.cache.Get(r.Context(), view.TopicKey(topicID), viewer, &cached); err != nil {
		h.log.WarnContext(r.Context(), "view cache get failed", slog.Any("error", err))
	} else if hit {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	t, err := h.svc.GetTopic(r.Context(), topicID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.cache.Set(r.Context(), view.TopicKey(topicID), viewer, t); err != nil {
		h.log.WarnContext(r.Context(), "view cache set failed", slog.Any("error", err))
	}

	writeJSON(w, http.StatusOK, t)
}

// Create handles POST /topics.
func (h *TopicsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.CreateTopic(r.Context(), topic.CreateTopicInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	h.invalidate(r.Context(), result.Stale)
	writeJSON(w, http.StatusCreated, toTopicResponse(result.Topic))
}

// Update handles PATCH /topics/{id}.
func (h *TopicsHandler) Update(w http.ResponseWriter, r *http.Request) {
	topicID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid topic id")
		return
	}

	var req updateTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.UpdateTopic(r.Context(), topic.UpdateTopicInput{
		TopicID:     topicID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	h.invalidate(r.Context(), result.Stale)
	writeJSON(w, http.StatusOK, toTopicResponse(result.Topic))
}

// Delete handles DELETE /topics/{id}.
func (h *TopicsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	topicID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid topic id")
		return
	}

	result, err := h.svc.DeleteTopic(r.Context(), topic.DeleteTopicInput{TopicID: topicID})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	h.invalidate(r.Context(), result.Stale)
	w.WriteHeader(http.StatusNoContent)
}

func (h *TopicsHandler) invalidate(ctx context.Context, keys []view.Key) {
	if err := h.cache.Invalidate(ctx, keys...); err != nil {
		h.log.WarnContext(ctx, "view cache invalidate failed", slog.Any("error", err))
	}
}
