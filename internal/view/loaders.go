package view

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/ideaboard/api/internal/adapter/postgres/comment"
	"github.com/ideaboard/api/internal/adapter/postgres/idea"
	"github.com/ideaboard/api/internal/adapter/postgres/like"
	"github.com/ideaboard/api/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

// ---------------------------------------------------------------------------
// Repository interfaces (consumer-defined)
// ---------------------------------------------------------------------------

type profileRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error)
}

type ideaRepo interface {
	CountByTopicIDs(ctx context.Context, topicIDs []uuid.UUID) ([]idea.CountByTopic, error)
}

type likeRepo interface {
	CountByIdeaIDs(ctx context.Context, ideaIDs []uuid.UUID) ([]like.CountByIdea, error)
	LikedByUser(ctx context.Context, userID uuid.UUID, ideaIDs []uuid.UUID) ([]uuid.UUID, error)
}

type commentRepo interface {
	CountByIdeaIDs(ctx context.Context, ideaIDs []uuid.UUID) ([]comment.CountByIdea, error)
}

// Repos holds the repositories the loaders batch over.
type Repos struct {
	Profile profileRepo
	Idea    ideaRepo
	Like    likeRepo
	Comment commentRepo
}

// Loaders contains the per-request batch loaders. Created per-request via
// NewLoaders (loaders cache results within a single request).
type Loaders struct {
	ProfileByID          *dataloader.Loader[uuid.UUID, *domain.User]
	IdeaCountByTopicID   *dataloader.Loader[uuid.UUID, int]
	LikeCountByIdeaID    *dataloader.Loader[uuid.UUID, int]
	CommentCountByIdeaID *dataloader.Loader[uuid.UUID, int]
	LikedByViewer        *dataloader.Loader[uuid.UUID, bool]
}

// NewLoaders creates a set of loaders bound to the given viewer. For an
// anonymous viewer (authenticated=false) the LikedByViewer loader resolves
// false for every key without touching the database.
func NewLoaders(repos *Repos, viewerID uuid.UUID, authenticated bool) *Loaders {
	return &Loaders{
		ProfileByID:          newLoader(newProfileBatchFn(repos.Profile)),
		IdeaCountByTopicID:   newLoader(newIdeaCountBatchFn(repos.Idea)),
		LikeCountByIdeaID:    newLoader(newLikeCountBatchFn(repos.Like)),
		CommentCountByIdeaID: newLoader(newCommentCountBatchFn(repos.Comment)),
		LikedByViewer:        newLoader(newLikedByViewerBatchFn(repos.Like, viewerID, authenticated)),
	}
}

// newLoader creates a dataloader.Loader with standard batch parameters.
func newLoader[V any](batchFn dataloader.BatchFunc[uuid.UUID, V]) *dataloader.Loader[uuid.UUID, V] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[uuid.UUID, V](wait),
		dataloader.WithBatchCapacity[uuid.UUID, V](maxBatch),
	)
}

// ---------------------------------------------------------------------------
// Batch functions
// ---------------------------------------------------------------------------

func newProfileBatchFn(repo profileRepo) dataloader.BatchFunc[uuid.UUID, *domain.User] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[*domain.User] {
		users, err := repo.GetByIDs(ctx, keys)
		if err != nil {
			return errorResults[*domain.User](len(keys), err)
		}

		byID := make(map[uuid.UUID]*domain.User, len(users))
		for i := range users {
			byID[users[i].ID] = &users[i]
		}

		// Missing profiles resolve to nil, not an error.
		return mapResults(keys, byID, func() *domain.User { return nil })
	}
}

func newIdeaCountBatchFn(repo ideaRepo) dataloader.BatchFunc[uuid.UUID, int] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[int] {
		counts, err := repo.CountByTopicIDs(ctx, keys)
		if err != nil {
			return errorResults[int](len(keys), err)
		}

		byID := make(map[uuid.UUID]int, len(counts))
		for _, c := range counts {
			byID[c.TopicID] = c.Count
		}

		return mapResults(keys, byID, zero)
	}
}

func newLikeCountBatchFn(repo likeRepo) dataloader.BatchFunc[uuid.UUID, int] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[int] {
		counts, err := repo.CountByIdeaIDs(ctx, keys)
		if err != nil {
			return errorResults[int](len(keys), err)
		}

		byID := make(map[uuid.UUID]int, len(counts))
		for _, c := range counts {
			byID[c.IdeaID] = c.Count
		}

		return mapResults(keys, byID, zero)
	}
}

func newCommentCountBatchFn(repo commentRepo) dataloader.BatchFunc[uuid.UUID, int] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[int] {
		counts, err := repo.CountByIdeaIDs(ctx, keys)
		if err != nil {
			return errorResults[int](len(keys), err)
		}

		byID := make(map[uuid.UUID]int, len(counts))
		for _, c := range counts {
			byID[c.IdeaID] = c.Count
		}

		return mapResults(keys, byID, zero)
	}
}

func newLikedByViewerBatchFn(repo likeRepo, viewerID uuid.UUID, authenticated bool) dataloader.BatchFunc[uuid.UUID, bool] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[bool] {
		if !authenticated {
			results := make([]*dataloader.Result[bool], len(keys))
			for i := range results {
				results[i] = &dataloader.Result[bool]{Data: false}
			}
			return results
		}

		liked, err := repo.LikedByUser(ctx, viewerID, keys)
		if err != nil {
			return errorResults[bool](len(keys), err)
		}

		byID := make(map[uuid.UUID]bool, len(liked))
		for _, id := range liked {
			byID[id] = true
		}

		return mapResults(keys, byID, func() bool { return false })
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// errorResults returns a slice of error results for all keys.
func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}

// mapResults maps grouped results back to key order, using defaultFn for missing keys.
func mapResults[V any](keys []uuid.UUID, grouped map[uuid.UUID]V, defaultFn func() V) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], len(keys))
	for i, key := range keys {
		if v, ok := grouped[key]; ok {
			results[i] = &dataloader.Result[V]{Data: v}
		} else {
			results[i] = &dataloader.Result[V]{Data: defaultFn()}
		}
	}
	return results
}

func zero() int { return 0 }
