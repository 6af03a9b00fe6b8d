package view

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/ideaboard/api/internal/domain"
)

// Assembler enriches domain entities into response views. One assembler is
// created per request; it carries the viewer identity and the batch loaders.
//
// Enrichment degrades rather than fails: a broken count resolves to 0, a
// missing or failed profile to a nil author, a failed viewer-state lookup to
// false. The base entity data is always returned.
type Assembler struct {
	loaders *Loaders
	log     *slog.Logger
}

// NewAssembler creates an assembler for one request. viewerID and
// authenticated describe the current viewer; anonymous viewers get
// IsLiked=false on every idea.
func NewAssembler(repos *Repos, viewerID uuid.UUID, authenticated bool, log *slog.Logger) *Assembler {
	return &Assembler{
		loaders: NewLoaders(repos, viewerID, authenticated),
		log:     log,
	}
}

// Topic assembles a single topic view.
func (a *Assembler) Topic(ctx context.Context, t *domain.Topic) Topic {
	views := a.Topics(ctx, []domain.Topic{*t})
	return views[0]
}

// Topics assembles topic views with authors and idea counts.
func (a *Assembler) Topics(ctx context.Context, topics []domain.Topic) []Topic {
	authorThunks := make([]dataloader.Thunk[*domain.User], len(topics))
	countThunks := make([]dataloader.Thunk[int], len(topics))
	for i, t := range topics {
		authorThunks[i] = a.loaders.ProfileByID.Load(ctx, t.CreatedBy)
		countThunks[i] = a.loaders.IdeaCountByTopicID.Load(ctx, t.ID)
	}

	views := make([]Topic, len(topics))
	for i, t := range topics {
		views[i] = Topic{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			CreatedBy:   t.CreatedBy,
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
			Author:      NewUser(a.resolveProfile(authorThunks[i], t.CreatedBy)),
			IdeaCount:   a.resolveCount(countThunks[i], "idea_count", t.ID),
		}
	}

	return views
}

// Ideas assembles idea views with authors, like/comment counts, and the
// viewer's like state.
func (a *Assembler) Ideas(ctx context.Context, ideas []domain.Idea) []Idea {
	authorThunks := make([]dataloader.Thunk[*domain.User], len(ideas))
	likeThunks := make([]dataloader.Thunk[int], len(ideas))
	commentThunks := make([]dataloader.Thunk[int], len(ideas))
	likedThunks := make([]dataloader.Thunk[bool], len(ideas))
	for i, id := range ideas {
		authorThunks[i] = a.loaders.ProfileByID.Load(ctx, id.CreatedBy)
		likeThunks[i] = a.loaders.LikeCountByIdeaID.Load(ctx, id.ID)
		commentThunks[i] = a.loaders.CommentCountByIdeaID.Load(ctx, id.ID)
		likedThunks[i] = a.loaders.LikedByViewer.Load(ctx, id.ID)
	}

	views := make([]Idea, len(ideas))
	for i, id := range ideas {
		views[i] = Idea{
			ID:           id.ID,
			TopicID:      id.TopicID,
			Content:      id.Content,
			CreatedBy:    id.CreatedBy,
			CreatedAt:    id.CreatedAt,
			UpdatedAt:    id.UpdatedAt,
			Author:       NewUser(a.resolveProfile(authorThunks[i], id.CreatedBy)),
			LikeCount:    a.resolveCount(likeThunks[i], "like_count", id.ID),
			CommentCount: a.resolveCount(commentThunks[i], "comment_count", id.ID),
			IsLiked:      a.resolveLiked(likedThunks[i], id.ID),
		}
	}

	return views
}

// Idea assembles a single idea view.
func (a *Assembler) Idea(ctx context.Context, id *domain.Idea) Idea {
	views := a.Ideas(ctx, []domain.Idea{*id})
	return views[0]
}

// Comments assembles comment views with authors.
func (a *Assembler) Comments(ctx context.Context, comments []domain.Comment) []Comment {
	authorThunks := make([]dataloader.Thunk[*domain.User], len(comments))
	for i, c := range comments {
		authorThunks[i] = a.loaders.ProfileByID.Load(ctx, c.UserID)
	}

	views := make([]Comment, len(comments))
	for i, c := range comments {
		views[i] = Comment{
			ID:        c.ID,
			IdeaID:    c.IdeaID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
			Author:    NewUser(a.resolveProfile(authorThunks[i], c.UserID)),
		}
	}

	return views
}

// Comment assembles a single comment view.
func (a *Assembler) Comment(ctx context.Context, c *domain.Comment) Comment {
	views := a.Comments(ctx, []domain.Comment{*c})
	return views[0]
}

// Likes assembles like views with liking-user profiles.
func (a *Assembler) Likes(ctx context.Context, likes []domain.Like) []Like {
	userThunks := make([]dataloader.Thunk[*domain.User], len(likes))
	for i, l := range likes {
		userThunks[i] = a.loaders.ProfileByID.Load(ctx, l.UserID)
	}

	views := make([]Like, len(likes))
	for i, l := range likes {
		views[i] = Like{
			ID:        l.ID,
			IdeaID:    l.IdeaID,
			CreatedAt: l.CreatedAt,
			User:      NewUser(a.resolveProfile(userThunks[i], l.UserID)),
		}
	}

	return views
}

func (a *Assembler) resolveProfile(thunk dataloader.Thunk[*domain.User], userID uuid.UUID) *domain.User {
	u, err := thunk()
	if err != nil {
		a.log.Warn("profile load failed, omitting author", "user_id", userID, "error", err)
		return nil
	}
	return u
}

func (a *Assembler) resolveCount(thunk dataloader.Thunk[int], field string, entityID uuid.UUID) int {
	n, err := thunk()
	if err != nil {
		a.log.Warn("count load failed, defaulting to zero", "field", field, "id", entityID, "error", err)
		return 0
	}
	return n
}

func (a *Assembler) resolveLiked(thunk dataloader.Thunk[bool], ideaID uuid.UUID) bool {
	liked, err := thunk()
	if err != nil {
		a.log.Warn("viewer like-state load failed, defaulting to false", "idea_id", ideaID, "error", err)
		return false
	}
	return liked
}
