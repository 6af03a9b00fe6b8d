package comment

import (
	"context"

	"github.com/google/uuid"

	commentpg "github.com/ideaboard/api/internal/adapter/postgres/comment"
	ideapg "github.com/ideaboard/api/internal/adapter/postgres/idea"
	"github.com/ideaboard/api/internal/adapter/postgres/like"
	"github.com/ideaboard/api/internal/domain"
	"github.com/ideaboard/api/internal/view"
)

var _ commentRepo = &commentRepoMock{}

type commentRepoMock struct {
	GetByIDFunc    func(ctx context.Context, commentID uuid.UUID) (*domain.Comment, error)
	ListByIdeaFunc func(ctx context.Context, ideaID uuid.UUID) ([]domain.Comment, error)
	CreateFunc     func(ctx context.Context, ideaID, userID uuid.UUID, content string) (*domain.Comment, error)
	UpdateFunc     func(ctx context.Context, commentID, userID uuid.UUID, content string) (*domain.Comment, error)
	DeleteFunc     func(ctx context.Context, commentID, userID uuid.UUID) error

	updateCalls int
	deleteCalls int
}

func (m *commentRepoMock) GetByID(ctx context.Context, commentID uuid.UUID) (*domain.Comment, error) {
	return m.GetByIDFunc(ctx, commentID)
}

func (m *commentRepoMock) ListByIdea(ctx context.Context, ideaID uuid.UUID) ([]domain.Comment, error) {
	return m.ListByIdeaFunc(ctx, ideaID)
}

func (m *commentRepoMock) Create(ctx context.Context, ideaID, userID uuid.UUID, content string) (*domain.Comment, error) {
	return m.CreateFunc(ctx, ideaID, userID, content)
}

func (m *commentRepoMock) Update(ctx context.Context, commentID, userID uuid.UUID, content string) (*domain.Comment, error) {
	m.updateCalls++
	return m.UpdateFunc(ctx, commentID, userID, content)
}

func (m *commentRepoMock) Delete(ctx context.Context, commentID, userID uuid.UUID) error {
	m.deleteCalls++
	return m.DeleteFunc(ctx, commentID, userID)
}

var _ ideaRepo = &ideaRepoMock{}

type ideaRepoMock struct {
	GetByIDFunc func(ctx context.Context, ideaID uuid.UUID) (*domain.Idea, error)
}

func (m *ideaRepoMock) GetByID(ctx context.Context, ideaID uuid.UUID) (*domain.Idea, error) {
	return m.GetByIDFunc(ctx, ideaID)
}

// ---------------------------------------------------------------------------
// View repo fakes
// ---------------------------------------------------------------------------

type profileRepoFake struct {
	users map[uuid.UUID]domain.User
}

func (f *profileRepoFake) GetByIDs(_ context.Context, ids []uuid.UUID) ([]domain.User, error) {
	result := []domain.User{}
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			result = append(result, u)
		}
	}
	return result, nil
}

type ideaCountFake struct{}

func (ideaCountFake) CountByTopicIDs(_ context.Context, _ []uuid.UUID) ([]ideapg.CountByTopic, error) {
	return []ideapg.CountByTopic{}, nil
}

type likeCountFake struct{}

func (likeCountFake) CountByIdeaIDs(_ context.Context, _ []uuid.UUID) ([]like.CountByIdea, error) {
	return []like.CountByIdea{}, nil
}

func (likeCountFake) LikedByUser(_ context.Context, _ uuid.UUID, _ []uuid.UUID) ([]uuid.UUID, error) {
	return []uuid.UUID{}, nil
}

type commentCountFake struct{}

func (commentCountFake) CountByIdeaIDs(_ context.Context, _ []uuid.UUID) ([]commentpg.CountByIdea, error) {
	return []commentpg.CountByIdea{}, nil
}

func fakeViews(users map[uuid.UUID]domain.User) *view.Repos {
	return &view.Repos{
		Profile: &profileRepoFake{users: users},
		Idea:    ideaCountFake{},
		Like:    likeCountFake{},
		Comment: commentCountFake{},
	}
}
