package topic

import (
	"context"

	"github.com/google/uuid"

	"github.com/ideaboard/api/internal/adapter/postgres/comment"
	"github.com/ideaboard/api/internal/adapter/postgres/idea"
	"github.com/ideaboard/api/internal/adapter/postgres/like"
	"github.com/ideaboard/api/internal/domain"
	"github.com/ideaboard/api/internal/view"
)

var _ topicRepo = &topicRepoMock{}

type topicRepoMock struct {
	CreateFunc  func(ctx context.Context, t *domain.Topic) (*domain.Topic, error)
	GetByIDFunc func(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error)
	UpdateFunc  func(ctx context.Context, topicID, ownerID uuid.UUID, params domain.TopicUpdateParams) (*domain.Topic, error)
	DeleteFunc  func(ctx context.Context, topicID, ownerID uuid.UUID) error
	ListFunc    func(ctx context.Context) ([]domain.Topic, error)

	createCalls int
	updateCalls int
	deleteCalls int
}

func (m *topicRepoMock) Create(ctx context.Context, t *domain.Topic) (*domain.Topic, error) {
	m.createCalls++
	return m.CreateFunc(ctx, t)
}

func (m *topicRepoMock) GetByID(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error) {
	return m.GetByIDFunc(ctx, topicID)
}

func (m *topicRepoMock) Update(ctx context.Context, topicID, ownerID uuid.UUID, params domain.TopicUpdateParams) (*domain.Topic, error) {
	m.updateCalls++
	return m.UpdateFunc(ctx, topicID, ownerID, params)
}

func (m *topicRepoMock) Delete(ctx context.Context, topicID, ownerID uuid.UUID) error {
	m.deleteCalls++
	return m.DeleteFunc(ctx, topicID, ownerID)
}

func (m *topicRepoMock) List(ctx context.Context) ([]domain.Topic, error) {
	return m.ListFunc(ctx)
}

// ---------------------------------------------------------------------------
// View repo fakes for assembled reads
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

type ideaRepoFake struct {
	counts map[uuid.UUID]int
}

func (f *ideaRepoFake) CountByTopicIDs(_ context.Context, topicIDs []uuid.UUID) ([]idea.CountByTopic, error) {
	result := []idea.CountByTopic{}
	for _, id := range topicIDs {
		if n, ok := f.counts[id]; ok {
			result = append(result, idea.CountByTopic{TopicID: id, Count: n})
		}
	}
	return result, nil
}

type likeRepoFake struct{}

func (likeRepoFake) CountByIdeaIDs(_ context.Context, _ []uuid.UUID) ([]like.CountByIdea, error) {
	return []like.CountByIdea{}, nil
}

func (likeRepoFake) LikedByUser(_ context.Context, _ uuid.UUID, _ []uuid.UUID) ([]uuid.UUID, error) {
	return []uuid.UUID{}, nil
}

type commentRepoFake struct{}

func (commentRepoFake) CountByIdeaIDs(_ context.Context, _ []uuid.UUID) ([]comment.CountByIdea, error) {
	return []comment.CountByIdea{}, nil
}

func fakeViews(users map[uuid.UUID]domain.User, ideaCounts map[uuid.UUID]int) *view.Repos {
	return &view.Repos{
		Profile: &profileRepoFake{users: users},
		Idea:    &ideaRepoFake{counts: ideaCounts},
		Like:    likeRepoFake{},
		Comment: commentRepoFake{},
	}
}
