package idea

import (
	"context"

	"github.com/google/uuid"

	"github.com/ideaboard/api/internal/adapter/postgres/comment"
	ideapg "github.com/ideaboard/api/internal/adapter/postgres/idea"
	"github.com/ideaboard/api/internal/adapter/postgres/like"
	"github.com/ideaboard/api/internal/domain"
	"github.com/ideaboard/api/internal/view"
)

var _ ideaRepo = &ideaRepoMock{}

type ideaRepoMock struct {
	CreateFunc      func(ctx context.Context, i *domain.Idea) (*domain.Idea, error)
	GetByIDFunc     func(ctx context.Context, ideaID uuid.UUID) (*domain.Idea, error)
	UpdateFunc      func(ctx context.Context, ideaID, ownerID uuid.UUID, content string) (*domain.Idea, error)
	DeleteFunc      func(ctx context.Context, ideaID, ownerID uuid.UUID) error
	ListByTopicFunc func(ctx context.Context, topicID uuid.UUID) ([]domain.Idea, error)

	updateCalls int
	deleteCalls int
}

func (m *ideaRepoMock) Create(ctx context.Context, i *domain.Idea) (*domain.Idea, error) {
	return m.CreateFunc(ctx, i)
}

func (m *ideaRepoMock) GetByID(ctx context.Context, ideaID uuid.UUID) (*domain.Idea, error) {
	return m.GetByIDFunc(ctx, ideaID)
}

func (m *ideaRepoMock) Update(ctx context.Context, ideaID, ownerID uuid.UUID, content string) (*domain.Idea, error) {
	m.updateCalls++
	return m.UpdateFunc(ctx, ideaID, ownerID, content)
}

func (m *ideaRepoMock) Delete(ctx context.Context, ideaID, ownerID uuid.UUID) error {
	m.deleteCalls++
	return m.DeleteFunc(ctx, ideaID, ownerID)
}

func (m *ideaRepoMock) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]domain.Idea, error) {
	return m.ListByTopicFunc(ctx, topicID)
}

var _ topicRepo = &topicRepoMock{}

type topicRepoMock struct {
	GetByIDFunc func(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error)
}

func (m *topicRepoMock) GetByID(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error) {
	return m.GetByIDFunc(ctx, topicID)
}

var _ likeRepo = &likeRepoMock{}

// likeRepoMock keeps an in-memory like set so toggle tests can flip state.
type likeRepoMock struct {
	set map[uuid.UUID]map[uuid.UUID]bool // ideaID -> userID -> liked

	createCalls int
	deleteCalls int
}

func newLikeRepoMock() *likeRepoMock {
	return &likeRepoMock{set: map[uuid.UUID]map[uuid.UUID]bool{}}
}

func (m *likeRepoMock) Exists(_ context.Context, ideaID, userID uuid.UUID) (bool, error) {
	return m.set[ideaID][userID], nil
}

func (m *likeRepoMock) Create(_ context.Context, ideaID, userID uuid.UUID) (*domain.Like, error) {
	m.createCalls++
	if m.set[ideaID][userID] {
		return nil, domain.ErrAlreadyExists
	}
	if m.set[ideaID] == nil {
		m.set[ideaID] = map[uuid.UUID]bool{}
	}
	m.set[ideaID][userID] = true
	return &domain.Like{ID: uuid.New(), IdeaID: ideaID, UserID: userID}, nil
}

func (m *likeRepoMock) Delete(_ context.Context, ideaID, userID uuid.UUID) error {
	m.deleteCalls++
	delete(m.set[ideaID], userID)
	return nil
}

func (m *likeRepoMock) CountByIdea(_ context.Context, ideaID uuid.UUID) (int, error) {
	return len(m.set[ideaID]), nil
}

func (m *likeRepoMock) ListByIdea(_ context.Context, ideaID uuid.UUID) ([]domain.Like, error) {
	likes := []domain.Like{}
	for userID := range m.set[ideaID] {
		likes = append(likes, domain.Like{ID: uuid.New(), IdeaID: ideaID, UserID: userID})
	}
	return likes, nil
}

type txManagerMock struct{}

func (txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

type likeViewFake struct {
	counts map[uuid.UUID]int
	liked  map[uuid.UUID]bool
}

func (f *likeViewFake) CountByIdeaIDs(_ context.Context, ideaIDs []uuid.UUID) ([]like.CountByIdea, error) {
	result := []like.CountByIdea{}
	for _, id := range ideaIDs {
		if n, ok := f.counts[id]; ok {
			result = append(result, like.CountByIdea{IdeaID: id, Count: n})
		}
	}
	return result, nil
}

func (f *likeViewFake) LikedByUser(_ context.Context, _ uuid.UUID, ideaIDs []uuid.UUID) ([]uuid.UUID, error) {
	result := []uuid.UUID{}
	for _, id := range ideaIDs {
		if f.liked[id] {
			result = append(result, id)
		}
	}
	return result, nil
}

type commentViewFake struct {
	counts map[uuid.UUID]int
}

func (f *commentViewFake) CountByIdeaIDs(_ context.Context, ideaIDs []uuid.UUID) ([]comment.CountByIdea, error) {
	result := []comment.CountByIdea{}
	for _, id := range ideaIDs {
		if n, ok := f.counts[id]; ok {
			result = append(result, comment.CountByIdea{IdeaID: id, Count: n})
		}
	}
	return result, nil
}

func fakeViews(users map[uuid.UUID]domain.User, likeCounts, commentCounts map[uuid.UUID]int, liked map[uuid.UUID]bool) *view.Repos {
	return &view.Repos{
		Profile: &profileRepoFake{users: users},
		Idea:    ideaCountFake{},
		Like:    &likeViewFake{counts: likeCounts, liked: liked},
		Comment: &commentViewFake{counts: commentCounts},
	}
}
