package domain

import (
	"time"

	"github.com/google/uuid"
)

// Topic is a discussion thread container. Only the creator may update or
// delete it; deleting a topic cascades to its ideas at the storage layer.
type Topic struct {
	ID          uuid.UUID
	Title       string
	Description *string
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TopicUpdateParams holds a partial update: nil means "leave unchanged",
// a pointer to "" clears the description.
type TopicUpdateParams struct {
	Title       *string
	Description *string
}

// Idea is a user-submitted entry under a topic.
type Idea struct {
	ID        uuid.UUID
	TopicID   uuid.UUID
	Content   string
	CreatedBy uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Like is a viewer's endorsement of an idea. At most one per (idea, user).
type Like struct {
	ID        uuid.UUID
	IdeaID    uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
}

// Comment is a remark attached to an idea. Only its author may edit or
// delete it.
type Comment struct {
	ID        uuid.UUID
	IdeaID    uuid.UUID
	UserID    uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
