package view

import "github.com/google/uuid"

// Key identifies a cached assembled view. Mutations return the keys they
// make stale; the transport layer invalidates them against the view cache.
type Key string

// TopicListKey covers the topic collection view.
func TopicListKey() Key {
	return "topics"
}

// TopicKey covers a single topic view.
func TopicKey(topicID uuid.UUID) Key {
	return Key("topic:" + topicID.String())
}

// IdeaListKey covers the idea collection view of a topic.
func IdeaListKey(topicID uuid.UUID) Key {
	return Key("ideas:" + topicID.String())
}

// LikeListKey covers the like collection view of an idea.
func LikeListKey(ideaID uuid.UUID) Key {
	return Key("likes:" + ideaID.String())
}

// CommentListKey covers the comment collection view of an idea.
func CommentListKey(ideaID uuid.UUID) Key {
	return Key("comments:" + ideaID.String())
}
