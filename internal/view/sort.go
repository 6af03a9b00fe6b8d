package view

import (
	"sort"

	"github.com/ideaboard/api/internal/domain"
)

// SortIdeas orders an assembled idea collection in place. The sort is
// stable: equal elements keep their incoming (newest-first fetch) order.
func SortIdeas(ideas []Idea, opt domain.SortOption) {
	switch opt {
	case domain.SortMostLiked:
		sort.SliceStable(ideas, func(i, j int) bool {
			return ideas[i].LikeCount > ideas[j].LikeCount
		})
	case domain.SortMostCommented:
		sort.SliceStable(ideas, func(i, j int) bool {
			return ideas[i].CommentCount > ideas[j].CommentCount
		})
	default: // newest
		sort.SliceStable(ideas, func(i, j int) bool {
			return ideas[i].CreatedAt.After(ideas[j].CreatedAt)
		})
	}
}
