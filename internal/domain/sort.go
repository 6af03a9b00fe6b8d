package domain

import "fmt"

// SortOption selects the ordering of an assembled idea collection.
type SortOption string

const (
	SortNewest        SortOption = "newest"
	SortMostLiked     SortOption = "most_liked"
	SortMostCommented SortOption = "most_commented"
)

// ParseSortOption validates a raw sort string. An empty string defaults
// to SortNewest.
func ParseSortOption(raw string) (SortOption, error) {
	switch SortOption(raw) {
	case "":
		return SortNewest, nil
	case SortNewest, SortMostLiked, SortMostCommented:
		return SortOption(raw), nil
	default:
		return "", fmt.Errorf("%w: unknown sort option %q", ErrValidation, raw)
	}
}
