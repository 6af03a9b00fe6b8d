package view

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ideaboard/api/internal/domain"
)

func TestSortIdeas_MostLiked(t *testing.T) {
	t.Parallel()

	a := Idea{ID: uuid.New(), LikeCount: 3}
	b := Idea{ID: uuid.New(), LikeCount: 1}
	c := Idea{ID: uuid.New(), LikeCount: 2}
	ideas := []Idea{b, c, a}

	SortIdeas(ideas, domain.SortMostLiked)

	got := []int{ideas[0].LikeCount, ideas[1].LikeCount, ideas[2].LikeCount}
	want := []int{3, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %d likes, want %d (order %v)", i, got[i], want[i], got)
		}
	}
}

func TestSortIdeas_MostCommented(t *testing.T) {
	t.Parallel()

	ideas := []Idea{
		{ID: uuid.New(), CommentCount: 0},
		{ID: uuid.New(), CommentCount: 5},
		{ID: uuid.New(), CommentCount: 2},
	}

	SortIdeas(ideas, domain.SortMostCommented)

	if ideas[0].CommentCount != 5 || ideas[1].CommentCount != 2 || ideas[2].CommentCount != 0 {
		t.Fatalf("unexpected order: %d, %d, %d", ideas[0].CommentCount, ideas[1].CommentCount, ideas[2].CommentCount)
	}
}

func TestSortIdeas_Newest(t *testing.T) {
	t.Parallel()

	now := time.Now()
	oldest := Idea{ID: uuid.New(), CreatedAt: now.Add(-2 * time.Hour)}
	newest := Idea{ID: uuid.New(), CreatedAt: now}
	middle := Idea{ID: uuid.New(), CreatedAt: now.Add(-time.Hour)}
	ideas := []Idea{oldest, newest, middle}

	SortIdeas(ideas, domain.SortNewest)

	if ideas[0].ID != newest.ID || ideas[1].ID != middle.ID || ideas[2].ID != oldest.ID {
		t.Fatal("expected newest-first order")
	}
}

func TestSortIdeas_StableOnTies(t *testing.T) {
	t.Parallel()

	first := Idea{ID: uuid.New(), LikeCount: 2}
	second := Idea{ID: uuid.New(), LikeCount: 2}
	third := Idea{ID: uuid.New(), LikeCount: 2}
	ideas := []Idea{first, second, third}

	SortIdeas(ideas, domain.SortMostLiked)

	// All tied: incoming order preserved.
	if ideas[0].ID != first.ID || ideas[1].ID != second.ID || ideas[2].ID != third.ID {
		t.Fatal("tie order not preserved")
	}
}
