package comment

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ideaboard/api/internal/config"
	"github.com/ideaboard/api/internal/domain"
)

// CreateCommentInput holds the parameters for commenting on an idea.
type CreateCommentInput struct {
	IdeaID  uuid.UUID
	Content string
}

// Validate checks all fields and collects all errors.
func (i CreateCommentInput) Validate(limits config.BoardConfig) error {
	var errs []domain.FieldError

	if i.IdeaID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "idea_id", Message: "required"})
	}

	content := strings.TrimSpace(i.Content)
	if content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if len(content) > limits.MaxContentLen {
		errs = append(errs, domain.FieldError{Field: "content", Message: fmt.Sprintf("max %d characters", limits.MaxContentLen)})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateCommentInput holds the parameters for editing a comment.
type UpdateCommentInput struct {
	CommentID uuid.UUID
	Content   string
}

// Validate checks all fields and collects all errors.
func (i UpdateCommentInput) Validate(limits config.BoardConfig) error {
	var errs []domain.FieldError

	if i.CommentID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "comment_id", Message: "required"})
	}

	content := strings.TrimSpace(i.Content)
	if content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if len(content) > limits.MaxContentLen {
		errs = append(errs, domain.FieldError{Field: "content", Message: fmt.Sprintf("max %d characters", limits.MaxContentLen)})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
