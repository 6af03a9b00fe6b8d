package idea

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ideaboard/api/internal/config"
	"github.com/ideaboard/api/internal/domain"
)

// CreateIdeaInput holds the parameters for posting an idea to a topic.
type CreateIdeaInput struct {
	TopicID uuid.UUID
	Content string
}

// Validate checks all fields and collects all errors.
func (i CreateIdeaInput) Validate(limits config.BoardConfig) error {
	var errs []domain.FieldError

	if i.TopicID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "topic_id", Message: "required"})
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

// UpdateIdeaInput holds the parameters for editing an idea.
type UpdateIdeaInput struct {
	IdeaID  uuid.UUID
	Content string
}

// Validate checks all fields and collects all errors.
func (i UpdateIdeaInput) Validate(limits config.BoardConfig) error {
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
