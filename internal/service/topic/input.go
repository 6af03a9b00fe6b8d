package topic

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ideaboard/api/internal/config"
	"github.com/ideaboard/api/internal/domain"
)

// CreateTopicInput holds the parameters for creating a topic.
type CreateTopicInput struct {
	Title       string
	Description *string
}

// Validate checks all fields and collects all errors.
func (i CreateTopicInput) Validate(limits config.BoardConfig) error {
	var errs []domain.FieldError

	title := strings.TrimSpace(i.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(title) > limits.MaxTitleLen {
		errs = append(errs, domain.FieldError{Field: "title", Message: fmt.Sprintf("max %d characters", limits.MaxTitleLen)})
	}

	if i.Description != nil && len(strings.TrimSpace(*i.Description)) > limits.MaxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: fmt.Sprintf("max %d characters", limits.MaxDescriptionLen)})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateTopicInput holds the parameters for updating a topic.
type UpdateTopicInput struct {
	TopicID     uuid.UUID
	Title       *string
	Description *string // nil = don't change; ptr("") = clear
}

// Validate checks all fields and collects all errors.
func (i UpdateTopicInput) Validate(limits config.BoardConfig) error {
	var errs []domain.FieldError

	if i.TopicID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "topic_id", Message: "required"})
	}
	if i.Title == nil && i.Description == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Title != nil {
		title := strings.TrimSpace(*i.Title)
		if title == "" {
			errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
		}
		if len(title) > limits.MaxTitleLen {
			errs = append(errs, domain.FieldError{Field: "title", Message: fmt.Sprintf("max %d characters", limits.MaxTitleLen)})
		}
	}
	if i.Description != nil && len(*i.Description) > limits.MaxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: fmt.Sprintf("max %d characters", limits.MaxDescriptionLen)})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DeleteTopicInput holds the parameters for deleting a topic.
type DeleteTopicInput struct {
	TopicID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i DeleteTopicInput) Validate() error {
	if i.TopicID == uuid.Nil {
		return domain.NewValidationError("topic_id", "required")
	}
	return nil
}
