package dto

import (
	"time"

	"github.com/spec-kit/bug-tracker/internal/domain"
)

// CreateBugRequest payload.
type CreateBugRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Status      domain.BugStatus   `json:"status"`
	Priority    domain.BugPriority `json:"priority"`
}

// UpdateBugRequest payload. Absent fields keep their stored values.
type UpdateBugRequest struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Status      *domain.BugStatus   `json:"status"`
	Priority    *domain.BugPriority `json:"priority"`
}

// BugResponse is the wire shape of a bug record.
type BugResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Status      domain.BugStatus   `json:"status"`
	Priority    domain.BugPriority `json:"priority"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// DeletedBugResponse confirms a removal.
type DeletedBugResponse struct {
	ID string `json:"id"`
}
