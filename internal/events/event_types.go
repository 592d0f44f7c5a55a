package events

import (
	"time"

	"github.com/spec-kit/bug-tracker/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventBugCreated EventType = "bug_created"
	EventBugUpdated EventType = "bug_updated"
	EventBugDeleted EventType = "bug_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	BugID     string      `json:"bug_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// BugCreatedPayload payload.
type BugCreatedPayload struct {
	Title    string             `json:"title"`
	Status   domain.BugStatus   `json:"status"`
	Priority domain.BugPriority `json:"priority"`
}

// BugUpdatedPayload payload.
type BugUpdatedPayload struct {
	OldStatus   domain.BugStatus   `json:"old_status"`
	NewStatus   domain.BugStatus   `json:"new_status"`
	OldPriority domain.BugPriority `json:"old_priority"`
	NewPriority domain.BugPriority `json:"new_priority"`
}

// BugDeletedPayload payload.
type BugDeletedPayload struct {
	Title string `json:"title"`
}
