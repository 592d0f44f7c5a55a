package domain

import (
	"strings"
	"time"
)

// BugStatus enumerates lifecycle states for bug reports.
type BugStatus string

const (
	BugStatusOpen       BugStatus = "open"
	BugStatusInProgress BugStatus = "in-progress"
	BugStatusResolved   BugStatus = "resolved"
)

// BugPriority enumerates triage urgency.
type BugPriority string

const (
	BugPriorityLow    BugPriority = "low"
	BugPriorityMedium BugPriority = "medium"
	BugPriorityHigh   BugPriority = "high"
)

// IsValid reports whether the status is one of the closed set.
func (s BugStatus) IsValid() bool {
	switch s {
	case BugStatusOpen, BugStatusInProgress, BugStatusResolved:
		return true
	}
	return false
}

// IsValid reports whether the priority is one of the closed set.
func (p BugPriority) IsValid() bool {
	switch p {
	case BugPriorityLow, BugPriorityMedium, BugPriorityHigh:
		return true
	}
	return false
}

// Bug is the sole aggregate of the tracker.
type Bug struct {
	ID          string
	Title       string
	Description string
	Status      BugStatus
	Priority    BugPriority
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the persisted-record invariant: non-empty title and
// description, status and priority drawn from the closed enumerations.
// It returns a field->message map, empty when the bug is valid.
func (b *Bug) Validate() map[string]string {
	problems := map[string]string{}
	if strings.TrimSpace(b.Title) == "" {
		problems["title"] = "Title is required"
	}
	if strings.TrimSpace(b.Description) == "" {
		problems["description"] = "Description is required"
	}
	if !b.Status.IsValid() {
		problems["status"] = "Status must be one of: open, in-progress, resolved"
	}
	if !b.Priority.IsValid() {
		problems["priority"] = "Priority must be one of: low, medium, high"
	}
	return problems
}
