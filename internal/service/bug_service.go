package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/bug-tracker/internal/domain"
	"github.com/spec-kit/bug-tracker/internal/events"
	"github.com/spec-kit/bug-tracker/internal/persistence"
	"github.com/spec-kit/bug-tracker/internal/repository"
	apperrors "github.com/spec-kit/bug-tracker/pkg/util"
)

// BugService coordinates bug workflows: validation, defaults, persistence,
// cache maintenance and event publication.
type BugService struct {
	bugs       repository.BugRepository
	cache      *persistence.BugCache
	dispatcher events.Dispatcher
}

// BugDependencies bundles collaborators for the bug service.
type BugDependencies struct {
	BugRepo    repository.BugRepository
	Cache      *persistence.BugCache
	Dispatcher events.Dispatcher
}

// BugCreateInput describes bug creation payload.
type BugCreateInput struct {
	Title       string
	Description string
	Status      domain.BugStatus
	Priority    domain.BugPriority
}

// BugUpdateInput describes a partial update. Nil fields are left untouched.
type BugUpdateInput struct {
	Title       *string
	Description *string
	Status      *domain.BugStatus
	Priority    *domain.BugPriority
}

// NewBugService constructs the service.
func NewBugService(deps BugDependencies) *BugService {
	return &BugService{
		bugs:       deps.BugRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
	}
}

// CreateBug validates input, applies defaults and persists a new bug.
func (s *BugService) CreateBug(ctx context.Context, input BugCreateInput) (*domain.Bug, error) {
	bug := &domain.Bug{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      input.Status,
		Priority:    input.Priority,
	}
	if bug.Status == "" {
		bug.Status = domain.BugStatusOpen
	}
	if bug.Priority == "" {
		bug.Priority = domain.BugPriorityMedium
	}
	if problems := bug.Validate(); len(problems) > 0 {
		return nil, apperrors.NewValidationError("validation failed", problems)
	}

	if err := s.bugs.Create(ctx, bug); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:  events.EventBugCreated,
		BugID: bug.ID,
		Payload: events.BugCreatedPayload{
			Title:    bug.Title,
			Status:   bug.Status,
			Priority: bug.Priority,
		},
	})
	return bug, nil
}

// GetBug fetches a single bug, consulting the read cache first.
func (s *BugService) GetBug(ctx context.Context, id string) (*domain.Bug, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if cached, err := s.cache.Get(ctx, id); err == nil {
		return cached, nil
	}
	bug, err := s.bugs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, bug)
	return bug, nil
}

// ListBugs returns every bug, newest first.
func (s *BugService) ListBugs(ctx context.Context) ([]domain.Bug, error) {
	return s.bugs.ListAll(ctx)
}

// UpdateBug applies a partial update, validates the result and refreshes
// updated_at through the repository.
func (s *BugService) UpdateBug(ctx context.Context, id string, input BugUpdateInput) (*domain.Bug, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	bug, err := s.bugs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := bug.Status
	oldPriority := bug.Priority
	if input.Title != nil {
		bug.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		bug.Description = strings.TrimSpace(*input.Description)
	}
	if input.Status != nil {
		bug.Status = *input.Status
	}
	if input.Priority != nil {
		bug.Priority = *input.Priority
	}
	if problems := bug.Validate(); len(problems) > 0 {
		return nil, apperrors.NewValidationError("validation failed", problems)
	}

	if err := s.bugs.Update(ctx, bug); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, bug.ID)
	s.publishEvent(ctx, events.Event{
		Type:  events.EventBugUpdated,
		BugID: bug.ID,
		Payload: events.BugUpdatedPayload{
			OldStatus:   oldStatus,
			NewStatus:   bug.Status,
			OldPriority: oldPriority,
			NewPriority: bug.Priority,
		},
	})
	return bug, nil
}

// DeleteBug removes a bug permanently. There is no soft-delete.
func (s *BugService) DeleteBug(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	bug, err := s.bugs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.bugs.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, id)
	s.publishEvent(ctx, events.Event{
		Type:  events.EventBugDeleted,
		BugID: id,
		Payload: events.BugDeletedPayload{
			Title: bug.Title,
		},
	})
	return nil
}

// checkID rejects malformed identifiers before they reach the store. A bad id
// can never match a record, so it surfaces as not-found.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewNotFound("bug")
	}
	return nil
}

func (s *BugService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
