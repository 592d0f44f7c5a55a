package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bug-tracker/internal/api/dto"
	"github.com/spec-kit/bug-tracker/internal/domain"
	"github.com/spec-kit/bug-tracker/internal/service"
	apperrors "github.com/spec-kit/bug-tracker/pkg/util"
)

// BugsHandler manages bug CRUD endpoints.
type BugsHandler struct {
	service *service.BugService
}

// NewBugsHandler constructs handler.
func NewBugsHandler(bugService *service.BugService) *BugsHandler {
	return &BugsHandler{service: bugService}
}

// ListBugs GET /bugs.
func (h *BugsHandler) ListBugs(c *fiber.Ctx) error {
	bugs, err := h.service.ListBugs(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.BugResponse, 0, len(bugs))
	for i := range bugs {
		items = append(items, bugResponse(&bugs[i]))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(items),
		"data":    items,
	})
}

// CreateBug POST /bugs.
func (h *BugsHandler) CreateBug(c *fiber.Ctx) error {
	var req dto.CreateBugRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.BugCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	}
	bug, err := h.service.CreateBug(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    bugResponse(bug),
	})
}

// GetBug GET /bugs/:id.
func (h *BugsHandler) GetBug(c *fiber.Ctx) error {
	bug, err := h.service.GetBug(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    bugResponse(bug),
	})
}

// UpdateBug PUT /bugs/:id.
func (h *BugsHandler) UpdateBug(c *fiber.Ctx) error {
	var req dto.UpdateBugRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.BugUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	}
	bug, err := h.service.UpdateBug(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    bugResponse(bug),
	})
}

// DeleteBug DELETE /bugs/:id.
func (h *BugsHandler) DeleteBug(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteBug(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.DeletedBugResponse{ID: id},
	})
}

func bugResponse(bug *domain.Bug) dto.BugResponse {
	return dto.BugResponse{
		ID:          bug.ID,
		Title:       bug.Title,
		Description: bug.Description,
		Status:      bug.Status,
		Priority:    bug.Priority,
		CreatedAt:   bug.CreatedAt,
		UpdatedAt:   bug.UpdatedAt,
	}
}
