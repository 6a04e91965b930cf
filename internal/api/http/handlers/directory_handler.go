package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/queueshq/queues-service/internal/api/dto"
	"github.com/queueshq/queues-service/internal/service"
	apperrors "github.com/queueshq/queues-service/pkg/util"
)

// DirectoryHandler exposes admin CRUD for organizations, agents and
// requesters.
type DirectoryHandler struct {
	directory *service.DirectoryService
	logger    *zap.Logger
}

// NewDirectoryHandler constructs the handler.
func NewDirectoryHandler(directory *service.DirectoryService, logger *zap.Logger) *DirectoryHandler {
	return &DirectoryHandler{directory: directory, logger: logger}
}

// CreateOrganization handles POST /admin/organizations.
func (h *DirectoryHandler) CreateOrganization(c *fiber.Ctx) error {
	var req dto.OrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	org := req.ToDomain(0)
	if err := h.directory.CreateOrganization(c.UserContext(), org); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{ID: org.ID})
}

// UpdateOrganization handles PUT /admin/organizations/:id.
func (h *DirectoryHandler) UpdateOrganization(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.OrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := h.directory.UpdateOrganization(c.UserContext(), req.ToDomain(id)); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteOrganization handles DELETE /admin/organizations/:id.
func (h *DirectoryHandler) DeleteOrganization(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.directory.DeleteOrganization(c.UserContext(), id); err != nil {
		return apperrors.MapError(err)
	}
	h.logger.Info("organization deleted", zap.Int64("organization_id", id))
	return c.SendStatus(fiber.StatusNoContent)
}

// ListOrganizations handles GET /admin/organizations.
func (h *DirectoryHandler) ListOrganizations(c *fiber.Ctx) error {
	orgs, err := h.directory.ListOrganizations(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewOrganizationListResponse(orgs))
}

// RegisterAgent handles POST /admin/agents.
func (h *DirectoryHandler) RegisterAgent(c *fiber.Ctx) error {
	var req dto.RegisterAgentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	agent, err := h.directory.RegisterAgent(c.UserContext(), req.PlatformUserID, req.QueueIDs)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AgentResponse{
		ID:             agent.ID,
		PlatformUserID: agent.PlatformUserID,
		QueueIDs:       req.QueueIDs,
	})
}

// UpdateAgentQueues handles PUT /admin/agents/:id/queues.
func (h *DirectoryHandler) UpdateAgentQueues(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateAgentQueuesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := h.directory.UpdateAgentQueues(c.UserContext(), id, req.QueueIDs); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteAgent handles DELETE /admin/agents/:id.
func (h *DirectoryHandler) DeleteAgent(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.directory.DeleteAgent(c.UserContext(), id); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListAgents handles GET /admin/agents.
func (h *DirectoryHandler) ListAgents(c *fiber.Ctx) error {
	agents, err := h.directory.ListAgents(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewAgentListResponse(agents))
}

// RegisterUser handles POST /admin/users.
func (h *DirectoryHandler) RegisterUser(c *fiber.Ctx) error {
	var req dto.RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	user, err := h.directory.RegisterUser(c.UserContext(), req.PlatformUserID, req.OrganizationID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.UserResponse{
		ID:             user.ID,
		PlatformUserID: user.PlatformUserID,
		OrganizationID: user.OrganizationID,
	})
}

// DeleteUser handles DELETE /admin/users/:id.
func (h *DirectoryHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.directory.DeleteUser(c.UserContext(), id); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListUsers handles GET /admin/users.
func (h *DirectoryHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.directory.ListUsers(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewUserListResponse(users))
}
