package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/queueshq/queues-service/internal/api/dto"
	"github.com/queueshq/queues-service/internal/auth"
	"github.com/queueshq/queues-service/internal/service"
	apperrors "github.com/queueshq/queues-service/pkg/util"
)

// TicketsHandler exposes the ticket lifecycle over HTTP.
type TicketsHandler struct {
	tickets *service.TicketService
	logger  *zap.Logger
}

// NewTicketsHandler constructs the handler.
func NewTicketsHandler(tickets *service.TicketService, logger *zap.Logger) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, logger: logger}
}

// Create handles POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if problems := req.Validate(); problems != nil {
		return apperrors.NewValidationError("invalid ticket payload", problems)
	}

	ticketID, err := h.tickets.CreateTicket(c.UserContext(), principal.PlatformUserID, req.ForPlatformUserID, service.TicketCreateInput{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
		PriorityID: req.PriorityID,
	})
	if err != nil {
		return apperrors.MapError(err)
	}

	h.logger.Info("ticket created", zap.Int64("ticket_id", ticketID))
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{ID: ticketID})
}

// Update handles PATCH /tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	ticketID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}

	affected, err := h.tickets.UpdateTicket(c.UserContext(), principal.PlatformUserID, ticketID, req.ToInput())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.UpdatedResponse{Affected: affected})
}

// Get handles GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	ticketID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ticket, err := h.tickets.GetTicketByID(c.UserContext(), principal.PlatformUserID, ticketID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewTicketResponse(ticket))
}

// List handles GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	tickets, err := h.tickets.ListTicketsForAgent(c.UserContext(), principal.PlatformUserID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewTicketListResponse(tickets))
}

// Counts handles GET /tickets/counts.
func (h *TicketsHandler) Counts(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	counts, err := h.tickets.CountActiveByCategory(c.UserContext(), principal.PlatformUserID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.CountsResponse{Counts: counts})
}

// AddComment handles POST /tickets/:id/comments.
func (h *TicketsHandler) AddComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	ticketID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if req.Text == "" {
		return apperrors.NewValidationError("text required", nil)
	}

	commentID, err := h.tickets.AddComment(c.UserContext(), principal.PlatformUserID, ticketID, req.Text)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{ID: commentID})
}

// ListComments handles GET /tickets/:id/comments.
func (h *TicketsHandler) ListComments(c *fiber.Ctx) error {
	ticketID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	comments, err := h.tickets.ListComments(c.UserContext(), ticketID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewCommentListResponse(comments))
}

// ListHistory handles GET /tickets/:id/history.
func (h *TicketsHandler) ListHistory(c *fiber.Ctx) error {
	ticketID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	history, err := h.tickets.ListHistory(c.UserContext(), ticketID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewHistoryListResponse(history))
}

func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+name, nil)
	}
	return id, nil
}
