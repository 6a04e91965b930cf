package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/queueshq/queues-service/internal/api/dto"
	"github.com/queueshq/queues-service/internal/service"
	apperrors "github.com/queueshq/queues-service/pkg/util"
)

// KnowledgebaseHandler exposes admin CRUD for the knowledgebase and canned
// responses.
type KnowledgebaseHandler struct {
	kb     *service.KnowledgebaseService
	logger *zap.Logger
}

// NewKnowledgebaseHandler constructs the handler.
func NewKnowledgebaseHandler(kb *service.KnowledgebaseService, logger *zap.Logger) *KnowledgebaseHandler {
	return &KnowledgebaseHandler{kb: kb, logger: logger}
}

// CreateCategory handles POST /admin/kb/categories.
func (h *KnowledgebaseHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.NamedRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	category, err := h.kb.CreateCategory(c.UserContext(), req.Name)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NamedResponse{ID: category.ID, Name: category.Name})
}

// RenameCategory handles PUT /admin/kb/categories/:id.
func (h *KnowledgebaseHandler) RenameCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.NamedRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := h.kb.RenameCategory(c.UserContext(), id, req.Name); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteCategory handles DELETE /admin/kb/categories/:id.
func (h *KnowledgebaseHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.kb.DeleteCategory(c.UserContext(), id); err != nil {
		return apperrors.MapError(err)
	}
	h.logger.Info("kb category deleted", zap.Int64("kb_category_id", id))
	return c.SendStatus(fiber.StatusNoContent)
}

// ListCategories handles GET /admin/kb/categories.
func (h *KnowledgebaseHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.kb.ListCategories(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewKBCategoryListResponse(categories))
}

// CreateArticle handles POST /admin/kb/articles.
func (h *KnowledgebaseHandler) CreateArticle(c *fiber.Ctx) error {
	var req dto.KBArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	article := req.ToDomain(0)
	if err := h.kb.CreateArticle(c.UserContext(), article); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewKBArticleResponse(article))
}

// UpdateArticle handles PUT /admin/kb/articles/:id.
func (h *KnowledgebaseHandler) UpdateArticle(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.KBArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := h.kb.UpdateArticle(c.UserContext(), req.ToDomain(id)); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteArticle handles DELETE /admin/kb/articles/:id.
func (h *KnowledgebaseHandler) DeleteArticle(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.kb.DeleteArticle(c.UserContext(), id); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetArticle handles GET /admin/kb/articles/:id.
func (h *KnowledgebaseHandler) GetArticle(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	article, err := h.kb.GetArticle(c.UserContext(), id)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewKBArticleResponse(article))
}

// ListArticles handles GET /admin/kb/articles, optionally filtered by
// ?kb_category_id=.
func (h *KnowledgebaseHandler) ListArticles(c *fiber.Ctx) error {
	var kbCategoryID *int64
	if raw := c.Query("kb_category_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return apperrors.NewValidationError("invalid kb_category_id", nil)
		}
		kbCategoryID = &parsed
	}

	articles, err := h.kb.ListArticles(c.UserContext(), kbCategoryID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewKBArticleListResponse(articles))
}

// CreateCannedResponse handles POST /admin/canned-responses.
func (h *KnowledgebaseHandler) CreateCannedResponse(c *fiber.Ctx) error {
	var req dto.CannedResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	canned := req.ToDomain(0)
	if err := h.kb.CreateCannedResponse(c.UserContext(), canned); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{ID: canned.ID})
}

// UpdateCannedResponse handles PUT /admin/canned-responses/:id.
func (h *KnowledgebaseHandler) UpdateCannedResponse(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CannedResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := h.kb.UpdateCannedResponse(c.UserContext(), req.ToDomain(id)); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteCannedResponse handles DELETE /admin/canned-responses/:id.
func (h *KnowledgebaseHandler) DeleteCannedResponse(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.kb.DeleteCannedResponse(c.UserContext(), id); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListCannedResponses handles GET /admin/canned-responses.
func (h *KnowledgebaseHandler) ListCannedResponses(c *fiber.Ctx) error {
	canned, err := h.kb.ListCannedResponses(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewCannedResponseListResponse(canned))
}
