package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/queueshq/queues-service/internal/api/dto"
	"github.com/queueshq/queues-service/internal/domain"
	"github.com/queueshq/queues-service/internal/service"
	apperrors "github.com/queueshq/queues-service/pkg/util"
)

// TaxonomyHandler exposes admin CRUD for categories, statuses, priorities
// and help topics.
type TaxonomyHandler struct {
	taxonomy *service.TaxonomyService
	logger   *zap.Logger
}

// NewTaxonomyHandler constructs the handler.
func NewTaxonomyHandler(taxonomy *service.TaxonomyService, logger *zap.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomy: taxonomy, logger: logger}
}

// CreateCategory handles POST /admin/categories.
func (h *TaxonomyHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.NamedRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	category, err := h.taxonomy.CreateCategory(c.UserContext(), req.Name)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NamedResponse{ID: category.ID, Name: category.Name})
}

// RenameCategory handles PUT /admin/categories/:id.
func (h *TaxonomyHandler) RenameCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.NamedRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := h.taxonomy.RenameCategory(c.UserContext(), id, req.Name); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteCategory handles DELETE /admin/categories/:id.
func (h *TaxonomyHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.taxonomy.DeleteCategory(c.UserContext(), id); err != nil {
		return apperrors.MapError(err)
	}
	h.logger.Info("category deleted", zap.Int64("category_id", id))
	return c.SendStatus(fiber.StatusNoContent)
}

// ListCategories handles GET /admin/categories.
func (h *TaxonomyHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.taxonomy.ListCategories(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewCategoryListResponse(categories))
}

// CreateStatus handles POST /admin/statuses.
func (h *TaxonomyHandler) CreateStatus(c *fiber.Ctx) error {
	var req dto.NamedRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	status, err := h.taxonomy.CreateStatus(c.UserContext(), req.Name)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NamedResponse{ID: status.ID, Name: status.Name})
}

// RenameStatus handles PUT /admin/statuses/:id.
func (h *TaxonomyHandler) RenameStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.NamedRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := h.taxonomy.RenameStatus(c.UserContext(), id, req.Name); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteStatus handles DELETE /admin/statuses/:id.
func (h *TaxonomyHandler) DeleteStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.taxonomy.DeleteStatus(c.UserContext(), id); err != nil {
		return apperrors.MapError(err)
	}
	h.logger.Warn("status deleted; its tickets were cascade-deleted", zap.Int64("status_id", id))
	return c.SendStatus(fiber.StatusNoContent)
}

// ListStatuses handles GET /admin/statuses.
func (h *TaxonomyHandler) ListStatuses(c *fiber.Ctx) error {
	statuses, err := h.taxonomy.ListStatuses(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewStatusListResponse(statuses))
}

// CreatePriority handles POST /admin/priorities.
func (h *TaxonomyHandler) CreatePriority(c *fiber.Ctx) error {
	var req dto.NamedRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	priority, err := h.taxonomy.CreatePriority(c.UserContext(), req.Name)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NamedResponse{ID: priority.ID, Name: priority.Name})
}

// RenamePriority handles PUT /admin/priorities/:id.
func (h *TaxonomyHandler) RenamePriority(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.NamedRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := h.taxonomy.RenamePriority(c.UserContext(), id, req.Name); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeletePriority handles DELETE /admin/priorities/:id.
func (h *TaxonomyHandler) DeletePriority(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.taxonomy.DeletePriority(c.UserContext(), id); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListPriorities handles GET /admin/priorities.
func (h *TaxonomyHandler) ListPriorities(c *fiber.Ctx) error {
	priorities, err := h.taxonomy.ListPriorities(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewPriorityListResponse(priorities))
}

// CreateHelpTopic handles POST /admin/help-topics.
func (h *TaxonomyHandler) CreateHelpTopic(c *fiber.Ctx) error {
	var req dto.HelpTopicRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	topic, err := h.taxonomy.CreateHelpTopic(c.UserContext(), req.Topic, domain.HelpTopicType(req.Type))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.HelpTopicResponse{ID: topic.ID, Topic: topic.Topic, Type: string(topic.Type)})
}

// UpdateHelpTopic handles PUT /admin/help-topics/:id.
func (h *TaxonomyHandler) UpdateHelpTopic(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.HelpTopicRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	topic := &domain.HelpTopic{ID: id, Topic: req.Topic, Type: domain.HelpTopicType(req.Type)}
	if err := h.taxonomy.UpdateHelpTopic(c.UserContext(), topic); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteHelpTopic handles DELETE /admin/help-topics/:id.
func (h *TaxonomyHandler) DeleteHelpTopic(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.taxonomy.DeleteHelpTopic(c.UserContext(), id); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListHelpTopics handles GET /admin/help-topics.
func (h *TaxonomyHandler) ListHelpTopics(c *fiber.Ctx) error {
	topics, err := h.taxonomy.ListHelpTopics(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewHelpTopicListResponse(topics))
}

// CreateCustomField handles POST /admin/custom-fields.
func (h *TaxonomyHandler) CreateCustomField(c *fiber.Ctx) error {
	var req dto.CreateCustomFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	field := &domain.CustomField{
		FieldLabel:  req.FieldLabel,
		FieldType:   req.FieldType,
		CategoryID:  req.CategoryID,
		HelpTopicID: req.HelpTopicID,
	}
	if err := h.taxonomy.CreateCustomField(c.UserContext(), field); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewCustomFieldResponse(field))
}

// UpdateCustomField handles PUT /admin/custom-fields/:id.
func (h *TaxonomyHandler) UpdateCustomField(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateCustomFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := h.taxonomy.UpdateCustomField(c.UserContext(), id, req.FieldLabel, req.FieldType); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteCustomField handles DELETE /admin/custom-fields/:id.
func (h *TaxonomyHandler) DeleteCustomField(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.taxonomy.DeleteCustomField(c.UserContext(), id); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListCustomFields handles GET /admin/custom-fields.
func (h *TaxonomyHandler) ListCustomFields(c *fiber.Ctx) error {
	fields, err := h.taxonomy.ListCustomFields(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewCustomFieldListResponse(fields))
}

// CreateReportCategory handles POST /admin/report-categories.
func (h *TaxonomyHandler) CreateReportCategory(c *fiber.Ctx) error {
	var req dto.CreateReportCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	category, err := h.taxonomy.CreateReportCategory(c.UserContext(), req.Name, req.ParentID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewReportCategoryResponse(category))
}

// UpdateReportCategory handles PUT /admin/report-categories/:id.
func (h *TaxonomyHandler) UpdateReportCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateReportCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	category := &domain.ReportCategory{
		ID:       id,
		Name:     req.Name,
		ParentID: req.ParentID,
		Required: req.Required,
	}
	if err := h.taxonomy.UpdateReportCategory(c.UserContext(), category); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteReportCategory handles DELETE /admin/report-categories/:id.
func (h *TaxonomyHandler) DeleteReportCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.taxonomy.DeleteReportCategory(c.UserContext(), id); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListReportCategories handles GET /admin/report-categories.
func (h *TaxonomyHandler) ListReportCategories(c *fiber.Ctx) error {
	categories, err := h.taxonomy.ListReportCategories(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewReportCategoryListResponse(categories))
}
