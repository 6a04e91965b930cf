package service

import (
	"context"
	"strings"

	"github.com/queueshq/queues-service/internal/domain"
	"github.com/queueshq/queues-service/internal/repository"
	apperrors "github.com/queueshq/queues-service/pkg/util"
)

// TaxonomyService manages the classification rows tickets reference:
// categories (queues), statuses, priorities and help topics.
type TaxonomyService struct {
	categories       repository.CategoryRepository
	statuses         repository.StatusRepository
	priorities       repository.PriorityRepository
	helpTopics       repository.HelpTopicRepository
	customFields     repository.CustomFieldRepository
	reportCategories repository.ReportCategoryRepository
	counts           countsInvalidator
}

type countsInvalidator interface {
	Bump(ctx context.Context)
}

// TaxonomyDependencies bundles repositories.
type TaxonomyDependencies struct {
	CategoryRepo       repository.CategoryRepository
	StatusRepo         repository.StatusRepository
	PriorityRepo       repository.PriorityRepository
	HelpTopicRepo      repository.HelpTopicRepository
	CustomFieldRepo    repository.CustomFieldRepository
	ReportCategoryRepo repository.ReportCategoryRepository
	Counts             countsInvalidator
}

// NewTaxonomyService constructs the service.
func NewTaxonomyService(deps TaxonomyDependencies) *TaxonomyService {
	return &TaxonomyService{
		categories:       deps.CategoryRepo,
		statuses:         deps.StatusRepo,
		priorities:       deps.PriorityRepo,
		helpTopics:       deps.HelpTopicRepo,
		customFields:     deps.CustomFieldRepo,
		reportCategories: deps.ReportCategoryRepo,
		counts:           deps.Counts,
	}
}

// CreateCategory adds a queue.
func (s *TaxonomyService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	category := &domain.Category{Name: name}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// RenameCategory updates a queue's name.
func (s *TaxonomyService) RenameCategory(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	return s.categories.Rename(ctx, id, name)
}

// DeleteCategory removes a queue. The schema cascades the delete to agent
// assignments, canned responses, custom fields and all tickets in the
// queue, and ticket deletion cascades further to comments and history.
func (s *TaxonomyService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.bump(ctx)
	return nil
}

// ListCategories returns queues ordered by name.
func (s *TaxonomyService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// CreateStatus adds a status row.
func (s *TaxonomyService) CreateStatus(ctx context.Context, name string) (*domain.Status, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	status := &domain.Status{Name: name}
	if err := s.statuses.Create(ctx, status); err != nil {
		return nil, err
	}
	return status, nil
}

// RenameStatus updates a status row's name.
func (s *TaxonomyService) RenameStatus(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	return s.statuses.Rename(ctx, id, name)
}

// DeleteStatus removes a status row. Tickets carrying the status are
// cascade-deleted by the schema; this matches the installed base even
// though it destroys data (see DESIGN.md).
func (s *TaxonomyService) DeleteStatus(ctx context.Context, id int64) error {
	if err := s.statuses.Delete(ctx, id); err != nil {
		return err
	}
	s.bump(ctx)
	return nil
}

// ListStatuses returns status rows ordered by id.
func (s *TaxonomyService) ListStatuses(ctx context.Context) ([]domain.Status, error) {
	return s.statuses.List(ctx)
}

// CreatePriority adds a priority row.
func (s *TaxonomyService) CreatePriority(ctx context.Context, name string) (*domain.Priority, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	priority := &domain.Priority{Name: name}
	if err := s.priorities.Create(ctx, priority); err != nil {
		return nil, err
	}
	return priority, nil
}

// RenamePriority updates a priority row's name.
func (s *TaxonomyService) RenamePriority(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	return s.priorities.Rename(ctx, id, name)
}

// DeletePriority removes a priority row; tickets keep running with the
// reference nulled.
func (s *TaxonomyService) DeletePriority(ctx context.Context, id int64) error {
	return s.priorities.Delete(ctx, id)
}

// ListPriorities returns priority rows ordered by id.
func (s *TaxonomyService) ListPriorities(ctx context.Context) ([]domain.Priority, error) {
	return s.priorities.List(ctx)
}

// CreateHelpTopic adds an intake topic.
func (s *TaxonomyService) CreateHelpTopic(ctx context.Context, topic string, topicType domain.HelpTopicType) (*domain.HelpTopic, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, apperrors.NewValidationError("topic required", nil)
	}
	if topicType != domain.HelpTopicIncident && topicType != domain.HelpTopicRequest {
		return nil, apperrors.NewValidationError("type must be incident or request", nil)
	}
	helpTopic := &domain.HelpTopic{Topic: topic, Type: topicType}
	if err := s.helpTopics.Create(ctx, helpTopic); err != nil {
		return nil, err
	}
	return helpTopic, nil
}

// UpdateHelpTopic modifies an intake topic.
func (s *TaxonomyService) UpdateHelpTopic(ctx context.Context, helpTopic *domain.HelpTopic) error {
	helpTopic.Topic = strings.TrimSpace(helpTopic.Topic)
	if helpTopic.Topic == "" {
		return apperrors.NewValidationError("topic required", nil)
	}
	if helpTopic.Type != domain.HelpTopicIncident && helpTopic.Type != domain.HelpTopicRequest {
		return apperrors.NewValidationError("type must be incident or request", nil)
	}
	return s.helpTopics.Update(ctx, helpTopic)
}

// DeleteHelpTopic removes an intake topic.
func (s *TaxonomyService) DeleteHelpTopic(ctx context.Context, id int64) error {
	return s.helpTopics.Delete(ctx, id)
}

// ListHelpTopics returns intake topics.
func (s *TaxonomyService) ListHelpTopics(ctx context.Context) ([]domain.HelpTopic, error) {
	return s.helpTopics.List(ctx)
}

// CreateCustomField adds an intake-form field. A field must hang off a
// category, a help topic, or both.
func (s *TaxonomyService) CreateCustomField(ctx context.Context, field *domain.CustomField) error {
	field.FieldLabel = strings.TrimSpace(field.FieldLabel)
	field.FieldType = strings.TrimSpace(field.FieldType)
	if field.FieldLabel == "" || field.FieldType == "" {
		return apperrors.NewValidationError("field_label and field_type required", nil)
	}
	if field.CategoryID == nil && field.HelpTopicID == nil {
		return apperrors.NewValidationError("a category or help topic association is required", nil)
	}
	return s.customFields.Create(ctx, field)
}

// UpdateCustomField changes a field's label and type. Associations cannot
// be moved after creation.
func (s *TaxonomyService) UpdateCustomField(ctx context.Context, id int64, fieldLabel, fieldType string) error {
	fieldLabel = strings.TrimSpace(fieldLabel)
	fieldType = strings.TrimSpace(fieldType)
	if fieldLabel == "" || fieldType == "" {
		return apperrors.NewValidationError("field_label and field_type required", nil)
	}
	return s.customFields.Update(ctx, id, fieldLabel, fieldType)
}

// DeleteCustomField removes an intake-form field.
func (s *TaxonomyService) DeleteCustomField(ctx context.Context, id int64) error {
	return s.customFields.Delete(ctx, id)
}

// ListCustomFields returns fields grouped by their association.
func (s *TaxonomyService) ListCustomFields(ctx context.Context) ([]domain.CustomField, error) {
	return s.customFields.List(ctx)
}

// CreateReportCategory adds a reporting-tree node. New child nodes start
// required; root nodes never are.
func (s *TaxonomyService) CreateReportCategory(ctx context.Context, name string, parentID *int64) (*domain.ReportCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	category := &domain.ReportCategory{
		Name:     name,
		ParentID: parentID,
		Required: parentID != nil,
	}
	if err := s.reportCategories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateReportCategory modifies a reporting-tree node. The required flag is
// forced off whenever the node has no parent.
func (s *TaxonomyService) UpdateReportCategory(ctx context.Context, category *domain.ReportCategory) error {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	if category.ParentID == nil {
		category.Required = false
	}
	return s.reportCategories.Update(ctx, category)
}

// DeleteReportCategory removes a node; children become roots via the
// schema's SET NULL.
func (s *TaxonomyService) DeleteReportCategory(ctx context.Context, id int64) error {
	return s.reportCategories.Delete(ctx, id)
}

// ListReportCategories returns the tree, roots first.
func (s *TaxonomyService) ListReportCategories(ctx context.Context) ([]domain.ReportCategory, error) {
	return s.reportCategories.List(ctx)
}

func (s *TaxonomyService) bump(ctx context.Context) {
	if s.counts != nil {
		s.counts.Bump(ctx)
	}
}
