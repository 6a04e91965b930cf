package dto

import "github.com/queueshq/queues-service/internal/domain"

// NamedRequest covers create/rename bodies for categories, statuses and
// priorities.
type NamedRequest struct {
	Name string `json:"name"`
}

// NamedResponse is the wire shape of a name-only row.
type NamedResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewCategoryListResponse maps categories.
func NewCategoryListResponse(categories []domain.Category) []NamedResponse {
	result := make([]NamedResponse, 0, len(categories))
	for _, c := range categories {
		result = append(result, NamedResponse{ID: c.ID, Name: c.Name})
	}
	return result
}

// NewStatusListResponse maps statuses.
func NewStatusListResponse(statuses []domain.Status) []NamedResponse {
	result := make([]NamedResponse, 0, len(statuses))
	for _, s := range statuses {
		result = append(result, NamedResponse{ID: s.ID, Name: s.Name})
	}
	return result
}

// NewPriorityListResponse maps priorities.
func NewPriorityListResponse(priorities []domain.Priority) []NamedResponse {
	result := make([]NamedResponse, 0, len(priorities))
	for _, p := range priorities {
		result = append(result, NamedResponse{ID: p.ID, Name: p.Name})
	}
	return result
}

// HelpTopicRequest creates or updates an intake topic.
type HelpTopicRequest struct {
	Topic string `json:"topic"`
	Type  string `json:"type"`
}

// HelpTopicResponse is the wire shape of an intake topic.
type HelpTopicResponse struct {
	ID    int64  `json:"id"`
	Topic string `json:"topic"`
	Type  string `json:"type"`
}

// CreateCustomFieldRequest adds an intake-form field.
type CreateCustomFieldRequest struct {
	FieldLabel  string `json:"field_label"`
	FieldType   string `json:"field_type"`
	CategoryID  *int64 `json:"category_id,omitempty"`
	HelpTopicID *int64 `json:"help_topic_id,omitempty"`
}

// UpdateCustomFieldRequest changes a field's label and type.
type UpdateCustomFieldRequest struct {
	FieldLabel string `json:"field_label"`
	FieldType  string `json:"field_type"`
}

// CustomFieldResponse is the wire shape of an intake-form field.
type CustomFieldResponse struct {
	ID          int64  `json:"id"`
	FieldLabel  string `json:"field_label"`
	FieldType   string `json:"field_type"`
	CategoryID  *int64 `json:"category_id,omitempty"`
	HelpTopicID *int64 `json:"help_topic_id,omitempty"`
}

// NewCustomFieldResponse maps a domain field.
func NewCustomFieldResponse(f *domain.CustomField) CustomFieldResponse {
	return CustomFieldResponse{
		ID:          f.ID,
		FieldLabel:  f.FieldLabel,
		FieldType:   f.FieldType,
		CategoryID:  f.CategoryID,
		HelpTopicID: f.HelpTopicID,
	}
}

// NewCustomFieldListResponse maps intake-form fields.
func NewCustomFieldListResponse(fields []domain.CustomField) []CustomFieldResponse {
	result := make([]CustomFieldResponse, 0, len(fields))
	for i := range fields {
		result = append(result, NewCustomFieldResponse(&fields[i]))
	}
	return result
}

// CreateReportCategoryRequest adds a reporting-tree node.
type CreateReportCategoryRequest struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

// UpdateReportCategoryRequest modifies a reporting-tree node.
type UpdateReportCategoryRequest struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id,omitempty"`
	Required bool   `json:"required"`
}

// ReportCategoryResponse is the wire shape of a reporting-tree node.
type ReportCategoryResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id,omitempty"`
	Required bool   `json:"required"`
}

// NewReportCategoryResponse maps a domain node.
func NewReportCategoryResponse(c *domain.ReportCategory) ReportCategoryResponse {
	return ReportCategoryResponse{
		ID:       c.ID,
		Name:     c.Name,
		ParentID: c.ParentID,
		Required: c.Required,
	}
}

// NewReportCategoryListResponse maps the reporting tree.
func NewReportCategoryListResponse(categories []domain.ReportCategory) []ReportCategoryResponse {
	result := make([]ReportCategoryResponse, 0, len(categories))
	for i := range categories {
		result = append(result, NewReportCategoryResponse(&categories[i]))
	}
	return result
}

// NewHelpTopicListResponse maps intake topics.
func NewHelpTopicListResponse(topics []domain.HelpTopic) []HelpTopicResponse {
	result := make([]HelpTopicResponse, 0, len(topics))
	for _, t := range topics {
		result = append(result, HelpTopicResponse{ID: t.ID, Topic: t.Topic, Type: string(t.Type)})
	}
	return result
}
