package dto

import (
	"time"

	"github.com/queueshq/queues-service/internal/domain"
)

// KBArticleRequest creates or updates a knowledgebase article.
type KBArticleRequest struct {
	KBCategoryID int64  `json:"kb_category_id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
}

// ToDomain maps the request onto a domain article.
func (r KBArticleRequest) ToDomain(id int64) *domain.KBArticle {
	return &domain.KBArticle{
		ID:           id,
		KBCategoryID: r.KBCategoryID,
		Title:        r.Title,
		Content:      r.Content,
	}
}

// KBArticleResponse is the wire shape of an article.
type KBArticleResponse struct {
	ID           int64     `json:"id"`
	KBCategoryID int64     `json:"kb_category_id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewKBArticleResponse maps a domain article.
func NewKBArticleResponse(a *domain.KBArticle) KBArticleResponse {
	return KBArticleResponse{
		ID:           a.ID,
		KBCategoryID: a.KBCategoryID,
		Title:        a.Title,
		Content:      a.Content,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// NewKBArticleListResponse maps a slice of articles.
func NewKBArticleListResponse(articles []domain.KBArticle) []KBArticleResponse {
	result := make([]KBArticleResponse, 0, len(articles))
	for i := range articles {
		result = append(result, NewKBArticleResponse(&articles[i]))
	}
	return result
}

// NewKBCategoryListResponse maps KB categories.
func NewKBCategoryListResponse(categories []domain.KBCategory) []NamedResponse {
	result := make([]NamedResponse, 0, len(categories))
	for _, c := range categories {
		result = append(result, NamedResponse{ID: c.ID, Name: c.Name})
	}
	return result
}

// CannedResponseRequest creates or updates a reply snippet.
type CannedResponseRequest struct {
	Name       string `json:"name"`
	CategoryID *int64 `json:"category_id,omitempty"`
	Response   string `json:"response"`
}

// ToDomain maps the request onto a domain canned response.
func (r CannedResponseRequest) ToDomain(id int64) *domain.CannedResponse {
	return &domain.CannedResponse{
		ID:         id,
		Name:       r.Name,
		CategoryID: r.CategoryID,
		Response:   r.Response,
	}
}

// CannedResponseResponse is the wire shape of a reply snippet.
type CannedResponseResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CategoryID *int64 `json:"category_id,omitempty"`
	Response   string `json:"response"`
}

// NewCannedResponseListResponse maps reply snippets.
func NewCannedResponseListResponse(canned []domain.CannedResponse) []CannedResponseResponse {
	result := make([]CannedResponseResponse, 0, len(canned))
	for _, c := range canned {
		result = append(result, CannedResponseResponse{
			ID:         c.ID,
			Name:       c.Name,
			CategoryID: c.CategoryID,
			Response:   c.Response,
		})
	}
	return result
}
