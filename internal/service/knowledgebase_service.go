package service

import (
	"context"
	"strings"

	"github.com/queueshq/queues-service/internal/domain"
	"github.com/queueshq/queues-service/internal/repository"
	apperrors "github.com/queueshq/queues-service/pkg/util"
)

// KnowledgebaseService manages KB categories, articles and canned
// responses.
type KnowledgebaseService struct {
	kb     repository.KnowledgebaseRepository
	canned repository.CannedResponseRepository
}

// NewKnowledgebaseService constructs the service.
func NewKnowledgebaseService(kb repository.KnowledgebaseRepository, canned repository.CannedResponseRepository) *KnowledgebaseService {
	return &KnowledgebaseService{kb: kb, canned: canned}
}

// CreateCategory adds a KB category.
func (s *KnowledgebaseService) CreateCategory(ctx context.Context, name string) (*domain.KBCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	category := &domain.KBCategory{Name: name}
	if err := s.kb.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// RenameCategory updates a KB category name.
func (s *KnowledgebaseService) RenameCategory(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	return s.kb.RenameCategory(ctx, id, name)
}

// DeleteCategory removes a KB category and, via cascade, its articles.
func (s *KnowledgebaseService) DeleteCategory(ctx context.Context, id int64) error {
	return s.kb.DeleteCategory(ctx, id)
}

// ListCategories returns KB categories ordered by name.
func (s *KnowledgebaseService) ListCategories(ctx context.Context) ([]domain.KBCategory, error) {
	return s.kb.ListCategories(ctx)
}

// CreateArticle adds a KB article.
func (s *KnowledgebaseService) CreateArticle(ctx context.Context, article *domain.KBArticle) error {
	article.Title = strings.TrimSpace(article.Title)
	if article.Title == "" || strings.TrimSpace(article.Content) == "" {
		return apperrors.NewValidationError("title and content required", nil)
	}
	return s.kb.CreateArticle(ctx, article)
}

// UpdateArticle modifies a KB article and bumps its updated_at.
func (s *KnowledgebaseService) UpdateArticle(ctx context.Context, article *domain.KBArticle) error {
	article.Title = strings.TrimSpace(article.Title)
	if article.Title == "" || strings.TrimSpace(article.Content) == "" {
		return apperrors.NewValidationError("title and content required", nil)
	}
	return s.kb.UpdateArticle(ctx, article)
}

// DeleteArticle removes a KB article.
func (s *KnowledgebaseService) DeleteArticle(ctx context.Context, id int64) error {
	return s.kb.DeleteArticle(ctx, id)
}

// GetArticle fetches one article.
func (s *KnowledgebaseService) GetArticle(ctx context.Context, id int64) (*domain.KBArticle, error) {
	return s.kb.GetArticle(ctx, id)
}

// ListArticles returns articles, optionally narrowed to one KB category.
func (s *KnowledgebaseService) ListArticles(ctx context.Context, kbCategoryID *int64) ([]domain.KBArticle, error) {
	return s.kb.ListArticles(ctx, kbCategoryID)
}

// CreateCannedResponse adds a reply snippet.
func (s *KnowledgebaseService) CreateCannedResponse(ctx context.Context, canned *domain.CannedResponse) error {
	canned.Name = strings.TrimSpace(canned.Name)
	if canned.Name == "" || strings.TrimSpace(canned.Response) == "" {
		return apperrors.NewValidationError("name and response required", nil)
	}
	return s.canned.Create(ctx, canned)
}

// UpdateCannedResponse modifies a reply snippet.
func (s *KnowledgebaseService) UpdateCannedResponse(ctx context.Context, canned *domain.CannedResponse) error {
	canned.Name = strings.TrimSpace(canned.Name)
	if canned.Name == "" || strings.TrimSpace(canned.Response) == "" {
		return apperrors.NewValidationError("name and response required", nil)
	}
	return s.canned.Update(ctx, canned)
}

// DeleteCannedResponse removes a reply snippet.
func (s *KnowledgebaseService) DeleteCannedResponse(ctx context.Context, id int64) error {
	return s.canned.Delete(ctx, id)
}

// ListCannedResponses returns reply snippets ordered by name.
func (s *KnowledgebaseService) ListCannedResponses(ctx context.Context) ([]domain.CannedResponse, error) {
	return s.canned.List(ctx)
}
