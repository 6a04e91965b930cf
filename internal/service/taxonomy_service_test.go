package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queueshq/queues-service/internal/domain"
	apperrors "github.com/queueshq/queues-service/pkg/util"
)

type fakeCategoryRepo struct {
	rows map[int64]*domain.Category
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	category.ID = int64(len(f.rows) + 1)
	f.rows[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) Rename(_ context.Context, id int64, name string) error {
	row, ok := f.rows[id]
	if !ok {
		return pgx.ErrNoRows
	}
	row.Name = name
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return row, nil
}

func (f *fakeCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	var result []domain.Category
	for _, row := range f.rows {
		result = append(result, *row)
	}
	return result, nil
}

type fakeStatusRepo struct {
	rows map[int64]*domain.Status
}

func (f *fakeStatusRepo) Create(_ context.Context, status *domain.Status) error {
	status.ID = int64(len(f.rows) + 1)
	f.rows[status.ID] = status
	return nil
}

func (f *fakeStatusRepo) Rename(_ context.Context, id int64, name string) error {
	row, ok := f.rows[id]
	if !ok {
		return pgx.ErrNoRows
	}
	row.Name = name
	return nil
}

func (f *fakeStatusRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeStatusRepo) List(_ context.Context) ([]domain.Status, error) {
	var result []domain.Status
	for _, row := range f.rows {
		result = append(result, *row)
	}
	return result, nil
}

type fakeCustomFieldRepo struct {
	rows map[int64]*domain.CustomField
}

func (f *fakeCustomFieldRepo) Create(_ context.Context, field *domain.CustomField) error {
	field.ID = int64(len(f.rows) + 1)
	f.rows[field.ID] = field
	return nil
}

func (f *fakeCustomFieldRepo) Update(_ context.Context, id int64, fieldLabel, fieldType string) error {
	row, ok := f.rows[id]
	if !ok {
		return pgx.ErrNoRows
	}
	row.FieldLabel = fieldLabel
	row.FieldType = fieldType
	return nil
}

func (f *fakeCustomFieldRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeCustomFieldRepo) List(_ context.Context) ([]domain.CustomField, error) {
	var result []domain.CustomField
	for _, row := range f.rows {
		result = append(result, *row)
	}
	return result, nil
}

type fakeReportCategoryRepo struct {
	rows map[int64]*domain.ReportCategory
}

func (f *fakeReportCategoryRepo) Create(_ context.Context, category *domain.ReportCategory) error {
	category.ID = int64(len(f.rows) + 1)
	f.rows[category.ID] = category
	return nil
}

func (f *fakeReportCategoryRepo) Update(_ context.Context, category *domain.ReportCategory) error {
	if _, ok := f.rows[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.rows[category.ID] = category
	return nil
}

func (f *fakeReportCategoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeReportCategoryRepo) List(_ context.Context) ([]domain.ReportCategory, error) {
	var result []domain.ReportCategory
	for _, row := range f.rows {
		result = append(result, *row)
	}
	return result, nil
}

type bumpRecorder struct {
	bumps int
}

func (b *bumpRecorder) Bump(context.Context) { b.bumps++ }

func newTaxonomyFixture() (*TaxonomyService, *fakeCategoryRepo, *fakeStatusRepo, *bumpRecorder) {
	categories := &fakeCategoryRepo{rows: map[int64]*domain.Category{}}
	statuses := &fakeStatusRepo{rows: map[int64]*domain.Status{}}
	bumps := &bumpRecorder{}
	svc := NewTaxonomyService(TaxonomyDependencies{
		CategoryRepo:       categories,
		StatusRepo:         statuses,
		CustomFieldRepo:    &fakeCustomFieldRepo{rows: map[int64]*domain.CustomField{}},
		ReportCategoryRepo: &fakeReportCategoryRepo{rows: map[int64]*domain.ReportCategory{}},
		Counts:             bumps,
	})
	return svc, categories, statuses, bumps
}

func TestCreateCategoryRejectsBlankName(t *testing.T) {
	svc, _, _, _ := newTaxonomyFixture()

	_, err := svc.CreateCategory(context.Background(), "   ")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestCreateCategoryTrimsName(t *testing.T) {
	svc, categories, _, _ := newTaxonomyFixture()

	category, err := svc.CreateCategory(context.Background(), "  Billing ")
	require.NoError(t, err)
	assert.Equal(t, "Billing", category.Name)
	assert.Len(t, categories.rows, 1)
}

func TestDeleteCategoryInvalidatesCounts(t *testing.T) {
	svc, _, _, bumps := newTaxonomyFixture()
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, "Billing")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(ctx, category.ID))
	assert.Equal(t, 1, bumps.bumps)
}

func TestDeleteStatusInvalidatesCounts(t *testing.T) {
	svc, _, _, bumps := newTaxonomyFixture()
	ctx := context.Background()

	status, err := svc.CreateStatus(ctx, "On Hold")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteStatus(ctx, status.ID))
	assert.Equal(t, 1, bumps.bumps)
}

func TestDeleteMissingCategoryDoesNotBump(t *testing.T) {
	svc, _, _, bumps := newTaxonomyFixture()

	err := svc.DeleteCategory(context.Background(), 404)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.Zero(t, bumps.bumps)
}

func TestCreateCustomFieldRequiresAssociation(t *testing.T) {
	svc, _, _, _ := newTaxonomyFixture()

	err := svc.CreateCustomField(context.Background(), &domain.CustomField{
		FieldLabel: "Asset tag",
		FieldType:  "text",
	})
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestCreateCustomFieldWithCategory(t *testing.T) {
	svc, _, _, _ := newTaxonomyFixture()

	categoryID := int64(3)
	field := &domain.CustomField{
		FieldLabel: "  Asset tag ",
		FieldType:  "text",
		CategoryID: &categoryID,
	}
	require.NoError(t, svc.CreateCustomField(context.Background(), field))
	assert.Equal(t, "Asset tag", field.FieldLabel)
	assert.NotZero(t, field.ID)
}

func TestUpdateCustomFieldChangesLabelAndTypeOnly(t *testing.T) {
	svc, _, _, _ := newTaxonomyFixture()
	ctx := context.Background()

	topicID := int64(2)
	field := &domain.CustomField{FieldLabel: "Severity", FieldType: "select", HelpTopicID: &topicID}
	require.NoError(t, svc.CreateCustomField(ctx, field))

	require.NoError(t, svc.UpdateCustomField(ctx, field.ID, "Impact", "radio"))
	fields, err := svc.ListCustomFields(ctx)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "Impact", fields[0].FieldLabel)
	assert.Equal(t, "radio", fields[0].FieldType)
	require.NotNil(t, fields[0].HelpTopicID)
	assert.Equal(t, topicID, *fields[0].HelpTopicID)
}

func TestUpdateCustomFieldRejectsBlankLabel(t *testing.T) {
	svc, _, _, _ := newTaxonomyFixture()

	err := svc.UpdateCustomField(context.Background(), 1, " ", "text")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestCreateReportCategoryRootIsNeverRequired(t *testing.T) {
	svc, _, _, _ := newTaxonomyFixture()

	category, err := svc.CreateReportCategory(context.Background(), "Hardware", nil)
	require.NoError(t, err)
	assert.False(t, category.Required)
	assert.Nil(t, category.ParentID)
}

func TestCreateReportCategoryChildStartsRequired(t *testing.T) {
	svc, _, _, _ := newTaxonomyFixture()
	ctx := context.Background()

	root, err := svc.CreateReportCategory(ctx, "Hardware", nil)
	require.NoError(t, err)

	child, err := svc.CreateReportCategory(ctx, "Laptops", &root.ID)
	require.NoError(t, err)
	assert.True(t, child.Required)
}

func TestUpdateReportCategoryForcesRequiredOffWithoutParent(t *testing.T) {
	svc, _, _, _ := newTaxonomyFixture()
	ctx := context.Background()

	root, err := svc.CreateReportCategory(ctx, "Hardware", nil)
	require.NoError(t, err)
	child, err := svc.CreateReportCategory(ctx, "Laptops", &root.ID)
	require.NoError(t, err)

	// promoting the child to a root clears the flag even when supplied
	promoted := &domain.ReportCategory{ID: child.ID, Name: "Laptops", ParentID: nil, Required: true}
	require.NoError(t, svc.UpdateReportCategory(ctx, promoted))
	assert.False(t, promoted.Required)
}
