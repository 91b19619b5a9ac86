package catalog

import (
	"context"
	"strconv"

	"github.com/monocle-dev/catalog/internal/listing"
	"github.com/monocle-dev/catalog/internal/models"
	"github.com/monocle-dev/catalog/internal/validation"
	"go.uber.org/zap"
)

type CategoryService struct {
	categories CategoryRepository
	logger     *zap.Logger
}

func NewCategoryService(categories CategoryRepository, log *zap.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		logger:     log,
	}
}

func (s *CategoryService) validator() validation.CategoryValidator {
	return validation.CategoryValidator{Names: s.categories}
}

func (s *CategoryService) List(ctx context.Context, params listing.Params, page, perPage int) (listing.Page[models.CategoryWithCount], error) {
	return s.categories.GetFilteredCategories(ctx, params.Filters(), page, perPage)
}

// Export ignores the category_id parameter; it only filters products.
func (s *CategoryService) Export(ctx context.Context, params listing.Params) ([]models.CategoryWithCount, error) {
	params.CategoryID = ""
	return s.categories.GetAllFiltered(ctx, params.Filters())
}

func (s *CategoryService) Active(ctx context.Context) ([]models.Category, error) {
	return s.categories.GetActive(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, form validation.CategoryForm) (*models.Category, error) {
	form = form.Normalized()

	errs, err := s.validator().Validate(ctx, form, validation.CreateOp())

	if err != nil {
		return nil, err
	}

	if errs.Any() {
		return nil, validation.NewError(errs)
	}

	category := &models.Category{
		Name:        form.Name,
		Description: form.DescriptionValue(),
		IsActive:    form.IsActive,
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("category created", zap.Uint("category_id", category.ID), zap.String("name", category.Name))

	return category, nil
}

// Update rewrites every field of category id from form.
func (s *CategoryService) Update(ctx context.Context, id uint, form validation.CategoryForm) (*models.Category, error) {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		return nil, err
	}

	form = form.Normalized()

	errs, err := s.validator().Validate(ctx, form, validation.UpdateOp(id, nil))

	if err != nil {
		return nil, err
	}

	if errs.Any() {
		return nil, validation.NewError(errs)
	}

	err = s.categories.Update(ctx, id, map[string]interface{}{
		"name":        form.Name,
		"description": form.DescriptionValue(),
		"is_active":   form.IsActive,
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("category updated", zap.Uint("category_id", id))

	return s.categories.GetByID(ctx, id)
}

// Delete removes the category. Its products stay and lose their category.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("category deleted", zap.Uint("category_id", id))

	return nil
}

func FormFromCategory(c *models.Category) validation.CategoryForm {
	form := validation.CategoryForm{
		Name:     c.Name,
		IsActive: c.IsActive,
	}

	if c.Description != nil {
		form.Description = *c.Description
	}

	return form
}

func uintString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
