package catalog

import (
	"context"

	"github.com/monocle-dev/catalog/internal/listing"
	"github.com/monocle-dev/catalog/internal/models"
	"github.com/monocle-dev/catalog/internal/validation"
	"go.uber.org/zap"
)

// APIRules apply to the JSON API, PageRules to the interactive pages.
var (
	APIRules  = validation.ProductRules{PriceRequired: true}
	PageRules = validation.ProductRules{PriceRequired: false}
)

type ProductService struct {
	products   ProductRepository
	categories CategoryRepository
	logger     *zap.Logger
}

func NewProductService(products ProductRepository, categories CategoryRepository, log *zap.Logger) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		logger:     log,
	}
}

func (s *ProductService) validator(rules validation.ProductRules) validation.ProductValidator {
	return validation.ProductValidator{
		Names:      s.products,
		Categories: s.categories,
		Rules:      rules,
	}
}

// Validate checks form without writing. Store failures are returned as
// the error, rule violations as Errors.
func (s *ProductService) Validate(ctx context.Context, form validation.ProductForm, op validation.Operation, rules validation.ProductRules) (validation.Errors, error) {
	return s.validator(rules).Validate(ctx, form, op)
}

func (s *ProductService) List(ctx context.Context, params listing.Params, page, perPage int) (listing.Page[models.Product], error) {
	return s.products.GetFilteredProducts(ctx, params.Filters(), page, perPage)
}

// Export returns every product matching params, newest first.
func (s *ProductService) Export(ctx context.Context, params listing.Params) ([]models.Product, error) {
	return s.products.GetAllFiltered(ctx, params.Filters())
}

func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

// Create validates form and stores a new product. A rejected form is
// returned as a *validation.Error and nothing is written.
func (s *ProductService) Create(ctx context.Context, form validation.ProductForm, rules validation.ProductRules) (*models.Product, error) {
	form = form.Normalized()

	errs, err := s.validator(rules).Validate(ctx, form, validation.CreateOp())

	if err != nil {
		return nil, err
	}

	if errs.Any() {
		return nil, validation.NewError(errs)
	}

	product := &models.Product{
		Name:        form.Name,
		Description: form.DescriptionValue(),
		Price:       form.PriceValue(),
		IsActive:    form.IsActive,
		CategoryID:  form.CategoryValue(),
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created", zap.Uint("product_id", product.ID), zap.String("name", product.Name))

	return s.products.GetByID(ctx, product.ID)
}

// Update writes the supplied fields of form to product id. A nil supplied
// set writes every field.
func (s *ProductService) Update(ctx context.Context, id uint, form validation.ProductForm, supplied validation.FieldSet, rules validation.ProductRules) (*models.Product, error) {
	if _, err := s.products.GetByID(ctx, id); err != nil {
		return nil, err
	}

	form = form.Normalized()

	errs, err := s.validator(rules).Validate(ctx, form, validation.UpdateOp(id, supplied))

	if err != nil {
		return nil, err
	}

	if errs.Any() {
		return nil, validation.NewError(errs)
	}

	columns := productColumns(form, supplied)
	if len(columns) > 0 {
		if err := s.products.Update(ctx, id, columns); err != nil {
			return nil, err
		}
	}

	s.logger.Info("product updated", zap.Uint("product_id", id), zap.Int("fields", len(columns)))

	return s.products.GetByID(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("product deleted", zap.Uint("product_id", id))

	return nil
}

func productColumns(form validation.ProductForm, supplied validation.FieldSet) map[string]interface{} {
	columns := map[string]interface{}{}

	if supplied.Has("name") {
		columns["name"] = form.Name
	}
	if supplied.Has("description") {
		columns["description"] = form.DescriptionValue()
	}
	if supplied.Has("price") {
		columns["price"] = form.PriceValue()
	}
	if supplied.Has("is_active") {
		columns["is_active"] = form.IsActive
	}
	if supplied.Has("category_id") {
		columns["category_id"] = form.CategoryValue()
	}

	return columns
}

// FormFromProduct fills an edit form with the stored values of p.
func FormFromProduct(p *models.Product) validation.ProductForm {
	form := validation.ProductForm{
		Name:     p.Name,
		IsActive: p.IsActive,
	}

	if p.Description != nil {
		form.Description = *p.Description
	}
	if p.Price.Valid {
		form.Price = validation.Text(p.Price.Decimal.StringFixed(2))
	}
	if p.CategoryID != nil {
		form.CategoryID = validation.Text(uintString(*p.CategoryID))
	}

	return form
}
