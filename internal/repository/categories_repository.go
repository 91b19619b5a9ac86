package repository

import (
	"context"
	"errors"

	"github.com/monocle-dev/catalog/internal/listing"
	"github.com/monocle-dev/catalog/internal/models"
	"github.com/monocle-dev/catalog/pkg/e"
	"gorm.io/gorm"
)

const withProductsCount = "categories.*, " +
	"(SELECT COUNT(*) FROM products WHERE products.category_id = categories.id) AS products_count"

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{db: db}
}

func (r *CategoriesRepository) filtered(ctx context.Context, filters listing.Filters) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Category{}).
		Scopes(
			nameContains("categories", filters.Search),
			activeIs("categories", filters.Status),
		)
}

// GetFilteredCategories pages the filtered listing; the category filter of
// filters does not apply to categories and is ignored.
func (r *CategoriesRepository) GetFilteredCategories(ctx context.Context, filters listing.Filters, page, perPage int) (listing.Page[models.CategoryWithCount], error) {
	var total int64

	if err := r.filtered(ctx, filters).Count(&total).Error; err != nil {
		return listing.Page[models.CategoryWithCount]{}, e.Wrap("count categories", err)
	}

	page = listing.Clamp(page, total, perPage)
	rows := []models.CategoryWithCount{}

	if err := r.filtered(ctx, filters).
		Select(withProductsCount).
		Scopes(newestFirst("categories"), paginate(page, perPage)).
		Find(&rows).Error; err != nil {
		return listing.Page[models.CategoryWithCount]{}, e.Wrap("list categories", err)
	}

	return listing.Page[models.CategoryWithCount]{
		Items: rows,
		Meta: listing.Meta{
			CurrentPage: page,
			PerPage:     perPage,
			Total:       total,
			LastPage:    listing.LastPage(total, perPage),
		},
	}, nil
}

func (r *CategoriesRepository) GetAllFiltered(ctx context.Context, filters listing.Filters) ([]models.CategoryWithCount, error) {
	rows := []models.CategoryWithCount{}

	if err := r.filtered(ctx, filters).
		Select(withProductsCount).
		Scopes(newestFirst("categories")).
		Find(&rows).Error; err != nil {
		return nil, e.Wrap("export categories", err)
	}

	return rows, nil
}

// GetActive lists the categories offered when assigning a product.
func (r *CategoriesRepository) GetActive(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}

	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, e.Wrap("active categories", err)
	}

	return categories, nil
}

func (r *CategoriesRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category

	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, e.Wrap("get category", err)
	}

	return &category, nil
}

func (r *CategoriesRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return e.Wrap("create category", err)
	}
	return nil
}

func (r *CategoriesRepository) Update(ctx context.Context, id uint, columns map[string]interface{}) error {
	if len(columns) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).Model(&models.Category{ID: id}).Updates(columns)
	if res.Error != nil {
		return e.Wrap("update category", res.Error)
	}
	if res.RowsAffected == 0 {
		return e.ErrNotFound
	}

	return nil
}

// Delete removes the category and detaches its products, which keep
// existing with a NULL category.
func (r *CategoriesRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return e.Wrap("detach products", err)
		}

		res := tx.Delete(&models.Category{}, id)
		if res.Error != nil {
			return e.Wrap("delete category", res.Error)
		}
		if res.RowsAffected == 0 {
			return e.ErrNotFound
		}

		return nil
	})
}

func (r *CategoriesRepository) NameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	return nameTaken(r.db.WithContext(ctx).Model(&models.Category{}), name, excludeID)
}

func (r *CategoriesRepository) CategoryExists(ctx context.Context, id uint) (bool, error) {
	var count int64

	if err := r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, e.Wrap("check category", err)
	}

	return count > 0, nil
}

func (r *CategoriesRepository) Count(ctx context.Context) (int64, error) {
	var count int64

	if err := r.db.WithContext(ctx).Model(&models.Category{}).Count(&count).Error; err != nil {
		return 0, e.Wrap("count categories", err)
	}

	return count, nil
}
