package repository

import (
	"context"
	"errors"

	"github.com/monocle-dev/catalog/internal/listing"
	"github.com/monocle-dev/catalog/internal/models"
	"github.com/monocle-dev/catalog/pkg/e"
	"gorm.io/gorm"
)

type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func (r *ProductsRepository) filtered(ctx context.Context, filters listing.Filters) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Scopes(
			nameContains("products", filters.Search),
			inCategory(filters.Category),
			activeIs("products", filters.Status),
		)
}

// GetFilteredProducts returns one page of the filtered listing. A page past
// the end is clamped to the last page.
func (r *ProductsRepository) GetFilteredProducts(ctx context.Context, filters listing.Filters, page, perPage int) (listing.Page[models.Product], error) {
	var total int64

	if err := r.filtered(ctx, filters).Count(&total).Error; err != nil {
		return listing.Page[models.Product]{}, e.Wrap("count products", err)
	}

	page = listing.Clamp(page, total, perPage)
	products := []models.Product{}

	if err := r.filtered(ctx, filters).
		Preload("Category").
		Scopes(newestFirst("products"), paginate(page, perPage)).
		Find(&products).Error; err != nil {
		return listing.Page[models.Product]{}, e.Wrap("list products", err)
	}

	return listing.Page[models.Product]{
		Items: products,
		Meta: listing.Meta{
			CurrentPage: page,
			PerPage:     perPage,
			Total:       total,
			LastPage:    listing.LastPage(total, perPage),
		},
	}, nil
}

// GetAllFiltered returns the whole filtered listing, for exports.
func (r *ProductsRepository) GetAllFiltered(ctx context.Context, filters listing.Filters) ([]models.Product, error) {
	products := []models.Product{}

	if err := r.filtered(ctx, filters).
		Preload("Category").
		Scopes(newestFirst("products")).
		Find(&products).Error; err != nil {
		return nil, e.Wrap("export products", err)
	}

	return products, nil
}

func (r *ProductsRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product

	if err := r.db.WithContext(ctx).Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, e.Wrap("get product", err)
	}

	return &product, nil
}

func (r *ProductsRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return e.Wrap("create product", err)
	}
	return nil
}

// Update writes only the given columns so false and NULL values persist.
func (r *ProductsRepository) Update(ctx context.Context, id uint, columns map[string]interface{}) error {
	if len(columns) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).Model(&models.Product{ID: id}).Updates(columns)
	if res.Error != nil {
		return e.Wrap("update product", res.Error)
	}
	if res.RowsAffected == 0 {
		return e.ErrNotFound
	}

	return nil
}

func (r *ProductsRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return e.Wrap("delete product", res.Error)
	}
	if res.RowsAffected == 0 {
		return e.ErrNotFound
	}

	return nil
}

func (r *ProductsRepository) NameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	return nameTaken(r.db.WithContext(ctx).Model(&models.Product{}), name, excludeID)
}

func (r *ProductsRepository) Recent(ctx context.Context, limit int) ([]models.Product, error) {
	products := []models.Product{}

	if err := r.db.WithContext(ctx).
		Preload("Category").
		Scopes(newestFirst("products")).
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, e.Wrap("recent products", err)
	}

	return products, nil
}

type ProductCounts struct {
	Total    int64
	Active   int64
	Inactive int64
}

func (r *ProductsRepository) Counts(ctx context.Context) (ProductCounts, error) {
	var counts ProductCounts

	if err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select(
			"COUNT(*) AS total, " +
				"COALESCE(SUM(CASE WHEN is_active THEN 1 ELSE 0 END), 0) AS active, " +
				"COALESCE(SUM(CASE WHEN is_active THEN 0 ELSE 1 END), 0) AS inactive",
		).
		Scan(&counts).Error; err != nil {
		return ProductCounts{}, e.Wrap("count products", err)
	}

	return counts, nil
}

// nameTaken matches names exactly; case variants are distinct names.
func nameTaken(query *gorm.DB, name string, excludeID uint) (bool, error) {
	var count int64

	query = query.Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	if err := query.Count(&count).Error; err != nil {
		return false, e.Wrap("check name", err)
	}

	return count > 0, nil
}
