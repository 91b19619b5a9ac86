package catalog

import (
	"context"

	"github.com/monocle-dev/catalog/internal/listing"
	"github.com/monocle-dev/catalog/internal/models"
	"github.com/monocle-dev/catalog/internal/repository"
)

type ProductRepository interface {
	GetFilteredProducts(ctx context.Context, filters listing.Filters, page, perPage int) (listing.Page[models.Product], error)
	GetAllFiltered(ctx context.Context, filters listing.Filters) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id uint, columns map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	NameTaken(ctx context.Context, name string, excludeID uint) (bool, error)
	Recent(ctx context.Context, limit int) ([]models.Product, error)
	Counts(ctx context.Context) (repository.ProductCounts, error)
}

type CategoryRepository interface {
	GetFilteredCategories(ctx context.Context, filters listing.Filters, page, perPage int) (listing.Page[models.CategoryWithCount], error)
	GetAllFiltered(ctx context.Context, filters listing.Filters) ([]models.CategoryWithCount, error)
	GetActive(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, id uint, columns map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	NameTaken(ctx context.Context, name string, excludeID uint) (bool, error)
	CategoryExists(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type UserCounter interface {
	Count(ctx context.Context) (int64, error)
}
