package catalog

import (
	"context"

	"github.com/monocle-dev/catalog/internal/models"
)

const recentProductsLimit = 5

type DashboardStats struct {
	TotalProducts    int64
	ActiveProducts   int64
	InactiveProducts int64
	RecentProducts   []models.Product
	IsAdmin          bool
	TotalCategories  *int64
	TotalUsers       *int64
}

type Dashboard struct {
	products   ProductRepository
	categories CategoryRepository
	users      UserCounter
}

func NewDashboard(products ProductRepository, categories CategoryRepository, users UserCounter) *Dashboard {
	return &Dashboard{
		products:   products,
		categories: categories,
		users:      users,
	}
}

// Stats aggregates the dashboard figures. Category and user totals are
// only computed for administrators.
func (d *Dashboard) Stats(ctx context.Context, isAdmin bool) (*DashboardStats, error) {
	counts, err := d.products.Counts(ctx)

	if err != nil {
		return nil, err
	}

	recent, err := d.products.Recent(ctx, recentProductsLimit)

	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalProducts:    counts.Total,
		ActiveProducts:   counts.Active,
		InactiveProducts: counts.Inactive,
		RecentProducts:   recent,
		IsAdmin:          isAdmin,
	}

	if !isAdmin {
		return stats, nil
	}

	categories, err := d.categories.Count(ctx)

	if err != nil {
		return nil, err
	}

	users, err := d.users.Count(ctx)

	if err != nil {
		return nil, err
	}

	stats.TotalCategories = &categories
	stats.TotalUsers = &users

	return stats, nil
}
