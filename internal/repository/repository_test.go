package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/monocle-dev/catalog/db/dbtest"
	"github.com/monocle-dev/catalog/internal/listing"
	"github.com/monocle-dev/catalog/internal/models"
	"github.com/monocle-dev/catalog/pkg/e"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func seedCategory(t *testing.T, conn *gorm.DB, name string, active bool, createdAt time.Time) *models.Category {
	t.Helper()

	c := &models.Category{Name: name, IsActive: active, CreatedAt: createdAt}
	require.NoError(t, conn.Create(c).Error)
	return c
}

func seedProduct(t *testing.T, conn *gorm.DB, name string, active bool, categoryID *uint, createdAt time.Time) *models.Product {
	t.Helper()

	p := &models.Product{
		Name:       name,
		Price:      decimal.NewNullDecimal(decimal.NewFromFloat(9.99)),
		IsActive:   active,
		CategoryID: categoryID,
		CreatedAt:  createdAt,
	}
	require.NoError(t, conn.Create(p).Error)
	return p
}

func names(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestGetFilteredProductsPagination(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewProductsRepository(conn)

	for i := 0; i < 20; i++ {
		seedProduct(t, conn, fmt.Sprintf("Product %02d", i), true, nil, epoch.Add(time.Duration(i)*time.Minute))
	}

	page, err := repo.GetFilteredProducts(context.Background(), listing.Filters{}, 1, listing.APIPageSize)
	require.NoError(t, err)

	assert.Len(t, page.Items, 15)
	assert.Equal(t, int64(20), page.Meta.Total)
	assert.Equal(t, 1, page.Meta.CurrentPage)
	assert.Equal(t, 15, page.Meta.PerPage)
	assert.Equal(t, 2, page.Meta.LastPage)
	assert.Equal(t, "Product 19", page.Items[0].Name, "newest first")

	page, err = repo.GetFilteredProducts(context.Background(), listing.Filters{}, 2, listing.APIPageSize)
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)

	page, err = repo.GetFilteredProducts(context.Background(), listing.Filters{}, 9, listing.APIPageSize)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Meta.CurrentPage, "out of range pages clamp to the last page")
	assert.Len(t, page.Items, 5)
}

func TestGetFilteredProductsTiesBreakByID(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewProductsRepository(conn)

	seedProduct(t, conn, "First", true, nil, epoch)
	seedProduct(t, conn, "Second", true, nil, epoch)
	seedProduct(t, conn, "Third", true, nil, epoch)

	page, err := repo.GetFilteredProducts(context.Background(), listing.Filters{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Third", "Second", "First"}, names(page.Items))
}

func TestGetFilteredProductsFilters(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewProductsRepository(conn)
	ctx := context.Background()

	phones := seedCategory(t, conn, "Phones", true, epoch)
	seedProduct(t, conn, "iPhone 15 Pro", true, &phones.ID, epoch)
	seedProduct(t, conn, "Samsung Galaxy", false, &phones.ID, epoch.Add(time.Minute))
	seedProduct(t, conn, "Phone Case", true, nil, epoch.Add(2*time.Minute))

	testCases := []struct {
		name   string
		params listing.Params
		want   []string
	}{
		{"no filters", listing.Params{}, []string{"Phone Case", "Samsung Galaxy", "iPhone 15 Pro"}},
		{"case insensitive search", listing.Params{Search: "PHONE"}, []string{"Phone Case", "iPhone 15 Pro"}},
		{"category", listing.Params{CategoryID: fmt.Sprint(phones.ID)}, []string{"Samsung Galaxy", "iPhone 15 Pro"}},
		{"without category", listing.Params{CategoryID: "0"}, []string{"Phone Case"}},
		{"inactive", listing.Params{Status: "0"}, []string{"Samsung Galaxy"}},
		{"combined", listing.Params{Search: "phone", CategoryID: fmt.Sprint(phones.ID), Status: "1"}, []string{"iPhone 15 Pro"}},
		{"no match", listing.Params{Search: "nokia"}, []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := repo.GetFilteredProducts(ctx, tc.params.Filters(), 1, 10)
			require.NoError(t, err)
			assert.Equal(t, tc.want, names(page.Items))
			assert.Equal(t, int64(len(tc.want)), page.Meta.Total)

			all, err := repo.GetAllFiltered(ctx, tc.params.Filters())
			require.NoError(t, err)
			assert.Equal(t, tc.want, names(all))
		})
	}
}

func TestProductPreloadsCategory(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewProductsRepository(conn)

	c := seedCategory(t, conn, "Tools", true, epoch)
	p := seedProduct(t, conn, "Hammer", true, &c.ID, epoch)

	got, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Tools", got.Category.Name)
	assert.Equal(t, "9.99", got.Price.Decimal.StringFixed(2))

	_, err = repo.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestProductUpdatePersistsZeroValues(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewProductsRepository(conn)
	ctx := context.Background()

	c := seedCategory(t, conn, "Tools", true, epoch)
	p := seedProduct(t, conn, "Hammer", true, &c.ID, epoch)

	require.NoError(t, repo.Update(ctx, p.ID, map[string]interface{}{
		"is_active":   false,
		"category_id": nil,
		"price":       decimal.NullDecimal{},
	}))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Nil(t, got.CategoryID)
	assert.False(t, got.Price.Valid)

	err = repo.Update(ctx, 999, map[string]interface{}{"name": "Ghost"})
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestProductDelete(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewProductsRepository(conn)
	ctx := context.Background()

	p := seedProduct(t, conn, "Hammer", true, nil, epoch)

	require.NoError(t, repo.Delete(ctx, p.ID))
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), e.ErrNotFound)
}

func TestNameTakenExcludesSelf(t *testing.T) {
	conn := dbtest.Open(t)
	products := NewProductsRepository(conn)
	categories := NewCategoriesRepository(conn)
	ctx := context.Background()

	widget := seedProduct(t, conn, "Widget", true, nil, epoch)
	seedProduct(t, conn, "Gadget", true, nil, epoch)
	tools := seedCategory(t, conn, "Tools", true, epoch)

	taken, err := products.NameTaken(ctx, "Widget", widget.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = products.NameTaken(ctx, "Gadget", widget.ID)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = products.NameTaken(ctx, "Widget", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = categories.NameTaken(ctx, "Tools", tools.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = categories.NameTaken(ctx, "Widget", 0)
	require.NoError(t, err)
	assert.False(t, taken, "names are unique per entity type")
}

func TestDeleteCategoryDetachesProducts(t *testing.T) {
	conn := dbtest.Open(t)
	categories := NewCategoriesRepository(conn)
	products := NewProductsRepository(conn)
	ctx := context.Background()

	c := seedCategory(t, conn, "Doomed", true, epoch)
	for i := 0; i < 3; i++ {
		seedProduct(t, conn, fmt.Sprintf("Orphan %d", i), true, &c.ID, epoch)
	}

	require.NoError(t, categories.Delete(ctx, c.ID))

	_, err := categories.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, e.ErrNotFound)

	all, err := products.GetAllFiltered(ctx, listing.Filters{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, p := range all {
		assert.Nil(t, p.CategoryID, "%s keeps existing with no category", p.Name)
	}

	assert.ErrorIs(t, categories.Delete(ctx, c.ID), e.ErrNotFound)
}

func TestCategoriesWithProductsCount(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewCategoriesRepository(conn)
	ctx := context.Background()

	tools := seedCategory(t, conn, "Tools", true, epoch)
	seedCategory(t, conn, "Garden", false, epoch.Add(time.Minute))
	seedProduct(t, conn, "Hammer", true, &tools.ID, epoch)
	seedProduct(t, conn, "Saw", true, &tools.ID, epoch)

	page, err := repo.GetFilteredCategories(ctx, listing.Filters{}, 1, listing.PagePageSize)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Garden", page.Items[0].Name)
	assert.Equal(t, int64(0), page.Items[0].ProductsCount)
	assert.Equal(t, "Tools", page.Items[1].Name)
	assert.Equal(t, int64(2), page.Items[1].ProductsCount)

	active := true
	rows, err := repo.GetAllFiltered(ctx, listing.Filters{Status: &active})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Tools", rows[0].Name)

	rows, err = repo.GetAllFiltered(ctx, listing.Filters{Search: "gar"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Garden", rows[0].Name)

	activeOnly, err := repo.GetActive(ctx)
	require.NoError(t, err)
	require.Len(t, activeOnly, 1)

	exists, err := repo.CategoryExists(ctx, tools.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.CategoryExists(ctx, 999)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestProductCountsAndRecent(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewProductsRepository(conn)
	ctx := context.Background()

	counts, err := repo.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, ProductCounts{}, counts)

	for i := 0; i < 7; i++ {
		seedProduct(t, conn, fmt.Sprintf("P%d", i), i%3 != 0, nil, epoch.Add(time.Duration(i)*time.Hour))
	}

	counts, err = repo.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, ProductCounts{Total: 7, Active: 4, Inactive: 3}, counts)

	recent, err := repo.Recent(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"P6", "P5", "P4", "P3", "P2"}, names(recent))
}

func TestSearchMatchesWildcardsLiterally(t *testing.T) {
	conn := dbtest.Open(t)
	products := NewProductsRepository(conn)
	categories := NewCategoriesRepository(conn)
	ctx := context.Background()

	seedProduct(t, conn, "50% off", true, nil, epoch)
	seedProduct(t, conn, "500 pack", true, nil, epoch.Add(time.Minute))
	seedProduct(t, conn, "snake_case", true, nil, epoch.Add(2*time.Minute))
	seedProduct(t, conn, "snakeXcase", true, nil, epoch.Add(3*time.Minute))
	seedProduct(t, conn, `back\slash`, true, nil, epoch.Add(4*time.Minute))
	seedCategory(t, conn, "100% cotton", true, epoch)
	seedCategory(t, conn, "1000 threads", true, epoch)

	testCases := []struct {
		search string
		want   []string
	}{
		{"50%", []string{"50% off"}},
		{"e_c", []string{"snake_case"}},
		{`k\s`, []string{`back\slash`}},
	}

	for _, tc := range testCases {
		t.Run(tc.search, func(t *testing.T) {
			all, err := products.GetAllFiltered(ctx, listing.Filters{Search: tc.search})
			require.NoError(t, err)
			assert.Equal(t, tc.want, names(all))
		})
	}

	rows, err := categories.GetAllFiltered(ctx, listing.Filters{Search: "0%"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "100% cotton", rows[0].Name)
}
