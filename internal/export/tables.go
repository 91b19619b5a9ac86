package export

import (
	"strconv"
	"time"

	"github.com/monocle-dev/catalog/internal/models"
)

var (
	ProductHeaders  = []string{"ID", "Nombre", "Categoría", "Descripción", "Precio", "Estado", "Creado"}
	CategoryHeaders = []string{"ID", "Nombre", "Descripción", "Productos", "Estado", "Creado"}
)

// ProductTable formats products for export. Timestamps are shown in loc.
func ProductTable(products []models.Product, loc *time.Location) Table {
	rows := make([][]string, 0, len(products))

	for _, p := range products {
		category := NoCategoryLabel
		if p.Category != nil {
			category = p.Category.Name
		}

		price := ""
		if p.Price.Valid {
			price = p.Price.Decimal.StringFixed(2)
		}

		rows = append(rows, []string{
			strconv.FormatUint(uint64(p.ID), 10),
			p.Name,
			category,
			deref(p.Description),
			price,
			statusLabel(p.IsActive),
			p.CreatedAt.In(loc).Format(TimeLayout),
		})
	}

	return Table{Headers: ProductHeaders, Rows: rows}
}

func CategoryTable(categories []models.CategoryWithCount, loc *time.Location) Table {
	rows := make([][]string, 0, len(categories))

	for _, c := range categories {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(c.ID), 10),
			c.Name,
			deref(c.Description),
			strconv.FormatInt(c.ProductsCount, 10),
			statusLabel(c.IsActive),
			c.CreatedAt.In(loc).Format(TimeLayout),
		})
	}

	return Table{Headers: CategoryHeaders, Rows: rows}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
