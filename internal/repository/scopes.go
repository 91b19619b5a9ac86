package repository

import (
	"strings"

	"github.com/monocle-dev/catalog/internal/listing"
	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// nameContains matches term literally; % and _ are not wildcards.
func nameContains(table, term string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" {
			return db
		}
		pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		return db.Where("LOWER("+table+".name) LIKE ? ESCAPE '\\'", pattern)
	}
}

func activeIs(table string, status *bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if status == nil {
			return db
		}
		return db.Where(table+".is_active = ?", *status)
	}
}

func inCategory(filter listing.CategoryFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case !filter.Enabled:
			return db
		case filter.ID == nil:
			return db.Where("products.category_id IS NULL")
		default:
			return db.Where("products.category_id = ?", *filter.ID)
		}
	}
}

// newestFirst orders by creation time, breaking ties by id so equal
// timestamps still page deterministically.
func newestFirst(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(table + ".created_at DESC").Order(table + ".id DESC")
	}
}

func paginate(page, perPage int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(listing.Offset(page, perPage)).Limit(perPage)
	}
}
