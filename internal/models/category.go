package models

import "time"

type Category struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"size:255;uniqueIndex;not null"`
	Description *string `gorm:"size:1000"`
	IsActive    bool    `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoryWithCount is a category row with its product count computed by the query.
type CategoryWithCount struct {
	Category
	ProductsCount int64
}
