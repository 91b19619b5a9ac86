package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint                `gorm:"primaryKey"`
	Name        string              `gorm:"size:255;uniqueIndex;not null"`
	Description *string             `gorm:"size:1000"`
	Price       decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	IsActive    bool                `gorm:"not null"`
	CategoryID  *uint               `gorm:"index"`
	CreatedAt   time.Time           `gorm:"index"`
	UpdatedAt   time.Time

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}
