package domain

import (
	"time"
)

// CREATE TABLE public.products (
//     id           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     product_name TEXT,
//     description  TEXT,
//     category     TEXT,
//     style        TEXT,
//     brand        TEXT,
//     base_price   NUMERIC,
//     tags         TEXT,
//     is_active    BOOLEAN,
//     created_at   TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID          uint64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductName string           `gorm:"column:product_name;type:text" json:"product_name"`
	Description string           `gorm:"column:description;type:text" json:"description"`
	Category    string           `gorm:"column:category;type:text" json:"category"`
	Style       string           `gorm:"column:style;type:text" json:"style"`
	Brand       string           `gorm:"column:brand;type:text" json:"brand"`
	BasePrice   float64          `gorm:"column:base_price;type:numeric" json:"base_price"`
	Tags        string           `gorm:"column:tags;type:text" json:"tags"`
	IsActive    bool             `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt   time.Time        `gorm:"column:created_at" json:"created_at"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID" json:"variants"`
}

func (Product) TableName() string {
	return "products"
}

type ProductVariant struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint64  `gorm:"column:product_id;index" json:"product_id"`
	Size      string  `gorm:"column:size;type:text" json:"size"`
	Color     string  `gorm:"column:color;type:text" json:"color"`
	Price     float64 `gorm:"column:price;type:numeric" json:"price"`
	Stock     int     `gorm:"column:stock" json:"stock"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}

// PriceRange returns the min/max variant price, falling back to the base
// price when the product has no priced variants.
func (p Product) PriceRange() (float64, float64) {
	lo, hi := 0.0, 0.0
	seen := false
	for _, v := range p.Variants {
		if v.Price <= 0 {
			continue
		}
		if !seen {
			lo, hi = v.Price, v.Price
			seen = true
			continue
		}
		if v.Price < lo {
			lo = v.Price
		}
		if v.Price > hi {
			hi = v.Price
		}
	}
	if !seen {
		return p.BasePrice, p.BasePrice
	}
	return lo, hi
}
